package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	LogLevel   string
	LogFormat  string
	AdminToken string
	Saves      SaveConfig
	League     LeagueConfig
	Autopilot  AutopilotConfig
	Metrics    MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		LogLevel:   envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:  envOrDefault(envLogFormat, defaultLogFormat),
		AdminToken: envOrDefault(envAdminToken, ""),
		Saves:      loadSaves(),
		League:     loadLeague(),
		Autopilot:  loadAutopilot(),
		Metrics:    loadMetrics(),
	}
}
