package config

import "time"

const (
	envPort          = "PORT"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envSaveBackend   = "SAVE_BACKEND"
	envSavePath      = "SAVE_PATH"
	envSaveSlot      = "SAVE_SLOT"
	envSaveRetention = "SAVE_RETENTION"
	envLeagueSeed    = "LEAGUE_SEED"
	envLeagueYear    = "LEAGUE_YEAR"
	envLeagueUser    = "LEAGUE_USER_TEAM"
	envAutopilotOn   = "AUTOPILOT_ENABLED"
	envAutopilotRate = "AUTOPILOT_INTERVAL"
	envAutopilotHold = "AUTOPILOT_PAUSE_OFFSEASON"
	envAdminToken    = "ADMIN_TOKEN"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort          = "4000"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultSaveBackend   = "sqlite"
	defaultSavePath      = "data"
	defaultSaveSlot      = "main"
	defaultSaveRetention = 5
	defaultLeagueSeed    = uint64(1)
	defaultLeagueYear    = 2025
	defaultAutopilotOn   = false
	// One simulated week per tick; slow enough to follow along from the API.
	defaultAutopilotInterval = 30 * Duration(time.Second)
	defaultMetricsPort       = "9090"
	defaultServiceName       = "league-sim-service"
)
