package config

// AutopilotConfig controls the background loop that advances the league.
type AutopilotConfig struct {
	Enabled        bool
	Interval       Duration
	PauseOffseason bool
}

func loadAutopilot() AutopilotConfig {
	return AutopilotConfig{
		Enabled:        boolEnvOrDefault(envAutopilotOn, defaultAutopilotOn),
		Interval:       durationEnvOrDefault(envAutopilotRate, defaultAutopilotInterval),
		PauseOffseason: boolEnvOrDefault(envAutopilotHold, false),
	}
}
