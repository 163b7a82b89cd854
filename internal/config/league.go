package config

import "strings"

// LeagueConfig seeds the league generated when the configured slot is empty.
type LeagueConfig struct {
	Seed       uint64
	Year       int
	UserTeamID string
}

func loadLeague() LeagueConfig {
	return LeagueConfig{
		Seed:       uint64EnvOrDefault(envLeagueSeed, defaultLeagueSeed),
		Year:       intEnvOrDefault(envLeagueYear, defaultLeagueYear),
		UserTeamID: strings.ToLower(envOrDefault(envLeagueUser, "")),
	}
}
