package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Saves.Backend != defaultSaveBackend || cfg.Saves.Path != defaultSavePath || cfg.Saves.Slot != defaultSaveSlot {
		t.Fatalf("unexpected save defaults %+v", cfg.Saves)
	}
	if cfg.Saves.Retention != defaultSaveRetention {
		t.Fatalf("expected retention %d, got %d", defaultSaveRetention, cfg.Saves.Retention)
	}
	if cfg.League.Seed != defaultLeagueSeed || cfg.League.Year != defaultLeagueYear || cfg.League.UserTeamID != "" {
		t.Fatalf("unexpected league defaults %+v", cfg.League)
	}
	if cfg.Autopilot.Enabled {
		t.Fatalf("expected autopilot disabled by default")
	}
	if cfg.Autopilot.Interval != defaultAutopilotInterval {
		t.Fatalf("expected default autopilot interval %s, got %s", defaultAutopilotInterval, cfg.Autopilot.Interval)
	}
	if cfg.AdminToken != "" {
		t.Fatalf("expected empty admin token by default, got %s", cfg.AdminToken)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envSaveBackend, "FS")
	t.Setenv(envSavePath, "/tmp/leagues")
	t.Setenv(envSaveSlot, "dynasty")
	t.Setenv(envSaveRetention, "9")
	t.Setenv(envLeagueSeed, "18446744073709551615")
	t.Setenv(envLeagueYear, "2031")
	t.Setenv(envLeagueUser, "DET")
	t.Setenv(envAutopilotOn, "true")
	t.Setenv(envAutopilotRate, "45s")
	t.Setenv(envAutopilotHold, "yes")
	t.Setenv(envAdminToken, "secret")

	cfg := Load()

	if cfg.Port != "5000" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected server overrides %+v", cfg)
	}
	if cfg.Saves != (SaveConfig{Backend: "fs", Path: "/tmp/leagues", Slot: "dynasty", Retention: 9}) {
		t.Fatalf("unexpected save overrides %+v", cfg.Saves)
	}
	if cfg.League != (LeagueConfig{Seed: 18446744073709551615, Year: 2031, UserTeamID: "det"}) {
		t.Fatalf("unexpected league overrides %+v", cfg.League)
	}
	if !cfg.Autopilot.Enabled || !cfg.Autopilot.PauseOffseason || cfg.Autopilot.Interval != 45*time.Second {
		t.Fatalf("unexpected autopilot overrides %+v", cfg.Autopilot)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected admin token override, got %s", cfg.AdminToken)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envAutopilotRate, "not-a-duration")
	t.Setenv(envLeagueSeed, "-3")
	t.Setenv(envSaveRetention, "0")

	cfg := Load()

	if cfg.Autopilot.Interval != defaultAutopilotInterval {
		t.Fatalf("expected default interval on invalid value, got %s", cfg.Autopilot.Interval)
	}
	if cfg.League.Seed != defaultLeagueSeed {
		t.Fatalf("expected default seed on invalid value, got %d", cfg.League.Seed)
	}
	if cfg.Saves.Retention != defaultSaveRetention {
		t.Fatalf("expected default retention on non-positive value, got %d", cfg.Saves.Retention)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("LEAGUE_SIM_DOTENV_A=from-file\nLEAGUE_SIM_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LEAGUE_SIM_DOTENV_B", "from-process")
	t.Cleanup(func() { os.Unsetenv("LEAGUE_SIM_DOTENV_A") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("LEAGUE_SIM_DOTENV_A"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("LEAGUE_SIM_DOTENV_B"); got != "from-process" {
		t.Fatalf("expected process env to win, got %q", got)
	}
}

func TestLoadDotEnvMissingFilesAreSkipped(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing .env to be skipped, got %v", err)
	}
}
