package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("AUTOPILOT_TEST", "")
	if got := boolEnvOrDefault("AUTOPILOT_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := map[string]bool{
		"true": true, "TRUE": true, "1": true, "yes": true, " on ": true,
		"false": false, "FALSE": false, "0": false, "no": false, "off": false,
	}
	for raw, want := range cases {
		t.Setenv("AUTOPILOT_TEST", raw)
		if got := boolEnvOrDefault("AUTOPILOT_TEST", !want); got != want {
			t.Fatalf("%q: expected %v, got %v", raw, want, got)
		}
	}

	t.Setenv("AUTOPILOT_TEST", "maybe")
	if got := boolEnvOrDefault("AUTOPILOT_TEST", true); !got {
		t.Fatalf("expected default on unknown value")
	}
}

func TestNumericEnvOrDefault(t *testing.T) {
	t.Setenv("SEED_TEST", " 42 ")
	if got := uint64EnvOrDefault("SEED_TEST", 7); got != 42 {
		t.Fatalf("expected trimmed seed 42, got %d", got)
	}
	t.Setenv("SEED_TEST", "abc")
	if got := uint64EnvOrDefault("SEED_TEST", 7); got != 7 {
		t.Fatalf("expected default seed on invalid value, got %d", got)
	}

	t.Setenv("RETENTION_TEST", "-3")
	if got := intEnvOrDefault("RETENTION_TEST", 5); got != 5 {
		t.Fatalf("expected default retention for negative value, got %d", got)
	}
	t.Setenv("RETENTION_TEST", "9")
	if got := intEnvOrDefault("RETENTION_TEST", 5); got != 9 {
		t.Fatalf("expected retention 9, got %d", got)
	}

	t.Setenv("INTERVAL_TEST", "0s")
	if got := durationEnvOrDefault("INTERVAL_TEST", time.Minute); got != time.Minute {
		t.Fatalf("expected default interval for zero duration, got %s", got)
	}
	t.Setenv("INTERVAL_TEST", "45s")
	if got := durationEnvOrDefault("INTERVAL_TEST", time.Minute); got != 45*time.Second {
		t.Fatalf("expected 45s, got %s", got)
	}
}

func TestEnvOrDefaultTrims(t *testing.T) {
	t.Setenv("SLOT_TEST", "   ")
	if got := envOrDefault("SLOT_TEST", "main"); got != "main" {
		t.Fatalf("expected default for blank value, got %q", got)
	}
	t.Setenv("SLOT_TEST", " dynasty ")
	if got := envOrDefault("SLOT_TEST", "main"); got != "dynasty" {
		t.Fatalf("expected trimmed slot, got %q", got)
	}
}
