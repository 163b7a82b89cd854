package config

import "strings"

// SaveConfig selects where league snapshots are persisted.
type SaveConfig struct {
	Backend   string // "sqlite" or "fs"
	Path      string // directory holding the database or revision files
	Slot      string // slot loaded at startup
	Retention int    // revisions kept per slot
}

func loadSaves() SaveConfig {
	return SaveConfig{
		Backend:   strings.ToLower(envOrDefault(envSaveBackend, defaultSaveBackend)),
		Path:      envOrDefault(envSavePath, defaultSavePath),
		Slot:      envOrDefault(envSaveSlot, defaultSaveSlot),
		Retention: intEnvOrDefault(envSaveRetention, defaultSaveRetention),
	}
}
