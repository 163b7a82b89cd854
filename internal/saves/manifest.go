package saves

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// Manifest tracks the revisions stored for each slot, oldest first.
type Manifest struct {
	Version     int                 `json:"version"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Retention   int                 `json:"retention"`
	Slots       map[string]SlotMeta `json:"slots"`
}

// SlotMeta is the manifest entry for one slot.
type SlotMeta struct {
	Year       int        `json:"year"`
	UserTeamID string     `json:"userTeamId,omitempty"`
	Revisions  []Revision `json:"revisions"`
}

// Latest returns the newest revision.
func (m SlotMeta) Latest() (Revision, bool) {
	if len(m.Revisions) == 0 {
		return Revision{}, false
	}
	return m.Revisions[len(m.Revisions)-1], true
}

func defaultManifest(retention int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention:   retention,
		Slots:       map[string]SlotMeta{},
	}
}

func readManifest(path string, retention int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	if m.Slots == nil {
		m.Slots = map[string]SlotMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	return writeFileAtomic(filepath.Join(basePath, manifestFile), m)
}

// writeFileAtomic marshals payload to a temp file and renames it over path.
func writeFileAtomic(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return writeBytesAtomic(path, data)
}

func writeBytesAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
