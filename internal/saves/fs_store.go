package saves

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
)

// FSStore keeps each slot as a directory of JSON revisions plus a shared
// manifest. Writes go through a temp file and rename.
type FSStore struct {
	basePath  string
	retention int
	now       func() time.Time

	mu sync.Mutex
}

// NewFSStore constructs a store rooted at basePath that keeps the newest
// retention revisions per slot.
func NewFSStore(basePath string, retention int) *FSStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &FSStore{basePath: basePath, retention: retention, now: time.Now}
}

// BasePath exposes the store root.
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// RevisionPath returns where a revision's snapshot lives on disk.
func RevisionPath(basePath, slot, revisionID string) string {
	return filepath.Join(basePath, "slots", slot, fmt.Sprintf("%s.json", revisionID))
}

// Save writes a new revision and prunes revisions beyond the retention window.
func (s *FSStore) Save(ctx context.Context, slot string, state league.State) (Revision, error) {
	if err := ctx.Err(); err != nil {
		return Revision{}, err
	}
	if s == nil {
		return Revision{}, errors.New("save store not configured")
	}
	if err := ValidateSlot(slot); err != nil {
		return Revision{}, err
	}
	data, err := encode(state)
	if err != nil {
		return Revision{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(filepath.Join(s.basePath, manifestFile), s.retention)
	if err != nil && !os.IsNotExist(err) {
		return Revision{}, fmt.Errorf("read manifest: %w", err)
	}

	rev := newRevision(slot, state, s.now())
	if err := writeBytesAtomic(RevisionPath(s.basePath, slot, rev.ID), data); err != nil {
		return Revision{}, fmt.Errorf("write revision: %w", err)
	}

	m.Retention = s.retention
	meta := m.Slots[slot]
	meta.Year = state.Calendar.Year
	meta.UserTeamID = state.UserTeamID
	meta.Revisions = append(meta.Revisions, rev)
	meta.Revisions = s.prune(slot, meta.Revisions)
	m.Slots[slot] = meta

	if err := writeManifest(s.basePath, m); err != nil {
		return Revision{}, fmt.Errorf("write manifest: %w", err)
	}
	return rev, nil
}

func (s *FSStore) prune(slot string, revisions []Revision) []Revision {
	if len(revisions) <= s.retention {
		return revisions
	}
	drop := len(revisions) - s.retention
	for _, r := range revisions[:drop] {
		_ = os.Remove(RevisionPath(s.basePath, slot, r.ID))
	}
	return append([]Revision(nil), revisions[drop:]...)
}

// Load reads the newest revision of slot.
func (s *FSStore) Load(ctx context.Context, slot string) (league.State, Revision, error) {
	if err := ctx.Err(); err != nil {
		return league.State{}, Revision{}, err
	}
	if s == nil {
		return league.State{}, Revision{}, errors.New("save store not configured")
	}
	if err := ValidateSlot(slot); err != nil {
		return league.State{}, Revision{}, err
	}

	s.mu.Lock()
	m, err := readManifest(filepath.Join(s.basePath, manifestFile), s.retention)
	s.mu.Unlock()
	if err != nil && !os.IsNotExist(err) {
		return league.State{}, Revision{}, fmt.Errorf("read manifest: %w", err)
	}
	rev, ok := m.Slots[slot].Latest()
	if !ok {
		return league.State{}, Revision{}, ErrNotFound
	}

	data, err := os.ReadFile(RevisionPath(s.basePath, slot, rev.ID))
	if err != nil {
		if os.IsNotExist(err) {
			return league.State{}, Revision{}, ErrNotFound
		}
		return league.State{}, Revision{}, err
	}
	state, err := decode(data)
	if err != nil {
		return league.State{}, Revision{}, err
	}
	return state, rev, nil
}

// List summarizes every slot in name order.
func (s *FSStore) List(ctx context.Context) ([]SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	m, err := readManifest(filepath.Join(s.basePath, manifestFile), s.retention)
	s.mu.Unlock()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	out := make([]SlotInfo, 0, len(m.Slots))
	for name, meta := range m.Slots {
		rev, ok := meta.Latest()
		if !ok {
			continue
		}
		out = append(out, SlotInfo{
			Slot:       name,
			RevisionID: rev.ID,
			Label:      rev.Label,
			Year:       meta.Year,
			UserTeamID: meta.UserTeamID,
			SavedAt:    rev.SavedAt,
			Revisions:  len(meta.Revisions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

// Delete removes a slot and its revisions.
func (s *FSStore) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := readManifest(filepath.Join(s.basePath, manifestFile), s.retention)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read manifest: %w", err)
	}
	if _, ok := m.Slots[slot]; !ok {
		return ErrNotFound
	}
	delete(m.Slots, slot)
	if err := os.RemoveAll(filepath.Join(s.basePath, "slots", slot)); err != nil {
		return err
	}
	return writeManifest(s.basePath, m)
}

// Close is a no-op for the filesystem store.
func (s *FSStore) Close() error {
	return nil
}

var _ Store = (*FSStore)(nil)
