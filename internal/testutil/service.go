package testutil

import (
	"testing"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
	"github.com/preston-bernstein/league-sim-service/internal/store"
)

// NewLeagueService builds a league service backed by an in-memory store and
// a filesystem save store in a temp dir. When preload is true the sample
// league is already held.
func NewLeagueService(t *testing.T, preload bool, opts ...appleague.Option) (*appleague.Service, saves.Store) {
	t.Helper()
	ms := store.NewMemoryStore()
	if preload {
		ms.Set(SampleLeague(t))
	}
	saveStore := NewTempSaves(t)
	opts = append([]appleague.Option{appleague.WithBackend(saves.BackendFS)}, opts...)
	return appleague.NewService(ms, saveStore, opts...), saveStore
}

// NewTempSaves returns a filesystem save store rooted in a temp dir.
func NewTempSaves(t *testing.T) *saves.FSStore {
	t.Helper()
	return saves.NewFSStore(t.TempDir(), saves.DefaultRetention)
}
