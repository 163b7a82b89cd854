// Package saves persists league snapshots in named save slots.
package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
)

// ErrNotFound is returned when a slot has never been saved.
var ErrNotFound = errors.New("save slot not found")

// DefaultRetention is how many revisions a slot keeps when unset.
const DefaultRetention = 5

const maxSlotLen = 64

// Revision identifies one stored snapshot of a slot.
type Revision struct {
	ID      string    `json:"id"`
	Slot    string    `json:"slot"`
	Label   string    `json:"label"`
	SavedAt time.Time `json:"savedAt"`
}

// SlotInfo summarizes the latest revision of a slot.
type SlotInfo struct {
	Slot       string    `json:"slot"`
	RevisionID string    `json:"revisionId"`
	Label      string    `json:"label"`
	Year       int       `json:"year"`
	UserTeamID string    `json:"userTeamId,omitempty"`
	SavedAt    time.Time `json:"savedAt"`
	Revisions  int       `json:"revisions"`
}

// Store reads and writes save slots. Save must be durable before it returns.
type Store interface {
	Save(ctx context.Context, slot string, state league.State) (Revision, error)
	Load(ctx context.Context, slot string) (league.State, Revision, error)
	List(ctx context.Context) ([]SlotInfo, error)
	Delete(ctx context.Context, slot string) error
	Close() error
}

// ValidateSlot rejects names that are empty, too long or not path-safe.
func ValidateSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name required")
	}
	if len(slot) > maxSlotLen {
		return fmt.Errorf("slot name longer than %d characters", maxSlotLen)
	}
	for _, r := range slot {
		ok := r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("slot name %q may only contain letters, digits, '-' and '_'", slot)
		}
	}
	return nil
}

// encode validates and serializes a snapshot for storage.
func encode(state league.State) ([]byte, error) {
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save invalid snapshot: %w", err)
	}
	return json.MarshalIndent(state, "", "  ")
}

func decode(data []byte) (league.State, error) {
	var state league.State
	if err := json.Unmarshal(data, &state); err != nil {
		return league.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := state.Validate(); err != nil {
		return league.State{}, fmt.Errorf("stored snapshot is invalid: %w", err)
	}
	return state, nil
}

func newRevision(slot string, state league.State, now time.Time) Revision {
	return Revision{
		ID:      uuid.NewString(),
		Slot:    slot,
		Label:   state.Calendar.Label(),
		SavedAt: now.UTC(),
	}
}

// Copy writes the latest snapshot of slot from src into dst.
func Copy(ctx context.Context, src, dst Store, slot string) (Revision, error) {
	state, _, err := src.Load(ctx, slot)
	if err != nil {
		return Revision{}, err
	}
	return dst.Save(ctx, slot, state)
}
