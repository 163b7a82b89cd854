package saves

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/saves/migrations"
)

// SQLiteStore keeps save slots in a single SQLite database.
type SQLiteStore struct {
	db        *sql.DB
	retention int
	now       func() time.Time
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string, retention int) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db, retention: retention, now: time.Now}, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// Save inserts a revision, repoints the slot and prunes old revisions in
// one transaction.
func (s *SQLiteStore) Save(ctx context.Context, slot string, state league.State) (Revision, error) {
	if err := ctx.Err(); err != nil {
		return Revision{}, err
	}
	if s == nil || s.db == nil {
		return Revision{}, errors.New("storage is not configured")
	}
	if err := ValidateSlot(slot); err != nil {
		return Revision{}, err
	}
	data, err := encode(state)
	if err != nil {
		return Revision{}, err
	}
	rev := newRevision(slot, state, s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO save_revisions (revision_id, slot, label, payload, saved_at) VALUES (?, ?, ?, ?, ?)`,
		rev.ID, slot, rev.Label, string(data), toMillis(rev.SavedAt),
	); err != nil {
		return Revision{}, fmt.Errorf("insert revision: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO save_slots (slot, revision_id, year, user_team_id, label, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   revision_id = excluded.revision_id,
		   year = excluded.year,
		   user_team_id = excluded.user_team_id,
		   label = excluded.label,
		   saved_at = excluded.saved_at`,
		slot, rev.ID, state.Calendar.Year, state.UserTeamID, rev.Label, toMillis(rev.SavedAt),
	); err != nil {
		return Revision{}, fmt.Errorf("upsert slot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM save_revisions
		 WHERE slot = ? AND revision_id NOT IN (
		   SELECT revision_id FROM save_revisions WHERE slot = ?
		   ORDER BY saved_at DESC, rowid DESC LIMIT ?
		 )`,
		slot, slot, s.retention,
	); err != nil {
		return Revision{}, fmt.Errorf("prune revisions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("commit save: %w", err)
	}
	return rev, nil
}

// Load reads the slot's current revision.
func (s *SQLiteStore) Load(ctx context.Context, slot string) (league.State, Revision, error) {
	if err := ctx.Err(); err != nil {
		return league.State{}, Revision{}, err
	}
	if s == nil || s.db == nil {
		return league.State{}, Revision{}, errors.New("storage is not configured")
	}
	if err := ValidateSlot(slot); err != nil {
		return league.State{}, Revision{}, err
	}

	var (
		rev     = Revision{Slot: slot}
		payload string
		savedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT r.revision_id, r.label, r.payload, r.saved_at
		 FROM save_slots s JOIN save_revisions r ON r.revision_id = s.revision_id
		 WHERE s.slot = ?`,
		slot,
	).Scan(&rev.ID, &rev.Label, &payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return league.State{}, Revision{}, ErrNotFound
	}
	if err != nil {
		return league.State{}, Revision{}, fmt.Errorf("load slot: %w", err)
	}
	rev.SavedAt = fromMillis(savedAt)

	state, err := decode([]byte(payload))
	if err != nil {
		return league.State{}, Revision{}, err
	}
	return state, rev, nil
}

// List summarizes every slot in name order.
func (s *SQLiteStore) List(ctx context.Context) ([]SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.slot, s.revision_id, s.label, s.year, s.user_team_id, s.saved_at,
		        (SELECT COUNT(*) FROM save_revisions r WHERE r.slot = s.slot)
		 FROM save_slots s ORDER BY s.slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var (
			info    SlotInfo
			savedAt int64
		)
		if err := rows.Scan(&info.Slot, &info.RevisionID, &info.Label, &info.Year, &info.UserTeamID, &savedAt, &info.Revisions); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		info.SavedAt = fromMillis(savedAt)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a slot and all of its revisions.
func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM save_slots WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM save_revisions WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete revisions: %w", err)
	}
	return tx.Commit()
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
