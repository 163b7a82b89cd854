// Package cli implements leaguectl, a command-line front end that drives a
// league held in a save slot without running the HTTP service.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/config"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
	"github.com/preston-bernstein/league-sim-service/internal/store"
)

// options are the persistent flags shared by every command.
type options struct {
	backend   string
	dir       string
	slot      string
	retention int
	json      bool
	verbose   bool
	defaults  config.LeagueConfig
}

// NewRootCommand builds the leaguectl command tree. Flag defaults come from
// the environment, so load any .env file before calling it.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &options{
		backend:   cfg.Saves.Backend,
		dir:       cfg.Saves.Path,
		slot:      cfg.Saves.Slot,
		retention: cfg.Saves.Retention,
		defaults:  cfg.League,
	}

	root := &cobra.Command{
		Use:   "leaguectl",
		Short: "Drive a simulated league stored in a save slot",
		Long: `leaguectl creates, simulates and inspects leagues stored by the
league simulation service. Every command loads the slot, applies one
transition and saves a new revision before it exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", opts.backend, "save backend (sqlite or fs)")
	flags.StringVar(&opts.dir, "dir", opts.dir, "directory holding the saves")
	flags.StringVar(&opts.slot, "slot", opts.slot, "save slot to operate on")
	flags.BoolVar(&opts.json, "json", false, "print results as JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log engine and save activity to stderr")

	root.AddCommand(
		newNewCmd(opts),
		newStatusCmd(opts),
		newSimWeekCmd(opts),
		newSimSeasonCmd(opts),
		newStandingsCmd(opts),
		newBracketCmd(opts),
		newOffseasonCmd(opts),
		newSlotsCmd(opts),
	)
	return root
}

// session is one opened save store and the service bound to it.
type session struct {
	svc   *appleague.Service
	saves saves.Store
}

func (s *session) Close() error {
	return s.saves.Close()
}

// open binds a league service to the configured slot. When load is true
// the slot's latest revision is held before it returns.
func (o *options) open(cmd *cobra.Command, load bool) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := saves.Open(ctx, o.backend, o.dir, o.retention)
	if err != nil {
		return nil, fmt.Errorf("open saves: %w", err)
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.Config{Level: level, Output: cmd.ErrOrStderr()})

	svc := appleague.NewService(store.NewMemoryStore(), st,
		appleague.WithSlot(o.slot),
		appleague.WithBackend(o.backend),
		appleague.WithLogger(logger),
	)
	s := &session{svc: svc, saves: st}
	if !load {
		return s, nil
	}
	if _, err := svc.Load(ctx, o.slot); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load slot %s: %w", o.slot, err)
	}
	return s, nil
}

// withSession opens the slot, runs fn and closes the store.
func (o *options) withSession(cmd *cobra.Command, load bool, fn func(*session) error) (err error) {
	s, err := o.open(cmd, load)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close saves: %w", cerr)
		}
	}()
	return fn(s)
}
