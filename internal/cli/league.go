package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
	"github.com/preston-bernstein/league-sim-service/internal/season"
)

func newNewCmd(opts *options) *cobra.Command {
	var (
		seed  uint64
		year  int
		team  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new league in the slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, false, func(s *session) error {
				if !force {
					if _, _, err := s.saves.Load(cmd.Context(), opts.slot); err == nil {
						return fmt.Errorf("slot %s already holds a league, pass --force to replace it", opts.slot)
					} else if !isNotFound(err) {
						return err
					}
				}
				state, err := s.svc.NewLeague(cmd.Context(), fixture.Options{
					Seed:       seed,
					Year:       year,
					UserTeamID: strings.ToLower(team),
				})
				if err != nil {
					return err
				}
				view := newStatusView(state)
				return opts.emit(cmd, view, view.write)
			})
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", opts.defaults.Seed, "seed for rosters, schedule and results")
	cmd.Flags().IntVar(&year, "year", opts.defaults.Year, "first season year")
	cmd.Flags().StringVar(&team, "team", opts.defaults.UserTeamID, "user-controlled team id")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing league in the slot")
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the league is in its calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				state, err := s.svc.Current()
				if err != nil {
					return err
				}
				view := newStatusView(state)
				return opts.emit(cmd, view, view.write)
			})
		},
	}
}

func newSimWeekCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sim-week",
		Short: "Play the current week",
		Long: `Play the current regular-season or playoff week. During the preseason
this moves the calendar one preseason week forward instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				cur, err := s.svc.Current()
				if err != nil {
					return err
				}
				if cur.Calendar.Phase == calendar.PhasePreseason {
					state, err := s.svc.AdvancePreseason(cmd.Context())
					if err != nil {
						return err
					}
					view := newStatusView(state)
					return opts.emit(cmd, view, view.write)
				}
				_, report, err := s.svc.SimulateWeek(cmd.Context())
				if err != nil {
					return err
				}
				return opts.emit(cmd, report, func(w io.Writer) error { return writeReport(w, report) })
			})
		},
	}
}

func writeReport(w io.Writer, report season.Report) error {
	if report.NoOp {
		_, err := fmt.Fprintf(w, "%d week %d (%s): nothing to play\n", report.Year, report.Week, report.Phase)
		return err
	}
	fmt.Fprintf(w, "%d week %d (%s)\n", report.Year, report.Week, report.Phase)
	tw := newTable(w)
	for _, g := range report.Games {
		fmt.Fprintf(tw, "  %s\t%s\t@\t%s\t%s\n", g.AwayTeamID, score(g.AwayScore), g.HomeTeamID, score(g.HomeScore))
	}
	for _, m := range report.Matchups {
		fmt.Fprintf(tw, "  %s\t%s\t@\t%s\t%s\t%s\n", m.AwayTeamID, score(m.AwayScore), m.HomeTeamID, score(m.HomeScore), m.Round)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(report.Injuries) > 0 {
		fmt.Fprintf(w, "Injuries: %d\n", len(report.Injuries))
	}
	if report.Champion != "" {
		fmt.Fprintf(w, "Champion: %s\n", report.Champion)
	}
	return nil
}

func newSimSeasonCmd(opts *options) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "sim-season",
		Short: "Simulate until the league reaches a calendar phase",
		Long: `Simulate week by week until the league reaches the target phase. The
default target is the offseason, which plays out the rest of the regular
season and the playoffs. Offseason phases are auto-completed on the way
to a later target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				state, err := s.svc.SimulateToPhase(cmd.Context(), calendar.Phase(strings.ToUpper(to)))
				if err != nil {
					return err
				}
				view := newStatusView(state)
				return opts.emit(cmd, view, view.write)
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", string(calendar.PhaseOffseason), "target phase (PRESEASON, REGULAR_SEASON, PLAYOFFS, OFFSEASON)")
	return cmd
}

func newSlotsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List save slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, false, func(s *session) error {
				slots, err := s.svc.Slots(cmd.Context())
				if err != nil {
					return err
				}
				return opts.emit(cmd, slots, func(w io.Writer) error {
					tw := newTable(w)
					fmt.Fprintln(tw, "SLOT\tLABEL\tTEAM\tREVISIONS\tSAVED")
					for _, info := range slots {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", info.Slot, info.Label, info.UserTeamID, info.Revisions, info.SavedAt.Format("2006-01-02 15:04:05"))
					}
					return tw.Flush()
				})
			})
		},
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, saves.ErrNotFound)
}
