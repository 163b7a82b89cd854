package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/playoffs"
	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

func newStandingsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Print division standings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				table, err := s.svc.Standings()
				if err != nil {
					return err
				}
				return opts.emit(cmd, table, func(w io.Writer) error { return writeStandings(w, table) })
			})
		},
	}
}

func writeStandings(w io.Writer, table standings.Standings) error {
	tw := newTable(w)
	for _, conf := range teams.Conferences {
		for _, div := range table.DivisionNames(conf) {
			fmt.Fprintf(tw, "%s %s\tW\tL\tT\tPF\tPA\n", conf, div)
			for _, e := range table.Division(conf, div) {
				r := e.Record
				fmt.Fprintf(tw, "  %d. %s\t%d\t%d\t%d\t%d\t%d\n", e.Rank, e.TeamID, r.Wins, r.Losses, r.Ties, r.PointsFor, r.PointsAgainst)
			}
		}
	}
	return tw.Flush()
}

func newBracketCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bracket",
		Short: "Print the playoff bracket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				bracket, err := s.svc.Bracket()
				if err != nil {
					return err
				}
				return opts.emit(cmd, bracket, func(w io.Writer) error { return writeBracket(w, bracket) })
			})
		},
	}
}

func writeBracket(w io.Writer, b playoffs.Bracket) error {
	tw := newTable(w)
	for _, round := range playoffs.Rounds {
		matchups := b.RoundMatchups(round)
		if len(matchups) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\n", round)
		for _, m := range matchups {
			fmt.Fprintf(tw, "  (%d) %s\t%s\t@\t(%d) %s\t%s\t%s\n",
				m.AwaySeed, m.AwayTeamID, score(m.AwayScore), m.HomeSeed, m.HomeTeamID, score(m.HomeScore), m.WinnerID)
		}
	}
	if b.ChampionID != "" {
		fmt.Fprintf(tw, "Champion\t%s\n", b.ChampionID)
	}
	return tw.Flush()
}
