package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/offseason"
)

// emit prints v as indented JSON when --json is set, otherwise calls text.
func (o *options) emit(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	out := cmd.OutOrStdout()
	if o.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(out)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// statusView is the one-screen summary of a league.
type statusView struct {
	Label            string  `json:"label"`
	Year             int     `json:"year"`
	UserTeamID       string  `json:"userTeamId,omitempty"`
	GamesRemaining   int     `json:"gamesRemaining"`
	OffseasonPhase   string  `json:"offseasonPhase,omitempty"`
	Progress         float64 `json:"offseasonProgress,omitempty"`
	ChampionID       string  `json:"championId,omitempty"`
	CompletedSeasons int     `json:"completedSeasons"`
}

func newStatusView(state league.State) statusView {
	v := statusView{
		Label:            state.Calendar.Label(),
		Year:             state.Calendar.Year,
		UserTeamID:       state.UserTeamID,
		GamesRemaining:   state.Schedule.Remaining(),
		CompletedSeasons: len(state.History),
	}
	if state.Offseason != nil {
		v.OffseasonPhase = string(state.Offseason.CurrentPhase)
		v.Progress = offseason.Progress(*state.Offseason)
	}
	if state.Playoffs != nil {
		v.ChampionID = state.Playoffs.ChampionID
	}
	return v
}

func (v statusView) write(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Calendar:\t%s\n", v.Label)
	if v.UserTeamID != "" {
		fmt.Fprintf(tw, "User team:\t%s\n", v.UserTeamID)
	}
	fmt.Fprintf(tw, "Games remaining:\t%d\n", v.GamesRemaining)
	if v.OffseasonPhase != "" {
		fmt.Fprintf(tw, "Offseason phase:\t%s (%.0f%%)\n", v.OffseasonPhase, v.Progress)
	}
	if v.ChampionID != "" {
		fmt.Fprintf(tw, "Champion:\t%s\n", v.ChampionID)
	}
	fmt.Fprintf(tw, "Completed seasons:\t%d\n", v.CompletedSeasons)
	return tw.Flush()
}

func score(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}
