package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
)

func newOffseasonCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offseason",
		Short: "Work through the offseason phases",
	}
	cmd.AddCommand(
		newOffseasonStartCmd(opts),
		newOffseasonProgressCmd(opts),
		newOffseasonDispatchCmd(opts),
		newOffseasonAutoCmd(opts),
		newOffseasonAdvanceCmd(opts),
	)
	return cmd
}

func newOffseasonStartCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open the offseason after the Super Bowl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				state, err := s.svc.EnterOffseason(cmd.Context())
				if err != nil {
					return err
				}
				view := newStatusView(state)
				return opts.emit(cmd, view, view.write)
			})
		},
	}
}

func newOffseasonProgressCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the current phase and its tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				view, err := s.svc.Offseason()
				if err != nil {
					return err
				}
				return opts.emit(cmd, view, func(w io.Writer) error { return writeProgress(w, view) })
			})
		},
	}
}

func writeProgress(w io.Writer, view appleague.OffseasonView) error {
	st := view.State
	fmt.Fprintf(w, "%d offseason: %s (%.0f%%)\n", st.Year, st.CurrentPhase, view.Progress)
	tw := newTable(w)
	for _, task := range st.Tasks[st.CurrentPhase] {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		req := ""
		if task.Required {
			req = "required"
		}
		fmt.Fprintf(tw, "  [%s] %s\t%s\t%s\n", mark, task.ID, task.Title, req)
	}
	return tw.Flush()
}

func newOffseasonDispatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <action-json|->",
		Short: "Apply one offseason action",
		Long: `Apply one tagged offseason action, for example:

  leaguectl offseason dispatch '{"type":"COMPLETE_TASK","phase":"SEASON_END","taskId":"review-season"}'

Pass - to read the action from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := []byte(args[0])
			if args[0] == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read action: %w", err)
				}
				payload = data
			}
			action, err := domainoffseason.DecodeAction(payload)
			if err != nil {
				return err
			}
			return opts.withSession(cmd, true, func(s *session) error {
				return dispatch(cmd, opts, s, action)
			})
		},
	}
}

func newOffseasonAutoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Auto-complete every task of the current phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				view, err := s.svc.Offseason()
				if err != nil {
					return err
				}
				return dispatch(cmd, opts, s, domainoffseason.AutoComplete{Phase: view.State.CurrentPhase})
			})
		},
	}
}

func dispatch(cmd *cobra.Command, opts *options, s *session, action domainoffseason.Action) error {
	if _, err := s.svc.Dispatch(cmd.Context(), action); err != nil {
		return err
	}
	view, err := s.svc.Offseason()
	if err != nil {
		return err
	}
	return opts.emit(cmd, view, func(w io.Writer) error { return writeProgress(w, view) })
}

func newOffseasonAdvanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Move to the next offseason phase",
		Long: `Move to the next offseason phase once every required task of the
current phase is complete. Advancing past SEASON_START rolls the league
into the next year's preseason.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, true, func(s *session) error {
				state, err := s.svc.AdvanceOffseason(cmd.Context())
				if err != nil {
					return err
				}
				view := newStatusView(state)
				return opts.emit(cmd, view, view.write)
			})
		},
	}
}
