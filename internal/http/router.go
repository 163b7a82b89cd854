package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/league-sim-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes are mounted
// only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)

	mux.HandleFunc("/league", handler.League)
	mux.HandleFunc("/calendar", handler.Calendar)
	mux.HandleFunc("/standings", handler.Standings)
	mux.HandleFunc("/playoffs", handler.Playoffs)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.TeamByID)
	mux.HandleFunc("/saves", handler.Saves)

	mux.HandleFunc("/season/week", handler.SimulateWeek)
	mux.HandleFunc("/season/preseason", handler.AdvancePreseason)
	mux.HandleFunc("/season/advance", handler.SimulateToPhase)

	mux.HandleFunc("/offseason", handler.Offseason)
	mux.HandleFunc("/offseason/start", handler.StartOffseason)
	mux.HandleFunc("/offseason/actions", handler.OffseasonAction)
	mux.HandleFunc("/offseason/advance", handler.AdvanceOffseason)

	if admin != nil {
		mux.HandleFunc("/admin/league/reset", admin.ResetLeague)
		mux.HandleFunc("/admin/league/load", admin.LoadSlot)
	}
	return mux
}
