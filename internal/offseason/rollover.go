package offseason

import (
	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/schedule"
)

// rollover closes the cycle: archive, age the league, reset the season and
// move the calendar into next year's preseason.
func (o *Orchestrator) rollover(state league.State) (league.State, error) {
	next := state.Clone()
	off := next.Offseason
	nextCal := calendar.Advance(next.Calendar)
	if nextCal.Phase != calendar.PhasePreseason {
		return state, errs.New(errs.CodeDataIntegrity, "offseason calendar at %s does not roll into the preseason", next.Calendar.Label())
	}

	next.History = append(next.History, summarize(*off))

	for ti := range next.Teams {
		t := &next.Teams[ti]
		t.HeadCoach.Seasons++
		t.HeadCoach.CareerWins += t.Record.Wins
		t.Record = teams.Record{}
		for pi := range t.Roster {
			agePlayer(&t.Roster[pi])
		}
	}
	for i := range next.FreeAgents {
		agePlayer(&next.FreeAgents[i])
	}

	sched, err := schedule.Generate(next.TeamIDs(), nextCal.Year, next.Seed)
	if err != nil {
		return state, errs.Wrap(errs.CodeDataIntegrity, "generate schedule", err)
	}
	next.Schedule = sched
	if o.draftClass != nil {
		next.Prospects = o.draftClass(next.Seed, nextCal.Year)
	}
	next.Playoffs = nil
	next.Offseason = nil
	next.Calendar = nextCal
	return next, nil
}

func agePlayer(p *players.Player) {
	p.Age++
	p.Experience++
	if p.Contract.YearsRemaining > 0 {
		p.Contract.YearsRemaining--
	}
	p.Contract.Rookie = p.Contract.Rookie && p.Contract.YearsRemaining > 0
	p.Contract.FranchiseTag = false
}

func summarize(off domainoffseason.State) domainoffseason.Summary {
	c := off.Clone()
	s := domainoffseason.Summary{
		Year:            c.Year,
		DraftOrder:      c.Data.DraftOrder,
		Awards:          c.Data.Awards,
		DraftSelections: c.Data.DraftSelections,
		CoachingChanges: c.Data.CoachingChanges,
		Signings:        c.Data.FreeAgentSignings,
		ChangeLog:       c.ChangeLog,
	}
	if c.Data.Awards != nil {
		s.ChampionID = c.Data.Awards.ChampionID
	}
	return s
}
