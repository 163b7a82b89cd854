package offseason

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseOrderMapsToSubphases(t *testing.T) {
	require.Len(t, Phases, 12)
	for i, p := range Phases {
		assert.Equal(t, i+1, p.Index())
		got, ok := PhaseAt(i + 1)
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	_, ok := PhaseAt(13)
	assert.False(t, ok)
	assert.Equal(t, 0, Phase("NOPE").Index())
}

func TestPhaseNext(t *testing.T) {
	next, ok := PhaseFreeAgency.Next()
	assert.True(t, ok)
	assert.Equal(t, PhaseDraft, next)

	_, ok = PhaseSeasonStart.Next()
	assert.False(t, ok)
}

func TestDecodeActionRoundTripsTaggedPayload(t *testing.T) {
	raw := []byte(`{"type":"APPLY_DRAFT_SELECTIONS","phase":"DRAFT","selections":[{"round":1,"pick":1,"teamId":"CHI","prospectId":"p-1"}]}`)

	action, err := DecodeAction(raw)
	require.NoError(t, err)

	sel, ok := action.(ApplyDraftSelections)
	require.True(t, ok)
	assert.Equal(t, PhaseDraft, sel.TargetPhase())
	assert.Equal(t, PhaseDraft, sel.RequiredPhase())
	require.Len(t, sel.Selections, 1)
	assert.Equal(t, "p-1", sel.Selections[0].ProspectID)

	encoded, err := EncodeAction(action)
	require.NoError(t, err)
	again, err := DecodeAction(encoded)
	require.NoError(t, err)
	assert.Equal(t, action, again)
}

func TestDecodeActionRejectsUnknownOrInvalid(t *testing.T) {
	cases := []string{
		`{"phase":"DRAFT"}`,
		`{"type":"TRADE","phase":"DRAFT"}`,
		`{"type":"COMPLETE_TASK","phase":"HALFTIME","taskId":"x"}`,
		`not json`,
	}
	for _, raw := range cases {
		_, err := DecodeAction([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := State{
		CurrentPhase: PhaseDraft,
		Data: Data{
			DraftOrder: []string{"a", "b"},
			Awards:     &Awards{MVP: &AwardWinner{PlayerID: "p"}},
			OTAReports: []OTAReport{{TeamID: "t", Standouts: []string{"x"}}},
		},
		Tasks: map[Phase][]Task{PhaseDraft: {{ID: "draft-complete", Required: true}}},
	}
	c := s.Clone()
	c.Data.DraftOrder[0] = "z"
	c.Data.Awards.MVP.PlayerID = "q"
	c.Data.OTAReports[0].Standouts[0] = "y"
	c.Tasks[PhaseDraft][0].Completed = true

	assert.Equal(t, "a", s.Data.DraftOrder[0])
	assert.Equal(t, "p", s.Data.Awards.MVP.PlayerID)
	assert.Equal(t, "x", s.Data.OTAReports[0].Standouts[0])
	assert.False(t, s.Tasks[PhaseDraft][0].Completed)
}

func TestPendingRequired(t *testing.T) {
	s := State{CurrentPhase: PhaseOTAs, Tasks: map[Phase][]Task{
		PhaseOTAs: {{ID: "a", Required: true}, {ID: "b"}, {ID: "c", Required: true, Completed: true}},
	}}
	pending := s.PendingRequired()
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].ID)
}
