package players

// Position is a roster slot abbreviation.
type Position string

const (
	PosQB Position = "QB"
	PosRB Position = "RB"
	PosWR Position = "WR"
	PosTE Position = "TE"
	PosOL Position = "OL"
	PosDL Position = "DL"
	PosLB Position = "LB"
	PosCB Position = "CB"
	PosS  Position = "S"
	PosK  Position = "K"
	PosP  Position = "P"
)

// Positions lists every position in depth-chart order.
var Positions = []Position{PosQB, PosRB, PosWR, PosTE, PosOL, PosDL, PosLB, PosCB, PosS, PosK, PosP}

// IsOffense reports whether the position plays on offense.
func (p Position) IsOffense() bool {
	switch p {
	case PosQB, PosRB, PosWR, PosTE, PosOL:
		return true
	}
	return false
}

// IsDefense reports whether the position plays on defense.
func (p Position) IsDefense() bool {
	switch p {
	case PosDL, PosLB, PosCB, PosS:
		return true
	}
	return false
}

// Severity classifies how long an injury keeps a player out.
type Severity string

const (
	SeverityOut Severity = "OUT"
	SeverityIR  Severity = "IR"
)

// IRThresholdWeeks is the longest absence that still counts as Out.
const IRThresholdWeeks = 4

// SeverityFor classifies an absence of the given length.
func SeverityFor(weeksRemaining int) Severity {
	if weeksRemaining > IRThresholdWeeks {
		return SeverityIR
	}
	return SeverityOut
}

// Injury is an active injury. A nil *Injury means healthy.
type Injury struct {
	Description    string   `json:"description"`
	WeeksRemaining int      `json:"weeksRemaining"`
	Severity       Severity `json:"severity"`
}

// Contract is a player's current deal. Salary is in thousands of dollars.
type Contract struct {
	Salary         int  `json:"salary"`
	YearsRemaining int  `json:"yearsRemaining"`
	Rookie         bool `json:"rookie,omitempty"`
	FranchiseTag   bool `json:"franchiseTag,omitempty"`
}

// Player is a rostered or free-agent player.
type Player struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Position   Position `json:"position"`
	Age        int      `json:"age"`
	Experience int      `json:"experience"`
	Overall    int      `json:"overall"`
	Potential  int      `json:"potential"`
	Contract   Contract `json:"contract"`
	Injury     *Injury  `json:"injury,omitempty"`
}

// Name returns "First Last".
func (p Player) Name() string {
	return p.FirstName + " " + p.LastName
}

// IsInjured reports whether the player is currently unavailable.
func (p Player) IsInjured() bool {
	return p.Injury != nil && p.Injury.WeeksRemaining > 0
}

// Clone returns a copy that shares no pointers with p.
func (p Player) Clone() Player {
	if p.Injury != nil {
		inj := *p.Injury
		p.Injury = &inj
	}
	return p
}

// Prospect is a draft-eligible player who has not yet entered the league.
type Prospect struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Position  Position `json:"position"`
	College   string   `json:"college"`
	Age       int      `json:"age"`
	Overall   int      `json:"overall"`
	Potential int      `json:"potential"`
}

// Name returns "First Last".
func (p Prospect) Name() string {
	return p.FirstName + " " + p.LastName
}

// ToPlayer converts a signed prospect into a rookie player.
func (p Prospect) ToPlayer(contract Contract) Player {
	contract.Rookie = true
	return Player{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Position:   p.Position,
		Age:        p.Age,
		Experience: 0,
		Overall:    p.Overall,
		Potential:  p.Potential,
		Contract:   contract,
	}
}
