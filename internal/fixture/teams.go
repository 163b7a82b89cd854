package fixture

import "github.com/preston-bernstein/league-sim-service/internal/domain/teams"

type franchise struct {
	name         string
	city         string
	abbreviation string
	conference   string
	division     string
}

// franchises lists all 32 clubs across eight divisions.
var franchises = []franchise{
	{"Eagles", "Philadelphia", "PHI", teams.ConferenceNFC, "NFC East"},
	{"Cowboys", "Dallas", "DAL", teams.ConferenceNFC, "NFC East"},
	{"Giants", "New York", "NYG", teams.ConferenceNFC, "NFC East"},
	{"Commanders", "Washington", "WAS", teams.ConferenceNFC, "NFC East"},
	{"Bears", "Chicago", "CHI", teams.ConferenceNFC, "NFC North"},
	{"Lions", "Detroit", "DET", teams.ConferenceNFC, "NFC North"},
	{"Packers", "Green Bay", "GB", teams.ConferenceNFC, "NFC North"},
	{"Vikings", "Minnesota", "MIN", teams.ConferenceNFC, "NFC North"},
	{"Falcons", "Atlanta", "ATL", teams.ConferenceNFC, "NFC South"},
	{"Panthers", "Carolina", "CAR", teams.ConferenceNFC, "NFC South"},
	{"Saints", "New Orleans", "NO", teams.ConferenceNFC, "NFC South"},
	{"Buccaneers", "Tampa Bay", "TB", teams.ConferenceNFC, "NFC South"},
	{"Cardinals", "Arizona", "ARI", teams.ConferenceNFC, "NFC West"},
	{"Rams", "Los Angeles", "LAR", teams.ConferenceNFC, "NFC West"},
	{"49ers", "San Francisco", "SF", teams.ConferenceNFC, "NFC West"},
	{"Seahawks", "Seattle", "SEA", teams.ConferenceNFC, "NFC West"},
	{"Bills", "Buffalo", "BUF", teams.ConferenceAFC, "AFC East"},
	{"Dolphins", "Miami", "MIA", teams.ConferenceAFC, "AFC East"},
	{"Patriots", "New England", "NE", teams.ConferenceAFC, "AFC East"},
	{"Jets", "New York", "NYJ", teams.ConferenceAFC, "AFC East"},
	{"Ravens", "Baltimore", "BAL", teams.ConferenceAFC, "AFC North"},
	{"Bengals", "Cincinnati", "CIN", teams.ConferenceAFC, "AFC North"},
	{"Browns", "Cleveland", "CLE", teams.ConferenceAFC, "AFC North"},
	{"Steelers", "Pittsburgh", "PIT", teams.ConferenceAFC, "AFC North"},
	{"Texans", "Houston", "HOU", teams.ConferenceAFC, "AFC South"},
	{"Colts", "Indianapolis", "IND", teams.ConferenceAFC, "AFC South"},
	{"Jaguars", "Jacksonville", "JAX", teams.ConferenceAFC, "AFC South"},
	{"Titans", "Tennessee", "TEN", teams.ConferenceAFC, "AFC South"},
	{"Broncos", "Denver", "DEN", teams.ConferenceAFC, "AFC West"},
	{"Chiefs", "Kansas City", "KC", teams.ConferenceAFC, "AFC West"},
	{"Raiders", "Las Vegas", "LV", teams.ConferenceAFC, "AFC West"},
	{"Chargers", "Los Angeles", "LAC", teams.ConferenceAFC, "AFC West"},
}

var firstNames = []string{
	"Aaron", "Andre", "Brandon", "Caleb", "Cameron", "Chris", "Darius", "David", "DeShawn", "Derek",
	"Dylan", "Elijah", "Ethan", "Garrett", "Isaiah", "Jalen", "Jamal", "Jordan", "Josh", "Justin",
	"Kendall", "Kevin", "Kyle", "Landon", "Malik", "Marcus", "Mason", "Micah", "Nate", "Noah",
	"Omar", "Patrick", "Quentin", "Reggie", "Ryan", "Sam", "Terrell", "Trevon", "Tyler", "Xavier",
}

var lastNames = []string{
	"Adams", "Allen", "Baker", "Bell", "Brooks", "Brown", "Carter", "Coleman", "Davis", "Edwards",
	"Evans", "Foster", "Green", "Griffin", "Harris", "Hayes", "Hill", "Jackson", "Jenkins", "Johnson",
	"Jones", "King", "Lewis", "Marshall", "Mitchell", "Moore", "Morgan", "Nelson", "Parker", "Price",
	"Reed", "Robinson", "Russell", "Simmons", "Smith", "Taylor", "Thomas", "Turner", "Walker", "Washington",
	"Watson", "White", "Williams", "Wilson", "Wright", "Young",
}

var colleges = []string{
	"Alabama", "Georgia", "Ohio State", "Michigan", "LSU", "Clemson", "Texas", "Oregon", "USC", "Notre Dame",
	"Penn State", "Florida", "Oklahoma", "Miami", "Wisconsin", "Iowa", "Utah", "Washington", "TCU", "Tennessee",
}
