package players

import (
	"reflect"
	"testing"
)

func TestPlayerJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playerType := reflect.TypeOf(Player{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"FirstName", "firstName"},
		{"LastName", "lastName"},
		{"Position", "position"},
		{"Overall", "overall"},
		{"Contract", "contract"},
		{"Injury", "injury,omitempty"},
	}
	for _, fc := range fields {
		f, ok := playerType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestSeverityFor(t *testing.T) {
	cases := []struct {
		weeks    int
		expected Severity
	}{
		{1, SeverityOut},
		{4, SeverityOut},
		{5, SeverityIR},
		{12, SeverityIR},
	}
	for _, tc := range cases {
		if got := SeverityFor(tc.weeks); got != tc.expected {
			t.Fatalf("weeks %d: expected %s, got %s", tc.weeks, tc.expected, got)
		}
	}
}

func TestCloneCopiesInjury(t *testing.T) {
	p := Player{ID: "p1", Injury: &Injury{WeeksRemaining: 3, Severity: SeverityOut}}
	c := p.Clone()
	c.Injury.WeeksRemaining = 0

	if p.Injury.WeeksRemaining != 3 {
		t.Fatalf("expected original injury untouched, got %d", p.Injury.WeeksRemaining)
	}
}

func TestProspectToPlayerMarksRookie(t *testing.T) {
	pr := Prospect{ID: "x", FirstName: "A", LastName: "B", Position: PosWR, Age: 21, Overall: 64}
	p := pr.ToPlayer(Contract{Salary: 900, YearsRemaining: 4})

	if !p.Contract.Rookie || p.Experience != 0 || p.Position != PosWR {
		t.Fatalf("unexpected rookie %+v", p)
	}
	if p.Name() != "A B" {
		t.Fatalf("expected name A B, got %s", p.Name())
	}
}
