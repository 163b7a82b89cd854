package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	keys := []string{AttrMethod, AttrPath, AttrStatus, AttrPhase, AttrAction, AttrOutcome, AttrBackend}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			t.Fatalf("expected metric attribute keys to be non-empty")
		}
		if seen[k] {
			t.Fatalf("duplicate attribute key %q", k)
		}
		seen[k] = true
	}
}
