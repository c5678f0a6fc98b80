package mcp

import (
	"testing"
)

// TestParseSetsRepsOnly verifies comma-separated reps become bodyweight sets.
func TestParseSetsRepsOnly(t *testing.T) {
	sets, err := parseSets("15, 15,12", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(sets))
	}
	want := []int{15, 15, 12}
	for i, s := range sets {
		if s.Reps != want[i] {
			t.Errorf("sets[%d].Reps = %d, want %d", i, s.Reps, want[i])
		}
		if s.Weight != nil {
			t.Errorf("sets[%d].Weight = %v, want nil", i, *s.Weight)
		}
	}
}

// TestParseSetsWithWeights verifies weights align with sets, with empty
// positions meaning bodyweight.
func TestParseSetsWithWeights(t *testing.T) {
	sets, err := parseSets("5,5,5", "20,,22.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sets[0].Weight == nil || *sets[0].Weight != 20 {
		t.Errorf("sets[0].Weight = %v, want 20", sets[0].Weight)
	}
	if sets[1].Weight != nil {
		t.Errorf("sets[1].Weight = %v, want nil", *sets[1].Weight)
	}
	if sets[2].Weight == nil || *sets[2].Weight != 22.5 {
		t.Errorf("sets[2].Weight = %v, want 22.5", sets[2].Weight)
	}
}

// TestParseSetsBadReps verifies non-numeric reps are rejected.
func TestParseSetsBadReps(t *testing.T) {
	if _, err := parseSets("ten,10", ""); err == nil {
		t.Error("expected error for non-numeric reps")
	}
}

// TestParseSetsWeightCountMismatch verifies a weights list of the wrong
// length is rejected.
func TestParseSetsWeightCountMismatch(t *testing.T) {
	if _, err := parseSets("10,10,10", "20,20"); err == nil {
		t.Error("expected error for mismatched weights length")
	}
}

// TestParseSetsBadWeight verifies non-numeric weights are rejected.
func TestParseSetsBadWeight(t *testing.T) {
	if _, err := parseSets("10", "heavy"); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}
