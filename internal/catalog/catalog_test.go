package catalog

import "testing"

// TestDefaultContents verifies the seed catalog ships the four built-in
// progressions, all starting at level 0.
func TestDefaultContents(t *testing.T) {
	progs := Default()
	if len(progs) != 4 {
		t.Fatalf("len = %d, want 4", len(progs))
	}

	wantIDs := []string{
		"push-up-progression",
		"squat-progression",
		"pull-up-progression",
		"plank-progression",
	}
	for i, want := range wantIDs {
		if progs[i].ID != want {
			t.Errorf("progs[%d].ID = %q, want %q", i, progs[i].ID, want)
		}
		if progs[i].CurrentLevel != 0 {
			t.Errorf("progs[%d].CurrentLevel = %d, want 0", i, progs[i].CurrentLevel)
		}
		if err := progs[i].Validate(); err != nil {
			t.Errorf("progs[%d] fails validation: %v", i, err)
		}
	}
}

// TestDefaultIsCopy verifies that mutating the returned slice does not leak
// into subsequent calls.
func TestDefaultIsCopy(t *testing.T) {
	a := Default()
	a[0].CurrentLevel = 3
	a[0].Exercises[0].Name = "mutated"

	b := Default()
	if b[0].CurrentLevel != 0 {
		t.Error("CurrentLevel mutation leaked into a later Default() call")
	}
	if b[0].Exercises[0].Name == "mutated" {
		t.Error("Exercise mutation leaked into a later Default() call")
	}
}
