package models

import (
	"errors"
	"testing"
)

var pushUps = Exercise{
	ID:          "full-push-ups",
	Name:        "Full Push-ups",
	Description: "Standard push-ups",
	TargetSets:  3,
	TargetReps:  10,
}

// TestTargetMetExact verifies that hitting the target exactly satisfies the
// level-up criterion.
func TestTargetMetExact(t *testing.T) {
	if !pushUps.TargetMet(3, []int{10, 10, 10}) {
		t.Error("3 sets of exactly 10 reps should meet a 3x10 target")
	}
}

// TestTargetMetExceeded verifies that extra sets and reps still meet the target.
func TestTargetMetExceeded(t *testing.T) {
	if !pushUps.TargetMet(4, []int{12, 11, 10, 15}) {
		t.Error("4 sets all above 10 reps should meet a 3x10 target")
	}
}

// TestTargetMetOneSetShort verifies that one set below the rep target fails
// the criterion even when the others exceed it.
func TestTargetMetOneSetShort(t *testing.T) {
	if pushUps.TargetMet(3, []int{5, 10, 10}) {
		t.Error("a set of 5 reps should fail a 3x10 target")
	}
}

// TestTargetMetTooFewSets verifies that fewer sets than the target fails even
// when every performed set exceeds the rep target.
func TestTargetMetTooFewSets(t *testing.T) {
	if pushUps.TargetMet(2, []int{20, 20}) {
		t.Error("2 sets should fail a 3x10 target regardless of reps")
	}
}

// TestCompleted verifies Completed only at the final level.
func TestCompleted(t *testing.T) {
	p := Progression{
		Exercises:    []Exercise{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		CurrentLevel: 1,
	}
	if p.Completed() {
		t.Error("level 1 of 3 should not be completed")
	}
	p.CurrentLevel = 2
	if !p.Completed() {
		t.Error("final level should be completed")
	}
}

// TestCurrentExercise verifies CurrentExercise indexes by CurrentLevel.
func TestCurrentExercise(t *testing.T) {
	p := Progression{
		Exercises:    []Exercise{{ID: "a"}, {ID: "b"}},
		CurrentLevel: 1,
	}
	if got := p.CurrentExercise().ID; got != "b" {
		t.Errorf("current exercise = %q, want %q", got, "b")
	}
}

// TestValidateOK verifies a well-formed progression passes validation.
func TestValidateOK(t *testing.T) {
	p := Progression{Name: "Push-up Progression", Exercises: []Exercise{pushUps}}
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidateBlankName verifies that a blank progression name is rejected
// with a ValidationError.
func TestValidateBlankName(t *testing.T) {
	p := Progression{Name: "   ", Exercises: []Exercise{pushUps}}
	err := p.Validate()
	if err == nil {
		t.Fatal("expected error for blank name")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}

// TestValidateNoExercises verifies that an empty ladder is rejected.
func TestValidateNoExercises(t *testing.T) {
	p := Progression{Name: "Empty"}
	if p.Validate() == nil {
		t.Fatal("expected error for progression with no exercises")
	}
}

// TestValidateBlankExerciseFields verifies that exercises with blank name or
// description are rejected.
func TestValidateBlankExerciseFields(t *testing.T) {
	p := Progression{Name: "P", Exercises: []Exercise{{Name: "", Description: "d"}}}
	if p.Validate() == nil {
		t.Error("expected error for blank exercise name")
	}
	p.Exercises = []Exercise{{Name: "n", Description: " "}}
	if p.Validate() == nil {
		t.Error("expected error for blank exercise description")
	}
}

// TestClone verifies that Clone does not share the exercises slice.
func TestClone(t *testing.T) {
	p := Progression{Name: "P", Exercises: []Exercise{pushUps}}
	c := p.Clone()
	c.Exercises[0].Name = "changed"
	if p.Exercises[0].Name == "changed" {
		t.Error("Clone shares the exercises slice with the original")
	}
}

// TestNotFoundErrorMessage verifies the not-found message names kind and id.
func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Kind: "progression", ID: "xyz"}
	if got, want := err.Error(), `progression "xyz" not found`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
