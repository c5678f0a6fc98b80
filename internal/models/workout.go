package models

import (
	"strings"
	"time"
)

// Exercise is one rung of a progression ladder with a sets × reps target.
type Exercise struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	TargetSets     int    `json:"targetSets"`
	TargetReps     int    `json:"targetReps"`
	UnlockCriteria string `json:"unlockCriteria"`
}

// TargetMet reports whether a performed session satisfies the level-up
// criterion: at least targetSets sets, and every set at or above targetReps.
// Weight plays no role.
func (e Exercise) TargetMet(sets int, reps []int) bool {
	if sets < e.TargetSets {
		return false
	}
	for _, r := range reps {
		if r < e.TargetReps {
			return false
		}
	}
	return true
}

// Progression is a named, ordered ladder of exercises within one movement
// pattern. CurrentLevel indexes Exercises and is the only mutable field.
type Progression struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Exercises    []Exercise `json:"exercises"`
	CurrentLevel int        `json:"currentLevel"`
}

// CurrentExercise returns the exercise at CurrentLevel.
// The level invariant must hold when calling.
func (p Progression) CurrentExercise() Exercise {
	return p.Exercises[p.CurrentLevel]
}

// Completed reports whether the progression sits at its final level.
func (p Progression) Completed() bool {
	return p.CurrentLevel == len(p.Exercises)-1
}

// Validate checks the authoring preconditions shared by add and update.
// CurrentLevel is not checked here; the store clamps or rejects it per operation.
func (p Progression) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Invalidf("progression name must not be blank")
	}
	if len(p.Exercises) == 0 {
		return Invalidf("progression %q must have at least one exercise", p.Name)
	}
	for i, e := range p.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return Invalidf("exercise %d of progression %q has a blank name", i+1, p.Name)
		}
		if strings.TrimSpace(e.Description) == "" {
			return Invalidf("exercise %q has a blank description", e.Name)
		}
	}
	return nil
}

// Clone returns a deep copy, so callers can hand progressions out without
// sharing the exercises slice.
func (p Progression) Clone() Progression {
	out := p
	out.Exercises = make([]Exercise, len(p.Exercises))
	copy(out.Exercises, p.Exercises)
	return out
}

// WorkoutEntry is one logged session against a specific exercise.
// Entries are append-only: never edited, only cascade-deleted with their
// progression. Reps always has exactly Sets elements; Weights, when present,
// parallels Reps with nil for sets performed without added weight.
type WorkoutEntry struct {
	ID            string     `json:"id"`
	ProgressionID string     `json:"progressionId"`
	ExerciseID    string     `json:"exerciseId"`
	ExerciseName  string     `json:"exerciseName,omitempty"`
	Date          time.Time  `json:"date"`
	Sets          int        `json:"sets"`
	Reps          []int      `json:"reps"`
	Weights       []*float64 `json:"weights,omitempty"`
}

// WorkoutData is the aggregate the store owns. LastWorkoutDate is derived:
// it equals the date of the most recently added entry.
type WorkoutData struct {
	Progressions    []Progression  `json:"progressions"`
	Entries         []WorkoutEntry `json:"entries"`
	LastWorkoutDate *time.Time     `json:"lastWorkoutDate,omitempty"`
}
