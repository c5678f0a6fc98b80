// Package catalog holds the built-in seed progressions used when no saved
// data exists yet.
package catalog

import "github.com/MBottaz/progress-path-workouts/internal/models"

// Default returns the seed progressions. The result is freshly allocated on
// every call so callers may mutate it freely.
func Default() []models.Progression {
	out := make([]models.Progression, len(defaults))
	for i, p := range defaults {
		out[i] = p.Clone()
	}
	return out
}

var defaults = []models.Progression{
	{
		ID:       "push-up-progression",
		Name:     "Push-up Progression",
		Category: "Push",
		Exercises: []models.Exercise{
			{
				ID:             "wall-pushup",
				Name:           "Wall Push-up",
				Description:    "Stand arm's length from wall, hands flat against wall at shoulder height",
				TargetSets:     3,
				TargetReps:     15,
				UnlockCriteria: "Complete 3 sets of 15 reps",
			},
			{
				ID:             "incline-pushup",
				Name:           "Incline Push-up",
				Description:    "Hands on elevated surface (bench, chair), body straight",
				TargetSets:     3,
				TargetReps:     15,
				UnlockCriteria: "Complete 3 sets of 15 reps",
			},
			{
				ID:             "knee-pushup",
				Name:           "Knee Push-up",
				Description:    "Standard push-up position but on knees",
				TargetSets:     3,
				TargetReps:     15,
				UnlockCriteria: "Complete 3 sets of 15 reps",
			},
			{
				ID:             "regular-pushup",
				Name:           "Regular Push-up",
				Description:    "Standard push-up with straight body line",
				TargetSets:     3,
				TargetReps:     15,
				UnlockCriteria: "Complete 3 sets of 15 reps",
			},
			{
				ID:             "diamond-pushup",
				Name:           "Diamond Push-up",
				Description:    "Hands form diamond shape, focuses on triceps",
				TargetSets:     3,
				TargetReps:     12,
				UnlockCriteria: "Complete 3 sets of 12 reps",
			},
		},
	},
	{
		ID:       "squat-progression",
		Name:     "Squat Progression",
		Category: "Legs",
		Exercises: []models.Exercise{
			{
				ID:             "assisted-squat",
				Name:           "Assisted Squat",
				Description:    "Hold onto sturdy object for support while squatting",
				TargetSets:     3,
				TargetReps:     15,
				UnlockCriteria: "Complete 3 sets of 15 reps",
			},
			{
				ID:             "regular-squat",
				Name:           "Regular Squat",
				Description:    "Feet shoulder-width apart, squat down until thighs parallel to floor",
				TargetSets:     3,
				TargetReps:     20,
				UnlockCriteria: "Complete 3 sets of 20 reps",
			},
			{
				ID:             "jump-squat",
				Name:           "Jump Squat",
				Description:    "Regular squat with explosive jump at the top",
				TargetSets:     3,
				TargetReps:     15,
				UnlockCriteria: "Complete 3 sets of 15 reps",
			},
			{
				ID:             "pistol-squat-progression",
				Name:           "Pistol Squat (Assisted)",
				Description:    "Single-leg squat with assistance, work toward full pistol squat",
				TargetSets:     3,
				TargetReps:     8,
				UnlockCriteria: "Complete 3 sets of 8 reps each leg",
			},
		},
	},
	{
		ID:       "pull-up-progression",
		Name:     "Pull-up Progression",
		Category: "Pull",
		Exercises: []models.Exercise{
			{
				ID:             "dead-hang",
				Name:           "Dead Hang",
				Description:    "Hang from pull-up bar, build grip strength",
				TargetSets:     3,
				TargetReps:     30,
				UnlockCriteria: "Hold for 30 seconds, 3 sets",
			},
			{
				ID:             "negative-pullup",
				Name:           "Negative Pull-up",
				Description:    "Jump to top position, slowly lower yourself down",
				TargetSets:     3,
				TargetReps:     8,
				UnlockCriteria: "Complete 3 sets of 8 slow negatives",
			},
			{
				ID:             "assisted-pullup",
				Name:           "Assisted Pull-up",
				Description:    "Use resistance band or partner assistance",
				TargetSets:     3,
				TargetReps:     8,
				UnlockCriteria: "Complete 3 sets of 8 reps",
			},
			{
				ID:             "regular-pullup",
				Name:           "Regular Pull-up",
				Description:    "Full pull-up from dead hang to chin over bar",
				TargetSets:     3,
				TargetReps:     8,
				UnlockCriteria: "Complete 3 sets of 8 reps",
			},
			{
				ID:             "weighted-pullup",
				Name:           "Weighted Pull-up",
				Description:    "Regular pull-up with additional weight",
				TargetSets:     3,
				TargetReps:     5,
				UnlockCriteria: "Complete 3 sets of 5 reps",
			},
		},
	},
	{
		ID:       "plank-progression",
		Name:     "Plank Progression",
		Category: "Core",
		Exercises: []models.Exercise{
			{
				ID:             "knee-plank",
				Name:           "Knee Plank",
				Description:    "Plank position on knees instead of toes",
				TargetSets:     3,
				TargetReps:     30,
				UnlockCriteria: "Hold for 30 seconds, 3 sets",
			},
			{
				ID:             "regular-plank",
				Name:           "Regular Plank",
				Description:    "Standard plank on toes, straight body line",
				TargetSets:     3,
				TargetReps:     60,
				UnlockCriteria: "Hold for 60 seconds, 3 sets",
			},
			{
				ID:             "single-arm-plank",
				Name:           "Single Arm Plank",
				Description:    "Plank with one arm extended forward",
				TargetSets:     3,
				TargetReps:     30,
				UnlockCriteria: "Hold for 30 seconds each arm, 3 sets",
			},
			{
				ID:             "plank-to-pushup",
				Name:           "Plank to Push-up",
				Description:    "Transition from plank to push-up position and back",
				TargetSets:     3,
				TargetReps:     10,
				UnlockCriteria: "Complete 3 sets of 10 transitions",
			},
		},
	},
}
