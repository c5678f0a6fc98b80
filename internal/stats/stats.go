// Package stats is the read-only aggregation layer: pure functions over a
// snapshot of the workout aggregate. Nothing here mutates or persists.
package stats

import (
	"sort"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/models"
)

// recentLimit caps the entries echoed back in per-progression stats.
const recentLimit = 10

// ProgressionStats summarizes one progression's history and position.
type ProgressionStats struct {
	TotalWorkouts      int                   `json:"totalWorkouts"`
	TotalSets          int                   `json:"totalSets"`
	TotalReps          int                   `json:"totalReps"`
	CurrentLevel       int                   `json:"currentLevel"`
	TotalLevels        int                   `json:"totalLevels"`
	ProgressPercentage float64               `json:"progressPercentage"`
	RecentEntries      []models.WorkoutEntry `json:"recentEntries"`
}

// Overview summarizes the whole data set for the dashboard.
type Overview struct {
	TotalWorkouts     int        `json:"totalWorkouts"`
	UniqueWorkoutDays int        `json:"uniqueWorkoutDays"`
	CurrentStreak     int        `json:"currentStreak"`
	Progressions      int        `json:"progressions"`
	LastWorkoutDate   *time.Time `json:"lastWorkoutDate,omitempty"`
}

// ForProgression computes stats for one progression id.
func ForProgression(data models.WorkoutData, progressionID string) (ProgressionStats, error) {
	var prog *models.Progression
	for i := range data.Progressions {
		if data.Progressions[i].ID == progressionID {
			prog = &data.Progressions[i]
			break
		}
	}
	if prog == nil {
		return ProgressionStats{}, &models.NotFoundError{Kind: "progression", ID: progressionID}
	}

	st := ProgressionStats{
		CurrentLevel: prog.CurrentLevel,
		TotalLevels:  len(prog.Exercises),
	}
	if st.TotalLevels > 0 {
		st.ProgressPercentage = float64(prog.CurrentLevel+1) / float64(st.TotalLevels) * 100
	}

	var entries []models.WorkoutEntry
	for _, e := range data.Entries {
		if e.ProgressionID != progressionID {
			continue
		}
		entries = append(entries, e)
		st.TotalWorkouts++
		st.TotalSets += e.Sets
		for _, r := range e.Reps {
			st.TotalReps += r
		}
	}

	if len(entries) > recentLimit {
		entries = entries[len(entries)-recentLimit:]
	}
	st.RecentEntries = entries
	return st, nil
}

// OverviewOf computes the dashboard summary. now anchors the streak.
func OverviewOf(data models.WorkoutData, now time.Time) Overview {
	return Overview{
		TotalWorkouts:     len(data.Entries),
		UniqueWorkoutDays: UniqueWorkoutDays(data.Entries),
		CurrentStreak:     WorkoutStreak(data.Entries, now),
		Progressions:      len(data.Progressions),
		LastWorkoutDate:   data.LastWorkoutDate,
	}
}

// UniqueWorkoutDays counts distinct local calendar dates across all entries.
func UniqueWorkoutDays(entries []models.WorkoutEntry) int {
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		days[dayOf(e.Date)] = struct{}{}
	}
	return len(days)
}

// WorkoutStreak counts consecutive calendar days with at least one entry,
// anchored at now's date or the day before. A most-recent workout older than
// yesterday breaks the streak to 0.
func WorkoutStreak(entries []models.WorkoutEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	seen := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		d := truncateToDay(e.Date)
		seen[dayOf(e.Date)] = d
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := truncateToDay(now)
	if days[0].Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			streak++
			continue
		}
		break
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dayOf(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
