package mcp

import (
	"context"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/models"
	"github.com/MBottaz/progress-path-workouts/internal/stats"
	"github.com/MBottaz/progress-path-workouts/internal/store"
)

// DataSource abstracts the data layer for MCP tools. Local (direct store)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Progressions(ctx context.Context) ([]models.Progression, error)
	Progression(ctx context.Context, id string) (models.Progression, error)
	LogWorkout(ctx context.Context, progressionID, exerciseID string, sets []store.SetPerformed) (store.LogResult, error)
	ChangeLevel(ctx context.Context, id string, level int) (models.Progression, error)
	ResetProgression(ctx context.Context, id string) (models.Progression, error)
	Overview(ctx context.Context) (stats.Overview, error)
	ProgressionStats(ctx context.Context, id string) (stats.ProgressionStats, error)
	RecentEntries(ctx context.Context, limit int) ([]models.WorkoutEntry, error)
}

// timeNow anchors the streak calculation.
var timeNow = time.Now

// Local serves MCP tools straight from an in-process store.
type Local struct {
	Store *store.Store
}

// NewLocal wraps a store as a DataSource.
func NewLocal(st *store.Store) *Local {
	return &Local{Store: st}
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

func (l *Local) Progressions(ctx context.Context) ([]models.Progression, error) {
	return l.Store.Progressions(), nil
}

func (l *Local) Progression(ctx context.Context, id string) (models.Progression, error) {
	return l.Store.Progression(id)
}

func (l *Local) LogWorkout(ctx context.Context, progressionID, exerciseID string, sets []store.SetPerformed) (store.LogResult, error) {
	return l.Store.LogWorkout(ctx, progressionID, exerciseID, sets)
}

func (l *Local) ChangeLevel(ctx context.Context, id string, level int) (models.Progression, error) {
	if err := l.Store.ChangeLevel(ctx, id, level); err != nil {
		return models.Progression{}, err
	}
	return l.Store.Progression(id)
}

func (l *Local) ResetProgression(ctx context.Context, id string) (models.Progression, error) {
	if err := l.Store.ResetProgression(ctx, id); err != nil {
		return models.Progression{}, err
	}
	return l.Store.Progression(id)
}

func (l *Local) Overview(ctx context.Context) (stats.Overview, error) {
	return stats.OverviewOf(l.Store.Data(), timeNow()), nil
}

func (l *Local) ProgressionStats(ctx context.Context, id string) (stats.ProgressionStats, error) {
	return stats.ForProgression(l.Store.Data(), id)
}

func (l *Local) RecentEntries(ctx context.Context, limit int) ([]models.WorkoutEntry, error) {
	return l.Store.RecentEntries(limit), nil
}
