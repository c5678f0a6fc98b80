// Package store owns the in-memory workout aggregate and every mutation on
// it. Mutations validate first, apply, then persist through the adapter;
// remote sync failures surface as soft warnings on the operation result.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/catalog"
	"github.com/MBottaz/progress-path-workouts/internal/models"
	"github.com/MBottaz/progress-path-workouts/internal/persist"
	"github.com/google/uuid"
)

// SetPerformed is one performed set in a log-workout request.
type SetPerformed struct {
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
}

// LogResult reports the outcome of LogWorkout, including whether the entry
// advanced the progression and which exercise is current now.
type LogResult struct {
	Entry       models.WorkoutEntry  `json:"entry"`
	LeveledUp   bool                 `json:"leveled_up"`
	NewExercise *models.Exercise     `json:"new_exercise,omitempty"`
	SyncWarning *persist.SyncWarning `json:"sync_warning,omitempty"`
}

// Store holds the workout aggregate. A single mutex serializes mutations
// together with their persistence side effects, so concurrent HTTP clients
// cannot interleave a mutation with its save.
type Store struct {
	adapter *persist.Adapter
	log     *slog.Logger
	now     func() time.Time

	mu   sync.Mutex
	data models.WorkoutData
}

// Open loads both documents through the adapter, seeding progressions from
// the built-in catalog when nothing is saved yet.
func Open(ctx context.Context, adapter *persist.Adapter, log *slog.Logger) (*Store, error) {
	s := &Store{adapter: adapter, log: log, now: time.Now}

	defProgs, err := json.Marshal(catalog.Default())
	if err != nil {
		return nil, err
	}

	raw := adapter.Load(ctx, persist.DocProgressions, defProgs)
	if err := json.Unmarshal(raw, &s.data.Progressions); err != nil {
		log.Warn("saved progressions unreadable, using catalog", "error", err)
		s.data.Progressions = catalog.Default()
	}

	raw = adapter.Load(ctx, persist.DocWorkoutLogs, []byte("[]"))
	if err := json.Unmarshal(raw, &s.data.Entries); err != nil {
		log.Warn("saved workout logs unreadable, starting empty", "error", err)
		s.data.Entries = nil
	}

	// Restore invariants that a foreign writer may have broken. A progression
	// with no exercises has no current exercise to log against, so it is
	// dropped rather than kept in a state every operation would trip over.
	kept := s.data.Progressions[:0]
	for _, p := range s.data.Progressions {
		if len(p.Exercises) == 0 {
			log.Warn("dropping saved progression with no exercises", "id", p.ID, "name", p.Name)
			continue
		}
		if p.CurrentLevel < 0 {
			p.CurrentLevel = 0
		}
		if p.CurrentLevel >= len(p.Exercises) {
			p.CurrentLevel = len(p.Exercises) - 1
		}
		kept = append(kept, p)
	}
	s.data.Progressions = kept
	for _, e := range s.data.Entries {
		if s.data.LastWorkoutDate == nil || e.Date.After(*s.data.LastWorkoutDate) {
			d := e.Date
			s.data.LastWorkoutDate = &d
		}
	}

	return s, nil
}

// Data returns a deep copy of the aggregate for read-only consumers such as
// the statistics engine.
func (s *Store) Data() models.WorkoutData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Progressions returns copies of all progressions.
func (s *Store) Progressions() []models.Progression {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Progression, len(s.data.Progressions))
	for i, p := range s.data.Progressions {
		out[i] = p.Clone()
	}
	return out
}

// Progression returns a copy of one progression.
func (s *Store) Progression(id string) (models.Progression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(id)
	if p == nil {
		return models.Progression{}, &models.NotFoundError{Kind: "progression", ID: id}
	}
	return p.Clone(), nil
}

// RecentEntries returns up to limit entries, newest first.
func (s *Store) RecentEntries(limit int) []models.WorkoutEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.data.Entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.WorkoutEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.data.Entries[i])
	}
	return out
}

// LastWorkoutDate returns the date of the most recently logged entry, or nil.
func (s *Store) LastWorkoutDate() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.LastWorkoutDate == nil {
		return nil
	}
	d := *s.data.LastWorkoutDate
	return &d
}

// LogWorkout appends an entry for the current exercise of a progression and
// advances the level by one when the entry meets the exercise's target.
// Advancement clamps at the final level: meeting the target there is not an
// error, just no level-up.
func (s *Store) LogWorkout(ctx context.Context, progressionID, exerciseID string, sets []SetPerformed) (LogResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(progressionID)
	if p == nil {
		return LogResult{}, &models.NotFoundError{Kind: "progression", ID: progressionID}
	}
	current := p.CurrentExercise()
	if exerciseID != current.ID {
		return LogResult{}, models.Invalidf(
			"exercise %q is not the current level of progression %q; only the current exercise can be logged",
			exerciseID, progressionID)
	}
	if len(sets) == 0 {
		return LogResult{}, models.Invalidf("at least one set is required")
	}
	anyReps := false
	for _, set := range sets {
		if set.Reps > 0 {
			anyReps = true
			break
		}
	}
	if !anyReps {
		return LogResult{}, models.Invalidf("at least one set must have reps greater than zero")
	}

	reps := make([]int, len(sets))
	var weights []*float64
	for i, set := range sets {
		reps[i] = set.Reps
		if set.Weight != nil {
			if weights == nil {
				weights = make([]*float64, len(sets))
			}
			w := *set.Weight
			weights[i] = &w
		}
	}

	entry := models.WorkoutEntry{
		ID:            uuid.Must(uuid.NewV7()).String(),
		ProgressionID: p.ID,
		ExerciseID:    current.ID,
		ExerciseName:  current.Name,
		Date:          s.now().UTC(),
		Sets:          len(sets),
		Reps:          reps,
		Weights:       weights,
	}

	prevEntries := s.data.Entries
	prevLast := s.data.LastWorkoutDate
	prevLevel := p.CurrentLevel

	s.data.Entries = append(s.data.Entries, entry)
	d := entry.Date
	s.data.LastWorkoutDate = &d

	result := LogResult{Entry: entry}
	if current.TargetMet(entry.Sets, entry.Reps) && p.CurrentLevel < len(p.Exercises)-1 {
		p.CurrentLevel++
		next := p.CurrentExercise()
		result.LeveledUp = true
		result.NewExercise = &next
	}

	warn, err := s.saveEntries(ctx)
	if err != nil {
		s.data.Entries = prevEntries
		s.data.LastWorkoutDate = prevLast
		p.CurrentLevel = prevLevel
		return LogResult{}, err
	}
	result.SyncWarning = warn

	if result.LeveledUp {
		warn, err := s.saveProgressions(ctx)
		if err != nil {
			// The entry is already durable; keep it and report the failure.
			p.CurrentLevel = prevLevel
			return LogResult{}, err
		}
		if result.SyncWarning == nil {
			result.SyncWarning = warn
		}
	}

	return result, nil
}

// ChangeLevel sets a progression's current level unconditionally. This is an
// explicit user override, not gated on having completed prior levels.
func (s *Store) ChangeLevel(ctx context.Context, progressionID string, newLevel int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(progressionID)
	if p == nil {
		return &models.NotFoundError{Kind: "progression", ID: progressionID}
	}
	if newLevel < 0 || newLevel >= len(p.Exercises) {
		return models.Invalidf("level %d out of range [0, %d] for progression %q",
			newLevel, len(p.Exercises)-1, progressionID)
	}

	prev := p.CurrentLevel
	p.CurrentLevel = newLevel
	if _, err := s.saveProgressions(ctx); err != nil {
		p.CurrentLevel = prev
		return err
	}
	return nil
}

// ResetProgression sets a progression back to its first level.
func (s *Store) ResetProgression(ctx context.Context, progressionID string) error {
	return s.ChangeLevel(ctx, progressionID, 0)
}

// AddProgression validates and appends a new progression. A blank id gets a
// fresh UUID; the current level always starts at 0.
func (s *Store) AddProgression(ctx context.Context, p models.Progression) (models.Progression, error) {
	if err := p.Validate(); err != nil {
		return models.Progression{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if s.find(p.ID) != nil {
		return models.Progression{}, models.Invalidf("progression %q already exists", p.ID)
	}
	p.CurrentLevel = 0
	p = p.Clone()

	s.data.Progressions = append(s.data.Progressions, p)
	if _, err := s.saveProgressions(ctx); err != nil {
		s.data.Progressions = s.data.Progressions[:len(s.data.Progressions)-1]
		return models.Progression{}, err
	}
	return p.Clone(), nil
}

// UpdateProgression replaces the progression with the matching id in full.
// The stored current level is preserved unless the update supplies a
// different valid one.
func (s *Store) UpdateProgression(ctx context.Context, p models.Progression) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.find(p.ID)
	if existing == nil {
		return &models.NotFoundError{Kind: "progression", ID: p.ID}
	}

	if p.CurrentLevel < 0 || p.CurrentLevel >= len(p.Exercises) {
		p.CurrentLevel = existing.CurrentLevel
		// The new ladder may be shorter than the old level.
		if p.CurrentLevel >= len(p.Exercises) {
			p.CurrentLevel = len(p.Exercises) - 1
		}
	}

	prev := *existing
	*existing = p.Clone()
	if _, err := s.saveProgressions(ctx); err != nil {
		*existing = prev
		return err
	}
	return nil
}

// DeleteProgression removes a progression and every entry referencing it.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteProgression(ctx context.Context, progressionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.data.Progressions {
		if s.data.Progressions[i].ID == progressionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	prevProgs := s.data.Progressions
	prevEntries := s.data.Entries

	progs := make([]models.Progression, 0, len(prevProgs)-1)
	progs = append(progs, prevProgs[:idx]...)
	progs = append(progs, prevProgs[idx+1:]...)
	s.data.Progressions = progs

	entries := make([]models.WorkoutEntry, 0, len(prevEntries))
	for _, e := range prevEntries {
		if e.ProgressionID != progressionID {
			entries = append(entries, e)
		}
	}
	s.data.Entries = entries

	if _, err := s.saveProgressions(ctx); err != nil {
		s.data.Progressions = prevProgs
		s.data.Entries = prevEntries
		return err
	}
	if _, err := s.saveEntries(ctx); err != nil {
		s.data.Entries = prevEntries
		return err
	}
	return nil
}

// find returns a pointer into the progressions slice, or nil. Callers hold mu.
func (s *Store) find(id string) *models.Progression {
	for i := range s.data.Progressions {
		if s.data.Progressions[i].ID == id {
			return &s.data.Progressions[i]
		}
	}
	return nil
}

func (s *Store) snapshot() models.WorkoutData {
	out := models.WorkoutData{
		Progressions: make([]models.Progression, len(s.data.Progressions)),
		Entries:      make([]models.WorkoutEntry, len(s.data.Entries)),
	}
	for i, p := range s.data.Progressions {
		out.Progressions[i] = p.Clone()
	}
	copy(out.Entries, s.data.Entries)
	if s.data.LastWorkoutDate != nil {
		d := *s.data.LastWorkoutDate
		out.LastWorkoutDate = &d
	}
	return out
}

func (s *Store) saveProgressions(ctx context.Context) (*persist.SyncWarning, error) {
	content, err := json.MarshalIndent(s.data.Progressions, "", "  ")
	if err != nil {
		return nil, err
	}
	return s.adapter.Save(ctx, persist.DocProgressions, content)
}

func (s *Store) saveEntries(ctx context.Context) (*persist.SyncWarning, error) {
	content, err := json.MarshalIndent(s.data.Entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return s.adapter.Save(ctx, persist.DocWorkoutLogs, content)
}
