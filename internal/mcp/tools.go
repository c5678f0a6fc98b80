package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/MBottaz/progress-path-workouts/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListProgressions = mcp.NewTool("list_progressions",
	mcp.WithDescription("List all progressions with their exercise ladders and current levels."),
)

var toolGetProgression = mcp.NewTool("get_progression",
	mcp.WithDescription("Get one progression by id, including every exercise and the current level."),
	mcp.WithString("progression_id", mcp.Required(), mcp.Description("Progression id (e.g. push-up-progression)")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Log a workout against the current exercise of a progression. Advances the level automatically when the target is met."),
	mcp.WithString("progression_id", mcp.Required(), mcp.Description("Progression id")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id; must be the progression's current exercise")),
	mcp.WithString("reps", mcp.Required(), mcp.Description("Comma-separated reps per set, e.g. '15,15,12'")),
	mcp.WithString("weights", mcp.Description("Optional comma-separated weights per set; leave a position empty for bodyweight, e.g. '20,,20'")),
)

var toolChangeLevel = mcp.NewTool("change_level",
	mcp.WithDescription("Set a progression's current level explicitly (0-based index into its exercises)."),
	mcp.WithString("progression_id", mcp.Required(), mcp.Description("Progression id")),
	mcp.WithNumber("level", mcp.Required(), mcp.Description("New level, 0-based")),
)

var toolResetProgression = mcp.NewTool("reset_progression",
	mcp.WithDescription("Reset a progression back to its first level."),
	mcp.WithString("progression_id", mcp.Required(), mcp.Description("Progression id")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Overall statistics: total workouts, unique workout days, current streak, progression count, last workout date."),
)

var toolGetProgressionStats = mcp.NewTool("get_progression_stats",
	mcp.WithDescription("Per-progression statistics: workouts, sets, reps, level, completion percentage, recent entries."),
	mcp.WithString("progression_id", mcp.Required(), mcp.Description("Progression id")),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("Most recent workout entries, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return. Defaults to 10.")),
)

// --- Tool handlers ---

func (h *handlers) listProgressions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progs, err := h.ds.Progressions(ctx)
	if err != nil {
		h.log.Error("mcp list_progressions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(progs)
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("progression_id")
	if err != nil {
		return mcp.NewToolResultError("progression_id parameter is required"), nil
	}
	p, err := h.ds.Progression(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progID, err := req.RequireString("progression_id")
	if err != nil {
		return mcp.NewToolResultError("progression_id parameter is required"), nil
	}
	exID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	repsStr, err := req.RequireString("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	sets, err := parseSets(repsStr, req.GetString("weights", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.ds.LogWorkout(ctx, progID, exID, sets)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (h *handlers) changeLevel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("progression_id")
	if err != nil {
		return mcp.NewToolResultError("progression_id parameter is required"), nil
	}
	level, err := req.RequireFloat("level")
	if err != nil {
		return mcp.NewToolResultError("level parameter is required"), nil
	}
	p, err := h.ds.ChangeLevel(ctx, id, int(level))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

func (h *handlers) resetProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("progression_id")
	if err != nil {
		return mcp.NewToolResultError("progression_id parameter is required"), nil
	}
	p, err := h.ds.ResetProgression(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ov, err := h.ds.Overview(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(ov)
}

func (h *handlers) getProgressionStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("progression_id")
	if err != nil {
		return mcp.NewToolResultError("progression_id parameter is required"), nil
	}
	st, err := h.ds.ProgressionStats(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(req.GetFloat("limit", 10))
	entries, err := h.ds.RecentEntries(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(entries)
}

// --- Resource handlers ---

func (h *handlers) dashboard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	progs, err := h.ds.Progressions(ctx)
	if err != nil {
		return nil, err
	}
	ov, err := h.ds.Overview(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(map[string]any{
		"progressions": progs,
		"stats":        ov,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseSets turns the comma-separated reps/weights strings into performed sets.
func parseSets(repsStr, weightsStr string) ([]store.SetPerformed, error) {
	repParts := strings.Split(repsStr, ",")
	sets := make([]store.SetPerformed, len(repParts))
	for i, part := range repParts {
		r, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &parseError{"reps must be a comma-separated list of integers, got " + strconv.Quote(repsStr)}
		}
		sets[i].Reps = r
	}

	if weightsStr != "" {
		weightParts := strings.Split(weightsStr, ",")
		if len(weightParts) != len(repParts) {
			return nil, &parseError{"weights must have one position per set"}
		}
		for i, part := range weightParts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			w, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, &parseError{"weights must be numbers or empty, got " + strconv.Quote(weightsStr)}
			}
			sets[i].Weight = &w
		}
	}
	return sets, nil
}

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
