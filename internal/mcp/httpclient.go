package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/models"
	"github.com/MBottaz/progress-path-workouts/internal/stats"
	"github.com/MBottaz/progress-path-workouts/internal/store"
)

// HTTPClient implements DataSource by calling the ProgressPath REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey is
// required for mutating tools.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Progressions(ctx context.Context) ([]models.Progression, error) {
	var out []models.Progression
	err := c.get(ctx, "/api/v1/progressions", &out)
	return out, err
}

func (c *HTTPClient) Progression(ctx context.Context, id string) (models.Progression, error) {
	var out models.Progression
	err := c.get(ctx, "/api/v1/progressions/"+id, &out)
	return out, err
}

func (c *HTTPClient) LogWorkout(ctx context.Context, progressionID, exerciseID string, sets []store.SetPerformed) (store.LogResult, error) {
	body := map[string]any{
		"progressionId": progressionID,
		"exerciseId":    exerciseID,
		"sets":          sets,
	}
	var out store.LogResult
	err := c.post(ctx, "/api/v1/workouts", body, &out)
	return out, err
}

func (c *HTTPClient) ChangeLevel(ctx context.Context, id string, level int) (models.Progression, error) {
	var out models.Progression
	err := c.post(ctx, "/api/v1/progressions/"+id+"/level", map[string]int{"level": level}, &out)
	return out, err
}

func (c *HTTPClient) ResetProgression(ctx context.Context, id string) (models.Progression, error) {
	var out models.Progression
	err := c.post(ctx, "/api/v1/progressions/"+id+"/reset", struct{}{}, &out)
	return out, err
}

func (c *HTTPClient) Overview(ctx context.Context) (stats.Overview, error) {
	var out stats.Overview
	err := c.get(ctx, "/api/v1/stats", &out)
	return out, err
}

func (c *HTTPClient) ProgressionStats(ctx context.Context, id string) (stats.ProgressionStats, error) {
	var out stats.ProgressionStats
	err := c.get(ctx, "/api/v1/stats/progressions/"+id, &out)
	return out, err
}

func (c *HTTPClient) RecentEntries(ctx context.Context, limit int) ([]models.WorkoutEntry, error) {
	var out []models.WorkoutEntry
	err := c.get(ctx, "/api/v1/workouts?limit="+strconv.Itoa(limit), &out)
	return out, err
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("%s (status %d): %s", req.URL.Path, resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}
	return nil
}
