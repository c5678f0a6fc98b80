// Package remote implements the file-backed remote store on top of the
// GitHub contents API. Documents live under data/ in the configured
// repository; writes are read-modify-write against the object SHA so a stale
// client never blindly overwrites a newer file.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned by GetFile when the object does not exist yet.
var ErrNotFound = errors.New("remote file not found")

// File is a remote object: decoded content plus the content SHA required for
// a conditional update.
type File struct {
	Content []byte
	SHA     string
}

// GitHubStore reads and writes files in a GitHub repository.
type GitHubStore struct {
	token      string
	owner      string
	repo       string
	baseURL    string
	httpClient *http.Client
}

// NewGitHubStore creates a store for the given repository.
func NewGitHubStore(token, owner, repo string) *GitHubStore {
	return &GitHubStore{
		token:   token,
		owner:   owner,
		repo:    repo,
		baseURL: "https://api.github.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GitHubStore) contentsURL(name string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/data/%s", g.baseURL, g.owner, g.repo, name)
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// GetFile fetches a file's content and SHA. Returns ErrNotFound when the file
// does not exist in the repository.
func (g *GitHubStore) GetFile(ctx context.Context, name string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.contentsURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetching %s (status %d): %s", name, resp.StatusCode, body)
	}

	var cr contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("decoding contents response: %w", err)
	}

	// The API wraps base64 content in newlines.
	raw := strings.ReplaceAll(cr.Content, "\n", "")
	content, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", name, err)
	}

	return &File{Content: content, SHA: cr.SHA}, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// PutFile creates or updates a file. sha must be the current object SHA when
// updating and "" when creating a new file.
func (g *GitHubStore) PutFile(ctx context.Context, name string, content []byte, sha string) error {
	payload, err := json.Marshal(putRequest{
		Message: "Update " + name,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("marshaling put request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(name), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("writing %s (status %d): %s", name, resp.StatusCode, body)
	}
	return nil
}

func (g *GitHubStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}
