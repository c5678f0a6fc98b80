// Package persist stores the two workout documents in a local SQLite cache
// and mirrors them to a remote file store when one is configured. The local
// cache is always the durable fallback: remote failures degrade to local
// state and are reported as soft sync warnings, never as operation failures.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/remote"
)

// Document names. Each maps to <name>.json in the remote repository.
const (
	DocProgressions = "progressions"
	DocWorkoutLogs  = "workout-logs"
)

// Settings keys for the remote store, kept in the cache's settings table.
// Remote sync is attempted only when all three are present.
const (
	SettingGitHubToken = "github_token"
	SettingGitHubOwner = "github_owner"
	SettingGitHubRepo  = "github_repo"
)

// RemoteStore is the transport the adapter consumes. *remote.GitHubStore
// satisfies it; tests substitute fakes.
type RemoteStore interface {
	GetFile(ctx context.Context, name string) (*remote.File, error)
	PutFile(ctx context.Context, name string, content []byte, sha string) error
}

// RemoteFactory builds a RemoteStore from the three sync settings.
type RemoteFactory func(token, owner, repo string) RemoteStore

// GitHubRemote is the production RemoteFactory.
func GitHubRemote(token, owner, repo string) RemoteStore {
	return remote.NewGitHubStore(token, owner, repo)
}

// SyncWarning reports a failed remote read or write. It is soft: local state
// is authoritative and correct regardless.
type SyncWarning struct {
	Doc string    `json:"doc"`
	Msg string    `json:"message"`
	At  time.Time `json:"at"`
}

func (w *SyncWarning) Error() string {
	return fmt.Sprintf("sync of %s failed: %s", w.Doc, w.Msg)
}

// SyncStatus summarizes remote sync health for the status endpoint.
type SyncStatus struct {
	Configured  bool         `json:"configured"`
	LastSuccess *time.Time   `json:"last_success,omitempty"`
	LastWarning *SyncWarning `json:"last_warning,omitempty"`
}

// SyncSettings holds the remote store configuration.
type SyncSettings struct {
	Token string
	Owner string
	Repo  string
}

// Configured reports whether all three settings are present.
func (s SyncSettings) Configured() bool {
	return s.Token != "" && s.Owner != "" && s.Repo != ""
}

// Adapter loads and saves named JSON documents across the two tiers.
type Adapter struct {
	cache     *Cache
	newRemote RemoteFactory
	log       *slog.Logger

	mu          sync.Mutex
	lastSuccess *time.Time
	lastWarning *SyncWarning
}

// NewAdapter creates an adapter over the cache. newRemote may be nil to force
// local-only mode regardless of settings.
func NewAdapter(cache *Cache, newRemote RemoteFactory, log *slog.Logger) *Adapter {
	return &Adapter{cache: cache, newRemote: newRemote, log: log}
}

// Settings reads the sync settings from the cache.
func (a *Adapter) Settings(ctx context.Context) (SyncSettings, error) {
	var s SyncSettings
	var err error
	if s.Token, err = a.cache.GetSetting(ctx, SettingGitHubToken); err != nil {
		return s, err
	}
	if s.Owner, err = a.cache.GetSetting(ctx, SettingGitHubOwner); err != nil {
		return s, err
	}
	s.Repo, err = a.cache.GetSetting(ctx, SettingGitHubRepo)
	return s, err
}

// SetSettings stores the sync settings. An empty token preserves the one
// already stored, so clients can update owner/repo without re-entering it.
func (a *Adapter) SetSettings(ctx context.Context, s SyncSettings) error {
	if s.Token != "" {
		if err := a.cache.SetSetting(ctx, SettingGitHubToken, s.Token); err != nil {
			return err
		}
	}
	if err := a.cache.SetSetting(ctx, SettingGitHubOwner, s.Owner); err != nil {
		return err
	}
	return a.cache.SetSetting(ctx, SettingGitHubRepo, s.Repo)
}

// remoteStore returns the configured remote, or nil in local-only mode.
func (a *Adapter) remoteStore(ctx context.Context) RemoteStore {
	if a.newRemote == nil {
		return nil
	}
	s, err := a.Settings(ctx)
	if err != nil {
		a.log.Warn("reading sync settings", "error", err)
		return nil
	}
	if !s.Configured() {
		return nil
	}
	return a.newRemote(s.Token, s.Owner, s.Repo)
}

// Configured reports whether remote sync would currently be attempted.
func (a *Adapter) Configured(ctx context.Context) bool {
	return a.remoteStore(ctx) != nil
}

// Load returns the named document, trying the remote store first, then the
// local cache, then the supplied default. A successful remote read overwrites
// the local cache. Load never fails: every tier degrades silently to the next
// and the failure is logged.
func (a *Adapter) Load(ctx context.Context, name string, def []byte) []byte {
	if rs := a.remoteStore(ctx); rs != nil {
		f, err := rs.GetFile(ctx, name+".json")
		switch {
		case err == nil && json.Valid(f.Content):
			if err := a.cache.PutDocument(ctx, name, f.Content); err != nil {
				a.log.Warn("caching remote document", "doc", name, "error", err)
			}
			a.recordSuccess()
			return f.Content
		case errors.Is(err, remote.ErrNotFound):
			a.log.Info("remote document missing, using local", "doc", name)
		case err != nil:
			a.recordWarning(name, err)
		default:
			a.recordWarning(name, errors.New("remote content is not valid JSON"))
		}
	}

	content, err := a.cache.GetDocument(ctx, name)
	if err != nil {
		a.log.Warn("reading local document", "doc", name, "error", err)
		return def
	}
	if content == nil || !json.Valid(content) {
		if content != nil {
			a.log.Warn("local document is not valid JSON, using default", "doc", name)
		}
		return def
	}
	return content
}

// Save writes the document to the local cache and then, best effort, to the
// remote store. The returned SyncWarning is non-nil when the remote write
// failed; err is non-nil only when the local write itself failed, in which
// case nothing was persisted anywhere.
func (a *Adapter) Save(ctx context.Context, name string, content []byte) (*SyncWarning, error) {
	if err := a.cache.PutDocument(ctx, name, content); err != nil {
		return nil, fmt.Errorf("local save of %s: %w", name, err)
	}

	rs := a.remoteStore(ctx)
	if rs == nil {
		return nil, nil
	}

	// Fetch the current SHA so the write is read-modify-write. A missing
	// file means create, not an error.
	var sha string
	switch f, err := rs.GetFile(ctx, name+".json"); {
	case err == nil:
		sha = f.SHA
	case errors.Is(err, remote.ErrNotFound):
	default:
		return a.recordWarning(name, err), nil
	}

	if err := rs.PutFile(ctx, name+".json", content, sha); err != nil {
		return a.recordWarning(name, err), nil
	}

	a.recordSuccess()
	return nil, nil
}

// Status returns the current sync status snapshot.
func (a *Adapter) Status(ctx context.Context) SyncStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return SyncStatus{
		Configured:  a.Configured(ctx),
		LastSuccess: a.lastSuccess,
		LastWarning: a.lastWarning,
	}
}

func (a *Adapter) recordSuccess() {
	now := time.Now()
	a.mu.Lock()
	a.lastSuccess = &now
	a.lastWarning = nil
	a.mu.Unlock()
}

func (a *Adapter) recordWarning(doc string, err error) *SyncWarning {
	w := &SyncWarning{Doc: doc, Msg: err.Error(), At: time.Now()}
	a.log.Warn("remote sync failed", "doc", doc, "error", err)
	a.mu.Lock()
	a.lastWarning = w
	a.mu.Unlock()
	return w
}
