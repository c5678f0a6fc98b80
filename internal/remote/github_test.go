package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testStore(url string) *GitHubStore {
	g := NewGitHubStore("tok", "alice", "workouts")
	g.baseURL = url
	return g
}

// TestGetFile verifies content and SHA are decoded from the contents API,
// including the newline-wrapped base64 the API produces.
func TestGetFile(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"hello":"world"}`))
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/alice/workouts/contents/data/progressions.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token tok" {
			t.Errorf("authorization = %q, want token tok", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "sha": "abc123"})
	}))
	defer srv.Close()

	f, err := testStore(srv.URL).GetFile(context.Background(), "progressions.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(f.Content) != `{"hello":"world"}` {
		t.Errorf("content = %q", f.Content)
	}
	if f.SHA != "abc123" {
		t.Errorf("sha = %q, want abc123", f.SHA)
	}
}

// TestGetFileNotFound verifies a 404 maps to ErrNotFound.
func TestGetFileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testStore(srv.URL).GetFile(context.Background(), "missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestGetFileServerError verifies non-404 failures surface as plain errors.
func TestGetFileServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testStore(srv.URL).GetFile(context.Background(), "progressions.json")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want a non-ErrNotFound failure", err)
	}
}

// TestPutFileCreate verifies a create request omits the sha field entirely.
func TestPutFileCreate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := testStore(srv.URL).PutFile(context.Background(), "progressions.json", []byte("[]"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := body["sha"]; ok {
		t.Error("sha should be omitted when creating a new file")
	}
	content, _ := body["content"].(string)
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil || string(decoded) != "[]" {
		t.Errorf("content = %q, want base64 of []", content)
	}
}

// TestPutFileUpdate verifies an update carries the current SHA.
func TestPutFileUpdate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
	}))
	defer srv.Close()

	err := testStore(srv.URL).PutFile(context.Background(), "progressions.json", []byte("[]"), "old-sha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["sha"] != "old-sha" {
		t.Errorf("sha = %v, want old-sha", body["sha"])
	}
}

// TestPutFileConflict verifies a 409 (stale SHA) is returned as an error.
func TestPutFileConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"is at ... but expected ..."}`, http.StatusConflict)
	}))
	defer srv.Close()

	err := testStore(srv.URL).PutFile(context.Background(), "progressions.json", []byte("[]"), "stale")
	if err == nil {
		t.Fatal("expected error for conflicting write")
	}
}
