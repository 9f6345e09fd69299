package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
	"github.com/UniversalLevi/InstagramAutomation/pkg/scheduler"
	"github.com/UniversalLevi/InstagramAutomation/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()

	q, err := queue.Open(filepath.Join(dir, "q.db"), filepath.Join(dir, "media"))
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { q.Close(); st.Close() })

	if _, err := st.EnsureAccount("acct1", ""); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Account = "acct1"
	cfg.DataDir = dir

	sched, err := scheduler.New(cfg, q, st)
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, q, st, sched), st, dir
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func addPostBody(t *testing.T, dir string) string {
	t.Helper()
	fp := filepath.Join(dir, "media", "queue", "a.jpg")
	if err := os.WriteFile(fp, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf(`{"mediaType":"photo","filePaths":[%q],"caption":"hi","hashtags":["go"]}`, fp)
}

func TestQueueEndpoints(t *testing.T) {
	s, _, dir := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/queue", addPostBody(t, dir))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/queue = %d, body %s", w.Code, w.Body)
	}
	var created queue.PostItem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.AccountID != "acct1" {
		t.Errorf("accountId = %q, want default account", created.AccountID)
	}

	w = doJSON(t, s, http.MethodGet, "/api/queue?account=acct1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/queue = %d", w.Code)
	}
	var listed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	if listed.Count != 1 {
		t.Errorf("count = %d, want 1", listed.Count)
	}

	path := fmt.Sprintf("/api/queue/%d", created.ID)
	if w = doJSON(t, s, http.MethodGet, path, ""); w.Code != http.StatusOK {
		t.Errorf("GET %s = %d", path, w.Code)
	}
	if w = doJSON(t, s, http.MethodDelete, path, ""); w.Code != http.StatusNoContent {
		t.Errorf("DELETE %s = %d", path, w.Code)
	}
	if w = doJSON(t, s, http.MethodGet, path, ""); w.Code != http.StatusNotFound {
		t.Errorf("GET deleted %s = %d, want 404", path, w.Code)
	}
}

func TestAddPostRejectsMissingMedia(t *testing.T) {
	s, _, _ := newTestServer(t)

	body := `{"mediaType":"photo","filePaths":["/nope/missing.jpg"]}`
	if w := doJSON(t, s, http.MethodPost, "/api/queue", body); w.Code != http.StatusBadRequest {
		t.Errorf("POST with missing media = %d, want 400", w.Code)
	}
	if w := doJSON(t, s, http.MethodPost, "/api/queue", "{not json"); w.Code != http.StatusBadRequest {
		t.Errorf("POST with bad body = %d, want 400", w.Code)
	}
}

func TestPublishBlockedByCooldown(t *testing.T) {
	s, st, dir := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/queue", addPostBody(t, dir))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/queue = %d", w.Code)
	}
	var created queue.PostItem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	if _, err := st.SetCooldown("acct1", 3, 7, "test"); err != nil {
		t.Fatal(err)
	}
	path := fmt.Sprintf("/api/queue/%d/publish", created.ID)
	if w = doJSON(t, s, http.MethodPost, path, ""); w.Code != http.StatusConflict {
		t.Errorf("publish during cooldown = %d, want 409", w.Code)
	}
}

func TestHealthReportsCooldown(t *testing.T) {
	s, st, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/health = %d", w.Code)
	}
	var h healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if h.Account != "acct1" || h.CooldownUntil != nil {
		t.Errorf("health = %+v, want clean acct1", h)
	}

	if _, err := st.SetCooldown("acct1", 3, 7, "test"); err != nil {
		t.Fatal(err)
	}
	w = doJSON(t, s, http.MethodGet, "/api/health", "")
	if err := json.Unmarshal(w.Body.Bytes(), &h); err != nil {
		t.Fatal(err)
	}
	if h.CooldownUntil == nil {
		t.Error("health does not report the active cooldown")
	}
}

func TestInvalidPostID(t *testing.T) {
	s, _, _ := newTestServer(t)
	if w := doJSON(t, s, http.MethodGet, "/api/queue/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("GET /api/queue/abc = %d, want 400", w.Code)
	}
}
