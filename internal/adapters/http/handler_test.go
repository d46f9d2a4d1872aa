package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/PabloGalante/farum-breath/internal/adapters/http"
	"github.com/PabloGalante/farum-breath/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-breath/internal/app/journal"
	"github.com/PabloGalante/farum-breath/internal/app/practice"
	"github.com/PabloGalante/farum-breath/internal/app/recommendation"
	"github.com/PabloGalante/farum-breath/internal/app/reflection"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	sessions := memory.NewSessionStore()
	entries := memory.NewJournalStore()

	return httpadapter.NewServer(httpadapter.Services{
		Engine:    recommendation.NewEngine(sessions, nil, recommendation.WithLocation(time.UTC)),
		Practice:  practice.NewService(sessions, time.UTC),
		Journal:   journal.NewService(entries, time.UTC),
		Reflector: reflection.NewPrompter(nil),
		Location:  time.UTC,
	})
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecommendEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/recommendations", `{"emotion":"anxious","intensity":9}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decode[domain.Recommendation](t, w)
	assert.Equal(t, domain.Technique478, rec.Technique)
	assert.Equal(t, 90, rec.Confidence)
	assert.Equal(t, domain.SourceFallback, rec.Source)

	w = do(t, srv, http.MethodPost, "/recommendations", `{"emotion":"anxious","intensity":12}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/recommendations", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/sessions", `{"mood":{"emotion":"stressed","intensity":7},"technique":"box"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sess := decode[domain.Session](t, w)
	require.NotEmpty(t, sess.ID)

	// reflection before completion is a conflict
	w = do(t, srv, http.MethodPost, "/reflections", `{"session_id":"`+string(sess.ID)+`"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, srv, http.MethodPost, "/sessions/"+string(sess.ID)+"/complete", `{"mood_after":{"emotion":"calm","intensity":3}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	done := decode[domain.Session](t, w)
	require.NotNil(t, done.Improvement)
	assert.Equal(t, 4, *done.Improvement)

	w = do(t, srv, http.MethodPost, "/sessions/"+string(sess.ID)+"/abandon", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, srv, http.MethodGet, "/sessions/"+string(sess.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPost, "/reflections", `{"session_id":"`+string(sess.ID)+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	prompt := decode[reflection.JournalPrompt](t, w)
	assert.NotEmpty(t, prompt.Prompt)
	assert.Equal(t, domain.SourceFallback, prompt.Source)

	w = do(t, srv, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, stats["totalEntries"])
	assert.Equal(t, "stressed", stats["mostCommonEmotion"])

	w = do(t, srv, http.MethodGet, "/insights", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"avgImprovement":4`)
}

func TestSessionErrors(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/sessions", `{"technique":"box"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/sessions", `{"mood":{"emotion":"sad","intensity":4},"technique":"lion"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/reflections", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/journal/today", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]bool{"journaled": false}, decode[map[string]bool](t, w))

	w = do(t, srv, http.MethodPut, "/journal/today", `{"emotion":"grateful"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entry := decode[domain.JournalEntry](t, w)

	w = do(t, srv, http.MethodPut, "/journal/today", `{"emotion":"giddy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/journal/today", "")
	assert.Equal(t, map[string]bool{"journaled": true}, decode[map[string]bool](t, w))

	w = do(t, srv, http.MethodGet, "/journal/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, stats["currentStreak"])
	assert.Equal(t, "grateful", stats["mostCommonEmotion"])

	w = do(t, srv, http.MethodGet, "/journal/months/"+entry.Date[:4]+"/"+entry.Date[5:7], "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.JournalEntry](t, w), 1)

	w = do(t, srv, http.MethodGet, "/journal/months/2025/13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodOptions, "/recommendations", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
