package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/PabloGalante/farum-breath/internal/app/journal"
	"github.com/PabloGalante/farum-breath/internal/app/practice"
	"github.com/PabloGalante/farum-breath/internal/app/recommendation"
	"github.com/PabloGalante/farum-breath/internal/app/reflection"
	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

const maxBodyBytes = 1 << 20

var errNotCompleted = errors.New("session is not completed")

type Services struct {
	Engine    *recommendation.Engine
	Practice  *practice.Service
	Journal   *journal.Service
	Reflector *reflection.Prompter
	Location  *time.Location
}

type Server struct {
	svc Services
}

func NewServer(svc Services) http.Handler {
	if svc.Location == nil {
		svc.Location = time.Local
	}
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(withCORS)
	r.Use(chimiddleware.RequestSize(maxBodyBytes))

	r.Get("/healthz", s.handleHealthz)

	r.Post("/recommendations", s.handleRecommend)
	r.Get("/stats", s.handleStats)
	r.Get("/insights", s.handleInsights)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Get("/today", s.handleTodaySessions)
		r.Get("/{id}", s.handleGetSession)
		r.Post("/{id}/complete", s.handleCompleteSession)
		r.Post("/{id}/abandon", s.handleAbandonSession)
	})

	r.Route("/journal", func(r chi.Router) {
		r.Put("/today", s.handleWriteEntry)
		r.Get("/today", s.handleJournaledToday)
		r.Get("/stats", s.handleJournalStats)
		r.Get("/months/{year}/{month}", s.handleEntriesForMonth)
	})

	r.Post("/reflections", s.handleReflection)

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type moodRequest struct {
	Emotion   string `json:"emotion"`
	Intensity int    `json:"intensity"`
}

func (m *moodRequest) toDomain(now time.Time) *domain.MoodSample {
	if m == nil {
		return nil
	}
	return &domain.MoodSample{Emotion: domain.Emotion(m.Emotion), Intensity: m.Intensity, Timestamp: now}
}

type startSessionRequest struct {
	Mood      *moodRequest `json:"mood"`
	Technique string       `json:"technique"`
}

type completeSessionRequest struct {
	MoodAfter    *moodRequest `json:"mood_after"`
	JournalEntry string       `json:"journal_entry,omitempty"`
}

type writeEntryRequest struct {
	Emotion *string `json:"emotion"`
}

type reflectionRequest struct {
	SessionID string `json:"session_id"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := s.svc.Engine.Recommend(r.Context(), req.toDomain(time.Now()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Engine.Stats(r.Context()))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Engine.Insights(r.Context()))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Mood == nil {
		writeError(w, r, domain.ErrNoMood)
		return
	}

	sess, err := s.svc.Practice.StartSession(r.Context(), practice.StartSessionInput{
		Mood:      *req.Mood.toDomain(time.Time{}),
		Technique: domain.Technique(req.Technique),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleTodaySessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.svc.Practice.TodaySessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Practice.GetSession(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var req completeSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MoodAfter == nil {
		writeError(w, r, domain.ErrNoMood)
		return
	}

	sess, err := s.svc.Practice.CompleteSession(r.Context(), practice.CompleteSessionInput{
		ID:           sessionID(r),
		MoodAfter:    *req.MoodAfter.toDomain(time.Time{}),
		JournalEntry: req.JournalEntry,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Practice.AbandonSession(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleWriteEntry(w http.ResponseWriter, r *http.Request) {
	var req writeEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var emotion *domain.Emotion
	if req.Emotion != nil && *req.Emotion != "" {
		e := domain.Emotion(*req.Emotion)
		emotion = &e
	}

	entry, err := s.svc.Journal.WriteEntry(r.Context(), emotion)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleJournaledToday(w http.ResponseWriter, r *http.Request) {
	ok, err := s.svc.Journal.HasJournaledToday(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"journaled": ok})
}

func (s *Server) handleJournalStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Journal.Stats(r.Context()))
}

func (s *Server) handleEntriesForMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		badRequest(w, "year must be a number")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		badRequest(w, "month must be 1..12")
		return
	}

	entries, err := s.svc.Journal.EntriesForMonth(r.Context(), year, time.Month(month))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*domain.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleReflection(w http.ResponseWriter, r *http.Request) {
	var req reflectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		badRequest(w, "session_id is required")
		return
	}

	sess, err := s.svc.Practice.GetSession(r.Context(), domain.SessionID(req.SessionID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !sess.Qualifies() {
		writeError(w, r, errNotCompleted)
		return
	}

	prompt, err := s.svc.Reflector.Generate(r.Context(), reflection.Input{
		MoodBefore: sess.MoodBefore,
		MoodAfter:  *sess.MoodAfter,
		Technique:  sess.Technique,
		TimeOfDay:  calendar.TimeOfDayBucket(sess.Timestamp.In(s.svc.Location)),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func sessionID(r *http.Request) domain.SessionID {
	return domain.SessionID(chi.URLParam(r, "id"))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

// writeError maps domain errors to status codes; anything unknown is a 500
// and its detail only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoMood),
		errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrUnknownTechnique):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyConcluded), errors.Is(err, errNotCompleted):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
