// Package recommendation decides which breathing technique to suggest next.
// It asks the AI capability once and falls back to a fixed rule list whenever
// that path cannot produce a usable answer.
package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-breath/internal/analytics"
	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

// Engine holds only collaborators; every call works on its own history
// snapshot, so concurrent calls do not interfere.
type Engine struct {
	history domain.SessionHistory
	llm     domain.LLMClient
	now     func() time.Time
	loc     *time.Location
}

type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the user's timezone for day and time-of-day buckets.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// NewEngine builds an engine. llm may be nil, in which case every call uses
// the fallback rules.
func NewEngine(history domain.SessionHistory, llm domain.LLMClient, opts ...Option) *Engine {
	e := &Engine{
		history: history,
		llm:     llm,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type aiOutcome int

const (
	aiSuccess aiOutcome = iota
	aiUnavailable
	aiMalformed
)

func (o aiOutcome) String() string {
	switch o {
	case aiSuccess:
		return "success"
	case aiUnavailable:
		return "unavailable"
	case aiMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

type aiResult struct {
	outcome aiOutcome
	rec     domain.Recommendation
	err     error
}

// Recommend returns a technique for mood. The only error it returns is a
// precondition violation on mood; everything else degrades to the fallback.
// A timestamped mood is bucketed by its own time of day; an untimed one by
// the engine clock.
func (e *Engine) Recommend(ctx context.Context, mood *domain.MoodSample) (domain.Recommendation, error) {
	if err := mood.Validate(); err != nil {
		return domain.Recommendation{}, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"emotion", mood.Emotion,
		"intensity", mood.Intensity,
	)

	now := e.now().In(e.loc)
	rc := BuildContext(*mood, e.loadHistory(ctx), now)

	res := e.tryAI(ctx, rc)
	switch res.outcome {
	case aiSuccess:
		log.Info("recommendation from ai", "technique", res.rec.Technique, "confidence", res.rec.Confidence)
		return res.rec, nil
	case aiUnavailable, aiMalformed:
		log.Warn("ai recommendation failed, using fallback", "outcome", res.outcome.String(), "error", res.err)
	}

	rec := Fallback(rc.Mood.Emotion, rc.Mood.Intensity, rc.TimeOfDay)
	log.Info("recommendation from fallback", "technique", rec.Technique, "confidence", rec.Confidence)
	return rec, nil
}

// Stats summarizes the session history. A storage failure yields zeroed
// stats.
func (e *Engine) Stats(ctx context.Context) analytics.Stats {
	return analytics.SessionStats(e.loadHistory(ctx), e.now().In(e.loc))
}

// Insights bundles the per-technique and pattern views of the history.
type Insights struct {
	Effectiveness map[domain.Technique]*analytics.EffectivenessStats `json:"effectiveness"`
	Patterns      analytics.Patterns                                 `json:"patterns"`
	LastWeek      analytics.PeriodStats                              `json:"lastWeek"`
}

func (e *Engine) Insights(ctx context.Context) Insights {
	history := e.loadHistory(ctx)
	now := e.now().In(e.loc)
	return Insights{
		Effectiveness: analytics.Effectiveness(history),
		Patterns:      analytics.MinePatterns(history, e.loc),
		LastWeek:      analytics.StatsForPeriod(history, RecentWindowDays, now),
	}
}

func (e *Engine) loadHistory(ctx context.Context) []*domain.Session {
	if e.history == nil {
		return nil
	}
	sessions, err := e.history.GetAllSessions(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("failed to load session history, continuing without it", "error", err)
		return nil
	}
	return sessions
}

func (e *Engine) tryAI(ctx context.Context, rc Context) aiResult {
	if e.llm == nil || !e.llm.Configured() {
		return aiResult{outcome: aiUnavailable, err: domain.ErrAIUnavailable}
	}

	text, err := e.llm.GenerateReply(ctx, BuildPrompt(rc))
	if err != nil {
		return aiResult{outcome: aiUnavailable, err: err}
	}

	rec, err := ParseRecommendation(text)
	if err != nil {
		return aiResult{outcome: aiMalformed, err: err}
	}
	return aiResult{outcome: aiSuccess, rec: rec}
}

var errMalformed = errors.New("malformed ai recommendation")

type aiRecommendation struct {
	Technique    string          `json:"technique"`
	Reasoning    string          `json:"reasoning"`
	PersonalNote *string         `json:"personalNote"`
	Confidence   json.RawMessage `json:"confidence"`
}

// ParseRecommendation validates the model's JSON answer. Markdown code
// fences around the object are tolerated.
func ParseRecommendation(text string) (domain.Recommendation, error) {
	var raw aiRecommendation
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return domain.Recommendation{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	confidence, err := parseConfidence(raw.Confidence)
	if err != nil {
		return domain.Recommendation{}, err
	}
	if strings.TrimSpace(raw.Reasoning) == "" {
		return domain.Recommendation{}, fmt.Errorf("%w: empty reasoning", errMalformed)
	}
	if raw.PersonalNote == nil {
		return domain.Recommendation{}, fmt.Errorf("%w: missing personalNote", errMalformed)
	}

	rec := domain.Recommendation{
		Technique:    domain.Technique(strings.TrimSpace(raw.Technique)),
		Reasoning:    strings.TrimSpace(raw.Reasoning),
		PersonalNote: strings.TrimSpace(*raw.PersonalNote),
		Confidence:   int(confidence),
		Source:       domain.SourceAI,
	}
	if err := rec.Validate(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return rec, nil
}

// parseConfidence accepts only a bare JSON integer; quoted numerals, null and
// fractions are malformed.
func parseConfidence(raw json.RawMessage) (int64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || strings.HasPrefix(trimmed, `"`) {
		return 0, fmt.Errorf("%w: confidence %s is not an integer", errMalformed, trimmed)
	}
	var n json.Number
	if err := json.Unmarshal([]byte(trimmed), &n); err != nil {
		return 0, fmt.Errorf("%w: confidence %s: %v", errMalformed, trimmed, err)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: confidence %s is not an integer", errMalformed, trimmed)
	}
	return v, nil
}

func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	if idx := strings.Index(cleaned, "\n"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}
	if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}
