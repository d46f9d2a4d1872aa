// Package reflection produces the optional journal question shown after a
// completed session.
package reflection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

// MaxPromptWords caps the length of any prompt, AI or fallback.
const MaxPromptWords = 20

type Input struct {
	MoodBefore   domain.MoodSample
	MoodAfter    domain.MoodSample
	Technique    domain.Technique
	TimeOfDay    calendar.TimeOfDay
	RecentThemes []string
}

// Improvement is before minus after; positive means the mood eased.
func (in Input) Improvement() int {
	return in.MoodBefore.Intensity - in.MoodAfter.Intensity
}

type JournalPrompt struct {
	Prompt     string                      `json:"prompt"`
	IsOptional bool                        `json:"isOptional"`
	Source     domain.RecommendationSource `json:"source"`
}

type Prompter struct {
	llm domain.LLMClient
}

// NewPrompter builds a prompter; llm may be nil.
func NewPrompter(llm domain.LLMClient) *Prompter {
	return &Prompter{llm: llm}
}

// Generate asks the model once and falls back to a fixed question when the
// model is missing, fails, or answers outside the contract.
func (p *Prompter) Generate(ctx context.Context, in Input) (JournalPrompt, error) {
	if err := in.MoodBefore.Validate(); err != nil {
		return JournalPrompt{}, err
	}
	if err := in.MoodAfter.Validate(); err != nil {
		return JournalPrompt{}, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"technique", in.Technique,
		"improvement", in.Improvement(),
	)

	if p.llm != nil && p.llm.Configured() {
		text, err := p.llm.GenerateReply(ctx, BuildPrompt(in))
		if err == nil {
			var jp JournalPrompt
			jp, err = parsePrompt(text)
			if err == nil {
				log.Info("journal prompt from ai")
				return jp, nil
			}
		}
		log.Warn("ai journal prompt failed, using fallback", "error", err)
	}

	return Fallback(in), nil
}

var errMalformed = errors.New("malformed ai journal prompt")

func parsePrompt(text string) (JournalPrompt, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var raw struct {
		Prompt     string `json:"prompt"`
		IsOptional *bool  `json:"isOptional"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &raw); err != nil {
		return JournalPrompt{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	prompt := strings.TrimSpace(raw.Prompt)
	if prompt == "" {
		return JournalPrompt{}, fmt.Errorf("%w: empty prompt", errMalformed)
	}
	if n := len(strings.Fields(prompt)); n > MaxPromptWords {
		return JournalPrompt{}, fmt.Errorf("%w: %d words", errMalformed, n)
	}

	optional := true
	if raw.IsOptional != nil {
		optional = *raw.IsOptional
	}
	return JournalPrompt{Prompt: prompt, IsOptional: optional, Source: domain.SourceAI}, nil
}

// BuildPrompt renders the session outcome for the model.
func BuildPrompt(in Input) string {
	improvement := in.Improvement()
	direction := "unchanged"
	switch {
	case improvement > 0:
		direction = "improved"
	case improvement < 0:
		direction = "worsened"
	}
	magnitude := improvement
	if magnitude < 0 {
		magnitude = -magnitude
	}

	themes := "First session"
	if len(in.RecentThemes) > 0 {
		themes = strings.Join(in.RecentThemes, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a trauma-informed, compassionate journal prompt generator for a mindfulness app.\n\n")
	b.WriteString("Session context:\n")
	fmt.Fprintf(&b, "- Emotion before: %s (intensity %d/10)\n", in.MoodBefore.Emotion, in.MoodBefore.Intensity)
	fmt.Fprintf(&b, "- Emotion after: %s (intensity %d/10)\n", in.MoodAfter.Emotion, in.MoodAfter.Intensity)
	fmt.Fprintf(&b, "- Mood change: %s by %d points\n", direction, magnitude)
	fmt.Fprintf(&b, "- Breathing technique: %s\n", in.Technique)
	fmt.Fprintf(&b, "- Time of day: %s\n", in.TimeOfDay)
	fmt.Fprintf(&b, "- Recent journal themes: %s\n\n", themes)
	b.WriteString(`Guidelines:
- Small improvement (1-2): acknowledge the shift and explore what helped
- Moderate improvement (3-5): deepen awareness of the process
- Large improvement (6+): savor the relief and anchor the learning
- No change or worse: validate the difficulty, stay curious, never force positivity
- Offer choice, avoid "should" and shame, avoid repeating recent themes
`)
	fmt.Fprintf(&b, "- Maximum %d words, one clear question or invitation\n\n", MaxPromptWords)
	b.WriteString(`Return ONLY valid JSON (no markdown):
{
  "prompt": "your question",
  "isOptional": true
}`)
	return b.String()
}
