package reflection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-breath/internal/adapters/llm"
	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

func input(before domain.Emotion, beforeN int, afterN int) Input {
	return Input{
		MoodBefore: domain.MoodSample{Emotion: before, Intensity: beforeN},
		MoodAfter:  domain.MoodSample{Emotion: domain.EmotionCalm, Intensity: afterN},
		Technique:  domain.Technique478,
		TimeOfDay:  calendar.Evening,
	}
}

func TestFallbackPromptsStayShort(t *testing.T) {
	for b, groups := range fallbackPrompts {
		require.Len(t, groups, 3, "band %d", b)
		for g, prompt := range groups {
			words := len(strings.Fields(prompt))
			assert.LessOrEqual(t, words, MaxPromptWords, "band %d group %d", b, g)
			assert.NotEmpty(t, prompt)
		}
	}
}

func TestFallbackSelection(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want string
	}{
		{"anxious worsened", input(domain.EmotionAnxious, 5, 7), fallbackPrompts[bandNoChange][groupActivated]},
		{"sad unchanged", input(domain.EmotionSad, 5, 5), fallbackPrompts[bandNoChange][groupLow]},
		{"stressed small", input(domain.EmotionStressed, 6, 4), fallbackPrompts[bandSmall][groupActivated]},
		{"tired moderate", input(domain.EmotionTired, 7, 3), fallbackPrompts[bandModerate][groupLow]},
		{"hopeful moderate", input(domain.EmotionHopeful, 5, 2), fallbackPrompts[bandModerate][groupPositive]},
		{"overwhelmed large", input(domain.EmotionOverwhelmed, 9, 2), fallbackPrompts[bandLarge][groupActivated]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fallback(tc.in)
			assert.Equal(t, tc.want, got.Prompt)
			assert.True(t, got.IsOptional)
			assert.Equal(t, domain.SourceFallback, got.Source)
		})
	}
}

func TestGenerateUsesAIWhenValid(t *testing.T) {
	client := &llm.MockLLM{Reply: `{"prompt":"What softened first, your breath or your thoughts?","isOptional":false}`}
	p := NewPrompter(client)

	got, err := p.Generate(context.Background(), input(domain.EmotionAnxious, 8, 3))
	require.NoError(t, err)
	assert.Equal(t, "What softened first, your breath or your thoughts?", got.Prompt)
	assert.False(t, got.IsOptional)
	assert.Equal(t, domain.SourceAI, got.Source)

	prompts := client.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Mood change: improved by 5 points")
	assert.Contains(t, prompts[0], "Recent journal themes: First session")
}

func TestGenerateFallsBack(t *testing.T) {
	long := strings.Repeat("word ", MaxPromptWords+1)
	clients := map[string]domain.LLMClient{
		"nil":          nil,
		"failing":      llm.NewFailingLLM(errors.New("timeout")),
		"not json":     &llm.MockLLM{Reply: "How was it?"},
		"empty":        &llm.MockLLM{Reply: `{"prompt":"  "}`},
		"too long":     &llm.MockLLM{Reply: `{"prompt":"` + long + `"}`},
		"unconfigured": &llm.MockLLM{Reply: `{"prompt":"ok?"}`, Unconfigured: true},
	}
	for name, client := range clients {
		t.Run(name, func(t *testing.T) {
			got, err := NewPrompter(client).Generate(context.Background(), input(domain.EmotionSad, 6, 4))
			require.NoError(t, err)
			assert.Equal(t, domain.SourceFallback, got.Source)
			assert.Equal(t, fallbackPrompts[bandSmall][groupLow], got.Prompt)
		})
	}
}

func TestGenerateValidatesMoods(t *testing.T) {
	p := NewPrompter(nil)
	_, err := p.Generate(context.Background(), input(domain.EmotionSad, 0, 4))
	assert.ErrorIs(t, err, domain.ErrInvalidMood)
}
