package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

func TestFallbackBands(t *testing.T) {
	cases := []struct {
		name       string
		emotion    domain.Emotion
		intensity  int
		tod        calendar.TimeOfDay
		rule       string
		technique  domain.Technique
		confidence int
	}{
		{"anxious crisis at night", domain.EmotionAnxious, 8, calendar.Night, "crisis", domain.Technique478, 90},
		{"overwhelmed crisis", domain.EmotionOverwhelmed, 10, calendar.Afternoon, "crisis", domain.Technique478, 90},
		{"stressed crisis", domain.EmotionStressed, 8, calendar.Morning, "crisis", domain.Technique478, 90},
		{"numb crisis", domain.EmotionNumb, 9, calendar.Night, "crisis", domain.TechniqueBox, 85},
		{"calm at high intensity", domain.EmotionCalm, 8, calendar.Morning, "crisis", domain.TechniqueBox, 85},
		{"anxious high arousal day", domain.EmotionAnxious, 7, calendar.Afternoon, "high-arousal-negative", domain.Technique478, 85},
		{"angry high arousal night", domain.EmotionAngry, 7, calendar.Night, "high-arousal-negative", domain.Technique478, 85},
		{"stressed at seven", domain.EmotionStressed, 7, calendar.Afternoon, "high-arousal-negative", domain.Technique478, 85},
		{"frustrated moderate", domain.EmotionFrustrated, 5, calendar.Afternoon, "moderate-arousal-negative", domain.TechniqueBox, 80},
		{"stressed moderate", domain.EmotionStressed, 4, calendar.Evening, "moderate-arousal-negative", domain.TechniqueBox, 80},
		{"tired is depleted", domain.EmotionTired, 3, calendar.Morning, "low-arousal-negative", domain.TechniqueCoherent, 75},
		{"sad at six", domain.EmotionSad, 6, calendar.Afternoon, "low-arousal-negative", domain.TechniqueCoherent, 75},
		{"sad at four", domain.EmotionSad, 4, calendar.Afternoon, "low-arousal-negative", domain.TechniqueBox, 75},
		{"lonely at night", domain.EmotionLonely, 5, calendar.Night, "low-arousal-negative", domain.TechniqueBox, 75},
		{"hopeful", domain.EmotionHopeful, 5, calendar.Night, "positive", domain.TechniqueCoherent, 85},
		{"grateful", domain.EmotionGrateful, 2, calendar.Morning, "positive", domain.TechniqueCoherent, 85},
		{"anxious mild at night", domain.EmotionAnxious, 5, calendar.Night, "night-negative", domain.Technique478, 80},
		{"anxious mild in morning", domain.EmotionAnxious, 5, calendar.Morning, "morning", domain.TechniqueCoherent, 75},
		{"frustrated low in morning", domain.EmotionFrustrated, 3, calendar.Morning, "morning", domain.TechniqueCoherent, 75},
		{"restless afternoon", domain.EmotionRestless, 6, calendar.Afternoon, "default", domain.TechniqueCoherent, 70},
		{"anxious late night", domain.EmotionAnxious, 6, calendar.LateNight, "default", domain.TechniqueCoherent, 70},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, rule := matchFallback(tc.emotion, tc.intensity, tc.tod)
			assert.Equal(t, tc.rule, rule)
			assert.Equal(t, tc.technique, rec.Technique)
			assert.Equal(t, tc.confidence, rec.Confidence)
			assert.Equal(t, domain.SourceFallback, rec.Source)
			assert.NotEmpty(t, rec.Reasoning)
			assert.NotEmpty(t, rec.PersonalNote)
			assert.NoError(t, rec.Validate())
		})
	}
}

func TestFallbackCrisisBeatsNightCatch(t *testing.T) {
	rec, rule := matchFallback(domain.EmotionSad, 9, calendar.Night)
	assert.Equal(t, "crisis", rule)
	assert.Equal(t, domain.TechniqueBox, rec.Technique)
	assert.Equal(t, 85, rec.Confidence)
}

func TestFallbackNightChangesReasoningNotTechnique(t *testing.T) {
	day := Fallback(domain.EmotionAnxious, 7, calendar.Afternoon)
	night := Fallback(domain.EmotionAnxious, 7, calendar.Night)

	assert.Equal(t, day.Technique, night.Technique)
	assert.Equal(t, day.Confidence, night.Confidence)
	assert.NotEqual(t, day.Reasoning, night.Reasoning)
}

func TestFallbackIsDeterministic(t *testing.T) {
	tods := []calendar.TimeOfDay{calendar.LateNight, calendar.Morning, calendar.Afternoon, calendar.Evening, calendar.Night}
	for _, e := range domain.Emotions() {
		for i := domain.MinIntensity; i <= domain.MaxIntensity; i++ {
			for _, tod := range tods {
				first := Fallback(e, i, tod)
				second := Fallback(e, i, tod)
				assert.Equal(t, first, second)
				assert.NoError(t, first.Validate())
			}
		}
	}
}

func TestVeryLowArousalNeverGets478BelowCrisis(t *testing.T) {
	tods := []calendar.TimeOfDay{calendar.LateNight, calendar.Morning, calendar.Afternoon, calendar.Evening, calendar.Night}
	for _, e := range []domain.Emotion{domain.EmotionNumb, domain.EmotionTired} {
		for i := domain.MinIntensity; i <= domain.MaxIntensity; i++ {
			for _, tod := range tods {
				assert.NotEqual(t, domain.Technique478, Fallback(e, i, tod).Technique, "%s %d %s", e, i, tod)
			}
		}
	}
}
