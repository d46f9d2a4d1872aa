package analytics_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-breath/internal/analytics"
	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

func TestMinePatternsBelowThreshold(t *testing.T) {
	sessions := []*domain.Session{
		completed(1, at(2025, 3, 3, 10), domain.EmotionAnxious, domain.TechniqueBox, 7, 4),
		completed(2, at(2025, 3, 4, 10), domain.EmotionAnxious, domain.TechniqueBox, 7, 4),
	}
	p := analytics.MinePatterns(sessions, testLoc)
	assert.True(t, p.Empty())

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestMinePatterns(t *testing.T) {
	// 2025-03-03 is a Monday.
	sessions := []*domain.Session{
		completed(1, at(2025, 3, 3, 15), domain.EmotionStressed, domain.TechniqueBox, 7, 4),
		completed(2, at(2025, 3, 10, 14), domain.EmotionStressed, domain.TechniqueBox, 7, 4),
		completed(3, at(2025, 3, 17, 9), domain.EmotionAnxious, domain.Technique478, 8, 5),
		completed(4, at(2025, 3, 5, 22), domain.EmotionSad, domain.TechniqueCoherent, 6, 5),
	}

	p := analytics.MinePatterns(sessions, testLoc)
	require.False(t, p.Empty())
	assert.Equal(t, domain.EmotionStressed, p.EmotionsByDay[1])
	assert.Equal(t, domain.EmotionSad, p.EmotionsByDay[3])
	assert.Equal(t, calendar.Afternoon, p.PreferredTimeOfDay)
	assert.Equal(t, domain.TechniqueBox, p.MostUsedTechnique)
}

func TestMinePatternsTiesKeepFirstSeen(t *testing.T) {
	sessions := []*domain.Session{
		completed(1, at(2025, 3, 3, 9), domain.EmotionSad, domain.TechniqueCoherent, 6, 5),
		completed(2, at(2025, 3, 3, 22), domain.EmotionAnxious, domain.Technique478, 7, 4),
		completed(3, at(2025, 3, 3, 15), domain.EmotionCalm, domain.TechniqueBox, 3, 2),
	}

	for i := 0; i < 10; i++ {
		p := analytics.MinePatterns(sessions, testLoc)
		assert.Equal(t, domain.EmotionSad, p.EmotionsByDay[1])
		assert.Equal(t, calendar.Morning, p.PreferredTimeOfDay)
		assert.Equal(t, domain.TechniqueCoherent, p.MostUsedTechnique)
	}
}
