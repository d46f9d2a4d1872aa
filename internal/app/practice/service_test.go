package practice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-breath/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-breath/internal/app/practice"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

func newService(now time.Time) *practice.Service {
	return practice.NewService(memory.NewSessionStore(), time.UTC).
		WithClock(func() time.Time { return now })
}

func TestStartAndCompleteSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 4, 22, 0, 0, 0, time.UTC)
	svc := newService(now)

	sess, err := svc.StartSession(ctx, practice.StartSessionInput{
		Mood:      domain.MoodSample{Emotion: domain.EmotionAnxious, Intensity: 8},
		Technique: domain.Technique478,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.StatusInProgress, sess.Status)
	assert.True(t, now.Equal(sess.MoodBefore.Timestamp))

	done, err := svc.CompleteSession(ctx, practice.CompleteSessionInput{
		ID:           sess.ID,
		MoodAfter:    domain.MoodSample{Emotion: domain.EmotionCalm, Intensity: 3},
		JournalEntry: "slower heart",
	})
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.Improvement)
	assert.Equal(t, 5, *done.Improvement)
	require.NotNil(t, done.JournalEntry)

	stored, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)

	_, err = svc.CompleteSession(ctx, practice.CompleteSessionInput{
		ID:        sess.ID,
		MoodAfter: domain.MoodSample{Emotion: domain.EmotionCalm, Intensity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyConcluded)
	_, err = svc.AbandonSession(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConcluded)
}

func TestAbandonSessionLeavesImprovementUndefined(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC))

	sess, err := svc.StartSession(ctx, practice.StartSessionInput{
		Mood:      domain.MoodSample{Emotion: domain.EmotionTired, Intensity: 6},
		Technique: domain.TechniqueCoherent,
	})
	require.NoError(t, err)

	quit, err := svc.AbandonSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, quit.Completed)
	assert.Nil(t, quit.Improvement)
	assert.False(t, quit.Qualifies())
}

func TestStartSessionValidates(t *testing.T) {
	ctx := context.Background()
	svc := newService(time.Now())

	_, err := svc.StartSession(ctx, practice.StartSessionInput{
		Mood:      domain.MoodSample{Emotion: domain.EmotionSad, Intensity: 0},
		Technique: domain.TechniqueBox,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMood)

	_, err = svc.StartSession(ctx, practice.StartSessionInput{
		Mood:      domain.MoodSample{Emotion: domain.EmotionSad, Intensity: 4},
		Technique: "lion",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownTechnique)

	_, err = svc.CompleteSession(ctx, practice.CompleteSessionInput{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTodaySessionsUsesEffectiveDay(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	base := practice.NewService(store, time.UTC)

	// 02:30 on the 5th still belongs to the 4th.
	times := []time.Time{
		time.Date(2025, 3, 4, 3, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 2, 30, 0, 0, time.UTC),
	}
	for _, ts := range times {
		ts := ts
		_, err := base.WithClock(func() time.Time { return ts }).StartSession(ctx, practice.StartSessionInput{
			Mood:      domain.MoodSample{Emotion: domain.EmotionHopeful, Intensity: 4},
			Technique: domain.TechniqueCoherent,
		})
		require.NoError(t, err)
	}

	today, err := base.WithClock(func() time.Time { return time.Date(2025, 3, 5, 3, 59, 0, 0, time.UTC) }).TodaySessions(ctx)
	require.NoError(t, err)
	assert.Len(t, today, 2)
}
