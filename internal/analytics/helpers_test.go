package analytics_test

import (
	"fmt"
	"time"

	"github.com/PabloGalante/farum-breath/internal/domain"
)

var testLoc = time.FixedZone("test", 2*3600)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, testLoc)
}

func completed(id int, ts time.Time, emotion domain.Emotion, tech domain.Technique, before, after int) *domain.Session {
	s := &domain.Session{
		ID:         domain.SessionID(fmt.Sprintf("s-%d", id)),
		Timestamp:  ts,
		MoodBefore: domain.MoodSample{Emotion: emotion, Intensity: before, Timestamp: ts},
		Technique:  tech,
		Status:     domain.StatusInProgress,
	}
	if err := s.Conclude(domain.MoodSample{Emotion: emotion, Intensity: after, Timestamp: ts}); err != nil {
		panic(err)
	}
	return s
}

func abandoned(id int, ts time.Time, emotion domain.Emotion, tech domain.Technique, before int) *domain.Session {
	s := &domain.Session{
		ID:         domain.SessionID(fmt.Sprintf("a-%d", id)),
		Timestamp:  ts,
		MoodBefore: domain.MoodSample{Emotion: emotion, Intensity: before, Timestamp: ts},
		Technique:  tech,
		Status:     domain.StatusInProgress,
	}
	if err := s.Abandon(); err != nil {
		panic(err)
	}
	return s
}
