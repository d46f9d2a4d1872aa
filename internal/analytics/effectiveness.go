package analytics

import (
	"math"
	"time"

	"github.com/PabloGalante/farum-breath/internal/domain"
)

// EffectivenessStats aggregates the before/after deltas of one technique.
type EffectivenessStats struct {
	TimesUsed      int       `json:"timesUsed"`
	AvgImprovement float64   `json:"avgImprovement"`
	SuccessRate    int       `json:"successRate"`
	LastUsed       time.Time `json:"lastUsed"`
}

// Effectiveness returns stats for every technique in the catalog. A technique
// without a completed session maps to nil.
func Effectiveness(sessions []*domain.Session) map[domain.Technique]*EffectivenessStats {
	out := make(map[domain.Technique]*EffectivenessStats, len(domain.Techniques()))
	for _, tech := range domain.Techniques() {
		out[tech] = techniqueEffectiveness(sessions, tech)
	}
	return out
}

func techniqueEffectiveness(sessions []*domain.Session, tech domain.Technique) *EffectivenessStats {
	var (
		count    int
		total    int
		positive int
		last     time.Time
	)
	for _, s := range sessions {
		if !s.Qualifies() || s.Technique != tech {
			continue
		}
		delta := improvementOf(s)
		count++
		total += delta
		if delta > 0 {
			positive++
		}
		if s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}
	if count == 0 {
		return nil
	}

	return &EffectivenessStats{
		TimesUsed:      count,
		AvgImprovement: roundTenth(float64(total) / float64(count)),
		SuccessRate:    int(roundHalfUp(float64(positive) / float64(count) * 100)),
		LastUsed:       last,
	}
}

// AverageImprovement is the mean delta over qualifying sessions, 0 when none.
func AverageImprovement(sessions []*domain.Session) float64 {
	var count, total int
	for _, s := range sessions {
		if !s.Qualifies() {
			continue
		}
		count++
		total += improvementOf(s)
	}
	if count == 0 {
		return 0
	}
	return roundTenth(float64(total) / float64(count))
}

// MostEffectiveTechnique returns the technique with the best mean delta. Ties
// go to the technique whose first qualifying session came first.
func MostEffectiveTechnique(sessions []*domain.Session) (domain.Technique, bool) {
	type acc struct{ count, total int }
	byTech := map[domain.Technique]*acc{}
	var order []domain.Technique

	for _, s := range sessions {
		if !s.Qualifies() {
			continue
		}
		a, ok := byTech[s.Technique]
		if !ok {
			a = &acc{}
			byTech[s.Technique] = a
			order = append(order, s.Technique)
		}
		a.count++
		a.total += improvementOf(s)
	}

	var (
		best    domain.Technique
		bestAvg = math.Inf(-1)
	)
	for _, tech := range order {
		a := byTech[tech]
		avg := float64(a.total) / float64(a.count)
		if avg > bestAvg {
			best, bestAvg = tech, avg
		}
	}
	return best, best != ""
}

// improvementOf recomputes the delta from the two samples so a stale stored
// Improvement cannot skew aggregates.
func improvementOf(s *domain.Session) int {
	return s.MoodBefore.Intensity - s.MoodAfter.Intensity
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTenth(x float64) float64 {
	return roundHalfUp(x*10) / 10
}
