package recommendation

import (
	"github.com/PabloGalante/farum-breath/internal/calendar"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

// Band thresholds.
const (
	crisisIntensity       = 8
	highArousalIntensity  = 7
	moderateMinIntensity  = 4
	lowArousalActivation  = 6
	nightCatchIntensity   = 5
	morningCatchIntensity = 5
)

type fallbackInput struct {
	Emotion   domain.Emotion
	Profile   domain.EmotionProfile
	Intensity int
	TimeOfDay calendar.TimeOfDay
}

func (in fallbackInput) negative() bool {
	return in.Profile.Valence == domain.ValenceNegative
}

func (in fallbackInput) isNight() bool {
	return in.TimeOfDay == calendar.Night || in.TimeOfDay == calendar.LateNight
}

type fallbackRule struct {
	name      string
	match     func(fallbackInput) bool
	recommend func(fallbackInput) domain.Recommendation
}

func fixed(tech domain.Technique, confidence int, reasoning, note string) func(fallbackInput) domain.Recommendation {
	return func(fallbackInput) domain.Recommendation {
		return domain.Recommendation{
			Technique:    tech,
			Reasoning:    reasoning,
			PersonalNote: note,
			Confidence:   confidence,
		}
	}
}

// fallbackRules are evaluated in order and the first match wins. Bands
// overlap, so the order is part of the behavior.
var fallbackRules = []fallbackRule{
	{
		name:  "crisis",
		match: func(in fallbackInput) bool { return in.Intensity >= crisisIntensity },
		recommend: func(in fallbackInput) domain.Recommendation {
			if in.Profile.Arousal.IsHigh() {
				return fixed(domain.Technique478, 90,
					"Very intense activation needs the fastest parasympathetic downshift available",
					"A long, slow exhale tells your body it is safe to settle")(in)
			}
			return fixed(domain.TechniqueBox, 85,
				"When feelings are heavy and intense, an even four-count rhythm gives you something steady to hold",
				"You do not need to feel better right away, just follow the square")(in)
		},
	},
	{
		name: "high-arousal-negative",
		match: func(in fallbackInput) bool {
			return in.Intensity >= highArousalIntensity && in.Profile.Arousal.IsHigh() && in.negative()
		},
		recommend: func(in fallbackInput) domain.Recommendation {
			if in.isNight() {
				return fixed(domain.Technique478, 85,
					"High intensity at night calls for quick parasympathetic activation that also prepares you for sleep",
					"This technique works fast and helps you wind down")(in)
			}
			return fixed(domain.Technique478, 85,
				"High intensity requires quick parasympathetic activation",
				"This technique works fast for intense feelings")(in)
		},
	},
	{
		name: "moderate-arousal-negative",
		match: func(in fallbackInput) bool {
			return in.Intensity >= moderateMinIntensity && in.Intensity < highArousalIntensity &&
				in.Profile.Arousal.IsModerate() && in.negative()
		},
		recommend: fixed(domain.TechniqueBox, 80,
			"Box breathing brings focus and grounding",
			"Great for regaining control and clarity"),
	},
	{
		name:  "low-arousal-negative",
		match: func(in fallbackInput) bool { return in.Profile.Arousal.IsLow() && in.negative() },
		recommend: func(in fallbackInput) domain.Recommendation {
			if in.Emotion.IsDepleted() || in.Intensity >= lowArousalActivation {
				return fixed(domain.TechniqueCoherent, 75,
					"Even, unhurried breaths gently lift low energy without pushing it further down",
					"Small, steady breaths are enough today")(in)
			}
			return fixed(domain.TechniqueBox, 75,
				"A simple, structured rhythm gives a low mood something to lean on",
				"Counting to four is all you need to do")(in)
		},
	},
	{
		name:  "positive",
		match: func(in fallbackInput) bool { return in.Profile.Valence == domain.ValencePositive },
		recommend: fixed(domain.TechniqueCoherent, 85,
			"Daily coherent practice builds long-term resilience while you feel steady",
			"Practicing when you feel good makes the hard days easier"),
	},
	{
		name: "night-negative",
		match: func(in fallbackInput) bool {
			return in.TimeOfDay == calendar.Night && in.negative() && in.Intensity >= nightCatchIntensity
		},
		recommend: fixed(domain.Technique478, 80,
			"Evening session benefits from sleep-promoting breathing",
			"Perfect for winding down before rest"),
	},
	{
		name: "morning",
		match: func(in fallbackInput) bool {
			return in.TimeOfDay == calendar.Morning && in.Intensity <= morningCatchIntensity
		},
		recommend: fixed(domain.TechniqueCoherent, 75,
			"Daily coherent practice builds long-term resilience",
			"Excellent for maintaining balance"),
	},
	{
		name:  "default",
		match: func(fallbackInput) bool { return true },
		recommend: fixed(domain.TechniqueCoherent, 70,
			"Coherent breathing is excellent for overall well-being",
			"A solid choice for most situations"),
	},
}

// Fallback is the deterministic recommendation used whenever the AI path
// cannot answer. Same inputs always give the same result.
func Fallback(emotion domain.Emotion, intensity int, timeOfDay calendar.TimeOfDay) domain.Recommendation {
	rec, _ := matchFallback(emotion, intensity, timeOfDay)
	return rec
}

func matchFallback(emotion domain.Emotion, intensity int, timeOfDay calendar.TimeOfDay) (domain.Recommendation, string) {
	profile, _ := emotion.Profile()
	in := fallbackInput{
		Emotion:   emotion,
		Profile:   profile,
		Intensity: intensity,
		TimeOfDay: timeOfDay,
	}
	for _, r := range fallbackRules {
		if r.match(in) {
			rec := r.recommend(in)
			rec.Source = domain.SourceFallback
			return rec, r.name
		}
	}
	// unreachable: the default rule always matches
	return domain.Recommendation{}, ""
}
