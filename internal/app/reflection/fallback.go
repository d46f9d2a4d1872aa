package reflection

import "github.com/PabloGalante/farum-breath/internal/domain"

type band int

const (
	bandNoChange band = iota // unchanged or worse
	bandSmall                // 1-2
	bandModerate             // 3-5
	bandLarge                // 6+
)

func improvementBand(improvement int) band {
	switch {
	case improvement <= 0:
		return bandNoChange
	case improvement <= 2:
		return bandSmall
	case improvement <= 5:
		return bandModerate
	default:
		return bandLarge
	}
}

type arousalGroup int

const (
	groupActivated arousalGroup = iota // negative, moderate arousal or above
	groupLow                           // negative, low arousal
	groupPositive
)

func groupOf(e domain.Emotion) arousalGroup {
	p, _ := e.Profile()
	switch {
	case p.Valence == domain.ValencePositive:
		return groupPositive
	case p.Arousal.IsLow():
		return groupLow
	default:
		return groupActivated
	}
}

var fallbackPrompts = map[band]map[arousalGroup]string{
	bandNoChange: {
		groupActivated: "Where do you still feel tension? What might you need beyond breathing right now?",
		groupLow:       "What would being gentle with yourself look like right now?",
		groupPositive:  "What is asking for your attention today, if you are ready to notice it?",
	},
	bandSmall: {
		groupActivated: "What small thing shifted during your practice?",
		groupLow:       "What do you notice feeling even slightly different now?",
		groupPositive:  "What are you savoring in this moment?",
	},
	bandModerate: {
		groupActivated: "What did you discover about this feeling while you were breathing?",
		groupLow:       "How does this softer state feel in your body?",
		groupPositive:  "What opened up for you during this practice?",
	},
	bandLarge: {
		groupActivated: "What does this relief tell you about what you needed?",
		groupLow:       "How can you remember this feeling when the heaviness returns?",
		groupPositive:  "What will you take forward from this practice?",
	},
}

// Fallback picks a fixed question by improvement band and by the arousal
// group of the mood before the session.
func Fallback(in Input) JournalPrompt {
	prompt := fallbackPrompts[improvementBand(in.Improvement())][groupOf(in.MoodBefore.Emotion)]
	return JournalPrompt{Prompt: prompt, IsOptional: true, Source: domain.SourceFallback}
}
