package domain

// Emotion identifies one of the moods a user can pick before a session.
type Emotion string

const (
	EmotionAnxious     Emotion = "anxious"
	EmotionAngry       Emotion = "angry"
	EmotionFrustrated  Emotion = "frustrated"
	EmotionOverwhelmed Emotion = "overwhelmed"
	EmotionRestless    Emotion = "restless"
	EmotionSad         Emotion = "sad"
	EmotionLonely      Emotion = "lonely"
	EmotionTired       Emotion = "tired"
	EmotionNumb        Emotion = "numb"
	EmotionStressed    Emotion = "stressed"
	EmotionCalm        Emotion = "calm"
	EmotionContent     Emotion = "content"
	EmotionGrateful    Emotion = "grateful"
	EmotionHopeful     Emotion = "hopeful"
)

// Emotions lists every emotion in catalog order.
func Emotions() []Emotion {
	return []Emotion{
		EmotionAnxious, EmotionAngry, EmotionFrustrated, EmotionOverwhelmed, EmotionRestless,
		EmotionSad, EmotionLonely, EmotionTired, EmotionNumb,
		EmotionStressed,
		EmotionCalm, EmotionContent, EmotionGrateful,
		EmotionHopeful,
	}
}

// EmotionProfile is the static metadata attached to an emotion.
type EmotionProfile struct {
	Label            string
	Arousal          Arousal
	Valence          Valence
	DefaultIntensity int
	// Guidance is a one-line hint about what the state needs, used in prompts.
	Guidance string
}

// Profile returns the static metadata for e. ok is false for unknown keys.
func (e Emotion) Profile() (EmotionProfile, bool) {
	switch e {
	case EmotionAnxious:
		return EmotionProfile{"Anxious", ArousalHigh, ValenceNegative, 7,
			"High arousal fear state - needs parasympathetic activation and grounding"}, true
	case EmotionAngry:
		return EmotionProfile{"Angry", ArousalHigh, ValenceNegative, 7,
			"High arousal anger state - needs cooling, regulation, and perspective"}, true
	case EmotionFrustrated:
		return EmotionProfile{"Frustrated", ArousalModerateHigh, ValenceNegative, 6,
			"Moderate anger from blocked goals - needs perspective shift and grounding"}, true
	case EmotionOverwhelmed:
		return EmotionProfile{"Overwhelmed", ArousalVeryHigh, ValenceNegative, 8,
			"Cognitive/emotional overload - needs simplification, breaks, and regulation"}, true
	case EmotionRestless:
		return EmotionProfile{"Restless", ArousalHigh, ValenceNegative, 6,
			"Excess unfocused energy - needs channeling and grounding"}, true
	case EmotionSad:
		return EmotionProfile{"Sad", ArousalLow, ValenceNegative, 6,
			"Low arousal sadness - needs gentle activation and emotional resilience"}, true
	case EmotionLonely:
		return EmotionProfile{"Lonely", ArousalLow, ValenceNegative, 6,
			"Social pain and disconnection - needs self-compassion and reconnection"}, true
	case EmotionTired:
		return EmotionProfile{"Tired", ArousalVeryLow, ValenceNegative, 7,
			"Physical/mental fatigue - needs gentle energizing or permission to rest"}, true
	case EmotionNumb:
		return EmotionProfile{"Numb", ArousalVeryLow, ValenceNegative, 5,
			"Emotional disconnection/avoidance - needs gentle reconnection and safety"}, true
	case EmotionStressed:
		return EmotionProfile{"Stressed", ArousalModerateHigh, ValenceNegative, 7,
			"Pressure and demands exceeding resources - needs mental clarity and grounding"}, true
	case EmotionCalm:
		return EmotionProfile{"Calm", ArousalLow, ValencePositive, 3,
			"Parasympathetic state - maintenance practice to deepen and build resilience"}, true
	case EmotionContent:
		return EmotionProfile{"Content", ArousalLow, ValencePositive, 3,
			"Mild positive state - opportunity for gratitude practice and deepening"}, true
	case EmotionGrateful:
		return EmotionProfile{"Grateful", ArousalLowModerate, ValencePositive, 2,
			"Positive reflective state - deepen with awareness and savoring practices"}, true
	case EmotionHopeful:
		return EmotionProfile{"Hopeful", ArousalModerate, ValencePositive, 4,
			"Positive anticipation - channel energy constructively and build momentum"}, true
	}
	return EmotionProfile{}, false
}

// Valid reports whether e is part of the catalog.
func (e Emotion) Valid() bool {
	_, ok := e.Profile()
	return ok
}

// IsDepleted reports the very low energy states that need activation
// rather than more structure.
func (e Emotion) IsDepleted() bool {
	switch e {
	case EmotionNumb, EmotionTired:
		return true
	}
	return false
}
