package domain

// Technique identifies a breathing exercise.
type Technique string

const (
	Technique478      Technique = "4-7-8"
	TechniqueBox      Technique = "box"
	TechniqueCoherent Technique = "coherent"
)

// Techniques lists every technique in catalog order.
func Techniques() []Technique {
	return []Technique{Technique478, TechniqueBox, TechniqueCoherent}
}

// Phase is one step of a breathing cycle.
type Phase struct {
	Name            string  `json:"name"`
	DurationSeconds float64 `json:"duration_seconds"`
	Instruction     string  `json:"instruction"`
}

// TechniqueProfile is the static description of a technique. BestFor and
// Contraindications document intent; the fallback rules do not read them.
type TechniqueProfile struct {
	Name              string   `json:"name"`
	ShortName         string   `json:"short_name"`
	DurationSeconds   int      `json:"duration_seconds"`
	Cycles            int      `json:"cycles"`
	Phases            []Phase  `json:"phases"`
	BestFor           []string `json:"best_for"`
	Mechanism         string   `json:"mechanism"`
	Evidence          string   `json:"evidence"`
	Contraindications string   `json:"contraindications,omitempty"`
}

// Profile returns the static description of t. ok is false for unknown keys.
func (t Technique) Profile() (TechniqueProfile, bool) {
	switch t {
	case Technique478:
		return TechniqueProfile{
			Name:            "4-7-8 Breathing",
			ShortName:       "4-7-8",
			DurationSeconds: 300,
			Cycles:          8,
			Phases: []Phase{
				{Name: "inhale", DurationSeconds: 4, Instruction: "Inhale through nose"},
				{Name: "hold", DurationSeconds: 7, Instruction: "Hold your breath"},
				{Name: "exhale", DurationSeconds: 8, Instruction: "Exhale through mouth"},
			},
			BestFor:   []string{"acute anxiety", "sleep preparation", "panic management"},
			Mechanism: "Activates parasympathetic nervous system through a long active exhale",
			Evidence:  "Reduces heart rate within 4 cycles",
			Contraindications: "Avoid for very-low arousal states (numb, exhausted): the long exhale " +
				"deepens low activation instead of relieving it",
		}, true
	case TechniqueBox:
		return TechniqueProfile{
			Name:            "Box Breathing",
			ShortName:       "Box",
			DurationSeconds: 300,
			Cycles:          12,
			Phases: []Phase{
				{Name: "inhale", DurationSeconds: 4, Instruction: "Breathe in"},
				{Name: "hold-full", DurationSeconds: 4, Instruction: "Hold"},
				{Name: "exhale", DurationSeconds: 4, Instruction: "Breathe out"},
				{Name: "hold-empty", DurationSeconds: 4, Instruction: "Hold"},
			},
			BestFor:   []string{"stress management", "focus", "performance situations"},
			Mechanism: "Creates autonomic balance and mental clarity",
			Evidence:  "Used by Navy SEALs, improves concentration",
			Contraindications: "Breath holds can feel constricting during panic; prefer 4-7-8 " +
				"for acute high-arousal distress",
		}, true
	case TechniqueCoherent:
		return TechniqueProfile{
			Name:            "Coherent Breathing",
			ShortName:       "Coherent",
			DurationSeconds: 600,
			Cycles:          55,
			Phases: []Phase{
				{Name: "inhale", DurationSeconds: 5.5, Instruction: "Breathe in"},
				{Name: "exhale", DurationSeconds: 5.5, Instruction: "Breathe out"},
			},
			BestFor:   []string{"daily maintenance", "building HRV", "long-term resilience", "gentle activation"},
			Mechanism: "Optimizes heart rate variability at 5.5 breaths/min",
			Evidence:  "Improves cognitive function and stress resilience",
		}, true
	}
	return TechniqueProfile{}, false
}

// Valid reports whether t is part of the catalog.
func (t Technique) Valid() bool {
	_, ok := t.Profile()
	return ok
}
