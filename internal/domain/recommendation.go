package domain

import "fmt"

type RecommendationSource string

const (
	SourceAI       RecommendationSource = "ai"
	SourceFallback RecommendationSource = "fallback"
)

// Recommendation is the engine's answer: which technique to practice next.
type Recommendation struct {
	Technique    Technique            `json:"technique"`
	Reasoning    string               `json:"reasoning"`
	PersonalNote string               `json:"personalNote"`
	Confidence   int                  `json:"confidence"`
	Source       RecommendationSource `json:"source,omitempty"`
}

func (r Recommendation) Validate() error {
	if !r.Technique.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTechnique, r.Technique)
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("confidence %d out of range 0..100", r.Confidence)
	}
	return nil
}
