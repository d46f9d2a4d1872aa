package domain

import "errors"

var (
	ErrNoMood           = errors.New("no mood provided")
	ErrInvalidMood      = errors.New("invalid mood")
	ErrUnknownTechnique = errors.New("unknown breathing technique")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyConcluded = errors.New("session already concluded")
	ErrAIUnavailable    = errors.New("ai capability not configured")
)
