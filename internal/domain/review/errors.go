package review

import "errors"

var (
	ErrEmptyTopic              = errors.New("topic has no questions")
	ErrSessionNotFound         = errors.New("review session not found")
	ErrSessionAlreadyCompleted = errors.New("review session already completed")
	ErrSessionCompleted        = errors.New("review session completed")
	ErrInvalidRoundSubmission  = errors.New("invalid round submission")
	ErrConcurrentModification  = errors.New("review session modified concurrently")
)
