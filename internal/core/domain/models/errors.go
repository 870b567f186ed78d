package models

import "fmt"

// GenerationError wraps any downstream generation failure into a single
// opaque error carrying the original message.
type GenerationError struct {
	Backend string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s API Error: %v", e.Backend, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
