package matching

import "fmt"

// ErrExtractionUnavailable indicates the external term extractor failed or
// timed out. Matching aborts rather than guessing terms locally.
type ErrExtractionUnavailable struct {
	Err error
}

func (e *ErrExtractionUnavailable) Error() string {
	return fmt.Sprintf("term extraction unavailable: %v", e.Err)
}

func (e *ErrExtractionUnavailable) Unwrap() error {
	return e.Err
}

// ErrConfig indicates an unsatisfiable section config, such as an always
// priority whose fixed flavor has no current version.
type ErrConfig struct {
	Type   string
	Key    string
	Reason string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("invalid section config for %s:%s: %s", e.Type, e.Key, e.Reason)
}
