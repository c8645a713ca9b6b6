package game

import (
	"errors"
	"fmt"
)

// Sentinel errors for controller misuse. Both indicate programmer error on
// the caller's side and are never retried internally.
var (
	// ErrEpisodeAlreadyEnded is returned by Step once a terminal stopping
	// condition has been reached.
	ErrEpisodeAlreadyEnded = errors.New("game: step called after episode ended")

	// ErrEpisodeNotFinished is returned by FinalScore while the episode is
	// still running.
	ErrEpisodeNotFinished = errors.New("game: final score requested before episode ended")
)

// ConfigurationError reports an invalid settings or scenario field at
// episode construction. The episode never starts; nothing is clamped.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("game: invalid configuration field %q: %s", e.Field, e.Reason)
}

// InvalidActionError reports a pilot action outside the legal vocabulary.
// The tick that received it is aborted with episode state unchanged.
type InvalidActionError struct {
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("game: invalid action: %s", e.Reason)
}
