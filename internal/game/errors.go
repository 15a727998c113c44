package game

import "fmt"

// ConfigError reports board dimensions or a layout that cannot seed a match.
type ConfigError struct {
	Width, Height int
	Reason        string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid board %dx%d: %s", e.Width, e.Height, e.Reason)
}

// NoValidMoveError is returned by a planner asked to move while a side has no
// alive cards. A correct match reaches GameOver first, so seeing this error
// means an invariant was broken.
type NoValidMoveError struct {
	Side Side
}

func (e *NoValidMoveError) Error() string {
	return fmt.Sprintf("no valid move: %s has no alive cards", e.Side)
}
