package arrange

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("arrange: aborted")
	// ErrNoDriver is returned when a session has no prompt driver.
	ErrNoDriver = errors.New("arrange: prompt driver is nil")
)
