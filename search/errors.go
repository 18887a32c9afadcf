package search

import (
	"errors"
	"fmt"
)

// ErrUpstream marks a failure to obtain the train snapshot from the schedule store.
var ErrUpstream = errors.New("schedule store unavailable")

// InvalidDataError reports a stored train whose stop data cannot be summed,
// such as a NaN distance. Search fails as a whole when it sees one.
type InvalidDataError struct {
	Train  string
	Stop   int
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data in train %q at stop %d: %s", e.Train, e.Stop, e.Reason)
}
