package trajectory

import (
	"errors"
	"fmt"
)

// ErrLaunchClearNotReached reports a trajectory that never exceeded
// the launch-clear altitude. There is no meaningful default index for
// this extremum, so extraction fails rather than guessing.
var ErrLaunchClearNotReached = errors.New("trajectory: launch-clear altitude never exceeded")

// ErrNonMonotonicTime reports a timestep table whose Time column is
// not strictly increasing.
var ErrNonMonotonicTime = errors.New("trajectory: time not strictly increasing")

// ErrTooFewRecords reports a trajectory with fewer than two records;
// extrema lookups need a valid first and last element.
var ErrTooFewRecords = errors.New("trajectory: need at least 2 records")

// MissingColumnError reports a referenced column absent from a
// timestep table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("trajectory: missing column %q", e.Column)
}

// IsMissingColumn reports whether err is a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mce *MissingColumnError
	return errors.As(err, &mce)
}
