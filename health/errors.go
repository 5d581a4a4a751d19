package health

import "errors"

var (
	// ErrCheckFailed indicates a check ran and failed.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a check did not finish within the
	// aggregator deadline.
	ErrCheckTimeout = errors.New("health: check timed out")

	// ErrCheckerNotFound indicates no checker is registered under the
	// requested name.
	ErrCheckerNotFound = errors.New("health: checker not found")
)
