package portfolio

import "errors"

var (
	// ErrInvalidClause marks an empty clause or a clause containing a zero
	// literal, in a submission or in an assumption cube.
	ErrInvalidClause = errors.New("invalid clause")

	// ErrNotConfigured marks an operation that needs a live worker pool.
	ErrNotConfigured = errors.New("solver is not configured")

	// ErrNoModel marks a model query when the last solve did not end in Sat.
	ErrNoModel = errors.New("no model available")

	// ErrVariableOutOfRange marks a model query for a variable beyond the
	// tracked maximum. Callers must not read it as a false assignment.
	ErrVariableOutOfRange = errors.New("variable out of range")
)
