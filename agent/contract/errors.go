package contract

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	// Calculator failures. All non-fatal: the planner turns them into
	// explanatory user messages.
	ErrNonMathematicalInput = errors.New("expression is not arithmetic")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrExpressionTooComplex = errors.New("expression exceeds evaluation budget")

	// ErrSessionCorrupted marks an unreadable stored session. The pipeline
	// recovers by starting a fresh session for the same id.
	ErrSessionCorrupted = errors.New("session state corrupted")

	// ErrCatalogLoad is fatal at startup only. A process with an empty or
	// partial catalog refuses to serve rather than answer from it.
	ErrCatalogLoad = errors.New("catalog load failed")
)
