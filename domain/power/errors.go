package power

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrDegenerateInput marks requests whose answer is mathematically
	// undefined (zero SD, equal proportions, unreliable correlation).
	// Callers must treat it as "cannot compute", never as zero effect.
	ErrDegenerateInput = errors.New("degenerate input: result undefined")

	// ErrInvalidInput marks structurally meaningless requests. The solve
	// aborts rather than returning a misleading number.
	ErrInvalidInput = errors.New("invalid input")

	// ErrContract marks caller contract violations (both or neither of
	// power/sample size supplied).
	ErrContract = errors.New("solve contract violation")

	// ErrNoConvergence marks a numeric inversion that failed to converge
	// within its iteration bound. Distinct from a degenerate input.
	ErrNoConvergence = errors.New("numeric inversion did not converge")

	// ErrUnknownTest marks a registry lookup miss.
	ErrUnknownTest = errors.New("unknown test")
)

// Error constructors with context
func NewInvalidInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

func NewContractError(reason string) error {
	return fmt.Errorf("%w: %s", ErrContract, reason)
}

// Error checking helpers
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrContract)
}
