package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrIllegalMove marks a move that is not legal in the given state. The
	// caller's state is untouched and the move may be corrected and retried.
	ErrIllegalMove = errors.New("illegal move")
	// ErrConfig marks bad setup input: an unknown card or a malformed kingdom.
	ErrConfig = errors.New("configuration error")
	// ErrInvariant marks an engine defect detected after a move was applied.
	ErrInvariant = errors.New("invariant violation")

	ErrDebugDisabled = errors.New("debug mode not enabled")
	ErrInvalidPlayer = errors.New("invalid player index")
)

// Error carries a human-readable reason together with its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func illegal(format string, args ...any) error {
	return &Error{Kind: ErrIllegalMove, Msg: fmt.Sprintf(format, args...)}
}

func configErr(format string, args ...any) error {
	return &Error{Kind: ErrConfig, Msg: fmt.Sprintf(format, args...)}
}

func invariantErr(format string, args ...any) error {
	return &Error{Kind: ErrInvariant, Msg: fmt.Sprintf(format, args...)}
}
