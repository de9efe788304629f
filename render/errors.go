package render

import "errors"

var (
	// ErrMismatchedValues reports a dynamic value count that differs from
	// the program's dynamic_text slot count.
	ErrMismatchedValues = errors.New("render: mismatched values")
	// ErrInvalidMarkup reports a structural violation: unclosed tags, bad
	// close order, or island/portal/suspense frames left open.
	ErrInvalidMarkup = errors.New("render: invalid markup")
	// ErrStackUnderflow reports a close op without a matching open.
	ErrStackUnderflow = errors.New("render: stack underflow")
	// ErrMissingNode reports a portal target that did not resolve, or a
	// hydration walk that ran out of children.
	ErrMissingNode = errors.New("render: missing node")
	// ErrUnexpectedNode reports a hydration node of the wrong kind.
	ErrUnexpectedNode = errors.New("render: unexpected node")
	// ErrHydrationMismatch reports hydration content that does not match
	// the program: tag, hydration id, text or marker payload.
	ErrHydrationMismatch = errors.New("render: hydration mismatch")
)
