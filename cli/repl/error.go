package repl

import "errors"

// Sentinel errors.
var (
	ErrNoContext  = errors.New("no execution context")
	ErrMissingArg = errors.New("command requires an argument")
)
