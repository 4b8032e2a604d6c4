// Package env models the launcher's execution context: environments,
// packages, structures, the library search path, the file loader, and the
// expression evaluator.
//
// The interpreter in package launch borrows a [Context] for the duration of
// directive replay and may redirect which package is current; it never owns
// environment lifetime.
package env
