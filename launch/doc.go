// Package launch is the two-phase command-line front end: a parser that turns
// a raw argument vector into an ordered list of typed directives plus a
// single terminating action, and an interpreter that replays those directives
// against a mutable execution context.
package launch
