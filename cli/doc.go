// Package cli orchestrates one launcher invocation: configure logging from
// the environment and config file, expand and parse the argument vector,
// replay the parsed directives against a fresh execution context, then
// perform the final action selected by the terminator.
package cli
