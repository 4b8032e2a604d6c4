// Package log wraps log/slog with a small configuration surface shared by
// every package in the module.
//
// A package-level default logger writes to the diagnostic stream (stderr);
// [Config] reconfigures it in place so early startup code and the interactive
// loop observe the same settings.
package log
