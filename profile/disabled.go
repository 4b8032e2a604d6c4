//go:build !pprof

package profile

import "sync"

// Modes returns no modes when built without the pprof build tag.
//
//nolint:gochecknoglobals
var Modes = sync.OnceValue(
	func() []string { return nil },
)

// start is a no-op when built without the pprof build tag.
func start(string, string, bool) interface{ Stop() } {
	return ignore{}
}
