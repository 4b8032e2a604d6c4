// Package profile provides optional runtime profiling for the scsh
// launcher via [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag and at
// run time with the SCSH_PPROF environment variable. When built without the
// tag, all operations are no-ops with zero runtime overhead.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
