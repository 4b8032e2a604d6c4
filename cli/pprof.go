//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/IkeLewis/scsh/log"
	"github.com/IkeLewis/scsh/pkg"
	"github.com/IkeLewis/scsh/profile"
)

// envPprofMode selects the profiling mode when built with the pprof tag.
const envPprofMode = "SCSH_PPROF"

// startProfiling starts profiling if configured.
func startProfiling(ctx context.Context) (stop func()) {
	mode := os.Getenv(envPprofMode)
	if mode == "" {
		return func() {}
	}

	dir := filepath.Join(pkg.CacheDir(), profile.Tag)

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", mode),
		slog.String("dir", dir),
	)

	var cfg profile.Config = func() (string, string, bool) {
		return "", "", false
	}

	cfg = profile.WithMode(mode)(cfg)
	cfg = profile.WithPath(dir)(cfg)
	cfg = profile.WithQuiet(true)(cfg)
	profiler := cfg.Start()

	return func() {
		log.DebugContext(ctx, "pprof stop",
			slog.String("mode", mode),
			slog.String("dir", dir),
		)
		profiler.Stop()
	}
}
