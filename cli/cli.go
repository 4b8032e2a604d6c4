package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/IkeLewis/scsh/cli/repl"
	"github.com/IkeLewis/scsh/env"
	"github.com/IkeLewis/scsh/launch"
	"github.com/IkeLewis/scsh/log"
	"github.com/IkeLewis/scsh/pkg"
)

// Process exit statuses.
const (
	// StatusUsage is the distinguished failure status for usage errors:
	// exit(-1) as seen by the shell.
	StatusUsage = 255
	// StatusFailure is the status for unhandled conditions during execution.
	StatusFailure = 1
)

// Run executes the scsh launcher with the given context and arguments.
//
// The argument vector is meta-expanded and parsed once; the resulting
// directives are replayed against a fresh execution context; then the
// terminator selects the final action: evaluate an expression, load a script,
// invoke the entry point, or enter the interactive session.
//
// The exit function is called with the appropriate status on failure paths.
// On normal completion Run returns nil and the process exits 0.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	cfg := loadConfigFile(configPath())
	configureLogging(ctx, cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// [startProfiling] is a no-op unless built with tag pprof and enabled.
	defer startProfiling(ctx)()

	expanded, err := launch.ExpandMeta(args)
	if err != nil {
		return usageFailure(exit, err)
	}

	res, err := launch.Parse(expanded)
	if err != nil {
		return usageFailure(exit, err)
	}

	ec := env.NewContext()
	for _, dir := range cfg.Paths {
		ec.Paths.AppendExpand(dir)
	}

	err = execute(ctx, res, ec)
	if err != nil {
		report(err)
		exit(StatusFailure)

		return err
	}

	return nil
}

// execute replays the directive list and performs the final action selected
// by the terminator. The first failure aborts any pending terminator action.
func execute(ctx context.Context, res *launch.Result, ec *env.Context) error {
	scriptLoaded, err := launch.Run(ctx, res, ec)
	if err != nil {
		return err
	}

	// Residual command-line arguments are visible to scripts and the
	// interactive session as "args".
	ec.Current.Env.Define("args", res.Residual)

	switch res.Terminator {
	case launch.TermExpr:
		result, err := env.Eval(ctx, res.Value, ec.Current.Env)
		if err != nil {
			return err
		}

		if result != nil {
			fmt.Println(result)
		}

		return nil

	case launch.TermScript, launch.TermScriptFD:
		// An explicit -ds/-dm/-de already consumed the script during replay.
		if !scriptLoaded {
			err := launch.LoadTerminator(ctx, res, ec, launch.TargetCurrent)
			if err != nil {
				return err
			}
		}

		if res.TopEntry != "" {
			return ec.InvokeEntry(ctx, res.TopEntry, res.Residual)
		}

		return nil

	case launch.TermNone:
		if res.TopEntry != "" {
			return ec.InvokeEntry(ctx, res.TopEntry, res.Residual)
		}

		return repl.Run(ctx, ec, pkg.CacheDir(), log.Default())

	default:
		return nil
	}
}

// usageFailure reports a usage error with the fixed synopsis and exits with
// the distinguished usage status.
func usageFailure(exit func(int), err error) error {
	launch.ReportUsage(os.Stderr, err)
	exit(StatusUsage)

	return err
}

// report prints an error condition's description to the diagnostic stream.
// A failure raised while reporting is swallowed so the process exits with
// the failure status instead of entering an error-reporting loop.
func report(err error) {
	defer func() { _ = recover() }()

	log.Error(pkg.Name, slog.Any("error", err))
}
