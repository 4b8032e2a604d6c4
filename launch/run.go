package launch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IkeLewis/scsh/env"
	"github.com/IkeLewis/scsh/log"
)

// Run replays the directive list against the execution context, strictly in
// order: each directive's effect, including any redirection of the current
// package, is fully applied before the next is considered.
//
// The returned bool reports whether a script was loaded by an explicit
// -ds/-dm/-de directive; when false and the terminator is a script, the
// caller must load it afterward.
//
// Run never fails itself: any error originates from the context's
// collaborators and propagates unchanged, aborting the remaining replay.
func Run(ctx context.Context, res *Result, ec *env.Context) (bool, error) {
	scriptLoaded := false

	for _, d := range res.Directives {
		log.TraceContext(ctx, "directive",
			slog.String("kind", fmt.Sprintf("%T", d)),
		)

		switch d := d.(type) {
		case OpenStructure:
			err := ec.Open(ctx, d.Name)
			if err != nil {
				return scriptLoaded, err
			}

		case NewPackage:
			ec.NewPackage(d.Name, d.Named)

		case SwitchPackage:
			err := ec.SwitchPackage(ctx, d.Name)
			if err != nil {
				return scriptLoaded, err
			}

		case LoadFile:
			err := runLoadFile(ctx, ec, d)
			if err != nil {
				return scriptLoaded, err
			}

		case PathOp:
			runPathOp(ctx, res, ec, d)

		case DoScript:
			err := LoadTerminator(ctx, res, ec, d.Target)
			if err != nil {
				return scriptLoaded, err
			}

			scriptLoaded = true

		default:
			// The parser's output domain is closed; anything else is a
			// parser/interpreter contract mismatch.
			panic(fmt.Sprintf("launch: directive not produced by parser: %T", d))
		}
	}

	return scriptLoaded, nil
}

func runLoadFile(ctx context.Context, ec *env.Context, d LoadFile) error {
	switch d.Target {
	case TargetCurrent:
		return ec.LoadCurrent(ctx, d.Path)
	case TargetConfig:
		return ec.LoadConfig(ctx, d.Path)
	case TargetExec:
		return ec.LoadExec(ctx, d.Path)
	default:
		panic(fmt.Sprintf("launch: load target not produced by parser: %v",
			d.Target))
	}
}

//nolint:cyclop
func runPathOp(ctx context.Context, res *Result, ec *env.Context, d PathOp) {
	switch d.Op {
	case PathPrepend:
		ec.Paths.Prepend(d.Arg)
	case PathAppend:
		ec.Paths.Append(d.Arg)
	case PathPrependExpand:
		ec.Paths.PrependExpand(d.Arg)
	case PathAppendExpand:
		ec.Paths.AppendExpand(d.Arg)
	case PathPrependScriptDir, PathAppendScriptDir:
		if res.Terminator != TermScript {
			log.WarnContext(ctx, "no script file; script directory not added",
				slog.String("op", d.Op.String()),
			)

			return
		}

		ec.Paths.AddScriptDir(res.Value, d.Op == PathPrependScriptDir)
	case PathClear:
		ec.Paths.Clear()
	case PathReset:
		ec.Paths.Reset()
	default:
		panic(fmt.Sprintf("launch: path op not produced by parser: %v", d.Op))
	}

	log.TraceContext(ctx, "path list",
		slog.String("op", d.Op.String()),
		slog.String("paths", ec.Paths.String()),
	)
}

// LoadTerminator loads the terminator's script value into the environment
// selected by target, using the same rules as the corresponding LoadFile
// kind. It is used both for explicit -ds/-dm/-de directives during replay and
// by the caller's final action when no such directive was present.
//
// It is a no-op for terminators that carry no script.
func LoadTerminator(
	ctx context.Context,
	res *Result,
	ec *env.Context,
	target Target,
) error {
	switch res.Terminator {
	case TermScript:
		switch target {
		case TargetCurrent:
			return ec.LoadCurrent(ctx, res.Value)
		case TargetConfig:
			return ec.LoadConfig(ctx, res.Value)
		case TargetExec:
			return ec.LoadExec(ctx, res.Value)
		}

	case TermScriptFD:
		if res.Port == nil {
			return env.ErrReadInput.With(slog.String("port", res.Value))
		}

		switch target {
		case TargetCurrent:
			// Current-target loads are quiet, same as LoadCurrent.
			return ec.LoadPort(ctx, res.Port, res.Port.Name(), ec.Current, true)
		case TargetConfig:
			return ec.LoadPort(ctx, res.Port, res.Port.Name(), ec.Config, false)
		case TargetExec:
			// Same save/restore discipline as LoadExec.
			saved := ec.Current
			ec.Current = ec.Exec

			err := ec.LoadPort(ctx, res.Port, res.Port.Name(), ec.Exec, false)

			ec.Current = saved

			return err
		}

	case TermNone, TermExpr:
		// Nothing to load.
	}

	return nil
}
