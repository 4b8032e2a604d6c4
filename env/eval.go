package env

import (
	"context"
	"log/slog"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/IkeLewis/scsh/log"
	"github.com/IkeLewis/scsh/pkg"
)

// builtins returns the evaluation environment available to every expression,
// regardless of which package it evaluates in. User bindings shadow builtins.
func builtins() map[string]any {
	return map[string]any{
		"home": pkg.HomeDir(),
		"cwd": func() string {
			cwd, err := os.Getwd()
			if err != nil {
				return "."
			}

			return cwd
		},
		"env": func(key string) string {
			return os.Getenv(key)
		},
	}
}

// Eval compiles and runs an expression against the given environment.
//
// The expression sees the environment's flattened bindings plus the builtin
// names; bindings take precedence.
func Eval(ctx context.Context, src string, e *Environment) (any, error) {
	scope := e.Snapshot()

	for name, v := range builtins() {
		if _, ok := scope[name]; !ok {
			scope[name] = v
		}
	}

	program, err := expr.Compile(src,
		expr.Env(scope),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("source", src))
	}

	result, err := vm.Run(program, scope)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).
			With(slog.String("source", src))
	}

	log.TraceContext(ctx, "evaluated expression",
		slog.String("source", src),
		slog.String("env", e.Name()),
	)

	return result, nil
}
