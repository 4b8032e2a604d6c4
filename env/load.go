package env

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/IkeLewis/scsh/log"
)

// assignRx matches a binding line of the form "name = expression".
var assignRx = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+)$`)

// Load loads the named file into the target package's environment.
//
// The file is located through the search path unless it already names an
// existing file. YAML files define their top-level keys as bindings; any
// other file is read as a script of expression lines.
//
// When quiet, informational output from the load is silenced (results are
// still logged at debug level).
func (c *Context) Load(
	ctx context.Context,
	path string,
	target *Package,
	quiet bool,
) error {
	resolved, err := c.Paths.Lookup(path)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return ErrReadInput.Wrap(err).With(slog.String("path", resolved))
	}
	defer file.Close()

	log.DebugContext(ctx, "load",
		slog.String("path", resolved),
		slog.String("package", target.Name),
		slog.Bool("quiet", quiet),
	)

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		return loadYAML(file, resolved, target.Env)
	default:
		return c.loadScript(ctx, file, resolved, target.Env, quiet)
	}
}

// LoadCurrent loads path into the ambient current environment, silencing
// informational output.
func (c *Context) LoadCurrent(ctx context.Context, path string) error {
	return c.Load(ctx, path, c.Current, true)
}

// LoadConfig loads path into the config environment.
func (c *Context) LoadConfig(ctx context.Context, path string) error {
	return c.Load(ctx, path, c.Config, false)
}

// LoadExec loads path into the exec environment. The current-package register
// points at the exec package for the duration of the load and is restored
// afterward, so the load's effects land in the exec environment without
// permanently changing "current".
func (c *Context) LoadExec(ctx context.Context, path string) error {
	saved := c.Current
	c.Current = c.Exec

	err := c.Load(ctx, path, c.Exec, false)

	c.Current = saved

	return err
}

// LoadPort reads a script from an already-open handle into the target
// package's environment, with the same quiet semantics as [Context.Load].
// Used for the -sfd terminator.
func (c *Context) LoadPort(
	ctx context.Context,
	r io.Reader,
	name string,
	target *Package,
	quiet bool,
) error {
	log.DebugContext(ctx, "load port",
		slog.String("port", name),
		slog.String("package", target.Name),
		slog.Bool("quiet", quiet),
	)

	return c.loadScript(ctx, r, name, target.Env, quiet)
}

// loadYAML defines every top-level key of a YAML document as a binding.
func loadYAML(r io.Reader, name string, e *Environment) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return ErrReadInput.Wrap(err).With(slog.String("path", name))
	}

	bindings := make(map[string]any)

	err = yaml.Unmarshal(data, &bindings)
	if err != nil {
		return ErrYAMLDecode.Wrap(err).With(slog.String("path", name))
	}

	for key, value := range bindings {
		e.Define(key, value)
	}

	return nil
}

// loadScript evaluates a script line by line. Lines of the form
// "name = expression" define bindings; any other non-blank, non-comment line
// is evaluated for effect, printing its result unless quiet.
func (c *Context) loadScript(
	ctx context.Context,
	r io.Reader,
	name string,
	e *Environment,
	quiet bool,
) error {
	scanner := bufio.NewScanner(r)
	lineno := 0

	for scanner.Scan() {
		lineno++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, ";") {
			continue
		}

		err := c.evalLine(ctx, line, e, quiet)
		if err != nil {
			return WrapError(err).With(
				slog.String("path", name),
				slog.Int("line", lineno),
			)
		}
	}

	err := scanner.Err()
	if err != nil {
		return ErrReadInput.Wrap(err).With(slog.String("path", name))
	}

	return nil
}

func (c *Context) evalLine(
	ctx context.Context,
	line string,
	e *Environment,
	quiet bool,
) error {
	if m := assignRx.FindStringSubmatch(line); m != nil &&
		!strings.HasPrefix(m[2], "=") {
		value, err := Eval(ctx, m[2], e)
		if err != nil {
			return err
		}

		e.Define(m[1], value)

		return nil
	}

	result, err := Eval(ctx, line, e)
	if err != nil {
		return err
	}

	if quiet {
		log.DebugContext(ctx, "result", slog.Any("value", result))
	} else if result != nil {
		fmt.Println(result)
	}

	return nil
}
