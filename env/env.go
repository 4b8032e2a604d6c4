package env

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/IkeLewis/scsh/log"
)

// Environment is one binding frame. Lookup walks the parent chain; Define
// always targets the receiver, shadowing any parent binding of the same name.
type Environment struct {
	parent   *Environment
	bindings map[string]any
	name     string
}

// NewEnvironment creates an empty environment with an optional parent.
func NewEnvironment(name string, parent *Environment) *Environment {
	return &Environment{
		name:     name,
		parent:   parent,
		bindings: make(map[string]any),
	}
}

// Name returns the environment's name.
func (e *Environment) Name() string { return e.name }

// Define binds name to value in this environment.
func (e *Environment) Define(name string, value any) {
	e.bindings[name] = value
}

// Lookup resolves name in this environment or any ancestor.
func (e *Environment) Lookup(name string) (any, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Names returns the sorted set of names visible from this environment,
// including inherited bindings.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})

	for env := e; env != nil; env = env.parent {
		for name := range env.bindings {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// OwnNames returns the sorted names bound directly in this environment,
// excluding inherited bindings.
func (e *Environment) OwnNames() []string {
	return slices.Sorted(maps.Keys(e.bindings))
}

// Snapshot flattens the environment chain into a single map, with bindings in
// this environment shadowing inherited ones. The returned map is owned by the
// caller.
func (e *Environment) Snapshot() map[string]any {
	var frames []*Environment

	for env := e; env != nil; env = env.parent {
		frames = append(frames, env)
	}

	snap := make(map[string]any)

	// Outermost first so inner frames shadow.
	for i := len(frames) - 1; i >= 0; i-- {
		maps.Copy(snap, frames[i].bindings)
	}

	return snap
}

// Package is a named environment, optionally backed by a source file that is
// loaded lazily by [Context.EnsureLoaded].
type Package struct {
	Env    *Environment
	Name   string
	Source string
	loaded bool
}

// Structure is a named export interface bound to an implementation package.
// ExportAll structures expose every binding; otherwise only the names listed
// in Exports are visible to [Context.Open].
type Structure struct {
	Pkg       *Package
	Name      string
	Exports   []string
	ExportAll bool
}

// Context is the execution context the interpreter replays directives
// against: the three well-known packages, the mutable current-package
// register, the structure registry (owned by the config environment), and the
// library search path.
//
// Replay is strictly sequential, so Context requires no locking.
type Context struct {
	User       *Package
	Config     *Package
	Exec       *Package
	Current    *Package
	Paths      *PathList
	structures map[string]*Structure
}

// NewContext creates a context with empty user, config, and exec packages.
// The user package is current.
func NewContext() *Context {
	user := &Package{
		Name:   "user",
		Env:    NewEnvironment("user", nil),
		loaded: true,
	}
	config := &Package{
		Name:   "config",
		Env:    NewEnvironment("config", nil),
		loaded: true,
	}
	exec := &Package{
		Name:   "exec",
		Env:    NewEnvironment("exec", user.Env),
		loaded: true,
	}

	return &Context{
		User:       user,
		Config:     config,
		Exec:       exec,
		Current:    user,
		Paths:      DefaultPaths(),
		structures: make(map[string]*Structure),
	}
}

// Register records a structure in the config environment's registry.
func (c *Context) Register(s *Structure) {
	c.structures[s.Name] = s
}

// Resolve looks up a structure by name.
//
// Unregistered names are resolved through the library search path: a file
// matching the name creates a lazily-loaded package exporting everything it
// defines, which is registered for subsequent lookups.
func (c *Context) Resolve(name string) (*Structure, error) {
	if s, ok := c.structures[name]; ok {
		return s, nil
	}

	path, err := c.Paths.Lookup(name)
	if err != nil {
		return nil, ErrUnknownStructure.Wrap(err).
			With(slog.String("name", name))
	}

	pkg := &Package{
		Name:   name,
		Env:    NewEnvironment(name, c.User.Env),
		Source: path,
	}
	s := &Structure{Name: name, Pkg: pkg, ExportAll: true}

	c.Register(s)

	return s, nil
}

// EnsureLoaded loads the structure's backing source into its package.
// It is idempotent: a package is loaded at most once.
func (c *Context) EnsureLoaded(ctx context.Context, s *Structure) error {
	if s.Pkg.loaded {
		return nil
	}

	// Mark before loading so a reentrant reference to the structure being
	// loaded does not recurse.
	s.Pkg.loaded = true

	if s.Pkg.Source == "" {
		return nil
	}

	log.DebugContext(ctx, "loading structure",
		slog.String("structure", s.Name),
		slog.String("source", s.Pkg.Source),
	)

	return c.Load(ctx, s.Pkg.Source, s.Pkg, true)
}

// Open resolves the named structure, ensures it is loaded, and copies its
// exported bindings into the current environment.
func (c *Context) Open(ctx context.Context, name string) error {
	s, err := c.Resolve(name)
	if err != nil {
		return err
	}

	err = c.EnsureLoaded(ctx, s)
	if err != nil {
		return err
	}

	// ExportAll exposes only the package's own definitions. Inherited
	// bindings stay resolvable through the chain; copying them here would
	// shadow later updates to the originals.
	exports := s.Exports
	if s.ExportAll {
		exports = s.Pkg.Env.OwnNames()
	}

	for _, export := range exports {
		if v, ok := s.Pkg.Env.Lookup(export); ok {
			c.Current.Env.Define(export, v)
		}
	}

	log.DebugContext(ctx, "opened structure",
		slog.String("structure", name),
		slog.String("into", c.Current.Name),
		slog.Int("exports", len(exports)),
	)

	return nil
}

// NewPackage creates a fresh, empty package whose environment derives from
// the ambient user environment, and makes it current. If named, a structure
// with an empty export interface is registered under the name.
func (c *Context) NewPackage(name string, named bool) *Package {
	if !named {
		name = "anonymous"
	}

	pkg := &Package{
		Name:   name,
		Env:    NewEnvironment(name, c.User.Env),
		loaded: true,
	}

	if named {
		c.Register(&Structure{Name: name, Pkg: pkg})
	}

	c.Current = pkg

	return pkg
}

// SwitchPackage resolves the named structure, makes its owning package
// current, then ensures the structure is loaded. The switch must be visible
// before the ensure call so the load can reference the package reentrantly.
func (c *Context) SwitchPackage(ctx context.Context, name string) error {
	s, err := c.Resolve(name)
	if err != nil {
		return err
	}

	c.Current = s.Pkg

	return c.EnsureLoaded(ctx, s)
}

// InvokeEntry calls the top-level entry point bound to name in the current
// environment, passing the residual command-line arguments.
//
// The binding may be a Go function accepting the argument slice, or a string
// holding an expression evaluated with "args" bound.
func (c *Context) InvokeEntry(
	ctx context.Context,
	name string,
	args []string,
) error {
	v, ok := c.Current.Env.Lookup(name)
	if !ok {
		return ErrUnboundEntry.With(slog.String("entry", name))
	}

	switch fn := v.(type) {
	case func([]string) error:
		return fn(args)

	case func([]string):
		fn(args)

		return nil

	case string:
		scope := NewEnvironment("entry", c.Current.Env)
		scope.Define("args", args)

		_, err := Eval(ctx, fn, scope)

		return err

	default:
		return ErrNotCallable.With(
			slog.String("entry", name),
			slog.Any("value", v),
		)
	}
}
