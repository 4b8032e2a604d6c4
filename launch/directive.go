package launch

import "os"

// Directive is one parsed, not-yet-executed unit of switch behavior.
//
// Directives carry no identity beyond their position in [Result.Directives];
// the ordered list itself is the unit of replay.
type Directive interface{ directive() }

// Target selects the environment a load-like directive acts on.
type Target int

const (
	// TargetCurrent is the mutable "where am I loading into right now"
	// register.
	TargetCurrent Target = iota
	// TargetConfig is the configuration environment holding the structure
	// registry.
	TargetConfig
	// TargetExec is the environment for interactively invoked commands.
	// Loads destined here temporarily swap the current environment out and
	// restore it afterward.
	TargetExec
)

// String returns the target name used in log output.
func (t Target) String() string {
	switch t {
	case TargetCurrent:
		return "current"
	case TargetConfig:
		return "config"
	case TargetExec:
		return "exec"
	default:
		return "target(?)"
	}
}

// PathOpKind identifies a library search path mutation.
type PathOpKind int

const (
	PathPrepend PathOpKind = iota
	PathAppend
	PathPrependExpand
	PathAppendExpand
	PathPrependScriptDir
	PathAppendScriptDir
	PathClear
	PathReset
)

// String returns the path operation name used in log output.
func (k PathOpKind) String() string {
	switch k {
	case PathPrepend:
		return "prepend"
	case PathAppend:
		return "append"
	case PathPrependExpand:
		return "prepend-expand"
	case PathAppendExpand:
		return "append-expand"
	case PathPrependScriptDir:
		return "prepend-script-dir"
	case PathAppendScriptDir:
		return "append-script-dir"
	case PathClear:
		return "clear"
	case PathReset:
		return "reset-default"
	default:
		return "pathop(?)"
	}
}

// OpenStructure opens a named structure into the current environment.
type OpenStructure struct{ Name string }

// NewPackage creates a fresh, empty package and makes it current.
// If Named is false the package is anonymous and no structure is registered.
type NewPackage struct {
	Name  string
	Named bool
}

// SwitchPackage looks up a structure by name, makes its owning package
// current, and ensures it is loaded.
type SwitchPackage struct{ Name string }

// LoadFile loads a file into the environment selected by Target.
type LoadFile struct {
	Path   string
	Target Target
}

// PathOp mutates the library search path list.
// Arg is empty for the zero-argument operation kinds.
type PathOp struct {
	Arg string
	Op  PathOpKind
}

// DoScript defers loading of the terminator's script value into the
// environment selected by Target. Its presence during parsing requires a
// terminating -s or -sfd.
type DoScript struct{ Target Target }

func (OpenStructure) directive() {}
func (NewPackage) directive()    {}
func (SwitchPackage) directive() {}
func (LoadFile) directive()      {}
func (PathOp) directive()        {}
func (DoScript) directive()      {}

// Terminator identifies the switch that ended scanning and determines the
// post-parse action.
type Terminator int

const (
	// TermNone: explicit "--" or exhausted input; enter interactive mode.
	TermNone Terminator = iota
	// TermExpr: "-c"; evaluate an expression then exit.
	TermExpr
	// TermScript: "-s"; the terminator value is a script path.
	TermScript
	// TermScriptFD: "-sfd"; the terminator value is an open input handle.
	TermScriptFD
)

// String returns the terminator name used in log output.
func (t Terminator) String() string {
	switch t {
	case TermNone:
		return "none"
	case TermExpr:
		return "expr"
	case TermScript:
		return "script"
	case TermScriptFD:
		return "script-fd"
	default:
		return "terminator(?)"
	}
}

// Result is the complete outcome of one parse: the ordered directive list,
// the terminator and its captured value, the optional top-level entry symbol,
// and the residual command-line arguments.
//
// A Result is produced once per process start, consumed once, then discarded.
type Result struct {
	Port       *os.File
	Value      string
	TopEntry   string
	Directives []Directive
	Residual   []string
	Terminator Terminator
}
