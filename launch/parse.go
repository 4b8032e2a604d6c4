package launch

import (
	"os"
	"strconv"
)

// PortResolver resolves a numeric file descriptor to an open input handle.
// It is the collaborator behind the -sfd terminator.
type PortResolver func(fd int) (*os.File, error)

// defaultPortResolver adopts an already-open descriptor inherited from the
// parent process. The handle is shared with the runtime from here on; no
// exclusive claim is retained.
func defaultPortResolver(fd int) (*os.File, error) {
	if fd < 0 {
		return nil, NewArgError(msgInvalidFD, strconv.Itoa(fd))
	}

	return os.NewFile(uintptr(fd), "fd "+strconv.Itoa(fd)), nil
}

// Option configures [Parse].
type Option func(*parser)

// WithPortResolver overrides the file-descriptor collaborator used by -sfd.
func WithPortResolver(resolve PortResolver) Option {
	return func(p *parser) {
		if resolve != nil {
			p.ports = resolve
		}
	}
}

// switchSpec describes one directive switch: whether it consumes a following
// argument, whether it demands a later terminating -s/-sfd, and how to build
// its directive.
type switchSpec struct {
	make        func(arg string) Directive
	hasArg      bool
	needsScript bool
}

// noName is the literal argument to -n denoting an anonymous package.
const noName = "#f"

// switchTable maps directive switch text to its spec. Terminating switches
// (-c, -s, -sfd, --) and -e are handled directly by the scanner since they
// affect parse state rather than pushing a directive.
//
//nolint:gochecknoglobals
var switchTable = map[string]switchSpec{
	"-o": {
		hasArg: true,
		make:   func(arg string) Directive { return OpenStructure{Name: arg} },
	},
	"-n": {
		hasArg: true,
		make: func(arg string) Directive {
			return NewPackage{Name: arg, Named: arg != noName}
		},
	},
	"-m": {
		hasArg: true,
		make:   func(arg string) Directive { return SwitchPackage{Name: arg} },
	},
	"-l": {
		hasArg: true,
		make: func(arg string) Directive {
			return LoadFile{Target: TargetCurrent, Path: arg}
		},
	},
	"-lm": {
		hasArg: true,
		make: func(arg string) Directive {
			return LoadFile{Target: TargetConfig, Path: arg}
		},
	},
	"-le": {
		hasArg: true,
		make: func(arg string) Directive {
			return LoadFile{Target: TargetExec, Path: arg}
		},
	},
	"+lp": {
		hasArg: true,
		make: func(arg string) Directive {
			return PathOp{Op: PathPrepend, Arg: arg}
		},
	},
	"lp+": {
		hasArg: true,
		make: func(arg string) Directive {
			return PathOp{Op: PathAppend, Arg: arg}
		},
	},
	"+lpe": {
		hasArg: true,
		make: func(arg string) Directive {
			return PathOp{Op: PathPrependExpand, Arg: arg}
		},
	},
	"lpe+": {
		hasArg: true,
		make: func(arg string) Directive {
			return PathOp{Op: PathAppendExpand, Arg: arg}
		},
	},
	"+lpsd": {
		make: func(string) Directive {
			return PathOp{Op: PathPrependScriptDir}
		},
	},
	"lpsd+": {
		make: func(string) Directive {
			return PathOp{Op: PathAppendScriptDir}
		},
	},
	"-lp-clear": {
		make: func(string) Directive { return PathOp{Op: PathClear} },
	},
	"-lp-default": {
		make: func(string) Directive { return PathOp{Op: PathReset} },
	},
	"-ds": {
		needsScript: true,
		make: func(string) Directive {
			return DoScript{Target: TargetCurrent}
		},
	},
	"-dm": {
		needsScript: true,
		make: func(string) Directive {
			return DoScript{Target: TargetConfig}
		},
	},
	"-de": {
		needsScript: true,
		make: func(string) Directive {
			return DoScript{Target: TargetExec}
		},
	},
}

// parser holds the fold state of one left-to-right scan.
type parser struct {
	ports       PortResolver
	args        []string
	pos         int
	needsScript bool
}

// Parse consumes the argument sequence (after meta-argument expansion) and
// produces the ordered directive list, the terminator and its value, the
// optional top-level entry symbol, and the residual arguments.
//
// Any usage error is reported as *[ArgError] naming the offending token(s).
// Parse failures never reach the interpreter.
func Parse(args []string, opts ...Option) (*Result, error) {
	p := &parser{args: args, ports: defaultPortResolver}

	for _, opt := range opts {
		opt(p)
	}

	return p.scan()
}

// take consumes and returns the argument following switch sw.
func (p *parser) take(sw string) (string, error) {
	if p.pos >= len(p.args) {
		return "", NewArgError(msgMissingArg, sw)
	}

	arg := p.args[p.pos]
	p.pos++

	return arg, nil
}

// rest returns the tokens not yet consumed.
func (p *parser) rest() []string {
	return p.args[p.pos:]
}

//nolint:cyclop,funlen
func (p *parser) scan() (*Result, error) {
	res := &Result{}

	for p.pos < len(p.args) {
		tok := p.args[p.pos]
		p.pos++

		switch tok {
		case "-c":
			if p.needsScript {
				return nil, NewArgError(msgPendingScript, tok)
			}

			if res.TopEntry != "" {
				return nil, NewArgError(msgEntryBeforeC, tok)
			}

			arg, err := p.take(tok)
			if err != nil {
				return nil, err
			}

			res.Terminator = TermExpr
			res.Value = arg
			res.Residual = p.rest()

			return res, nil

		case "-s":
			arg, err := p.take(tok)
			if err != nil {
				return nil, err
			}

			res.Terminator = TermScript
			res.Value = arg
			res.Residual = p.rest()

			return res, nil

		case "-sfd":
			arg, err := p.take(tok)
			if err != nil {
				return nil, err
			}

			fd, err := strconv.Atoi(arg)
			if err != nil {
				return nil, NewArgError(msgInvalidFD, tok, arg)
			}

			port, err := p.ports(fd)
			if err != nil {
				return nil, err
			}

			res.Terminator = TermScriptFD
			res.Value = arg
			res.Port = port
			res.Residual = p.rest()

			return res, nil

		case "--":
			if p.needsScript {
				return nil, NewArgError(msgPendingScript, tok)
			}

			res.Terminator = TermNone
			res.Residual = p.rest()

			return res, nil

		case "-e":
			arg, err := p.take(tok)
			if err != nil {
				return nil, err
			}

			if res.TopEntry != "" {
				return nil, NewArgError(msgDuplicateEntry, tok, arg)
			}

			res.TopEntry = arg

		default:
			spec, ok := switchTable[tok]
			if !ok {
				return nil, NewArgError(msgUnknownSwitch, tok)
			}

			var arg string

			if spec.hasArg {
				var err error

				arg, err = p.take(tok)
				if err != nil {
					return nil, err
				}
			}

			if spec.needsScript {
				p.needsScript = true
			}

			res.Directives = append(res.Directives, spec.make(arg))
		}
	}

	// Exhausted input is an implicit "--", including its pending-script
	// check: a -ds/-dm/-de that never met its -s or -sfd is a usage error.
	if p.needsScript {
		return nil, NewArgError(msgPendingScript)
	}

	res.Terminator = TermNone

	return res, nil
}
