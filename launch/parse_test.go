package launch

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestParse_DirectiveOrder(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []Directive
	}{
		{
			name: "package then load",
			args: []string{"-n", "foo", "-l", "a.scm", "-s", "b.scm"},
			want: []Directive{
				NewPackage{Name: "foo", Named: true},
				LoadFile{Target: TargetCurrent, Path: "a.scm"},
			},
		},
		{
			name: "open before interactive",
			args: []string{"-o", "foo", "--", "x", "y"},
			want: []Directive{
				OpenStructure{Name: "foo"},
			},
		},
		{
			name: "interleaved path ops",
			args: []string{"+lp", "/a", "-o", "s", "lp+", "/b"},
			want: []Directive{
				PathOp{Op: PathPrepend, Arg: "/a"},
				OpenStructure{Name: "s"},
				PathOp{Op: PathAppend, Arg: "/b"},
			},
		},
		{
			name: "defer then terminator",
			args: []string{"-ds", "-s", "x.scm"},
			want: []Directive{
				DoScript{Target: TargetCurrent},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !reflect.DeepEqual(res.Directives, tt.want) {
				t.Errorf("directives = %#v, want %#v", res.Directives, tt.want)
			}
		})
	}
}

func TestParse_Terminators(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		term     Terminator
		value    string
		residual []string
	}{
		{
			name:  "expression",
			args:  []string{"-c", "1 + 2"},
			term:  TermExpr,
			value: "1 + 2",
		},
		{
			name:     "script with args",
			args:     []string{"-s", "b.scm", "one", "two"},
			term:     TermScript,
			value:    "b.scm",
			residual: []string{"one", "two"},
		},
		{
			name:     "interactive with residual",
			args:     []string{"-o", "foo", "--", "x", "y"},
			term:     TermNone,
			residual: []string{"x", "y"},
		},
		{
			name: "exhausted input is implicit --",
			args: []string{"-o", "foo"},
			term: TermNone,
		},
		{
			name: "empty input",
			args: nil,
			term: TermNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if res.Terminator != tt.term {
				t.Errorf("terminator = %v, want %v", res.Terminator, tt.term)
			}

			if res.Value != tt.value {
				t.Errorf("value = %q, want %q", res.Value, tt.value)
			}

			if len(res.Residual) != len(tt.residual) {
				t.Fatalf("residual = %v, want %v", res.Residual, tt.residual)
			}

			for i, arg := range tt.residual {
				if res.Residual[i] != arg {
					t.Errorf("residual[%d] = %q, want %q", i, res.Residual[i], arg)
				}
			}
		})
	}
}

func TestParse_ScriptFD(t *testing.T) {
	var gotFD int

	resolve := func(fd int) (*os.File, error) {
		gotFD = fd

		return nil, nil
	}

	res, err := Parse([]string{"-sfd", "7"}, WithPortResolver(resolve))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if gotFD != 7 {
		t.Errorf("resolved fd = %d, want 7", gotFD)
	}

	if res.Terminator != TermScriptFD {
		t.Errorf("terminator = %v, want %v", res.Terminator, TermScriptFD)
	}

	if len(res.Residual) != 0 {
		t.Errorf("residual = %v, want empty", res.Residual)
	}
}

func TestParse_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantArg string
	}{
		{
			name:    "unknown switch",
			args:    []string{"-zzz"},
			wantArg: "-zzz",
		},
		{
			name:    "missing load argument",
			args:    []string{"-l"},
			wantArg: "-l",
		},
		{
			name:    "missing script argument",
			args:    []string{"-s"},
			wantArg: "-s",
		},
		{
			name:    "missing fd argument",
			args:    []string{"-sfd"},
			wantArg: "-sfd",
		},
		{
			name:    "non-integer fd",
			args:    []string{"-sfd", "seven"},
			wantArg: "seven",
		},
		{
			name:    "expression after pending script",
			args:    []string{"-ds", "-c", "(+ 1 2)"},
			wantArg: "-c",
		},
		{
			name:    "expression after entry",
			args:    []string{"-e", "main", "-c", "(+ 1 2)"},
			wantArg: "-c",
		},
		{
			name:    "interactive after pending script",
			args:    []string{"-dm", "--"},
			wantArg: "--",
		},
		{
			name: "pending script at end of input",
			args: []string{"-de"},
		},
		{
			name:    "duplicate entry",
			args:    []string{"-e", "main", "-e", "other"},
			wantArg: "-e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			if err == nil {
				t.Fatal("expected usage error")
			}

			argErr := &ArgError{}
			if !errors.As(err, &argErr) {
				t.Fatalf("error type = %T, want *ArgError", err)
			}

			if tt.wantArg != "" && !strings.Contains(err.Error(), tt.wantArg) {
				t.Errorf("error %q does not name %q", err, tt.wantArg)
			}
		})
	}
}

func TestParse_NewPackageNaming(t *testing.T) {
	tests := []struct {
		name  string
		arg   string
		named bool
	}{
		{name: "named package", arg: "foo", named: true},
		{name: "anonymous package", arg: "#f", named: false},
		{name: "odd but named", arg: "#true", named: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse([]string{"-n", tt.arg})
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if len(res.Directives) != 1 {
				t.Fatalf("expected 1 directive, got %d", len(res.Directives))
			}

			np, ok := res.Directives[0].(NewPackage)
			if !ok {
				t.Fatalf("directive type = %T, want NewPackage", res.Directives[0])
			}

			if np.Named != tt.named {
				t.Errorf("named = %v, want %v", np.Named, tt.named)
			}

			if tt.named && np.Name != tt.arg {
				t.Errorf("name = %q, want %q", np.Name, tt.arg)
			}
		})
	}
}

func TestParse_EntryWithScript(t *testing.T) {
	res, err := Parse([]string{"-e", "main", "-s", "b.scm"})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if res.TopEntry != "main" {
		t.Errorf("entry = %q, want %q", res.TopEntry, "main")
	}

	if res.Terminator != TermScript {
		t.Errorf("terminator = %v, want %v", res.Terminator, TermScript)
	}
}

func TestParse_EntryPushesNoDirective(t *testing.T) {
	res, err := Parse([]string{"-e", "main"})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(res.Directives) != 0 {
		t.Errorf("directives = %v, want none", res.Directives)
	}
}
