package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// exitRecorder captures the status passed to the exit collaborator.
type exitRecorder struct {
	code   int
	called bool
}

func (r *exitRecorder) exit(code int) {
	r.code = code
	r.called = true
}

func writeScript(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.scm")

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("write script: %v", err)
	}

	return path
}

func TestRun_UsageError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown switch", args: []string{"-zzz"}},
		{name: "missing argument", args: []string{"-l"}},
		{name: "pending script", args: []string{"-ds"}},
		{name: "entry conflicts with expression", args: []string{"-e", "m", "-c", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec exitRecorder

			err := Run(t.Context(), rec.exit, tt.args...)
			if err == nil {
				t.Fatal("expected usage error")
			}

			if !rec.called || rec.code != StatusUsage {
				t.Errorf("exit status = %d (called=%v), want %d",
					rec.code, rec.called, StatusUsage)
			}
		})
	}
}

func TestRun_EvaluateExpression(t *testing.T) {
	var rec exitRecorder

	err := Run(t.Context(), rec.exit, "-c", "40 + 2")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if rec.called {
		t.Errorf("exit called with %d on normal completion", rec.code)
	}
}

func TestRun_Script(t *testing.T) {
	script := writeScript(t, "v = 1\n")

	var rec exitRecorder

	err := Run(t.Context(), rec.exit, "-s", script)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if rec.called {
		t.Errorf("exit called with %d on normal completion", rec.code)
	}
}

func TestRun_ScriptWithEntry(t *testing.T) {
	script := writeScript(t, `main = "1 + 1"`+"\n")

	var rec exitRecorder

	err := Run(t.Context(), rec.exit, "-e", "main", "-s", script)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	if rec.called {
		t.Errorf("exit called with %d on normal completion", rec.code)
	}
}

func TestRun_UnboundEntry(t *testing.T) {
	script := writeScript(t, "v = 1\n")

	var rec exitRecorder

	err := Run(t.Context(), rec.exit, "-e", "main", "-s", script)
	if err == nil {
		t.Fatal("expected unbound entry failure")
	}

	if !rec.called || rec.code != StatusFailure {
		t.Errorf("exit status = %d (called=%v), want %d",
			rec.code, rec.called, StatusFailure)
	}
}

func TestRun_RuntimeFailure(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing load file", args: []string{"-l", "/nonexistent/x.scm"}},
		{name: "missing script", args: []string{"-s", "/nonexistent/x.scm"}},
		{name: "bad expression", args: []string{"-c", "1 +"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec exitRecorder

			err := Run(t.Context(), rec.exit, tt.args...)
			if err == nil {
				t.Fatal("expected runtime failure")
			}

			if !rec.called || rec.code != StatusFailure {
				t.Errorf("exit status = %d (called=%v), want %d",
					rec.code, rec.called, StatusFailure)
			}
		})
	}
}
