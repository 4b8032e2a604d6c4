package repl

import (
	"path/filepath"
	"testing"
)

func TestHistoryAppend(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	h.Append("one")
	h.Append("  two  ")
	h.Append("two")
	h.Append("")
	h.Append("one")

	if got, want := h.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	for i, want := range []string{"one", "two", "one"} {
		if got := h.Get(i); got != want {
			t.Errorf("Get(%d) = %q, want %q", i, got, want)
		}
	}

	if got := h.Get(99); got != "" {
		t.Errorf("Get(99) = %q, want empty", got)
	}

	if got := h.Get(-1); got != "" {
		t.Errorf("Get(-1) = %q, want empty", got)
	}
}

func TestHistorySaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", baseHistory)

	h := NewHistory(path)
	h.Append("alpha")
	h.Append("beta")

	err := h.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded := NewHistory(path)

	err = reloaded.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got, want := reloaded.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	if got := reloaded.Get(1); got != "beta" {
		t.Errorf("Get(1) = %q, want %q", got, "beta")
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent", baseHistory))

	err := h.Load()
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}

	if got := h.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}
