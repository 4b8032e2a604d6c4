package env

import (
	"strings"
	"testing"
)

func TestLoad_ScriptBindings(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "defs.scm", `
# leading comment
; another comment style
greeting = "hello"
n = 40 + 2
combined = greeting + "!"
`)

	ec := NewContext()

	err := ec.Load(t.Context(), script, ec.User, true)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	tests := []struct {
		want any
		name string
	}{
		{name: "greeting", want: "hello"},
		{name: "n", want: 42},
		{name: "combined", want: "hello!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ec.User.Env.Lookup(tt.name)
			if !ok {
				t.Fatalf("%s not bound", tt.name)
			}

			if v != tt.want {
				t.Errorf("%s = %v (%T), want %v", tt.name, v, v, tt.want)
			}
		})
	}
}

func TestLoad_ScriptError(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "bad.scm", "x = (1 +\n")

	ec := NewContext()

	err := ec.Load(t.Context(), script, ec.User, true)
	if err == nil {
		t.Fatal("expected compile error")
	}

	if !strings.Contains(err.Error(), "compilation") {
		t.Errorf("error = %q, want compilation failure", err)
	}
}

func TestLoad_YAMLBindings(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "conf.yaml", `
name: scsh
limits:
  depth: 3
tags:
  - a
  - b
`)

	ec := NewContext()

	err := ec.Load(t.Context(), doc, ec.Config, false)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if v, ok := ec.Config.Env.Lookup("name"); !ok || v != "scsh" {
		t.Errorf("name = %v, want scsh", v)
	}

	if _, ok := ec.Config.Env.Lookup("limits"); !ok {
		t.Error("limits not bound")
	}

	if _, ok := ec.Config.Env.Lookup("tags"); !ok {
		t.Error("tags not bound")
	}
}

func TestLoad_YAMLMalformed(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "bad.yaml", "{ not yaml\n")

	ec := NewContext()

	err := ec.Load(t.Context(), doc, ec.Config, false)
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ec := NewContext()
	ec.Paths = MakePathList(t.TempDir())

	err := ec.Load(t.Context(), "nonesuch", ec.User, true)
	if err == nil {
		t.Fatal("expected lookup failure")
	}
}

func TestLoadPort(t *testing.T) {
	ec := NewContext()

	r := strings.NewReader("x = 7\n")

	err := ec.LoadPort(t.Context(), r, "fd 7", ec.User, true)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if v, _ := ec.User.Env.Lookup("x"); v != 7 {
		t.Errorf("x = %v, want 7", v)
	}
}
