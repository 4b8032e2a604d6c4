package env

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/IkeLewis/scsh/pkg"
)

// pathSep separates entries in serialized path lists.
const pathSep = string(os.PathListSeparator)

// scriptExts are the extensions tried, in order, when resolving a bare
// structure or file name against the search path.
//
//nolint:gochecknoglobals
var scriptExts = []string{"", ".scsh", ".scm", ".yaml", ".yml"}

// PathList is the ordered library search path mutated by the path-op
// directives.
type PathList struct {
	dirs []string
}

// DefaultPaths returns the system default search path, honoring
// $SCSH_LIB_DIRS.
func DefaultPaths() *PathList {
	return &PathList{dirs: pkg.LibDirs()}
}

// MakePathList creates a path list from the given directories.
func MakePathList(dirs ...string) *PathList {
	return &PathList{dirs: dedup(dirs)}
}

// Dirs returns a copy of the current directory list.
func (p *PathList) Dirs() []string {
	return slices.Clone(p.dirs)
}

// String serializes the path list with the platform path-list separator.
func (p *PathList) String() string {
	return mung.Make(
		mung.WithSubjectItems(strings.Join(p.dirs, pathSep)),
		mung.WithDelim(pathSep),
		mung.WithFilter(func(s string) bool { return s != "" }),
	).String()
}

// Prepend adds dir to the front of the path list.
func (p *PathList) Prepend(dir string) {
	munged := mung.Make(
		mung.WithSubjectItems(strings.Join(p.dirs, pathSep)),
		mung.WithDelim(pathSep),
		mung.WithPrefixItems(dir),
		mung.WithFilter(func(s string) bool { return s != "" }),
	).String()

	p.dirs = dedup(strings.Split(munged, pathSep))
}

// Append adds dir to the end of the path list.
func (p *PathList) Append(dir string) {
	// The existing entries become the prefix of the new entry.
	munged := mung.Make(
		mung.WithSubjectItems(dir),
		mung.WithDelim(pathSep),
		mung.WithPrefixItems(p.dirs...),
		mung.WithFilter(func(s string) bool { return s != "" }),
	).String()

	p.dirs = dedup(strings.Split(munged, pathSep))
}

// PrependExpand prepends dir after expanding environment variables and a
// leading tilde.
func (p *PathList) PrependExpand(dir string) {
	p.Prepend(Expand(dir))
}

// AppendExpand appends dir after expanding environment variables and a
// leading tilde.
func (p *PathList) AppendExpand(dir string) {
	p.Append(Expand(dir))
}

// AddScriptDir adds the directory containing the script to the front or back
// of the path list.
func (p *PathList) AddScriptDir(script string, front bool) {
	dir := filepath.Dir(script)

	if front {
		p.Prepend(dir)
	} else {
		p.Append(dir)
	}
}

// Clear empties the path list.
func (p *PathList) Clear() {
	p.dirs = nil
}

// Reset restores the system default path list.
func (p *PathList) Reset() {
	p.dirs = pkg.LibDirs()
}

// Lookup locates name on the search path.
//
// Names containing a path separator, and names naming an existing file, are
// used as-is. Bare names are tried against each directory with each known
// extension, in order.
func (p *PathList) Lookup(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || fileExists(name) {
		if fileExists(name) {
			return name, nil
		}

		return "", ErrFileNotFound.With(slog.String("path", name))
	}

	for _, dir := range p.dirs {
		for _, ext := range scriptExts {
			candidate := filepath.Join(dir, name+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
		}
	}

	return "", ErrFileNotFound.With(
		slog.String("name", name),
		slog.String("paths", p.String()),
	)
}

// Expand expands environment variable references and a leading tilde in dir.
func Expand(dir string) string {
	if dir == "~" {
		return pkg.HomeDir()
	}

	if after, ok := strings.CutPrefix(dir, "~/"); ok {
		dir = filepath.Join(pkg.HomeDir(), after)
	}

	return os.ExpandEnv(dir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// dedup removes duplicate and empty entries, preserving first-occurrence
// order.
func dedup(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))

	for _, dir := range dirs {
		if dir == "" {
			continue
		}

		if _, ok := seen[dir]; ok {
			continue
		}

		seen[dir] = struct{}{}
		out = append(out, dir)
	}

	return out
}
