package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// HomeDir returns the user's home directory seeded from $HOME.
//
// If $HOME is unset and the system lookup also fails, a warning is printed to
// the diagnostic stream and "/" is used.
//
//nolint:gochecknoglobals
var HomeDir = sync.OnceValue(
	func() string {
		if home, ok := os.LookupEnv("HOME"); ok && home != "" {
			return home
		}

		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			fmt.Fprintln(os.Stderr,
				Name+": could not determine home directory; using /")

			return "/"
		}

		return home
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = filepath.Join(HomeDir(), ".config")
		}

		return filepath.Join(dir, Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = filepath.Join(HomeDir(), ".cache")
		}

		return filepath.Join(dir, Prefix())
	},
)

// LibDirs returns the default library search path.
//
// The environment variable SCSH_LIB_DIRS, when set, overrides the built-in
// defaults. Entries are separated by the platform path-list separator.
func LibDirs() []string {
	if env, ok := os.LookupEnv("SCSH_LIB_DIRS"); ok {
		var dirs []string

		for _, dir := range strings.Split(env, string(os.PathListSeparator)) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}

		return dirs
	}

	return []string{
		filepath.Join(HomeDir(), ".scsh", "modules"),
		"/usr/local/lib/scsh/modules",
		"/usr/lib/scsh/modules",
	}
}
