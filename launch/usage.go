package launch

import (
	"fmt"
	"io"
	"strings"

	"github.com/IkeLewis/scsh/pkg"
)

// usageText is the fixed synopsis printed to the diagnostic stream on any
// usage error.
const usageText = `Usage: ` + pkg.Name + ` [meta-arg] [switch ..] [end-option arg ..]
  meta-arg: \ <script-file-name>

  switch:   -e <entry>          Top-level entry point
            -o <structure>      Open structure in current package
            -m <structure>      Switch to package of structure
            -n <new-package>    Switch to new package ('#f' for anonymous)

            -lm <module-file>   Load module into config package
            -le <exec-file>     Load file into exec package
            -l  <file>          Load file into current package

            +lp  <dir>          Add <dir> to front of library path list
            lp+  <dir>          Add <dir> to end of library path list
            +lpe <dir>          +lp, with environment variables expanded
            lpe+ <dir>          lp+, with environment variables expanded
            +lpsd               Add script-file directory to front of path list
            lpsd+               Add script-file directory to end of path list
            -lp-clear           Clear library path list
            -lp-default         Reset library path list to system default

            -ds                 Do script (load terminator script into current package)
            -dm                 Do script module (load terminator script into config package)
            -de                 Do script exec (load terminator script into exec package)

  end-option:
            -s <script>         Specify script
            -sfd <num>          Script file descriptor
            -c <exp>            Evaluate expression
            --                  Interactive session; remaining args passed through`

// Usage returns the usage synopsis, headed by the program name, version, and
// description.
func Usage() string {
	return pkg.Name + " " + strings.TrimSpace(pkg.Version) +
		" - " + pkg.Description + "\n" + usageText
}

// ReportUsage prints the offending message and the usage synopsis to w.
// It is the leaf reporter for usage errors; the caller decides the exit
// status.
func ReportUsage(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(w, pkg.Name+": "+err.Error())
	}

	fmt.Fprintln(w, Usage())
}
