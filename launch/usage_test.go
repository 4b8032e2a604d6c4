package launch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IkeLewis/scsh/pkg"
)

func TestUsage(t *testing.T) {
	out := Usage()

	if !strings.Contains(out, strings.TrimSpace(pkg.Version)) {
		t.Error("synopsis missing the program version")
	}

	if !strings.Contains(out, "Usage: "+pkg.Name) {
		t.Error("synopsis missing the usage line")
	}
}

func TestReportUsage(t *testing.T) {
	var buf bytes.Buffer

	ReportUsage(&buf, NewArgError(msgUnknownSwitch, "-zzz"))

	out := buf.String()

	if !strings.Contains(out, pkg.Name+": Unknown switch: -zzz") {
		t.Errorf("output %q missing offending token line", out)
	}

	if !strings.Contains(out, "Usage: "+pkg.Name) {
		t.Errorf("output %q missing synopsis", out)
	}
}
