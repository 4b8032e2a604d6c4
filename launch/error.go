package launch

import (
	"log/slog"
	"strings"
)

// ArgError is a usage error detected during parsing. It records the offending
// token(s) so the reporter can name them alongside the usage synopsis.
//
// ArgError values never reach the interpreter: parsing either yields a valid
// [Result] or fails here.
type ArgError struct {
	Msg    string
	Tokens []string
}

// NewArgError creates an ArgError naming the offending tokens.
func NewArgError(msg string, tokens ...string) *ArgError {
	return &ArgError{Msg: msg, Tokens: tokens}
}

// Error implements the error interface.
func (e *ArgError) Error() string {
	if len(e.Tokens) == 0 {
		return e.Msg
	}

	return e.Msg + ": " + strings.Join(e.Tokens, " ")
}

// LogValue implements slog.LogValuer for structured logging.
func (e *ArgError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 2)
	attrs = append(attrs, slog.String("error", e.Msg))

	if len(e.Tokens) > 0 {
		attrs = append(attrs, slog.String("arg", strings.Join(e.Tokens, " ")))
	}

	return slog.GroupValue(attrs...)
}

// Usage error messages. Each is combined with the offending token(s) by
// [NewArgError].
const (
	msgUnknownSwitch  = "Unknown switch"
	msgMissingArg     = "switch requires argument"
	msgInvalidFD      = "switch requires an integer file descriptor"
	msgPendingScript  = "-ds, -dm, and -de require a terminating -s or -sfd"
	msgEntryBeforeC   = "-e cannot be combined with -c"
	msgDuplicateEntry = "-e specified more than once"
)
