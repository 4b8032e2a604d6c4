package repl

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/IkeLewis/scsh/env"
)

// commands are the control commands available in the interactive session.
//
//nolint:gochecknoglobals
var commands = []string{
	"help", "list", "open", "in", "new", "load", "quit", "exit",
}

// candidates returns the completion candidate list: control commands plus the
// names visible from the current environment.
func candidates(ec *env.Context) []string {
	if ec == nil {
		return commands
	}

	names := ec.Current.Env.Names()
	out := make([]string, 0, len(commands)+len(names))
	out = append(out, commands...)
	out = append(out, names...)

	return out
}

// complete returns fuzzy matches for word against the candidate list.
func complete(word string, list []string) fuzzy.Matches {
	if word == "" {
		return nil
	}

	return fuzzy.Find(word, list)
}

// currentWord returns the trailing word of input and its byte offset.
func currentWord(input string) (word string, start int) {
	start = strings.LastIndexFunc(input, unicode.IsSpace) + 1

	return input[start:], start
}
