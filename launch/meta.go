package launch

import (
	"bufio"
	"os"
	"strings"
)

// metaArg is the leading token that triggers meta-argument expansion.
const metaArg = `\`

// ExpandMeta performs meta-argument expansion on a raw argument vector.
//
// When args begins with the meta-arg token followed by a script file name —
// the form a `#!` interpreter line produces — the pair is replaced by the
// whitespace-separated tokens found on the second line of that file, followed
// by the file name itself. The second line conventionally ends with "-s", so
// appending the file name completes the terminator.
//
// All other argument vectors are returned unchanged.
func ExpandMeta(args []string) ([]string, error) {
	if len(args) == 0 || args[0] != metaArg {
		return args, nil
	}

	if len(args) < 2 {
		return nil, NewArgError(msgMissingArg, metaArg)
	}

	script := args[1]

	tokens, err := readMetaLine(script)
	if err != nil {
		return nil, err
	}

	expanded := make([]string, 0, len(tokens)+len(args)-1)
	expanded = append(expanded, tokens...)
	expanded = append(expanded, script)
	expanded = append(expanded, args[2:]...)

	return expanded, nil
}

// readMetaLine returns the whitespace-split tokens of the second line of the
// named file.
func readMetaLine(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Skip the #! line.
	if !scanner.Scan() {
		return nil, scanner.Err()
	}

	if !scanner.Scan() {
		return nil, scanner.Err()
	}

	return strings.Fields(scanner.Text()), nil
}
