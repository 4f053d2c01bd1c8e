package argparse

import (
	"bufio"
	"os"
	"strings"

	"github.com/skillian/errors"
)

// maxArgFileDepth bounds how deeply argument files may reference further
// argument files before expansion gives up, so a file that names itself
// fails instead of looping.
const maxArgFileDepth = 32

// expandFromFiles implements @file argument expansion: any token that
// begins with one of prefixChars' runes is replaced by the lines of the
// file named by the rest of the token, one token per line, verbatim.
// Expansion is recursive: a line that is itself an @token is expanded on
// the next pass.
func expandFromFiles(prefixChars string, args []string) ([]string, error) {
	for depth := 0; ; depth++ {
		if depth >= maxArgFileDepth {
			return nil, errors.Errorf(
				"argument files nested more than %d levels deep", maxArgFileDepth)
		}
		out := make([]string, 0, len(args))
		expanded := false
		for _, a := range args {
			if a == "" || !strings.ContainsRune(prefixChars, rune(a[0])) {
				out = append(out, a)
				continue
			}
			lines, err := readArgFile(a[1:])
			if err != nil {
				return nil, errors.ErrorfWithCause(err, "failed to read argument file %q", a[1:])
			}
			out = append(out, lines...)
			expanded = true
		}
		args = out
		if !expanded {
			return args, nil
		}
	}
}

// readArgFile reads path into one argument per line. Only the line
// terminator is stripped; internal whitespace is preserved, so a line
// "--message hello world" stays a single token. Empty lines are skipped.
func readArgFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
