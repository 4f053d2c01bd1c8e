package argparse

import "fmt"

var (
	// maintainers holds a list of the maintainers of this package.
	maintainers = []string{
		"Sean Killian <skillian92@gmail.com>",
	}
)

// SystemExit is returned by a parser's exit path (help, version, a usage
// error) when the parser was built with Debug(true), instead of the
// process actually terminating. Code mirrors the status the process would
// have exited with: 0 for help/version, 2 for a parse error.
type SystemExit struct {
	Code int
}

func (e *SystemExit) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
