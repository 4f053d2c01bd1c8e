package argparse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/skillian/errors"
)

// ArgumentParser is the top-level object that parses command lines,
// generates usage and help messages, and issues errors when users give the
// program invalid arguments. It embeds ActionContainer, so every
// container-level declaration method (AddArgument, AddArgumentGroup,
// AddMutuallyExclusiveGroup, SetDefaults, Register) is available directly on
// a parser.
type ArgumentParser struct {
	ActionContainer

	// Prog is the name of the program, shown in usage/help/error text.
	Prog string

	// Usage overrides the auto-generated usage line when non-empty.
	Usage string

	// Description is the brief text shown between the usage line and the
	// argument listing.
	Description string

	// Epilog is trailing text added after the argument help.
	Epilog string

	// Version is the string printed by a "version" action before it
	// exits.
	Version string

	// NoHelp suppresses the automatically added -h/--help argument.
	NoHelp bool

	// Formatter selects the HelpFormatter used by FormatHelp. The zero
	// value uses the default formatter.
	Formatter HelpFormatter

	// Stdout and Stderr are where help text and error messages are
	// written. Both default to the real os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// debug, when true, makes exit() return a *SystemExit error instead
	// of calling os.Exit, so tests can observe the would-be exit status
	// without killing the test binary.
	debug bool

	// subparsersAction is set by AddSubParsers, recording the single
	// positional PARSER action a parser may declare.
	subparsersAction *subParsersAction

	// pendingExtras, when non-nil, is where a subparser delegation
	// appends tokens its child parser didn't recognize, so they surface
	// in the parent's own ParseKnownArgs extras.
	pendingExtras *[]string

	// boundArgs is the collection of arguments bound to Go variables via
	// the Bind ArgumentOption, assigned to after a successful parse.
	boundArgs
}

// NewArgumentParser constructs a new argument parser, applying every given
// option in order and adding the implicit -h/--help argument unless NoHelp
// was set.
func NewArgumentParser(options ...ArgumentParserOption) (*ArgumentParser, error) {
	p := &ArgumentParser{
		ActionContainer: *newActionContainer("-", conflictError),
	}
	for _, o := range options {
		if err := o(p); err != nil {
			return nil, errors.ErrorfWithCause(
				err,
				"error initializing %[1]v (type: %[1]T)", p,
			)
		}
	}
	if p.Prog == "" {
		p.Prog = filepath.Base(osArgs0())
	}
	_, hHelp := p.optionStringIndex["-h"]
	_, longHelp := p.optionStringIndex["--help"]
	if !p.NoHelp && !hHelp && !longHelp {
		if _, err := p.AddArgument(
			OptionStrings("-h", "--help"),
			Action("help"),
			Help("show this help message and exit"),
		); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNewArgumentParser creates an argument parser and panics if creation
// fails.
func MustNewArgumentParser(options ...ArgumentParserOption) *ArgumentParser {
	p, err := NewArgumentParser(options...)
	if err != nil {
		panic(err)
	}
	return p
}

// AddArgument declares a new argument on the parser. It shadows
// ActionContainer.AddArgument so that an argument declared with Bind(...)
// is registered with this parser's boundArgs immediately, rather than
// requiring a separate bookkeeping pass after ParseArgs.
func (p *ArgumentParser) AddArgument(options ...ArgumentOption) (*Argument, error) {
	a, err := p.ActionContainer.AddArgument(options...)
	if err != nil {
		return nil, err
	}
	if a.bindTarget != nil {
		if err := p.boundArgs.bind(a, a.bindTarget); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// MustAddArgument adds an argument or panics if argument creation fails.
func (p *ArgumentParser) MustAddArgument(options ...ArgumentOption) *Argument {
	a, err := p.AddArgument(options...)
	if err != nil {
		panic(err)
	}
	return a
}

// MustParseArgs parses args, or os.Args[1:] when nil, and panics on error.
func (p *ArgumentParser) MustParseArgs(args []string) Namespace {
	ns, err := p.ParseArgs(args)
	if err != nil {
		panic(err)
	}
	return ns
}

// ArgumentParserOption configures an ArgumentParser during
// NewArgumentParser.
type ArgumentParserOption func(p *ArgumentParser) error

// Prog overrides the program name used in usage/help/error text.
func Prog(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Prog = v; return nil }
}

// Usage overrides the auto-generated usage line.
func Usage(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Usage = v; return nil }
}

// Description sets the text shown between the usage line and the argument
// listing.
func Description(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Description = v; return nil }
}

// Epilog sets the trailing text shown after the argument help.
func Epilog(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Epilog = v; return nil }
}

// ProgVersion sets the string a "version" action prints.
func ProgVersion(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Version = v; return nil }
}

// AddHelp controls whether -h/--help is added automatically. It defaults to
// true; pass false to suppress it.
func AddHelp(v bool) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.NoHelp = !v; return nil }
}

// PrefixChars sets the characters that introduce an optional argument.
// Defaults to "-".
func PrefixChars(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.prefixChars = v; return nil }
}

// FromFilePrefixChars sets the characters that introduce an @file
// argument-expansion token. Empty (the default) disables @file expansion.
func FromFilePrefixChars(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.fromFilePrefixChars = v; return nil }
}

// ConflictHandler selects how duplicate option strings are handled:
// "error" (the default) or "resolve".
func ConflictHandler(v string) ArgumentParserOption {
	return func(p *ArgumentParser) error {
		if v != conflictError && v != conflictResolve {
			return newDeclarationError("unknown conflict handler: %q", v)
		}
		p.conflictHandler = v
		return nil
	}
}

// ArgumentDefault sets the fallback default applied to any declared
// argument that doesn't specify its own.
func ArgumentDefault(v interface{}) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.argumentDefault = v; return nil }
}

// WithFormatter selects the HelpFormatter used to render usage and help
// text.
func WithFormatter(f HelpFormatter) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Formatter = f; return nil }
}

// WithFormatterName selects a HelpFormatter by its conventional name:
// "HelpFormatter", "RawDescriptionHelpFormatter", "RawTextHelpFormatter",
// or "ArgumentDefaultsHelpFormatter".
func WithFormatterName(name string) ArgumentParserOption {
	return func(p *ArgumentParser) error {
		switch name {
		case "", "HelpFormatter":
			p.Formatter = defaultFormatter{}
		case "RawDescriptionHelpFormatter":
			p.Formatter = RawDescriptionHelpFormatter{}
		case "RawTextHelpFormatter":
			p.Formatter = RawTextHelpFormatter{}
		case "ArgumentDefaultsHelpFormatter":
			p.Formatter = ArgumentDefaultsHelpFormatter{}
		default:
			return newDeclarationError("unknown help formatter: %q", name)
		}
		return nil
	}
}

// Debug makes the parser return a *SystemExit error from its exit paths
// (help, version, usage errors) instead of calling os.Exit, so callers can
// drive it from tests.
func Debug(v bool) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.debug = v; return nil }
}

// WithStdout overrides where help text is written.
func WithStdout(w io.Writer) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Stdout = w; return nil }
}

// WithStderr overrides where error/usage text is written.
func WithStderr(w io.Writer) ArgumentParserOption {
	return func(p *ArgumentParser) error { p.Stderr = w; return nil }
}

// Parents folds every given parser's declared groups and actions into this
// one, as if they had been declared directly on it. Intended for use at
// NewArgumentParser time, before the child declares its own conflicting
// arguments.
func Parents(parents ...*ArgumentParser) ArgumentParserOption {
	return func(p *ArgumentParser) error {
		for _, parent := range parents {
			if err := p.addContainerActions(&parent.ActionContainer); err != nil {
				return err
			}
		}
		return nil
	}
}

func (p *ArgumentParser) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *ArgumentParser) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

// exit implements the debug-vs-process-exit duality: in debug mode it
// returns a *SystemExit carrying the intended status instead of killing the
// process, so help/version/error paths stay testable.
func (p *ArgumentParser) exit(code int, msg string) error {
	if msg != "" {
		fmt.Fprint(p.stderr(), msg)
	}
	if p.debug {
		return &SystemExit{Code: code}
	}
	os.Exit(code)
	return nil
}

// reportError formats err alongside the parser's usage line to Stderr and
// exits with status 2. A *SystemExit passes through untouched: it means a
// help or version action already wrote its output and chose its status.
func (p *ArgumentParser) reportError(err error) error {
	if se, ok := err.(*SystemExit); ok {
		return se
	}
	usage, ferr := p.FormatUsage()
	if ferr == nil {
		fmt.Fprint(p.stderr(), usage)
	}
	return p.exit(2, fmt.Sprintf("%s: error: %v\n", p.Prog, err))
}

func osArgs() []string {
	if len(os.Args) > 1 {
		return os.Args[1:]
	}
	return nil
}

func osArgs0() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "argparse"
}
