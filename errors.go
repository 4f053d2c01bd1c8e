package argparse

import (
	"strings"

	"github.com/skillian/errors"
)

// DeclarationError is returned (or panicked, via MustAddArgument and
// friends) for configuration mistakes caught while building a parser:
// conflicting option strings under the "error" conflict handler, an
// invalid Nargs, an unknown action or type name, required set on a
// positional, and the like. Declaration errors are always surfaced
// immediately; they are never routed through (*ArgumentParser).reportError.
type DeclarationError struct {
	error
}

func newDeclarationError(format string, args ...interface{}) error {
	return DeclarationError{errors.Errorf(format, args...)}
}

// ArgumentError is a parse-time error tied to the Argument that caused it,
// so the caller (or the parser's own error boundary) can render
// "argument -x/--xxx: message" the way spec.md's error-handling design
// requires.
type ArgumentError struct {
	error

	// Argument is the action responsible for the error, or nil if the
	// error isn't attributable to a single declared argument (e.g. an
	// unrecognized token).
	Argument *Argument
}

func (e ArgumentError) Unwrap() error { return e.error }

func newArgumentError(a *Argument, format string, args ...interface{}) error {
	msg := errors.Errorf(format, args...)
	if a != nil {
		msg = errors.Errorf("argument %s: %v", argumentDisplayName(a), msg)
	}
	return ArgumentError{msg, a}
}

// argumentDisplayName renders the "-x/--xxx" or "DEST" form used in
// error messages.
func argumentDisplayName(a *Argument) string {
	if len(a.OptionStrings) > 0 {
		return strings.Join(a.OptionStrings, "/")
	}
	if len(a.MetaVar) > 0 {
		return a.MetaVar[0]
	}
	return a.Dest
}

// AmbiguousOptionError is raised when a long-option abbreviation prefix
// matches more than one declared option string.
type AmbiguousOptionError struct {
	error

	// Option is the ambiguous token as typed by the user.
	Option string

	// Candidates lists every option string the abbreviation could mean.
	Candidates []string
}

func newAmbiguousOptionError(option string, candidates []string) error {
	msg := errors.Errorf(
		"ambiguous option: %s could match %s",
		option, strings.Join(candidates, ", "))
	return AmbiguousOptionError{msg, option, candidates}
}

// ArgumentTypeError wraps a coercion failure, naming both the offending
// value and the type function that rejected it.
type ArgumentTypeError struct {
	error

	Value string
	Type  ValueParser
}

func newArgumentTypeError(a *Argument, value string, cause error) error {
	label := "value"
	if a.typeName != "" {
		label = a.typeName + " value"
	}
	msg := errors.ErrorfWithCause(cause,
		"argument %s: invalid %s: %q", argumentDisplayName(a), label, value)
	return ArgumentTypeError{msg, value, a.Type}
}

// MutexConflictError is raised when two actions of the same mutually
// exclusive group are both seen with non-default values.
type MutexConflictError struct {
	error

	Group *MutexGroup
}

func newMutexConflictError(g *MutexGroup, a, prior *Argument) error {
	msg := errors.Errorf(
		"argument %s: not allowed with argument %s",
		argumentDisplayName(a), argumentDisplayName(prior))
	return MutexConflictError{msg, g}
}
