package argparse

// Suppress is the sentinel value used for a Default or Help to mean
// "materialize nothing" / "show nothing". It mirrors Python argparse's
// SUPPRESS constant, including its literal spelling.
const Suppress = "==SUPPRESS=="

// Nargs sentinel values. Anything >= 0 is a literal argument count; these
// negative values pick out the special arities described in spec.md's
// arity table. OneOrMore/ZeroOrMore/ZeroOrOne keep the teacher's original
// numbering; Remainder and Parser extend the sequence.
const (
	// OneOrMore means one or more argument values are accepted ('+').
	OneOrMore int = -1 - iota

	// ZeroOrMore indicates zero or more arguments are accepted ('*').
	ZeroOrMore

	// ZeroOrOne indicates zero or one argument is allowed ('?').
	ZeroOrOne

	// Remainder slurps every remaining token verbatim, including tokens
	// that would otherwise look like options ('...').
	Remainder

	// Parser is the subparsers arity: one token selects the sub-parser,
	// everything after it is delegated unparsed ('A...').
	Parser
)

// isValidNarg reports whether v is a legal Nargs value: a non-negative
// literal count, or one of the sentinels above.
func isValidNarg(v int) bool {
	return v >= Parser
}

// conflictError / conflictResolve name the two conflict-handler strategies
// an ActionContainer can be configured with.
const (
	conflictError   = "error"
	conflictResolve = "resolve"
)
