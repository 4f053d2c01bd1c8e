package argparse

import (
	"regexp"
	"sort"
	"strings"
)

// optionMatch is what recognizeOption found at one token index: the action
// it resolved to (nil for "looks like an option, matched nothing"), the
// option string that matched (for abbreviations, the full string, not the
// typed prefix), and an optional `=`-delimited or clustered explicit value.
type optionMatch struct {
	action        *Argument
	optionString  string
	explicitValue *string
}

// isShortOption reports whether s is a single prefix character plus one
// more character ("-x"), the only shape whose explicit value may be a
// cluster of further short options.
func isShortOption(c *ActionContainer, s string) bool {
	return len(s) == 2 && c.prefixRunLen(s) == 1
}

// tokenizePattern walks args once, producing the O/A/- pattern string
// spec.md §4.3.2 describes plus the option-match recorded at every 'O'
// index.
func tokenizePattern(c *ActionContainer, args []string) ([]byte, map[int]optionMatch, error) {
	pattern := make([]byte, len(args))
	optionAt := make(map[int]optionMatch)
	sawSeparator := false
	for i, tok := range args {
		if !sawSeparator && tok == "--" {
			sawSeparator = true
			pattern[i] = '-'
			continue
		}
		if sawSeparator {
			pattern[i] = 'A'
			continue
		}
		m, matched, err := recognizeOption(c, tok)
		if err != nil {
			return nil, nil, err
		}
		if matched {
			pattern[i] = 'O'
			optionAt[i] = m
		} else {
			pattern[i] = 'A'
		}
	}
	return pattern, optionAt, nil
}

// recognizeOption implements spec.md §4.3.3's optional-recognition
// procedure for a single candidate token.
func recognizeOption(c *ActionContainer, tok string) (optionMatch, bool, error) {
	if tok == "" || len(tok) < 2 || !c.looksLikeOption(tok) {
		return optionMatch{}, false, nil
	}

	if a, ok := c.optionStringIndex[tok]; ok {
		return optionMatch{action: a, optionString: tok}, true, nil
	}

	if prefix, tail, hasEq := strings.Cut(tok, "="); hasEq {
		if a, ok := c.optionStringIndex[prefix]; ok {
			v := tail
			return optionMatch{action: a, optionString: prefix, explicitValue: &v}, true, nil
		}
	}

	runLen := c.prefixRunLen(tok)

	if runLen >= 2 {
		candidatePrefix := tok
		var tail string
		hasEq := false
		if p, t, ok := strings.Cut(tok, "="); ok {
			candidatePrefix, tail, hasEq = p, t, true
		}
		var matches []string
		for op := range c.optionStringIndex {
			if c.prefixRunLen(op) >= 2 && strings.HasPrefix(op, candidatePrefix) {
				matches = append(matches, op)
			}
		}
		switch len(matches) {
		case 1:
			a := c.optionStringIndex[matches[0]]
			if hasEq {
				v := tail
				return optionMatch{action: a, optionString: matches[0], explicitValue: &v}, true, nil
			}
			return optionMatch{action: a, optionString: matches[0]}, true, nil
		default:
			if len(matches) > 1 {
				sort.Strings(matches)
				return optionMatch{}, false, newAmbiguousOptionError(tok, matches)
			}
		}
	} else if runLen == 1 {
		if len(tok) >= runLen+1 {
			shortTok := tok[:runLen+1]
			if a, ok := c.optionStringIndex[shortTok]; ok {
				tail := tok[runLen+1:]
				if tail == "" {
					return optionMatch{action: a, optionString: shortTok}, true, nil
				}
				v := tail
				return optionMatch{action: a, optionString: shortTok, explicitValue: &v}, true, nil
			}
		}
		var matches []string
		for op := range c.optionStringIndex {
			if c.prefixRunLen(op) == 1 && strings.HasPrefix(op, tok) {
				matches = append(matches, op)
			}
		}
		if len(matches) == 1 {
			return optionMatch{action: c.optionStringIndex[matches[0]], optionString: matches[0]}, true, nil
		}
		if len(matches) > 1 {
			sort.Strings(matches)
			return optionMatch{}, false, newAmbiguousOptionError(tok, matches)
		}
	}

	if negativeNumberRegexp.MatchString(tok) && len(c.hasNegativeNumberOptionals) == 0 {
		return optionMatch{}, false, nil
	}
	if strings.ContainsAny(tok, " \t") {
		return optionMatch{}, false, nil
	}
	return optionMatch{action: nil, optionString: tok}, true, nil
}

// arityFragment compiles an Argument's arity into the regex fragment
// spec.md §4.3.4 tabulates, stripped of its -*/- parts when the argument is
// optional (optionals may not absorb a "--" separator).
func (a *Argument) arityFragment() string {
	strip := a.isOptional
	switch a.Nargs {
	case ZeroOrOne:
		if strip {
			return "(A?)"
		}
		return "(-*A?-*)"
	case ZeroOrMore:
		if strip {
			return "(A*)"
		}
		return "(-*[A-]*)"
	case OneOrMore:
		if strip {
			return "(AA*)"
		}
		return "(-*A[A-]*)"
	case Remainder:
		if strip {
			return "([AO]*)"
		}
		return "([-AO]*)"
	case Parser:
		if strip {
			return "(A[AO]*)"
		}
		return "(-*A[-AO]*)"
	default:
		n := a.Nargs
		if n <= 0 {
			if strip {
				return "()"
			}
			return "(-*-*)"
		}
		if strip {
			return "(" + strings.Repeat("A", n) + ")"
		}
		parts := make([]string, n)
		for i := range parts {
			parts[i] = "A"
		}
		return "(-*" + strings.Join(parts, "-*") + "-*)"
	}
}

// matchArity anchors a's arity fragment at the head of the pattern
// substring and returns how many tokens it matched. A fragment that cannot
// match at all (an arity demanding tokens the command line doesn't have)
// is a wrong-arity parse error.
func matchArity(a *Argument, substr string) (int, error) {
	re, err := regexp.Compile("^" + a.arityFragment())
	if err != nil {
		return 0, err
	}
	loc := re.FindStringIndex(substr)
	if loc != nil {
		return loc[1] - loc[0], nil
	}
	switch {
	case a.Nargs == OneOrMore || a.Nargs == Parser:
		return 0, newArgumentError(a, "expected at least one argument")
	case a.Nargs > 1:
		return 0, newArgumentError(a, "expected %d arguments", a.Nargs)
	default:
		return 0, newArgumentError(a, "expected one argument")
	}
}

// collectTokens extracts the raw token strings a matched arity span covers,
// filtering the "--" separator out unless the arity is Remainder or Parser
// (spec.md §4.3.6 step 1).
func collectTokens(tokens []string, start, count int, a *Argument) []string {
	raw := tokens[start : start+count]
	if a.Nargs == Remainder || a.Nargs == Parser {
		out := make([]string, len(raw))
		copy(out, raw)
		return out
	}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t == "--" {
			continue
		}
		out = append(out, t)
	}
	return out
}
