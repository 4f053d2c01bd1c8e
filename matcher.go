package argparse

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/skillian/errors"
)

// seedDefaults implements spec.md §4.3.1 point 2: for every declared action
// whose destination isn't Suppress, if the Namespace has no value there and
// the default isn't Suppress, write the default (coercing it through the
// Type function first if the default is a string). Container-level
// defaults then fill in anything still missing.
func (p *ArgumentParser) seedDefaults(ns Namespace) error {
	for _, a := range p.actions {
		if a.Dest == Suppress {
			continue
		}
		if _, ok := ns.Get(a); ok {
			continue
		}
		if a.Default == Suppress {
			continue
		}
		if a.Default == nil {
			continue
		}
		v := a.Default
		if s, ok := v.(string); ok {
			coerced, err := a.createValue(s)
			if err != nil {
				return err
			}
			v = coerced
		}
		ns.Set(a, v)
	}
	for dest, v := range p.defaults {
		if _, ok := ns[dest]; !ok {
			ns[dest] = v
		}
	}
	return nil
}

// ParseKnownArgs parses args against p, returning the populated Namespace
// and any tokens it didn't recognize. Unlike ParseArgs, leftover tokens are
// not an error (spec.md §4.3.6's "parseArgs is the thin wrapper that errors
// if extras is non-empty").
func (p *ArgumentParser) ParseKnownArgs(args []string) (Namespace, []string, error) {
	if p.fromFilePrefixChars != "" {
		expanded, err := expandFromFiles(p.fromFilePrefixChars, args)
		if err != nil {
			return nil, nil, p.reportError(err)
		}
		args = expanded
	}
	ns := make(Namespace)
	extras, err := p.matchInto(args, ns)
	if err != nil {
		return nil, nil, p.reportError(err)
	}
	if err := p.boundArgs.setValues(ns); err != nil {
		return nil, nil, err
	}
	return ns, extras, nil
}

// ParseArgs parses args, or os.Args[1:] when args is nil, and errors if any
// token goes unrecognized.
func (p *ArgumentParser) ParseArgs(args []string) (Namespace, error) {
	if args == nil {
		args = osArgs()
	}
	ns, extras, err := p.ParseKnownArgs(args)
	if err != nil {
		return nil, err
	}
	if len(extras) > 0 {
		return nil, p.reportError(errors.Errorf("unrecognized arguments: %s", strings.Join(extras, " ")))
	}
	return ns, nil
}

// matchInto runs the matching engine described in spec.md §4.3 against
// args, writing results into ns (which may already carry values, as when a
// subparser delegates into a child parser) and returning leftover tokens.
func (p *ArgumentParser) matchInto(args []string, ns Namespace) ([]string, error) {
	for _, a := range p.actions {
		a.seenNonDefault = false
	}
	if err := p.seedDefaults(ns); err != nil {
		return nil, err
	}

	pattern, optionAt, err := tokenizePattern(&p.ActionContainer, args)
	if err != nil {
		return nil, err
	}

	remaining := p.Positionals()
	seen := map[*Argument]bool{}
	var extras []string
	p.pendingExtras = &extras

	n := len(args)
	i := 0
	for {
		j := -1
		for k := i; k < n; k++ {
			if pattern[k] == 'O' {
				j = k
				break
			}
		}
		if j < 0 {
			break
		}
		if i < j {
			next, err := p.consumePositionals(pattern, args, i, &remaining, ns, seen)
			if err != nil {
				return nil, err
			}
			if next > i {
				// a positional span may run past j (Remainder and
				// Parser arities absorb option-looking tokens), so
				// re-find the next optional from the new cursor.
				i = next
				continue
			}
			extras = append(extras, args[i:j]...)
			i = j
		}
		next, err := p.consumeOptional(pattern, args, optionAt, i, ns, seen, &extras)
		if err != nil {
			return nil, err
		}
		i = next
	}
	next, err := p.consumePositionals(pattern, args, i, &remaining, ns, seen)
	if err != nil {
		return nil, err
	}
	extras = append(extras, args[next:]...)

	if len(remaining) > 0 {
		return nil, newArgumentError(remaining[0], "the following arguments are required: %s",
			argumentDisplayName(remaining[0]))
	}
	for _, a := range p.actions {
		if a.Required && !seen[a] {
			return nil, newArgumentError(a, "the following arguments are required: %s",
				argumentDisplayName(a))
		}
	}
	for _, g := range p.mutexGroups {
		if !g.Required {
			continue
		}
		anySeen := false
		for _, m := range g.actions {
			if m.seenNonDefault {
				anySeen = true
				break
			}
		}
		if !anySeen {
			names := make([]string, len(g.actions))
			for idx, m := range g.actions {
				names[idx] = argumentDisplayName(m)
			}
			return nil, errors.Errorf(
				"one of the arguments %s is required", strings.Join(names, " "))
		}
	}

	return extras, nil
}

// consumePositionals implements spec.md §4.3.5 step 2: match the remaining
// positionals' concatenated arity regex against the pattern substring from
// i, trimming candidates from the tail until a match is found.
func (p *ArgumentParser) consumePositionals(
	pattern []byte, tokens []string, i int, remaining *[]*Argument,
	ns Namespace, seen map[*Argument]bool,
) (int, error) {
	if len(*remaining) == 0 {
		return i, nil
	}
	substr := string(pattern[i:])
	for k := len(*remaining); k >= 1; k-- {
		candidates := (*remaining)[:k]
		var frag strings.Builder
		for _, a := range candidates {
			frag.WriteString(a.arityFragment())
		}
		re, err := regexp.Compile("^" + frag.String())
		if err != nil {
			continue
		}
		loc := re.FindStringSubmatchIndex(substr)
		if loc == nil {
			continue
		}
		pos := i
		for idx, a := range candidates {
			s, e := loc[2+2*idx], loc[3+2*idx]
			if s < 0 {
				continue
			}
			count := e - s
			raw := collectTokens(tokens, pos, count, a)
			if err := p.invokeAction(a, raw, ns, seen, ""); err != nil {
				return 0, err
			}
			pos += count
		}
		*remaining = (*remaining)[k:]
		return pos, nil
	}
	return i, nil
}

// consumeOptional implements spec.md §4.3.5 step 3: resolve the recorded
// option match at i, walk any short-option cluster carried in an explicit
// value ("-xvf", "-xvf=X"), and consume the value tokens the final
// action's arity calls for. Actions are collected first and invoked only
// once the whole token is accounted for.
func (p *ArgumentParser) consumeOptional(
	pattern []byte, tokens []string, optionAt map[int]optionMatch, i int,
	ns Namespace, seen map[*Argument]bool, extras *[]string,
) (int, error) {
	m := optionAt[i]
	if m.action == nil {
		*extras = append(*extras, tokens[i])
		return i + 1, nil
	}

	type actionCall struct {
		action       *Argument
		raw          []string
		optionString string
	}
	var calls []actionCall

	a, optionString, explicit := m.action, m.optionString, m.explicitValue
	inCluster := false
	stop := i + 1
	for {
		if explicit == nil {
			k, err := matchArity(a, string(pattern[i+1:]))
			if err != nil {
				return 0, err
			}
			calls = append(calls, actionCall{a, collectTokens(tokens, i+1, k, a), optionString})
			stop = i + 1 + k
			break
		}
		if a.Nargs == 0 && isShortOption(&p.ActionContainer, optionString) {
			// the explicit value of a zero-arity short option is a
			// cluster of further short options; pair the prefix
			// character with its head and keep walking.
			inCluster = true
			calls = append(calls, actionCall{a, nil, optionString})
			next := optionString[:1] + (*explicit)[:1]
			na, ok := p.optionStringIndex[next]
			if !ok {
				return 0, newArgumentError(a, "ignored explicit argument %q", *explicit)
			}
			rest := (*explicit)[1:]
			a, optionString = na, next
			if rest == "" {
				explicit = nil
			} else {
				explicit = &rest
			}
			continue
		}
		if a.Nargs == 1 || a.Nargs == ZeroOrOne {
			v := *explicit
			if inCluster && strings.HasPrefix(v, "=") {
				v = v[1:]
			}
			if v == "" && inCluster {
				return 0, newArgumentError(a, "expected one argument")
			}
			calls = append(calls, actionCall{a, []string{v}, optionString})
			break
		}
		return 0, newArgumentError(a, "ignored explicit argument %q", *explicit)
	}

	for _, c := range calls {
		if err := p.invokeAction(c.action, c.raw, ns, seen, c.optionString); err != nil {
			return 0, err
		}
	}
	return stop, nil
}

// invokeAction implements spec.md §4.3.6: coerce, validate choices, shape
// per arity, update the mutex "seen" bookkeeping, and dispatch the action's
// side effect.
func (p *ArgumentParser) invokeAction(
	a *Argument, raw []string, ns Namespace, seen map[*Argument]bool, optionString string,
) error {
	var values []interface{}
	if a.Nargs != 0 {
		values = make([]interface{}, 0, len(raw))
		for _, r := range raw {
			v, err := a.createValue(r)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
	}

	switch {
	case a.Nargs == 0:
		values = []interface{}{a.Const}
	case a.Nargs == ZeroOrOne && len(values) == 0:
		if !a.isOptional || a.Const == nil {
			// nothing to store; the seeded default stands.
			seen[a] = true
			return nil
		}
		values = []interface{}{a.Const}
	case a.Nargs == ZeroOrMore && len(values) == 0:
		if a.Default != nil {
			seen[a] = true
			return nil
		}
		values = []interface{}{}
	}

	seen[a] = true
	if resultEqualsDefault(a, values) {
		// not marked seenNonDefault: spec.md §4.3.6 step 5.
	} else {
		for _, other := range p.mutexForbidden(a) {
			if other.seenNonDefault {
				return newMutexConflictError(p.mutexGroupFor(a, other), a, other)
			}
		}
		a.seenNonDefault = true
	}

	if len(values) == 1 && values[0] == Suppress {
		return nil
	}
	return a.Action(p, a, ns, values, optionString)
}

// resultEqualsDefault reports whether the values about to be stored equal
// the action's own default, per spec.md §4.3.6 step 5.
func resultEqualsDefault(a *Argument, values []interface{}) bool {
	if a.Default == nil {
		return false
	}
	if len(values) == 0 {
		return true
	}
	var v interface{}
	if len(values) == 1 && (a.Nargs == 1 || a.Nargs == ZeroOrOne || a.Nargs == 0) {
		v = values[0]
	} else {
		v = values
	}
	return reflect.DeepEqual(v, a.Default)
}

// mutexGroupFor finds the mutex group that explains why a and other
// conflict, for error reporting.
func (p *ArgumentParser) mutexGroupFor(a, other *Argument) *MutexGroup {
	for _, g := range p.mutexMembers[a] {
		for _, m := range g.actions {
			if m == other {
				return g
			}
		}
	}
	return nil
}
