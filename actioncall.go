package argparse

import (
	"fmt"
	"strings"
)

// ArgumentAction is invoked once an argument's values have been matched and
// coerced. It mirrors spec.md §4.2's call(parser, namespace, values,
// optionString) signature: parser and optionString let help/version/
// subparsers actions do their work without reaching for package-level
// state.
type ArgumentAction func(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error

// storeAction sets the value associated with the given argument. A single value
// (Nargs of 1, the "unset" default arity, or ZeroOrOne) is unwrapped from its
// slice; everything else is stored as a []interface{}.
func storeAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	var v interface{}
	if len(values) == 1 && (a.Nargs == 0 || a.Nargs == 1 || a.Nargs == ZeroOrOne) {
		v = values[0]
	} else {
		v = values
	}
	ns.Set(a, v)
	return nil
}

// storeConstAction stores the argument's Const value unconditionally.
func storeConstAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	ns.Set(a, a.Const)
	return nil
}

// storeTrueAction stores true for the given argument (default should be false).
func storeTrueAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	ns.Set(a, true)
	return nil
}

// storeFalseAction stores false for the given argument (default should be true).
func storeFalseAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	ns.Set(a, false)
	return nil
}

// appendAction appends the matched values to the list at the argument's
// destination, creating it if absent.
func appendAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	if a.Nargs == 1 && len(values) == 1 {
		ns.Append(a, values[0])
	} else {
		ns.Append(a, values)
	}
	return nil
}

// appendConstAction appends the argument's Const value to its destination list.
func appendConstAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	ns.Append(a, a.Const)
	return nil
}

// countAction increments the integer stored at the argument's destination,
// seeding it at 0 the first time it is seen.
func countAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	n, _ := ns.Get(a)
	i, _ := n.(int)
	ns.Set(a, i+1)
	return nil
}

// helpAction prints the parser's formatted help to its configured stdout and
// exits with status 0.
func helpAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	text, err := p.FormatHelp()
	if err != nil {
		return err
	}
	fmt.Fprint(p.stdout(), text)
	return p.exit(0, "")
}

// versionAction prints the parser's version string to its configured stdout and
// exits with status 0.
func versionAction(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	fmt.Fprintln(p.stdout(), p.Version)
	return p.exit(0, "")
}

// CustomAction wraps a caller-supplied ArgumentAction directly, bypassing
// the built-in action-tag presets. This is the escape hatch spec.md's
// design notes call for: a sealed variant for the known tags, plus a path
// for user-supplied behavior. Callers using this must also set Nargs (and
// Const, if relevant) themselves.
func CustomAction(fn ArgumentAction) ArgumentOption {
	return func(a *Argument) error {
		a.Action = fn
		a.ActionName = ""
		return nil
	}
}

// actionPreset configures the Nargs/Const/Default/Action quartet for one of
// the built-in action tags. These are the handlers seeded into every
// ActionContainer's "action" registry category.
type actionPreset func(a *Argument)

var builtinActionPresets = map[string]actionPreset{
	"store": func(a *Argument) {
		if a.Nargs == 0 {
			a.Nargs = 1
		}
		a.Action = storeAction
	},
	"store_const": func(a *Argument) {
		a.Nargs = 0
		a.Action = storeConstAction
	},
	"store_true": func(a *Argument) {
		if a.Default == nil {
			a.Default = false
		}
		a.Const = true
		a.Nargs = 0
		a.Action = storeTrueAction
	},
	"store_false": func(a *Argument) {
		if a.Default == nil {
			a.Default = true
		}
		a.Const = false
		a.Nargs = 0
		a.Action = storeFalseAction
	},
	"append": func(a *Argument) {
		if a.Nargs == 0 {
			a.Nargs = 1
		}
		a.Action = appendAction
	},
	"append_const": func(a *Argument) {
		a.Nargs = 0
		a.Action = appendConstAction
	},
	"count": func(a *Argument) {
		a.Nargs = 0
		a.Action = countAction
	},
	"help": func(a *Argument) {
		a.Nargs = 0
		a.Action = helpAction
		if a.Default == nil {
			a.Default = Suppress
		}
	},
	"version": func(a *Argument) {
		a.Nargs = 0
		a.Action = versionAction
		if a.Default == nil {
			a.Default = Suppress
		}
	},
	"parsers": func(a *Argument) {
		a.Nargs = Parser
		a.Action = nil // installed by AddSubParsers, which owns the dispatch table
	},
}

// Action resolves an action by its registry tag ("store", "append",
// "store_true", "count", ...), mirroring Python argparse's add_argument
// action=... string form. Unrecognized names are looked up in the owning
// container's "action" registry, so callers may register their own tags
// with (*ActionContainer).Register before using them here.
func Action(name string) ArgumentOption {
	return func(a *Argument) error {
		tag := strings.ToLower(name)
		if preset, ok := builtinActionPresets[tag]; ok {
			preset(a)
			a.ActionName = tag
			return nil
		}
		if a.container == nil {
			return newDeclarationError("unrecognized action: %q", name)
		}
		h := a.container.registryGet("action", tag)
		switch fn := h.(type) {
		case actionPreset:
			fn(a)
		case func(*Argument):
			fn(a)
		case ArgumentAction:
			a.Action = fn
		default:
			return newDeclarationError("unrecognized action: %q", name)
		}
		a.ActionName = tag
		return nil
	}
}
