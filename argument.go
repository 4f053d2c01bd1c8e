package argparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skillian/errors"
)

// Argument holds the definition of one declared command-line argument: a
// positional if OptionStrings is empty, an optional otherwise (I1 in
// spec.md's data-model section).
type Argument struct {
	// Action holds the action to perform once values have been matched
	// and coerced for this argument.
	Action ArgumentAction

	// ActionName is the registry tag this action was resolved from
	// ("store", "append", "count", ...), kept around for conflict and
	// help-formatting messages. Empty when Action was supplied directly
	// via CustomAction.
	ActionName string

	// Const holds the value used for zero-arity (and '?' with no
	// explicit value) actions.
	Const interface{}

	// Default is the value materialized when the argument is absent.
	// The sentinel Suppress means "never materialize a default".
	Default interface{}

	// Dest is the string key that the argument can be retrieved by.
	Dest string

	// Help is the help text associated with the argument. Help ==
	// Suppress hides the argument from formatted help entirely.
	Help string

	// MetaVar is the variable that the argument is represented with when
	// displaying its usage.  It is a slice in case Nargs is non-zero.
	MetaVar []string

	// Nargs is the number of values that this argument can accept.  It
	// should be a non-negative int unless it is one of the sentinel
	// values: ZeroOrOne, ZeroOrMore, OneOrMore, Remainder, or Parser.
	Nargs int

	// OptionStrings are the possible string values that the argument can
	// be matched against. Empty means positional.
	OptionStrings []string

	// Required determines if the argument is required or not. Defaults
	// are: optionals = false, positionals = true except when Nargs is
	// ZeroOrOne, or ZeroOrMore with a Default.
	Required bool

	// Type holds a function that can be used to parse a string value into
	// the type desired by this argument.
	Type ValueParser

	// typeName is the registry name Type was resolved from, when TypeName
	// was used; coercion errors mention it ("invalid int value: ...").
	typeName string

	// Choices, if non-nil, restricts the coerced value to a finite set.
	Choices *ArgumentChoices

	// container is a weak back-pointer to the owning ActionContainer,
	// used for lookup only (registries, prefix chars) — never mutated
	// through this pointer once the argument has been added.
	container *ActionContainer

	// isOptional is fixed at AddArgument time from the container's
	// prefix-character alphabet and never recomputed.
	isOptional bool

	// seenNonDefault tracks, for the duration of a single parse, whether
	// this argument was matched with a value other than its own default
	// — the condition step 5 of the matching algorithm uses to decide
	// whether a mutex-group collision should fire.
	seenNonDefault bool

	// bindTarget, if set via Bind, is a pointer this argument's final
	// value is copied into once ParseArgs completes successfully.
	bindTarget interface{}
}

// Optional returns whether or not this is an optional (flag) argument.  If
// it is not, then it is a positional argument.
func (a *Argument) Optional() bool { return a.isOptional }

// ValueParser can parse a string value into a Go value.
type ValueParser func(v string) (interface{}, error)

// Bool converts the given string into a boolean value.
// It implements the ValueParser interface.
func Bool(v string) (interface{}, error) {
	if strings.EqualFold(v, "true") {
		return true, nil
	}
	if strings.EqualFold(v, "false") {
		return false, nil
	}
	return nil, errors.NewUnexpectedType(false, v)
}

// Float32 converts the given string into a float32 value.
// It implements the ValueParser interface.
func Float32(v string) (interface{}, error) {
	var f float32
	err := sscanf(v, "%f", &f)
	return f, err
}

// Float64 converts the given string into a float64 value.
// It implements the ValueParser interface.
func Float64(v string) (interface{}, error) {
	var f float64
	err := sscanf(v, "%f", &f)
	return f, err
}

// Int converts the given string into a int value.
// It implements the ValueParser interface.
func Int(v string) (interface{}, error) {
	var i int
	err := sscanf(v, "%d", &i)
	return i, err
}

// Int8 converts the given string into a int8 value.
// It implements the ValueParser interface.
func Int8(v string) (interface{}, error) {
	var i int8
	err := sscanf(v, "%d", &i)
	return i, err
}

// Int16 converts the given string into a int16 value.
// It implements the ValueParser interface.
func Int16(v string) (interface{}, error) {
	var i int16
	err := sscanf(v, "%d", &i)
	return i, err
}

// Int32 converts the given string into a int32 value.
// It implements the ValueParser interface.
func Int32(v string) (interface{}, error) {
	var i int32
	err := sscanf(v, "%d", &i)
	return i, err
}

// Int64 converts the given string into a int64 value.
// It implements the ValueParser interface.
func Int64(v string) (interface{}, error) {
	var i int64
	err := sscanf(v, "%d", &i)
	return i, err
}

// Uint converts the given string into a uint value.
// It implements the ValueParser interface.
func Uint(v string) (interface{}, error) {
	var i uint
	err := sscanf(v, "%d", &i)
	return i, err
}

// Uint8 converts the given string into a uint8 value.
// It implements the ValueParser interface.
func Uint8(v string) (interface{}, error) {
	var i uint8
	err := sscanf(v, "%d", &i)
	return i, err
}

// Uint16 converts the given string into a uint16 value.
// It implements the ValueParser interface.
func Uint16(v string) (interface{}, error) {
	var i uint16
	err := sscanf(v, "%d", &i)
	return i, err
}

// Uint32 converts the given string into a uint32 value.
// It implements the ValueParser interface.
func Uint32(v string) (interface{}, error) {
	var i uint32
	err := sscanf(v, "%d", &i)
	return i, err
}

// Uint64 converts the given string into a uint64 value.
// It implements the ValueParser interface.
func Uint64(v string) (interface{}, error) {
	var i uint64
	err := sscanf(v, "%d", &i)
	return i, err
}

// String is the identity ValueParser filled in automatically by AddArgument
// if no other ValueParser is used.
func String(v string) (interface{}, error) {
	return v, nil
}

func sscanf(s, f string, p interface{}) error {
	n, err := fmt.Sscanf(s, f, p)
	if err != nil {
		return err
	}
	if n != 1 {
		return errors.Errorf("%d != 1", n)
	}
	return nil
}

// ArgumentOption configures an Argument during AddArgument.
type ArgumentOption func(a *Argument) error

// Const sets the Const value used by zero-arity and '?' actions.
func Const(v interface{}) ArgumentOption {
	return func(a *Argument) error {
		a.Const = v
		return nil
	}
}

// Default sets the default value of an argument. Pass Suppress to mean
// "never materialize a default for this destination".
func Default(v interface{}) ArgumentOption {
	return func(a *Argument) error {
		a.Default = v
		return nil
	}
}

// Help sets the help string of an argument. Pass Suppress to hide the
// argument from formatted help.
func Help(v string) ArgumentOption {
	return func(a *Argument) error {
		a.Help = v
		return nil
	}
}

// MetaVar sets the displayed placeholder(s) for an argument's values.
func MetaVar(v ...string) ArgumentOption {
	return func(a *Argument) error {
		a.MetaVar = v
		return nil
	}
}

// Nargs sets the number of values the argument can accept.
func Nargs(v int) ArgumentOption {
	return func(a *Argument) error {
		if !isValidNarg(v) {
			return newDeclarationError(
				"%d is not a valid number of arguments", v)
		}
		a.Nargs = v
		return nil
	}
}

var alphaNumRegexp = regexp.MustCompile("[0-9A-Za-z]+")

// OptionStrings sets the argument's option strings (for optionals) or its
// single positional name. Classification against the container's prefix
// alphabet happens in ActionContainer.AddArgument, once the container is
// known; this option only records the raw tokens.
func OptionStrings(ops ...string) ArgumentOption {
	return func(a *Argument) error {
		if len(ops) == 0 {
			return newDeclarationError("no option strings specified")
		}
		a.OptionStrings = ops
		return nil
	}
}

// Required flags the Argument as required. It applies to optionals only:
// positionals get their required-ness from their arity (see
// Argument.Required), and AddArgument rejects Required on a positional
// with a DeclarationError.
func Required(a *Argument) error {
	a.Required = true
	return nil
}

// Type sets the Type (a ValueParser function) of the argument directly.
func Type(t ValueParser) ArgumentOption {
	return func(a *Argument) error {
		a.Type = t
		return nil
	}
}

// TypeName resolves a ValueParser by looking it up in the owning
// container's "type" registry, mirroring spec.md's options.type-by-name
// path. It must be applied after the Argument has been attached to its
// container (AddArgument guarantees this).
func TypeName(name string) ArgumentOption {
	return func(a *Argument) error {
		h := a.container.registryGet("type", name)
		fn, ok := h.(ValueParser)
		if !ok {
			return newDeclarationError("unknown type: %q", name)
		}
		a.Type = fn
		a.typeName = strings.ToLower(name)
		return nil
	}
}

// Choices restricts the argument's coerced values to the given set.
func Choices(cs *ArgumentChoices) ArgumentOption {
	return func(a *Argument) error {
		a.Choices = cs
		return nil
	}
}

// Bind records target as the Go variable this argument's final value
// should be copied into once a parse completes successfully. target must
// be a pointer to a type assignable from the argument's coerced value.
func Bind(target interface{}) ArgumentOption {
	return func(a *Argument) error {
		a.bindTarget = target
		return nil
	}
}

// createValue coerces a raw token through the argument's Type function and,
// if Choices is set, validates the result against it.
func (a *Argument) createValue(raw string) (interface{}, error) {
	v, err := a.Type(raw)
	if err != nil {
		return nil, newArgumentTypeError(a, raw, err)
	}
	if a.Choices != nil {
		key, ok := v.(string)
		if !ok {
			key = fmt.Sprint(v)
		}
		if !a.Choices.Contains(key) {
			return nil, newArgumentError(a,
				"invalid choice: %q (choose from %s)",
				raw, strings.Join(a.Choices.Keys(), ", "))
		}
	}
	return v, nil
}
