package argparse

import (
	"regexp"
	"strings"
)

// negativeNumberRegexp recognizes tokens that look like a negative number
// (e.g. "-1", "-3.14", "-.5"), used by both optional recognition (4.3.3) and
// container construction (4.1's "has-negative-option" flag).
var negativeNumberRegexp = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// ActionContainer is the registry of declared arguments, option-string
// index, default store, group memberships, and conflict policy described in
// spec.md §4.1. ArgumentParser embeds one.
type ActionContainer struct {
	actions           []*Argument
	optionStringIndex map[string]*Argument
	defaults          map[string]interface{}
	argumentDefault   interface{}
	groups            []*Group
	mutexGroups       []*MutexGroup
	mutexMembers      map[*Argument][]*MutexGroup

	prefixChars         string
	fromFilePrefixChars string
	conflictHandler     string

	// hasNegativeNumberOptionals accumulates every declared option
	// string that itself looks like a negative number. A non-empty list
	// disables the "negative-number-looking tokens are positional"
	// shortcut in 4.3.3 (see DESIGN.md for why a list was chosen over a
	// boolean).
	hasNegativeNumberOptionals []string

	registries map[string]map[string]interface{}
}

// newActionContainer builds a container with the given prefix alphabet and
// conflict handler ("error" or "resolve"), seeding the built-in type
// registry.
func newActionContainer(prefixChars, conflictHandler string) *ActionContainer {
	c := &ActionContainer{
		optionStringIndex: make(map[string]*Argument),
		prefixChars:       prefixChars,
		conflictHandler:   conflictHandler,
		registries:        map[string]map[string]interface{}{},
	}
	c.Register("type", "string", ValueParser(String))
	c.Register("type", "str", ValueParser(String))
	c.Register("type", "int", ValueParser(Int))
	c.Register("type", "int8", ValueParser(Int8))
	c.Register("type", "int16", ValueParser(Int16))
	c.Register("type", "int32", ValueParser(Int32))
	c.Register("type", "int64", ValueParser(Int64))
	c.Register("type", "uint", ValueParser(Uint))
	c.Register("type", "uint8", ValueParser(Uint8))
	c.Register("type", "uint16", ValueParser(Uint16))
	c.Register("type", "uint32", ValueParser(Uint32))
	c.Register("type", "uint64", ValueParser(Uint64))
	c.Register("type", "float32", ValueParser(Float32))
	c.Register("type", "float64", ValueParser(Float64))
	c.Register("type", "bool", ValueParser(Bool))
	for tag, preset := range builtinActionPresets {
		c.Register("action", tag, preset)
	}
	return c
}

// Register binds a handler into category (conventionally "action" or
// "type") under name. Unknown names passed to Action/TypeName are looked up
// here; register your own to extend either closed set (spec.md §4.1).
func (c *ActionContainer) Register(category, name string, handler interface{}) {
	m, ok := c.registries[category]
	if !ok {
		m = map[string]interface{}{}
		c.registries[category] = m
	}
	m[strings.ToLower(name)] = handler
}

func (c *ActionContainer) registryGet(category, name string) interface{} {
	if m, ok := c.registries[category]; ok {
		return m[strings.ToLower(name)]
	}
	return nil
}

// SetDefaults merges options into the container-level default map and, for
// any already-declared action whose destination matches a key, overwrites
// that action's Default too.
func (c *ActionContainer) SetDefaults(options map[string]interface{}) {
	if c.defaults == nil {
		c.defaults = make(map[string]interface{}, len(options))
	}
	for k, v := range options {
		c.defaults[k] = v
		for _, a := range c.actions {
			if a.Dest == k {
				a.Default = v
			}
		}
	}
}

// looksLikeOption reports whether s begins with one of the container's
// prefix characters.
func (c *ActionContainer) looksLikeOption(s string) bool {
	return s != "" && strings.ContainsRune(c.prefixChars, rune(s[0]))
}

// prefixRunLen counts the leading run of prefix characters in s.
func (c *ActionContainer) prefixRunLen(s string) int {
	n := 0
	for n < len(s) && strings.ContainsRune(c.prefixChars, rune(s[n])) {
		n++
	}
	return n
}

// deriveDest infers an optional's destination from its option strings: the
// first "long" (two-prefix-character) token if any, else the first "short"
// one, stripped of its leading prefix run with '-' replaced by '_'.
func (c *ActionContainer) deriveDest(optionStrings []string) (string, error) {
	var long, short string
	for _, op := range optionStrings {
		n := c.prefixRunLen(op)
		if n >= 2 && long == "" {
			long = op
		} else if n == 1 && short == "" {
			short = op
		}
	}
	chosen := long
	if chosen == "" {
		chosen = short
	}
	if chosen == "" {
		chosen = optionStrings[0]
	}
	n := c.prefixRunLen(chosen)
	dest := strings.ReplaceAll(chosen[n:], "-", "_")
	if dest == "" {
		return "", newDeclarationError(
			"could not derive a destination name from %v", optionStrings)
	}
	return dest, nil
}

// AddArgument classifies, defaults, and registers a new Argument, applying
// every ArgumentOption in order first (spec.md §4.1).
func (c *ActionContainer) AddArgument(options ...ArgumentOption) (*Argument, error) {
	a := &Argument{container: c}
	for _, o := range options {
		if err := o(a); err != nil {
			return nil, err
		}
	}

	positional := len(a.OptionStrings) == 0 || !c.looksLikeOption(a.OptionStrings[0])
	if positional {
		if len(a.OptionStrings) != 1 {
			return nil, newDeclarationError(
				"positional arguments take exactly one name, got %v",
				a.OptionStrings)
		}
		a.isOptional = false
		if a.Required {
			return nil, newDeclarationError(
				"required is an invalid argument for positionals")
		}
		if a.Dest == "" {
			a.Dest = a.OptionStrings[0]
		}
		if !a.Required {
			switch a.Nargs {
			case ZeroOrOne:
			case ZeroOrMore:
				a.Required = a.Default == nil
			default:
				a.Required = true
			}
		}
	} else {
		for _, op := range a.OptionStrings {
			if !c.looksLikeOption(op) {
				return nil, newDeclarationError(
					"optional argument %q must start with a prefix character", op)
			}
		}
		a.isOptional = true
		if a.Dest == "" {
			dest, err := c.deriveDest(a.OptionStrings)
			if err != nil {
				return nil, err
			}
			a.Dest = dest
		}
	}

	if a.Default == nil {
		if v, ok := c.defaults[a.Dest]; ok {
			a.Default = v
		} else if c.argumentDefault != nil {
			a.Default = c.argumentDefault
		}
	}

	if a.Action == nil && a.ActionName != "parsers" {
		builtinActionPresets["store"](a)
		a.ActionName = "store"
	}
	if a.Type == nil {
		a.Type = String
	}

	switch a.ActionName {
	case "store", "append":
		if a.Nargs == 0 {
			return nil, newDeclarationError(
				"nargs for %s actions must not be 0", a.ActionName)
		}
	case "store_const", "append_const", "help", "version", "count":
		if a.Nargs != 0 {
			return nil, newDeclarationError(
				"nargs for %s actions must be 0", a.ActionName)
		}
	}

	if a.isOptional {
		if err := c.checkConflict(a); err != nil {
			return nil, err
		}
		for _, op := range a.OptionStrings {
			c.optionStringIndex[op] = a
			if negativeNumberRegexp.MatchString(op) {
				c.hasNegativeNumberOptionals = append(c.hasNegativeNumberOptionals, op)
			}
		}
	}

	c.actions = append(c.actions, a)
	logger.Debug("added argument dest=%s optional=%v nargs=%d",
		a.Dest, a.isOptional, a.Nargs)
	return a, nil
}

// checkConflict applies the container's conflict handler to any option
// strings of a that are already registered.
func (c *ActionContainer) checkConflict(a *Argument) error {
	var conflicting []string
	for _, op := range a.OptionStrings {
		if _, ok := c.optionStringIndex[op]; ok {
			conflicting = append(conflicting, op)
		}
	}
	if len(conflicting) == 0 {
		return nil
	}
	if c.conflictHandler != conflictResolve {
		return newDeclarationError(
			"conflicting option string(s): %s", strings.Join(conflicting, ", "))
	}
	for _, op := range conflicting {
		prior := c.optionStringIndex[op]
		prior.OptionStrings = removeString(prior.OptionStrings, op)
		delete(c.optionStringIndex, op)
		if len(prior.OptionStrings) == 0 {
			c.removeAction(prior)
		}
	}
	return nil
}

func (c *ActionContainer) removeAction(a *Argument) {
	out := c.actions[:0]
	for _, x := range c.actions {
		if x != a {
			out = append(out, x)
		}
	}
	c.actions = out
}

func removeString(ss []string, v string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// Positionals returns every declared positional action, in declaration
// order.
func (c *ActionContainer) Positionals() []*Argument {
	var out []*Argument
	for _, a := range c.actions {
		if !a.isOptional {
			out = append(out, a)
		}
	}
	return out
}

// Optionals returns every declared optional action, in declaration order.
func (c *ActionContainer) Optionals() []*Argument {
	var out []*Argument
	for _, a := range c.actions {
		if a.isOptional {
			out = append(out, a)
		}
	}
	return out
}

// AddArgumentGroup creates a titled, non-exclusive view over this
// container's actions.
func (c *ActionContainer) AddArgumentGroup(title, description string) *Group {
	g := &Group{container: c, Title: title, Description: description}
	c.groups = append(c.groups, g)
	return g
}

// AddMutuallyExclusiveGroup creates a group whose members may not both
// appear with non-default values on the same command line.
func (c *ActionContainer) AddMutuallyExclusiveGroup(required bool) *MutexGroup {
	g := &MutexGroup{Group: Group{container: c}, Required: required}
	c.mutexGroups = append(c.mutexGroups, g)
	return g
}

func (c *ActionContainer) registerMutexMember(a *Argument, g *MutexGroup) {
	if c.mutexMembers == nil {
		c.mutexMembers = map[*Argument][]*MutexGroup{}
	}
	c.mutexMembers[a] = append(c.mutexMembers[a], g)
}

// mutexForbidden returns, for a, every other action it cannot appear
// alongside — the union of its mutex groups' other members.
func (c *ActionContainer) mutexForbidden(a *Argument) []*Argument {
	var out []*Argument
	seen := map[*Argument]bool{a: true}
	for _, g := range c.mutexMembers[a] {
		for _, m := range g.actions {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// addContainerActions re-creates other's groups and mutex groups by title
// and re-adds every one of its actions, used for parent-parser composition
// (spec.md §4.1's _addContainerActions). Two groups with the same title in
// c is an error.
func (c *ActionContainer) addContainerActions(other *ActionContainer) error {
	existingTitles := map[string]bool{}
	for _, g := range c.groups {
		if g.Title != "" {
			existingTitles[g.Title] = true
		}
	}
	groupMap := map[*Group]*Group{}
	for _, og := range other.groups {
		if og.Title != "" && existingTitles[og.Title] {
			return newDeclarationError("duplicate group title %q", og.Title)
		}
		groupMap[og] = c.AddArgumentGroup(og.Title, og.Description)
	}
	mutexMap := map[*MutexGroup]*MutexGroup{}
	for _, omg := range other.mutexGroups {
		mutexMap[omg] = c.AddMutuallyExclusiveGroup(omg.Required)
	}

	memberOf := func(a *Argument) (*Group, bool) {
		for _, og := range other.groups {
			for _, m := range og.actions {
				if m == a {
					return og, true
				}
			}
		}
		return nil, false
	}
	mutexMemberOf := func(a *Argument) []*MutexGroup {
		return other.mutexMembers[a]
	}

	for _, a := range other.actions {
		if a.isOptional {
			if err := c.checkConflict(a); err != nil {
				return err
			}
			for _, op := range a.OptionStrings {
				c.optionStringIndex[op] = a
			}
		}
		a.container = c
		c.actions = append(c.actions, a)
		if og, ok := memberOf(a); ok {
			ng := groupMap[og]
			ng.actions = append(ng.actions, a)
		}
		for _, omg := range mutexMemberOf(a) {
			nmg := mutexMap[omg]
			nmg.actions = append(nmg.actions, a)
			c.registerMutexMember(a, nmg)
		}
	}
	return nil
}
