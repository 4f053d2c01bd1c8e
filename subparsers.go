package argparse

import "strings"

// subParsersAction is the special positional installed by AddSubParsers: it
// consumes the remainder of the command line as "subcommand name" plus
// whatever tokens follow, and delegates them to the matching child parser
// sharing the same Namespace (spec.md's PARSER arity).
type subParsersAction struct {
	parser        *ArgumentParser
	argument      *Argument
	dest          string
	title         string
	description   string
	parsersByName map[string]*ArgumentParser
	order         []string

	// pseudoActions carry one row per subcommand for the help
	// formatter: the name as the header, the child's Description as
	// the help text.
	pseudoActions []*Argument
}

// SubParsersOption configures a subParsersAction during AddSubParsers.
type SubParsersOption func(sp *subParsersAction)

// SubParsersDest names the Namespace key the chosen subcommand's name is
// recorded under. Defaults to "command".
func SubParsersDest(v string) SubParsersOption {
	return func(sp *subParsersAction) { sp.dest = v }
}

// SubParsersTitle gives the subparsers section a title in formatted help.
func SubParsersTitle(v string) SubParsersOption {
	return func(sp *subParsersAction) { sp.title = v }
}

// SubParsersDescription gives the subparsers section descriptive text in
// formatted help.
func SubParsersDescription(v string) SubParsersOption {
	return func(sp *subParsersAction) { sp.description = v }
}

// AddSubParsers declares the single positional that dispatches to named
// child parsers added via (*subParsersAction).AddParser. A parser may only
// call AddSubParsers once.
func (p *ArgumentParser) AddSubParsers(options ...SubParsersOption) (*subParsersAction, error) {
	if p.subparsersAction != nil {
		return nil, newDeclarationError("AddSubParsers called more than once")
	}
	sp := &subParsersAction{parser: p, dest: "command", parsersByName: map[string]*ArgumentParser{}}
	for _, o := range options {
		o(sp)
	}
	a, err := p.AddArgument(
		OptionStrings(sp.dest),
		Action("parsers"),
		Help(sp.description),
	)
	if err != nil {
		return nil, err
	}
	a.Action = sp.call
	sp.argument = a
	p.subparsersAction = sp
	return sp, nil
}

// AddParser declares a new named subcommand, constructing its child
// ArgumentParser with Prog defaulted to "<parent prog> <name>".
func (sp *subParsersAction) AddParser(name string, options ...ArgumentParserOption) (*ArgumentParser, error) {
	if _, exists := sp.parsersByName[name]; exists {
		return nil, newDeclarationError("subcommand %q already registered", name)
	}
	opts := append([]ArgumentParserOption{
		Prog(sp.parser.Prog + " " + name),
		Debug(sp.parser.debug),
		WithStdout(sp.parser.stdout()),
		WithStderr(sp.parser.stderr()),
	}, options...)
	child, err := NewArgumentParser(opts...)
	if err != nil {
		return nil, err
	}
	sp.parsersByName[name] = child
	sp.order = append(sp.order, name)
	sp.pseudoActions = append(sp.pseudoActions, &Argument{
		Dest: name,
		Help: child.Description,
	})
	if len(sp.argument.MetaVar) == 0 || strings.HasPrefix(sp.argument.MetaVar[0], "{") {
		sp.argument.MetaVar = []string{"{" + strings.Join(sp.order, ",") + "}"}
	}
	return child, nil
}

// Choices returns the subcommand names in the order they were added, for
// use in usage/help rendering or a Choices-restricted sibling argument.
func (sp *subParsersAction) Choices() []string {
	out := make([]string, len(sp.order))
	copy(out, sp.order)
	return out
}

// call is the subParsersAction's ArgumentAction: it records the chosen
// subcommand name under the action's own Dest, then re-enters the matching
// engine for the chosen child parser against the remaining tokens, sharing
// this parse's Namespace.
func (sp *subParsersAction) call(p *ArgumentParser, a *Argument, ns Namespace, values []interface{}, optionString string) error {
	if len(values) == 0 {
		return newArgumentError(a, "expected a subcommand name, choose from %s",
			strings.Join(sp.order, ", "))
	}
	tokens := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return newArgumentError(a, "unexpected subcommand token %v", v)
		}
		tokens[i] = s
	}
	name := tokens[0]
	child, ok := sp.parsersByName[name]
	if !ok {
		return newArgumentError(a, "invalid choice: %q (choose from %s)",
			name, strings.Join(sp.order, ", "))
	}
	ns.Set(a, name)

	extras, err := child.matchInto(tokens[1:], ns)
	if err != nil {
		return err
	}
	if p.pendingExtras != nil {
		*p.pendingExtras = append(*p.pendingExtras, extras...)
	}
	return child.boundArgs.setValues(ns)
}
