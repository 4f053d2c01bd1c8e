package argparse

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/skillian/errors"
	"github.com/skillian/textwrap"
)

// HelpFormatter renders a parser's usage line and full help text. The
// zero-value defaultFormatter (used when ArgumentParser.Formatter is nil)
// implements argparse's ordinary wrapped, sectioned layout; the variants in
// formatter_variants.go change one aspect of that behavior each.
type HelpFormatter interface {
	FormatUsage(p *ArgumentParser) (string, error)
	FormatHelp(p *ArgumentParser) (string, error)
}

// defaultFormatter is the HelpFormatter used when a parser doesn't name one
// of its own.
type defaultFormatter struct{}

// helpWidth returns the wrap width for help rendering: the COLUMNS
// environment hint minus 2 when set, else 78.
func helpWidth() int {
	if s := os.Getenv("COLUMNS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 2 {
			return n - 2
		}
	}
	return 78
}

func (defaultFormatter) FormatUsage(p *ArgumentParser) (string, error) {
	return formatUsage(p)
}

func (defaultFormatter) FormatHelp(p *ArgumentParser) (string, error) {
	return formatHelp(p, helpFormatOptions{})
}

// FormatUsage returns the parser's usage line, using its configured
// Formatter (or the default one).
func (p *ArgumentParser) FormatUsage() (string, error) {
	if p.Formatter != nil {
		return p.Formatter.FormatUsage(p)
	}
	return defaultFormatter{}.FormatUsage(p)
}

// FormatHelp returns the parser's full help text, using its configured
// Formatter (or the default one).
func (p *ArgumentParser) FormatHelp() (string, error) {
	if p.Formatter != nil {
		return p.Formatter.FormatHelp(p)
	}
	return defaultFormatter{}.FormatHelp(p)
}

// resolveMetaVar computes the display placeholder(s) for an argument's
// values: an explicit MetaVar wins, then a choices display, then the
// destination itself (uppercased for optionals).
func resolveMetaVar(a *Argument) []string {
	if len(a.MetaVar) > 0 {
		return a.MetaVar
	}
	if a.Nargs == 0 {
		return nil
	}
	name := a.Dest
	if a.Choices != nil {
		name = "{" + strings.Join(a.Choices.Keys(), ",") + "}"
	} else if a.isOptional {
		name = strings.ToUpper(name)
	}
	switch a.Nargs {
	case ZeroOrOne, ZeroOrMore, OneOrMore, Remainder, Parser:
		return []string{name}
	}
	n := a.Nargs
	if n < 1 {
		n = 1
	}
	out := make([]string, n)
	for i := range out {
		out[i] = name
	}
	return out
}

// usagePart renders one argument's fragment of the usage line.
func usagePart(a *Argument) string {
	mv := resolveMetaVar(a)
	if !a.isOptional {
		switch a.Nargs {
		case ZeroOrOne:
			return "[" + strings.Join(mv, " ") + "]"
		case ZeroOrMore:
			return "[" + strings.Join(mv, " ") + " ...]"
		case OneOrMore:
			return strings.Join(mv, " ") + " [" + strings.Join(mv, " ") + " ...]"
		case Remainder:
			return "[" + strings.Join(mv, " ") + " ...]"
		case Parser:
			return strings.Join(mv, " ") + " ..."
		default:
			return strings.Join(mv, " ")
		}
	}
	head := getShortestArgOptionString(a)
	var inner string
	if a.Nargs == 0 {
		inner = head
	} else {
		inner = head + " " + strings.Join(mv, " ")
	}
	if a.Required {
		return inner
	}
	return "[" + inner + "]"
}

// formatUsage lays out the "usage: prog ..." line, grouping mutually
// exclusive members together and wrapping with textwrap the way the teacher
// wraps help text.
func formatUsage(p *ArgumentParser) (string, error) {
	if p.Usage != "" {
		return "usage: " + p.Prog + " " + p.Usage + "\n", nil
	}
	var parts []string
	rendered := map[*Argument]bool{}

	renderMutex := func(g *MutexGroup) string {
		pieces := make([]string, 0, len(g.actions))
		for _, a := range g.actions {
			rendered[a] = true
			if a.Help == Suppress {
				continue
			}
			pieces = append(pieces, usagePart(a))
		}
		open, close := "[", "]"
		if g.Required {
			open, close = "(", ")"
		}
		return open + strings.Join(pieces, " | ") + close
	}

	mutexRendered := map[*MutexGroup]bool{}
	for _, a := range p.Optionals() {
		if rendered[a] {
			continue
		}
		if gs := p.mutexMembers[a]; len(gs) > 0 && !mutexRendered[gs[0]] {
			mutexRendered[gs[0]] = true
			parts = append(parts, renderMutex(gs[0]))
			continue
		}
		if a.Help == Suppress {
			continue
		}
		parts = append(parts, usagePart(a))
	}
	for _, a := range p.Positionals() {
		if a.Help == Suppress {
			continue
		}
		parts = append(parts, usagePart(a))
	}

	if len(parts) == 0 {
		return "usage: " + p.Prog + "\n", nil
	}
	prefix := "usage: " + p.Prog + " "
	width := helpWidth() - len(prefix)
	if width < 1 {
		width = 1
	}
	lines := textwrap.SliceLines(parts, width, " ")
	return prefix + strings.Join(lines, "\n"+strings.Repeat(" ", len(prefix))) + "\n", nil
}

// interpolateHelp expands %name% references in an argument's help text.
// The recognized names are listed explicitly: prog, dest, default, const,
// choices, and metavar. An attribute whose value is Suppress renders as
// nothing; choices render comma-joined.
func interpolateHelp(p *ArgumentParser, a *Argument, text string) string {
	if !strings.Contains(text, "%") {
		return text
	}
	display := func(v interface{}) string {
		if v == nil || v == Suppress {
			return ""
		}
		return fmt.Sprint(v)
	}
	var choices string
	if a.Choices != nil {
		choices = strings.Join(a.Choices.Keys(), ", ")
	}
	return strings.NewReplacer(
		"%prog%", p.Prog,
		"%dest%", a.Dest,
		"%default%", display(a.Default),
		"%const%", display(a.Const),
		"%choices%", choices,
		"%metavar%", strings.Join(resolveMetaVar(a), " "),
	).Replace(text)
}

type helpFormatOptions struct {
	rawDescription bool
	rawHelpText    bool
	showDefaults   bool
}

// formatHelp lays out the full help text: usage, description, one section
// per argument group (plus the implicit "positional arguments" and
// "optional arguments" sections for ungrouped actions), and the epilog.
func formatHelp(p *ArgumentParser, opts helpFormatOptions) (text string, err error) {
	defer func() {
		if x := recover(); x != nil {
			if e, ok := x.(error); ok {
				err = errors.CreateError(e, nil, err, 0)
			} else {
				err = errors.ErrorfWithContext(err, "%v", x)
			}
		}
	}()

	var b strings.Builder

	usage, uerr := p.FormatUsage()
	if uerr != nil {
		return "", uerr
	}
	b.WriteString(usage)
	b.WriteString("\n")

	if p.Description != "" {
		if opts.rawDescription {
			b.WriteString(p.Description)
		} else {
			b.WriteString(textwrap.String(p.Description, helpWidth()))
		}
		b.WriteString("\n\n")
	}

	grouped := map[*Argument]bool{}
	for _, g := range p.groups {
		for _, a := range g.actions {
			grouped[a] = true
		}
	}
	var ungroupedPositionals, ungroupedOptionals []*Argument
	for _, a := range p.Positionals() {
		if !grouped[a] {
			ungroupedPositionals = append(ungroupedPositionals, a)
		}
	}
	for _, a := range p.Optionals() {
		if !grouped[a] {
			ungroupedOptionals = append(ungroupedOptionals, a)
		}
	}

	sections := [][]*Argument{ungroupedPositionals, ungroupedOptionals}
	for _, g := range p.groups {
		sections = append(sections, g.actions)
	}
	if sp := p.subparsersAction; sp != nil {
		sections = append(sections, sp.pseudoActions)
	}
	indent := helpPosition(sections)

	for _, g := range p.groups {
		if len(g.actions) == 0 {
			continue
		}
		title := g.Title
		if title == "" {
			title = "arguments"
		}
		writeSection(&b, p, title+":", g.Description, g.actions, indent, opts)
	}
	writeSection(&b, p, "positional arguments:", "", ungroupedPositionals, indent, opts)
	writeSection(&b, p, "optional arguments:", "", ungroupedOptionals, indent, opts)

	if sp := p.subparsersAction; sp != nil && len(sp.pseudoActions) > 0 {
		title := sp.title
		if title == "" {
			title = "subcommands"
		}
		writeSection(&b, p, title+":", sp.description, sp.pseudoActions, indent, opts)
	}

	if p.Epilog != "" {
		if opts.rawDescription {
			b.WriteString(p.Epilog)
		} else {
			b.WriteString(textwrap.String(p.Epilog, helpWidth()))
		}
		b.WriteString("\n")
	}

	out := b.String()
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	out = strings.TrimLeft(out, "\n")
	return strings.TrimRight(out, "\n") + "\n", nil
}

// helpPositionMax clamps the emergent help column so one very long action
// header can't push every help string to the far right of the page.
const helpPositionMax = 24

// helpPosition computes the column help strings start in: two plus the
// longest visible action header (headers themselves sit behind a two-space
// indent), clamped to helpPositionMax.
func helpPosition(sections [][]*Argument) int {
	longest := 0
	for _, actions := range sections {
		for _, a := range actions {
			if a.Help == Suppress {
				continue
			}
			if n := 2 + len(argumentHeader(a)); n > longest {
				longest = n
			}
		}
	}
	pos := longest + 2
	if pos > helpPositionMax {
		pos = helpPositionMax
	}
	return pos
}

func writeSection(b *strings.Builder, p *ArgumentParser, title, description string, actions []*Argument, indent int, opts helpFormatOptions) {
	visible := make([]*Argument, 0, len(actions))
	for _, a := range actions {
		if a.Help == Suppress {
			continue
		}
		visible = append(visible, a)
	}
	if len(visible) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	if description != "" {
		b.WriteString(textwrap.String(description, helpWidth()))
		b.WriteString("\n")
	}
	for _, a := range visible {
		head := argumentHeader(a)
		b.WriteString("  ")
		b.WriteString(head)
		col := 2 + len(head)
		helpText := a.Help
		if opts.showDefaults && a.Default != nil && a.Default != Suppress &&
			!strings.Contains(helpText, "%default%") &&
			(a.isOptional || (a.Nargs != ZeroOrOne && a.Nargs != ZeroOrMore)) {
			helpText = strings.TrimRight(helpText, " ")
			if helpText != "" {
				helpText += " "
			}
			helpText += "(default: " + formatDefault(a.Default) + ")"
		}
		helpText = interpolateHelp(p, a, helpText)
		if helpText == "" {
			b.WriteString("\n")
			continue
		}
		if col <= indent-2 {
			b.WriteString(strings.Repeat(" ", indent-col))
		} else {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", indent))
		}
		var wrapped string
		if opts.rawHelpText {
			wrapped = helpText
		} else {
			w := helpWidth() - indent
			if w < 1 {
				w = 1
			}
			wrapped = textwrap.String(helpText, w)
		}
		lines := strings.Split(wrapped, "\n")
		b.WriteString(lines[0])
		b.WriteString("\n")
		for _, l := range lines[1:] {
			b.WriteString(strings.Repeat(" ", indent))
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func formatDefault(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func argumentHeader(a *Argument) string {
	if !a.isOptional {
		mv := resolveMetaVar(a)
		if len(mv) == 0 {
			return a.Dest
		}
		return strings.Join(mv, " ")
	}
	mv := resolveMetaVar(a)
	parts := make([]string, len(a.OptionStrings))
	for i, op := range a.OptionStrings {
		if len(mv) == 0 {
			parts[i] = op
		} else {
			parts[i] = op + " " + strings.Join(mv, " ")
		}
	}
	return strings.Join(parts, ", ")
}

func getShortestArgOptionString(a *Argument) string {
	switch len(a.OptionStrings) {
	case 0:
		return ""
	case 1:
		return a.OptionStrings[0]
	default:
		short := a.OptionStrings[0]
		for _, s := range a.OptionStrings[1:] {
			if len(s) < len(short) {
				short = s
			}
		}
		return short
	}
}
