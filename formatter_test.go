package argparse_test

import (
	"strings"
	"testing"

	"github.com/gocmdline/argparse"
)

func TestFormatHelpListsArguments(t *testing.T) {
	p := newTestParser(t, argparse.Description("does a thing"))
	p.MustAddArgument(
		argparse.OptionStrings("-n", "--count"),
		argparse.Type(argparse.Int),
		argparse.Help("how many times"))
	p.MustAddArgument(
		argparse.OptionStrings("file"),
		argparse.Help("input file"))

	text, err := p.FormatHelp()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"usage: prog", "does a thing", "-n COUNT, --count COUNT", "file", "positional arguments:", "optional arguments:"} {
		if !strings.Contains(text, want) {
			t.Fatalf("help text missing %q:\n%s", want, text)
		}
	}
}

func TestArgumentDefaultsHelpFormatter(t *testing.T) {
	p := newTestParser(t, argparse.WithFormatter(argparse.ArgumentDefaultsHelpFormatter{}))
	p.MustAddArgument(
		argparse.OptionStrings("--retries"),
		argparse.Type(argparse.Int),
		argparse.Default(3),
		argparse.Help("number of retries"))

	text, err := p.FormatHelp()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "(default: 3)") {
		t.Fatalf("expected default annotation in:\n%s", text)
	}
}

func TestFormatUsageWithAndWithoutHelp(t *testing.T) {
	p := newTestParser(t, argparse.AddHelp(false))
	u, err := p.FormatUsage()
	if err != nil {
		t.Fatal(err)
	}
	if u != "usage: prog\n" {
		t.Fatalf("usage = %q", u)
	}

	p = newTestParser(t)
	if u, err = p.FormatUsage(); err != nil {
		t.Fatal(err)
	}
	if u != "usage: prog [-h]\n" {
		t.Fatalf("usage = %q", u)
	}
}

func TestHelpInterpolation(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(
		argparse.OptionStrings("--retries"),
		argparse.Type(argparse.Int),
		argparse.Default(3),
		argparse.Help("retry count for %prog%, defaults to %default%"))

	text, err := p.FormatHelp()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "retry count for prog, defaults to 3") {
		t.Fatalf("interpolation missing in:\n%s", text)
	}
}

func TestRawTextFormatterPreservesNewlines(t *testing.T) {
	p := newTestParser(t,
		argparse.WithFormatterName("RawTextHelpFormatter"),
		argparse.Description("line one\n  line two"))
	p.MustAddArgument(
		argparse.OptionStrings("--mode"),
		argparse.Help("pick a mode"))

	text, err := p.FormatHelp()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "line one\n  line two") {
		t.Fatalf("description was re-wrapped:\n%s", text)
	}
}

func TestUnknownFormatterName(t *testing.T) {
	_, err := argparse.NewArgumentParser(
		argparse.Prog("prog"),
		argparse.WithFormatterName("FancyFormatter"))
	if err == nil {
		t.Fatal("expected unknown-formatter declaration error")
	}
}
