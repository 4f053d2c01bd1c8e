package argparse_test

import (
	"errors"
	"testing"

	"github.com/gocmdline/argparse"
)

func newTestParser(t *testing.T, opts ...argparse.ArgumentParserOption) *argparse.ArgumentParser {
	t.Helper()
	t.Setenv("COLUMNS", "80")
	base := append([]argparse.ArgumentParserOption{
		argparse.Prog("prog"),
		argparse.Debug(true),
	}, opts...)
	p, err := argparse.NewArgumentParser(base...)
	if err != nil {
		t.Fatalf("NewArgumentParser: %v", err)
	}
	return p
}

func TestStoreAndTypeCoercion(t *testing.T) {
	p := newTestParser(t, argparse.Description("sample"))

	count, err := p.AddArgument(
		argparse.OptionStrings("-c", "--count"),
		argparse.Type(argparse.Int),
		argparse.Help("how many"))
	if err != nil {
		t.Fatal(err)
	}

	ns, err := p.ParseArgs([]string{"--count", "12345"})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := ns.Get(count)
	if !ok {
		t.Fatal("count not set")
	}
	if v.(int) != 12345 {
		t.Fatalf("got %v, want 12345", v)
	}
}

func TestPositionalsAndDefaults(t *testing.T) {
	p := newTestParser(t)
	src := p.MustAddArgument(argparse.OptionStrings("source"))
	dst := p.MustAddArgument(argparse.OptionStrings("dest"))
	verbose := p.MustAddArgument(
		argparse.OptionStrings("-v", "--verbose"),
		argparse.Action("store_true"))

	ns, err := p.ParseArgs([]string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := ns.Get(src); s != "a.txt" {
		t.Fatalf("source = %v", s)
	}
	if d, _ := ns.Get(dst); d != "b.txt" {
		t.Fatalf("dest = %v", d)
	}
	if v, _ := ns.Get(verbose); v != false {
		t.Fatalf("verbose default = %v", v)
	}
}

func TestLongOptionAbbreviation(t *testing.T) {
	p := newTestParser(t)
	verbose := p.MustAddArgument(
		argparse.OptionStrings("--verbose"),
		argparse.Action("store_true"))

	ns, err := p.ParseArgs([]string{"--verb"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(verbose); v != true {
		t.Fatalf("verbose = %v", v)
	}
}

func TestAmbiguousAbbreviation(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(argparse.OptionStrings("--verbose"), argparse.Action("store_true"))
	p.MustAddArgument(argparse.OptionStrings("--version"), argparse.Action("store_true"))

	_, err := p.ParseArgs([]string{"--ver"})
	if err == nil {
		t.Fatal("expected ambiguous option error")
	}
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 2 {
		t.Fatalf("expected SystemExit(2), got %v", err)
	}
}

func TestShortOptionClustering(t *testing.T) {
	p := newTestParser(t)
	x := p.MustAddArgument(argparse.OptionStrings("-x"), argparse.Action("store_true"))
	v := p.MustAddArgument(argparse.OptionStrings("-v"), argparse.Action("store_true"))
	f := p.MustAddArgument(argparse.OptionStrings("-f"), argparse.Type(argparse.String))

	ns, err := p.ParseArgs([]string{"-xvf", "out.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := ns.Get(x); g != true {
		t.Fatal("x not set")
	}
	if g, _ := ns.Get(v); g != true {
		t.Fatal("v not set")
	}
	if g, _ := ns.Get(f); g != "out.txt" {
		t.Fatalf("f = %v", g)
	}
}

func TestChoicesValidation(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(
		argparse.OptionStrings("--color"),
		argparse.Choices(argparse.NewChoiceValues("red", "green", "blue")))

	if _, err := p.ParseArgs([]string{"--color", "purple"}); err == nil {
		t.Fatal("expected invalid choice error")
	}
	ns, err := p.ParseArgs([]string{"--color", "green"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.GetByName("color"); v != "green" {
		t.Fatalf("color = %v", v)
	}
}

func TestRequiredPositionalMissing(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(argparse.OptionStrings("file"))

	_, err := p.ParseArgs([]string{})
	if err == nil {
		t.Fatal("expected missing-required error")
	}
}

func TestAppendAction(t *testing.T) {
	p := newTestParser(t)
	inc := p.MustAddArgument(
		argparse.OptionStrings("-I"),
		argparse.Action("append"))

	ns, err := p.ParseArgs([]string{"-I", "a", "-I", "b"})
	if err != nil {
		t.Fatal(err)
	}
	v, _ := ns.Get(inc)
	vs := v.([]interface{})
	if len(vs) != 2 || vs[0] != "a" || vs[1] != "b" {
		t.Fatalf("got %v", vs)
	}
}

func TestCountAction(t *testing.T) {
	p := newTestParser(t)
	verbosity := p.MustAddArgument(
		argparse.OptionStrings("-v"),
		argparse.Action("count"),
		argparse.Default(0))

	ns, err := p.ParseArgs([]string{"-v", "-v", "-v"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(verbosity); v != 3 {
		t.Fatalf("verbosity = %v", v)
	}
}

func TestDoubleDashEndsOptions(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(argparse.OptionStrings("--flag"), argparse.Action("store_true"))
	files := p.MustAddArgument(argparse.OptionStrings("file"), argparse.Nargs(argparse.OneOrMore))

	ns, err := p.ParseArgs([]string{"--", "--flag", "b.txt"})
	if err != nil {
		t.Fatal(err)
	}
	v, _ := ns.Get(files)
	vs := v.([]interface{})
	if len(vs) != 2 || vs[0] != "--flag" || vs[1] != "b.txt" {
		t.Fatalf("got %v", vs)
	}
}

func TestHelpExits(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseArgs([]string{"-h"})
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 0 {
		t.Fatalf("expected SystemExit(0) from -h, got %v", err)
	}
}

func TestVersionExits(t *testing.T) {
	p := newTestParser(t, argparse.ProgVersion("prog 1.2.3"))
	p.MustAddArgument(argparse.OptionStrings("--version"), argparse.Action("version"))

	_, err := p.ParseArgs([]string{"--version"})
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 0 {
		t.Fatalf("expected SystemExit(0) from --version, got %v", err)
	}
}

func TestUnrecognizedArgumentErrors(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseArgs([]string{"--nope"})
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 2 {
		t.Fatalf("expected SystemExit(2), got %v", err)
	}
}

func TestBoundArgument(t *testing.T) {
	p := newTestParser(t)
	var count int
	p.MustAddArgument(
		argparse.OptionStrings("--count"),
		argparse.Type(argparse.Int),
		argparse.Bind(&count))

	if _, err := p.ParseArgs([]string{"--count", "7"}); err != nil {
		t.Fatal(err)
	}
	if count != 7 {
		t.Fatalf("count = %d, want 7", count)
	}
}

func TestParseKnownArgsReturnsExtras(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(argparse.OptionStrings("-x"), argparse.Action("store_true"))

	_, extras, err := p.ParseKnownArgs([]string{"-x", "--unknown", "leftover"})
	if err != nil {
		t.Fatal(err)
	}
	if len(extras) != 2 {
		t.Fatalf("extras = %v", extras)
	}
}

func TestExplicitValueEqualsSeparateValue(t *testing.T) {
	for _, args := range [][]string{
		{"--foo", "baz"},
		{"--foo=baz"},
		{"-f", "baz"},
		{"-fbaz"},
	} {
		p := newTestParser(t)
		foo := p.MustAddArgument(argparse.OptionStrings("-f", "--foo"))
		ns, err := p.ParseArgs(args)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if v, _ := ns.Get(foo); v != "baz" {
			t.Fatalf("%v: foo = %v", args, v)
		}
	}
}

func TestOptionMissingValueErrors(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(argparse.OptionStrings("-f"))

	_, err := p.ParseArgs([]string{"-f"})
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 2 {
		t.Fatalf("expected SystemExit(2), got %v", err)
	}
}

func TestClusterWithExplicitValue(t *testing.T) {
	p := newTestParser(t)
	x := p.MustAddArgument(argparse.OptionStrings("-x"), argparse.Action("store_true"))
	v := p.MustAddArgument(argparse.OptionStrings("-v"), argparse.Action("store_true"))
	f := p.MustAddArgument(argparse.OptionStrings("-f"))

	ns, err := p.ParseArgs([]string{"-xvf=out.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := ns.Get(x); g != true {
		t.Fatal("x not set")
	}
	if g, _ := ns.Get(v); g != true {
		t.Fatal("v not set")
	}
	if g, _ := ns.Get(f); g != "out.txt" {
		t.Fatalf("f = %v", g)
	}
}

func TestRemainderKeepsOptionLikeTokens(t *testing.T) {
	p := newTestParser(t)
	cmd := p.MustAddArgument(argparse.OptionStrings("cmd"))
	rest := p.MustAddArgument(argparse.OptionStrings("rest"), argparse.Nargs(argparse.Remainder))

	ns, err := p.ParseArgs([]string{"run", "-v", "--flag", "x"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(cmd); v != "run" {
		t.Fatalf("cmd = %v", v)
	}
	v, _ := ns.Get(rest)
	vs := v.([]interface{})
	if len(vs) != 3 || vs[0] != "-v" || vs[1] != "--flag" || vs[2] != "x" {
		t.Fatalf("rest = %v", vs)
	}
}

func TestZeroOrOneConstAndDefault(t *testing.T) {
	newP := func() (*argparse.ArgumentParser, *argparse.Argument) {
		p := newTestParser(t)
		foo := p.MustAddArgument(
			argparse.OptionStrings("--foo"),
			argparse.Nargs(argparse.ZeroOrOne),
			argparse.Const("c"),
			argparse.Default("d"))
		return p, foo
	}

	p, foo := newP()
	ns, err := p.ParseArgs([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(foo); v != "d" {
		t.Fatalf("absent: foo = %v", v)
	}

	p, foo = newP()
	if ns, err = p.ParseArgs([]string{"--foo"}); err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(foo); v != "c" {
		t.Fatalf("bare: foo = %v", v)
	}

	p, foo = newP()
	if ns, err = p.ParseArgs([]string{"--foo", "v"}); err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(foo); v != "v" {
		t.Fatalf("valued: foo = %v", v)
	}
}

func TestNegativeNumberIsPositional(t *testing.T) {
	p := newTestParser(t)
	n := p.MustAddArgument(argparse.OptionStrings("n"), argparse.Type(argparse.Int))

	ns, err := p.ParseArgs([]string{"-5"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(n); v != -5 {
		t.Fatalf("n = %v", v)
	}
}

func TestTypeCoercionFailure(t *testing.T) {
	p := newTestParser(t)
	p.MustAddArgument(argparse.OptionStrings("--integer"), argparse.Type(argparse.Int))

	_, err := p.ParseArgs([]string{"--integer", "x"})
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 2 {
		t.Fatalf("expected SystemExit(2), got %v", err)
	}
}
