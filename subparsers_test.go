package argparse_test

import (
	"testing"

	"github.com/gocmdline/argparse"
)

func TestSubParsersDispatch(t *testing.T) {
	p := newTestParser(t)
	sp, err := p.AddSubParsers(argparse.SubParsersDest("action"))
	if err != nil {
		t.Fatal(err)
	}

	addParser, err := sp.AddParser("add")
	if err != nil {
		t.Fatal(err)
	}
	x := addParser.MustAddArgument(argparse.OptionStrings("x"), argparse.Type(argparse.Int))
	y := addParser.MustAddArgument(argparse.OptionStrings("y"), argparse.Type(argparse.Int))

	removeParser, err := sp.AddParser("remove")
	if err != nil {
		t.Fatal(err)
	}
	target := removeParser.MustAddArgument(argparse.OptionStrings("target"))

	ns, err := p.ParseArgs([]string{"add", "3", "4"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.GetByName("action"); v != "add" {
		t.Fatalf("action = %v", v)
	}
	if v, _ := ns.Get(x); v != 3 {
		t.Fatalf("x = %v", v)
	}
	if v, _ := ns.Get(y); v != 4 {
		t.Fatalf("y = %v", v)
	}

	ns2, err := p.ParseArgs([]string{"remove", "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns2.Get(target); v != "foo" {
		t.Fatalf("target = %v", v)
	}
}

func TestSubParsersUnknownCommand(t *testing.T) {
	p := newTestParser(t)
	sp, err := p.AddSubParsers()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sp.AddParser("add"); err != nil {
		t.Fatal(err)
	}

	if _, err := p.ParseArgs([]string{"bogus"}); err == nil {
		t.Fatal("expected invalid-choice error")
	}
}
