package argparse_test

import (
	"errors"
	"testing"

	"github.com/gocmdline/argparse"
)

func TestMutexGroupConflict(t *testing.T) {
	p := newTestParser(t)
	g := p.AddMutuallyExclusiveGroup(false)
	if _, err := g.AddArgument(argparse.OptionStrings("--quiet"), argparse.Action("store_true")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddArgument(argparse.OptionStrings("--verbose"), argparse.Action("store_true")); err != nil {
		t.Fatal(err)
	}

	_, err := p.ParseArgs([]string{"--quiet", "--verbose"})
	if err == nil {
		t.Fatal("expected mutex conflict error")
	}
	var se *argparse.SystemExit
	if !errors.As(err, &se) || se.Code != 2 {
		t.Fatalf("expected SystemExit(2), got %v", err)
	}
}

func TestMutexGroupAllowsOne(t *testing.T) {
	p := newTestParser(t)
	g := p.AddMutuallyExclusiveGroup(false)
	quiet, _ := g.AddArgument(argparse.OptionStrings("--quiet"), argparse.Action("store_true"))
	g.AddArgument(argparse.OptionStrings("--verbose"), argparse.Action("store_true"))

	ns, err := p.ParseArgs([]string{"--quiet"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(quiet); v != true {
		t.Fatalf("quiet = %v", v)
	}
}

func TestMutexGroupRequired(t *testing.T) {
	p := newTestParser(t)
	g := p.AddMutuallyExclusiveGroup(true)
	g.AddArgument(argparse.OptionStrings("--quiet"), argparse.Action("store_true"))
	g.AddArgument(argparse.OptionStrings("--verbose"), argparse.Action("store_true"))

	_, err := p.ParseArgs([]string{})
	if err == nil {
		t.Fatal("expected required-mutex-group error")
	}
}
