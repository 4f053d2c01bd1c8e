package argparse_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocmdline/argparse"
)

func TestFromFileExpansion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "args.txt")
	if err := os.WriteFile(path, []byte("--count\n5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestParser(t, argparse.FromFilePrefixChars("@"))
	count := p.MustAddArgument(argparse.OptionStrings("--count"), argparse.Type(argparse.Int))

	ns, err := p.ParseArgs([]string{"@" + path})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(count); v != 5 {
		t.Fatalf("count = %v", v)
	}
}

func TestFromFileExpansionNestedAndVerbatimLines(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "inner.txt")
	outer := filepath.Join(dir, "outer.txt")
	if err := os.WriteFile(inner, []byte("--message\nhello world\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(outer, []byte("@"+inner+"\n--count\n5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestParser(t, argparse.FromFilePrefixChars("@"))
	msg := p.MustAddArgument(argparse.OptionStrings("--message"))
	count := p.MustAddArgument(argparse.OptionStrings("--count"), argparse.Type(argparse.Int))

	ns, err := p.ParseArgs([]string{"@" + outer})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ns.Get(msg); v != "hello world" {
		t.Fatalf("message = %q, want %q", v, "hello world")
	}
	if v, _ := ns.Get(count); v != 5 {
		t.Fatalf("count = %v", v)
	}
}
