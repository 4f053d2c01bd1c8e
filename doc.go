// Package argparse implements a command-line argument parser modeled on
// Python's argparse module: declare positional and optional arguments on an
// ArgumentParser, organize them into titled or mutually exclusive groups,
// and parse a command line into a Namespace.
//
// A minimal parser looks like:
//
//	p := argparse.MustNewArgumentParser(
//		argparse.Prog("frobnicate"),
//		argparse.Description("Frobnicate the given files."))
//	p.MustAddArgument(
//		argparse.OptionStrings("-n", "--count"),
//		argparse.Type(argparse.Int),
//		argparse.Default(1),
//		argparse.Help("number of times to frobnicate"))
//	p.MustAddArgument(
//		argparse.OptionStrings("file"),
//		argparse.Nargs(argparse.OneOrMore),
//		argparse.Help("files to frobnicate"))
//	ns, err := p.ParseArgs(nil)
//
// Long options may be abbreviated to any unambiguous prefix, short options
// may be clustered ("-xvf"), and "--" ends option parsing. Subcommands are
// declared with AddSubParsers; @file tokens are expanded into their
// contents, one token per non-empty line, when FromFilePrefixChars is set.
package argparse
