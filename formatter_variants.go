package argparse

// RawDescriptionHelpFormatter preserves the Description and Epilog exactly
// as written instead of re-wrapping them to the help width. Per-argument
// help text still wraps normally.
type RawDescriptionHelpFormatter struct{}

func (RawDescriptionHelpFormatter) FormatUsage(p *ArgumentParser) (string, error) {
	return formatUsage(p)
}

func (RawDescriptionHelpFormatter) FormatHelp(p *ArgumentParser) (string, error) {
	return formatHelp(p, helpFormatOptions{rawDescription: true})
}

// RawTextHelpFormatter is RawDescriptionHelpFormatter extended to also
// leave every argument's Help text unwrapped.
type RawTextHelpFormatter struct{}

func (RawTextHelpFormatter) FormatUsage(p *ArgumentParser) (string, error) {
	return formatUsage(p)
}

func (RawTextHelpFormatter) FormatHelp(p *ArgumentParser) (string, error) {
	return formatHelp(p, helpFormatOptions{rawDescription: true, rawHelpText: true})
}

// ArgumentDefaultsHelpFormatter appends each argument's default value to
// its help text, except where the default is nil or Suppress, where the
// help text already references %default%, or for a positional whose Nargs
// is ZeroOrOne or ZeroOrMore.
type ArgumentDefaultsHelpFormatter struct{}

func (ArgumentDefaultsHelpFormatter) FormatUsage(p *ArgumentParser) (string, error) {
	return formatUsage(p)
}

func (ArgumentDefaultsHelpFormatter) FormatHelp(p *ArgumentParser) (string, error) {
	return formatHelp(p, helpFormatOptions{showDefaults: true})
}
