package argparse

// Group is a titled subset of a container's actions, sharing the
// underlying Argument pointers (no copy). HelpFormatter renders groups as
// their own sections; Group itself has no effect on matching.
type Group struct {
	container   *ActionContainer
	Title       string
	Description string
	actions     []*Argument
}

// AddArgument declares a new argument and records it as a member of this
// group in addition to adding it to the owning container.
func (g *Group) AddArgument(options ...ArgumentOption) (*Argument, error) {
	a, err := g.container.AddArgument(options...)
	if err != nil {
		return nil, err
	}
	g.actions = append(g.actions, a)
	return a, nil
}

// Actions returns the arguments that belong to this group, in declaration
// order.
func (g *Group) Actions() []*Argument {
	out := make([]*Argument, len(g.actions))
	copy(out, g.actions)
	return out
}

// MutexGroup is a Group whose members may not both be given non-default
// values on the same command line (spec.md's mutually exclusive group).
type MutexGroup struct {
	Group

	// Required, when true, demands that a member be seen with a
	// non-default value.
	Required bool
}

// AddArgument declares a new argument, adds it to the owning container, and
// registers it as a member of this mutex group.
func (g *MutexGroup) AddArgument(options ...ArgumentOption) (*Argument, error) {
	a, err := g.Group.AddArgument(options...)
	if err != nil {
		return nil, err
	}
	g.container.registerMutexMember(a, g)
	return a, nil
}
