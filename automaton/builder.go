package automaton

import "github.com/dekarrin/ictiobus/icterrors"

// Builder assembles a FiniteAutomaton incrementally, for callers (the text
// reader, determinize, minimize) that discover states and transitions one
// at a time rather than having the full state list up front. The zero value
// is ready to use.
type Builder struct {
	order []string
	by    map[string]*State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{by: make(map[string]*State)}
}

// AddState registers a state with the given name if it is not already
// present. If it is already present, Accepting is OR'd in so a state
// declared accepting by any caller ends up accepting.
func (b *Builder) AddState(name string, accepting bool) {
	if b.by == nil {
		b.by = make(map[string]*State)
	}
	if s, ok := b.by[name]; ok {
		s.Accepting = s.Accepting || accepting
		return
	}
	b.order = append(b.order, name)
	b.by[name] = &State{Name: name, Accepting: accepting}
}

// HasState reports whether name has already been added.
func (b *Builder) HasState(name string) bool {
	_, ok := b.by[name]
	return ok
}

// AddTransition adds a transition from -symbol-> to. Both from and to must
// already have been registered with AddState; symbol may be Lambda.
func (b *Builder) AddTransition(from, symbol, to string) error {
	s, ok := b.by[from]
	if !ok {
		return icterrors.InvalidConstruction("cannot add transition from undefined state %q", from)
	}
	if _, ok := b.by[to]; !ok {
		return icterrors.InvalidConstruction("cannot add transition to undefined state %q", to)
	}
	s.addTransition(Transition{Symbol: symbol, Target: to})
	return nil
}

// Build finalizes the automaton with start as its initial state. start must
// have been registered with AddState; it is moved to index 0 if it isn't
// there already, with all other states retaining their addition order.
func (b *Builder) Build(start string) (*FiniteAutomaton, error) {
	if _, ok := b.by[start]; !ok {
		return nil, icterrors.InvalidConstruction("start state %q was never defined", start)
	}

	states := make([]State, 0, len(b.order))
	states = append(states, *b.by[start])
	for _, name := range b.order {
		if name == start {
			continue
		}
		states = append(states, *b.by[name])
	}

	return New(states)
}
