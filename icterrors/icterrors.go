// Package icterrors defines the distinguished error kinds produced by the
// automaton, regex, grammar, and parse packages. Each kind carries both a
// technical message (returned by Error()) and, where one makes sense, a
// human-facing summary a caller can surface directly to an end user.
package icterrors

import "fmt"

// Kind identifies which of the named error categories an error belongs to.
type Kind int

const (
	// KindInvalidConstruction covers malformed automata and grammars:
	// duplicate state names, transitions to undefined states, terminal/
	// non-terminal overlap, an axiom outside the non-terminal set, and
	// non-terminals with no productions.
	KindInvalidConstruction Kind = iota

	// KindRepeatedCell is reported when LL(1) table construction attempts
	// to assign a cell that has already been filled.
	KindRepeatedCell

	// KindUnknownSymbol is reported when FIRST is computed over a
	// sentential form referencing a symbol outside the grammar.
	KindUnknownSymbol

	// KindSyntaxError is reported by the predictive parser when it
	// reaches a configuration with no applicable table cell, a terminal
	// mismatch, or residual input after the stack empties.
	KindSyntaxError

	// KindNotLL1 is the aggregated outcome when table construction
	// detects one or more RepeatedCell collisions; it is surfaced as the
	// absence of a table rather than a single collision error.
	KindNotLL1
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConstruction:
		return "InvalidConstruction"
	case KindRepeatedCell:
		return "RepeatedCell"
	case KindUnknownSymbol:
		return "UnknownSymbol"
	case KindSyntaxError:
		return "SyntaxError"
	case KindNotLL1:
		return "NotLL1"
	default:
		return "Unknown"
	}
}

// ictError is the concrete error type returned by every constructor in this
// package. It carries the distinguishing Kind, a technical message, and an
// optional human-facing one, modeled on the teacher's interpreterError.
type ictError struct {
	kind  Kind
	msg   string
	human string
	wrap  error
}

func (e *ictError) Error() string {
	return e.msg
}

func (e *ictError) Unwrap() error {
	return e.wrap
}

// Human returns the human-facing message for the error, if one was given;
// otherwise it falls back to the technical message.
func (e *ictError) Human() string {
	if e.human == "" {
		return e.msg
	}
	return e.human
}

// KindOf returns the Kind of err if it (or something it wraps) is an error
// produced by this package, and ok=false otherwise.
func KindOf(err error) (k Kind, ok bool) {
	for err != nil {
		if ie, isIct := err.(*ictError); isIct {
			return ie.kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}

// Is reports whether err is an icterrors error of the given Kind.
func Is(err error, k Kind) bool {
	actual, ok := KindOf(err)
	return ok && actual == k
}

func new_(k Kind, human, technicalFormat string, a ...any) error {
	technical := fmt.Sprintf(technicalFormat, a...)
	return &ictError{kind: k, msg: technical, human: human}
}

// InvalidConstruction returns a new InvalidConstruction error.
func InvalidConstruction(format string, a ...any) error {
	return new_(KindInvalidConstruction, "", format, a...)
}

// RepeatedCell returns a new RepeatedCell error for the given table
// coordinates.
func RepeatedCell(nonTerminal, terminal string) error {
	return new_(KindRepeatedCell, "", "repeated cell (%s, %s)", nonTerminal, terminal)
}

// UnknownSymbol returns a new UnknownSymbol error for the given symbol.
func UnknownSymbol(sym string) error {
	return new_(KindUnknownSymbol, "", "symbol %q is not in the grammar", sym)
}

// SyntaxErrorf returns a new SyntaxError with a human-facing message built
// from the given format and arguments.
func SyntaxErrorf(format string, a ...any) error {
	human := fmt.Sprintf(format, a...)
	return &ictError{kind: KindSyntaxError, msg: human, human: human}
}

// NotLL1 returns a new NotLL1 error that wraps the first RepeatedCell
// collision encountered during table construction.
func NotLL1(cause error) error {
	return &ictError{
		kind:  KindNotLL1,
		msg:   fmt.Sprintf("grammar is not LL(1): %s", cause.Error()),
		human: "this grammar is not LL(1)",
		wrap:  cause,
	}
}
