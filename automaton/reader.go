package automaton

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/ictiobus/icterrors"
)

// ReadText parses the canonical textual automaton format:
//
//	Automaton:
//	  <name> [final]
//	  ...
//	  <src> -<symbol>-> <dst>
//	  <src> --> <dst>
//	  <src> ---> <dst>
//
// A line is a transition line if it splits into exactly three whitespace
// fields and the middle one looks like a dash-cluster ("-...->"); otherwise
// it is a state declaration naming a state and, optionally, the literal
// word "final". The first state declaration encountered becomes the
// automaton's initial state. "-->" and "--->" both denote a lambda
// transition; any other "-<symbol>->" form carries symbol as the literal
// text between the leading dash and the trailing "->".
func ReadText(r io.Reader) (*FiniteAutomaton, error) {
	scanner := bufio.NewScanner(r)

	var stateLines [][]string
	var transLines []string
	first := true

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(line, "Automaton:") {
				continue
			}
		}

		fields := strings.Fields(line)
		if len(fields) == 3 && isDashCluster(fields[1]) {
			transLines = append(transLines, line)
			continue
		}

		stateLines = append(stateLines, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(stateLines) == 0 {
		return nil, icterrors.InvalidConstruction("automaton text has no state declarations")
	}

	b := NewBuilder()
	for _, fields := range stateLines {
		name := fields[0]
		accepting := len(fields) > 1 && strings.EqualFold(fields[1], "final")
		b.AddState(name, accepting)
	}

	for _, line := range transLines {
		fields := strings.Fields(line)
		src, token, dst := fields[0], fields[1], fields[2]

		symbol := Lambda
		if token != "-->" && token != "--->" {
			symbol = token[1 : len(token)-2]
		}

		if err := b.AddTransition(src, symbol, dst); err != nil {
			return nil, err
		}
	}

	return b.Build(stateLines[0][0])
}

func isDashCluster(token string) bool {
	if !strings.HasSuffix(token, "->") || !strings.HasPrefix(token, "-") {
		return false
	}
	return len(token) >= 3
}

// WriteText writes fa to w in the same canonical format ReadText parses.
func WriteText(w io.Writer, fa *FiniteAutomaton) error {
	_, err := io.WriteString(w, fa.String())
	return err
}
