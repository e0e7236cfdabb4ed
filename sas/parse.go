package sas

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

const supportedVersion = 3

// reader holds the mutable state for a single parse of a SAS⁺ file: the
// line scanner and the current line number, used for error reporting.
type reader struct {
	scanner *bufio.Scanner
	line    int
}

// ParseFile reads and parses the SAS⁺ version-3 task at path.
func ParseFile(path string) (*Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a SAS⁺ version-3 task from r.
//
// Sections are consumed in the fixed order documented in the SAS⁺ file
// format: version, metric, variables, mutex groups (parsed and discarded),
// initial state, goal, operators. Malformed input returns a *ParseError
// wrapping a sentinel from this package; partial success is never returned.
func Parse(r io.Reader) (*Task, error) {
	p := &reader{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	numVariables, variables, err := p.parseVariables()
	if err != nil {
		return nil, err
	}

	if err := p.parseMutexGroups(); err != nil {
		return nil, err
	}

	initial, err := p.parseInitialState(numVariables)
	if err != nil {
		return nil, err
	}

	goal, err := p.parseGoal()
	if err != nil {
		return nil, err
	}

	operators, err := p.parseOperators()
	if err != nil {
		return nil, err
	}

	return &Task{
		Variables: variables,
		Initial:   initial,
		Goal:      goal,
		Operators: operators,
	}, nil
}

// nextLine consumes and returns the next non-absent line, stripped of
// surrounding whitespace. It returns ErrUnexpectedEOF once the input is
// exhausted.
func (p *reader) nextLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", p.fail(err)
		}
		return "", p.fail(ErrUnexpectedEOF)
	}
	p.line++

	return strings.TrimSpace(p.scanner.Text()), nil
}

// expect consumes the next line and requires it to equal want exactly.
func (p *reader) expect(want string) error {
	line, err := p.nextLine()
	if err != nil {
		return err
	}
	if line != want {
		return p.fail(ErrMalformedSection)
	}

	return nil
}

// nextInt consumes the next line and parses it as a base-10 integer.
func (p *reader) nextInt() (int, error) {
	line, err := p.nextLine()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, p.fail(ErrNotInteger)
	}

	return v, nil
}

// nextNonNegInt is nextInt with a non-negativity check.
func (p *reader) nextNonNegInt() (int, error) {
	v, err := p.nextInt()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, p.fail(ErrNegativeValue)
	}

	return v, nil
}

// nextIntPair parses the next line as two whitespace-separated integers,
// e.g. a "var val" fact line.
func (p *reader) nextIntPair() (int, int, error) {
	line, err := p.nextLine()
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, p.fail(ErrMalformedSection)
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, p.fail(ErrNotInteger)
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, p.fail(ErrNotInteger)
	}

	return a, b, nil
}

func (p *reader) parseHeader() error {
	if err := p.expect("begin_version"); err != nil {
		return err
	}
	version, err := p.nextInt()
	if err != nil {
		return err
	}
	if version != supportedVersion {
		return p.fail(ErrUnsupportedVersion)
	}
	if err := p.expect("end_version"); err != nil {
		return err
	}

	if err := p.expect("begin_metric"); err != nil {
		return err
	}
	// The action-costs flag (0 or 1) is read and discarded: costs are
	// always taken from each operator's own cost field regardless.
	if _, err := p.nextNonNegInt(); err != nil {
		return err
	}

	return p.expect("end_metric")
}

func (p *reader) parseVariables() (int, []Variable, error) {
	numVariables, err := p.nextNonNegInt()
	if err != nil {
		return 0, nil, err
	}

	variables := make([]Variable, numVariables)
	for i := 0; i < numVariables; i++ {
		if err := p.expect("begin_variable"); err != nil {
			return 0, nil, err
		}
		name, err := p.nextLine()
		if err != nil {
			return 0, nil, err
		}
		// Axiom layer: parsed and discarded. Axioms are an explicit
		// Non-goal; this field still must round-trip without erroring.
		if _, err := p.nextLine(); err != nil {
			return 0, nil, err
		}
		domain, err := p.nextNonNegInt()
		if err != nil {
			return 0, nil, err
		}
		for j := 0; j < domain; j++ {
			if _, err := p.nextLine(); err != nil { // value name, discarded
				return 0, nil, err
			}
		}
		if err := p.expect("end_variable"); err != nil {
			return 0, nil, err
		}
		variables[i] = Variable{Name: name, Domain: domain}
	}

	return numVariables, variables, nil
}

// parseMutexGroups consumes and discards the mutex-group section. Mutex
// reasoning is an explicit Non-goal; the groups are never retained.
func (p *reader) parseMutexGroups() error {
	numGroups, err := p.nextNonNegInt()
	if err != nil {
		return err
	}
	for i := 0; i < numGroups; i++ {
		if err := p.expect("begin_mutex_group"); err != nil {
			return err
		}
		numFacts, err := p.nextNonNegInt()
		if err != nil {
			return err
		}
		for j := 0; j < numFacts; j++ {
			if _, _, err := p.nextIntPair(); err != nil {
				return err
			}
		}
		if err := p.expect("end_mutex_group"); err != nil {
			return err
		}
	}

	return nil
}

func (p *reader) parseInitialState(numVariables int) ([]int, error) {
	if err := p.expect("begin_state"); err != nil {
		return nil, err
	}
	initial := make([]int, numVariables)
	for i := 0; i < numVariables; i++ {
		v, err := p.nextNonNegInt()
		if err != nil {
			return nil, err
		}
		initial[i] = v
	}

	return initial, p.expect("end_state")
}

func (p *reader) parseGoal() ([]Assignment, error) {
	if err := p.expect("begin_goal"); err != nil {
		return nil, err
	}
	numAssignments, err := p.nextNonNegInt()
	if err != nil {
		return nil, err
	}
	goal := make([]Assignment, numAssignments)
	for i := 0; i < numAssignments; i++ {
		v, val, err := p.nextIntPair()
		if err != nil {
			return nil, err
		}
		goal[i] = Assignment{Var: v, Value: val}
	}

	return goal, p.expect("end_goal")
}

func (p *reader) parseOperators() ([]Operator, error) {
	numOperators, err := p.nextNonNegInt()
	if err != nil {
		return nil, err
	}
	operators := make([]Operator, numOperators)
	for i := 0; i < numOperators; i++ {
		op, err := p.parseOperator()
		if err != nil {
			return nil, err
		}
		operators[i] = op
	}

	return operators, nil
}

func (p *reader) parseOperator() (Operator, error) {
	if err := p.expect("begin_operator"); err != nil {
		return Operator{}, err
	}
	name, err := p.nextLine()
	if err != nil {
		return Operator{}, err
	}

	numPrevail, err := p.nextNonNegInt()
	if err != nil {
		return Operator{}, err
	}
	prevail := make([]Assignment, numPrevail)
	for i := 0; i < numPrevail; i++ {
		v, val, err := p.nextIntPair()
		if err != nil {
			return Operator{}, err
		}
		prevail[i] = Assignment{Var: v, Value: val}
	}

	numEffects, err := p.nextNonNegInt()
	if err != nil {
		return Operator{}, err
	}
	effects := make([]Effect, numEffects)
	for i := 0; i < numEffects; i++ {
		line, err := p.nextLine()
		if err != nil {
			return Operator{}, err
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return Operator{}, p.fail(ErrMalformedSection)
		}
		nums := make([]int, 4)
		for k, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return Operator{}, p.fail(ErrNotInteger)
			}
			nums[k] = n
		}
		condCount, v, from, to := nums[0], nums[1], nums[2], nums[3]
		if condCount != 0 {
			return Operator{}, p.fail(ErrConditionalEffect)
		}
		if from != Unconditional && from < 0 {
			return Operator{}, p.fail(ErrNegativeValue)
		}
		effects[i] = Effect{Var: v, From: from, To: to}
	}

	cost, err := p.nextNonNegInt()
	if err != nil {
		return Operator{}, err
	}
	if err := p.expect("end_operator"); err != nil {
		return Operator{}, err
	}

	return Operator{Name: name, Cost: cost, Prevail: prevail, Effects: effects}, nil
}
