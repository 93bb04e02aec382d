package dimacs

import (
	"fmt"
	"io"

	"github.com/rhartert/dimacs"
)

// problemBuilder implements dimacs.Builder to assemble a Problem.
type problemBuilder struct {
	problem    *Problem
	seenHeader bool
}

func (b *problemBuilder) Problem(problem string, nVars int, nClauses int) error {
	if b.seenHeader {
		return fmt.Errorf("%w: found a second problem line", ErrMalformedHeader)
	}
	if problem != "cnf" {
		return fmt.Errorf("%w: instance of type %q are not supported", ErrMalformedHeader, problem)
	}
	b.seenHeader = true
	b.problem.Variables = nVars
	b.problem.NumClauses = nClauses
	b.problem.Clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *problemBuilder) Clause(tmpClause []int) error {
	if !b.seenHeader {
		return fmt.Errorf("%w: found clause before problem line", ErrMalformedHeader)
	}
	clause := make([]int, len(tmpClause))
	copy(clause, tmpClause)
	b.problem.Clauses = append(b.problem.Clauses, clause)
	return nil
}

func (b *problemBuilder) Comment(c string) error {
	b.problem.Comments = append(b.problem.Comments, c)
	return nil
}

// ParseReference reads a problem with the line-oriented reader of package
// github.com/rhartert/dimacs. It is much less strict than Parse about the
// layout of the file and is used to cross-check Parse's results.
func ParseReference(r io.Reader) (*Problem, error) {
	b := &problemBuilder{problem: &Problem{}}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	if !b.seenHeader {
		return nil, fmt.Errorf("%w: missing problem line", ErrMalformedHeader)
	}
	if err := b.problem.Validate(); err != nil {
		return nil, err
	}
	return b.problem, nil
}

// Emit replays the problem into the given builder: its comments first, then
// the problem line, then each clause in order. The slices passed to
// b.Clause are only valid for the duration of the call.
func Emit(p *Problem, b dimacs.Builder) error {
	for _, c := range p.Comments {
		if err := b.Comment(c); err != nil {
			return err
		}
	}
	if err := b.Problem("cnf", p.Variables, p.NumClauses); err != nil {
		return err
	}
	tmp := []int{}
	for _, c := range p.Clauses {
		tmp = append(tmp[:0], c...)
		if err := b.Clause(tmp); err != nil {
			return err
		}
	}
	return nil
}
