package dimacs

import (
	"errors"
	"fmt"
)

type Options struct {
	// If true, non-numeric content inside a clause silently terminates the
	// clause, and content following the last declared clause is ignored.
	// Otherwise, both are reported as errors.
	Lenient bool

	// Maximum number of clauses and literals allowed in the problem
	// (-1 = no maximum).
	MaxClauses  int
	MaxLiterals int

	// If true, comment lines are collected in Problem.Comments.
	KeepComments bool
}

var DefaultOptions = Options{
	Lenient:      false,
	MaxClauses:   -1,
	MaxLiterals:  -1,
	KeepComments: true,
}

type parser struct {
	c    *cursor
	opts Options

	// Total number of literals read so far.
	nLiterals int
}

// Parse parses the DIMACS CNF problem contained in src. The returned Problem
// does not share memory with src.
//
// Parse returns a *ParseError if the problem line is malformed, if a clause
// contains a literal outside [1, nvars], or if the number of clauses differs
// from the one declared in the problem line. The first error encountered is
// returned and no problem is returned along with it.
func Parse(src []byte, opts Options) (*Problem, error) {
	ps := &parser{
		c:    newCursor(src),
		opts: opts,
	}

	p := &Problem{}
	if opts.KeepComments {
		ps.c.comments = &p.Comments
	}

	if err := ps.parseHeader(p); err != nil {
		return nil, err
	}
	if opts.MaxClauses >= 0 && p.NumClauses > opts.MaxClauses {
		return nil, clauseErr(ErrAllocation, ps.c, -1, "%d clauses declared, at most %d allowed", p.NumClauses, opts.MaxClauses)
	}

	// Each clause takes at least two bytes ("0" and a separator), which
	// bounds the capacity actually needed regardless of the header.
	p.Clauses = make([][]int, 0, min(p.NumClauses, len(src)/2+1))

	for i := 0; i < p.NumClauses; i++ {
		clause, line, err := ps.parseClause(i)
		if err != nil {
			return nil, err
		}
		if j := outOfRange(clause, p.Variables); j >= 0 {
			return nil, &ParseError{
				Kind:   ErrLiteralOutOfRange,
				Line:   line,
				Clause: i,
				Msg:    literalMsg(clause[j], p.Variables),
			}
		}
		p.Clauses = append(p.Clauses, clause)
	}

	if err := ps.parseTrailer(p.NumClauses); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader parses the problem line "p cnf <nvars> <nclauses>".
func (ps *parser) parseHeader(p *Problem) error {
	c := ps.c

	skip(c)
	if c.peek() != 'p' {
		return headerErr(c, "expected 'p' for header line")
	}
	c.pos++

	skip(c)
	if c.peek() != 'c' || c.peekAt(1) != 'n' || c.peekAt(2) != 'f' {
		return headerErr(c, "missing 'cnf'")
	}
	c.pos += 3

	var err error
	if p.Variables, err = ps.readCount("variables"); err != nil {
		return err
	}
	if p.NumClauses, err = ps.readCount("clauses"); err != nil {
		return err
	}
	return nil
}

func (ps *parser) readCount(what string) (int, error) {
	tok, err := readLiteral(ps.c)
	switch {
	case errors.Is(err, errOverflow):
		return 0, headerErr(ps.c, "number of %s exceeds %d", what, MaxVariable)
	case tok.kind == tokNaN:
		return 0, headerErr(ps.c, "number of %s is not a number", what)
	case tok.value < 0:
		return 0, headerErr(ps.c, "negative number of %s (%d)", what, tok.value)
	}
	return tok.value, nil
}

// parseClause reads the literals of clause i up to its terminating 0. It also
// returns the line on which the clause starts.
func (ps *parser) parseClause(i int) ([]int, int, error) {
	c := ps.c

	skip(c)
	line := c.line
	if c.atEnd() && !ps.opts.Lenient {
		return nil, line, clauseErr(ErrClauseCount, c, i, "end of input after %d clauses", i)
	}

	clause := []int{}
	for {
		tok, err := readLiteral(c)
		if err != nil {
			return nil, line, &ParseError{
				Kind:   ErrLiteralOutOfRange,
				Line:   line,
				Clause: i,
				Msg:    fmt.Sprintf("literal exceeds %d", MaxVariable),
			}
		}

		switch tok.kind {
		case tokTerminator:
			return clause, line, nil
		case tokNaN:
			if ps.opts.Lenient {
				return clause, line, nil
			}
			if c.atEnd() {
				return nil, line, clauseErr(ErrMalformedClause, c, i, "missing terminating 0")
			}
			return nil, line, clauseErr(ErrMalformedClause, c, i, "unexpected character %q", c.peek())
		}

		ps.nLiterals++
		if ps.opts.MaxLiterals >= 0 && ps.nLiterals > ps.opts.MaxLiterals {
			return nil, line, clauseErr(ErrAllocation, c, i, "more than %d literals", ps.opts.MaxLiterals)
		}
		clause = append(clause, tok.value)
	}
}

// parseTrailer checks that nothing but insignificant content, optionally
// followed by a '%' end marker, remains after the last clause.
func (ps *parser) parseTrailer(nClauses int) error {
	skip(ps.c)
	if ps.opts.Lenient || ps.c.atEnd() || ps.c.peek() == '%' {
		return nil
	}
	return clauseErr(ErrClauseCount, ps.c, nClauses, "content found after the %d declared clauses", nClauses)
}

// outOfRange returns the index of the first literal of the clause whose
// variable is not in [1, nVars], or -1 if there is none.
func outOfRange(clause []int, nVars int) int {
	for j, l := range clause {
		if l < 0 {
			l = -l
		}
		if l < 1 || l > nVars {
			return j
		}
	}
	return -1
}
