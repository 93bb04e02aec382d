// Package dimacs reads Boolean satisfiability problems encoded in the DIMACS
// CNF format.
//
// A DIMACS CNF file starts with a problem line "p cnf <vars> <clauses>"
// followed by the clauses, each given as a sequence of non-zero signed
// integers terminated by 0. Lines starting with 'c' are comments. For
// example:
//
//	c a small instance
//	p cnf 3 2
//	1 -2 0
//	2 3 -1 0
package dimacs

import (
	"fmt"
)

// Problem is a parsed CNF instance. A Problem returned by this package
// satisfies Validate and must be treated as read-only.
type Problem struct {
	// Number of variables declared in the problem line. Variables are
	// numbered from 1 to Variables inclusive.
	Variables int

	// Number of clauses declared in the problem line.
	NumClauses int

	// The clauses in order of appearance. A literal l refers to variable |l|
	// and is negated if l < 0. Clauses can be empty.
	Clauses [][]int

	// Comment lines, including their leading 'c'.
	Comments []string
}

// Literals returns the total number of literals in the problem's clauses.
func (p *Problem) Literals() int {
	n := 0
	for _, c := range p.Clauses {
		n += len(c)
	}
	return n
}

// Validate returns an error if the problem does not have exactly NumClauses
// clauses or if one of its literals does not refer to a variable in
// [1, Variables].
func (p *Problem) Validate() error {
	if p.Variables < 0 || p.NumClauses < 0 {
		return fmt.Errorf("%w: negative counts (%d variables, %d clauses)", ErrMalformedHeader, p.Variables, p.NumClauses)
	}
	if len(p.Clauses) != p.NumClauses {
		return fmt.Errorf("%w: declared %d, got %d", ErrClauseCount, p.NumClauses, len(p.Clauses))
	}
	for i, c := range p.Clauses {
		if j := outOfRange(c, p.Variables); j >= 0 {
			return fmt.Errorf("%w: clause %d: %s", ErrLiteralOutOfRange, i, literalMsg(c[j], p.Variables))
		}
	}
	return nil
}

// ParseDIMACS parses the DIMACS CNF file with DefaultOptions. The file is
// decompressed first if gzipped is true.
func ParseDIMACS(filename string, gzipped bool) (*Problem, error) {
	src, err := Load(filename, gzipped)
	if err != nil {
		return nil, err
	}
	return Parse(src, DefaultOptions)
}
