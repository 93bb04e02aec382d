package dimacs

import (
	"errors"
	"math"
	"strings"
)

// MaxVariable is the largest magnitude accepted for a literal or for one of
// the header's counts.
const MaxVariable = math.MaxInt32

var errOverflow = errors.New("integer overflow")

// cursor is the read position of a single parse over an in-memory buffer.
// The end of input is reached when pos == len(src).
type cursor struct {
	src  []byte
	pos  int
	line int

	// If non-nil, skipped comment lines are appended to it.
	comments *[]string
}

func newCursor(src []byte) *cursor {
	return &cursor{src: src, line: 1}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.src)
}

// peekAt returns the byte k positions after the cursor or 0 if that position
// is past the end of input.
func (c *cursor) peekAt(k int) byte {
	if c.pos+k >= len(c.src) {
		return 0
	}
	return c.src[c.pos+k]
}

func (c *cursor) peek() byte {
	return c.peekAt(0)
}

// atComment returns true if the cursor is at the start of a comment. Comments
// start with 'c' unless it is the start of the "cnf" header token.
func (c *cursor) atComment() bool {
	return c.peek() == 'c' && !(c.peekAt(1) == 'n' && c.peekAt(2) == 'f')
}

// skip advances the cursor past whitespace, line breaks, and comment lines.
// Comments are consumed up to, but not including, their terminating newline.
func skip(c *cursor) {
	for !c.atEnd() {
		switch b := c.peek(); {
		case b == ' ' || b == '\t' || b == '\r':
			c.pos++
		case b == '\n':
			c.pos++
			c.line++
		case c.atComment():
			start := c.pos
			for !c.atEnd() && c.peek() != '\n' {
				c.pos++
			}
			if c.comments != nil {
				line := strings.TrimSuffix(string(c.src[start:c.pos]), "\r")
				*c.comments = append(*c.comments, line)
			}
		default:
			return
		}
	}
}

type tokenKind uint8

const (
	tokLiteral    tokenKind = iota // a non-zero integer
	tokTerminator                  // the integer 0
	tokNaN                         // no digit found
)

func (k tokenKind) String() string {
	switch k {
	case tokLiteral:
		return "literal"
	case tokTerminator:
		return "terminator"
	default:
		return "not a number"
	}
}

type token struct {
	kind  tokenKind
	value int
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// readLiteral skips insignificant content and reads an optionally negative
// decimal integer. If no digit follows the optional sign, a tokNaN token is
// returned and the cursor is left on the offending byte.
//
// Digits are always consumed in full, but errOverflow is returned if the
// magnitude of the integer exceeds MaxVariable.
func readLiteral(c *cursor) (token, error) {
	skip(c)

	sign := 1
	if c.peek() == '-' {
		sign = -1
		c.pos++
	}
	if !isDigit(c.peek()) {
		return token{kind: tokNaN}, nil
	}

	var value int64
	overflow := false
	for isDigit(c.peek()) {
		if !overflow {
			value = value*10 + int64(c.peek()-'0')
			overflow = value > MaxVariable
		}
		c.pos++
	}

	if overflow {
		return token{kind: tokNaN}, errOverflow
	}
	if value == 0 {
		return token{kind: tokTerminator}, nil
	}
	return token{kind: tokLiteral, value: sign * int(value)}, nil
}
