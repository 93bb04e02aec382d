package dimacs

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseReference(t *testing.T) {
	f, err := os.Open("testdata/test_instance.cnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := ParseReference(f)

	if err != nil {
		t.Fatalf("ParseReference(): want no error, got %s", err)
	}
	if got.Variables != testInstance.Variables {
		t.Errorf("ParseReference(): want %d variables, got %d", testInstance.Variables, got.Variables)
	}
	if diff := cmp.Diff(testInstance.Clauses, got.Clauses); diff != "" {
		t.Errorf("ParseReference(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseReference_notCNF(t *testing.T) {
	got, err := ParseReference(strings.NewReader("p wcnf 2 1\n1 0\n"))

	if err == nil {
		t.Errorf("ParseReference(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseReference(): want nil problem, got %+v", got)
	}
}

func TestParseReference_outOfRange(t *testing.T) {
	got, err := ParseReference(strings.NewReader("p cnf 2 1\n1 3 0\n"))

	if err == nil {
		t.Errorf("ParseReference(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseReference(): want nil problem, got %+v", got)
	}
}

// recorder implements dimacs.Builder and records the calls it receives.
type recorder struct {
	calls []string
	fail  string
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.fail {
		return errors.New("builder failure")
	}
	return nil
}

func (r *recorder) Problem(problem string, nVars int, nClauses int) error {
	return r.record(strings.Join([]string{"problem", problem, strconv.Itoa(nVars), strconv.Itoa(nClauses)}, " "))
}

func (r *recorder) Clause(tmpClause []int) error {
	parts := []string{"clause"}
	for _, l := range tmpClause {
		parts = append(parts, strconv.Itoa(l))
	}
	// Mess with the slice to check that Emit does not share it.
	for i := range tmpClause {
		tmpClause[i] = 0
	}
	return r.record(strings.Join(parts, " "))
}

func (r *recorder) Comment(c string) error {
	return r.record(c)
}

func TestEmit(t *testing.T) {
	p := &Problem{
		Variables:  3,
		NumClauses: 3,
		Clauses:    [][]int{{1, -2}, {}, {-3, 2, 1}},
		Comments:   []string{"c first", "c second"},
	}
	want := []string{
		"c first",
		"c second",
		"problem cnf 3 3",
		"clause 1 -2",
		"clause",
		"clause -3 2 1",
	}

	r := &recorder{}
	err := Emit(p, r)

	if err != nil {
		t.Errorf("Emit(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("Emit(): mismatch (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{1, -2}, {}, {-3, 2, 1}}, p.Clauses); diff != "" {
		t.Errorf("Emit(): problem was modified (-want, +got):\n%s", diff)
	}
}

func TestEmit_builderError(t *testing.T) {
	p := &Problem{
		Variables:  2,
		NumClauses: 2,
		Clauses:    [][]int{{1}, {2}},
	}

	r := &recorder{fail: "clause 1"}
	err := Emit(p, r)

	if err == nil {
		t.Errorf("Emit(): want error, got none")
	}
	if got := len(r.calls); got != 2 {
		t.Errorf("Emit(): want 2 calls before stopping, got %d", got)
	}
}

func TestEmit_roundTrip(t *testing.T) {
	want, err := ParseDIMACS("testdata/test_instance.cnf", false)
	if err != nil {
		t.Fatal(err)
	}

	b := &problemBuilder{problem: &Problem{}}
	if err := Emit(want, b); err != nil {
		t.Fatalf("Emit(): want no error, got %s", err)
	}

	if diff := cmp.Diff(want, b.problem); diff != "" {
		t.Errorf("Emit(): mismatch (-want, +got):\n%s", diff)
	}
}
