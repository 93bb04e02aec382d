package dimacs

import (
	"sort"

	"github.com/rhartert/yagh"
)

// VarCount is the number of occurrences of a variable in a problem.
type VarCount struct {
	Variable    int `yaml:"variable"`
	Occurrences int `yaml:"occurrences"`
	Positive    int `yaml:"positive"`
	Negative    int `yaml:"negative"`
}

// Stats summarizes the structure of a problem.
type Stats struct {
	Variables       int        `yaml:"variables"`
	Clauses         int        `yaml:"clauses"`
	Literals        int        `yaml:"literals"`
	EmptyClauses    int        `yaml:"empty_clauses"`
	UnitClauses     int        `yaml:"unit_clauses"`
	BinaryClauses   int        `yaml:"binary_clauses"`
	MaxClauseSize   int        `yaml:"max_clause_size"`
	AvgClauseSize   float64    `yaml:"avg_clause_size"`
	UnusedVariables int        `yaml:"unused_variables"`
	TopVariables    []VarCount `yaml:"top_variables,omitempty"`
}

// ComputeStats returns the statistics of problem p, including its top most
// frequent variables. Variables with the same number of occurrences are
// ordered by increasing ID.
//
// Memory use depends on the variables that occur in the clauses, not on the
// number of variables declared in the problem line.
func ComputeStats(p *Problem, top int) Stats {
	st := Stats{
		Variables: p.Variables,
		Clauses:   len(p.Clauses),
	}

	occurrences := map[int]*VarCount{}
	for _, c := range p.Clauses {
		switch len(c) {
		case 0:
			st.EmptyClauses++
		case 1:
			st.UnitClauses++
		case 2:
			st.BinaryClauses++
		}
		st.Literals += len(c)
		st.MaxClauseSize = max(st.MaxClauseSize, len(c))
		for _, l := range c {
			v := l
			if v < 0 {
				v = -v
			}
			vc, ok := occurrences[v]
			if !ok {
				vc = &VarCount{Variable: v}
				occurrences[v] = vc
			}
			vc.Occurrences++
			if l > 0 {
				vc.Positive++
			} else {
				vc.Negative++
			}
		}
	}
	if st.Clauses > 0 {
		st.AvgClauseSize = float64(st.Literals) / float64(st.Clauses)
	}
	st.UnusedVariables = p.Variables - len(occurrences)

	// Used variables are indexed densely, in increasing order, in the heap.
	used := make([]VarCount, 0, len(occurrences))
	for _, vc := range occurrences {
		used = append(used, *vc)
	}
	sort.Slice(used, func(i, j int) bool {
		return used[i].Variable < used[j].Variable
	})

	heap := yagh.New[float64](len(used))
	for i, vc := range used {
		heap.Put(i, -float64(vc.Occurrences))
	}

	st.TopVariables = topVariables(heap, used, top)
	return st
}

// topVariables pops the k most frequent variables from the heap. Variables
// tied with the k-th one are popped as well so that ties can be broken by
// variable ID.
func topVariables(heap *yagh.IntMap[float64], used []VarCount, k int) []VarCount {
	if k <= 0 {
		return nil
	}

	counts := []VarCount{}
	for {
		next, ok := heap.Pop()
		if !ok {
			break
		}
		vc := used[next.Elem]
		if len(counts) >= k && counts[len(counts)-1].Occurrences > vc.Occurrences {
			break
		}
		counts = append(counts, vc)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Occurrences != counts[j].Occurrences {
			return counts[i].Occurrences > counts[j].Occurrences
		}
		return counts[i].Variable < counts[j].Variable
	})
	if len(counts) > k {
		counts = counts[:k]
	}
	return counts
}
