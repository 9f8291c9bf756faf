package rules

import (
	"fmt"
	"slices"

	"github.com/rbright/rutranscript/internal/phonetics"
)

// CliticRelation attaches the word run at Clitic to the host run at Main.
type CliticRelation struct {
	Main   int `json:"main"`
	Clitic int `json:"clitic"`
}

// MalformedCliticError reports a relation that cannot be applied.
type MalformedCliticError struct {
	Relation CliticRelation
	Runs     int
}

func (e *MalformedCliticError) Error() string {
	return fmt.Sprintf("clitic relation (main=%d, clitic=%d) is invalid for %d word runs",
		e.Relation.Main, e.Relation.Clitic, e.Runs)
}

func (c CliticRelation) validate(runs int) error {
	if c.Main < 0 || c.Clitic < 0 || c.Main >= runs || c.Clitic >= runs || c.Main == c.Clitic {
		return &MalformedCliticError{Relation: c, Runs: runs}
	}
	return nil
}

// MergeClitics joins each clitic run with its host into one phrasal word.
// Runs keep their textual order inside a phrasal word and a clitic loses
// its own stress. Malformed relations are logged and skipped.
func (r *Rules) MergeClitics(seq []string, relations []CliticRelation) []string {
	runs := splitRuns(seq)

	parent := make([]int, len(runs))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	clitic := make([]bool, len(runs))
	for _, rel := range relations {
		if err := rel.validate(len(runs)); err != nil {
			r.logger.Warn("skipping clitic relation", "error", err)
			continue
		}
		clitic[rel.Clitic] = true
		a, b := find(rel.Main), find(rel.Clitic)
		parent[max(a, b)] = min(a, b)
	}

	groups := make(map[int][]int, len(runs))
	for i := range runs {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	out := make([]string, 0, len(seq))
	for i := range runs {
		members, ok := groups[i]
		if !ok {
			continue
		}
		if len(out) > 0 {
			out = append(out, phonetics.Space)
		}
		slices.Sort(members)
		for _, m := range members {
			for _, symbol := range runs[m] {
				if clitic[m] && symbol == phonetics.Stress {
					continue
				}
				out = append(out, symbol)
			}
		}
	}
	return out
}

// splitRuns cuts seq at word boundaries.
func splitRuns(seq []string) [][]string {
	runs := [][]string{{}}
	for _, symbol := range seq {
		if symbol == phonetics.Space {
			runs = append(runs, []string{})
			continue
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], symbol)
	}
	return runs
}
