package engine

import "math/rand/v2"

// GenerateInstance builds a random CNF instance over the given number of
// variables, one clause guaranteed non-empty per row.
func GenerateInstance(variables, clauses int) [][]int {
	instance := make([][]int, clauses)

	for i := range clauses {
		instance[i] = make([]int, 0, variables)
		for j := range variables {
			if rand.Float32() < 0.5 {
				sign := 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				instance[i] = append(instance[i], sign*(1+j))
			}
		}

		if len(instance[i]) == 0 {
			sign := 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			instance[i] = append(instance[i], sign*(1+rand.IntN(variables)))
		}
	}

	return instance
}

// AssertModel reports whether the model is consistent (no duplicates nor
// contradictions) and satisfies every clause of the instance.
func AssertModel(instance [][]int, model []int) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int]bool)
	for _, literal := range model {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range instance {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
