/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package combo enumerates participant subsets for a session. Generation
// order is deterministic (lexicographic by input pool order); the search
// relies on this for its exploration order and therefore for tie-breaking
// among equal-ranked results.
package combo

// Choose returns all k-element subsets of pool by recursive choose/skip
// decomposition. k=0 yields the single empty subset; k greater than the
// pool size yields none.
func Choose(pool []string, k int) [][]string {
	if k == 0 {
		return [][]string{{}}
	}
	if k < 0 || k > len(pool) {
		return nil
	}

	var out [][]string
	current := make([]string, 0, k)
	choose(pool, k, 0, current, &out)
	return out
}

func choose(pool []string, k, from int, current []string, out *[][]string) {
	if len(current) == k {
		subset := make([]string, k)
		copy(subset, current)
		*out = append(*out, subset)
		return
	}
	// Not enough members left to complete the subset.
	if len(pool)-from < k-len(current) {
		return
	}

	// Take pool[from], then skip it.
	choose(pool, k, from+1, append(current, pool[from]), out)
	choose(pool, k, from+1, current, out)
}

// Generate produces the candidate combinations for a session requiring k
// participants. The regular pass covers the non-trainee pool; when
// includeTrainees is set, a second pass appends subsets mixing
// 1..min(k, len(trainees)) trainees with the remaining required
// non-trainees.
func Generate(regulars, trainees []string, k int, includeTrainees bool) [][]string {
	out := Choose(regulars, k)

	if !includeTrainees || len(trainees) == 0 {
		return out
	}

	maxTrainees := min(k, len(trainees))
	for t := 1; t <= maxTrainees; t++ {
		traineeSets := Choose(trainees, t)
		regularSets := Choose(regulars, k-t)
		for _, rs := range regularSets {
			for _, ts := range traineeSets {
				mixed := make([]string, 0, k)
				mixed = append(mixed, rs...)
				mixed = append(mixed, ts...)
				out = append(out, mixed)
			}
		}
	}
	return out
}
