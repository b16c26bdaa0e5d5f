// Package permute generates username candidates from a list of seed elements.
package permute

import (
	"fmt"
	"strings"
)

// Method selects which permutation lengths are produced.
type Method string

const (
	// Strict only combines two or more elements.
	Strict Method = "strict"

	// All also emits every element on its own.
	All Method = "all"
)

// Separators joins elements inside one candidate, in emission order.
var Separators = []string{"", "_", "-", "."}

// Gather returns the candidates for elements, deterministic for a given input.
//
// For every k-permutation of the elements (k from 2 to n for Strict, 1 to n for All),
// in lexicographic order of element indexes, it emits the elements joined by each
// separator. The bare concatenation is also emitted with a leading and a trailing "_".
// A single element (k == 1) is emitted as itself and with the underscore variants.
// Duplicates keep their first position.
func Gather(elements []string, method Method) ([]string, error) {
	minK := 2
	switch method {
	case Strict:
	case All:
		minK = 1
	default:
		return nil, fmt.Errorf("unknown permutation method %q", method)
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for k := minK; k <= len(elements); k++ {
		permutations(len(elements), k, func(idx []int) {
			parts := make([]string, k)
			for i, j := range idx {
				parts[i] = elements[j]
			}

			if k == 1 {
				add(parts[0])
				add("_" + parts[0])
				add(parts[0] + "_")
				return
			}

			for _, sep := range Separators {
				joined := strings.Join(parts, sep)
				add(joined)
				if sep == "" {
					add("_" + joined)
					add(joined + "_")
				}
			}
		})
	}

	return out, nil
}

// Count returns how many k-permutations Gather walks before deduplication.
func Count(n int, method Method) int {
	minK := 2
	if method == All {
		minK = 1
	}
	total := 0
	for k := minK; k <= n; k++ {
		p := 1
		for i := 0; i < k; i++ {
			p *= n - i
		}
		total += p
	}
	return total
}

// permutations calls fn with each ordered selection of k distinct indexes in [0, n).
func permutations(n, k int, fn func([]int)) {
	idx := make([]int, 0, k)
	used := make([]bool, n)

	var walk func()
	walk = func() {
		if len(idx) == k {
			fn(idx)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			idx = append(idx, i)
			walk()
			idx = idx[:len(idx)-1]
			used[i] = false
		}
	}
	walk()
}
