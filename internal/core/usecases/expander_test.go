// internal/core/usecases/expander_test.go
package usecases

import (
	"testing"

	"blackbird/internal/core/domain"
	"blackbird/internal/testutil"
)

func values(ids []domain.Identifier) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Value)
	}
	return out
}

func TestExpand_PassThrough(t *testing.T) {
	tests := []struct {
		name  string
		seeds []string
		mode  domain.PermutationMode
		want  []string
	}{
		{"none keeps order", []string{"bob", "alice"}, domain.PermuteNone, []string{"bob", "alice"}},
		{"single seed strict", []string{"alice"}, domain.PermuteStrict, []string{"alice"}},
		{"single seed all", []string{"alice"}, domain.PermuteAll, []string{"alice"}},
		{"single seed none", []string{"alice"}, domain.PermuteNone, []string{"alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := Expand(tt.seeds, tt.mode)
			testutil.AssertNoError(t, err, "expand")
			got := values(exp.Identifiers)
			testutil.AssertEqual(t, len(got), len(tt.want), "count")
			for i := range tt.want {
				testutil.AssertEqual(t, got[i], tt.want[i], "identifier")
			}
			testutil.AssertEqual(t, exp.Generated, 0, "nothing generated")
			testutil.AssertEqual(t, exp.Orderings, 0, "nothing walked")
		})
	}
}

func TestExpand_Empty(t *testing.T) {
	for _, mode := range []domain.PermutationMode{domain.PermuteNone, domain.PermuteStrict, domain.PermuteAll} {
		exp, err := Expand(nil, mode)
		testutil.AssertNoError(t, err, mode.String())
		testutil.AssertEqual(t, len(exp.Identifiers), 0, "empty "+mode.String())
	}
}

func TestExpand_Permutations(t *testing.T) {
	seeds := []string{"alice", "bob"}

	strict, err := Expand(seeds, domain.PermuteStrict)
	testutil.AssertNoError(t, err, "strict")
	again, err := Expand(seeds, domain.PermuteStrict)
	testutil.AssertNoError(t, err, "strict again")
	all, err := Expand(seeds, domain.PermuteAll)
	testutil.AssertNoError(t, err, "all")

	testutil.AssertTrue(t, len(strict.Identifiers) > 0, "strict not empty")
	testutil.AssertEqual(t, strict.Generated, len(strict.Identifiers), "generated reported")
	testutil.AssertEqual(t, strict.Generated, 12, "strict size")
	testutil.AssertEqual(t, strict.Orderings, 2, "alice+bob and bob+alice")
	testutil.AssertEqual(t, all.Orderings, 4, "single seeds walked too")
	testutil.AssertEqual(t, len(again.Identifiers), len(strict.Identifiers), "deterministic size")
	for i := range strict.Identifiers {
		testutil.AssertEqual(t, again.Identifiers[i], strict.Identifiers[i], "deterministic order")
	}

	testutil.AssertTrue(t, all.Generated > strict.Generated, "all is larger")
	allValues := values(all.Identifiers)
	for _, v := range values(strict.Identifiers) {
		testutil.AssertContains(t, allValues, v, "all contains strict")
	}

	for _, id := range all.Identifiers {
		testutil.AssertEqual(t, id.Kind, domain.KindUsername, "username kind")
	}
}
