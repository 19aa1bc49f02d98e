// Package testutils contains code that is useful in tests.
package testutils

import (
	"math/rand"
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/rebacs/rebacs/pkg/rebac"
)

const (
	AllChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// WitnessCmpTransformer sorts witness slices by entity before comparison,
// for asserting on expansion results regardless of traversal order.
var WitnessCmpTransformer = cmp.Transformer("Sort", func(in []rebac.Witness) []rebac.Witness {
	out := append([]rebac.Witness(nil), in...) // Copy input to avoid mutating it

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Entity.String() < out[j].Entity.String()
	})

	return out
})

func CreateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = AllChars[rand.Intn(len(AllChars))]
	}
	return string(b)
}
