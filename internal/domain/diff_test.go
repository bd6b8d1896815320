package domain

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffIDs(t *testing.T) {
	attach, detach := DiffIDs([]string{"a", "b", "c"}, []string{"b", "c", "d"})
	assert.ElementsMatch(t, []string{"d"}, attach)
	assert.ElementsMatch(t, []string{"a"}, detach)

	attach, detach = DiffIDs(nil, []string{"x"})
	assert.ElementsMatch(t, []string{"x"}, attach)
	assert.Empty(t, detach)

	attach, detach = DiffIDs([]string{"x"}, nil)
	assert.Empty(t, attach)
	assert.ElementsMatch(t, []string{"x"}, detach)

	attach, detach = DiffIDs([]string{"a", "b"}, []string{"a", "b"})
	assert.Empty(t, attach)
	assert.Empty(t, detach)
}

// 把增量套回原集合必须恢复目标集合
func TestDiffIDs_ApplyRestoresTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		current := randomIDSet(rng)
		next := randomIDSet(rng)

		attach, detach := DiffIDs(current, next)

		result := make(map[string]bool)
		for _, id := range current {
			result[id] = true
		}
		for _, id := range detach {
			delete(result, id)
		}
		for _, id := range attach {
			require.False(t, result[id], "attach 里出现了已存在的 id")
			result[id] = true
		}

		expected := make(map[string]bool)
		for _, id := range next {
			expected[id] = true
		}
		assert.Equal(t, expected, result)
	}
}

func randomIDSet(rng *rand.Rand) []string {
	n := rng.Intn(8)
	seen := make(map[string]bool)
	out := make([]string, 0, n)
	for len(out) < n {
		id := "id-" + strconv.Itoa(rng.Intn(10))
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
