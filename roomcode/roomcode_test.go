package roomcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFormat(t *testing.T) {
	code := Generate(func(string) bool { return false })

	assert.Len(t, code, 4)
	for _, c := range code {
		assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q", c)
	}
}

func TestGenerateSkipsLiveCodes(t *testing.T) {
	// Reject the first three candidates regardless of value; the fourth
	// must be returned.
	calls := 0
	code := Generate(func(string) bool {
		calls++
		return calls <= 3
	})

	assert.NotEmpty(t, code)
	assert.Equal(t, 4, calls)
}

func TestGenerateDistinct(t *testing.T) {
	seen := make(map[string]bool)
	inUse := func(code string) bool { return seen[code] }

	for i := 0; i < 100; i++ {
		code := Generate(inUse)
		assert.False(t, seen[code])
		seen[code] = true
	}
}
