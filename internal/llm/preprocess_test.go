package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberLines(t *testing.T) {
	t.Run("NumbersEachLine", func(t *testing.T) {
		got := NumberLines("x=1\ny=2\n")
		assert.Equal(t, "1: x=1\n2: y=2\n", got)
	})

	t.Run("NoTrailingNewline", func(t *testing.T) {
		got := NumberLines("alpha\nbeta")
		assert.Equal(t, "1: alpha\n2: beta\n", got)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Equal(t, "", NumberLines(""))
	})

	t.Run("PreservesBlankLines", func(t *testing.T) {
		got := NumberLines("a\n\nb\n")
		assert.Equal(t, "1: a\n2: \n3: b\n", got)
	})

	t.Run("Deterministic", func(t *testing.T) {
		in := "for i := range xs {\n\tsum += xs[i]\n}\n"
		assert.Equal(t, NumberLines(in), NumberLines(in))
	})
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 2, CountLines("x=1\ny=2\n"))
	assert.Equal(t, 2, CountLines("x=1\ny=2"))
	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 1, CountLines("\n"))
}
