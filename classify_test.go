package gamba_test

import (
	"testing"

	"github.com/Colton1skees/GAMBA"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("Linear", func(t *testing.T) {
		c, err := gamba.Classify("2*x + 3*y", 8)
		require.NoError(t, err)
		assert.Equal(t, 2, c.VarCount)
		assert.True(t, c.Linear)
		assert.Equal(t, 7, c.StringLen)
		assert.Equal(t, 7, c.NodeCount)
		assert.Equal(t, 0, c.Alternation)
		assert.Equal(t, 2, c.Terms)
	})

	t.Run("Mixed", func(t *testing.T) {
		c, err := gamba.Classify("(x&y)+z", 8)
		require.NoError(t, err)
		assert.Equal(t, 3, c.VarCount)
		assert.False(t, c.Linear)
		assert.Equal(t, 1, c.Alternation)
		assert.Equal(t, 0, c.Terms)
	})

	t.Run("PureBitwise", func(t *testing.T) {
		c, err := gamba.Classify("x&y|~z", 8)
		require.NoError(t, err)
		assert.False(t, c.Linear)
		assert.Equal(t, 0, c.Alternation)
	})

	t.Run("ConstantTerm", func(t *testing.T) {
		c, err := gamba.Classify("x+1", 8)
		require.NoError(t, err)
		assert.True(t, c.Linear)
		assert.Equal(t, 2, c.Terms)
	})

	t.Run("ConstantOnly", func(t *testing.T) {
		c, err := gamba.Classify("0", 8)
		require.NoError(t, err)
		assert.True(t, c.Linear)
		assert.Equal(t, 0, c.VarCount)
		assert.Equal(t, 1, c.Terms)
	})

	t.Run("ErrParse", func(t *testing.T) {
		_, err := gamba.Classify("x**2", 8)
		require.Error(t, err)
	})
}
