package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexOfSequence(t *testing.T) {
	tokens := []string{"-cp", "a", "--username", "Ash", "--username"}
	assert.Equal(t, 2, IndexOfSequence(tokens, "--username", "Ash"))
	assert.Equal(t, -1, IndexOfSequence(tokens, "Ash", "-cp"))
	assert.Equal(t, 0, IndexOfSequence(tokens))
	assert.Equal(t, -1, IndexOfSequence(tokens, "--username", "Ash", "x", "y"))
	assert.Equal(t, 2, Count(tokens, "--username"))
}
