package testutil

import (
	"strings"
	"testing"
)

// AssertSequence checks that want appears in tokens as a contiguous run
func AssertSequence(t *testing.T, tokens []string, want ...string) {
	t.Helper()
	if IndexOfSequence(tokens, want...) < 0 {
		t.Errorf("sequence %q not found in %q", want, tokens)
	}
}

// IndexOfSequence returns the start of the first contiguous run of want, or -1
func IndexOfSequence(tokens []string, want ...string) int {
	if len(want) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(want) <= len(tokens); i++ {
		for j, w := range want {
			if tokens[i+j] != w {
				continue outer
			}
		}
		return i
	}
	return -1
}

// AssertNoPlaceholders checks that no token still contains a ${...} reference
func AssertNoPlaceholders(t *testing.T, tokens []string) {
	t.Helper()
	for _, tok := range tokens {
		if strings.Contains(tok, "${") {
			t.Errorf("unresolved placeholder in %q", tok)
		}
	}
}

// Count returns how many tokens equal want
func Count(tokens []string, want string) int {
	n := 0
	for _, tok := range tokens {
		if tok == want {
			n++
		}
	}
	return n
}
