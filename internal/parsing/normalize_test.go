package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Organization", "organization"},
		{"Evidence & Support", "evidence_support"},
		{"Grammar, Mechanics & Spelling!", "grammar_mechanics_spelling"},
		{"  Padded Name  ", "padded_name"},
		{"UPPER case MIX", "upper_case_mix"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), "slugify(%q)", tt.in)
	}
}

func TestSlugify_CapsLength(t *testing.T) {
	long := strings.Repeat("abcde ", 20)
	slug := slugify(long)
	assert.LessOrEqual(t, len(slug), maxSlugLength)
}

func TestNonEmptyLines(t *testing.T) {
	lines := nonEmptyLines("  first \n\n\t\nsecond\n   \nthird  ")
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestNonEmptyLines_Empty(t *testing.T) {
	assert.Empty(t, nonEmptyLines("   \n\n  "))
}
