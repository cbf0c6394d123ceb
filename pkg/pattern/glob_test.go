package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"exact_match", "README.rst", "README.rst", true},
		{"exact_mismatch", "README.rst", "README.md", false},
		{"star_suffix", "*.pyx", "x.pyx", true},
		{"star_suffix_rejects_trailing", "*.pyx", "x.pyx.bak", false},
		{"star_prefix", "test_*", "test_core.py", true},
		{"lone_star", "*", "anything.txt", true},
		{"question_mark", "a?.txt", "ab.txt", true},
		{"question_mark_needs_one_char", "a?.txt", "a.txt", false},
		{"multiple_stars", "*.tar.*", "dist.tar.gz", true},
		{"char_class", "*.py[cod]", "module.pyc", true},
		{"char_class_mismatch", "*.py[cod]", "module.pyx", false},
		{"negated_char_class", "[!._]*", "visible.txt", true},
		{"negated_char_class_mismatch", "[!._]*", ".hidden", false},
		{"class_with_range", "v[0-9].txt", "v3.txt", true},
		{"empty_input_against_star", "*", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := compileGlob(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.match(tt.input),
				"pattern %q vs %q", tt.pattern, tt.input)
		})
	}
}

func TestCompileGlob_Errors(t *testing.T) {
	for _, pattern := range []string{"", "[abc", "*.py[", "x[!"} {
		t.Run("pattern_"+pattern, func(t *testing.T) {
			_, err := compileGlob(pattern)
			assert.Error(t, err, "pattern %q should not compile", pattern)
		})
	}
}

func TestCompileGlob_StrategySelection(t *testing.T) {
	g, err := compileGlob("exact.txt")
	require.NoError(t, err)
	assert.NotEmpty(t, g.exact)

	g, err = compileGlob("*.txt")
	require.NoError(t, err)
	assert.NotEmpty(t, g.wildcard)
	assert.Nil(t, g.re)

	g, err = compileGlob("*.py[co]")
	require.NoError(t, err)
	assert.NotNil(t, g.re)
}

func TestMatchWildcard_Backtracking(t *testing.T) {
	// The star must be able to re-expand after a failed literal match
	assert.True(t, matchWildcard("*ab", "aab"))
	assert.True(t, matchWildcard("a*b*c", "axxbyyc"))
	assert.False(t, matchWildcard("a*b*c", "axxbyy"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"docs/", "docs"},
		{"./docs/a.rst", "docs/a.rst"},
		{"docs//img", "docs/img"},
		{"docs/./img", "docs/img"},
		{`docs\img`, "docs/img"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}
