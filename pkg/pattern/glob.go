package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// glob is one compiled shell-style basename pattern. Compilation picks
// the cheapest strategy that preserves glob semantics: exact string,
// backtracking "*"/"?" matcher, regexp only when a character class is
// present.
type glob struct {
	exact    string
	wildcard string
	re       *regexp.Regexp
}

// compileGlob compiles one basename pattern
func compileGlob(pat string) (glob, error) {
	if pat == "" {
		return glob{}, fmt.Errorf("empty pattern")
	}
	if err := checkCharClasses(pat); err != nil {
		return glob{}, err
	}

	if !strings.ContainsAny(pat, "*?[") {
		return glob{exact: pat}, nil
	}
	if !strings.ContainsRune(pat, '[') {
		return glob{wildcard: pat}, nil
	}

	re, err := regexp.Compile("^" + globToRegex(pat) + "$")
	if err != nil {
		return glob{}, fmt.Errorf("compile %q: %v", pat, err)
	}
	return glob{re: re}, nil
}

// match matches one basename against the compiled pattern
func (g glob) match(name string) bool {
	switch {
	case g.exact != "":
		return name == g.exact
	case g.wildcard != "":
		return matchWildcard(g.wildcard, name)
	case g.re != nil:
		return g.re.MatchString(name)
	}
	return false
}

// checkCharClasses rejects patterns with an unterminated "[...]" class
func checkCharClasses(pat string) error {
	for i := 0; i < len(pat); i++ {
		if pat[i] != '[' {
			continue
		}
		end := findCharClassEnd(pat, i)
		if end < 0 {
			return fmt.Errorf("unterminated character class in %q", pat)
		}
		i = end
	}
	return nil
}

// findCharClassEnd locates the closing bracket for a glob char class
func findCharClassEnd(pat string, start int) int {
	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}
	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}
	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}
	return -1
}

// matchWildcard matches a "*"/"?" pattern against one basename without
// regexp, backtracking to the most recent star on mismatch.
func matchWildcard(pattern, input string) bool {
	pIdx := 0
	sIdx := 0
	starPattern := -1
	starInput := 0

	for sIdx < len(input) {
		if pIdx < len(pattern) && (pattern[pIdx] == '?' || pattern[pIdx] == input[sIdx]) {
			pIdx++
			sIdx++
			continue
		}

		if pIdx < len(pattern) && pattern[pIdx] == '*' {
			starPattern = pIdx
			pIdx++
			starInput = sIdx
			continue
		}

		if starPattern >= 0 {
			pIdx = starPattern + 1
			starInput++
			sIdx = starInput
			continue
		}

		return false
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// globToRegex converts a basename glob to a regexp body
func globToRegex(pat string) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		if next, ok := appendCharClassRegex(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexEscapeByte(c))
		}
	}

	return b.String()
}

// appendCharClassRegex appends a parsed glob char class (`[...]`) as a regex class
func appendCharClassRegex(pat string, start int, b *strings.Builder) (int, bool) {
	if pat[start] != '[' {
		return start, false
	}

	end := findCharClassEnd(pat, start)
	if end < 0 {
		return start, false
	}

	b.WriteByte('[')

	idx := start + 1
	if idx < end && pat[idx] == '!' {
		// shell-style class negation "[!x]" maps to regex "[^x]"
		b.WriteByte('^')
		idx++
	} else if idx < end && pat[idx] == '^' {
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		// leading ']' is literal in both glob and regex classes
		b.WriteByte(']')
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' {
			b.WriteString(`\\`)
			continue
		}
		b.WriteByte(pat[idx])
	}

	b.WriteByte(']')
	return end, true
}

// regexEscapeByte escapes one byte for regexp source
func regexEscapeByte(c byte) string {
	switch c {
	case '.', '+', '(', ')', '|', '{', '}', '[', ']', '^', '$', '\\':
		return `\` + string(c)
	default:
		return string(c)
	}
}
