package refdata

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher is an ordered, compiled list of phrases or patterns.
// A nil Matcher matches nothing.
type Matcher struct {
	entries []matcherEntry
}

type matcherEntry struct {
	source string
	re     *regexp.Regexp
}

// CompilePhrases builds a case-insensitive Matcher from literal phrases.
// Phrases match on word boundaries, whitespace inside a phrase matches any
// run of whitespace and a trailing plural "s" is tolerated.
func CompilePhrases(phrases []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range phrases {
		re, err := phraseRegexp(p)
		if err != nil {
			return nil, err
		}
		m.entries = append(m.entries, matcherEntry{source: p, re: re})
	}
	return m, nil
}

// CompilePatterns builds a case-insensitive Matcher from regular expressions.
func CompilePatterns(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p, err)
		}
		m.entries = append(m.entries, matcherEntry{source: p, re: re})
	}
	return m, nil
}

func phraseRegexp(phrase string) (*regexp.Regexp, error) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return nil, fmt.Errorf("%w: empty phrase", ErrInvalidTable)
	}

	var b strings.Builder
	b.WriteString("(?i)")
	if isWordByte(p[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(strings.Join(strings.Fields(regexp.QuoteMeta(p)), `\s+`))
	if isWordByte(p[len(p)-1]) {
		b.WriteString(`s?\b`)
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile phrase %q: %w", phrase, err)
	}
	return re, nil
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Any reports whether any entry matches text.
func (m *Matcher) Any(text string) bool {
	_, ok := m.First(text)
	return ok
}

// First returns the text matched by the first entry (in table order) that matches.
func (m *Matcher) First(text string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, e := range m.entries {
		if s := e.re.FindString(text); s != "" {
			return s, true
		}
	}
	return "", false
}

// All returns the matched text of every entry that matches, in table order.
func (m *Matcher) All(text string) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, e := range m.entries {
		if s := e.re.FindString(text); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of entries.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
