// Package matcher implements conjunctive keyword matching with highlight
// annotation over flattened mind-map lines.
//
// A keyword specification holds one or more regular expressions separated by
// a delimiter. A line qualifies only when every pattern matches it; matching
// short-circuits on the first pattern that misses. Qualifying lines are
// returned with every occurrence of every pattern wrapped in the highlight
// color.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// DefaultDelimiter separates multiple conjunctive patterns in a keyword
// specification.
const DefaultDelimiter = ",,"

// DefaultLineBreakPlaceholder replaces literal line breaks in matched lines
// so every match prints on a single terminal line.
const DefaultLineBreakPlaceholder = ` \n `

// highlight renders a matched substring. Color output is suppressed
// automatically by fatih/color when stdout is not a terminal.
var highlight = color.New(color.FgRed).SprintFunc()

// KeywordSet is an ordered set of compiled patterns that must all match a
// line for it to qualify. A KeywordSet is immutable after Compile and safe
// for concurrent use.
type KeywordSet struct {
	patterns []*regexp.Regexp
}

// Compile splits spec on delimiter and compiles each non-empty pattern.
// Case-insensitive sets prefix every pattern with (?i). A pattern that fails
// to compile fails the whole set: it came from the command line and would
// fail identically for every file searched.
func Compile(spec, delimiter string, caseSensitive bool) (*KeywordSet, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	parts := strings.Split(spec, delimiter)
	ks := &KeywordSet{patterns: make([]*regexp.Regexp, 0, len(parts))}
	for _, p := range parts {
		if p == "" {
			continue
		}
		expr := p
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid keyword pattern %q: %w", p, err)
		}
		ks.patterns = append(ks.patterns, re)
	}

	if len(ks.patterns) == 0 {
		return nil, fmt.Errorf("keyword specification %q contains no patterns", spec)
	}
	return ks, nil
}

// Len returns the number of patterns in the set.
func (ks *KeywordSet) Len() int {
	return len(ks.patterns)
}

// Highlight reports whether line matches every pattern in the set. On a
// match it returns a copy of the line with every occurrence of every pattern
// wrapped in the highlight color; on a miss it returns "" and false without
// evaluating the remaining patterns.
//
// Each pattern searches the working copy already annotated by the patterns
// before it, so a pattern whose expression can match the highlight escape
// sequences themselves would misbehave. That constraint is accepted: the
// markup is ANSI color codes, which realistic keyword patterns do not match.
func (ks *KeywordSet) Highlight(line string) (string, bool) {
	out := line
	for _, re := range ks.patterns {
		if !re.MatchString(out) {
			return "", false
		}
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			return highlight(m)
		})
	}
	return out, true
}

// ReplaceLineBreaks substitutes literal newline and carriage-return
// characters in s with placeholder for single-line terminal display.
func ReplaceLineBreaks(s, placeholder string) string {
	s = strings.ReplaceAll(s, "\n", placeholder)
	return strings.ReplaceAll(s, "\r", placeholder)
}
