// Package topic names bus messages and matches them against subscription
// patterns.
//
// Topics are dot-separated segments such as "selection.range.selected".
// Patterns may use "*" for one segment and "**" for any number of segments.
package topic

import "strings"

// Wildcard segments.
const (
	AnyOne   = "*"
	AnyDepth = "**"
)

const separator = "."

// Topic is the name a message is published under.
type Topic string

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Valid returns true if every segment is non-empty and none is a wildcard.
func (t Topic) Valid() bool {
	segs := split(string(t))
	if len(segs) == 0 {
		return false
	}
	for _, s := range segs {
		if s == "" || s == AnyOne || s == AnyDepth {
			return false
		}
	}
	return true
}

// Pattern selects topics for a subscription.
type Pattern string

// Valid returns true if the pattern has no empty segments.
func (p Pattern) Valid() bool {
	segs := split(string(p))
	return len(segs) > 0 && !containsEmpty(segs)
}

// Match returns true if t matches the pattern.
func (p Pattern) Match(t Topic) bool {
	return match(split(string(p)), split(string(t)))
}

func match(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == AnyDepth {
			for i := len(segs); i >= 0; i-- {
				if match(pat[1:], segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 || (pat[0] != AnyOne && pat[0] != segs[0]) {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, separator)
}

func containsEmpty(segs []string) bool {
	for _, s := range segs {
		if s == "" {
			return true
		}
	}
	return false
}
