// Package feedback splits a category recommendation into its labelled
// sections.
package feedback

import (
	"strings"
	"unicode"
)

// Section labels as they appear in model output.
const (
	InsightLabel   = "**Insight:**"
	FollowUpLabel  = "**Follow-up Questions:**"
	NextStepLabel  = "**Next Step:**"
	emphasisMarker = "**"
)

// Sections holds the three parts of one category's feedback. Missing
// parts are empty strings.
type Sections struct {
	Insight  string
	FollowUp string
	NextStep string
}

// Empty reports whether no section was found.
func (s Sections) Empty() bool {
	return s.Insight == "" && s.FollowUp == "" && s.NextStep == ""
}

// Parse extracts each labelled section from text. Labels are located
// independently and may appear in any order. A section runs from its label
// to the start of the next bold label ("**Name:**" on one line) or the end
// of text, trimmed. Unlike a plain "stop at the next **" rule, inline
// emphasis such as "**strong**" and stray "**" markers stay in the capture.
// It never fails.
func Parse(text string) Sections {
	return Sections{
		Insight:  capture(text, InsightLabel),
		FollowUp: capture(text, FollowUpLabel),
		NextStep: capture(text, NextStepLabel),
	}
}

// Format parses text and reports whether anything was found. When ok is
// false the caller should show text verbatim.
func Format(text string) (s Sections, ok bool) {
	s = Parse(text)
	return s, !s.Empty()
}

func capture(text, label string) string {
	i := strings.Index(text, label)
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeftFunc(text[i+len(label):], unicode.IsSpace)
	return strings.TrimSpace(rest[:nextLabel(rest)])
}

// nextLabel returns the offset of the first bold label in s, or len(s).
// Every "**" is tried as a label start on its own; markers are never
// paired with each other.
func nextLabel(s string) int {
	for from := 0; ; {
		open := strings.Index(s[from:], emphasisMarker)
		if open < 0 {
			return len(s)
		}
		open += from
		if isLabelAt(s[open:]) {
			return open
		}
		from = open + 1
	}
}

// isLabelAt reports whether s starts with "**Name:**", where Name is
// non-empty, stays on one line, holds no '*' and has no surrounding space.
func isLabelAt(s string) bool {
	body := s[len(emphasisMarker):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[:nl]
	}
	end := strings.Index(body, ":"+emphasisMarker)
	if end <= 0 {
		return false
	}
	name := body[:end]
	if strings.ContainsRune(name, '*') {
		return false
	}
	return !unicode.IsSpace(rune(name[0])) && !unicode.IsSpace(rune(name[len(name)-1]))
}
