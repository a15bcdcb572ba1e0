package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultProximityWindow is how many characters after a label match are
// scanned for a value. 140 is wide enough to span a handful of table cells
// without bleeding into the next labeled section of the page.
const DefaultProximityWindow = 140

var (
	// numberRe matches the first signed decimal token in a text fragment.
	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// whitespaceRe collapses whitespace runs so labels and values split
	// across tag boundaries end up a predictable distance apart.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ParseNumber coerces a report cell into a float. Thousands separators and
// percent signs are stripped first. Returns nil for anything that does not
// parse, so one malformed cell never aborts a row or a report.
func ParseNumber(s string) *float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeText collapses whitespace runs to single spaces and trims the
// ends. Single-line text is what the proximity scan operates on.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// FirstNumberNear returns the first number appearing within window characters
// after the first match of label, or nil when the label is missing or no
// number falls inside the window. The label match wins over later matches and
// the first in-window number wins over later ones; there is no backward scan.
func FirstNumberNear(text string, label *regexp.Regexp, window int) *float64 {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	end := loc[1] + window
	if end > len(text) {
		end = len(text)
	}
	snippet := strings.ReplaceAll(text[loc[1]:end], ",", "")
	tok := numberRe.FindString(snippet)
	if tok == "" {
		return nil
	}
	return ParseNumber(tok)
}

// FirstNumber returns the first number token anywhere in text, or nil.
func FirstNumber(text string) *float64 {
	tok := numberRe.FindString(strings.ReplaceAll(text, ",", ""))
	if tok == "" {
		return nil
	}
	return ParseNumber(tok)
}
