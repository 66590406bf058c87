package model

import "strings"

// Reason is a weakness tag reported by the complexity scorer.
type Reason string

// Weakness tags in the order the scorer evaluates them.
const (
	ReasonTooShort       Reason = "too short (<6)"
	ReasonNoLowercase    Reason = "no lowercase"
	ReasonNoUppercase    Reason = "no uppercase"
	ReasonNoDigits       Reason = "no digits"
	ReasonNoSymbols      Reason = "no symbols"
	ReasonFewUniqueChars Reason = "too few unique characters"
)

// String returns the tag text.
func (r Reason) String() string {
	return string(r)
}

// reasonAdvice maps each weakness to a remediation hint shown by the writers.
var reasonAdvice = map[Reason]string{
	ReasonTooShort:       "Use at least 12 characters; length adds more strength than any other rule.",
	ReasonNoLowercase:    "Add lowercase letters (a-z).",
	ReasonNoUppercase:    "Add uppercase letters (A-Z).",
	ReasonNoDigits:       "Add digits (0-9).",
	ReasonNoSymbols:      "Add punctuation or symbols such as ! % _ or #.",
	ReasonFewUniqueChars: "Avoid repeating the same few characters.",
}

// Advice returns a remediation hint for the reason.
// Unknown reasons yield an empty string.
func (r Reason) Advice() string {
	return reasonAdvice[r]
}

// JoinReasons joins reasons with sep, returning empty for none.
func JoinReasons(reasons []Reason, sep string) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, sep)
}
