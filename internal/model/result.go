package model

import (
	"strings"
	"unicode/utf8"
)

// ScoreResult is the output of the complexity scorer.
type ScoreResult struct {
	// Score is in the range [0, 7] for the built-in scorer.
	Score int `json:"score"`

	// Reasons lists failed checks in evaluation order:
	// length, lowercase, uppercase, digit, symbol, uniqueness.
	Reasons []Reason `json:"reasons"`
}

// TimeUnit is the unit chosen to present a crack-time estimate.
type TimeUnit int

const (
	// UnitSeconds is used below one minute.
	UnitSeconds TimeUnit = iota
	// UnitMinutes is used below one hour.
	UnitMinutes
	// UnitHours is used below one day.
	UnitHours
	// UnitDays is used below one 365-day year.
	UnitDays
	// UnitYears is used for everything longer.
	UnitYears
)

// String returns the plural unit name.
func (u TimeUnit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMinutes:
		return "minutes"
	case UnitHours:
		return "hours"
	case UnitDays:
		return "days"
	case UnitYears:
		return "years"
	default:
		return "unknown"
	}
}

// MarshalText encodes the unit as its name.
func (u TimeUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// CrackTimeEstimate is the estimated time to enumerate every password with
// the observed charset and length.
type CrackTimeEstimate struct {
	// CharsetSize is the inferred brute-force alphabet size.
	CharsetSize int `json:"charset_size"`

	// Length is the password length in characters.
	Length int `json:"length"`

	// Seconds is the estimate in seconds. It saturates at math.MaxFloat64
	// for inputs whose exact value does not fit in a float64.
	Seconds float64 `json:"seconds"`

	// Value is the estimate expressed in Unit, saturated like Seconds.
	Value float64 `json:"value"`

	// Unit is the chosen presentation unit.
	Unit TimeUnit `json:"unit"`

	// Formatted is Value with two decimals followed by the unit name,
	// computed at arbitrary precision.
	Formatted string `json:"formatted"`
}

// String returns the formatted estimate.
func (e CrackTimeEstimate) String() string {
	return e.Formatted
}

// EvaluationResult is the complete, transient output of one evaluation.
type EvaluationResult struct {
	// Password is the evaluated input, verbatim.
	Password string `json:"password"`

	// InCorpus is true when the password was found in the breached corpus.
	InCorpus bool `json:"in_corpus"`

	// Classification is the final strength label.
	Classification Classification `json:"classification"`

	// Score is the complexity score before the corpus override.
	Score int `json:"score"`

	// Reasons lists the weaknesses found by the scorer.
	Reasons []Reason `json:"reasons"`

	// CrackTime is the brute-force estimate.
	CrackTime CrackTimeEstimate `json:"crack_time"`
}

// MaskedPassword returns the password with every character replaced by '*'.
func (r *EvaluationResult) MaskedPassword() string {
	return strings.Repeat("*", utf8.RuneCountInString(r.Password))
}
