package model

import "fmt"

// Classification is the strength label assigned to a password.
// Values are totally ordered by increasing strength, so comparisons such as
// c <= Weak are meaningful.
type Classification int

const (
	// VeryWeak is assigned to every password found in the breached corpus,
	// whatever its complexity score.
	VeryWeak Classification = iota

	// Weak is assigned to scores of 3 or less.
	Weak

	// Fair is assigned to scores of 4 or 5.
	Fair

	// Good is assigned to scores of 6 or 7.
	Good

	// Excellent is assigned to scores above 7. The built-in scorer tops out
	// at 7, so only synthetic scores reach it.
	Excellent
)

// Classifications lists every classification from weakest to strongest.
var Classifications = []Classification{VeryWeak, Weak, Fair, Good, Excellent}

// String returns the upper-case identifier of the classification.
func (c Classification) String() string {
	switch c {
	case VeryWeak:
		return "VERY_WEAK"
	case Weak:
		return "WEAK"
	case Fair:
		return "FAIR"
	case Good:
		return "GOOD"
	case Excellent:
		return "EXCELLENT"
	default:
		return "UNKNOWN"
	}
}

// Label returns the human-readable label used by the report writers.
func (c Classification) Label() string {
	switch c {
	case VeryWeak:
		return "Very weak"
	case Weak:
		return "Weak"
	case Fair:
		return "Fair"
	case Good:
		return "Good"
	case Excellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the classification as its identifier.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a classification identifier.
func (c *Classification) UnmarshalText(text []byte) error {
	parsed, err := ParseClassification(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClassification parses an identifier such as "WEAK" or "very_weak".
// Matching is case-insensitive and accepts '-' in place of '_'.
func ParseClassification(s string) (Classification, error) {
	normalized := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
		case ch == '-' || ch == ' ':
			ch = '_'
		}
		normalized = append(normalized, ch)
	}

	for _, c := range Classifications {
		if c.String() == string(normalized) {
			return c, nil
		}
	}
	return VeryWeak, fmt.Errorf("unknown classification %q", s)
}
