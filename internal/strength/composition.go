package strength

// Charset sizes used to infer the brute-force alphabet.
const (
	lowercaseCharset = 26
	uppercaseCharset = 26
	digitCharset     = 10
	symbolCharset    = 32

	// fallbackCharset avoids a zero base when no category is present.
	fallbackCharset = 26
)

// Composition summarizes the character makeup of a password.
// It is computed in a single pass and shared by the scorer and the
// crack-time estimator.
type Composition struct {
	// Length is the number of characters (code points).
	Length int

	// Unique is the number of distinct characters.
	Unique int

	HasLower  bool
	HasUpper  bool
	HasDigit  bool
	HasSymbol bool
}

// Analyze classifies every character of password once.
func Analyze(password string) Composition {
	var c Composition
	seen := make(map[rune]struct{}, len(password))

	for _, r := range password {
		c.Length++
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			c.Unique++
		}

		switch {
		case isLower(r):
			c.HasLower = true
		case isUpper(r):
			c.HasUpper = true
		case isDigit(r):
			c.HasDigit = true
		case isSymbol(r):
			c.HasSymbol = true
		}
	}
	return c
}

// CharsetSize returns the sum of the alphabet sizes of every category
// present, or 26 when none is.
func (c Composition) CharsetSize() int {
	size := 0
	if c.HasLower {
		size += lowercaseCharset
	}
	if c.HasUpper {
		size += uppercaseCharset
	}
	if c.HasDigit {
		size += digitCharset
	}
	if c.HasSymbol {
		size += symbolCharset
	}
	if size == 0 {
		return fallbackCharset
	}
	return size
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// isSymbol reports printable ASCII that is not alphanumeric.
// Space (0x20) and the control characters fall below '!'.
func isSymbol(r rune) bool {
	return r >= '!' && r <= '~' && !isLower(r) && !isUpper(r) && !isDigit(r)
}
