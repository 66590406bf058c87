package strength

import "github.com/nao1215/pwcheck/internal/model"

// Score points and thresholds.
const (
	// MaxScore is the highest score Score can return.
	MaxScore = 7

	longLength   = 12
	mediumLength = 8
	shortLength  = 6

	// minUnique is the distinct-character count below which the
	// uniqueness advisory is raised.
	minUnique = 4
)

// Score computes the complexity score of password and the reasons it
// lost points.
//
// Length awards 3 points at 12 characters or more, 2 at 8 to 11, 1 at 6 to
// 7 and none below 6. Each of lowercase, uppercase, digit and symbol adds 1
// when present. Fewer than 4 distinct characters adds a reason without
// changing the score.
func Score(password string) model.ScoreResult {
	return scoreComposition(Analyze(password))
}

func scoreComposition(c Composition) model.ScoreResult {
	result := model.ScoreResult{Reasons: make([]model.Reason, 0, 6)}

	switch {
	case c.Length >= longLength:
		result.Score += 3
	case c.Length >= mediumLength:
		result.Score += 2
	case c.Length >= shortLength:
		result.Score++
	default:
		result.Reasons = append(result.Reasons, model.ReasonTooShort)
	}

	checks := []struct {
		present bool
		reason  model.Reason
	}{
		{c.HasLower, model.ReasonNoLowercase},
		{c.HasUpper, model.ReasonNoUppercase},
		{c.HasDigit, model.ReasonNoDigits},
		{c.HasSymbol, model.ReasonNoSymbols},
	}
	for _, check := range checks {
		if check.present {
			result.Score++
		} else {
			result.Reasons = append(result.Reasons, check.reason)
		}
	}

	if c.Unique < minUnique {
		result.Reasons = append(result.Reasons, model.ReasonFewUniqueChars)
	}

	return result
}
