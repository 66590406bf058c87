package strength

import "github.com/nao1215/pwcheck/internal/model"

// Classification thresholds. A score at or below a threshold maps to the
// matching label; anything above goodMaxScore is Excellent.
const (
	weakMaxScore = 3
	fairMaxScore = 5
	goodMaxScore = 7
)

// Classify maps a score and corpus membership to a classification.
// Corpus membership always wins and yields VeryWeak. The thresholds do not
// assume the score came from Score, so scores above 7 yield Excellent.
func Classify(score int, inCorpus bool) model.Classification {
	switch {
	case inCorpus:
		return model.VeryWeak
	case score <= weakMaxScore:
		return model.Weak
	case score <= fairMaxScore:
		return model.Fair
	case score <= goodMaxScore:
		return model.Good
	default:
		return model.Excellent
	}
}
