package strength

import (
	"math"
	"math/big"
	"strconv"

	"github.com/nao1215/pwcheck/internal/model"
)

// TriesPerSecond is the assumed guess rate of an attacker.
// It is a round figure for offline guessing against a fast hash, not a
// measured benchmark.
const TriesPerSecond = 1_000_000

// unitStep is a presentation unit and the factor to the next larger unit.
type unitStep struct {
	unit model.TimeUnit
	next float64
}

var unitSteps = []unitStep{
	{model.UnitSeconds, 60},
	{model.UnitMinutes, 60},
	{model.UnitHours, 24},
	{model.UnitDays, 365},
}

// EstimateCrackTime estimates how long an exhaustive search over the
// password's inferred charset and length would take at TriesPerSecond.
//
// The number of combinations is computed exactly with math/big and the
// seconds are its correctly rounded quotient, so long passwords never
// overflow; beyond float64 range the estimate saturates. Values always
// print with two decimals. The empty password has exactly one combination.
func EstimateCrackTime(password string) model.CrackTimeEstimate {
	return estimateComposition(Analyze(password))
}

func estimateComposition(c Composition) model.CrackTimeEstimate {
	charset := c.CharsetSize()

	combinations := new(big.Int).Exp(big.NewInt(int64(charset)), big.NewInt(int64(c.Length)), nil)
	seconds := secondsFor(combinations)

	value := seconds
	unit := model.UnitYears
	for _, step := range unitSteps {
		if value < step.next {
			unit = step.unit
			break
		}
		value /= step.next
	}

	return model.CrackTimeEstimate{
		CharsetSize: charset,
		Length:      c.Length,
		Seconds:     seconds,
		Value:       value,
		Unit:        unit,
		Formatted:   strconv.FormatFloat(value, 'f', 2, 64) + " " + unit.String(),
	}
}

// secondsFor returns combinations / TriesPerSecond rounded to the nearest
// float64, clamped to math.MaxFloat64.
func secondsFor(combinations *big.Int) float64 {
	f, _ := new(big.Rat).SetFrac(combinations, big.NewInt(TriesPerSecond)).Float64()
	if math.IsInf(f, 1) {
		return math.MaxFloat64
	}
	return f
}
