package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/jonathan/essay-grader/internal/types"
)

// Round applies the rubric's rounding configuration to a value with exact
// decimal semantics. The three modes are distinct behaviors: HALF_UP rounds
// half-way values away from zero, HALF_EVEN to the even neighbor (banker's
// rounding), HALF_DOWN toward zero.
func Round(value decimal.Decimal, rounding types.Rounding) decimal.Decimal {
	places := int32(rounding.Decimals)

	switch rounding.Mode {
	case types.RoundHalfEven:
		return value.RoundBank(places)
	case types.RoundHalfDown:
		return roundHalfDown(value, places)
	default:
		return value.Round(places)
	}
}

// roundHalfDown rounds exact half-way values toward zero and everything else
// to the nearest value at the given scale.
func roundHalfDown(value decimal.Decimal, places int32) decimal.Decimal {
	shifted := value.Shift(places)
	floor := shifted.Floor()
	half := decimal.New(5, -1)

	if shifted.Sub(floor).Equal(half) {
		if shifted.IsNegative() {
			return shifted.Ceil().Shift(-places)
		}
		return floor.Shift(-places)
	}
	return value.Round(places)
}
