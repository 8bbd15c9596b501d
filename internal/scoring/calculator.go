package scoring

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jonathan/essay-grader/internal/types"
)

// ComputeScores combines a rubric and LLM-extracted per-criterion awards into
// a computed score. It is a pure function over immutable inputs: identical
// inputs always produce byte-identical string outputs.
//
// final_points (points mode only) is computed from the unrounded raw/max
// ratio, not from the already-rounded percent, so rounding error never
// compounds.
func ComputeScores(rubric *types.Rubric, extracted *types.ExtractedScores) (*types.ComputedScores, error) {
	maxWeighted := sumMaxPoints(rubric)
	rawWeighted, err := sumAwardedPoints(rubric, extracted)
	if err != nil {
		return nil, err
	}

	if maxWeighted.IsZero() {
		return nil, &ZeroMaxPointsError{}
	}

	percent := rawWeighted.Div(maxWeighted).Mul(decimal.NewFromInt(100))

	rounding := rubric.Scale.Rounding
	decimals := int32(rounding.Decimals)
	rawPoints := Round(rawWeighted, rounding).StringFixed(decimals)
	maxPoints := Round(maxWeighted, rounding).StringFixed(decimals)
	percentStr := Round(percent, rounding).StringFixed(decimals)

	if rubric.Scale.Mode == types.ScalePercent {
		return &types.ComputedScores{
			RawPoints:   rawPoints,
			MaxPoints:   maxPoints,
			Percent:     percentStr,
			FinalPoints: nil,
		}, nil
	}

	if rubric.Scale.TotalPoints == nil {
		return nil, &StructuralError{Message: "points mode requires scale.total_points to be set"}
	}

	scaled := rawWeighted.Div(maxWeighted).Mul(*rubric.Scale.TotalPoints)
	finalPoints := Round(scaled, rounding).StringFixed(decimals)

	return &types.ComputedScores{
		RawPoints:   rawPoints,
		MaxPoints:   maxPoints,
		Percent:     percentStr,
		FinalPoints: &finalPoints,
	}, nil
}

// sumMaxPoints calculates the maximum possible weighted points for a rubric.
func sumMaxPoints(rubric *types.Rubric) decimal.Decimal {
	total := decimal.Zero
	for _, criterion := range rubric.Criteria {
		total = total.Add(criterion.MaxPoints.Mul(criterion.Weight))
	}
	return total
}

// sumAwardedPoints calculates the total weighted points awarded, after
// verifying that the awarded criterion set matches the rubric exactly and
// that every awarded value lies within [0, max_points].
func sumAwardedPoints(rubric *types.Rubric, extracted *types.ExtractedScores) (decimal.Decimal, error) {
	pointsByID := make(map[string]decimal.Decimal, len(extracted.Scores))
	for _, award := range extracted.Scores {
		pointsByID[award.CriterionID] = award.PointsAwarded
	}

	var missing, extra []string
	rubricIDs := make(map[string]struct{}, len(rubric.Criteria))
	for _, criterion := range rubric.Criteria {
		rubricIDs[criterion.ID] = struct{}{}
		if _, ok := pointsByID[criterion.ID]; !ok {
			missing = append(missing, criterion.ID)
		}
	}
	for id := range pointsByID {
		if _, ok := rubricIDs[id]; !ok {
			extra = append(extra, id)
		}
	}

	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return decimal.Decimal{}, &CriterionMismatchError{Missing: missing, Extra: extra}
	}

	total := decimal.Zero
	for _, criterion := range rubric.Criteria {
		awarded := pointsByID[criterion.ID]
		if awarded.IsNegative() || awarded.GreaterThan(criterion.MaxPoints) {
			return decimal.Decimal{}, &RangeError{
				CriterionID: criterion.ID,
				Value:       awarded,
				Min:         decimal.Zero,
				Max:         criterion.MaxPoints,
			}
		}
		total = total.Add(awarded.Mul(criterion.Weight))
	}

	return total, nil
}
