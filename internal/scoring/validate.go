package scoring

import (
	"github.com/jonathan/essay-grader/internal/types"
)

// ValidateRubric checks rubric structure before scoring. It only detects
// problems; it never repairs them. Checks run in order: at least one
// criterion, at least one level per criterion, no level exceeding its
// criterion's max_points, and a positive total_points when the scale is in
// points mode.
func ValidateRubric(rubric *types.Rubric) error {
	if len(rubric.Criteria) == 0 {
		return &StructuralError{Message: "rubric must have at least one criterion"}
	}

	for _, criterion := range rubric.Criteria {
		if len(criterion.Levels) == 0 {
			return &StructuralError{
				CriterionID: criterion.ID,
				Message:     "criterion must have at least one level",
			}
		}
		for _, level := range criterion.Levels {
			if level.Points.GreaterThan(criterion.MaxPoints) {
				return &StructuralError{
					CriterionID: criterion.ID,
					Level:       level.Label,
					Message: "level points (" + level.Points.String() +
						") exceed criterion max (" + criterion.MaxPoints.String() + ")",
				}
			}
		}
	}

	if rubric.Scale.Mode == types.ScalePoints {
		if rubric.Scale.TotalPoints == nil {
			return &StructuralError{Message: "points mode requires scale.total_points to be set"}
		}
		if !rubric.Scale.TotalPoints.IsPositive() {
			return &StructuralError{Message: "scale.total_points must be greater than zero"}
		}
	}

	return nil
}
