package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RubricFromJSON converts a wire-form rubric (decimal strings) into the
// in-memory form (exact decimals). The conversion is lossless in both
// directions for any value this engine produces.
func RubricFromJSON(j *RubricJSON) (*Rubric, error) {
	rubric := &Rubric{
		RubricID:      j.RubricID,
		Title:         j.Title,
		SchemaVersion: j.SchemaVersion,
		Scale: Scale{
			Mode:     j.Scale.Mode,
			Rounding: j.Scale.Rounding,
		},
		Criteria: make([]Criterion, 0, len(j.Criteria)),
	}

	if j.Scale.TotalPoints != nil {
		total, err := parseDecimal("scale.total_points", *j.Scale.TotalPoints)
		if err != nil {
			return nil, err
		}
		rubric.Scale.TotalPoints = &total
	}

	for i, c := range j.Criteria {
		maxPoints, err := parseDecimal(fmt.Sprintf("criteria[%d].max_points", i), c.MaxPoints)
		if err != nil {
			return nil, err
		}
		weight, err := parseDecimal(fmt.Sprintf("criteria[%d].weight", i), c.Weight)
		if err != nil {
			return nil, err
		}

		criterion := Criterion{
			ID:        c.ID,
			Name:      c.Name,
			MaxPoints: maxPoints,
			Weight:    weight,
			Levels:    make([]Level, 0, len(c.Levels)),
		}
		for k, l := range c.Levels {
			points, err := parseDecimal(fmt.Sprintf("criteria[%d].levels[%d].points", i, k), l.Points)
			if err != nil {
				return nil, err
			}
			criterion.Levels = append(criterion.Levels, Level{
				Label:      l.Label,
				Points:     points,
				Descriptor: l.Descriptor,
			})
		}
		rubric.Criteria = append(rubric.Criteria, criterion)
	}

	return rubric, nil
}

// RubricToJSON converts an in-memory rubric back to its wire form.
func RubricToJSON(r *Rubric) *RubricJSON {
	j := &RubricJSON{
		RubricID:      r.RubricID,
		Title:         r.Title,
		SchemaVersion: r.SchemaVersion,
		Scale: ScaleJSON{
			Mode:     r.Scale.Mode,
			Rounding: r.Scale.Rounding,
		},
		Criteria: make([]CriterionJSON, 0, len(r.Criteria)),
	}

	if r.Scale.TotalPoints != nil {
		total := r.Scale.TotalPoints.String()
		j.Scale.TotalPoints = &total
	}

	for _, c := range r.Criteria {
		criterion := CriterionJSON{
			ID:        c.ID,
			Name:      c.Name,
			MaxPoints: c.MaxPoints.String(),
			Weight:    c.Weight.String(),
			Levels:    make([]LevelJSON, 0, len(c.Levels)),
		}
		for _, l := range c.Levels {
			criterion.Levels = append(criterion.Levels, LevelJSON{
				Label:      l.Label,
				Points:     l.Points.String(),
				Descriptor: l.Descriptor,
			})
		}
		j.Criteria = append(j.Criteria, criterion)
	}

	return j
}

// ExtractedScoresFromJSON converts wire-form extracted scores into the
// in-memory form.
func ExtractedScoresFromJSON(j *ExtractedScoresJSON) (*ExtractedScores, error) {
	extracted := &ExtractedScores{
		SubmissionID: j.SubmissionID,
		Notes:        j.Notes,
		Scores:       make([]Award, 0, len(j.Scores)),
	}

	for i, s := range j.Scores {
		points, err := parseDecimal(fmt.Sprintf("scores[%d].points_awarded", i), s.PointsAwarded)
		if err != nil {
			return nil, err
		}
		extracted.Scores = append(extracted.Scores, Award{
			CriterionID:   s.CriterionID,
			Level:         s.Level,
			PointsAwarded: points,
			Rationale:     s.Rationale,
		})
	}

	return extracted, nil
}

// ExtractedScoresToJSON converts in-memory extracted scores back to wire form.
func ExtractedScoresToJSON(e *ExtractedScores) *ExtractedScoresJSON {
	j := &ExtractedScoresJSON{
		SubmissionID: e.SubmissionID,
		Notes:        e.Notes,
		Scores:       make([]AwardJSON, 0, len(e.Scores)),
	}
	for _, s := range e.Scores {
		j.Scores = append(j.Scores, AwardJSON{
			CriterionID:   s.CriterionID,
			Level:         s.Level,
			PointsAwarded: s.PointsAwarded.String(),
			Rationale:     s.Rationale,
		})
	}
	return j
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, &ConversionError{Field: field, Value: value, Cause: err}
	}
	return d, nil
}
