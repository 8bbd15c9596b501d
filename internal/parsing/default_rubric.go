package parsing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/essay-grader/internal/types"
)

// keywordFamily maps trigger words in free-text criteria to a rubric
// criterion. Matching is case-insensitive; order here fixes criterion order.
type keywordFamily struct {
	id       string
	name     string
	keywords []string
}

var keywordFamilies = []keywordFamily{
	{id: "organization", name: "Organization", keywords: []string{"organization", "structure"}},
	{id: "evidence", name: "Evidence & Support", keywords: []string{"evidence", "support", "example"}},
	{id: "grammar", name: "Grammar & Mechanics", keywords: []string{"grammar", "mechanics", "convention"}},
	{id: "style", name: "Style & Voice", keywords: []string{"style", "voice", "word choice"}},
}

var fallbackCriteria = []keywordFamily{
	{id: "content", name: "Content & Ideas"},
	{id: "organization", name: "Organization"},
	{id: "evidence", name: "Evidence & Support"},
	{id: "conventions", name: "Conventions"},
}

// CreateDefaultRubric synthesizes a plausible rubric from free-text grading
// criteria when parsing fails or no structured rubric exists. It never fails
// and its output always passes structural validation. This is keyword-triggered
// template instantiation, nothing more.
func CreateDefaultRubric(rubricIDSeed, teacherCriteria string) *types.RubricJSON {
	criteriaLower := strings.ToLower(teacherCriteria)

	matched := make([]keywordFamily, 0, len(keywordFamilies))
	for _, family := range keywordFamilies {
		for _, keyword := range family.keywords {
			if strings.Contains(criteriaLower, keyword) {
				matched = append(matched, family)
				break
			}
		}
	}
	if len(matched) == 0 {
		matched = fallbackCriteria
	}

	criteria := make([]types.CriterionJSON, 0, len(matched))
	for _, family := range matched {
		criteria = append(criteria, types.CriterionJSON{
			ID:        family.id,
			Name:      family.name,
			MaxPoints: "25.0",
			Weight:    "1.0",
			Levels:    defaultRubricLevels(),
		})
	}

	if rubricIDSeed == "" {
		rubricIDSeed = uuid.NewString()
	}

	return &types.RubricJSON{
		RubricID: "default-" + rubricIDSeed,
		Title:    "Default Rubric",
		Criteria: criteria,
		Scale: types.ScaleJSON{
			Mode: types.ScalePercent,
			Rounding: types.Rounding{
				Mode:     types.RoundHalfUp,
				Decimals: 2,
			},
		},
		SchemaVersion: 1,
	}
}

// defaultRubricLevels returns the fixed five-level scale used for every
// default-rubric criterion.
func defaultRubricLevels() []types.LevelJSON {
	return []types.LevelJSON{
		{Label: "Exemplary", Points: "25.0", Descriptor: "Exceeds expectations with exceptional quality"},
		{Label: "Proficient", Points: "20.0", Descriptor: "Meets expectations with good quality"},
		{Label: "Developing", Points: "15.0", Descriptor: "Approaching expectations, needs improvement"},
		{Label: "Beginning", Points: "10.0", Descriptor: "Below expectations, significant improvement needed"},
		{Label: "No Evidence", Points: "0.0", Descriptor: "Not present or not attempted"},
	}
}
