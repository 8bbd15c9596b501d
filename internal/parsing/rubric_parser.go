package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonathan/essay-grader/internal/types"
)

// Each recognized line form gets its own matcher so new header or level
// formats can be added without touching scoring logic.
var (
	// "Scoring (100 pts total):" or "Total: 50 points"
	totalPattern = regexp.MustCompile(`(?i)(?:total|scoring)[:\s]*\(?(\d+)\s*(?:pts?|points?)\)?`)
	// "**Category Name (XX pts):**" or "- **Category (XX pts)**:", with the
	// colon tolerated on either side of the closing bold
	boldCategoryPattern = regexp.MustCompile(`(?i)^[-*]*\s*\*\*(.+?)\s*\((\d+)\s*(?:pts?|points?)\):?\*\*:?`)
	// Unbolded fallback: "Category (XX pts)"
	simpleCategoryPattern = regexp.MustCompile(`(?i)^[-*]?\s*(.+?)\s*\((\d+)\s*(?:pts?|points?)\)`)
	// "- 25-30 pts: Description" (range form)
	rangeLevelPattern = regexp.MustCompile(`(?i)^[-*]\s*(\d+)\s*[-–]\s*(\d+)\s*(?:pts?|points?):\s*(.+)`)
	// "- Exemplary (25 pts): Description" (labeled form)
	labelLevelPattern = regexp.MustCompile(`(?i)^[-*]\s*(\w+)\s*\((\d+)\s*(?:pts?|points?)\):\s*(.+)`)
	// Explicit points-scale language
	pointsLanguagePattern = regexp.MustCompile(`(?i)out of \d+ points?|total:?\s*\d+ points?`)
)

// levelWindow is how many lines below a category header are scanned for level
// descriptions when no following category header bounds the scan.
const levelWindow = 10

// category is an intermediate match from the header scan.
type category struct {
	name      string
	id        string
	points    int
	startLine int
}

// ParseTeacherRubric parses free-form rubric text into a structured rubric.
// totalPointsHint overrides any total declared in the text; pass 0 for none.
// The parser guarantees that the criteria's max points sum exactly to the
// resolved total, rescaling proportionally when the teacher's numbers do not
// add up.
func ParseTeacherRubric(criteriaText, rubricIDSeed string, totalPointsHint int) (*types.RubricJSON, error) {
	if strings.TrimSpace(criteriaText) == "" {
		return nil, &EmptyInputError{}
	}

	lines := nonEmptyLines(criteriaText)

	total := totalPointsHint
	if total <= 0 {
		total = detectTotalPoints(lines)
	}
	if total <= 0 {
		total = 100
	}

	categories := extractCategories(lines)
	if len(categories) == 0 {
		return nil, &NoCategoriesFoundError{}
	}

	criteria := make([]types.CriterionJSON, 0, len(categories))
	for i, cat := range categories {
		nextCategoryLine := len(lines)
		if i < len(categories)-1 {
			nextCategoryLine = categories[i+1].startLine
		}
		criteria = append(criteria, buildCriterion(cat, lines, nextCategoryLine))
	}

	criteria = scaleToTotal(criteria, total)

	scaleMode := detectScaleMode(lines, total)
	scale := types.ScaleJSON{
		Mode: scaleMode,
		Rounding: types.Rounding{
			Mode:     types.RoundHalfUp,
			Decimals: 2,
		},
	}
	if scaleMode == types.ScalePoints {
		totalStr := strconv.Itoa(total)
		scale.TotalPoints = &totalStr
	}

	if rubricIDSeed == "" {
		rubricIDSeed = uuid.NewString()
	}

	return &types.RubricJSON{
		RubricID:      "parsed-" + rubricIDSeed,
		Title:         "Parsed Rubric",
		Criteria:      criteria,
		Scale:         scale,
		SchemaVersion: 1,
	}, nil
}

// DetectTotal scans rubric text for a declared total point value. Returns 0
// when none is declared; callers can then substitute their own default.
func DetectTotal(criteriaText string) int {
	return detectTotalPoints(nonEmptyLines(criteriaText))
}

// detectTotalPoints scans for a declared total. Returns 0 when none is found.
func detectTotalPoints(lines []string) int {
	for _, line := range lines {
		if m := totalPattern.FindStringSubmatch(line); m != nil {
			total, err := strconv.Atoi(m[1])
			if err == nil {
				return total
			}
		}
	}
	return 0
}

// detectScaleMode decides between percent and points reporting. Percent is
// chosen only when the resolved total is exactly 100 and the text has no
// explicit "out of N points" language; an explicit points declaration wins
// even at a total of 100.
func detectScaleMode(lines []string, totalPoints int) types.ScaleMode {
	for _, line := range lines {
		if pointsLanguagePattern.MatchString(line) {
			return types.ScalePoints
		}
	}
	if totalPoints == 100 {
		return types.ScalePercent
	}
	return types.ScalePoints
}

// extractCategories scans for category headers. Bolded headers are tried
// first; the simpler unbolded form is only used when no bolded header matches
// anywhere, so a mixed document never double-counts.
func extractCategories(lines []string) []category {
	categories := matchCategories(lines, boldCategoryPattern, false)
	if len(categories) == 0 {
		categories = matchCategories(lines, simpleCategoryPattern, true)
	}
	return categories
}

func matchCategories(lines []string, pattern *regexp.Regexp, stripBold bool) []category {
	var categories []category
	for i, line := range lines {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if stripBold {
			name = strings.TrimPrefix(name, "**")
			name = strings.TrimSuffix(name, "**")
		}
		points, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		categories = append(categories, category{
			name:      name,
			id:        slugify(name),
			points:    points,
			startLine: i,
		})
	}
	return categories
}

// buildCriterion assembles one criterion from a category header and the level
// descriptions below it, synthesizing default levels when none are declared.
func buildCriterion(cat category, lines []string, nextCategoryLine int) types.CriterionJSON {
	levels := extractLevels(lines, cat.startLine, nextCategoryLine)
	if len(levels) == 0 {
		levels = defaultLevels(cat.points)
	}
	return types.CriterionJSON{
		ID:        cat.id,
		Name:      cat.name,
		MaxPoints: strconv.Itoa(cat.points),
		Weight:    "1.0",
		Levels:    levels,
	}
}

// extractLevels scans a bounded window below a category header for level
// descriptions. Range-form levels ("25-30 pts") use the range midpoint as the
// level's point value.
func extractLevels(lines []string, startLine, nextCategoryLine int) []types.LevelJSON {
	endLine := startLine + 1 + levelWindow
	if nextCategoryLine < endLine {
		endLine = nextCategoryLine
	}
	if len(lines) < endLine {
		endLine = len(lines)
	}

	var levels []types.LevelJSON
	for i := startLine + 1; i < endLine; i++ {
		line := lines[i]
		if boldCategoryPattern.MatchString(line) {
			break
		}

		if m := rangeLevelPattern.FindStringSubmatch(line); m != nil {
			low, errLow := strconv.Atoi(m[1])
			high, errHigh := strconv.Atoi(m[2])
			if errLow != nil || errHigh != nil {
				continue
			}
			midpoint := decimal.NewFromInt(int64(low)).
				Add(decimal.NewFromInt(int64(high))).
				Div(decimal.NewFromInt(2))
			levels = append(levels, types.LevelJSON{
				Label:      m[1] + "-" + m[2] + " pts",
				Points:     midpoint.String(),
				Descriptor: strings.TrimSpace(m[3]),
			})
			continue
		}

		if m := labelLevelPattern.FindStringSubmatch(line); m != nil {
			levels = append(levels, types.LevelJSON{
				Label:      m[1],
				Points:     m[2],
				Descriptor: strings.TrimSpace(m[3]),
			})
		}
	}
	return levels
}

// defaultLevels synthesizes the standard five-level scale at fixed fractions
// of a category's max points.
func defaultLevels(maxPoints int) []types.LevelJSON {
	maxDec := decimal.NewFromInt(int64(maxPoints))
	fraction := func(f string) string {
		return maxDec.Mul(decimal.RequireFromString(f)).String()
	}
	return []types.LevelJSON{
		{Label: "Exemplary", Points: fraction("0.95"), Descriptor: "Exceeds expectations with exceptional quality"},
		{Label: "Proficient", Points: fraction("0.85"), Descriptor: "Meets expectations with good quality"},
		{Label: "Developing", Points: fraction("0.7"), Descriptor: "Approaching expectations, needs improvement"},
		{Label: "Beginning", Points: fraction("0.5"), Descriptor: "Below expectations, significant improvement needed"},
		{Label: "No Evidence", Points: "0", Descriptor: "Not present or not attempted"},
	}
}

// scaleToTotal rescales criterion and level points proportionally so that the
// criteria's max points sum exactly to the declared total. Each scaled value
// is rounded to two places and the last criterion absorbs the rounding
// residual, which keeps the sum exact where a plain ratio multiply cannot.
func scaleToTotal(criteria []types.CriterionJSON, total int) []types.CriterionJSON {
	sum := decimal.Zero
	for _, criterion := range criteria {
		sum = sum.Add(decimal.RequireFromString(criterion.MaxPoints))
	}

	totalDec := decimal.NewFromInt(int64(total))
	if sum.IsZero() || sum.Equal(totalDec) {
		return criteria
	}

	assigned := decimal.Zero
	for i := range criteria {
		oldMax := decimal.RequireFromString(criteria[i].MaxPoints)

		var newMax decimal.Decimal
		if i == len(criteria)-1 {
			newMax = totalDec.Sub(assigned)
		} else {
			newMax = oldMax.Mul(totalDec).Div(sum).Round(2)
			assigned = assigned.Add(newMax)
		}
		criteria[i].MaxPoints = newMax.StringFixed(2)

		for k := range criteria[i].Levels {
			scaled := decimal.RequireFromString(criteria[i].Levels[k].Points).
				Mul(totalDec).Div(sum).Round(2)
			// The residual on the last criterion can leave a top level a cent
			// above the new max; clamp so the rubric stays structurally valid.
			if scaled.GreaterThan(newMax) {
				scaled = newMax
			}
			criteria[i].Levels[k].Points = scaled.StringFixed(2)
		}
	}

	return criteria
}
