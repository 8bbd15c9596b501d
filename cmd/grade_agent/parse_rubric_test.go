package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/essay-grader/internal/config"
	"github.com/jonathan/essay-grader/internal/types"
)

const rubricText = `Scoring (100 pts total):
**Organization (30 pts):**
- Excellent (30 pts): Clear thesis and logical flow
**Evidence (40 pts):**
**Grammar (30 pts):**
`

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readRubricJSON(t *testing.T, path string) *types.RubricJSON {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rubric types.RubricJSON
	require.NoError(t, json.Unmarshal(data, &rubric))
	return &rubric
}

func TestParseRubricFile(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTempFile(t, dir, "rubric.txt", rubricText)
	outPath := filepath.Join(dir, "rubric.json")

	err := parseRubricFile(inPath, outPath, "seed", 0, false, config.Config{})
	require.NoError(t, err)

	rubric := readRubricJSON(t, outPath)
	assert.Equal(t, "parsed-seed", rubric.RubricID)
	require.Len(t, rubric.Criteria, 3)
	assert.Equal(t, "organization", rubric.Criteria[0].ID)
	assert.Equal(t, types.ScalePercent, rubric.Scale.Mode)
}

func TestParseRubricFile_UnparseableWithoutFallback(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTempFile(t, dir, "rubric.txt", "Grade on overall impression.")
	outPath := filepath.Join(dir, "rubric.json")

	err := parseRubricFile(inPath, outPath, "seed", 0, false, config.Config{})
	require.Error(t, err)
	assert.NoFileExists(t, outPath)
}

func TestParseRubricFile_FallbackToDefault(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTempFile(t, dir, "rubric.txt", "Focus on grammar and evidence.")
	outPath := filepath.Join(dir, "rubric.json")

	err := parseRubricFile(inPath, outPath, "seed", 0, true, config.Config{})
	require.NoError(t, err)

	rubric := readRubricJSON(t, outPath)
	assert.Equal(t, "default-seed", rubric.RubricID)
	require.Len(t, rubric.Criteria, 2)
	assert.Equal(t, "evidence", rubric.Criteria[0].ID)
	assert.Equal(t, "grammar", rubric.Criteria[1].ID)
}

func TestParseRubricFile_ConfigRoundingOverride(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTempFile(t, dir, "rubric.txt", rubricText)
	outPath := filepath.Join(dir, "rubric.json")

	zero := 0
	cfg := config.Config{RoundingMode: "HALF_EVEN", RoundingDecimals: &zero}
	require.NoError(t, parseRubricFile(inPath, outPath, "seed", 0, false, cfg))

	rubric := readRubricJSON(t, outPath)
	assert.Equal(t, types.RoundHalfEven, rubric.Scale.Rounding.Mode)
	assert.Equal(t, 0, rubric.Scale.Rounding.Decimals)
}

func TestParseRubricFile_ConfigDefaultTotalUsed(t *testing.T) {
	dir := t.TempDir()
	// No total declared in the text, so the configured default applies.
	inPath := writeTempFile(t, dir, "rubric.txt", "**Writing (30 pts):**\n")
	outPath := filepath.Join(dir, "rubric.json")

	cfg := config.Config{DefaultTotalPoints: 60}
	require.NoError(t, parseRubricFile(inPath, outPath, "seed", 0, false, cfg))

	rubric := readRubricJSON(t, outPath)
	require.NotNil(t, rubric.Scale.TotalPoints)
	assert.Equal(t, "60", *rubric.Scale.TotalPoints)
	assert.Equal(t, "60.00", rubric.Criteria[0].MaxPoints)
}

func TestParseRubricFile_FlagTotalBeatsConfig(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTempFile(t, dir, "rubric.txt", "**Writing (30 pts):**\n")
	outPath := filepath.Join(dir, "rubric.json")

	cfg := config.Config{DefaultTotalPoints: 60}
	require.NoError(t, parseRubricFile(inPath, outPath, "seed", 40, false, cfg))

	rubric := readRubricJSON(t, outPath)
	require.NotNil(t, rubric.Scale.TotalPoints)
	assert.Equal(t, "40", *rubric.Scale.TotalPoints)
}

func TestParseRubricFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := parseRubricFile(filepath.Join(dir, "nope.txt"), filepath.Join(dir, "out.json"), "seed", 0, false, config.Config{})
	assert.Error(t, err)
}

func TestDefaultRubricFile(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTempFile(t, dir, "criteria.txt", "Anything goes.")
	outPath := filepath.Join(dir, "rubric.json")

	require.NoError(t, defaultRubricFile(inPath, outPath, "seed"))

	rubric := readRubricJSON(t, outPath)
	assert.Equal(t, "default-seed", rubric.RubricID)
	require.Len(t, rubric.Criteria, 4)
	assert.Equal(t, "content", rubric.Criteria[0].ID)
}

func TestResolveConfig_FileOverEnv(t *testing.T) {
	t.Setenv("GRADER_DEFAULT_TOTAL_POINTS", "80")
	t.Setenv("GRADER_ROUNDING_MODE", "HALF_UP")

	dir := t.TempDir()
	path := writeTempFile(t, dir, "config.json", `{"rounding_mode": "HALF_EVEN"}`)

	cfg, err := resolveConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "HALF_EVEN", cfg.RoundingMode)
	assert.Equal(t, 80, cfg.DefaultTotalPoints)
}

func TestResolveConfig_InvalidRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "config.json", `{"rounding_mode": "CEILING"}`)

	_, err := resolveConfig(path)
	assert.Error(t, err)
}
