package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/essay-grader/internal/scoring"
)

const scoreRubricDoc = `{
  "rubric_id": "rubric-1",
  "title": "Essay Rubric",
  "schema_version": 1,
  "criteria": [
    {
      "id": "organization",
      "name": "Organization",
      "max_points": "4",
      "weight": "1",
      "levels": [
        {"label": "Full", "points": "4"},
        {"label": "None", "points": "0"}
      ]
    },
    {
      "id": "evidence",
      "name": "Evidence",
      "max_points": "4",
      "weight": "1",
      "levels": [
        {"label": "Full", "points": "4"},
        {"label": "None", "points": "0"}
      ]
    }
  ],
  "scale": {
    "mode": "percent",
    "rounding": {"mode": "HALF_UP", "decimals": 2}
  }
}`

const scoreAwardsDoc = `{
  "submission_id": "sub-1",
  "scores": [
    {"criterion_id": "organization", "level": "Full", "points_awarded": "3", "rationale": "mostly clear"},
    {"criterion_id": "evidence", "level": "Full", "points_awarded": "4", "rationale": "well supported"}
  ]
}`

func TestScoreFiles(t *testing.T) {
	dir := t.TempDir()
	rubricPath := writeTempFile(t, dir, "rubric.json", scoreRubricDoc)
	scoresPath := writeTempFile(t, dir, "scores.json", scoreAwardsDoc)

	computed, err := scoreFiles(rubricPath, scoresPath)
	require.NoError(t, err)

	assert.Equal(t, "7.00", computed.RawPoints)
	assert.Equal(t, "8.00", computed.MaxPoints)
	assert.Equal(t, "87.50", computed.Percent)
	assert.Nil(t, computed.FinalPoints)
}

func TestScoreFiles_RubricSchemaRejected(t *testing.T) {
	dir := t.TempDir()
	rubricPath := writeTempFile(t, dir, "rubric.json", `{"title": "missing everything"}`)
	scoresPath := writeTempFile(t, dir, "scores.json", scoreAwardsDoc)

	_, err := scoreFiles(rubricPath, scoresPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not validate")
}

func TestScoreFiles_NonDecimalAwardRejected(t *testing.T) {
	dir := t.TempDir()
	rubricPath := writeTempFile(t, dir, "rubric.json", scoreRubricDoc)
	scoresPath := writeTempFile(t, dir, "scores.json", `{
  "submission_id": "sub-1",
  "scores": [{"criterion_id": "organization", "points_awarded": "three"}]
}`)

	_, err := scoreFiles(rubricPath, scoresPath)
	assert.Error(t, err)
}

func TestScoreFiles_CriterionMismatchSurfaces(t *testing.T) {
	dir := t.TempDir()
	rubricPath := writeTempFile(t, dir, "rubric.json", scoreRubricDoc)
	scoresPath := writeTempFile(t, dir, "scores.json", `{
  "submission_id": "sub-1",
  "scores": [{"criterion_id": "organization", "points_awarded": "3"}]
}`)

	_, err := scoreFiles(rubricPath, scoresPath)
	require.Error(t, err)

	var mismatchErr *scoring.CriterionMismatchError
	assert.ErrorAs(t, err, &mismatchErr)
}

func TestScoreFiles_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	rubricPath := writeTempFile(t, dir, "rubric.json", scoreRubricDoc)

	_, err := scoreFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "also-nope.json"))
	assert.Error(t, err)

	_, err = scoreFiles(rubricPath, filepath.Join(dir, "also-nope.json"))
	assert.Error(t, err)
}
