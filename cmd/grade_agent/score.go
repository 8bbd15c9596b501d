package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/essay-grader/internal/scoring"
	"github.com/jonathan/essay-grader/internal/types"
	"github.com/jonathan/essay-grader/schemas"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute deterministic scores from a rubric and extracted awards",
	Long:  "Compute a final score from a rubric JSON and LLM-extracted per-criterion scores JSON. All arithmetic is exact decimal; the LLM is never trusted to do math.",
	RunE:  runScore,
}

var (
	scoreRubricFile string
	scoreScoresFile string
	scoreOutputFile string
)

func init() {
	scoreCmd.Flags().StringVar(&scoreRubricFile, "rubric", "", "Path to rubric JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreScoresFile, "scores", "", "Path to extracted scores JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output computed scores JSON file (stdout if omitted)")
	_ = scoreCmd.MarkFlagRequired("rubric")
	_ = scoreCmd.MarkFlagRequired("scores")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	computed, err := scoreFiles(scoreRubricFile, scoreScoresFile)
	if err != nil {
		return err
	}

	if scoreOutputFile == "" {
		data, err := json.MarshalIndent(computed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	return writeJSONFile(scoreOutputFile, computed)
}

func scoreFiles(rubricPath, scoresPath string) (*types.ComputedScores, error) {
	rubricJSON, err := loadRubric(rubricPath)
	if err != nil {
		return nil, err
	}

	scoresData, err := os.ReadFile(scoresPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scores file: %w", err)
	}
	if err := validateAgainstSchema(schemas.ExtractedScoresSchema, scoresData); err != nil {
		return nil, err
	}

	var scoresJSON types.ExtractedScoresJSON
	if err := json.Unmarshal(scoresData, &scoresJSON); err != nil {
		return nil, fmt.Errorf("failed to parse scores JSON: %w", err)
	}
	if err := scoresJSON.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scores: %w", err)
	}

	rubric, err := types.RubricFromJSON(rubricJSON)
	if err != nil {
		return nil, err
	}
	extracted, err := types.ExtractedScoresFromJSON(&scoresJSON)
	if err != nil {
		return nil, err
	}

	if err := scoring.ValidateRubric(rubric); err != nil {
		return nil, err
	}
	return scoring.ComputeScores(rubric, extracted)
}

// loadRubric reads, schema-validates and shape-validates a rubric JSON file.
func loadRubric(path string) (*types.RubricJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file: %w", err)
	}
	if err := validateAgainstSchema(schemas.RubricSchema, data); err != nil {
		return nil, err
	}

	var rubricJSON types.RubricJSON
	if err := json.Unmarshal(data, &rubricJSON); err != nil {
		return nil, fmt.Errorf("failed to parse rubric JSON: %w", err)
	}
	if err := rubricJSON.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}
	return &rubricJSON, nil
}

// validateAgainstSchema fails on payloads that do not conform but only warns
// when the schema itself cannot be loaded, so an embedding problem never
// blocks a grading run.
func validateAgainstSchema(name string, document []byte) error {
	err := schemas.Validate(name, document)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("input does not validate against %s: %w", name, err)
	}
	fmt.Fprintf(os.Stderr, "Warning: could not validate input against %s: %v\n", name, err)
	return nil
}
