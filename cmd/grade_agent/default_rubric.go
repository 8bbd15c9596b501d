package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/essay-grader/internal/parsing"
)

var defaultRubricCmd = &cobra.Command{
	Use:   "default-rubric",
	Short: "Build a default rubric from free-text grading criteria",
	Long:  "Build a keyword-based default rubric JSON from a teacher's free-text grading criteria. Never fails: unrecognized text produces the standard four-criterion rubric.",
	RunE:  runDefaultRubric,
}

var (
	defaultRubricInputFile  string
	defaultRubricOutputFile string
	defaultRubricSeed       string
)

func init() {
	defaultRubricCmd.Flags().StringVarP(&defaultRubricInputFile, "in", "i", "", "Path to criteria text file (required)")
	defaultRubricCmd.Flags().StringVarP(&defaultRubricOutputFile, "out", "o", "", "Path to output rubric JSON file (required)")
	defaultRubricCmd.Flags().StringVar(&defaultRubricSeed, "seed", "", "Rubric id seed (generated if omitted)")
	_ = defaultRubricCmd.MarkFlagRequired("in")
	_ = defaultRubricCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(defaultRubricCmd)
}

func runDefaultRubric(_ *cobra.Command, _ []string) error {
	return defaultRubricFile(defaultRubricInputFile, defaultRubricOutputFile, defaultRubricSeed)
}

func defaultRubricFile(inPath, outPath, seed string) error {
	text, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read criteria text: %w", err)
	}

	rubric := parsing.CreateDefaultRubric(seed, string(text))
	return writeJSONFile(outPath, rubric)
}
