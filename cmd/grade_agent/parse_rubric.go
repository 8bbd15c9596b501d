package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/essay-grader/internal/config"
	"github.com/jonathan/essay-grader/internal/parsing"
	"github.com/jonathan/essay-grader/internal/scoring"
	"github.com/jonathan/essay-grader/internal/types"
)

var parseRubricCmd = &cobra.Command{
	Use:   "parse-rubric",
	Short: "Parse free-form rubric text into structured rubric JSON",
	Long:  "Parse a teacher's free-form rubric text file into a structured rubric JSON with exact decimal point values. With --fallback, unparseable text produces a default keyword-based rubric instead of an error.",
	RunE:  runParseRubric,
}

var (
	parseRubricInputFile  string
	parseRubricOutputFile string
	parseRubricSeed       string
	parseRubricTotal      int
	parseRubricFallback   bool
	parseRubricConfigFile string
)

func init() {
	parseRubricCmd.Flags().StringVarP(&parseRubricInputFile, "in", "i", "", "Path to rubric text file (required)")
	parseRubricCmd.Flags().StringVarP(&parseRubricOutputFile, "out", "o", "", "Path to output rubric JSON file (required)")
	parseRubricCmd.Flags().StringVar(&parseRubricSeed, "seed", "", "Rubric id seed (generated if omitted)")
	parseRubricCmd.Flags().IntVar(&parseRubricTotal, "total", 0, "Total points hint, overrides any total declared in the text")
	parseRubricCmd.Flags().BoolVar(&parseRubricFallback, "fallback", false, "Build a default rubric when the text cannot be parsed")
	parseRubricCmd.Flags().StringVar(&parseRubricConfigFile, "config", "", "Path to JSON config file")
	_ = parseRubricCmd.MarkFlagRequired("in")
	_ = parseRubricCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(parseRubricCmd)
}

func runParseRubric(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(parseRubricConfigFile)
	if err != nil {
		return err
	}
	return parseRubricFile(parseRubricInputFile, parseRubricOutputFile, parseRubricSeed, parseRubricTotal, parseRubricFallback, cfg)
}

// resolveConfig merges an optional config file over environment defaults.
func resolveConfig(path string) (config.Config, error) {
	envCfg := config.FromEnv()
	if path == "" {
		if err := envCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		return envCfg, nil
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	merged := fileCfg.MergeWithDefaults(envCfg)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func parseRubricFile(inPath, outPath, seed string, totalHint int, fallback bool, cfg config.Config) error {
	text, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read rubric text: %w", err)
	}

	// Hint precedence: flag, then the text's own declared total, then the
	// configured default.
	hint := totalHint
	if hint == 0 && parsing.DetectTotal(string(text)) == 0 && cfg.DefaultTotalPoints > 0 {
		hint = cfg.DefaultTotalPoints
	}

	rubric, err := parsing.ParseTeacherRubric(string(text), seed, hint)
	if err != nil {
		var emptyErr *parsing.EmptyInputError
		var noCategoriesErr *parsing.NoCategoriesFoundError
		if fallback && (errors.As(err, &emptyErr) || errors.As(err, &noCategoriesErr)) {
			fmt.Fprintf(os.Stderr, "Warning: %v; falling back to default rubric\n", err)
			rubric = parsing.CreateDefaultRubric(seed, string(text))
		} else {
			return fmt.Errorf("failed to parse rubric: %w", err)
		}
	}

	if cfg.RoundingMode != "" || cfg.RoundingDecimals != nil {
		rubric.Scale.Rounding = cfg.Rounding()
	}

	// Sanity-check our own output before handing it to the caller.
	inMemory, err := types.RubricFromJSON(rubric)
	if err != nil {
		return fmt.Errorf("parsed rubric failed conversion: %w", err)
	}
	if err := scoring.ValidateRubric(inMemory); err != nil {
		return fmt.Errorf("parsed rubric failed validation: %w", err)
	}

	return writeJSONFile(outPath, rubric)
}

// writeJSONFile marshals a value with indentation and writes it out.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
