package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/essay-grader/internal/annotations"
)

var numberLinesCmd = &cobra.Command{
	Use:   "number-lines",
	Short: "Add or strip the line-number prefixes shown to the LLM",
	Long:  "Add zero-padded line-number prefixes (\"001| \") to a document for stable LLM references, or strip them with --strip. The two operations are exact inverses.",
	RunE:  runNumberLines,
}

var (
	numberLinesInputFile  string
	numberLinesOutputFile string
	numberLinesStrip      bool
)

func init() {
	numberLinesCmd.Flags().StringVarP(&numberLinesInputFile, "in", "i", "", "Path to input text file (required)")
	numberLinesCmd.Flags().StringVarP(&numberLinesOutputFile, "out", "o", "", "Path to output text file (stdout if omitted)")
	numberLinesCmd.Flags().BoolVar(&numberLinesStrip, "strip", false, "Strip line numbers instead of adding them")
	_ = numberLinesCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(numberLinesCmd)
}

func runNumberLines(_ *cobra.Command, _ []string) error {
	return numberLinesFile(numberLinesInputFile, numberLinesOutputFile, numberLinesStrip)
}

func numberLinesFile(inPath, outPath string, strip bool) error {
	text, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var result string
	if strip {
		result = annotations.RemoveLineNumbers(string(text))
	} else {
		result = annotations.AddLineNumbers(string(text))
	}

	if outPath == "" {
		fmt.Fprintln(os.Stdout, result)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(result), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
