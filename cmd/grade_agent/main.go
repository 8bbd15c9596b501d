// Package main provides the grade_agent CLI, the operator entry point to the
// deterministic grading engine: rubric parsing, score computation, and
// annotation normalization.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grade_agent",
	Short: "Deterministic essay grading engine",
	Long:  "grade_agent parses teacher rubrics, computes exact-decimal scores from LLM per-criterion judgments, and resolves LLM annotation quotes to exact character offsets in the original document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
