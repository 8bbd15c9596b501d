package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/essay-grader/internal/annotations"
	"github.com/jonathan/essay-grader/internal/types"
	"github.com/jonathan/essay-grader/schemas"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Resolve LLM annotation candidates against submission documents",
	Long:  "Normalize a batch of LLM annotation candidates against one or more submission documents, resolving quotes to exact character offsets. Unresolvable candidates are reported, never dropped. Multiple documents are processed concurrently.",
	RunE:  runAnnotate,
}

var (
	annotateDocFiles        []string
	annotateAnnotationsFile string
	annotateOutputFile      string
	annotateOutputDir       string
	annotateSubmissionID    string
)

func init() {
	annotateCmd.Flags().StringArrayVar(&annotateDocFiles, "doc", nil, "Path to a submission document (repeatable)")
	annotateCmd.Flags().StringVar(&annotateAnnotationsFile, "annotations", "", "Path to raw annotations JSON file (required)")
	annotateCmd.Flags().StringVarP(&annotateOutputFile, "out", "o", "", "Path to output JSON file (single document only)")
	annotateCmd.Flags().StringVar(&annotateOutputDir, "out-dir", "", "Directory for per-document output files")
	annotateCmd.Flags().StringVar(&annotateSubmissionID, "submission-id", "", "Submission id (single document only; defaults to the document filename)")
	_ = annotateCmd.MarkFlagRequired("annotations")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(_ *cobra.Command, _ []string) error {
	if len(annotateDocFiles) == 0 {
		return fmt.Errorf("at least one --doc is required")
	}
	if len(annotateDocFiles) > 1 {
		if annotateOutputFile != "" {
			return fmt.Errorf("--out requires a single --doc; use --out-dir for multiple documents")
		}
		if annotateSubmissionID != "" {
			return fmt.Errorf("--submission-id requires a single --doc")
		}
	}
	if annotateOutputFile == "" && annotateOutputDir == "" {
		return fmt.Errorf("either --out or --out-dir is required")
	}

	raw, err := loadRawAnnotations(annotateAnnotationsFile)
	if err != nil {
		return err
	}

	results, err := annotateDocuments(context.Background(), annotateDocFiles, raw, annotateSubmissionID)
	if err != nil {
		return err
	}

	for doc, result := range results {
		outPath := annotateOutputFile
		if outPath == "" {
			outPath = filepath.Join(annotateOutputDir, submissionIDFor(doc)+".annotations.json")
		}
		if err := writeJSONFile(outPath, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s: %d resolved, %d unresolved of %d\n",
			doc, result.Stats.Resolved, result.Stats.Unresolved, result.Stats.Total)
	}

	return nil
}

// loadRawAnnotations reads and schema-validates a raw annotation batch.
func loadRawAnnotations(path string) ([]types.RawAnnotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations file: %w", err)
	}
	if err := validateAgainstSchema(schemas.RawAnnotationsSchema, data); err != nil {
		return nil, err
	}

	var raw []types.RawAnnotation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse annotations JSON: %w", err)
	}
	return raw, nil
}

// annotateDocuments normalizes one annotation batch against each document
// concurrently. Normalization is a pure function, so the only coordination
// needed is around the shared results map.
func annotateDocuments(ctx context.Context, docPaths []string, raw []types.RawAnnotation, submissionID string) (map[string]annotations.NormalizationResult, error) {
	results := make(map[string]annotations.NormalizationResult, len(docPaths))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for _, docPath := range docPaths {
		docPath := docPath
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			document, err := os.ReadFile(docPath)
			if err != nil {
				return fmt.Errorf("failed to read document %s: %w", docPath, err)
			}

			id := submissionID
			if id == "" {
				id = submissionIDFor(docPath)
			}

			result := annotations.NormalizeAnnotations(raw, string(document), id)
			mu.Lock()
			results[docPath] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// submissionIDFor derives a submission id from a document filename.
func submissionIDFor(docPath string) string {
	base := filepath.Base(docPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
