package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sectify/internal/config"
	"github.com/dgallion1/sectify/internal/pipeline"
	"github.com/dgallion1/sectify/internal/schemas"
)

var relevanceCmd = &cobra.Command{
	Use:   "relevance",
	Short: "Rank document sections against a persona and job",
	Long:  "Segments a batch of documents into titled sections, ranks them by relevance to a persona and their job to be done, and writes a JSON report with the top sections and refined text summaries. The persona and job come from PERSONA/JOB environment variables, a YAML config file, or persona.txt/job.txt in the input directory.",
	RunE:  runRelevance,
}

var (
	relevanceInput  string
	relevanceOutput string
	relevanceConfig string
)

func init() {
	relevanceCmd.Flags().StringVarP(&relevanceInput, "input", "i", "", "Input directory of documents (required)")
	relevanceCmd.Flags().StringVarP(&relevanceOutput, "out", "o", "", "Output JSON file (required)")
	relevanceCmd.Flags().StringVarP(&relevanceConfig, "config", "c", "", "YAML file with persona and job")

	if err := relevanceCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	if err := relevanceCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(relevanceCmd)
}

func runRelevance(cmd *cobra.Command, _ []string) error {
	log := newLogger()
	cfg := config.Load()

	q, err := config.ResolveQuery(relevanceConfig, relevanceInput)
	if err != nil {
		return err
	}

	engine, err := pipeline.NewEngine(cfg, log)
	if err != nil {
		return err
	}

	paths, err := collectInputs(relevanceInput)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents under %s", relevanceInput)
	}

	rel, err := engine.RelevanceFiles(cmd.Context(), paths, q)
	if err != nil {
		return err
	}

	body, err := json.MarshalIndent(rel, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := schemas.ValidateRelevance(body); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if dir := filepath.Dir(relevanceOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(relevanceOutput, body, 0644); err != nil {
		return fmt.Errorf("write %s: %w", relevanceOutput, err)
	}

	log.Info("wrote relevance report",
		"output", relevanceOutput,
		"documents", len(rel.Metadata.InputDocuments),
		"sections", len(rel.ExtractedSections))
	return nil
}
