package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sectify/internal/config"
	"github.com/dgallion1/sectify/internal/doc"
	"github.com/dgallion1/sectify/internal/outline"
	"github.com/dgallion1/sectify/internal/parser"
	"github.com/dgallion1/sectify/internal/pipeline"
	"github.com/dgallion1/sectify/internal/schemas"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Extract document outlines to JSON",
	Long:  "Extracts a title and H1/H2/H3 heading outline from each input document and writes one JSON file per input. A document that cannot be parsed produces an error outline instead of failing the batch.",
	RunE:  runOutline,
}

var (
	outlineInput  string
	outlineOutput string
)

func init() {
	outlineCmd.Flags().StringVarP(&outlineInput, "input", "i", "", "Input file or directory (required)")
	outlineCmd.Flags().StringVarP(&outlineOutput, "out", "o", "", "Output directory (required)")

	if err := outlineCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	if err := outlineCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, _ []string) error {
	log := newLogger()
	cfg := config.Load()

	engine, err := pipeline.NewEngine(cfg, log)
	if err != nil {
		return err
	}

	paths, err := collectInputs(outlineInput)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents under %s", outlineInput)
	}

	if err := os.MkdirAll(outlineOutput, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, path := range paths {
		o, err := engine.OutlineFile(cmd.Context(), path)
		if err != nil {
			var openErr *parser.OpenError
			if errors.As(err, &openErr) {
				o = outline.ErrorOutline(openErr.Err)
			} else {
				o = outline.ErrorOutline(err)
			}
			log.Warn("outline extraction failed", "document", path, "error", err)
		}

		outPath := filepath.Join(outlineOutput, stem(path)+".json")
		if err := writeOutline(outPath, o); err != nil {
			return err
		}
		log.Info("wrote outline", "document", filepath.Base(path), "output", outPath, "headings", len(o.Outline))
	}
	return nil
}

func writeOutline(path string, o doc.Outline) error {
	body, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	if err := schemas.ValidateOutline(body); err != nil {
		return fmt.Errorf("outline for %s: %w", path, err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// collectInputs expands a file or directory path into a sorted list of
// supported document paths. Directories are not recursed.
func collectInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", input, err)
	}

	if !info.IsDir() {
		if !parser.IsSupportedExtension(input) {
			return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(input))
		}
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", input, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(input, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
