// Package main provides the sectify CLI: document outline extraction,
// persona-driven relevance ranking, and the HTTP API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sectify",
	Short: "Document outline extraction and relevance ranking",
	Long:  "Sectify extracts structured outlines from PDF and text documents and ranks document sections by relevance to a persona and their job to be done.",
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
