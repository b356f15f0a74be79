// Package cmd provides CLI commands for csln.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "csln",
	Short: "Render citations and bibliographies through a declarative citation style",
	Long: `csln is a citation style processor: given a style, a bibliography, and a
sequence of citation requests, it renders in-text citations and a
bibliography in plain text, HTML, Djot, or LaTeX.

Examples:
  csln render chicago.yaml refs.yaml --cite smith2020 --bib
  csln validate chicago.yaml
  csln document chicago.yaml refs.yaml paper.dj --format html
  csln schema`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
}
