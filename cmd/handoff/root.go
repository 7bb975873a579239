package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/app"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/config"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const (
	formatHuman = "human"
	formatJSON  = "json"
)

var (
	repoFlag   string
	branchFlag string
	formatFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "handoff",
	Short: "Project handoff assistant",
	Long: `Analyze the contributors of a GitHub branch, generate its usage guide or
change log with an LLM and publish the result to Confluence.

Configuration is read from .env and the environment, the same as the API server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag || os.Getenv("DEBUG") == "true" {
			logger.SetLevel(logger.LevelDebug)
		}
		// * keep stdout for the command output
		logger.SetOutput(os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoFlag, "repo", "r", "", "GitHub repository URL or owner/name")
	rootCmd.PersistentFlags().StringVarP(&branchFlag, "branch", "b", "main", "Branch to read")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", formatHuman, "Output format (human, json)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// * newApp loads the configuration and wires the services for one command
func newApp(ctx context.Context, withQueue bool) (*app.App, error) {
	if formatFlag != formatHuman && formatFlag != formatJSON {
		return nil, fmt.Errorf("unsupported --format %q (use human or json)", formatFlag)
	}

	cfg, err := config.LoadConfiguration()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.Options{WithQueue: withQueue})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
