package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizreview/backend/internal/infrastructure/config"

	_ "github.com/quizreview/backend/docs" // generated swagger docs
)

// @title           Quiz Review API
// @version         1.0
// @description     Multi-round review sessions that repeat missed questions until a topic is mastered.

// @host      localhost:8080
// @BasePath  /

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Quiz review backend",
	Long:          "Serves the quiz review API and imports question files into its database.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves the configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return cfg, logger, nil
}
