package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizreview/backend/internal/questionsource"
	"github.com/quizreview/backend/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import question files from a directory or a git repository",
	Long: `Loads every .yaml, .yml and .json question file under dir and adds the
topics and questions to the database. Questions already stored are skipped.

With --git the repository is cloned (or pulled) into --checkout first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("git", "", "git repository URL holding question files")
	importCmd.Flags().String("checkout", "questions-repo", "local clone directory used with --git")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	gitURL, _ := cmd.Flags().GetString("git")
	var dir string
	switch {
	case gitURL != "":
		dir, _ = cmd.Flags().GetString("checkout")
		if err := questionsource.SyncGit(ctx, logger, gitURL, dir); err != nil {
			return err
		}
	case len(args) == 1:
		dir = args[0]
	default:
		return errors.New("import needs a directory or --git")
	}

	files, err := questionsource.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load question files: %w", err)
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := questionsource.Import(ctx, db, files)
	if err != nil {
		return err
	}

	logger.Info("questions imported",
		"dir", dir,
		"files", len(files),
		"topics", res.Topics,
		"added", res.Added,
		"skipped", res.Skipped,
	)
	return nil
}
