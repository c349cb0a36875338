package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alreinhart/TXSemiModel/internal/review"
	"github.com/alreinhart/TXSemiModel/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse stored jobs interactively (TUI)",
	Long:  "Launches the split-pane review view over the job database.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	jobs, err := sqlStore.ListJobs()
	if err != nil {
		logger.Error("failed to list jobs", "error", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs in database — run a scrape first.")
		return nil
	}

	return review.Run(jobs)
}
