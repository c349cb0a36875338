package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alreinhart/TXSemiModel/internal/export"
	"github.com/alreinhart/TXSemiModel/internal/store"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored jobs to CSV",
	Long:  "Writes every stored job, joined with its company, to a dated CSV file.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "output directory (default: export.dir from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	dir := cfg.Export.Dir
	if exportDir != "" {
		dir = exportDir
	}

	path, err := export.ExportFile(dir, jobs)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("exported %d jobs to %s\n", len(jobs), path)
	return nil
}
