package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	buildOutputDir string
	buildSkipIndex bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the static site",
	Long:  "Re-indexes the content dir (unless --skip-index) and writes every page, the feeds and assets to the output dir.",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutputDir, "out", "o", "", "Output directory (overrides outputDir in config)")
	buildCmd.Flags().BoolVar(&buildSkipIndex, "skip-index", false, "Build from the existing post index")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()
	if buildOutputDir != "" {
		app.Config.OutputDir = buildOutputDir
	}

	ctx := cmd.Context()
	if !buildSkipIndex {
		if _, err := app.Index(ctx); err != nil {
			return err
		}
	}
	report, err := app.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages and %d assets to %s (%s)\n",
		report.Pages, report.Assets, app.Config.OutputDir, report.Elapsed.Round(time.Millisecond))
	return nil
}
