package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kozaktomas/art-inventory/internal/catalog"
	"github.com/kozaktomas/art-inventory/internal/config"
	"github.com/kozaktomas/art-inventory/internal/database"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render artworks and editions as a PDF catalog",
	Long: `Render a PDF catalog for the given artworks and editions.

Artwork IDs expand to all of their editions, edition IDs select single
editions. Pages follow the order of the given artwork IDs.

Examples:
  # Export all editions of two artworks
  art-inventory export --artwork 6f1c... --artwork 9a2e...

  # Export a single edition with price and location
  art-inventory export --edition 3b7d... --include-price --include-location

  # Write to a specific file and print the export report as JSON
  art-inventory export --artwork 6f1c... --output catalog.pdf --json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSlice("artwork", nil, "Artwork ID to export (repeatable, comma-separated)")
	exportCmd.Flags().StringSlice("edition", nil, "Edition ID to export (repeatable, comma-separated)")
	exportCmd.Flags().Bool("include-price", false, "Include edition prices")
	exportCmd.Flags().Bool("include-status", false, "Include edition status")
	exportCmd.Flags().Bool("include-location", false, "Include storage location")
	exportCmd.Flags().String("output", "", "Output file (defaults to the derived catalog filename)")
	exportCmd.Flags().Int("batch-size", 0, "Concurrent thumbnail fetches (overrides EXPORT_BATCH_SIZE)")
	exportCmd.Flags().Bool("json", false, "Print the export report as JSON instead of a progress bar")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()
	if n := mustGetInt(cmd, "batch-size"); n > 0 {
		cfg.Export.BatchSize = n
	}
	jsonOutput := mustGetBool(cmd, "json")

	scope := database.ExportScope{
		ArtworkIDs: mustGetStringSlice(cmd, "artwork"),
		EditionIDs: mustGetStringSlice(cmd, "edition"),
	}
	if scope.IsEmpty() {
		return errors.New("at least one --artwork or --edition is required")
	}
	opts := catalog.Options{
		IncludePrice:    mustGetBool(cmd, "include-price"),
		IncludeStatus:   mustGetBool(cmd, "include-status"),
		IncludeLocation: mustGetBool(cmd, "include-location"),
	}

	pool, err := openCatalogStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	reader, err := database.GetCatalogReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to get catalog reader: %w", err)
	}

	assembler := catalog.NewAssemblerFromConfig(cfg)
	if !jsonOutput {
		var bar *progressbar.ProgressBar
		assembler.Batcher().OnProgress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Fetching thumbnails"),
					progressbar.OptionShowCount(),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionFullWidth(),
				)
			}
			bar.Set(done)
		}
	}

	result, err := assembler.Export(ctx, reader, scope, opts)
	if errors.Is(err, database.ErrNotFound) {
		return errors.New("no records found for the given IDs")
	}
	if err != nil {
		return err
	}

	output := mustGetString(cmd, "output")
	if output == "" {
		output = result.Filename
	}
	if err := os.WriteFile(output, result.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if abs, err := filepath.Abs(output); err == nil {
		output = abs
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Report)
	}

	printExportSummary(output, result.Report)
	return nil
}

func printExportSummary(output string, report *catalog.ExportReport) {
	fmt.Printf("\nCatalog written to %s\n", output)
	fmt.Printf("  Records: %d\n", report.RecordCount)
	fmt.Printf("  Pages:   %d\n", report.PageCount)
	fmt.Printf("  Images:  %d\n", report.ImageCount)
	if len(report.MissingImages) > 0 {
		fmt.Printf("\nMissing images (%d):\n", len(report.MissingImages))
		for _, url := range report.MissingImages {
			fmt.Printf("  - %s\n", url)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(report.Warnings))
		for _, w := range report.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
}
