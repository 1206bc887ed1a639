package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/loomworks/shopforge/internal/config"
	"github.com/loomworks/shopforge/internal/output"
	"github.com/loomworks/shopforge/internal/pipeline"
)

var (
	buildOutputPath string
	buildMode       string
	buildFormat     string
	buildEditsPath  string
	buildDryRun     bool
)

var buildCmd = &cobra.Command{
	Use:   "build [input file]",
	Short: "Build a Shopify import CSV from a product export",
	Long: `Read a CSV or XLSX product export, map its columns, explode
size/color variants, apply overrides, and write a Shopify import CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutputPath, "output", "o", "", "Output file path")
	buildCmd.Flags().StringVar(&buildMode, "mode", "", "Description mode (default, simple, full); overrides config")
	buildCmd.Flags().StringVar(&buildFormat, "format", "shopify", "Output format (shopify, json)")
	buildCmd.Flags().StringVar(&buildEditsPath, "edits", "", "CSV of per-variant quantity/price edits")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Preview without writing output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)

	header.Println("\n  BUILDING SHOPIFY IMPORT")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		color.Yellow("  Warning: Could not load config, using defaults")
		cfg = config.DefaultConfig()
	}
	if buildMode != "" {
		cfg.Build.Mode = buildMode
	}

	inputPath := args[0]
	color.Yellow("  Input: %s\n", inputPath)
	color.Yellow("  Mode: %s\n", cfg.Build.Mode)
	if buildDryRun {
		color.Yellow("  Mode: DRY RUN\n")
	}
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	p := pipeline.New(cfg)
	if err := p.Initialize(ctx); err != nil {
		color.Red("  Error initializing pipeline: %v", err)
		return err
	}
	defer p.Close()

	var bar *progressbar.ProgressBar
	opts := pipeline.BuildOptions{
		InputPath:  inputPath,
		OutputPath: buildOutputPath,
		EditsPath:  buildEditsPath,
		Format:     output.Format(buildFormat),
		DryRun:     buildDryRun,
		OnAIProgress: func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("  Processing descriptions"),
					progressbar.OptionSetTheme(progressbar.Theme{
						Saucer:        color.GreenString("█"),
						SaucerHead:    color.GreenString("█"),
						SaucerPadding: "░",
						BarStart:      "[",
						BarEnd:        "]",
					}),
					progressbar.OptionShowCount(),
				)
			}
			bar.Set(done)
		},
	}

	result, err := p.Build(ctx, opts)
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		color.Red("  Error during build: %v", err)
		return err
	}

	// Mapping summary
	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Source Column", "Method", "Confidence"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)
	for _, field := range sortedKeys(result.Mapping) {
		table.Append([]string{
			field,
			result.Mapping[field],
			result.Report.Method[field],
			fmt.Sprintf("%.2f", result.Report.Confidence[field]),
		})
	}
	table.Render()
	fmt.Println()

	if len(result.Report.Unmapped) > 0 {
		color.Yellow("  Unmapped columns: %s\n", strings.Join(result.Report.Unmapped, ", "))
	}
	if result.MissingPrices > 0 {
		color.Yellow("  ⚠ %d products have no parseable price\n", result.MissingPrices)
	}

	success.Printf("  ✓ Products: %d\n", result.Products)
	success.Printf("  ✓ Variants: %d\n", result.Variants)
	success.Printf("  ✓ Rows written: %d\n", result.Rows)
	if result.Destination != "" {
		success.Printf("  ✓ Output: %s\n", result.Destination)
	}
	success.Printf("  ✓ Run %s completed in %s\n", result.RunID[:8], result.Duration().Round(time.Millisecond))
	fmt.Println()

	return nil
}
