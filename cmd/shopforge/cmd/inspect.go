package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/loomworks/shopforge/internal/config"
	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/internal/pipeline"
)

var inspectPreviewRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect [input file]",
	Short: "Inspect an export and preview its column mapping",
	Long: `Read a CSV or XLSX product export and show how its columns map
onto the canonical fields, without writing any output.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectPreviewRows, "rows", "n", 3, "Number of preview rows")
}

func runInspect(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)

	header.Println("\n  INSPECTING INPUT FILE")
	fmt.Println("  " + strings.Repeat("─", 50))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	p := pipeline.New(cfg)
	if err := p.Initialize(ctx); err != nil {
		color.Red("  Error initializing pipeline: %v", err)
		return err
	}
	defer p.Close()

	result, err := p.Inspect(ctx, args[0], inspectPreviewRows)
	if err != nil {
		color.Red("  Error reading input: %v", err)
		return err
	}

	color.Yellow("  Columns: %d\n", len(result.Headers))
	color.Yellow("  Rows: %d\n", result.Rows)
	color.Yellow("  Variants after explosion: %d\n", result.Variants)
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
		fmt.Println()
	}

	if len(result.Preview) > 0 {
		header.Println("  PREVIEW")
		fmt.Println()
		for i, row := range result.Preview {
			title := mapper.CleanValue(mapper.Value(row, result.Mapping, mapper.FieldTitle, "Unknown"))
			size := mapper.CleanValue(mapper.Value(row, result.Mapping, mapper.FieldSize, ""))
			colour := mapper.CleanValue(mapper.Value(row, result.Mapping, mapper.FieldColour, ""))
			fmt.Printf("  %d. %s\n", i+1, title)
			if size != "" {
				fmt.Printf("     sizes: %s\n", size)
			}
			if colour != "" {
				fmt.Printf("     colors: %s\n", colour)
			}
		}
		fmt.Println()
	}

	return nil
}

func sortedKeys(m mapper.Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
