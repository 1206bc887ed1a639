package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopforge",
	Short: "Shopify Import Forge",
	Long: color.New(color.FgCyan, color.Bold).Sprint(`
  ____  _                 _____
 / ___|| |__   ___  _ __ |  ___|__  _ __ __ _  ___
 \___ \| '_ \ / _ \| '_ \| |_ / _ \| '__/ _' |/ _ \
  ___) | | | | (_) | |_) |  _| (_) | | | (_| |  __/
 |____/|_| |_|\___/| .__/|_|  \___/|_|  \__, |\___|
                   |_|                  |___/
`) + `
Shopify Import Forge - Product catalog conversion toolkit

Turn arbitrary CSV/Excel product exports into ready-to-import
Shopify CSVs: fuzzy column mapping, size and inventory parsing,
variant explosion, and price overrides.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}
