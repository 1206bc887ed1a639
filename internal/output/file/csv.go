package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/loomworks/shopforge/internal/assembler"
	"github.com/loomworks/shopforge/internal/output"
	"github.com/loomworks/shopforge/pkg/models"
)

const CSVAdapterName = "csv"

// CSVConfig holds CSV file output configuration
type CSVConfig struct {
	OutputDir string // Directory for output files
}

// CSVAdapter implements the output.Adapter interface for Shopify
// import CSV files
type CSVAdapter struct {
	*output.BaseAdapter
	config CSVConfig
}

// NewCSVAdapter creates a new CSV file adapter
func NewCSVAdapter(cfg CSVConfig) *CSVAdapter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	return &CSVAdapter{
		BaseAdapter: output.NewBaseAdapter(
			CSVAdapterName,
			[]output.Format{output.FormatShopify},
		),
		config: cfg,
	}
}

// Connect creates the output directory
func (a *CSVAdapter) Connect(ctx context.Context) error {
	if err := os.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	a.SetConnected(true)
	return nil
}

// Close cleans up resources
func (a *CSVAdapter) Close() error {
	a.SetConnected(false)
	return nil
}

// Test verifies the output directory is writable
func (a *CSVAdapter) Test(ctx context.Context) error {
	testFile := filepath.Join(a.config.OutputDir, ".test")
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	f.Close()
	os.Remove(testFile)
	return nil
}

// Export writes assembled rows to a Shopify import CSV file. Columns
// are emitted in the exact order Shopify expects.
func (a *CSVAdapter) Export(ctx context.Context, rows []models.OutputRow, opts output.ExportOptions) (*output.ExportResult, error) {
	result := &output.ExportResult{
		StartedAt: time.Now(),
	}

	if !a.IsConnected() {
		if err := a.Connect(ctx); err != nil {
			result.Error = err
			return result, err
		}
	}

	if opts.DryRun {
		result.RowsExported = len(rows)
		result.Success = true
		result.Details = fmt.Sprintf("Dry run: would write %d rows", len(rows))
		result.CompletedAt = time.Now()
		return result, nil
	}

	filename := opts.OutputPath
	if filename == "" {
		timestamp := time.Now().Format("2006-01-02_150405")
		filename = filepath.Join(a.config.OutputDir, fmt.Sprintf("shopify_import_%s.csv", timestamp))
	}

	f, err := os.Create(filename)
	if err != nil {
		result.Error = err
		return result, err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(assembler.Columns); err != nil {
		result.Error = err
		return result, err
	}

	record := make([]string, len(assembler.Columns))
	for _, row := range rows {
		for i, col := range assembler.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			result.Error = err
			return result, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		result.Error = err
		return result, err
	}

	result.Destination = filename
	result.RowsExported = len(rows)
	result.Success = true
	result.Details = fmt.Sprintf("Wrote %d rows to %s", len(rows), filename)
	result.CompletedAt = time.Now()

	return result, nil
}
