package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/loomworks/shopforge/internal/assembler"
	"github.com/loomworks/shopforge/internal/output"
	"github.com/loomworks/shopforge/pkg/models"
)

const JSONAdapterName = "json"

// JSONConfig holds JSON file output configuration
type JSONConfig struct {
	OutputDir string
	Pretty    bool
}

// JSONAdapter implements the output.Adapter interface for JSON
// preview files. Useful for eyeballing the assembled rows before
// committing to a Shopify import.
type JSONAdapter struct {
	*output.BaseAdapter
	config JSONConfig
}

// NewJSONAdapter creates a new JSON file adapter
func NewJSONAdapter(cfg JSONConfig) *JSONAdapter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	return &JSONAdapter{
		BaseAdapter: output.NewBaseAdapter(
			JSONAdapterName,
			[]output.Format{output.FormatJSON},
		),
		config: cfg,
	}
}

// Connect creates the output directory
func (a *JSONAdapter) Connect(ctx context.Context) error {
	if err := os.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	a.SetConnected(true)
	return nil
}

// Close cleans up resources
func (a *JSONAdapter) Close() error {
	a.SetConnected(false)
	return nil
}

// Test verifies the output directory is writable
func (a *JSONAdapter) Test(ctx context.Context) error {
	testFile := filepath.Join(a.config.OutputDir, ".test")
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	f.Close()
	os.Remove(testFile)
	return nil
}

// Export writes assembled rows as an array of JSON objects, skipping
// blank columns so the preview stays readable.
func (a *JSONAdapter) Export(ctx context.Context, rows []models.OutputRow, opts output.ExportOptions) (*output.ExportResult, error) {
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
		filename = filepath.Join(a.config.OutputDir, fmt.Sprintf("shopify_preview_%s.json", timestamp))
	}

	compact := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string)
		for _, col := range assembler.Columns {
			if row[col] != "" {
				obj[col] = row[col]
			}
		}
		compact = append(compact, obj)
	}

	var data []byte
	var err error
	if opts.Pretty || a.config.Pretty {
		data, err = json.MarshalIndent(compact, "", "  ")
	} else {
		data, err = json.Marshal(compact)
	}
	if err != nil {
		result.Error = err
		return result, err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
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
