// Package pipeline coordinates the build: read the upload, map its
// columns, explode variants, layer overrides, assemble Shopify rows
// and hand them to an output adapter.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loomworks/shopforge/internal/ai"
	"github.com/loomworks/shopforge/internal/assembler"
	"github.com/loomworks/shopforge/internal/config"
	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/internal/output"
	"github.com/loomworks/shopforge/internal/output/file"
	"github.com/loomworks/shopforge/internal/overrides"
	"github.com/loomworks/shopforge/internal/source"
	"github.com/loomworks/shopforge/internal/variants"
	"github.com/loomworks/shopforge/pkg/models"
)

// Pipeline coordinates the product build
type Pipeline struct {
	config  *config.Config
	ai      *ai.Service
	outputs *output.Registry
}

// New creates a new pipeline
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		config:  cfg,
		outputs: output.NewRegistry(),
	}
}

// Initialize sets up the AI service and output adapters
func (p *Pipeline) Initialize(ctx context.Context) error {
	p.ai = ai.NewService(p.config)

	if err := p.outputs.Register(file.NewCSVAdapter(file.CSVConfig{
		OutputDir: p.config.Output.OutputDir,
	})); err != nil {
		return err
	}

	if err := p.outputs.Register(file.NewJSONAdapter(file.JSONConfig{
		OutputDir: p.config.Output.OutputDir,
		Pretty:    p.config.Output.Pretty,
	})); err != nil {
		return err
	}

	return nil
}

// Close cleans up all resources
func (p *Pipeline) Close() error {
	return p.outputs.CloseAll()
}

// BuildOptions configures the build operation
type BuildOptions struct {
	InputPath  string
	OutputPath string
	EditsPath  string        // optional CSV of per-variant edits
	Format     output.Format // defaults to shopify CSV
	DryRun     bool

	// OnAIProgress fires after each description is processed
	OnAIProgress func(done, total int)
}

// BuildResult summarizes a completed build
type BuildResult struct {
	RunID         string
	Products      int // source rows read
	Variants      int // exploded variant rows
	Rows          int // Shopify rows written
	MissingPrices int // products with no parseable price
	Mapping       mapper.Mapping
	Report        *mapper.Report
	Destination   string
	StartedAt     time.Time
	CompletedAt   time.Time
	Error         error
}

// Duration returns how long the build took
func (r *BuildResult) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Build runs the full transformation over one input file
func (p *Pipeline) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	result := &BuildResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	if opts.Format == "" {
		opts.Format = output.FormatShopify
	}

	table, err := source.Load(opts.InputPath)
	if err != nil {
		result.Error = err
		return result, fmt.Errorf("failed to read input: %w", err)
	}
	result.Products = len(table.Rows)

	mapping, report := mapper.MapColumns(table)
	result.Mapping = mapping
	result.Report = report

	// Rewrite descriptions before explosion so every variant of a
	// product carries the same text.
	descriptions := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		descriptions[i] = mapper.CleanValue(mapper.Value(row, mapping, mapper.FieldDescription, ""))
	}
	aiResults := p.ai.ProcessBatch(ctx, descriptions, func(i int) {
		if opts.OnAIProgress != nil {
			opts.OnAIProgress(i+1, len(descriptions))
		}
	})

	explodeOpts := variants.Options{DefaultComparePrice: p.config.Build.DefaultComparePrice}
	var allVariants []models.VariantRow
	listPrices := make(map[string]float64)

	for i, row := range table.Rows {
		if _, ok := mapper.ParsePrice(mapper.Value(row, mapping, mapper.FieldPrice, "")); !ok {
			result.MissingPrices++
		}

		handle := variants.GenerateHandle(row, mapping)
		title := mapper.CleanValue(mapper.Value(row, mapping, mapper.FieldTitle, "Unknown"))
		price, _ := mapper.ParsePrice(mapper.Value(row, mapping, mapper.FieldPrice, "0"))

		for _, v := range variants.Explode(row, table.Headers, mapping, explodeOpts) {
			v.Handle = handle
			v.Description = aiResults[i].Description
			v.Tags = aiResults[i].Tags
			listPrices[overrides.Key(v.Size, v.Color, title)] = price
			allVariants = append(allVariants, v)
		}
	}
	result.Variants = len(allVariants)

	store := overrides.NewStore(overrides.Defaults{
		Quantity:     p.config.Build.DefaultQty,
		ComparePrice: p.config.Build.DefaultComparePrice,
	})
	store.Seed(allVariants, func(row models.Row) string {
		return mapper.CleanValue(mapper.Value(row, mapping, mapper.FieldTitle, "Unknown"))
	})

	if opts.EditsPath != "" {
		edits, err := overrides.LoadEdits(opts.EditsPath)
		if err != nil {
			result.Error = err
			return result, fmt.Errorf("failed to load edits: %w", err)
		}
		store.Apply(edits)
	}

	if p.config.Build.BulkQtyMode {
		store.ApplyBulkQuantity(p.config.Build.BulkQty)
	}
	if p.config.Build.BulkComparePriceMode {
		store.ApplyBulkComparePrice(p.config.Build.BulkComparePrice)
	}
	if p.config.Build.EnableSurcharge {
		store.ApplySizeSurcharge(p.config.Build.SurchargeRules, func(key string) float64 {
			return listPrices[key]
		})
	}

	rows := assembler.Assemble(allVariants, mapping, store, assembler.Options{
		VendorName:      p.config.Build.VendorName,
		InventoryPolicy: p.config.Build.InventoryPolicy,
	})
	result.Rows = len(rows)

	adapter, err := p.outputs.ForFormat(opts.Format)
	if err != nil {
		result.Error = err
		return result, err
	}

	exportResult, err := adapter.Export(ctx, rows, output.ExportOptions{
		Format:     opts.Format,
		OutputPath: opts.OutputPath,
		DryRun:     opts.DryRun,
	})
	if err != nil {
		result.Error = err
		return result, fmt.Errorf("export failed: %w", err)
	}

	result.Destination = exportResult.Destination
	result.CompletedAt = time.Now()

	return result, nil
}

// InspectResult describes an input file without building it
type InspectResult struct {
	Headers  []string
	Rows     int
	Mapping  mapper.Mapping
	Report   *mapper.Report
	Preview  []models.Row
	Variants int
}

// Inspect reads an input file and reports how its columns would map
func (p *Pipeline) Inspect(ctx context.Context, path string, previewRows int) (*InspectResult, error) {
	table, err := source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	mapping, report := mapper.MapColumns(table)

	explodeOpts := variants.Options{DefaultComparePrice: p.config.Build.DefaultComparePrice}
	variantCount := 0
	for _, row := range table.Rows {
		variantCount += len(variants.Explode(row, table.Headers, mapping, explodeOpts))
	}

	if previewRows > len(table.Rows) {
		previewRows = len(table.Rows)
	}

	return &InspectResult{
		Headers:  table.Headers,
		Rows:     len(table.Rows),
		Mapping:  mapping,
		Report:   report,
		Preview:  table.Rows[:previewRows],
		Variants: variantCount,
	}, nil
}
