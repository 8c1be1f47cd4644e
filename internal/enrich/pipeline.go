package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ward-insights/postcode-cli/internal/table"
	"github.com/ward-insights/postcode-cli/pkg/postcodes"
)

// Options configures a pipeline run.
type Options struct {
	InputPath      string
	OutputPath     string
	PostcodeColumn string
	SheetName      string
}

// Summary reports what a pipeline run did.
type Summary struct {
	Rows    int // data rows in the input
	Queried int // non-empty postcodes sent to the API
	Matched int // postcodes the API resolved
	Batches int // batch requests issued
}

// Pipeline runs the enrichment stages in sequence.
type Pipeline struct {
	client postcodes.Client
}

// New creates a Pipeline using the given lookup client.
func New(client postcodes.Client) *Pipeline {
	return &Pipeline{client: client}
}

// Run executes read, lookup, merge, and write. The output file is only
// written after every batch request has succeeded, so a failed run leaves
// no partial output behind.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	log := zap.L()

	tbl, err := table.Read(opts.InputPath, table.ReadOptions{SheetName: opts.SheetName})
	if err != nil {
		return nil, eris.Wrap(err, "read input")
	}

	colIdx, err := tbl.ColumnIndex(opts.PostcodeColumn)
	if err != nil {
		return nil, err
	}
	log.Info("input loaded",
		zap.String("path", opts.InputPath),
		zap.Int("rows", len(tbl.Rows)),
		zap.String("postcode_column", opts.PostcodeColumn),
	)

	queries := tbl.Column(colIdx)
	summary := &Summary{Rows: len(tbl.Rows)}
	for _, q := range queries {
		if postcodes.Normalize(q) != "" {
			summary.Queried++
		}
	}

	results, err := p.client.LookupAll(ctx, queries, func(batch, total, size int) {
		summary.Batches = total
		log.Info("looking up batch",
			zap.Int("batch", batch),
			zap.Int("total_batches", total),
			zap.Int("postcodes", size),
		)
	})
	if err != nil {
		return nil, err
	}

	for i := range tbl.Rows {
		if results[postcodes.Normalize(tbl.Cell(i, colIdx))] != nil {
			summary.Matched++
		}
	}

	merged := Merge(tbl, colIdx, results)
	if err := table.Write(merged, opts.OutputPath); err != nil {
		return nil, eris.Wrap(err, "write output")
	}

	log.Info("enrichment complete",
		zap.String("output", opts.OutputPath),
		zap.Int("rows", summary.Rows),
		zap.Int("matched", summary.Matched),
	)
	return summary, nil
}
