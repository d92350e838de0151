// Package pipeline wires the feed, extractor, calculator and renderer
// into the two-snapshot debt report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/wallscreet/us-debt/internal/delta"
	"github.com/wallscreet/us-debt/internal/extract"
	"github.com/wallscreet/us-debt/internal/feed"
	"github.com/wallscreet/us-debt/internal/llm"
	"github.com/wallscreet/us-debt/internal/model"
	"github.com/wallscreet/us-debt/internal/render"
)

// ItemSource supplies the n most recent syndicated items, newest first.
type ItemSource interface {
	Recent(ctx context.Context, n int) ([]feed.Item, error)
}

// Noter generates the optional commentary for the report.
type Noter interface {
	Note(ctx context.Context, newest model.DebtRecord, d model.DebtDelta) (string, error)
}

// Pipeline orchestrates fetch, extraction, delta and rendering.
type Pipeline struct {
	source    ItemSource
	extractor *extract.Extractor
	renderer  *render.Renderer
	noter     Noter // nil when commentary is disabled
	cfg       *model.Config
}

// New creates a pipeline with the given configuration.
func New(cfg *model.Config) (*Pipeline, error) {
	renderer, err := render.New(cfg.Output)
	if err != nil {
		return nil, err
	}

	var noter Noter
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: commentary disabled: %v\n", err)
		} else {
			noter = s
		}
	}

	return &Pipeline{
		source:    feed.NewFetcher(cfg.Feed),
		extractor: extract.NewExtractor(extract.DefaultFieldLabels()),
		renderer:  renderer,
		noter:     noter,
		cfg:       cfg,
	}, nil
}

// Run fetches the configured number of items, extracts a record from
// each, computes the delta between the two most recent and writes the
// report to w. Any extraction or computation failure aborts the whole
// report; nothing is substituted or retried.
func (p *Pipeline) Run(ctx context.Context, w io.Writer) error {
	n := p.cfg.Feed.Items
	if n < 2 {
		n = 2
	}

	items, err := p.source.Recent(ctx, n)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	records := make([]model.DebtRecord, 0, len(items))
	for _, item := range items {
		rec, err := p.extractor.Extract(item.Content, item.Title)
		if err != nil {
			return fmt.Errorf("extract %q: %w", item.Title, err)
		}
		rec.Published = item.Published
		records = append(records, rec)
	}

	// Feed order is newest first; the delta covers the newest pair.
	d, err := delta.Compute(records[0], records[1])
	if err != nil {
		return fmt.Errorf("compute delta: %w", err)
	}

	p.renderer.RenderClock(w, records)
	p.renderer.RenderDelta(w, d)

	if p.noter != nil {
		note, err := p.noter.Note(ctx, records[0], d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: commentary generation failed: %v\n", err)
		} else {
			p.renderer.RenderNote(w, note)
		}
	}

	return nil
}
