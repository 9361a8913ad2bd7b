package ingest

import (
	"context"
	"io"

	"gradboard/app/scrape"
)

// PageFetcher retrieves one listing page as raw row-groups.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) []scrape.RowGroup
}

// RecordFetcher fills a seeded record from its detail page.
type RecordFetcher interface {
	FetchDetail(ctx context.Context, seed scrape.Record) scrape.Record
}

// Enricher normalizes free-text program and university names through the
// external service.
type Enricher interface {
	Enabled() bool
	Normalize(ctx context.Context, program, university string) (string, string, error)
}

// StreamLoader persists a wire-format stream.
type StreamLoader interface {
	LoadStream(ctx context.Context, r io.Reader) (int, error)
}

// WatermarkStore exposes the incremental-crawl bounds held by the store.
type WatermarkStore interface {
	EnsureSchema() error
	GetKnownURLs() (map[string]struct{}, error)
	GetMaxResultPage() (int64, bool, error)
}

// PipelineRunner executes one full ingestion run.
type PipelineRunner interface {
	Run(ctx context.Context) (int, error)
}
