package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gradboard/app/scrape"
)

// Artifact files written into the data directory. The "new" file holds only
// the latest run's records and is overwritten each run; the other file
// accumulates every run's output.
const (
	NewRecordsFile = "llm_extend_applicant_data_new.jsonl"
	AllRecordsFile = "llm_extend_applicant_data.jsonl"
)

var _ PipelineRunner = (*Pipeline)(nil)

// Pipeline runs one end-to-end ingestion pass: listing crawl, incremental
// filter, detail crawl, cleaning, enrichment, load.
type Pipeline struct {
	source   scrape.Source
	runner   *scrape.Runner
	listings PageFetcher
	details  RecordFetcher
	enricher Enricher
	loader   StreamLoader
	store    WatermarkStore
	dataDir  string
	pages    int
}

func NewPipeline(source scrape.Source, runner *scrape.Runner, listings PageFetcher,
	details RecordFetcher, enricher Enricher, loader StreamLoader, store WatermarkStore,
	dataDir string, pages int) *Pipeline {
	if pages < 1 {
		pages = 1
	}

	return &Pipeline{
		source:   source,
		runner:   runner,
		listings: listings,
		details:  details,
		enricher: enricher,
		loader:   loader,
		store:    store,
		dataDir:  dataDir,
		pages:    pages,
	}
}

// Run executes one ingestion pass and returns the number of newly stored
// records. A fetch failure drops only its page; a cleaning failure or a
// store failure fails the run.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	// a fresh store has no admissions table yet; provision it before the
	// watermark reads so the first run degrades to a full backfill
	if err := p.store.EnsureSchema(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema: %w", err)
	}

	known, err := p.store.GetKnownURLs()
	if err != nil {
		return 0, fmt.Errorf("failed to load known URLs: %w", err)
	}

	var minResultID int64
	if watermark, ok, err := p.store.GetMaxResultPage(); err != nil {
		return 0, fmt.Errorf("failed to load watermark: %w", err)
	} else if ok {
		minResultID = watermark + 1
	}

	slog.Info("Starting ingestion run", "pages", p.pages, "known_urls", len(known), "min_result_id", minResultID)

	pages := make([]int, p.pages)
	for i := range pages {
		pages[i] = i + 1
	}

	groups := p.runner.CollectGroups(ctx, pages, p.listings.FetchPage)

	seeds := make([]scrape.Record, 0, len(groups))
	for _, group := range groups {
		seed := scrape.SeedFromRowGroup(group, p.source)
		if seed.IsZero() {
			continue
		}
		seeds = append(seeds, seed)
	}

	fresh := FilterNew(seeds, minResultID, known)
	slog.Info("Filtered listing results", "seeded", len(seeds), "fresh", len(fresh))

	records := p.runner.CollectRecords(ctx, fresh, p.details.FetchDetail)

	entries := make([]map[string]any, 0, len(records))
	for _, record := range records {
		clean, err := Clean(record)
		if err != nil {
			return 0, fmt.Errorf("failed to clean record %s: %w", record.URL, err)
		}

		program, university := clean.Program, clean.University
		if p.enricher != nil && p.enricher.Enabled() {
			program, university, err = p.enricher.Normalize(ctx, clean.Program, clean.University)
			if err != nil {
				slog.Warn("Enrichment failed, keeping raw fields", "url", clean.URL, "error", err)
				program, university = clean.Program, clean.University
			}
		}

		entries = append(entries, EncodeWire(clean, program, university))
	}

	lines, err := MarshalWireLines(entries)
	if err != nil {
		return 0, err
	}

	if err := p.writeArtifacts(lines); err != nil {
		return 0, err
	}

	inserted, err := p.loader.LoadStream(ctx, bytes.NewReader(lines))
	if err != nil {
		return 0, err
	}

	slog.Info("Ingestion run complete", "detailed", len(records), "inserted", inserted)
	return inserted, nil
}

// writeArtifacts mirrors the wire stream to disk: the per-run file is
// replaced, the cumulative file appended. Skipped when no data directory
// is configured.
func (p *Pipeline) writeArtifacts(lines []byte) error {
	if p.dataDir == "" {
		return nil
	}

	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	newPath := filepath.Join(p.dataDir, NewRecordsFile)
	if err := os.WriteFile(newPath, lines, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", NewRecordsFile, err)
	}

	allPath := filepath.Join(p.dataDir, AllRecordsFile)
	f, err := os.OpenFile(allPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", AllRecordsFile, err)
	}
	defer f.Close()

	if _, err := f.Write(lines); err != nil {
		return fmt.Errorf("failed to append %s: %w", AllRecordsFile, err)
	}

	return nil
}
