package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/fwojciec/storyindex"
	"github.com/fwojciec/storyindex/crawl"
	"github.com/fwojciec/storyindex/fs"
	"github.com/fwojciec/storyindex/gofeed"
	"github.com/fwojciec/storyindex/goquery"
	storyhttp "github.com/fwojciec/storyindex/http"
	storyslog "github.com/fwojciec/storyindex/slog"
	"github.com/mattn/go-runewidth"
)

// titleWidth is the display width of article titles in progress lines.
const titleWidth = 60

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	logger := newLogger(deps.Stderr, c.Verbose)
	pipeline, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}
	pipeline.Limit = c.Limit

	fmt.Fprintf(deps.Stdout, "Scraping %s\n", cfg.BaseURL)
	result, err := pipeline.Run(deps.Ctx, cfg.BaseURL, progressPrinter(deps.Stdout))
	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result))
	if err != nil {
		return err
	}

	if c.DryRun {
		fmt.Fprintln(deps.Stdout, "Dry run: no artifacts written")
		printStats(deps.Stdout, result, nil)
		return nil
	}

	store := fs.NewArtifactStore(cfg.OutputDir)
	if err := writeArtifacts(deps.Ctx, store, cfg.Artifacts, result); err != nil {
		_ = store.Abort()
		return fmt.Errorf("failed to write artifacts to %s: %w", cfg.OutputDir, err)
	}
	sizes := store.Sizes()

	cloudStore := fs.NewArtifactStore(cfg.OutputDir)
	if _, _, err := rebuildWordCloud(deps.Ctx, cloudStore, cfg.OutputDir, cfg.Artifacts); err != nil {
		return fmt.Errorf("failed to write word cloud to %s: %w", cfg.OutputDir, err)
	}
	maps.Copy(sizes, cloudStore.Sizes())

	fmt.Fprintf(deps.Stdout, "Wrote artifacts to %s\n", cfg.OutputDir)
	printStats(deps.Stdout, result, sizes)
	return nil
}

// newPipeline wires the services described by cfg.
func newPipeline(cfg storyindex.Config, logger *slog.Logger) (*crawl.Pipeline, error) {
	filter, err := storyindex.NewURLFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	fetcher := storyslog.NewLoggingFetcher(
		storyhttp.NewFetcher(
			storyhttp.WithTimeout(cfg.Timeout),
			storyhttp.WithUserAgent(cfg.UserAgent),
		),
		logger,
	)

	var sources []storyindex.ListingSource
	if cfg.Sources.TagPath != "" {
		sources = append(sources, goquery.NewPageSource(fetcher, "tag", cfg.Sources.TagPath))
	}
	if cfg.Sources.ArchivePath != "" {
		sources = append(sources, goquery.NewPageSource(fetcher, "archive", cfg.Sources.ArchivePath,
			goquery.WithMaxPages(cfg.Sources.ArchiveMaxPages)))
	}
	if cfg.Sources.Sitemap {
		sources = append(sources, storyhttp.NewSitemapService(fetcher))
	}
	if cfg.Sources.FeedPath != "" {
		sources = append(sources, gofeed.NewFeedSource(fetcher, cfg.Sources.FeedPath))
	}
	for i, s := range sources {
		sources[i] = storyslog.NewLoggingSource(s, logger)
	}

	discoverer := &crawl.Discoverer{
		Sources: sources,
		Infix:   cfg.ArticleInfix,
		Filter:  filter,
	}

	return &crawl.Pipeline{
		URLs:        storyslog.NewLoggingURLSource(discoverer, logger),
		Fetcher:     fetcher,
		Extractor:   storyslog.NewLoggingExtractor(goquery.NewExtractor(goquery.WithPolicy(cfg.Extract)), logger),
		RateLimiter: crawl.NewDomainLimiter(cfg.RequestsPerSecond),
		RetryDelays: crawl.FixedRetryDelays(cfg.RetryAttempts, cfg.RetryBackoff),
		Concurrency: cfg.Concurrency,
		Logger: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}, nil
}

// progressPrinter reports pipeline progress on w, one line per event.
func progressPrinter(w io.Writer) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStateChanged:
			switch e.State {
			case crawl.StateFetching:
				fmt.Fprintf(w, "Found %d article URLs\n", e.Total)
			case crawl.StateAggregating:
				fmt.Fprintln(w, "Building index")
			}
		case crawl.ProgressCompleted:
			fmt.Fprintf(w, "[%d/%d] %s\n", e.Completed, e.Total, runewidth.Truncate(e.Title, titleWidth, "..."))
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "[%d/%d] skip %s: %v\n", e.Completed, e.Total, crawl.TruncateURL(e.URL, titleWidth), e.Error)
		}
	}
}

// writeArtifacts stages the search index and metadata and commits them
// together.
func writeArtifacts(ctx context.Context, store storyindex.ArtifactStore, names storyindex.ArtifactsConfig, result *crawl.Result) error {
	if err := store.Save(ctx, names.SearchIndex, result.Search, false); err != nil {
		return err
	}
	if err := store.Save(ctx, names.Metadata, result.Metadata, true); err != nil {
		return err
	}
	return store.Commit()
}

// rebuildWordCloud derives the word cloud from the search index on disk in
// dir and commits it through store. Returns the entries and the number of
// records read.
func rebuildWordCloud(ctx context.Context, store storyindex.ArtifactStore, dir string, names storyindex.ArtifactsConfig) ([]storyindex.WordCloudEntry, int, error) {
	records, err := fs.LoadSearchRecords(filepath.Join(dir, names.SearchIndex))
	if err != nil {
		return nil, 0, err
	}

	entries := storyindex.AnalyzeWordFrequency(records, storyindex.DefaultWordCloudSize)
	if err := store.Save(ctx, names.WordCloud, entries, true); err != nil {
		_ = store.Abort()
		return nil, 0, err
	}
	if err := store.Commit(); err != nil {
		return nil, 0, err
	}
	return entries, len(records), nil
}

// printStats writes the run statistics. sizes may be nil when nothing was
// written.
func printStats(w io.Writer, result *crawl.Result, sizes map[string]int) {
	stats := storyindex.ComputeIndexStats(result.Search, result.Metadata)
	fmt.Fprintf(w, "Stories:            %d\n", stats.Articles)
	fmt.Fprintf(w, "Total words:        %d\n", stats.Words)
	fmt.Fprintf(w, "Total paragraphs:   %d\n", stats.Paragraphs)
	fmt.Fprintf(w, "Avg words/story:    %d\n", stats.AverageWords())

	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%-24s %s\n", name+":", crawl.FormatBytes(sizes[name]))
	}
	fmt.Fprintf(w, "Fingerprint:        %s\n", result.Fingerprint)
}
