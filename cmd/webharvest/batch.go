package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/extract"
	"github.com/harvestlabs/webharvest/feed"
	"github.com/harvestlabs/webharvest/report"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	defer deps.Fetcher.Close()

	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		return webharvest.Errorf(webharvest.EINVALID, "no URLs to process")
	}

	batch := extract.NewBatch(deps.Pipeline,
		extract.WithConcurrency(c.Concurrency),
		extract.WithRateLimit(c.Rate),
		extract.WithBatchLogger(deps.Logger),
	)

	results := batch.Run(deps.Ctx, urls, func(p extract.Progress) {
		status := "ok"
		if p.Err != nil {
			status = webharvest.ErrorMessage(p.Err)
		}
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", p.Completed, p.Total, p.URL, status)
	})

	var docs []*webharvest.Document
	for _, r := range results {
		if r.Document == nil {
			continue
		}
		tagDocument(r.Document, c.Channel, c.Module)
		analyzeDocument(deps, r.Document)
		if err := deps.Archive.CreateDocument(deps.Ctx, r.Document); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: archiving %s failed: %s\n", r.URL, webharvest.ErrorMessage(err))
		}
		docs = append(docs, r.Document)
	}

	if !c.NoStore && len(docs) > 0 {
		added, err := deps.Store.Save(deps.Ctx, docs)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Indexed %d documents.\n", added)
	}

	if c.Out != "" {
		if err := report.WriteResults(c.Out, results); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	if c.Report != "" {
		if err := report.WriteHTMLReport(c.Report, results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	succeeded := len(docs)
	fmt.Fprintf(deps.Stdout, "Processed %d URLs: %d succeeded, %d failed.\n",
		len(results), succeeded, len(results)-succeeded)
	return nil
}

// collectURLs gathers the input URLs from arguments, a file, a sitemap
// or a feed, in that precedence order.
func (c *BatchCmd) collectURLs(deps *Dependencies) ([]string, error) {
	if len(c.URLs) > 0 {
		return c.URLs, nil
	}
	if c.FromFile != "" {
		return readURLFile(c.FromFile)
	}
	if c.FromSitemap != "" {
		return deps.Sitemaps.Discover(deps.Ctx, c.FromSitemap)
	}
	if c.FromFeed != "" {
		return feed.NewSource().Discover(deps.Ctx, c.FromFeed)
	}
	return nil, webharvest.Errorf(webharvest.EINVALID,
		"provide URLs as arguments, or use --from-file, --from-sitemap or --from-feed")
}

// readURLFile reads one URL per line, skipping blanks and # comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
