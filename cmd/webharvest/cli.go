package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher  webharvest.Fetcher
	Pipeline *extract.Pipeline
	Sitemaps webharvest.URLSource
	Store    webharvest.KnowledgeStore
	Archive  webharvest.ArchiveService
	Analyzer webharvest.Analyzer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Browser bool `help:"Fetch pages with a headless browser (for JavaScript-rendered sites)"`

	Extract ExtractCmd `cmd:"" help:"Extract one article and add it to the knowledge store"`
	Batch   BatchCmd   `cmd:"" help:"Extract a list of URLs and report the results"`
	Search  SearchCmd  `cmd:"" help:"Search the knowledge store"`
	Recent  RecentCmd  `cmd:"" help:"List stored documents by date range"`
	Stats   StatsCmd   `cmd:"" help:"Show knowledge store statistics"`
	Export  ExportCmd  `cmd:"" help:"Export an archived document as markdown"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL     string `arg:"" help:"Article URL"`
	NoStore bool   `help:"Skip the knowledge store, print the document only"`
	Channel string `help:"Channel tag attached to the document"`
	Module  string `help:"Module tag attached to the document"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" help:"Article URLs"`
	FromFile    string   `short:"f" help:"Read URLs from a file, one per line"`
	FromSitemap string   `help:"Discover URLs from a site's sitemap"`
	FromFeed    string   `help:"Discover URLs from an RSS/Atom feed"`
	Out         string   `short:"o" help:"Write results JSON to this path"`
	Report      string   `help:"Write an HTML report to this path"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64  `short:"r" default:"1" help:"Requests per second"`
	NoStore     bool     `help:"Skip the knowledge store"`
	Channel     string   `help:"Channel tag attached to all documents"`
	Module      string   `help:"Module tag attached to all documents"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string `arg:"" help:"Search query"`
	TopK      int    `short:"k" default:"5" help:"Maximum results"`
	StartDate string `help:"Earliest date, YYYY-MM-DD"`
	EndDate   string `help:"Latest date, YYYY-MM-DD"`
}

// RecentCmd is the "recent" subcommand.
type RecentCmd struct {
	StartDate string `arg:"" help:"Earliest date, YYYY-MM-DD"`
	EndDate   string `arg:"" help:"Latest date, YYYY-MM-DD"`
	TopK      int    `short:"k" default:"10" help:"Maximum results"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	URL string `arg:"" help:"Archived article URL"`
	Out string `short:"o" help:"Output path (default: stdout)"`
}
