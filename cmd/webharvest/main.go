package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/extract"
	"github.com/harvestlabs/webharvest/gemini"
	harvesthttp "github.com/harvestlabs/webharvest/http"
	"github.com/harvestlabs/webharvest/openai"
	"github.com/harvestlabs/webharvest/readability"
	"github.com/harvestlabs/webharvest/rod"
	harvestslog "github.com/harvestlabs/webharvest/slog"
	"github.com/harvestlabs/webharvest/sqlite"
	"github.com/harvestlabs/webharvest/trafilatura"
	"github.com/harvestlabs/webharvest/vector"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Data directory holding the vector index, metadata and archive.
	// Set before calling Run().
	DataDir string

	// SQLite database used by the archive.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Archive webharvest.ArchiveService
	Store   webharvest.KnowledgeStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataDir: defaultDataDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webharvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webharvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.wire(ctx, cmd, cli, deps, logger, stderr); err != nil {
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wire sets up the dependencies each command needs. Extraction commands
// get a fetcher and pipeline; store commands get the knowledge store;
// every command that touches extraction results gets the archive.
func (m *Main) wire(ctx context.Context, cmd string, cli *CLI, deps *Dependencies, logger *slog.Logger, stderr io.Writer) error {
	if err := os.MkdirAll(m.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %q: %w", m.DataDir, err)
	}

	m.DB = sqlite.NewDB(filepath.Join(m.DataDir, "archive.db"))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: set WEBHARVEST_DATA to use a different data directory")
		return fmt.Errorf("failed to open archive at %q: %w", m.DataDir, err)
	}
	m.Archive = sqlite.NewArchiveService(m.DB)
	deps.Archive = m.Archive

	switch cmd {
	case "extract", "batch":
		var fetcher webharvest.Fetcher
		if cli.Browser {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = harvesthttp.NewFetcher()
		}
		deps.Fetcher = harvestslog.NewLoggingFetcher(fetcher, logger)
		deps.Pipeline = extract.NewPipeline(
			deps.Fetcher,
			trafilatura.NewStrategy(),
			readability.NewStrategy(),
			extract.WithLogger(logger),
		)
		deps.Sitemaps = harvesthttp.NewSitemapSource(nil)
	}

	switch cmd {
	case "extract", "batch", "search", "recent", "stats":
		embedder, err := newEmbedder(ctx, logger)
		if err != nil {
			return err
		}
		store := vector.NewStore(
			filepath.Join(m.DataDir, "index.bin"),
			filepath.Join(m.DataDir, "metadata.json"),
			embedder,
			vector.WithLogger(logger),
		)
		if err := store.Open(); err != nil {
			return fmt.Errorf("failed to open knowledge store: %w", err)
		}
		m.Store = harvestslog.NewLoggingKnowledgeStore(store, logger)
		deps.Store = m.Store
	}

	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" && (cmd == "extract" || cmd == "batch") {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  geminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err == nil {
			deps.Analyzer = gemini.NewAnalyzer(client)
		}
	}

	return nil
}

// newEmbedder picks the embedding backend from the environment:
// GEMINI_API_KEY wins, OPENAI_API_KEY is the alternative.
func newEmbedder(ctx context.Context, logger *slog.Logger) (webharvest.Embedder, error) {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewEmbedder(client, gemini.WithEmbedderLogger(logger)), nil
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return openai.NewEmbedder(openai.Config{
			APIKey:    apiKey,
			BaseURL:   os.Getenv("OPENAI_BASE_URL"),
			Model:     os.Getenv("OPENAI_EMBEDDING_MODEL"),
			Dimension: 768,
		})
	}

	return nil, fmt.Errorf("no embedding backend configured. Set GEMINI_API_KEY or OPENAI_API_KEY")
}

func defaultDataDir() string {
	if path := os.Getenv("WEBHARVEST_DATA"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".webharvest"
	}
	return filepath.Join(home, ".webharvest")
}
