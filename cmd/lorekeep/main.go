package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lorekeep"
	"github.com/fwojciec/lorekeep/htmltomarkdown"
	lkhttp "github.com/fwojciec/lorekeep/http"
	"github.com/fwojciec/lorekeep/lookup"
	"github.com/fwojciec/lorekeep/mediawiki"
	"github.com/fwojciec/lorekeep/readability"
	"github.com/fwojciec/lorekeep/reader"
	lkslog "github.com/fwojciec/lorekeep/slog"
	"github.com/fwojciec/lorekeep/sqlite"
	"github.com/fwojciec/lorekeep/trafilatura"
	"github.com/fwojciec/lorekeep/wahapedia"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err unless a command has already reported it.
func printError(w io.Writer, err error) {
	var reported reportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, err)
}

// Main represents the program.
type Main struct {
	// Cache file path used when neither --cache nor LOREKEEP_CACHE is set.
	CachePath string

	// SQLite database backing the cache. Opened by Run, closed by Close.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher, for end-to-end testing.
	Fetcher lorekeep.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CachePath: defaultCachePath(),
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lorekeep"),
		kong.Description("Look up Warhammer 40k lore and rules."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		DefaultVars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lorekeep --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// factions needs neither the network nor the cache
	if commandName(kongCtx) == "factions" {
		return kongCtx.Run(deps)
	}

	cfg := cli.Options.Config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %s", lorekeep.ErrorMessage(err))
	}

	logger := newLogger(stderr, cli.Verbose)

	path := cli.Cache
	if path == "" {
		path = m.CachePath
	}
	m.DB = sqlite.NewDB(path, sqlite.WithFreshStart(!cli.KeepCache))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set LOREKEEP_CACHE to use a different cache path")
		return fmt.Errorf("failed to open cache at %q: %w", path, err)
	}
	defer m.Close()

	cache := lkslog.NewLoggingCacheService(sqlite.NewCacheService(m.DB, sqlite.WithLogger(logger)), logger)

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = lkhttp.NewFetcher(
			lkhttp.WithTimeout(cli.Timeout),
			lkhttp.WithRateLimiter(lkhttp.NewDomainLimiter(requestsPerSecond)),
			lkhttp.WithRetryDelays(retryDelays),
		)
	}
	fetcher = lkslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	converter := htmltomarkdown.NewConverter()

	deps.Lookup = &lookup.Service{
		Config: cfg,
		Cache:  cache,
		Lexicanum: lkslog.NewLoggingWikiSearcher(
			mediawiki.NewLexicanumSearcher(fetcher, converter), "lexicanum", logger),
		Fandom: lkslog.NewLoggingWikiSearcher(
			mediawiki.NewFandomSearcher(fetcher, converter), "fandom", logger),
		Wahapedia: lkslog.NewLoggingRulesSearcher(wahapedia.NewSearcher(fetcher), logger),
		Reader: lkslog.NewLoggingPageReader(
			reader.New(fetcher, trafilatura.NewExtractor(), converter,
				reader.WithFallbackExtractor(readability.NewExtractor()),
				reader.WithAllowedHosts(allowedHosts...)), logger),
		Logger: logger,
	}

	return kongCtx.Run(deps)
}

// requestsPerSecond is the per-domain request budget for the public wikis.
const requestsPerSecond = 1.0

var retryDelays = []time.Duration{time.Second, 2 * time.Second}

// allowedHosts are the sites read accepts URLs from.
var allowedHosts = []string{
	"wh40k.lexicanum.com",
	"warhammer40k.fandom.com",
	"wahapedia.ru",
}

func commandName(kongCtx *kong.Context) string {
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// defaultCachePath places cache.db next to the executable.
func defaultCachePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "cache.db"
	}
	return filepath.Join(filepath.Dir(exe), "cache.db")
}
