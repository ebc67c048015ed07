package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/compare"
	"github.com/fwojciec/pricecheck/goquery"
	pchttp "github.com/fwojciec/pricecheck/http"
	pcslog "github.com/fwojciec/pricecheck/slog"
	"github.com/fwojciec/pricecheck/sqlite"
	"github.com/fwojciec/pricecheck/yaml"
)

// defaultRPS keeps the default request rate polite to the stores.
const defaultRPS = 1.0

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by the catalog store.
	DB *sqlite.DB

	// Fetcher retrieves store pages. Nil uses an HTTP fetcher.
	Fetcher pricecheck.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		kong.Name("pricecheck"),
		kong.Description("Compare product prices across Indian online stores."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pricecheck --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Command()

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose || strings.HasPrefix(command, "serve") {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	defer m.Close()

	if strings.HasPrefix(command, "catalog") {
		if err := m.openDB(stderr); err != nil {
			return err
		}
		deps.Entries = sqlite.NewCatalogService(m.DB)
		return kongCtx.Run(deps)
	}

	deps.Catalog, err = m.loadCatalog(ctx, cli)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	deps.Offline = pcslog.NewLoggingComparer(&compare.CatalogComparer{Catalog: deps.Catalog}, "catalog", deps.Logger)

	needsLive := (strings.HasPrefix(command, "compare") && !cli.Compare.Offline) ||
		(strings.HasPrefix(command, "serve") && !cli.Serve.Offline)
	if needsLive {
		cfg := yaml.DefaultConfig()
		if cli.Config != "" {
			if cfg, err = yaml.LoadConfigFile(cli.Config); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}
		live, closeFn := m.liveComparer(cfg, cli, deps.Logger)
		defer closeFn()
		deps.Live = live
	}

	return kongCtx.Run(deps)
}

// openDB opens the catalog database at m.DBPath, creating it if needed.
func (m *Main) openDB(stderr io.Writer) error {
	if dir := filepath.Dir(m.DBPath); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set PRICECHECK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

// loadCatalog returns the catalog file given with --catalog, else the stored
// catalog when the database exists and is not empty, else the built-in one.
func (m *Main) loadCatalog(ctx context.Context, cli *CLI) (*pricecheck.Catalog, error) {
	if cli.CatalogFile != "" {
		return yaml.LoadCatalogFile(cli.CatalogFile)
	}

	if _, err := os.Stat(m.DBPath); err == nil {
		if err := m.openDB(io.Discard); err != nil {
			return nil, err
		}
		catalog, err := sqlite.NewCatalogService(m.DB).LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		if catalog.Len() > 0 {
			return catalog, nil
		}
	}

	return yaml.DefaultCatalog()
}

// liveComparer wires store retrieval: fetcher, extractors, host limiter and
// logging decorators.
func (m *Main) liveComparer(cfg *yaml.Config, cli *CLI, logger *slog.Logger) (pricecheck.Comparer, func() error) {
	timeout := cfg.Timeout
	if cli.Timeout > 0 {
		timeout = cli.Timeout
	}
	if timeout <= 0 {
		timeout = compare.DefaultSourceTimeout
	}

	rps := cfg.RequestsPerSecond
	if cli.RPS > 0 {
		rps = cli.RPS
	}
	if rps <= 0 {
		rps = defaultRPS
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = pchttp.NewFetcher(pchttp.WithTimeout(timeout))
	}

	extractors := goquery.NewDefaultRegistry()
	pcslog.WrapRegistry(extractors, logger)

	c := &compare.Comparer{
		Fetcher:    pcslog.NewLoggingFetcher(fetcher, logger),
		Extractors: extractors,
		Sources:    cfg.Sources,
		Limiter:    compare.NewHostLimiter(rps, 1),
		Timeout:    timeout,
	}
	return pcslog.NewLoggingComparer(c, "live", logger), fetcher.Close
}

func defaultDBPath() string {
	if path := os.Getenv("PRICECHECK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pricecheck.db"
	}
	return filepath.Join(home, ".pricecheck", "pricecheck.db")
}
