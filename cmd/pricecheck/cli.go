package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pricecheck"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Catalog is the curated catalog loaded at startup.
	Catalog *pricecheck.Catalog

	// Live retrieves listings from the stores. Nil for commands that never
	// contact them.
	Live pricecheck.Comparer

	// Offline answers from Catalog.
	Offline pricecheck.Comparer

	// Entries is the stored catalog, set for catalog subcommands.
	Entries CatalogStore
}

// CatalogStore is the stored catalog as used by the catalog subcommands.
type CatalogStore interface {
	pricecheck.CatalogService
	LoadCatalog(ctx context.Context) (*pricecheck.Catalog, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string        `name:"db" env:"PRICECHECK_DB" help:"SQLite catalog database path"`
	CatalogFile string        `name:"catalog" env:"PRICECHECK_CATALOG" help:"Catalog YAML file (overrides the stored catalog)"`
	Config      string        `env:"PRICECHECK_CONFIG" help:"Sources YAML configuration file"`
	Timeout     time.Duration `env:"PRICECHECK_TIMEOUT" help:"Per-source timeout (default 10s)"`
	RPS         float64       `name:"rps" env:"PRICECHECK_RPS" help:"Requests per second per store host (default 1)"`
	Verbose     bool          `short:"v" help:"Log to stderr"`

	Compare CompareCmd `cmd:"" help:"Compare prices of a product across stores"`
	Match   MatchCmd   `cmd:"" help:"Match a product against the curated catalog"`
	Serve   ServeCmd   `cmd:"" help:"Serve the compare API over HTTP"`
	Catalog CatalogCmd `cmd:"" help:"Manage the stored catalog"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Query    []string `arg:"" help:"Product name"`
	Offline  bool     `help:"Answer from the catalog without contacting the stores"`
	Fallback bool     `short:"f" help:"Answer from the catalog when no store returns a listing"`
	JSON     bool     `name:"json" help:"Print the result as JSON"`
}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	Query []string `arg:"" help:"Product name"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":3000" env:"PRICECHECK_ADDR" help:"Listen address"`
	Offline bool   `help:"Answer /api/compare from the catalog only"`
}

// CatalogCmd groups the catalog subcommands.
type CatalogCmd struct {
	Import CatalogImportCmd `cmd:"" help:"Replace the stored catalog with a YAML file"`
	List   CatalogListCmd   `cmd:"" help:"List stored catalog entries"`
	Delete CatalogDeleteCmd `cmd:"" help:"Delete a stored catalog entry"`
	Export CatalogExportCmd `cmd:"" help:"Print the stored catalog as YAML"`
}

// CatalogImportCmd is the "catalog import" subcommand.
type CatalogImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Catalog YAML file"`
}

// CatalogListCmd is the "catalog list" subcommand.
type CatalogListCmd struct{}

// CatalogDeleteCmd is the "catalog delete" subcommand.
type CatalogDeleteCmd struct {
	ID string `arg:"" help:"Entry ID"`
}

// CatalogExportCmd is the "catalog export" subcommand.
type CatalogExportCmd struct{}
