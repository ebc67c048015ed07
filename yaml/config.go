package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/pricecheck"
	"gopkg.in/yaml.v3"
)

// Config tunes live retrieval.
type Config struct {
	// Sources lists the stores to query, in result order.
	Sources []pricecheck.SourceConfig

	// Timeout bounds each source. Zero keeps the comparer default.
	Timeout time.Duration

	// RequestsPerSecond limits requests to each store host. Zero disables
	// throttling.
	RequestsPerSecond float64
}

type configDoc struct {
	Sources           []sourceDoc   `yaml:"sources"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

type sourceDoc struct {
	Source     string `yaml:"source"`
	Origin     string `yaml:"origin"`
	SearchPath string `yaml:"search_path"`
	QueryParam string `yaml:"query_param"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{Sources: pricecheck.DefaultSources()}
}

// LoadConfigFile reads a Config from the YAML file at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig reads a Config from r. A source entry only needs to name its
// source; missing endpoint fields are taken from the defaults of that source.
// An empty document yields DefaultConfig.
func DecodeConfig(r io.Reader) (*Config, error) {
	var doc configDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "failed to parse config YAML: %v", err)
	}

	if doc.Timeout < 0 {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "timeout must not be negative")
	}
	if doc.RequestsPerSecond < 0 {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "requests_per_second must not be negative")
	}

	cfg := &Config{
		Timeout:           doc.Timeout,
		RequestsPerSecond: doc.RequestsPerSecond,
	}
	if len(doc.Sources) == 0 {
		cfg.Sources = pricecheck.DefaultSources()
		return cfg, nil
	}

	defaults := make(map[pricecheck.Source]pricecheck.SourceConfig)
	for _, d := range pricecheck.DefaultSources() {
		defaults[d.Source] = d
	}

	seen := make(map[pricecheck.Source]bool)
	for _, s := range doc.Sources {
		src, err := pricecheck.ParseSource(s.Source)
		if err != nil {
			return nil, err
		}
		if seen[src] {
			return nil, pricecheck.Errorf(pricecheck.EINVALID, "source %q configured twice", src)
		}
		seen[src] = true

		sc := defaults[src]
		if s.Origin != "" {
			sc.Origin = s.Origin
		}
		if s.SearchPath != "" {
			sc.SearchPath = s.SearchPath
		}
		if s.QueryParam != "" {
			sc.QueryParam = s.QueryParam
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, sc)
	}

	return cfg, nil
}
