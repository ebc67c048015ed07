// Package yaml reads pricecheck catalogs and source configuration from
// YAML documents.
package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pricecheck"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogDoc struct {
	Products []productDoc `yaml:"products"`
}

type productDoc struct {
	Canonical string                `yaml:"canonical"`
	Synonyms  []string              `yaml:"synonyms"`
	Listings  map[string]listingDoc `yaml:"listings"`
}

type listingDoc struct {
	Name  string `yaml:"name"`
	Price *int   `yaml:"price"`
	URL   string `yaml:"url"`
}

// DefaultCatalog returns the built-in catalog of curated products.
func DefaultCatalog() (*pricecheck.Catalog, error) {
	return DecodeCatalog(bytes.NewReader(defaultCatalog))
}

// LoadCatalogFile reads a catalog from the YAML file at path.
func LoadCatalogFile(path string) (*pricecheck.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// DecodeCatalog reads a catalog document from r. Unknown fields, unknown
// sources and invalid entries are rejected with EINVALID.
func DecodeCatalog(r io.Reader) (*pricecheck.Catalog, error) {
	var doc catalogDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "failed to parse catalog YAML: %v", err)
	}

	entries := make([]*pricecheck.CatalogEntry, 0, len(doc.Products))
	for i, p := range doc.Products {
		entry := &pricecheck.CatalogEntry{
			Canonical: p.Canonical,
			Synonyms:  p.Synonyms,
			Listings:  make(map[pricecheck.Source]pricecheck.Listing, len(p.Listings)),
		}
		for key, l := range p.Listings {
			src, err := pricecheck.ParseSource(key)
			if err != nil {
				return nil, pricecheck.Errorf(pricecheck.EINVALID, "product %d: %s", i+1, pricecheck.ErrorMessage(err))
			}
			entry.Listings[src] = pricecheck.Listing{
				Source: src,
				Name:   l.Name,
				Price:  l.Price,
				URL:    l.URL,
			}
		}
		entries = append(entries, entry)
	}

	return pricecheck.NewCatalog(entries)
}

// EncodeCatalog writes catalog to w in the format read by DecodeCatalog.
func EncodeCatalog(w io.Writer, catalog *pricecheck.Catalog) error {
	doc := catalogDoc{Products: make([]productDoc, 0, catalog.Len())}
	for _, e := range catalog.Entries() {
		p := productDoc{
			Canonical: e.Canonical,
			Synonyms:  e.Synonyms,
			Listings:  make(map[string]listingDoc, len(e.Listings)),
		}
		for src, l := range e.Listings {
			p.Listings[string(src)] = listingDoc{Name: l.Name, Price: l.Price, URL: l.URL}
		}
		doc.Products = append(doc.Products, p)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}
