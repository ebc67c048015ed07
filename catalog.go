package pricecheck

import (
	"context"
	"maps"
	"slices"
	"strings"
)

// CatalogEntry is a curated product with its pre-attached listings.
type CatalogEntry struct {
	// ID is assigned by storage implementations. It is empty for entries
	// loaded from files.
	ID string `json:"id,omitempty"`

	Canonical string   `json:"canonical"`
	Synonyms  []string `json:"synonyms"`

	// Listings holds at most one listing per source.
	Listings map[Source]Listing `json:"listings"`
}

// Validate returns an error if the entry cannot take part in matching.
func (e *CatalogEntry) Validate() error {
	if strings.TrimSpace(e.Canonical) == "" {
		return Errorf(EINVALID, "catalog entry canonical name required")
	}
	for i, s := range e.Synonyms {
		if strings.TrimSpace(s) == "" {
			return Errorf(EINVALID, "catalog entry %q: synonym %d is empty", e.Canonical, i)
		}
	}
	if len(e.Tokens()) == 0 {
		return Errorf(EINVALID, "catalog entry %q has no searchable tokens", e.Canonical)
	}
	if len(e.Listings) == 0 {
		return Errorf(EINVALID, "catalog entry %q has no listings", e.Canonical)
	}
	for src, l := range e.Listings {
		if _, err := ParseSource(string(src)); err != nil {
			return Errorf(EINVALID, "catalog entry %q: %s", e.Canonical, ErrorMessage(err))
		}
		if l.Source != src {
			return Errorf(EINVALID, "catalog entry %q: listing under %s claims source %q", e.Canonical, src, l.Source)
		}
		if err := l.Validate(); err != nil {
			return Errorf(EINVALID, "catalog entry %q: %s: %s", e.Canonical, src, ErrorMessage(err))
		}
	}
	return nil
}

// Tokens returns the candidate tokens of the entry: the tokens of the
// canonical name followed by the tokens of every synonym.
func (e *CatalogEntry) Tokens() []string {
	return Tokenize(e.Canonical + " " + strings.Join(e.Synonyms, " "))
}

// Key returns the normalized canonical name that identifies the entry.
func (e *CatalogEntry) Key() string {
	return Normalize(e.Canonical)
}

// Listing returns the pre-attached listing for src, if any.
func (e *CatalogEntry) Listing(src Source) (*Listing, bool) {
	l, ok := e.Listings[src]
	if !ok {
		return nil, false
	}
	return &l, true
}

func (e *CatalogEntry) clone() *CatalogEntry {
	return &CatalogEntry{
		ID:        e.ID,
		Canonical: e.Canonical,
		Synonyms:  slices.Clone(e.Synonyms),
		Listings:  maps.Clone(e.Listings),
	}
}

// Catalog is a read-only table of curated products in insertion order.
// It is built once and is safe for concurrent use.
type Catalog struct {
	entries []*CatalogEntry
	tokens  [][]string
	byKey   map[string]*CatalogEntry
}

// NewCatalog validates entries and builds a catalog from copies of them.
// Duplicate canonical names are rejected.
func NewCatalog(entries []*CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]*CatalogEntry, 0, len(entries)),
		tokens:  make([][]string, 0, len(entries)),
		byKey:   make(map[string]*CatalogEntry, len(entries)),
	}
	for _, e := range entries {
		if e == nil {
			return nil, Errorf(EINVALID, "catalog entry must not be nil")
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		key := e.Key()
		if _, dup := c.byKey[key]; dup {
			return nil, Errorf(EINVALID, "duplicate catalog entry %q", e.Canonical)
		}
		own := e.clone()
		c.entries = append(c.entries, own)
		c.tokens = append(c.tokens, own.Tokens())
		c.byKey[key] = own
	}
	return c, nil
}

// Entries returns the entries in insertion order. Callers must not modify them.
func (c *Catalog) Entries() []*CatalogEntry {
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the entry whose normalized canonical name equals the
// normalized form of name.
func (c *Catalog) Lookup(name string) (*CatalogEntry, bool) {
	e, ok := c.byKey[Normalize(name)]
	return e, ok
}

// ImportResult reports what a catalog import changed.
type ImportResult struct {
	Created   int
	Updated   int
	Unchanged int
	Removed   int
}

// CatalogService persists the curated catalog.
type CatalogService interface {
	// ImportCatalog replaces the stored catalog with catalog. Entries are
	// matched by canonical name; unchanged entries keep their IDs.
	ImportCatalog(ctx context.Context, catalog *Catalog) (*ImportResult, error)

	// FindEntries returns all stored entries in catalog order.
	FindEntries(ctx context.Context) ([]*CatalogEntry, error)

	// DeleteEntry permanently removes an entry by ID.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}
