package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pricecheck"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pricecheck.CatalogService = (*CatalogService)(nil)

// CatalogService implements pricecheck.CatalogService using SQLite.
type CatalogService struct {
	db *DB
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db}
}

// hashEntry computes the xxHash of everything that makes up an entry except
// its position, as a hex string.
func hashEntry(e *pricecheck.CatalogEntry) string {
	d := xxhash.New()
	_, _ = d.WriteString(e.Canonical)
	for _, s := range e.Synonyms {
		_, _ = d.WriteString("\x1f" + s)
	}
	for _, src := range pricecheck.Sources() {
		l, ok := e.Listing(src)
		if !ok {
			continue
		}
		price := "-"
		if l.Price != nil {
			price = strconv.Itoa(*l.Price)
		}
		_, _ = d.WriteString("\x1e" + string(src) + "\x1f" + l.Name + "\x1f" + price + "\x1f" + l.URL)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

type storedEntry struct {
	id       string
	hash     string
	position int
}

// ImportCatalog replaces the stored catalog with catalog in one transaction.
// Entries are matched by normalized canonical name. Entries missing from
// catalog are removed together with their listings.
func (s *CatalogService) ImportCatalog(ctx context.Context, catalog *pricecheck.Catalog) (*pricecheck.ImportResult, error) {
	if catalog == nil {
		return nil, pricecheck.Errorf(pricecheck.EINVALID, "catalog required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stored, err := storedEntries(ctx, tx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	result := &pricecheck.ImportResult{}
	for i, e := range catalog.Entries() {
		key := e.Key()
		hash := hashEntry(e)
		prev, exists := stored[key]
		delete(stored, key)

		switch {
		case !exists:
			id := uuid.New().String()
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO catalog_entries (id, key, canonical, position, content_hash, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, id, key, e.Canonical, i, hash, now, now); err != nil {
				return nil, fmt.Errorf("failed to insert %q: %w", e.Canonical, err)
			}
			if err := insertChildren(ctx, tx, id, e); err != nil {
				return nil, err
			}
			result.Created++

		case prev.hash != hash:
			if _, err := tx.ExecContext(ctx, `
				UPDATE catalog_entries
				SET canonical = ?, position = ?, content_hash = ?, updated_at = ?
				WHERE id = ?
			`, e.Canonical, i, hash, now, prev.id); err != nil {
				return nil, fmt.Errorf("failed to update %q: %w", e.Canonical, err)
			}
			for _, table := range []string{"catalog_synonyms", "catalog_listings"} {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE entry_id = ?", prev.id); err != nil {
					return nil, err
				}
			}
			if err := insertChildren(ctx, tx, prev.id, e); err != nil {
				return nil, err
			}
			result.Updated++

		default:
			if prev.position != i {
				if _, err := tx.ExecContext(ctx, "UPDATE catalog_entries SET position = ? WHERE id = ?", i, prev.id); err != nil {
					return nil, err
				}
			}
			result.Unchanged++
		}
	}

	for _, prev := range stored {
		if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_entries WHERE id = ?", prev.id); err != nil {
			return nil, err
		}
		result.Removed++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	return result, nil
}

func storedEntries(ctx context.Context, tx *sql.Tx) (map[string]storedEntry, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, key, content_hash, position FROM catalog_entries")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stored := make(map[string]storedEntry)
	for rows.Next() {
		var key string
		var e storedEntry
		if err := rows.Scan(&e.id, &key, &e.hash, &e.position); err != nil {
			return nil, err
		}
		stored[key] = e
	}
	return stored, rows.Err()
}

// insertChildren stores the synonyms and listings of e under entryID.
// Synonyms keep their order and are stored verbatim, one row each.
func insertChildren(ctx context.Context, tx *sql.Tx, entryID string, e *pricecheck.CatalogEntry) error {
	for i, syn := range e.Synonyms {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_synonyms (entry_id, position, synonym)
			VALUES (?, ?, ?)
		`, entryID, i, syn); err != nil {
			return fmt.Errorf("failed to insert synonym %d of %q: %w", i, e.Canonical, err)
		}
	}
	for _, src := range pricecheck.Sources() {
		l, ok := e.Listing(src)
		if !ok {
			continue
		}
		var price sql.NullInt64
		if l.Price != nil {
			price = sql.NullInt64{Int64: int64(*l.Price), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_listings (entry_id, source, name, price, url)
			VALUES (?, ?, ?, ?, ?)
		`, entryID, string(src), l.Name, price, l.URL); err != nil {
			return fmt.Errorf("failed to insert %s listing of %q: %w", src, e.Canonical, err)
		}
	}
	return nil
}

// FindEntries returns all stored entries ordered by their catalog position.
func (s *CatalogService) FindEntries(ctx context.Context) ([]*pricecheck.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, canonical
		FROM catalog_entries
		ORDER BY position ASC, canonical ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*pricecheck.CatalogEntry
	byID := make(map[string]*pricecheck.CatalogEntry)
	for rows.Next() {
		var e pricecheck.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Canonical); err != nil {
			return nil, err
		}
		e.Listings = make(map[pricecheck.Source]pricecheck.Listing)
		entries = append(entries, &e)
		byID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := s.attachSynonyms(ctx, byID); err != nil {
		return nil, err
	}
	if err := s.attachListings(ctx, byID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *CatalogService) attachSynonyms(ctx context.Context, byID map[string]*pricecheck.CatalogEntry) error {
	rows, err := s.db.QueryContext(ctx, "SELECT entry_id, synonym FROM catalog_synonyms ORDER BY entry_id, position")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entryID, syn string
		if err := rows.Scan(&entryID, &syn); err != nil {
			return err
		}
		if e, ok := byID[entryID]; ok {
			e.Synonyms = append(e.Synonyms, syn)
		}
	}
	return rows.Err()
}

func (s *CatalogService) attachListings(ctx context.Context, byID map[string]*pricecheck.CatalogEntry) error {
	rows, err := s.db.QueryContext(ctx, "SELECT entry_id, source, name, price, url FROM catalog_listings")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var entryID, source string
		var price sql.NullInt64
		var l pricecheck.Listing
		if err := rows.Scan(&entryID, &source, &l.Name, &price, &l.URL); err != nil {
			return err
		}
		src, err := pricecheck.ParseSource(source)
		if err != nil {
			return fmt.Errorf("stored listing of %s: %w", entryID, err)
		}
		l.Source = src
		if price.Valid {
			l.Price = pricecheck.PriceOf(int(price.Int64))
		}
		if e, ok := byID[entryID]; ok {
			e.Listings[src] = l
		}
	}
	return rows.Err()
}

// DeleteEntry permanently removes an entry and its listings.
func (s *CatalogService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM catalog_entries WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pricecheck.Errorf(pricecheck.ENOTFOUND, "catalog entry not found")
	}

	return nil
}

// LoadCatalog builds a matchable catalog from the stored entries.
func (s *CatalogService) LoadCatalog(ctx context.Context) (*pricecheck.Catalog, error) {
	entries, err := s.FindEntries(ctx)
	if err != nil {
		return nil, err
	}
	return pricecheck.NewCatalog(entries)
}
