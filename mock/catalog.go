package mock

import (
	"context"

	"github.com/fwojciec/pricecheck"
)

var _ pricecheck.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of pricecheck.CatalogService.
type CatalogService struct {
	ImportCatalogFn func(ctx context.Context, catalog *pricecheck.Catalog) (*pricecheck.ImportResult, error)
	FindEntriesFn   func(ctx context.Context) ([]*pricecheck.CatalogEntry, error)
	DeleteEntryFn   func(ctx context.Context, id string) error
}

func (s *CatalogService) ImportCatalog(ctx context.Context, catalog *pricecheck.Catalog) (*pricecheck.ImportResult, error) {
	return s.ImportCatalogFn(ctx, catalog)
}

func (s *CatalogService) FindEntries(ctx context.Context) ([]*pricecheck.CatalogEntry, error) {
	return s.FindEntriesFn(ctx)
}

func (s *CatalogService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}

// CatalogStore extends CatalogService with loading a matchable catalog.
type CatalogStore struct {
	CatalogService
	LoadCatalogFn func(ctx context.Context) (*pricecheck.Catalog, error)
}

func (s *CatalogStore) LoadCatalog(ctx context.Context) (*pricecheck.Catalog, error) {
	return s.LoadCatalogFn(ctx)
}
