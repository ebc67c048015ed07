package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pricecheck"
	"github.com/fwojciec/pricecheck/yaml"
)

// Run executes the catalog import command.
func (c *CatalogImportCmd) Run(deps *Dependencies) error {
	catalog, err := yaml.LoadCatalogFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		return err
	}

	result, err := deps.Entries.ImportCatalog(deps.Ctx, catalog)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d entries (%d created, %d updated, %d unchanged, %d removed)\n",
		catalog.Len(), result.Created, result.Updated, result.Unchanged, result.Removed)
	return nil
}

// Run executes the catalog list command.
func (c *CatalogListCmd) Run(deps *Dependencies) error {
	entries, err := deps.Entries.FindEntries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No catalog entries. Use 'pricecheck catalog import' to add some.")
		return nil
	}

	for _, e := range entries {
		var sources []string
		for _, src := range pricecheck.Sources() {
			if _, ok := e.Listing(src); ok {
				sources = append(sources, string(src))
			}
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", e.ID, e.Canonical, strings.Join(sources, ","))
	}
	return nil
}

// Run executes the catalog delete command.
func (c *CatalogDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Entries.DeleteEntry(deps.Ctx, c.ID); err != nil {
		if pricecheck.ErrorCode(err) == pricecheck.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: entry %q not found. Use 'pricecheck catalog list' to see stored entries.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted entry %s\n", c.ID)
	return nil
}

// Run executes the catalog export command.
func (c *CatalogExportCmd) Run(deps *Dependencies) error {
	catalog, err := deps.Entries.LoadCatalog(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricecheck.ErrorMessage(err))
		return err
	}
	return yaml.EncodeCatalog(deps.Stdout, catalog)
}
