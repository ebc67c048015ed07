// Package pricecheck compares the price of a product across online stores.
// Given a free-text product query it retrieves the search results page of
// every configured source concurrently, extracts the single best listing
// from each, and falls back to a small curated catalog when live retrieval
// yields nothing.
//
// This package contains domain types, interfaces and pure domain logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, gin/).
package pricecheck
