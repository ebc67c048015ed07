package pricecheck

// Default scoring parameters of the catalog matcher.
const (
	DefaultCoverageWeight  = 0.7
	DefaultPrecisionWeight = 0.3
	DefaultMatchThreshold  = 0.45
)

// Matcher scores a free-text query against catalog entries by token overlap.
//
// Coverage is the share of query tokens present in the entry's candidate
// tokens; precision is the overlap relative to the number of candidate
// tokens. The score is their weighted sum, and the best entry is accepted
// only if its score reaches Threshold.
type Matcher struct {
	CoverageWeight  float64
	PrecisionWeight float64
	Threshold       float64
}

// NewMatcher returns a Matcher with the default weights and threshold.
func NewMatcher() *Matcher {
	return &Matcher{
		CoverageWeight:  DefaultCoverageWeight,
		PrecisionWeight: DefaultPrecisionWeight,
		Threshold:       DefaultMatchThreshold,
	}
}

// Match is a catalog entry accepted for a query, with its score.
type Match struct {
	Entry *CatalogEntry
	Score float64
}

// Score returns the weighted overlap score of query tokens against candidate
// tokens. Every query token that is a member of the candidate set counts
// toward the overlap.
func (m *Matcher) Score(query, candidate []string) float64 {
	set := make(map[string]struct{}, len(candidate))
	for _, t := range candidate {
		set[t] = struct{}{}
	}
	overlap := 0
	for _, t := range query {
		if _, ok := set[t]; ok {
			overlap++
		}
	}
	coverage := float64(overlap) / float64(max(1, len(query)))
	precision := float64(overlap) / float64(max(1, len(candidate)))
	return m.CoverageWeight*coverage + m.PrecisionWeight*precision
}

// Match returns the highest scoring entry of catalog for query. Ties go to
// the entry that appears first. It reports false for an empty catalog, a
// query without tokens, or a best score below the threshold.
func (m *Matcher) Match(query string, catalog *Catalog) (*Match, bool) {
	q := Tokenize(query)
	if len(q) == 0 || catalog == nil || catalog.Len() == 0 {
		return nil, false
	}

	best := -1
	bestScore := 0.0
	for i, candidate := range catalog.tokens {
		score := m.Score(q, candidate)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	if bestScore < m.Threshold {
		return nil, false
	}
	return &Match{Entry: catalog.entries[best], Score: bestScore}, true
}

// FindBestMatch returns the catalog entry that best matches query using the
// default matcher, or false when no entry scores high enough.
func FindBestMatch(query string, catalog *Catalog) (*CatalogEntry, bool) {
	match, ok := NewMatcher().Match(query, catalog)
	if !ok {
		return nil, false
	}
	return match.Entry, true
}
