// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries literature APIs (arXiv, PubMed, J-STAGE) and maps
// each provider's native response shape onto the unified SearchRecord schema.
package search

import (
	"context"
	"encoding/json"
	"io"

	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// Provider searches a single literature API. Each provider issues one
// request (or, for PubMed, an id-search-then-fetch sequence) and maps the
// response deterministically onto SearchRecords.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchRecord, error)
}

// WriteJSON emits records to w as a pretty-printed JSON array with 2-space
// indent and non-ASCII preserved. A nil slice is written as [].
func WriteJSON(w io.Writer, records []types.SearchRecord) error {
	if records == nil {
		records = []types.SearchRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteError emits a provider failure to w as {"error": "<message>"}.
// Provider errors are payloads, not process failures.
func WriteError(w io.Writer, err error) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]string{"error": err.Error()})
}
