// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout applied uniformly to every
	// provider call (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-skills/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the literature-search providers.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults bounds the requested page size (default 10). Providers
	// may return fewer when fewer match.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Email identifies the caller to NCBI Entrez (PubMed etiquette).
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// NCBIAPIKey is an optional Entrez API key for higher rate limits.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`
}

// DeckConfig holds settings for presentation assembly.
type DeckConfig struct {
	// OutputDir is where generated decks are written (default "outputs").
	// Created idempotently before the first write.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// TemplatePath is an optional .pptx template. A missing or unreadable
	// template falls back to a blank deck.
	TemplatePath string `json:"template,omitempty" yaml:"template,omitempty"`

	// Author fills the AUTHOR template placeholder. Deliberately an
	// explicit setting rather than the invoking OS user; empty when unset.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Language selects the structural label set: "ja"-prefixed tags use
	// the Japanese strings, everything else English.
	Language string `json:"lang" yaml:"lang"`
}
