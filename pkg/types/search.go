// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-skills pipeline:
// the unified search record emitted by every provider adapter and the slide
// content consumed by the deck assembler.
package types

// SearchRecord is the unified result of a provider query. Every field is
// present in the JSON output even when the source API omits it; optional
// fields marshal as null, authors always marshal as an array.
type SearchRecord struct {
	// Title is the paper title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in provider order, "Last First"
	// when a structured name was available.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, nil when the provider gave none or a
	// non-numeric value.
	Year *int `json:"year" yaml:"year"`

	// PublishedDate is an ISO-8601 date or year-only string, empty when
	// unknown.
	PublishedDate string `json:"published_date" yaml:"published_date"`

	// Summary is the abstract or summary text, possibly empty.
	Summary string `json:"summary" yaml:"summary"`

	// URL is the landing page for the paper.
	URL string `json:"url" yaml:"url"`

	// PDFURL points at a full-text PDF when the provider exposes one.
	PDFURL *string `json:"pdf_url" yaml:"pdf_url"`

	// JournalRef is a free-text journal reference, composed per provider
	// (e.g. a J-STAGE material title suffixed with volume and number, or
	// "arXiv" for preprints without one).
	JournalRef string `json:"journal_ref" yaml:"journal_ref"`
}
