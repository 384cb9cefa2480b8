// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"

	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// Raw holds the provider-specific field values extracted for one record.
// Adapters decode their native response into strict intermediate structs,
// then fill a Raw; Normalize is the one total function from Raw to
// SearchRecord, so no untyped nested lookup ever reaches a consumer.
type Raw struct {
	Title         string
	Authors       []string
	YearText      string
	PublishedDate string
	Summary       string
	URL           string
	PDFURL        string

	// JournalRef is a pre-composed reference (arXiv). When empty the
	// reference is composed from Journal, Volume and Number instead.
	JournalRef string
	Journal    string
	Volume     string
	Number     string
}

// Normalize maps raw provider data onto a SearchRecord, filling every field
// with a type-correct default so no key is ever absent from the output.
func Normalize(raw Raw) types.SearchRecord {
	rec := types.SearchRecord{
		Title:         strings.TrimSpace(raw.Title),
		Authors:       raw.Authors,
		Year:          ParseYear(raw.YearText),
		PublishedDate: raw.PublishedDate,
		Summary:       strings.TrimSpace(raw.Summary),
		URL:           raw.URL,
	}
	if rec.Authors == nil {
		rec.Authors = []string{}
	}
	if raw.PDFURL != "" {
		u := raw.PDFURL
		rec.PDFURL = &u
	}
	if raw.JournalRef != "" {
		rec.JournalRef = raw.JournalRef
	} else {
		rec.JournalRef = ComposeJournalRef(raw.Journal, raw.Volume, raw.Number)
	}
	return rec
}

// ParseYear converts a 4-digit numeric string to a year. Anything else
// (empty, "n/a", partial dates) yields nil without error.
func ParseYear(s string) *int {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return nil
	}
	year := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil
		}
		year = year*10 + int(c-'0')
	}
	return &year
}

// ComposeJournalRef builds a journal reference from a base title and
// optional volume and number sub-fields. The number is only appended
// together with a volume, never alone.
func ComposeJournalRef(base, volume, number string) string {
	switch {
	case volume != "" && number != "":
		return fmt.Sprintf("%s Vol. %s No. %s", base, volume, number)
	case volume != "":
		return fmt.Sprintf("%s Vol. %s", base, volume)
	default:
		return base
	}
}

// firstNonEmpty returns the first non-empty string after trimming, or "".
// Providers use it for fixed-order language fallbacks.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
