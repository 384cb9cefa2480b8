// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck assembles presentation decks: it fills {{TOKEN}} template
// placeholders, appends localized research slides, and loads slide-data
// files for direct deck generation.
package deck

import (
	"regexp"
	"strings"
)

// Mapping maps placeholder token names (uppercase alphanumeric/underscore)
// to replacement strings. Lookup is case-normalized to uppercase.
type Mapping map[string]string

// tokenRe matches {{TOKEN}} markers: double braces, optional inner
// whitespace, token body limited to uppercase letters, digits, underscore.
var tokenRe = regexp.MustCompile(`\{\{\s*([A-Z0-9_]+)\s*\}\}`)

// RunVisitor is the document capability the placeholder engine operates
// on: visit every text run of every shape on every slide and store the
// returned text. The engine carries no knowledge of any document library.
type RunVisitor interface {
	VisitRuns(visit func(text string) string)
}

// ApplyPlaceholders substitutes mapped tokens in every text run of doc,
// in place. Substitution is per contiguous run: a token split across two
// formatting runs is left untouched in both, which keeps per-run
// formatting intact. Unknown tokens stay verbatim, braces included.
func ApplyPlaceholders(doc RunVisitor, mapping Mapping) {
	if len(mapping) == 0 {
		return
	}
	norm := make(Mapping, len(mapping))
	for k, v := range mapping {
		norm[strings.ToUpper(k)] = v
	}
	doc.VisitRuns(func(text string) string {
		if !strings.Contains(text, "{{") {
			return text
		}
		return tokenRe.ReplaceAllStringFunc(text, func(m string) string {
			key := tokenRe.FindStringSubmatch(m)[1]
			if v, ok := norm[key]; ok {
				return v
			}
			return m
		})
	})
}
