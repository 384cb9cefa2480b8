// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/JS2IIU-MH/agent-skills/internal/httputil"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivProvider queries the arXiv Atom API.
type ArxivProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *ArxivProvider) Name() string { return "arxiv" }

// Search queries arXiv sorted by relevance and returns at most
// cfg.MaxResults records.
func (p *ArxivProvider) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchRecord, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"search_query": {query},
		"start":        {"0"},
		"max_results":  {fmt.Sprintf("%d", maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}
	reqURL := arxivAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.StatusError("arXiv API", resp)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	records := make([]types.SearchRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		raw := Raw{
			Title:      entry.Title,
			Summary:    entry.Summary,
			URL:        entry.ID,
			JournalRef: firstNonEmpty(entry.JournalRef, "arXiv"),
		}
		for _, a := range entry.Authors {
			if name := firstNonEmpty(a.Name); name != "" {
				raw.Authors = append(raw.Authors, name)
			}
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			raw.YearText = t.Format("2006")
			raw.PublishedDate = t.Format("2006-01-02")
		}
		for _, l := range entry.Links {
			if l.Type == "application/pdf" || l.Title == "pdf" {
				raw.PDFURL = l.Href
				break
			}
		}
		records = append(records, Normalize(raw))
	}
	return records, nil
}

// arXiv Atom feed XML structures. journal_ref lives in the arXiv extension
// namespace; the decoder matches it by local name.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string        `xml:"id"`
	Title      string        `xml:"title"`
	Summary    string        `xml:"summary"`
	Published  string        `xml:"published"`
	JournalRef string        `xml:"journal_ref"`
	Authors    []arxivAuthor `xml:"author"`
	Links      []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}
