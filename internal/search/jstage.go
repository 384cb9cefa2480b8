// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JS2IIU-MH/agent-skills/internal/httputil"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// jstageAPIBase is the J-STAGE OpenSearch endpoint. Declared as a var so
// tests can substitute an httptest server.
var jstageAPIBase = "https://api.jstage.jst.go.jp/searchapi/do"

// jstageService is the OpenSearch service ID for article search.
const jstageService = "3"

// JStageProvider queries the J-STAGE OpenSearch API. J-STAGE feeds carry
// bilingual sub-elements; extraction tries the primary field first, then
// the ja/en fallbacks in fixed order, and never fails the whole call over
// one missing nested field.
type JStageProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *JStageProvider) Name() string { return "jstage" }

// Search runs a full-text query and returns at most cfg.MaxResults records.
func (p *JStageProvider) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchRecord, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"service": {jstageService},
		"text":    {query},
		"count":   {fmt.Sprintf("%d", maxResults)},
		"format":  {"atom"},
	}
	reqURL := jstageAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("J-STAGE API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.StatusError("J-STAGE API", resp)
	}

	var feed jstageFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing J-STAGE response: %w", err)
	}

	records := make([]types.SearchRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		raw := Raw{
			Title:   firstNonEmpty(entry.Title, entry.ArticleTitle.Ja, entry.ArticleTitle.En),
			Summary: firstNonEmpty(entry.Summary, entry.Abstract.Ja, entry.Abstract.En),
			URL:     alternateLink(entry.Links),
			Journal: firstNonEmpty(entry.MaterialTitle.Ja, entry.MaterialTitle.En),
			Volume:  strings.TrimSpace(entry.Volume),
			Number:  strings.TrimSpace(entry.Number),
		}
		if year := ParseYear(entry.PubYear); year != nil {
			raw.YearText = entry.PubYear
			raw.PublishedDate = strings.TrimSpace(entry.PubYear)
		}
		for _, l := range entry.Links {
			if l.Type == "application/pdf" {
				raw.PDFURL = l.Href
				break
			}
		}
		for _, a := range entry.Authors {
			if name := firstNonEmpty(a.Ja.Name, a.En.Name, a.Name); name != "" {
				raw.Authors = append(raw.Authors, name)
			}
		}
		records = append(records, Normalize(raw))
	}
	return records, nil
}

// alternateLink picks the entry URL: the rel="alternate" link if present,
// otherwise the first link without a rel attribute.
func alternateLink(links []jstageLink) string {
	for _, l := range links {
		if l.Rel == "alternate" {
			return l.Href
		}
	}
	for _, l := range links {
		if l.Rel == "" {
			return l.Href
		}
	}
	return ""
}

// J-STAGE Atom feed XML structures. volume and number live in the PRISM
// namespace and are matched explicitly; everything else is in the Atom
// default namespace.
type jstageFeed struct {
	Entries []jstageEntry `xml:"entry"`
}

type jstageEntry struct {
	Title         string         `xml:"title"`
	ArticleTitle  jstageLangText `xml:"article_title"`
	Summary       string         `xml:"summary"`
	Abstract      jstageLangText `xml:"abstract"`
	MaterialTitle jstageLangText `xml:"material_title"`
	PubYear       string         `xml:"pubyear"`
	Volume        string         `xml:"http://prismstandard.org/namespaces/basic/2.0/ volume"`
	Number        string         `xml:"http://prismstandard.org/namespaces/basic/2.0/ number"`
	Links         []jstageLink   `xml:"link"`
	Authors       []jstageAuthor `xml:"author"`
}

type jstageLangText struct {
	Ja string `xml:"ja"`
	En string `xml:"en"`
}

type jstageLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type jstageAuthor struct {
	Ja   jstageName `xml:"ja"`
	En   jstageName `xml:"en"`
	Name string     `xml:"name"`
}

type jstageName struct {
	Name string `xml:"name"`
}
