// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/JS2IIU-MH/agent-skills/internal/httputil"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// entrezAPIBase is the NCBI Entrez E-utilities endpoint. Declared as a var
// so tests can substitute an httptest server.
var entrezAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMedProvider queries PubMed through Entrez in two steps: esearch for
// matching PMIDs, then efetch for the article records.
type PubMedProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *PubMedProvider) Name() string { return "pubmed" }

// Search resolves matching PMIDs and fetches their article records. An
// empty match set returns an empty slice, not an error.
func (p *PubMedProvider) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchRecord, error) {
	ids, err := p.searchIDs(ctx, query, cfg)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.SearchRecord{}, nil
	}
	return p.fetchArticles(ctx, ids, cfg)
}

// searchIDs runs the esearch step and returns the matching PMIDs.
func (p *PubMedProvider) searchIDs(ctx context.Context, query string, cfg types.SearchConfig) ([]string, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"db":     {"pubmed"},
		"term":   {query},
		"retmax": {fmt.Sprintf("%d", maxResults)},
	}
	p.identify(params, cfg)

	body, err := p.get(ctx, entrezAPIBase+"/esearch.fcgi?"+params.Encode(), cfg)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sr entrezSearchResult
	if err := xml.NewDecoder(body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return sr.IDs, nil
}

// fetchArticles runs the efetch step for a set of PMIDs.
func (p *PubMedProvider) fetchArticles(ctx context.Context, ids []string, cfg types.SearchConfig) ([]types.SearchRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	p.identify(params, cfg)

	body, err := p.get(ctx, entrezAPIBase+"/efetch.fcgi?"+params.Encode(), cfg)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var set pubmedArticleSet
	if err := xml.NewDecoder(body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	records := make([]types.SearchRecord, 0, len(set.Articles))
	for _, article := range set.Articles {
		data := article.Citation.Article
		raw := Raw{
			Title:         data.Title,
			Summary:       strings.Join(data.Abstract, " "),
			URL:           fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", strings.TrimSpace(article.Citation.PMID)),
			YearText:      data.Journal.PubYear,
			PublishedDate: strings.TrimSpace(data.Journal.PubYear),
			Journal:       strings.TrimSpace(data.Journal.Title),
		}
		for _, a := range data.Authors {
			switch {
			case a.LastName != "" && a.ForeName != "":
				raw.Authors = append(raw.Authors, a.LastName+" "+a.ForeName)
			case a.LastName != "":
				raw.Authors = append(raw.Authors, a.LastName)
			}
		}
		records = append(records, Normalize(raw))
	}
	return records, nil
}

// identify attaches the caller identification Entrez expects: an email
// always, an API key when one is configured.
func (p *PubMedProvider) identify(params url.Values, cfg types.SearchConfig) {
	email := cfg.Email
	if email == "" {
		email = "tool@example.com"
	}
	params.Set("email", email)
	if cfg.NCBIAPIKey != "" {
		params.Set("api_key", cfg.NCBIAPIKey)
	}
}

func (p *PubMedProvider) get(ctx context.Context, reqURL string, cfg types.SearchConfig) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Entrez API request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, httputil.StatusError("Entrez API", resp)
	}
	return resp.Body, nil
}

// Entrez XML structures.
type entrezSearchResult struct {
	IDs []string `xml:"IdList>Id"`
}

type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation pubmedCitation `xml:"MedlineCitation"`
}

type pubmedCitation struct {
	PMID    string            `xml:"PMID"`
	Article pubmedArticleData `xml:"Article"`
}

type pubmedArticleData struct {
	Title    string         `xml:"ArticleTitle"`
	Abstract []string       `xml:"Abstract>AbstractText"`
	Authors  []pubmedAuthor `xml:"AuthorList>Author"`
	Journal  pubmedJournal  `xml:"Journal"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

type pubmedJournal struct {
	Title   string `xml:"Title"`
	PubYear string `xml:"JournalIssue>PubDate>Year"`
}
