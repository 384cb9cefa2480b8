// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

const sampleESearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<eSearchResult>
  <Count>2</Count>
  <RetMax>2</RetMax>
  <IdList>
    <Id>36000001</Id>
    <Id>36000002</Id>
  </IdList>
</eSearchResult>`

const emptyESearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<eSearchResult>
  <Count>0</Count>
  <RetMax>0</RetMax>
  <IdList></IdList>
</eSearchResult>`

const sampleEFetchXML = `<?xml version="1.0" encoding="UTF-8"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>36000001</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2022</Year></PubDate>
          </JournalIssue>
          <Title>Nature Medicine</Title>
        </Journal>
        <ArticleTitle>CRISPR screening of tumor suppressors</ArticleTitle>
        <Abstract>
          <AbstractText>Background sentence.</AbstractText>
          <AbstractText>Results sentence.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author><LastName>Tanaka</LastName><ForeName>Hiro</ForeName></Author>
          <Author><LastName>Consortium</LastName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>36000002</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year></Year></PubDate>
          </JournalIssue>
          <Title></Title>
        </Journal>
        <ArticleTitle>Minimal record</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

// entrezTestServer routes esearch and efetch requests and records the
// query parameters sent to each.
func entrezTestServer(searchXML, fetchXML string, searchParams, fetchParams *url.Values) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		switch {
		case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
			if searchParams != nil {
				*searchParams = r.URL.Query()
			}
			fmt.Fprint(w, searchXML)
		case strings.HasSuffix(r.URL.Path, "/efetch.fcgi"):
			if fetchParams != nil {
				*fetchParams = r.URL.Query()
			}
			fmt.Fprint(w, fetchXML)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestPubMedProviderSearch(t *testing.T) {
	var searchParams, fetchParams url.Values
	ts := entrezTestServer(sampleESearchXML, sampleEFetchXML, &searchParams, &fetchParams)
	defer ts.Close()

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	defer func() { entrezAPIBase = old }()

	cfg := testCfg()
	cfg.Email = "researcher@example.org"
	cfg.NCBIAPIKey = "abc123"

	p := &PubMedProvider{Client: ts.Client()}
	records, err := p.Search(context.Background(), "crispr cancer", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// esearch step parameters.
	if got := searchParams.Get("db"); got != "pubmed" {
		t.Errorf("esearch db = %q", got)
	}
	if got := searchParams.Get("term"); got != "crispr cancer" {
		t.Errorf("esearch term = %q", got)
	}
	if got := searchParams.Get("email"); got != "researcher@example.org" {
		t.Errorf("esearch email = %q", got)
	}
	if got := searchParams.Get("api_key"); got != "abc123" {
		t.Errorf("esearch api_key = %q", got)
	}

	// efetch step fetches both PMIDs in one request.
	if got := fetchParams.Get("id"); got != "36000001,36000002" {
		t.Errorf("efetch id = %q", got)
	}
	if got := fetchParams.Get("retmode"); got != "xml" {
		t.Errorf("efetch retmode = %q", got)
	}

	r0 := records[0]
	if r0.Title != "CRISPR screening of tumor suppressors" {
		t.Errorf("Title = %q", r0.Title)
	}
	// Multi-part abstract joined with a single space.
	if r0.Summary != "Background sentence. Results sentence." {
		t.Errorf("Summary = %q", r0.Summary)
	}
	// Authors formatted "Last First"; last-name-only entries kept as-is.
	if len(r0.Authors) != 2 || r0.Authors[0] != "Tanaka Hiro" || r0.Authors[1] != "Consortium" {
		t.Errorf("Authors = %v", r0.Authors)
	}
	if r0.Year == nil || *r0.Year != 2022 {
		t.Errorf("Year = %v, want 2022", r0.Year)
	}
	if r0.URL != "https://pubmed.ncbi.nlm.nih.gov/36000001/" {
		t.Errorf("URL = %q", r0.URL)
	}
	if r0.JournalRef != "Nature Medicine" {
		t.Errorf("JournalRef = %q", r0.JournalRef)
	}

	// Minimal record gets type-correct defaults, never an error.
	r1 := records[1]
	if r1.Year != nil {
		t.Errorf("Year = %v, want nil", r1.Year)
	}
	if len(r1.Authors) != 0 {
		t.Errorf("Authors = %v, want empty", r1.Authors)
	}
	if r1.JournalRef != "" {
		t.Errorf("JournalRef = %q, want empty", r1.JournalRef)
	}
}

func TestPubMedProviderNoMatches(t *testing.T) {
	fetched := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/efetch.fcgi") {
			fetched = true
		}
		fmt.Fprint(w, emptyESearchXML)
	}))
	defer ts.Close()

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	defer func() { entrezAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client()}
	records, err := p.Search(context.Background(), "nonexistent", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
	if fetched {
		t.Error("efetch was called despite empty id list")
	}
}

func TestPubMedProviderDefaultEmail(t *testing.T) {
	var searchParams url.Values
	ts := entrezTestServer(emptyESearchXML, "", &searchParams, nil)
	defer ts.Close()

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	defer func() { entrezAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client()}
	if _, err := p.Search(context.Background(), "x", testCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := searchParams.Get("email"); got != "tool@example.com" {
		t.Errorf("email = %q, want default", got)
	}
	if searchParams.Has("api_key") {
		t.Error("api_key sent without a configured key")
	}
}

func TestPubMedProviderServerError(t *testing.T) {
	ts := atomTestServer(http.StatusBadGateway, "")
	defer ts.Close()

	old := entrezAPIBase
	entrezAPIBase = ts.URL
	defer func() { entrezAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client()}
	if _, err := p.Search(context.Background(), "x", testCfg()); err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}
