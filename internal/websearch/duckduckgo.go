// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JS2IIU-MH/agent-skills/internal/httputil"
)

// duckduckgoBase is the DuckDuckGo HTML results endpoint. Declared as a var
// so tests can substitute an httptest server.
var duckduckgoBase = "https://html.duckduckgo.com/html/"

// defaultUserAgent identifies the scraper when none is configured.
const defaultUserAgent = "Mozilla/5.0 (compatible; paper-skills/0.1)"

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. One POST per query, no
// pagination; result links are the redirect URLs DuckDuckGo serves.
type DuckDuckGo struct {
	Client    *http.Client
	UserAgent string
}

// Search posts the query and parses the result anchors and snippets.
func (d *DuckDuckGo) Search(ctx context.Context, query string, topN int) ([]Result, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, duckduckgoBase, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ua := d.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httputil.StatusError("web search", resp)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var results []Result
	doc.Find(".result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(results) >= topN {
			return false
		}
		href, _ := a.Attr("href")
		// The snippet is a sibling of the title anchor's heading inside
		// the result block.
		excerpt := strings.TrimSpace(a.Parent().Parent().Find(".result__snippet").First().Text())
		results = append(results, Result{
			Title:   strings.TrimSpace(a.Text()),
			URL:     href,
			Excerpt: excerpt,
		})
		return true
	})
	return results, nil
}
