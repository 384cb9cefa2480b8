// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JS2IIU-MH/agent-skills/internal/pptx"
	"github.com/JS2IIU-MH/agent-skills/internal/websearch"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// --- TruncateTitle ---

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short stays", "Short prompt", "Short prompt"},
		{"99 runes stay", strings.Repeat("a", 99), strings.Repeat("a", 99)},
		{"100 runes truncate", strings.Repeat("a", 100), strings.Repeat("a", 97) + "..."},
		{"long truncates to 100", strings.Repeat("b", 150), strings.Repeat("b", 97) + "..."},
		{"multibyte counted as runes", strings.Repeat("あ", 120), strings.Repeat("あ", 97) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateTitle(tt.in)
			if got != tt.want {
				t.Errorf("TruncateTitle() = %q, want %q", got, tt.want)
			}
			if n := len([]rune(got)); n > 100 {
				t.Errorf("result is %d runes, want <= 100", n)
			}
		})
	}
}

// --- Assemble ---

type fixedSearcher struct {
	results []websearch.Result
	err     error
}

func (f fixedSearcher) Search(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
	return f.results, f.err
}

func fiveResults() []websearch.Result {
	results := make([]websearch.Result, 5)
	for i := range results {
		results[i] = websearch.Result{
			Title:   fmt.Sprintf("Finding %d", i+1),
			URL:     fmt.Sprintf("https://example.org/%d", i+1),
			Excerpt: fmt.Sprintf("Excerpt %d.", i+1),
		}
	}
	return results
}

func testAssembler(t *testing.T, s websearch.Searcher, lang string) (*Assembler, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Assembler{
		Searcher: s,
		Config: types.DeckConfig{
			OutputDir: t.TempDir(),
			Author:    "Research Team",
			Language:  lang,
		},
		Out: &out,
	}, &out
}

func TestAssembleEnglishDeck(t *testing.T) {
	a, out := testAssembler(t, fixedSearcher{results: fiveResults()}, "en")

	path, err := a.Assemble(context.Background(), "AI trends in 2025", 0, "deck.pptx")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if filepath.Base(path) != "deck.pptx" {
		t.Errorf("path = %q, want explicit filename", path)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected warnings: %s", out.String())
	}

	d, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Title, TOC, summary, five findings, conclusion, references.
	if got := d.SlideCount(); got != 10 {
		t.Fatalf("SlideCount() = %d, want 10", got)
	}

	title := d.SlideTexts(0)
	if len(title) == 0 || title[0] != "AI trends in 2025" {
		t.Errorf("title slide = %v", title)
	}
	if len(title) < 2 || !strings.HasPrefix(title[1], "Generated: ") || !strings.HasSuffix(title[1], "(en)") {
		t.Errorf("subtitle = %v", title)
	}

	toc := d.SlideTexts(1)
	wantTOC := []string{"Table of Contents", "Executive Summary", "Research Findings", "Detailed Analysis", "Conclusions & Recommendations", "References"}
	if len(toc) != len(wantTOC) {
		t.Fatalf("TOC = %v, want %v", toc, wantTOC)
	}
	for i := range wantTOC {
		if toc[i] != wantTOC[i] {
			t.Errorf("TOC[%d] = %q, want %q", i, toc[i], wantTOC[i])
		}
	}

	// Executive summary carries only the top three findings.
	summary := d.SlideTexts(2)
	if len(summary) != 5 || summary[0] != "Executive Summary" || summary[1] != "Key findings:" {
		t.Errorf("summary slide = %v", summary)
	}
	if !strings.Contains(summary[2], "Finding 1") || !strings.Contains(summary[4], "Finding 3") {
		t.Errorf("summary findings = %v", summary[2:])
	}

	// One findings slide per result.
	first := d.SlideTexts(3)
	if len(first) != 3 || first[0] != "Research Findings - 1" || first[1] != "Excerpt 1." || first[2] != "https://example.org/1" {
		t.Errorf("findings slide 1 = %v", first)
	}
	last := d.SlideTexts(7)
	if len(last) == 0 || last[0] != "Research Findings - 5" {
		t.Errorf("findings slide 5 = %v", last)
	}

	conclusion := d.SlideTexts(8)
	if len(conclusion) != 2 || conclusion[0] != "Conclusions & Recommendations" {
		t.Errorf("conclusion slide = %v", conclusion)
	}

	refs := d.SlideTexts(9)
	if len(refs) != 7 || refs[0] != "References" || refs[1] != "References:" {
		t.Errorf("references slide = %v", refs)
	}
	if !strings.Contains(refs[2], "Finding 1: https://example.org/1") {
		t.Errorf("refs[2] = %q", refs[2])
	}
}

func TestAssembleJapaneseLabels(t *testing.T) {
	a, _ := testAssembler(t, fixedSearcher{results: fiveResults()}, "ja")

	path, err := a.Assemble(context.Background(), "生成AIの2025年のトレンド", 0, "deck.pptx")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	d, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	toc := d.SlideTexts(1)
	if len(toc) == 0 || toc[0] != "目次" {
		t.Errorf("TOC title = %v, want 目次", toc)
	}
	summary := d.SlideTexts(2)
	if len(summary) < 2 || summary[0] != "エグゼクティブサマリー" || summary[1] != "主要な発見:" {
		t.Errorf("summary slide = %v", summary)
	}
}

func TestAssembleSearchFailureFallsBack(t *testing.T) {
	a, out := testAssembler(t, fixedSearcher{err: errors.New("network down")}, "en")

	path, err := a.Assemble(context.Background(), "resilient deck", 0, "deck.pptx")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.Contains(out.String(), "web search failed") {
		t.Errorf("missing warning, got: %s", out.String())
	}

	d, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Canned results keep the full structure.
	if got := d.SlideCount(); got != 10 {
		t.Errorf("SlideCount() = %d, want 10", got)
	}
	first := d.SlideTexts(3)
	if len(first) < 2 || !strings.Contains(first[1], "resilient deck") {
		t.Errorf("findings slide 1 = %v, want canned excerpt", first)
	}
}

func TestAssembleDefaultFilename(t *testing.T) {
	a, _ := testAssembler(t, fixedSearcher{results: fiveResults()}, "en")

	path, err := a.Assemble(context.Background(), "x", 0, "")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "presentation_") || !strings.HasSuffix(base, ".pptx") {
		t.Errorf("filename = %q, want presentation_{timestamp}.pptx", base)
	}
}

func TestAssembleMissingTemplateFallsBack(t *testing.T) {
	a, out := testAssembler(t, fixedSearcher{results: fiveResults()}, "en")
	a.Config.TemplatePath = filepath.Join(t.TempDir(), "absent.pptx")

	path, err := a.Assemble(context.Background(), "x", 0, "deck.pptx")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !strings.Contains(out.String(), "template unusable") {
		t.Errorf("missing warning, got: %s", out.String())
	}
	if _, err := pptx.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func TestAssembleTemplatePlaceholders(t *testing.T) {
	// Build a template whose slide carries placeholder tokens.
	tmpl := pptx.New()
	if err := tmpl.AddSlide(0, types.SlideContent{
		Title: "{{TITLE}}",
		Body:  []string{"{{SUBTITLE}}", "By {{AUTHOR}}"},
	}); err != nil {
		t.Fatalf("AddSlide: %v", err)
	}
	tmplPath := filepath.Join(t.TempDir(), "template.pptx")
	if err := tmpl.Save(tmplPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	a, _ := testAssembler(t, fixedSearcher{results: fiveResults()}, "en")
	a.Config.TemplatePath = tmplPath

	path, err := a.Assemble(context.Background(), "Template Driven Deck", 0, "deck.pptx")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	d, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// Template slide plus the ten generated slides.
	if got := d.SlideCount(); got != 11 {
		t.Fatalf("SlideCount() = %d, want 11", got)
	}
	texts := d.SlideTexts(0)
	if len(texts) != 3 {
		t.Fatalf("template slide = %v", texts)
	}
	if texts[0] != "Template Driven Deck" {
		t.Errorf("texts[0] = %q", texts[0])
	}
	if !strings.HasPrefix(texts[1], "Generated: ") {
		t.Errorf("texts[1] = %q", texts[1])
	}
	if texts[2] != "By Research Team" {
		t.Errorf("texts[2] = %q", texts[2])
	}
}
