// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/JS2IIU-MH/agent-skills/internal/pptx"
	"github.com/JS2IIU-MH/agent-skills/internal/websearch"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

const (
	// maxTitleLen bounds the stored title; longer prompts are truncated
	// to this length including the trailing ellipsis.
	maxTitleLen = 100

	// researchResults is the number of web results turned into findings
	// slides.
	researchResults = 5

	// stampFormat is the UTC timestamp used in filenames and subtitles.
	stampFormat = "2006-01-02_150405"
)

// Assembler builds a research presentation: template, placeholders, title
// slide, fixed sections, one slide per search result, save.
type Assembler struct {
	Searcher websearch.Searcher
	Config   types.DeckConfig

	// Warnings go here; the result path is returned, not printed.
	Out io.Writer
}

// Assemble runs the linear assembly sequence for prompt and returns the
// saved file path. slideHint is advisory only: the slide count is driven by
// the number of search results plus the fixed sections. filename defaults
// to presentation_{UTC timestamp}.pptx.
func (a *Assembler) Assemble(ctx context.Context, prompt string, slideHint int, filename string) (string, error) {
	_ = slideHint

	stamp := time.Now().UTC().Format(stampFormat)
	if filename == "" {
		filename = fmt.Sprintf("presentation_%s.pptx", stamp)
	}
	outPath := filepath.Join(a.Config.OutputDir, filename)

	d := a.loadTemplate()

	lang := a.Config.Language
	title := TruncateTitle(prompt)
	subtitle := fmt.Sprintf("Generated: %s (%s)", stamp, lang)
	ApplyPlaceholders(d, Mapping{
		"TITLE":    title,
		"DATE":     time.Now().Format("2006-01-02"),
		"LANG":     lang,
		"SUBTITLE": subtitle,
		"AUTHOR":   a.Config.Author,
	})

	research, err := a.Searcher.Search(ctx, prompt, researchResults)
	if err != nil {
		// Research failure never fails the deck; fall back to canned
		// results so the structure is complete.
		fmt.Fprintf(a.Out, "warning: web search failed, using placeholder results: %v\n", err)
		research, _ = websearch.Canned{}.Search(ctx, prompt, researchResults)
	}

	l := labelsFor(lang)

	if err := d.AddSlide(0, types.SlideContent{Title: title, Body: []string{subtitle}}); err != nil {
		return "", fmt.Errorf("adding title slide: %w", err)
	}
	if err := d.AddSlide(1, types.SlideContent{Title: l.TOCTitle, Body: l.Sections[:]}); err != nil {
		return "", fmt.Errorf("adding table of contents: %w", err)
	}

	summary := []string{l.KeyFindings}
	for _, r := range research[:min(3, len(research))] {
		summary = append(summary, fmt.Sprintf("- %s (%s)", r.Title, r.URL))
	}
	if err := d.AddSlide(1, types.SlideContent{Title: l.Sections[0], Body: summary}); err != nil {
		return "", fmt.Errorf("adding executive summary: %w", err)
	}

	for i, r := range research {
		content := types.SlideContent{
			Title: fmt.Sprintf("%s - %d", l.Sections[1], i+1),
			Body:  []string{r.Excerpt, r.URL},
		}
		if err := d.AddSlide(1, content); err != nil {
			return "", fmt.Errorf("adding findings slide %d: %w", i+1, err)
		}
	}

	if err := d.AddSlide(1, types.SlideContent{Title: l.Sections[3], Body: []string{l.Conclusion}}); err != nil {
		return "", fmt.Errorf("adding conclusion: %w", err)
	}

	refs := []string{"References:"}
	for _, r := range research {
		refs = append(refs, fmt.Sprintf("- %s: %s", r.Title, r.URL))
	}
	if err := d.AddSlide(1, types.SlideContent{Title: l.Sections[4], Body: refs}); err != nil {
		return "", fmt.Errorf("adding references: %w", err)
	}

	if err := d.Save(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// loadTemplate opens the configured template. A missing or structurally
// invalid template is not fatal: the branch falls back to a blank deck
// with a warning.
func (a *Assembler) loadTemplate() *pptx.Deck {
	if a.Config.TemplatePath == "" {
		return pptx.New()
	}
	d, err := pptx.Open(a.Config.TemplatePath)
	if err != nil {
		fmt.Fprintf(a.Out, "warning: template unusable, starting from a blank deck: %v\n", err)
		return pptx.New()
	}
	return d
}

// TruncateTitle shortens a prompt for use as a deck title: prompts of 100
// characters or more are cut to 97 characters plus an ellipsis.
func TruncateTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) < maxTitleLen {
		return prompt
	}
	return string(runes[:maxTitleLen-3]) + "..."
}
