// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/JS2IIU-MH/agent-skills/internal/pptx"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// SlideData is the on-disk slide description consumed by the slides
// command: a list of slides with title, bullet content, optional speaker
// notes, and an optional explicit layout index.
type SlideData struct {
	Slides []types.SlideContent `json:"slides" yaml:"slides"`
}

// LoadSlideData reads a slide-data file. The extension selects the codec:
// .yaml/.yml parse as YAML, everything else as JSON.
func LoadSlideData(path string) (*SlideData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading slide data: %w", err)
	}

	var sd SlideData
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sd); err != nil {
			return nil, fmt.Errorf("parsing slide data: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &sd); err != nil {
			return nil, fmt.Errorf("parsing slide data: %w", err)
		}
	}
	return &sd, nil
}

// BuildFromData writes a deck from loaded slide data. Without an explicit
// layout index the first slide uses the title layout (0) and the rest the
// content layout (1); out-of-range indexes fall back to layout 0.
func BuildFromData(sd *SlideData, templatePath, outPath string) error {
	var d *pptx.Deck
	if templatePath != "" {
		var err error
		if d, err = pptx.Open(templatePath); err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
	} else {
		d = pptx.New()
	}

	for i, slide := range sd.Slides {
		layout := 1
		if i == 0 {
			layout = 0
		}
		if slide.LayoutIndex != nil {
			layout = *slide.LayoutIndex
		}
		if err := d.AddSlide(layout, slide); err != nil {
			return fmt.Errorf("adding slide %d: %w", i+1, err)
		}
	}
	return d.Save(outPath)
}
