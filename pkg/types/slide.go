// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SlideContent describes one slide to append to a deck. It is built
// transiently while assembling a presentation and not retained after save.
type SlideContent struct {
	// Title is the slide title text.
	Title string `json:"title" yaml:"title"`

	// Body holds the bullet lines for the body text frame, in order.
	Body []string `json:"content" yaml:"content"`

	// Notes is optional speaker-notes text.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// LayoutIndex selects the slide layout. Nil means the caller's default
	// applies; an out-of-range index falls back to layout 0.
	LayoutIndex *int `json:"layout_index,omitempty" yaml:"layout_index,omitempty"`
}
