// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx reads and writes PresentationML (.pptx) files directly
// against the OPC zip container. It supports the four operations the deck
// pipeline needs: open a template, edit run text in place, append slides,
// and save. Template parts are manipulated as raw XML text so existing
// formatting survives byte-for-byte; only run contents change.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Deck is an in-memory .pptx package: a map of part names to part bytes
// plus the presentation-order list of slide parts.
type Deck struct {
	parts  map[string][]byte
	slides []string
}

// sldIdRe extracts slide references from presentation.xml in order.
var sldIdRe = regexp.MustCompile(`<p:sldId [^>]*r:id="([^"]+)"`)

// layoutNumRe extracts the numeric suffix of a slide layout part name.
var layoutNumRe = regexp.MustCompile(`^ppt/slideLayouts/slideLayout(\d+)\.xml$`)

// slideNumRe extracts the numeric suffix of a slide part name.
var slideNumRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ridRe matches relationship IDs inside a rels part.
var ridRe = regexp.MustCompile(`Id="rId(\d+)"`)

// New returns a blank deck built from the embedded skeleton: one slide
// master, a title layout (index 0), a title-and-content layout (index 1),
// and no slides.
func New() *Deck {
	parts := make(map[string][]byte, len(skeletonParts))
	for name, data := range skeletonParts {
		parts[name] = []byte(data)
	}
	return &Deck{parts: parts}
}

// Open reads a .pptx file into memory. It fails on a missing file, a
// non-zip payload, or a package without a presentation part; callers treat
// that as the signal to fall back to a blank deck.
func Open(path string) (*Deck, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", f.Name, err)
		}
		parts[f.Name] = data
	}

	if _, ok := parts["ppt/presentation.xml"]; !ok {
		return nil, fmt.Errorf("%s: not a presentation package", path)
	}

	d := &Deck{parts: parts}
	d.slides = d.slideOrder()
	return d, nil
}

// Save writes the package to path, creating the parent directory when
// needed. The write is direct, not atomic.
func (d *Deck) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range d.partNames() {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("writing part %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			zw.Close()
			return fmt.Errorf("writing part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", path, err)
	}
	return nil
}

// SlideCount reports the number of slides in presentation order.
func (d *Deck) SlideCount() int { return len(d.slides) }

// LayoutCount reports the number of slide layout parts.
func (d *Deck) LayoutCount() int { return len(d.layoutPaths()) }

// partNames returns all part names with [Content_Types].xml first and the
// remainder sorted, so output bytes are deterministic.
func (d *Deck) partNames() []string {
	names := make([]string, 0, len(d.parts))
	for name := range d.parts {
		if name == contentTypesPart {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{contentTypesPart}, names...)
}

// layoutPaths lists slide layout parts ordered by their numeric suffix,
// the same order a template's layout picker exposes.
func (d *Deck) layoutPaths() []string {
	type numbered struct {
		n    int
		path string
	}
	var layouts []numbered
	for name := range d.parts {
		if m := layoutNumRe.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			layouts = append(layouts, numbered{n, name})
		}
	}
	sort.Slice(layouts, func(i, j int) bool { return layouts[i].n < layouts[j].n })
	paths := make([]string, len(layouts))
	for i, l := range layouts {
		paths[i] = l.path
	}
	return paths
}

// slideOrder resolves presentation.xml's slide ID list through the
// presentation rels to ordered slide part names.
func (d *Deck) slideOrder() []string {
	rels := parseRels(d.parts["ppt/_rels/presentation.xml.rels"])
	var order []string
	for _, m := range sldIdRe.FindAllStringSubmatch(string(d.parts["ppt/presentation.xml"]), -1) {
		if target, ok := rels[m[1]]; ok {
			order = append(order, resolvePart("ppt", target))
		}
	}
	return order
}

// relationships models a .rels part, which is plain standalone XML.
type relationships struct {
	XMLName xml.Name          `xml:"Relationships"`
	Rels    []relationshipRef `xml:"Relationship"`
}

type relationshipRef struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// parseRels returns the rId → target mapping of a rels part; an absent or
// malformed part yields an empty map.
func parseRels(data []byte) map[string]string {
	var rs relationships
	if err := xml.Unmarshal(data, &rs); err != nil {
		return map[string]string{}
	}
	m := make(map[string]string, len(rs.Rels))
	for _, r := range rs.Rels {
		m[r.ID] = r.Target
	}
	return m
}

// resolvePart joins a rels target onto its source part's directory
// ("slides/slide1.xml" relative to ppt/ becomes "ppt/slides/slide1.xml").
func resolvePart(baseDir, target string) string {
	joined := filepath.ToSlash(filepath.Join(baseDir, target))
	return strings.TrimPrefix(joined, "/")
}

// nextRID returns the next free relationship ID in a rels part.
func nextRID(data []byte) string {
	max := 0
	for _, m := range ridRe.FindAllStringSubmatch(string(data), -1) {
		if n, _ := strconv.Atoi(m[1]); n > max {
			max = n
		}
	}
	return fmt.Sprintf("rId%d", max+1)
}

// appendToRels inserts a relationship element before the closing tag,
// creating the rels part when it does not exist yet.
func (d *Deck) appendToRels(relsPath, rid, relType, target string) {
	data, ok := d.parts[relsPath]
	if !ok {
		data = []byte(xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`)
	}
	rel := fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, rid, relType, target)
	d.parts[relsPath] = bytes.Replace(data, []byte("</Relationships>"), []byte(rel+"</Relationships>"), 1)
}

const contentTypesPart = "[Content_Types].xml"

// registerContentType adds an Override entry for a new part.
func (d *Deck) registerContentType(partName, contentType string) {
	data := d.parts[contentTypesPart]
	override := fmt.Sprintf(`<Override PartName="/%s" ContentType="%s"/>`, partName, contentType)
	if bytes.Contains(data, []byte(override)) {
		return
	}
	d.parts[contentTypesPart] = bytes.Replace(data, []byte("</Types>"), []byte(override+"</Types>"), 1)
}
