// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// English Metric Units. Fixed fallback geometry matches the positions the
// assembler has always used: title at (0.5", 0.3"), body at (0.5", 1.5").
const emuPerInch = 914400

func inches(in float64) int64 { return int64(in * emuPerInch) }

const (
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeNotesMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"

	ctSlide       = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctNotesSlide  = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctNotesMaster = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	ctTheme       = "application/vnd.openxmlformats-officedocument.theme+xml"
)

// layoutTitleRe finds a title-family placeholder in a layout part.
var layoutTitleRe = regexp.MustCompile(`<p:ph [^>]*type="(ctrTitle|title)"`)

// layoutBodyRe finds the idx="1" placeholder slot in a layout part.
var layoutBodyRe = regexp.MustCompile(`<p:ph [^>]*idx="1"`)

// sldMaxIDRe finds existing slide IDs in presentation.xml.
var sldMaxIDRe = regexp.MustCompile(`<p:sldId id="(\d+)"`)

// AddSlide appends a slide built from content on the given layout. An
// out-of-range layout index silently falls back to layout 0. The title
// goes into the layout's title placeholder when the layout has one, else
// into a text box at a fixed position; body lines go into the idx 1
// placeholder slot, else a fixed text box. Non-empty notes produce a
// speaker-notes part.
func (d *Deck) AddSlide(layoutIdx int, content types.SlideContent) error {
	layouts := d.layoutPaths()
	if len(layouts) == 0 {
		return fmt.Errorf("package has no slide layouts")
	}
	if layoutIdx < 0 || layoutIdx >= len(layouts) {
		layoutIdx = 0
	}
	layoutPath := layouts[layoutIdx]
	layoutXML := d.parts[layoutPath]

	n := d.nextSlideNumber()
	slidePath := fmt.Sprintf("ppt/slides/slide%d.xml", n)
	relsPath := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)

	var shapes strings.Builder
	shapeID := 2

	if m := layoutTitleRe.FindSubmatch(layoutXML); m != nil {
		shapes.WriteString(placeholderShape(shapeID, "Title", fmt.Sprintf(`type=%q`, m[1]), []string{content.Title}))
	} else {
		shapes.WriteString(textBoxShape(shapeID, "Title", inches(0.5), inches(0.3), inches(9), inches(1), []string{content.Title}))
	}
	shapeID++

	if len(content.Body) > 0 {
		if layoutBodyRe.Match(layoutXML) {
			shapes.WriteString(placeholderShape(shapeID, "Content", `idx="1"`, content.Body))
		} else {
			shapes.WriteString(textBoxShape(shapeID, "Content", inches(0.5), inches(1.5), inches(9), inches(4.5), content.Body))
		}
	}

	d.parts[slidePath] = []byte(xmlHeader + `<p:sld ` + pmlNamespaces + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		shapes.String() +
		`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	d.registerContentType(slidePath, ctSlide)
	d.appendToRels(relsPath, "rId1", relTypeSlideLayout, "../slideLayouts/"+strings.TrimPrefix(layoutPath, "ppt/slideLayouts/"))

	// Register the slide with the presentation part.
	presRels := "ppt/_rels/presentation.xml.rels"
	rid := nextRID(d.parts[presRels])
	d.appendToRels(presRels, rid, relTypeSlide, "slides/"+strings.TrimPrefix(slidePath, "ppt/slides/"))
	d.appendSlideID(rid)
	d.slides = append(d.slides, slidePath)

	if content.Notes != "" {
		d.addNotesSlide(n, content.Notes)
	}
	return nil
}

// nextSlideNumber returns one past the highest slideN part number.
func (d *Deck) nextSlideNumber() int {
	max := 0
	for name := range d.parts {
		if m := slideNumRe.FindStringSubmatch(name); m != nil {
			if n, _ := strconv.Atoi(m[1]); n > max {
				max = n
			}
		}
	}
	return max + 1
}

// appendSlideID adds a sldId entry to presentation.xml, creating the slide
// ID list when the template has none. Slide IDs start at 256.
func (d *Deck) appendSlideID(rid string) {
	pres := d.parts["ppt/presentation.xml"]
	pres = bytes.Replace(pres, []byte("<p:sldIdLst/>"), []byte("<p:sldIdLst></p:sldIdLst>"), 1)
	if !bytes.Contains(pres, []byte("<p:sldIdLst>")) {
		pres = bytes.Replace(pres, []byte("</p:sldMasterIdLst>"),
			[]byte("</p:sldMasterIdLst><p:sldIdLst></p:sldIdLst>"), 1)
	}

	maxID := 255
	for _, m := range sldMaxIDRe.FindAllSubmatch(pres, -1) {
		if n, _ := strconv.Atoi(string(m[1])); n > maxID {
			maxID = n
		}
	}
	entry := fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, maxID+1, rid)
	d.parts["ppt/presentation.xml"] = bytes.Replace(pres, []byte("</p:sldIdLst>"), []byte(entry+"</p:sldIdLst>"), 1)
}

// addNotesSlide attaches a speaker-notes part to slide n.
func (d *Deck) addNotesSlide(n int, notes string) {
	d.ensureNotesMaster()

	notesPath := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)
	notesRels := fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n)
	slideRels := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)

	d.parts[notesPath] = []byte(xmlHeader + `<p:notes ` + pmlNamespaces + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		placeholderShape(2, "Notes Placeholder", `type="body" idx="1"`, []string{notes}) +
		`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)
	d.registerContentType(notesPath, ctNotesSlide)
	d.appendToRels(notesRels, "rId1", relTypeNotesMaster, "../notesMasters/notesMaster1.xml")
	d.appendToRels(notesRels, "rId2", relTypeSlide, fmt.Sprintf("../slides/slide%d.xml", n))

	rid := nextRID(d.parts[slideRels])
	d.appendToRels(slideRels, rid, relTypeNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", n))
}

// ensureNotesMaster injects a notes master (templates opened without one
// included) so notes slides have a master to reference.
func (d *Deck) ensureNotesMaster() {
	const masterPath = "ppt/notesMasters/notesMaster1.xml"
	if _, ok := d.parts[masterPath]; ok {
		return
	}

	d.parts[masterPath] = []byte(notesMasterXML)
	d.registerContentType(masterPath, ctNotesMaster)

	// The notes master carries its own theme part.
	themePath := "ppt/theme/themeNotes.xml"
	theme, ok := d.parts["ppt/theme/theme1.xml"]
	if !ok {
		theme = []byte(themeXML)
	}
	d.parts[themePath] = append([]byte(nil), theme...)
	d.registerContentType(themePath, ctTheme)
	d.appendToRels("ppt/notesMasters/_rels/notesMaster1.xml.rels", "rId1", relTypeTheme, "../theme/themeNotes.xml")

	presRels := "ppt/_rels/presentation.xml.rels"
	rid := nextRID(d.parts[presRels])
	d.appendToRels(presRels, rid, relTypeNotesMaster, "notesMasters/notesMaster1.xml")

	pres := d.parts["ppt/presentation.xml"]
	if !bytes.Contains(pres, []byte("<p:notesMasterIdLst>")) {
		entry := fmt.Sprintf(`<p:notesMasterIdLst><p:notesMasterId r:id="%s"/></p:notesMasterIdLst>`, rid)
		d.parts["ppt/presentation.xml"] = bytes.Replace(pres, []byte("<p:sldIdLst>"), []byte(entry+"<p:sldIdLst>"), 1)
	}
}

// placeholderShape renders a shape bound to a layout placeholder; phAttrs
// is the raw attribute list for the p:ph element (e.g. `type="title"`).
func placeholderShape(id int, name, phAttrs string, lines []string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`+
		`<p:nvPr><p:ph %s/></p:nvPr></p:nvSpPr><p:spPr/>%s</p:sp>`,
		id, name, id, phAttrs, txBody(lines))
}

// textBoxShape renders a free-floating text box at a fixed position, used
// when the layout exposes no suitable placeholder.
func textBoxShape(id int, name string, x, y, cx, cy int64, lines []string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>%s</p:sp>`,
		id, name, id, x, y, cx, cy, txBody(lines))
}

// txBody renders one paragraph per line, each a single run.
func txBody(lines []string) string {
	var b strings.Builder
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	if len(lines) == 0 {
		b.WriteString(`<a:p/>`)
	}
	for _, line := range lines {
		if line == "" {
			b.WriteString(`<a:p/>`)
			continue
		}
		b.WriteString(`<a:p><a:r><a:t>` + escapeXML(line) + `</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody>`)
	return b.String()
}
