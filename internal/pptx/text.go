// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

var (
	runOpen  = []byte("<a:t>")
	runClose = []byte("</a:t>")
)

// VisitRuns calls visit with the text of every run of every shape on every
// slide, in document order, and stores any changed return value back into
// the run. Substitution is strictly per run: formatting attributes around
// the run are untouched, and a shape without text contributes no runs.
func (d *Deck) VisitRuns(visit func(text string) string) {
	for _, path := range d.slides {
		d.parts[path] = rewriteRuns(d.parts[path], visit)
	}
}

// SlideTexts returns the run texts of slide i in document order. Out of
// range indexes yield nil.
func (d *Deck) SlideTexts(i int) []string {
	if i < 0 || i >= len(d.slides) {
		return nil
	}
	var texts []string
	rewriteRuns(d.parts[d.slides[i]], func(text string) string {
		texts = append(texts, text)
		return text
	})
	return texts
}

// rewriteRuns scans part bytes for <a:t> elements, passes each decoded run
// text through visit, and re-escapes any replacement. Unchanged runs keep
// their original bytes.
func rewriteRuns(data []byte, visit func(string) string) []byte {
	var out bytes.Buffer
	rest := data
	for {
		start := bytes.Index(rest, runOpen)
		if start < 0 {
			out.Write(rest)
			break
		}
		innerStart := start + len(runOpen)
		end := bytes.Index(rest[innerStart:], runClose)
		if end < 0 {
			out.Write(rest)
			break
		}
		out.Write(rest[:innerStart])

		inner := rest[innerStart : innerStart+end]
		text := unescapeXML(string(inner))
		if replaced := visit(text); replaced != text {
			out.WriteString(escapeXML(replaced))
		} else {
			out.Write(inner)
		}
		rest = rest[innerStart+end:]
	}
	return out.Bytes()
}

// escapeXML escapes text for embedding in an XML element.
func escapeXML(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s)) //nolint:errcheck // bytes.Buffer cannot fail
	return b.String()
}

// xmlUnescaper reverses the predefined XML entities plus the whitespace
// character references xml.EscapeText emits. Run text written by this
// package or by presentation tools uses no others.
var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#xA;", "\n",
	"&#x9;", "\t",
	"&#xD;", "\r",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return xmlUnescaper.Replace(s)
}
