package catalog

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
)

// RenderPage renders entries plus a title and description into the catalog
// page grammar. The output is a pure function of its input: no I/O, no
// failure modes, stable across runs.
//
// Each entry becomes a heading followed by a two-column grid block: the left
// column embeds the preview image, the right column holds the description,
// the download list, and the source link. A horizontal rule separates
// consecutive entries but never trails the last one.
func RenderPage(entries []Entry, title, description string) string {
	buf := &strings.Builder{}
	doc := md.NewMarkdown(buf)

	doc.H1(title).LF()
	if description != "" {
		doc.PlainText(description).LF()
	}
	doc.H2("Models").LF()

	for i, entry := range entries {
		writeEntry(doc, entry)
		if i < len(entries)-1 {
			doc.PlainText("---").LF()
		}
	}

	//nolint:errcheck // building into a strings.Builder cannot fail
	doc.Build()
	return buf.String()
}

// writeEntry emits one entry block using the sphinx-design grid directives
// understood by the site build.
func writeEntry(doc *md.Markdown, entry Entry) {
	doc.H3(entry.ID).LF()

	doc.PlainText("::::{grid} 1 1 2 2")
	doc.PlainText(":gutter: 3").LF()

	// Image column.
	doc.PlainText(":::{grid-item}")
	doc.PlainText(md.Image(entry.ID, entry.ImagePath))
	doc.PlainText(":::").LF()

	// Info column.
	doc.PlainText(":::{grid-item}")
	if entry.Description != "" {
		doc.PlainText(entry.Description).LF()
	}
	doc.PlainText("**Downloads:**").LF()
	doc.BulletList(downloadItems(entry.Downloads)...)
	doc.LF()
	doc.PlainText(md.Link("View source files on GitHub", entry.SourceURL))
	doc.PlainText(":::").LF()

	doc.PlainText("::::").LF()
}

// downloadItems formats the download list. The modified suffix is emitted
// only when the provenance lookup actually resolved a date.
func downloadItems(downloads []Download) []string {
	items := make([]string, len(downloads))
	for i, dl := range downloads {
		item := md.Link(dl.Filename, dl.URL)
		if dl.Modified.Known {
			item += fmt.Sprintf(" *(Modified: %s)*", dl.Modified.Date)
		}
		items[i] = item
	}
	return items
}
