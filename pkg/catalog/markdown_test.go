package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(id string) Entry {
	return Entry{
		ID:        id,
		ImagePath: "/_static/rendered/" + id + ".png",
		Downloads: []Download{{
			Filename: id + ".stl",
			URL:      "https://example.org/blob/master/Tools/" + id + ".stl?raw=true",
			Modified: KnownModTime("2025-01-15"),
		}},
		SourceURL: "https://example.org/tree/master/Tools",
	}
}

func TestRenderPageEmpty(t *testing.T) {
	out := RenderPage(nil, "Needle Tutor Components", "Components for ultrasound-guided needle insertion training.")

	assert.Contains(t, out, "# Needle Tutor Components")
	assert.Contains(t, out, "Components for ultrasound-guided needle insertion training.")
	assert.Contains(t, out, "## Models")
	assert.NotContains(t, out, "###")
	assert.NotContains(t, out, "---")
	assert.NotContains(t, out, "{grid}")
}

func TestRenderPageSingleEntry(t *testing.T) {
	entry := testEntry("Scalpel")
	entry.Description = "Generic scalpel."

	out := RenderPage([]Entry{entry}, "Tools", "Surgical instruments.")

	assert.Contains(t, out, "### Scalpel")
	assert.Contains(t, out, "::::{grid} 1 1 2 2")
	assert.Contains(t, out, ":gutter: 3")
	assert.Contains(t, out, "![Scalpel](/_static/rendered/Scalpel.png)")
	assert.Contains(t, out, "Generic scalpel.")
	assert.Contains(t, out, "**Downloads:**")
	assert.Contains(t, out, "- [Scalpel.stl](https://example.org/blob/master/Tools/Scalpel.stl?raw=true) *(Modified: 2025-01-15)*")
	assert.Contains(t, out, "[View source files on GitHub](https://example.org/tree/master/Tools)")
	assert.NotContains(t, out, "---", "no separator after the last entry")
}

func TestRenderPageSeparatorBetweenEntriesOnly(t *testing.T) {
	entries := []Entry{testEntry("A"), testEntry("B"), testEntry("C")}

	out := RenderPage(entries, "Tools", "")

	assert.Equal(t, 2, strings.Count(out, "---"), "exactly one separator between each pair")

	// Separators sit between blocks, never after the last.
	lastEntry := strings.Index(out, "### C")
	require.Positive(t, lastEntry)
	assert.Equal(t, -1, strings.Index(out[lastEntry:], "---"))
}

func TestRenderPageEntryOrderMatchesInput(t *testing.T) {
	entries := []Entry{testEntry("Zed"), testEntry("Alpha")}

	out := RenderPage(entries, "Tools", "")

	zed := strings.Index(out, "### Zed")
	alpha := strings.Index(out, "### Alpha")
	require.Positive(t, zed)
	require.Positive(t, alpha)
	assert.Less(t, zed, alpha, "entries emit in resolver order")
}

func TestRenderPageUnknownDateOmitsModifiedSuffix(t *testing.T) {
	entry := testEntry("Cautery")
	entry.Downloads[0].Modified = UnknownModTime
	entry.Downloads = append(entry.Downloads, Download{
		Filename: "Cautery.rom",
		URL:      "https://example.org/blob/master/Tools/Cautery.rom?raw=true",
		Modified: KnownModTime("2023-06-30"),
	})

	out := RenderPage([]Entry{entry}, "Tools", "")

	assert.Contains(t, out, "- [Cautery.stl](https://example.org/blob/master/Tools/Cautery.stl?raw=true)")
	assert.Contains(t, out, "*(Modified: 2023-06-30)*")
	assert.Equal(t, 1, strings.Count(out, "(Modified:"), "unknown dates carry no suffix")
}

func TestRenderPageBlankDescriptionsOmitted(t *testing.T) {
	out := RenderPage([]Entry{testEntry("Plain")}, "Tools", "")

	// No page description paragraph and no entry description, but the
	// structural headings are all present.
	assert.Contains(t, out, "# Tools")
	assert.Contains(t, out, "## Models")
	assert.Contains(t, out, "### Plain")
}

func TestRenderPageDeterministic(t *testing.T) {
	entries := []Entry{testEntry("A"), testEntry("B")}
	first := RenderPage(entries, "Tools", "desc")
	second := RenderPage(entries, "Tools", "desc")
	assert.Equal(t, first, second)
}
