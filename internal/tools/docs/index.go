package docs

import (
	"os"
	"path/filepath"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/errors"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// generateIndex writes the catalog index page enumerating every generated
// category page: a toctree for the site build plus a human-readable summary.
func (g *Generator) generateIndex(catalogDir string, categories []Category) error {
	buf := &strings.Builder{}
	doc := md.NewMarkdown(buf)

	doc.H1("Model Catalog").LF()
	doc.PlainText("Browse the 3D printable models organized by category:").LF()

	pages := make([]string, len(categories))
	for i, c := range categories {
		pages[i] = c.PageName()
	}
	doc.CodeBlocks(md.SyntaxHighlight("{toctree}"),
		":maxdepth: 1\n\n"+strings.Join(pages, "\n"))
	doc.LF()

	doc.H2("About the Catalog").LF()
	doc.PlainText("This catalog contains 3D printable models (STL files) for:").LF()

	items := make([]string, len(categories))
	for i, c := range categories {
		item := md.Bold(c.Title)
		if c.Description != "" {
			item += ": " + c.Description
		}
		items[i] = item
	}
	doc.BulletList(items...).LF()

	doc.H2("Using the Models").LF()
	doc.PlainText("All STL files can be downloaded directly and used with 3D printers. Click on any model to see:").LF()
	doc.BulletList(
		"Rendered preview image",
		"Direct download link",
		"Last modification date",
		"Link to source files on GitHub",
	).LF()

	doc.H2("Repository").LF()
	doc.PlainText("All models are maintained in the " + md.Link("model repository", g.baseURL) + ".").LF()

	//nolint:errcheck // building into a strings.Builder cannot fail
	doc.Build()

	path := filepath.Join(catalogDir, "index.md")
	if err := os.WriteFile(path, []byte(buf.String()), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	logging.Info().Str("page", path).Int("categories", len(categories)).Msg("Generated catalog index")
	return nil
}
