package docs

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/plustoolkit/modelcatalog/pkg/catalog"
	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/errors"
)

// Category describes one catalog page to generate.
type Category struct {
	// Directory is the model directory, relative to the repository root.
	Directory string

	// Output is the generated markdown filename, e.g. "tools.md".
	Output string

	// Metadata, when set, is used directly instead of loading the
	// directory's sidecar file.
	Metadata *catalog.Metadata

	// Title and Description are filled during generation for use on the
	// index page.
	Title       string
	Description string
}

// EffectiveTitle returns the metadata title, falling back to a humanized form
// of the directory name when the metadata leaves it blank.
func (c Category) EffectiveTitle(meta *catalog.Metadata) string {
	if meta != nil && meta.Title != "" {
		return meta.Title
	}
	name := filepath.Base(strings.TrimRight(c.Directory, "/"))
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(words)
}

// PageName returns the index toctree entry for the category.
func (c Category) PageName() string {
	return strings.TrimSuffix(c.Output, ".md")
}

// DiscoverCategories finds category directories under the repository root: any
// immediate subdirectory carrying a sidecar metadata file becomes a category,
// in sorted directory order. The page filename derives from the directory name.
func DiscoverCategories(repoRoot string) ([]Category, error) {
	dirents, err := os.ReadDir(repoRoot)
	if err != nil {
		return nil, errors.WrapIO("read", repoRoot, err)
	}

	var categories []Category
	for _, de := range dirents {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		sidecar := filepath.Join(repoRoot, de.Name(), constants.SidecarFilename)
		if _, err := os.Stat(sidecar); err != nil {
			continue
		}
		categories = append(categories, Category{
			Directory: de.Name(),
			Output:    slugify(de.Name()) + ".md",
		})
	}
	return categories, nil
}

// slugify converts a directory name into a page filename stem: lowercase,
// with separators and camelCase boundaries turned into hyphens.
func slugify(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
			prevLower = false
		case r == ' ' || r == '_' || r == '-':
			b.WriteByte('-')
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		}
	}
	return strings.Trim(b.String(), "-")
}
