// Package docs generates the browsable model catalog: one markdown page per
// category directory plus an index page, with preview images rendered into a
// shared on-disk cache.
package docs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/plustoolkit/modelcatalog/internal/gitinfo"
	"github.com/plustoolkit/modelcatalog/pkg/catalog"
	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/errors"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// Generator handles catalog page generation
type Generator struct {
	repoRoot   string
	outputDir  string
	baseURL    string
	branch     string
	width      int
	height     int
	categories []Category
	renderer   catalog.Renderer
	provenance catalog.Provenance
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithRepoRoot sets the model repository root directory
func WithRepoRoot(dir string) Option {
	return func(g *Generator) {
		g.repoRoot = dir
	}
}

// WithOutputDir sets the output directory for generated documentation
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithBaseURL sets the repository base URL used in download and source links
func WithBaseURL(url string) Option {
	return func(g *Generator) {
		g.baseURL = url
	}
}

// WithBranch sets the branch referenced by download and source links
func WithBranch(branch string) Option {
	return func(g *Generator) {
		g.branch = branch
	}
}

// WithRenderSize sets the preview image dimensions
func WithRenderSize(width, height int) Option {
	return func(g *Generator) {
		g.width = width
		g.height = height
	}
}

// WithCategories sets an explicit category list, bypassing sidecar discovery
func WithCategories(categories ...Category) Option {
	return func(g *Generator) {
		g.categories = categories
	}
}

// WithRenderer sets the preview renderer collaborator
func WithRenderer(r catalog.Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithProvenance sets the file history collaborator
func WithProvenance(p catalog.Provenance) Option {
	return func(g *Generator) {
		g.provenance = p
	}
}

// New creates a new catalog generator
func New(opts ...Option) *Generator {
	g := &Generator{
		repoRoot:  ".",
		outputDir: "./docs",
		baseURL:   "https://github.com/PlusToolkit/PlusModelCatalog",
		branch:    constants.DefaultBranch,
		width:     constants.RenderWidth,
		height:    constants.RenderHeight,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.provenance == nil {
		g.provenance = gitinfo.New(g.repoRoot)
	}

	return g
}

// Generate generates every category page plus the catalog index. Generation
// is best-effort: a category whose metadata is malformed or whose entries
// cannot all be resolved still produces a page, and only output-side I/O
// failures abort the run.
func (g *Generator) Generate(ctx context.Context) error {
	catalogDir := filepath.Join(g.outputDir, constants.CatalogDirName)
	cacheDir := filepath.Join(g.outputDir, constants.StaticDirName, constants.RenderedDirName)

	for _, dir := range []string{catalogDir, cacheDir} {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}

	categories := g.categories
	if len(categories) == 0 {
		var err error
		if categories, err = DiscoverCategories(g.repoRoot); err != nil {
			return err
		}
	}

	var generated []Category
	for _, category := range categories {
		page, resolved, err := g.generateCategory(ctx, category, cacheDir)
		if err != nil {
			return err
		}

		outPath := filepath.Join(catalogDir, resolved.Output)
		if err := os.WriteFile(outPath, []byte(page), constants.FilePermissions); err != nil {
			return errors.WrapIO("write", outPath, err)
		}
		logging.Info().Str("page", outPath).Msg("Generated catalog page")

		generated = append(generated, resolved)
	}

	if err := g.generateIndex(catalogDir, generated); err != nil {
		return err
	}

	return nil
}

// generateCategory resolves and renders one category page, returning the page
// text and the category with its effective title and description filled in.
// Metadata problems degrade to empty defaults with a diagnostic; they never
// abort generation.
func (g *Generator) generateCategory(ctx context.Context, category Category, cacheDir string) (string, Category, error) {
	dir := filepath.Join(g.repoRoot, filepath.FromSlash(category.Directory))

	meta := category.Metadata
	if meta == nil {
		var err error
		meta, err = catalog.LoadMetadata(dir)
		if err != nil {
			logging.Err(err).Str("directory", dir).Msg("Loading category metadata failed; using empty defaults")
		}
	}

	category.Title = category.EffectiveTitle(meta)
	category.Description = meta.Description
	category.Metadata = meta

	resolver := &catalog.Resolver{
		RepoRoot:   g.repoRoot,
		CacheDir:   cacheDir,
		ImageBase:  "/" + constants.StaticDirName + "/" + constants.RenderedDirName,
		BaseURL:    g.baseURL,
		Branch:     g.branch,
		Width:      g.width,
		Height:     g.height,
		Renderer:   g.renderer,
		Provenance: g.provenance,
	}

	entries, err := resolver.Resolve(ctx, dir, meta.Models, meta.ExcludeFiles)
	if err != nil {
		return "", category, err
	}

	return catalog.RenderPage(entries, category.Title, meta.Description), category, nil
}
