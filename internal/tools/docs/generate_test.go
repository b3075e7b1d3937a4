package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plustoolkit/modelcatalog/pkg/catalog"
)

type fakeRenderer struct {
	calls int
}

func (f *fakeRenderer) Render(_ context.Context, _, outputPath string, _, _ int) bool {
	f.calls++
	return os.WriteFile(outputPath, []byte("png"), 0644) == nil
}

type fakeProvenance struct{}

func (fakeProvenance) LastModified(_ context.Context, _ string) catalog.ModTime {
	return catalog.KnownModTime("2025-03-01")
}

func writeRepoFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeRepoFile(t, filepath.Join(root, "Tools", "catalog.yaml"),
		"title: Tools\ndescription: Surgical instruments.\nmodels:\n  Scalpel:\n    description: Generic scalpel.\n")
	writeRepoFile(t, filepath.Join(root, "Tools", "Scalpel.stl"), "solid\n")
	writeRepoFile(t, filepath.Join(root, "Tools", "Cautery.stl"), "solid\n")
	writeRepoFile(t, filepath.Join(root, "Anatomy", "catalog.yaml"), "title: Anatomy Models\n")
	writeRepoFile(t, filepath.Join(root, "Anatomy", "HumanSimple.stl"), "solid\n")
	// No sidecar: not a category.
	writeRepoFile(t, filepath.Join(root, "Scripts", "build.sh"), "#!/bin/sh\n")
	return root
}

func TestNewDefaults(t *testing.T) {
	g := New()
	assert.Equal(t, ".", g.repoRoot)
	assert.Equal(t, "./docs", g.outputDir)
	assert.Equal(t, "master", g.branch)
	assert.Equal(t, 400, g.width)
	assert.Equal(t, 300, g.height)
	assert.NotNil(t, g.provenance)
}

func TestOptions(t *testing.T) {
	r := &fakeRenderer{}
	g := New(
		WithRepoRoot("/repo"),
		WithOutputDir("/out"),
		WithBaseURL("https://example.org/models"),
		WithBranch("main"),
		WithRenderSize(800, 600),
		WithRenderer(r),
		WithProvenance(fakeProvenance{}),
	)

	assert.Equal(t, "/repo", g.repoRoot)
	assert.Equal(t, "/out", g.outputDir)
	assert.Equal(t, "https://example.org/models", g.baseURL)
	assert.Equal(t, "main", g.branch)
	assert.Equal(t, 800, g.width)
	assert.Equal(t, 600, g.height)
	assert.Equal(t, r, g.renderer)
}

func TestDiscoverCategories(t *testing.T) {
	root := newTestRepo(t)

	categories, err := DiscoverCategories(root)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "Anatomy", categories[0].Directory)
	assert.Equal(t, "anatomy.md", categories[0].Output)
	assert.Equal(t, "Tools", categories[1].Directory)
	assert.Equal(t, "tools.md", categories[1].Output)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tools", "tools"},
		{"TrackingFixtures", "tracking-fixtures"},
		{"fCalPhantom", "f-cal-phantom"},
		{"UsNeedleTutor", "us-needle-tutor"},
		{"my_models", "my-models"},
		{"Already-Slugged", "already-slugged"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestEffectiveTitle(t *testing.T) {
	c := Category{Directory: "TrackingFixtures"}
	assert.Equal(t, "Fixtures", c.EffectiveTitle(&catalog.Metadata{Title: "Fixtures"}))

	c = Category{Directory: "needle-tutor"}
	assert.Equal(t, "Needle Tutor", c.EffectiveTitle(&catalog.Metadata{}))
}

func TestGenerateEndToEnd(t *testing.T) {
	root := newTestRepo(t)
	out := t.TempDir()
	renderer := &fakeRenderer{}

	g := New(
		WithRepoRoot(root),
		WithOutputDir(out),
		WithBaseURL("https://example.org/models"),
		WithBranch("main"),
		WithRenderer(renderer),
		WithProvenance(fakeProvenance{}),
	)

	require.NoError(t, g.Generate(context.Background()))

	toolsPage, err := os.ReadFile(filepath.Join(out, "catalog", "tools.md"))
	require.NoError(t, err)
	assert.Contains(t, string(toolsPage), "# Tools")
	assert.Contains(t, string(toolsPage), "### Scalpel")
	assert.Contains(t, string(toolsPage), "Generic scalpel.")
	assert.Contains(t, string(toolsPage), "### Cautery")
	assert.Contains(t, string(toolsPage), "https://example.org/models/blob/main/Tools/Scalpel.stl?raw=true")
	assert.Contains(t, string(toolsPage), "*(Modified: 2025-03-01)*")

	assert.FileExists(t, filepath.Join(out, "catalog", "anatomy.md"))
	assert.FileExists(t, filepath.Join(out, "_static", "rendered", "Scalpel.png"))
	assert.Equal(t, 3, renderer.calls, "one render per discovered model")

	index, err := os.ReadFile(filepath.Join(out, "catalog", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# Model Catalog")
	assert.Contains(t, string(index), "tools")
	assert.Contains(t, string(index), "anatomy")
	assert.Contains(t, string(index), "**Tools**: Surgical instruments.")
	assert.Contains(t, string(index), "**Anatomy Models**")
	assert.Contains(t, string(index), "https://example.org/models")
}

func TestGenerateWithInlineCategories(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, filepath.Join(root, "Models", "Probe.stl"), "solid\n")
	out := t.TempDir()

	g := New(
		WithRepoRoot(root),
		WithOutputDir(out),
		WithRenderer(&fakeRenderer{}),
		WithProvenance(fakeProvenance{}),
		WithCategories(Category{
			Directory: "Models",
			Output:    "probes.md",
			Metadata: &catalog.Metadata{
				Title:       "Ultrasound Probes",
				Description: "Mock probe bodies.",
			},
		}),
	)

	require.NoError(t, g.Generate(context.Background()))

	page, err := os.ReadFile(filepath.Join(out, "catalog", "probes.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# Ultrasound Probes")
	assert.Contains(t, string(page), "### Probe")
}

func TestGenerateMalformedSidecarStillWritesPage(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, filepath.Join(root, "Broken", "catalog.yaml"), "models: [")
	writeRepoFile(t, filepath.Join(root, "Broken", "Part.stl"), "solid\n")
	out := t.TempDir()

	g := New(
		WithRepoRoot(root),
		WithOutputDir(out),
		WithRenderer(&fakeRenderer{}),
		WithProvenance(fakeProvenance{}),
	)

	require.NoError(t, g.Generate(context.Background()))

	page, err := os.ReadFile(filepath.Join(out, "catalog", "broken.md"))
	require.NoError(t, err)
	// Metadata degraded to empty defaults, discovery still ran.
	assert.Contains(t, string(page), "# Broken")
	assert.Contains(t, string(page), "### Part")
}

func TestGenerateEmptyRepository(t *testing.T) {
	out := t.TempDir()
	g := New(
		WithRepoRoot(t.TempDir()),
		WithOutputDir(out),
		WithProvenance(fakeProvenance{}),
	)

	require.NoError(t, g.Generate(context.Background()))
	assert.FileExists(t, filepath.Join(out, "catalog", "index.md"))
}
