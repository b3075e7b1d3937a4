package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/errors"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// Resolver merges explicit model definitions with files discovered on disk
// and produces the ordered entries for one catalog page.
type Resolver struct {
	// RepoRoot anchors every path named in a definition's files list.
	RepoRoot string

	// CacheDir is the on-disk render cache. Preview images are keyed by
	// entry id and never invalidated once present.
	CacheDir string

	// ImageBase is the URL prefix under which cached images are served in
	// emitted pages, e.g. "/_static/rendered".
	ImageBase string

	// BaseURL and Branch drive the download and source link conventions.
	BaseURL string
	Branch  string

	// Width and Height are passed to the renderer for fresh previews.
	Width  int
	Height int

	Renderer   Renderer
	Provenance Provenance
}

// Resolve produces the entries for one category directory: explicitly defined
// entries in declaration order, then auto-discovered entries in sorted-path
// order.
//
// The algorithm is two-phase. The first pass freezes the claimed-file set from
// every definition carrying an explicit files list; the second pass resolves
// those definitions and then runs discovery against the frozen exclusion set,
// so a claimed file can never surface as its own entry.
func (r *Resolver) Resolve(ctx context.Context, dir string, defs []ModelDefinition, excludeFiles []string) ([]Entry, error) {
	claimed := make(map[string]struct{})
	exclude := make(map[string]struct{}, len(excludeFiles))
	for _, name := range excludeFiles {
		exclude[name] = struct{}{}
	}
	for _, def := range defs {
		for _, f := range def.Files {
			name := filepath.Base(f)
			claimed[name] = struct{}{}
			exclude[name] = struct{}{}
		}
	}

	var entries []Entry

	// Explicit definitions, in declaration order.
	overrides := make(map[string]ModelDefinition) // files-less defs, keyed by stem
	matched := make(map[string]bool)
	for _, def := range defs {
		if len(def.Files) == 0 {
			overrides[def.ID] = def
			continue
		}
		entry, ok := r.resolveDefinition(ctx, def)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	// Auto-discovered files, in sorted order.
	discovered, err := Discover(dir, true, exclude)
	if err != nil {
		return nil, err
	}
	for _, path := range discovered {
		if _, isClaimed := claimed[filepath.Base(path)]; isClaimed {
			continue
		}
		id := Stem(path)
		description := ""
		if def, ok := overrides[id]; ok {
			description = def.Description
			matched[id] = true
		}
		entries = append(entries, r.buildEntry(ctx, id, description, path, nil, ""))
	}

	for id := range overrides {
		if !matched[id] {
			logging.Warn().
				Str("id", id).
				Str("directory", dir).
				Msg("Description override matched no discovered file; override ids must equal the file's stem")
		}
	}

	return entries, nil
}

// resolveDefinition builds the entry for a definition with an explicit files
// list. The primary is the first model-format file in list order; every other
// file, model or not, becomes an additional download. A definition with no
// model-format file, or whose primary is absent on disk, is skipped without an
// entry. That is policy, not an error: the catalog favors partial output.
func (r *Resolver) resolveDefinition(ctx context.Context, def ModelDefinition) (Entry, bool) {
	var primary string
	var additional []string
	for _, f := range def.Files {
		path := filepath.Join(r.RepoRoot, filepath.FromSlash(f))
		if primary == "" && IsModelPath(path) {
			primary = path
			continue
		}
		additional = append(additional, path)
	}

	if primary == "" {
		logging.Debug().Str("id", def.ID).Msg("Definition has no model-format file; skipping")
		return Entry{}, false
	}
	if _, err := os.Stat(primary); err != nil {
		logging.Debug().Str("id", def.ID).Str("primary", primary).Msg("Primary file missing on disk; skipping")
		return Entry{}, false
	}

	return r.buildEntry(ctx, def.ID, def.Description, primary, additional, def.Image), true
}

// buildEntry assembles one resolved entry around its primary file. customImage
// is a repo-relative path to a preview image that replaces on-demand rendering
// when it exists; when it is blank or missing the preview is rendered unless
// already cached.
func (r *Resolver) buildEntry(ctx context.Context, id, description, primary string, additional []string, customImage string) Entry {
	cachePath := filepath.Join(r.CacheDir, id+constants.RenderedImageExt)

	if !r.ensureCustomImage(id, customImage, cachePath) {
		r.ensureRendered(ctx, id, primary, cachePath)
	}

	files := append([]string{primary}, additional...)
	downloads := make([]Download, 0, len(files))
	for _, f := range files {
		downloads = append(downloads, Download{
			Filename: filepath.Base(f),
			URL:      r.BaseURL + "/blob/" + r.Branch + "/" + r.relPath(f) + constants.RawSuffix,
			Modified: r.lastModified(ctx, f),
		})
	}

	return Entry{
		ID:          id,
		Description: description,
		ImagePath:   r.ImageBase + "/" + id + constants.RenderedImageExt,
		Downloads:   downloads,
		SourceURL:   r.BaseURL + "/tree/" + r.Branch + "/" + r.relDir(primary),
	}
}

// ensureCustomImage copies a definition's custom preview into the render cache
// under the entry id. Returns false when no usable custom image exists, in
// which case the caller falls back to rendering.
func (r *Resolver) ensureCustomImage(id, customImage, cachePath string) bool {
	if customImage == "" {
		return false
	}
	src := filepath.Join(r.RepoRoot, filepath.FromSlash(customImage))
	if _, err := os.Stat(src); err != nil {
		logging.Warn().Str("id", id).Str("image", src).Msg("Custom image missing; falling back to rendering")
		return false
	}
	if err := copyFile(src, cachePath); err != nil {
		logging.Err(err).Str("id", id).Msg("Copying custom image failed; falling back to rendering")
		return false
	}
	return true
}

// ensureRendered renders the preview for primary unless the cache already
// holds one. Render failure degrades the entry, it never aborts resolution.
func (r *Resolver) ensureRendered(ctx context.Context, id, primary, cachePath string) {
	if _, err := os.Stat(cachePath); err == nil {
		return
	}
	if r.Renderer == nil {
		return
	}
	logging.Info().Str("id", id).Msg("Rendering preview")
	if !r.Renderer.Render(ctx, primary, cachePath, r.Width, r.Height) {
		logging.Warn().Str("id", id).Str("file", primary).Msg("Preview render failed; entry will reference a missing image")
	}
}

// lastModified consults the provenance collaborator, degrading to the unknown
// sentinel when none is configured.
func (r *Resolver) lastModified(ctx context.Context, path string) ModTime {
	if r.Provenance == nil {
		return UnknownModTime
	}
	return r.Provenance.LastModified(ctx, path)
}

// relPath returns path relative to the repository root in URL form.
func (r *Resolver) relPath(path string) string {
	rel, err := filepath.Rel(r.RepoRoot, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// relDir returns path's parent directory relative to the repository root in
// URL form.
func (r *Resolver) relDir(path string) string {
	return r.relPath(filepath.Dir(path))
}

// copyFile copies src to dst, truncating any existing destination.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.WrapIO("copy", dst, err)
	}
	return nil
}
