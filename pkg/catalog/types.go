// Package catalog implements the model catalog assembly core: it discovers STL
// model files on disk, merges them with declarative per-category metadata, and
// resolves logical model entries ready for markdown emission.
//
// The package owns the merge and edge-case policy only. Preview rendering and
// version-control history are external collaborators injected through the
// Renderer and Provenance interfaces.
package catalog

import "context"

// ModelDefinition declares one logical model in category metadata.
//
// When Files is empty the definition is a description override matched
// against an auto-discovered file with the same stem. When Files is set it
// explicitly enumerates the source files forming one logical model; the first
// STL file in list order is the primary used for preview rendering and every
// other file becomes an additional download.
type ModelDefinition struct {
	ID          string   `yaml:"-"`
	Description string   `yaml:"description"`
	Files       []string `yaml:"files,omitempty"`
	Image       string   `yaml:"image,omitempty"`
}

// ModTime is the result of a provenance lookup. Known reports whether the
// lookup succeeded; Date is only meaningful when Known is true.
type ModTime struct {
	Date  string
	Known bool
}

// KnownModTime returns a ModTime carrying a resolved date.
func KnownModTime(date string) ModTime {
	return ModTime{Date: date, Known: true}
}

// UnknownModTime is the sentinel returned when history cannot be determined.
var UnknownModTime = ModTime{}

// Download is one downloadable file attached to a resolved entry.
type Download struct {
	Filename string
	URL      string
	Modified ModTime
}

// Entry is a fully resolved catalog item ready for emission. Downloads is
// never empty; ImagePath always points at the render cache location for the
// entry, whether or not the render actually succeeded.
type Entry struct {
	ID          string
	Description string
	ImagePath   string
	Downloads   []Download
	SourceURL   string
}

// Page is one generated catalog page.
type Page struct {
	Title       string
	Description string
	Entries     []Entry
}

// Renderer produces a preview image for a model file. Implementations report
// failure by returning false and must never panic past the call boundary.
// Cache semantics are owned by the caller: the resolver checks for an existing
// output file and skips the call when one is present.
type Renderer interface {
	Render(ctx context.Context, modelPath, outputPath string, width, height int) bool
}

// Provenance reports the last-modified date of a file. Implementations return
// UnknownModTime on any underlying failure rather than an error.
type Provenance interface {
	LastModified(ctx context.Context, path string) ModTime
}
