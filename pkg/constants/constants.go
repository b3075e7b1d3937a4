// Package constants provides shared constants used throughout the modelcatalog codebase.
// This includes timeouts, file permissions, render dimensions, and naming conventions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define timeout durations for external collaborators
const (
	// GitTimeout is the timeout for a single git history lookup
	GitTimeout = 10 * time.Second

	// RenderTimeout is the timeout for rendering a single model preview
	RenderTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 30 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Render constants define preview image defaults
const (
	// RenderWidth is the default preview image width in pixels
	RenderWidth = 400

	// RenderHeight is the default preview image height in pixels
	RenderHeight = 300

	// RenderedImageExt is the file extension of cached preview images
	RenderedImageExt = ".png"
)

// Catalog file and directory naming conventions
const (
	// ModelFileExt is the canonical lowercase extension of catalog model files
	ModelFileExt = ".stl"

	// SidecarFilename is the per-directory metadata file consulted during generation
	SidecarFilename = "catalog.yaml"

	// RenderedDirName is the render cache directory under the static assets root
	RenderedDirName = "rendered"

	// StaticDirName is the static assets directory inside the docs output tree
	StaticDirName = "_static"

	// CatalogDirName is the directory holding generated catalog pages
	CatalogDirName = "catalog"
)

// Link conventions for generated download and source links
const (
	// DefaultBranch is the branch used in download and source links
	DefaultBranch = "master"

	// RawSuffix is appended to blob links so they download instead of render
	RawSuffix = "?raw=true"
)
