// Package render bridges the catalog core to an external STL renderer. The
// renderer is any executable accepting `<input> <output> --width N --height N`,
// such as the VTK-based render script shipped alongside the docs build.
//
// The bridge owns no cache semantics: callers skip the call when the output
// already exists. Failure is reported by return value and never propagates.
package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/plustoolkit/modelcatalog/pkg/catalog"
	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// Command renders previews by invoking an external process per model.
type Command struct {
	// Program is the renderer executable. Args, if set, are inserted
	// before the positional input/output arguments (for interpreter
	// invocations like "python render_stl.py").
	Program string
	Args    []string

	timeout time.Duration
}

var _ catalog.Renderer = (*Command)(nil)

// New creates a renderer bridge around the given program and leading args.
func New(program string, args ...string) *Command {
	return &Command{
		Program: program,
		Args:    args,
		timeout: constants.RenderTimeout,
	}
}

// Render produces outputPath from modelPath at the requested dimensions.
// Returns false on any failure, including a missing renderer program; the
// caller emits the entry regardless.
func (c *Command) Render(ctx context.Context, modelPath, outputPath string, width, height int) bool {
	if c.Program == "" {
		logging.Debug().Msg("No renderer configured; skipping preview")
		return false
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), constants.DirPermissions); err != nil {
		logging.Err(err).Str("output", outputPath).Msg("Creating render output directory failed")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string{}, c.Args...),
		modelPath, outputPath,
		"--width", strconv.Itoa(width),
		"--height", strconv.Itoa(height),
	)
	cmd := exec.CommandContext(ctx, c.Program, args...)

	if out, err := cmd.CombinedOutput(); err != nil {
		logging.Err(err).
			Str("model", modelPath).
			Str("renderer", c.Program).
			Str("output", string(out)).
			Msg("Preview render failed")
		return false
	}

	// Some renderers exit zero without producing output; treat that as
	// failure so the cache is not poisoned by a phantom success.
	if _, err := os.Stat(outputPath); err != nil {
		logging.Warn().Str("model", modelPath).Msg("Renderer exited cleanly but produced no image")
		return false
	}
	return true
}
