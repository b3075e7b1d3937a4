// Package gitinfo resolves last-modified dates for catalog files from git
// history. It is the provenance collaborator of the catalog core: any
// underlying failure degrades to the unknown sentinel and never reaches the
// caller as an error.
package gitinfo

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/plustoolkit/modelcatalog/pkg/catalog"
	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/logging"
)

// Lookup queries git for per-file history. It implements catalog.Provenance.
type Lookup struct {
	repoRoot string
	timeout  time.Duration
}

// Ensure the collaborator contract is satisfied.
var _ catalog.Provenance = (*Lookup)(nil)

// New creates a Lookup rooted at the repository working tree.
func New(repoRoot string) *Lookup {
	return &Lookup{
		repoRoot: repoRoot,
		timeout:  constants.GitTimeout,
	}
}

// LastModified returns the date of the last commit touching path, formatted
// YYYY-MM-DD. Paths outside the repository, files with no history, and a
// missing git binary all yield the unknown sentinel. Each invocation runs one
// git process; the configured timeout bounds it since the core imposes none.
func (l *Lookup) LastModified(ctx context.Context, path string) catalog.ModTime {
	rel, err := filepath.Rel(l.repoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		logging.Debug().Str("path", path).Msg("Path outside repository; no provenance")
		return catalog.UnknownModTime
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log", "-1", "--format=%ad", "--date=short", "--", rel)
	cmd.Dir = l.repoRoot

	out, err := cmd.Output()
	if err != nil {
		logging.Debug().Err(err).Str("path", rel).Msg("git log failed; provenance unknown")
		return catalog.UnknownModTime
	}

	date := strings.TrimSpace(string(out))
	if date == "" {
		// Untracked file: git exits zero with empty output.
		return catalog.UnknownModTime
	}
	return catalog.KnownModTime(date)
}
