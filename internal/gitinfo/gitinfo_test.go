package gitinfo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.org",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.org",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func TestLastModified(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	repo := t.TempDir()
	git(t, repo, "init")

	tracked := filepath.Join(repo, "Tools", "Scalpel.stl")
	require.NoError(t, os.MkdirAll(filepath.Dir(tracked), 0755))
	require.NoError(t, os.WriteFile(tracked, []byte("solid\n"), 0644))
	git(t, repo, "add", ".")
	git(t, repo, "commit", "-m", "add scalpel")

	untracked := filepath.Join(repo, "Tools", "Cautery.stl")
	require.NoError(t, os.WriteFile(untracked, []byte("solid\n"), 0644))

	lookup := New(repo)

	t.Run("tracked file has a date", func(t *testing.T) {
		mt := lookup.LastModified(context.Background(), tracked)
		assert.True(t, mt.Known)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, mt.Date)
	})

	t.Run("untracked file is unknown", func(t *testing.T) {
		mt := lookup.LastModified(context.Background(), untracked)
		assert.False(t, mt.Known)
	})

	t.Run("path outside repository is unknown", func(t *testing.T) {
		mt := lookup.LastModified(context.Background(), filepath.Join(t.TempDir(), "elsewhere.stl"))
		assert.False(t, mt.Known)
	})
}

func TestLastModifiedNoRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "model.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid\n"), 0644))

	mt := New(dir).LastModified(context.Background(), path)
	assert.False(t, mt.Known)
}
