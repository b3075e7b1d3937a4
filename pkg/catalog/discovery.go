package catalog

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/errors"
)

// Discover scans dir for STL model files and returns their paths sorted
// lexicographically. Both the lowercase and uppercase extension variants are
// matched so discovery is case-insensitive even on case-sensitive filesystems.
// Results are deduplicated by resolved path identity in case a case-insensitive
// filesystem surfaces the same file twice.
//
// exclude holds bare filenames (not paths); any discovered file whose name is
// in the set is dropped. Excluded names that match nothing are not an error.
func Discover(dir string, recursive bool, exclude map[string]struct{}) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	err := godirwalk.Walk(dir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if !recursive && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if !isModelFile(path) {
				return nil
			}
			if _, excluded := exclude[filepath.Base(path)]; excluded {
				return nil
			}
			resolved := path
			if abs, err := filepath.Abs(path); err == nil {
				resolved = abs
			}
			if _, dup := seen[resolved]; dup {
				return nil
			}
			seen[resolved] = struct{}{}
			files = append(files, path)
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			// An unreadable subtree degrades discovery, it does not abort it.
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, errors.WrapIO("scan", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// isModelFile reports whether path carries the catalog model extension in its
// lowercase or uppercase form.
func isModelFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == constants.ModelFileExt || ext == strings.ToUpper(constants.ModelFileExt)
}

// IsModelPath reports whether path is a model file in any extension casing.
// Used when partitioning explicit definition files into primary and additional.
func IsModelPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), constants.ModelFileExt)
}

// Stem returns the filename of path without its extension, the default entry
// id for auto-discovered files.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
