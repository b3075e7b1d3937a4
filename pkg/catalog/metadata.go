package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/plustoolkit/modelcatalog/pkg/constants"
	"github.com/plustoolkit/modelcatalog/pkg/errors"
)

// Metadata is the normalized per-category configuration, whether it came from
// an inline definition in code or from a sidecar file inside the scanned
// directory.
type Metadata struct {
	Title        string
	Description  string
	Models       []ModelDefinition // declaration order preserved
	ExcludeFiles []string
}

// Definition returns the definition with the given id, if present.
func (m *Metadata) Definition(id string) (ModelDefinition, bool) {
	for _, def := range m.Models {
		if def.ID == id {
			return def, true
		}
	}
	return ModelDefinition{}, false
}

// LoadMetadata loads category metadata from the sidecar file inside dir. A
// missing sidecar yields empty metadata and no error. A malformed sidecar
// yields empty metadata alongside a ParseError so the caller can report the
// diagnostic and continue; generation is never aborted by bad metadata.
func LoadMetadata(dir string) (*Metadata, error) {
	path := filepath.Join(dir, constants.SidecarFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Metadata{}, nil
		}
		return &Metadata{}, errors.WrapIO("read", path, err)
	}
	return ParseMetadata(data, path)
}

// ParseMetadata decodes sidecar metadata. source names the origin for
// diagnostics. On decode failure the returned metadata is empty, never nil.
func ParseMetadata(data []byte, source string) (*Metadata, error) {
	var raw struct {
		Title        string                     `yaml:"title"`
		Description  string                     `yaml:"description"`
		Models       map[string]ModelDefinition `yaml:"models"`
		ExcludeFiles []string                   `yaml:"exclude_files"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &Metadata{}, errors.WrapParse("yaml", source, err)
	}

	meta := &Metadata{
		Title:        raw.Title,
		Description:  raw.Description,
		ExcludeFiles: raw.ExcludeFiles,
	}

	for _, id := range modelOrder(data, raw.Models) {
		def := raw.Models[id]
		def.ID = id
		meta.Models = append(meta.Models, def)
	}
	return meta, nil
}

// modelOrder recovers the declaration order of the models mapping. Entry
// ordering in a page follows definition order, so a plain Go map is not
// enough. Falls back to sorted ids if the order cannot be recovered.
func modelOrder(data []byte, models map[string]ModelDefinition) []string {
	var ordered struct {
		Models yaml.MapSlice `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &ordered); err == nil && len(ordered.Models) == len(models) {
		ids := make([]string, 0, len(ordered.Models))
		for _, item := range ordered.Models {
			id := fmt.Sprint(item.Key)
			if _, ok := models[id]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == len(models) {
			return ids
		}
	}

	ids := make([]string, 0, len(models))
	for id := range models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
