package skins

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name     string                 `json:"name" yaml:"name"`
	Version  string                 `json:"version" yaml:"version"`
	Tokens   map[string]string      `json:"tokens" yaml:"tokens"`
	Assets   assetsFile             `json:"assets" yaml:"assets"`
	Variants map[string]variantFile `json:"variants" yaml:"variants"`
}

type variantFile struct {
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
	Assets assetsFile        `json:"assets" yaml:"assets"`
}

type assetsFile struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

// LoadFS walks the provided filesystem and parses JSON/YAML skin manifests.
// Manifests are returned sorted by name. Two files declaring the same theme
// name are rejected.
func LoadFS(fsys fs.FS) ([]*theme.Manifest, error) {
	if fsys == nil {
		return nil, nil
	}

	byName := make(map[string]*theme.Manifest)
	sources := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("skins: read %s: %w", path, err)
		}

		manifest, err := ParseManifest(data, path)
		if err != nil {
			return err
		}
		if previous, exists := sources[manifest.Name]; exists {
			return fmt.Errorf("skins: duplicate theme %q (files %s and %s)", manifest.Name, previous, path)
		}
		sources[manifest.Name] = path
		byName[manifest.Name] = manifest
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*theme.Manifest, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out, nil
}

// ParseManifest decodes a single JSON or YAML manifest. The name falls back
// to the file name without extension.
func ParseManifest(data []byte, source string) (*theme.Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("skins: file %s is empty", source)
	}

	var doc manifestFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = manifestFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("skins: parse %s: invalid JSON or YAML", source)
		}
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" || name == "." {
		return nil, fmt.Errorf("skins: file %s defines no theme name", source)
	}

	for key := range doc.Tokens {
		if !strings.HasPrefix(key, "htmlform.") {
			return nil, fmt.Errorf("skins: file %s token %q is not an htmlform token", source, key)
		}
	}

	manifest := &theme.Manifest{
		Name:    name,
		Version: doc.Version,
		Tokens:  doc.Tokens,
		Assets:  theme.Assets{Prefix: doc.Assets.Prefix, Files: doc.Assets.Files},
	}
	if len(doc.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(doc.Variants))
		for key, v := range doc.Variants {
			variant := strings.TrimSpace(key)
			if variant == "" {
				return nil, fmt.Errorf("skins: file %s defines a variant with an empty name", source)
			}
			manifest.Variants[variant] = theme.Variant{
				Tokens: v.Tokens,
				Assets: theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
