package form

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// LoadMessagesFS walks fsys and parses JSON/YAML message catalogs. A file
// declares its locale with a top-level "locale" key; otherwise the file name
// without extension is used.
func LoadMessagesFS(fsys fs.FS) (map[string]Catalog, error) {
	catalogs := make(map[string]Catalog)
	if fsys == nil {
		return catalogs, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("form: read %s: %w", p, err)
		}

		doc, err := parseCatalog(data, p)
		if err != nil {
			return err
		}

		locale := strings.TrimSpace(doc.Locale)
		if locale == "" {
			base := path.Base(p)
			locale = strings.TrimSuffix(base, path.Ext(base))
		}

		catalog := catalogs[locale]
		if catalog == nil {
			catalog = make(Catalog, len(doc.Messages))
			catalogs[locale] = catalog
		}
		for code, text := range doc.Messages {
			key := ErrorCode(strings.TrimSpace(code))
			if key == "" {
				return fmt.Errorf("form: file %s defines a message with an empty code", p)
			}
			if _, exists := catalog[key]; exists {
				return fmt.Errorf("form: duplicate message %q for locale %q (file %s)", key, locale, p)
			}
			catalog[key] = text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalogs, nil
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var doc catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("form: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return catalogFile{}, fmt.Errorf("form: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
