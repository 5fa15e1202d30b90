package skins

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-htmlform/pkg/render"
)

// Token keys read from a theme manifest.
const (
	TokenInput    = "htmlform.input"
	TokenFile     = "htmlform.file"
	TokenCheck    = "htmlform.check"
	TokenTextarea = "htmlform.textarea"
	TokenSelect   = "htmlform.select"
	TokenInvalid  = "htmlform.invalid"
	TokenError    = "htmlform.error"
	TokenErrorTag = "htmlform.errorTag"

	// AssetStylesheet names the stylesheet entry in a manifest's assets.
	AssetStylesheet = "stylesheet"
)

// BootstrapManifest describes the Bootstrap skins as a theme with variants
// "4" and "5".
func BootstrapManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "bootstrap",
		Version: "5.3.3",
		Tokens: map[string]string{
			TokenInput:    "form-control",
			TokenFile:     "form-control",
			TokenCheck:    "form-check-input",
			TokenTextarea: "form-control",
			TokenSelect:   "form-select",
			TokenInvalid:  "is-invalid",
			TokenError:    "invalid-feedback",
			TokenErrorTag: "div",
		},
		Assets: theme.Assets{
			Prefix: "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist",
			Files: map[string]string{
				AssetStylesheet: "css/bootstrap.min.css",
			},
		},
		Variants: map[string]theme.Variant{
			"4": {
				Tokens: map[string]string{
					TokenFile:   "form-control-file",
					TokenSelect: "form-control",
				},
				Assets: theme.Assets{
					Prefix: "https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist",
				},
			},
			"5": {},
		},
	}
}

// FromSelection builds a skin from a resolved theme selection.
func FromSelection(sel *theme.Selection) (render.Skin, error) {
	if sel == nil || sel.Manifest == nil {
		return render.Skin{}, fmt.Errorf("skins: selection has no manifest")
	}
	return FromManifest(sel.Manifest, sel.Variant)
}

// FromManifest merges base and variant tokens into a skin. An unknown
// variant is an error; an empty variant uses the base tokens only.
func FromManifest(m *theme.Manifest, variant string) (render.Skin, error) {
	tokens, err := mergedTokens(m, variant)
	if err != nil {
		return render.Skin{}, err
	}
	return render.Skin{
		Name:     skinName(m.Name, variant),
		Input:    tokens[TokenInput],
		File:     tokens[TokenFile],
		Check:    tokens[TokenCheck],
		Textarea: tokens[TokenTextarea],
		Select:   tokens[TokenSelect],
		Invalid:  tokens[TokenInvalid],
		Error:    tokens[TokenError],
		ErrorTag: tokens[TokenErrorTag],
	}, nil
}

// ToManifest converts a skin into a single variant theme manifest.
func ToManifest(skin render.Skin) *theme.Manifest {
	tokens := map[string]string{
		TokenInput:    skin.Input,
		TokenFile:     skin.File,
		TokenCheck:    skin.Check,
		TokenTextarea: skin.Textarea,
		TokenSelect:   skin.Select,
		TokenInvalid:  skin.Invalid,
		TokenError:    skin.Error,
		TokenErrorTag: skin.ErrorTag,
	}
	for key, value := range tokens {
		if strings.TrimSpace(value) == "" {
			delete(tokens, key)
		}
	}
	return &theme.Manifest{Name: skin.Name, Tokens: tokens}
}

// StylesheetURL resolves the stylesheet asset of a selection, preferring the
// variant's prefix and file over the base ones. Empty when none is declared.
func StylesheetURL(sel *theme.Selection) string {
	if sel == nil || sel.Manifest == nil {
		return ""
	}
	prefix := sel.Manifest.Assets.Prefix
	file := sel.Manifest.Assets.Files[AssetStylesheet]
	if v, ok := sel.Manifest.Variants[sel.Variant]; ok {
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		if f := v.Assets.Files[AssetStylesheet]; f != "" {
			file = f
		}
	}
	if file == "" {
		return ""
	}
	if strings.Contains(file, "://") || prefix == "" {
		return file
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
}

func mergedTokens(m *theme.Manifest, variant string) (map[string]string, error) {
	if m == nil {
		return nil, fmt.Errorf("skins: manifest is required")
	}
	tokens := make(map[string]string, len(m.Tokens))
	for key, value := range m.Tokens {
		tokens[key] = value
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return tokens, nil
	}
	v, ok := m.Variants[variant]
	if !ok {
		return nil, fmt.Errorf("skins: theme %q has no variant %q", m.Name, variant)
	}
	for key, value := range v.Tokens {
		tokens[key] = value
	}
	return tokens, nil
}

func skinName(themeName, variant string) string {
	if variant == "" {
		return themeName
	}
	return themeName + variant
}
