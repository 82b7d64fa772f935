package preview

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the theme asset key for the preview stylesheet.
const StylesheetAsset = "preview.stylesheet"

// Selector resolves a theme and variant. Any go-theme ThemeSelector
// satisfies it.
type Selector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// ManifestSelector selects among a fixed set of manifests.
type ManifestSelector struct {
	manifests    map[string]*theme.Manifest
	defaultTheme string
}

// NewManifestSelector returns a selector over manifests. The first manifest is
// used when no theme name is requested.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			continue
		}
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select implements Selector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: selector is nil", ErrThemeNotFound)
	}
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q variant %q", ErrThemeNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// themeView is the template-facing view of a theme selection.
type themeView struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"css_vars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
}

func buildThemeView(selection *theme.Selection) themeView {
	if selection == nil {
		return themeView{}
	}
	view := themeView{Name: selection.Theme, Variant: selection.Variant}
	manifest := selection.Manifest
	if manifest == nil {
		return view
	}

	tokens := copyStringMap(manifest.Tokens)
	prefix := manifest.Assets.Prefix
	files := copyStringMap(manifest.Assets.Files)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			if tokens == nil {
				tokens = make(map[string]string)
			}
			tokens[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, value := range variant.Assets.Files {
			if files == nil {
				files = make(map[string]string)
			}
			files[key] = value
		}
	}

	view.Tokens = tokens
	for key, value := range tokens {
		if !safeCSSToken(key, value) {
			continue
		}
		if view.CSSVars == nil {
			view.CSSVars = make(map[string]string, len(tokens))
		}
		view.CSSVars["--"+key] = value
	}
	view.CSSVarsStyle = cssVarsStyle(view.CSSVars)
	if file := files[StylesheetAsset]; file != "" {
		view.Stylesheet = joinAsset(prefix, file)
	}
	return view
}

// safeCSSToken reports whether a token can be written verbatim into a style
// element.
func safeCSSToken(key, value string) bool {
	if key == "" || strings.ContainsAny(key, " \t\n:;{}<>\"'\\/") {
		return false
	}
	return !strings.ContainsAny(value, ";{}<>\\") && !strings.Contains(value, "/*")
}

func joinAsset(prefix, file string) string {
	if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
		return file
	}
	return strings.TrimSuffix(prefix, "/") + "/" + file
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
