package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdesign/pkg/design"
)

var (
	// ErrEmptyDocument is returned for documents without content.
	ErrEmptyDocument = errors.New("document: empty document")
	// ErrDuplicateDesign is returned when two files declare the same design name.
	ErrDuplicateDesign = errors.New("document: duplicate design")
	// ErrUnknownFormat is returned for unsupported encodings.
	ErrUnknownFormat = errors.New("document: unknown format")
)

// Format selects the encoding used when writing designs.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves user input such as "yml" or "JSON".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a design from JSON or YAML. source is only used in errors.
// Designs without a name take the base name of source.
func Parse(data []byte, source string) (design.Design, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return design.Design{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var doc design.Design
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = design.Design{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return design.Design{}, fmt.Errorf("document: parse %s: invalid JSON (%w) or YAML (%w)", source, err, yamlErr)
		}
	}

	if strings.TrimSpace(doc.Name) == "" {
		base := path.Base(filepath.ToSlash(source))
		doc.Name = strings.TrimSuffix(base, path.Ext(base))
	}
	if err := doc.Validate(); err != nil {
		return design.Design{}, fmt.Errorf("document: %s: %w", source, err)
	}
	return Sanitize(doc), nil
}

// LoadFile reads a design from disk.
func LoadFile(name string) (design.Design, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return design.Design{}, fmt.Errorf("document: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// LoadFS reads a design from fsys.
func LoadFS(fsys fs.FS, name string) (design.Design, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return design.Design{}, fmt.Errorf("document: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// LoadDir walks fsys and loads every JSON/YAML design, keyed by design name.
func LoadDir(fsys fs.FS) (map[string]design.Design, error) {
	out := make(map[string]design.Design)
	if fsys == nil {
		return out, nil
	}

	sources := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDesignFile(name) {
			return nil
		}
		doc, err := LoadFS(fsys, name)
		if err != nil {
			return err
		}
		if prev, exists := sources[doc.Name]; exists {
			return fmt.Errorf("%w: %q (files %s and %s)", ErrDuplicateDesign, doc.Name, prev, name)
		}
		sources[doc.Name] = name
		out[doc.Name] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Names returns the sorted keys of a LoadDir result.
func Names(designs map[string]design.Design) []string {
	names := make([]string, 0, len(designs))
	for name := range designs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode serialises d in the requested format.
func Encode(d design.Design, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("document: encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("document: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("document: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile encodes d using the format implied by name and writes it.
func WriteFile(name string, d design.Design) error {
	data, err := Encode(d, FormatFromPath(name))
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("document: write %s: %w", name, err)
	}
	return nil
}

func isDesignFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
