package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine wraps a pongo2 template set and caches compiled templates.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

func newEngine(files fs.FS, extension string) (*engine, error) {
	if files == nil {
		return nil, errors.New("preview: templates fs is nil")
	}
	return &engine{
		set:       pongo2.NewSet("formdesign-preview", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
		extension: extension,
	}, nil
}

func (e *engine) render(name string, data any) ([]byte, error) {
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.template(path)
	if err != nil {
		return nil, err
	}

	ctx, err := toContext(data)
	if err != nil {
		return nil, fmt.Errorf("preview: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return nil, fmt.Errorf("preview: execute template %q: %w", path, err)
	}
	return buf.Bytes(), nil
}

func (e *engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// toContext round-trips data through JSON so templates address values by
// their JSON keys.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return pongo2.Context(out), nil
}
