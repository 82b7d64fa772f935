package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/sanitize"
	"github.com/goliatone/go-formdesign/pkg/widgets"
)

var (
	// ErrThemeNotFound is returned when a requested theme or variant is unknown.
	ErrThemeNotFound = errors.New("preview: theme not found")
)

const (
	defaultTemplate  = "preview"
	defaultExtension = ".tpl"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	template  string
	extension string
	selector  Selector
	widgets   *widgets.Registry
}

// WithWidgetRegistry overrides how components map to HTML controls.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithTemplatesFS replaces the embedded templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate overrides the entry template name (without extension).
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.template = trimmed
		}
	}
}

// WithThemeSelector enables theming through the supplied selector.
func WithThemeSelector(selector Selector) Option {
	return func(cfg *config) {
		cfg.selector = selector
	}
}

// RenderOptions carries per-call settings.
type RenderOptions struct {
	Theme   string
	Variant string
	// Selected marks a component UUID as active; the page scrolls it into view.
	Selected string
}

// Renderer turns designs into HTML previews.
type Renderer struct {
	engine   *engine
	template string
	selector Selector
	widgets  *widgets.Registry
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		template:  defaultTemplate,
		extension: defaultExtension,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates == nil {
		cfg.templates = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	eng, err := newEngine(cfg.templates, cfg.extension)
	if err != nil {
		return nil, err
	}
	return &Renderer{engine: eng, template: cfg.template, selector: cfg.selector, widgets: cfg.widgets}, nil
}

// Render produces the HTML preview for d.
func (r *Renderer) Render(ctx context.Context, d design.Design, opts RenderOptions) ([]byte, error) {
	if r == nil || r.engine == nil {
		return nil, errors.New("preview: renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := themeView{}
	if r.selector != nil {
		selection, err := r.selector.Select(opts.Theme, opts.Variant)
		if err != nil {
			return nil, fmt.Errorf("preview: select theme: %w", err)
		}
		view = buildThemeView(selection)
	} else if opts.Theme != "" {
		return nil, fmt.Errorf("%w: %q (no selector configured)", ErrThemeNotFound, opts.Theme)
	}

	return r.engine.render(r.template, pageView{
		Design:   designHeader{Name: d.Name, Title: d.Title},
		Blocks:   r.blockViews(d.Blocks, opts.Selected),
		Theme:    view,
		Selected: opts.Selected,
	})
}

type pageView struct {
	Design   designHeader `json:"design"`
	Blocks   []blockView  `json:"blocks"`
	Theme    themeView    `json:"theme"`
	Selected string       `json:"selected,omitempty"`
}

type designHeader struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

type blockView struct {
	Grouped bool            `json:"grouped"`
	Header  componentView   `json:"header"`
	Members []componentView `json:"members"`
}

type componentView struct {
	UUID        string         `json:"uuid,omitempty"`
	Label       string         `json:"label,omitempty"`
	Description string         `json:"description,omitempty"`
	Types       []string       `json:"types"`
	Widget      string         `json:"widget"`
	Control     string         `json:"control"`
	InputType   string         `json:"input_type,omitempty"`
	Name        string         `json:"name,omitempty"`
	Options     []any          `json:"options,omitempty"`
	Required    bool           `json:"required"`
	Selected    bool           `json:"selected"`
	Props       map[string]any `json:"props,omitempty"`
}

func (r *Renderer) blockViews(blocks []design.Block, selected string) []blockView {
	out := make([]blockView, 0, len(blocks))
	for _, block := range blocks {
		view := blockView{Grouped: block.Grouped()}
		if header, ok := block.Header(); ok {
			view.Header = r.componentView(header, selected)
		}
		for _, member := range block.Members() {
			view.Members = append(view.Members, r.componentView(member, selected))
		}
		out = append(out, view)
	}
	return out
}

func (r *Renderer) componentView(c design.Component, selected string) componentView {
	view := componentView{
		UUID:        c.UUID,
		Label:       c.Label,
		Description: sanitize.Description(c.Description),
		Types:       append([]string{}, c.Type.IDs()...),
		Props:       c.Props,
		Selected:    selected != "" && c.UUID == selected,
	}
	if name, ok := c.Props["name"].(string); ok {
		view.Name = name
	}
	if required, ok := c.Props["required"].(bool); ok {
		view.Required = required
	}
	if options, ok := c.Props["options"].([]any); ok {
		view.Options = options
	}
	view.Widget, _ = r.widgets.Resolve(c)
	view.Control, view.InputType = controlFor(view.Widget)
	return view
}

func controlFor(widget string) (control, inputType string) {
	switch widget {
	case widgets.WidgetTextarea:
		return "textarea", ""
	case widgets.WidgetSelect:
		return "select", ""
	case widgets.WidgetCheckbox, widgets.WidgetNumber, widgets.WidgetEmail, widgets.WidgetDate:
		return "input", widget
	default:
		return "input", "text"
	}
}
