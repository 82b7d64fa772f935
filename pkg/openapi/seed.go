// Package openapi seeds designs from OpenAPI 3 documents so a designer can
// start from an API operation's request body instead of an empty canvas.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formdesign/pkg/design"
)

var (
	// ErrOperationNotFound is returned when the requested operation id is absent.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable request schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// Component type identifiers produced by Seed.
const (
	TypeInput    = "input"
	TypeEmail    = "email"
	TypeDate     = "date"
	TypeTextarea = "textarea"
	TypeNumber   = "number"
	TypeSwitch   = "switch"
	TypeSelect   = "select"
	TypeMultiple = "multiple"
)

// textareaThreshold is the maxLength above which strings render as textareas.
const textareaThreshold = 255

var mediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// Option configures Seed.
type Option func(*config)

type config struct {
	validate bool
}

// WithValidation validates the document before seeding.
func WithValidation() Option {
	return func(cfg *config) {
		cfg.validate = true
	}
}

// Seed loads an OpenAPI document and converts the request body of operationID
// into a design. Required properties come first, then the rest, each run in
// name order. Object properties with nested properties become groups.
func Seed(ctx context.Context, data []byte, operationID string, options ...Option) (design.Design, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return design.Design{}, err
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return design.Design{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return design.Design{}, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return design.Design{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return design.Design{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	title := strings.TrimSpace(op.Summary)
	if title == "" {
		title = operationID
	}
	return design.Design{
		Name:   operationID,
		Title:  title,
		Blocks: blocksFor(schema),
	}, nil
}

// Operations lists the operation ids of a document in sorted order.
func Operations(ctx context.Context, data []byte) ([]string, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	var ids []string
	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			for _, op := range item.Operations() {
				if op != nil && op.OperationID != "" {
					ids = append(ids, op.OperationID)
				}
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func blocksFor(schema *openapi3.Schema) []design.Block {
	var blocks []design.Block
	for _, name := range orderedProperties(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		required := slices.Contains(schema.Required, name)

		if isType(prop, openapi3.TypeObject) && len(prop.Properties) > 0 {
			var members []design.Component
			for _, nested := range orderedProperties(prop) {
				nestedRef := prop.Properties[nested]
				if nestedRef == nil || nestedRef.Value == nil {
					continue
				}
				members = append(members, componentFor(name+"."+nested, nestedRef.Value, slices.Contains(prop.Required, nested)))
			}
			if len(members) == 0 {
				continue
			}
			blocks = append(blocks, design.Block(design.CreateGroup(labelFor(name, prop), members...)))
			continue
		}
		blocks = append(blocks, design.Block{componentFor(name, prop, required)})
	}
	return blocks
}

func orderedProperties(schema *openapi3.Schema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri := slices.Contains(schema.Required, names[i])
		rj := slices.Contains(schema.Required, names[j])
		if ri != rj {
			return ri
		}
		return names[i] < names[j]
	})
	return names
}

func componentFor(path string, prop *openapi3.Schema, required bool) design.Component {
	props := map[string]any{
		"name":     path,
		"required": required,
	}
	if prop.Default != nil {
		props["default"] = prop.Default
	}
	if len(prop.Enum) > 0 {
		props["options"] = append([]any(nil), prop.Enum...)
	}
	if prop.MinLength != 0 {
		props["minLength"] = prop.MinLength
	}
	if prop.MaxLength != nil {
		props["maxLength"] = *prop.MaxLength
	}
	if prop.Min != nil {
		props["min"] = *prop.Min
	}
	if prop.Max != nil {
		props["max"] = *prop.Max
	}
	if prop.Pattern != "" {
		props["pattern"] = prop.Pattern
	}

	return design.Component{
		Type:        typeFor(prop),
		Label:       labelFor(path[strings.LastIndex(path, ".")+1:], prop),
		Description: prop.Description,
		Props:       props,
	}
}

func typeFor(prop *openapi3.Schema) design.Type {
	switch {
	case len(prop.Enum) > 0:
		return design.Single(TypeSelect)
	case isType(prop, openapi3.TypeBoolean):
		return design.Single(TypeSwitch)
	case isType(prop, openapi3.TypeInteger), isType(prop, openapi3.TypeNumber):
		return design.Single(TypeNumber)
	case isType(prop, openapi3.TypeArray):
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return design.Multiple(TypeSelect, TypeMultiple)
		}
		return design.Multiple(TypeInput, TypeMultiple)
	}

	switch strings.ToLower(prop.Format) {
	case "email":
		return design.Single(TypeEmail)
	case "date", "date-time":
		return design.Single(TypeDate)
	case "textarea":
		return design.Single(TypeTextarea)
	}
	if prop.MaxLength != nil && *prop.MaxLength > textareaThreshold {
		return design.Single(TypeTextarea)
	}
	return design.Single(TypeInput)
}

func isType(prop *openapi3.Schema, name string) bool {
	return prop.Type != nil && prop.Type.Is(name)
}

func labelFor(name string, prop *openapi3.Schema) string {
	if title := strings.TrimSpace(prop.Title); title != "" {
		return title
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
