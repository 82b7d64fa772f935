package design

import (
	"encoding/json"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeKind enumerates the shapes a component type can take.
type TypeKind uint8

const (
	// TypeUnspecified is the zero value: absent or malformed type data.
	TypeUnspecified TypeKind = iota
	// TypeSingle holds exactly one identifier.
	TypeSingle
	// TypeMultiple holds an ordered set of identifiers.
	TypeMultiple
)

// Type identifies what a component is. It is either a single identifier or a
// set of identifiers; the zero value matches nothing.
type Type struct {
	kind TypeKind
	ids  []string
}

// Single returns a type carrying one identifier.
func Single(id string) Type {
	return Type{kind: TypeSingle, ids: []string{id}}
}

// Multiple returns a type carrying the supplied identifiers. Duplicates are
// dropped while keeping first-seen order.
func Multiple(ids ...string) Type {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return Type{kind: TypeMultiple, ids: out}
}

// Kind reports the variant held by t.
func (t Type) Kind() TypeKind {
	return t.kind
}

// IsZero reports whether t is unspecified.
func (t Type) IsZero() bool {
	return t.kind == TypeUnspecified
}

// IDs returns a copy of the identifiers held by t.
func (t Type) IDs() []string {
	if len(t.ids) == 0 {
		return nil
	}
	return append([]string(nil), t.ids...)
}

// Has reports whether t equals (single) or contains (multiple) id.
func (t Type) Has(id string) bool {
	switch t.kind {
	case TypeSingle:
		return t.ids[0] == id
	case TypeMultiple:
		return slices.Contains(t.ids, id)
	default:
		return false
	}
}

// Equal reports whether both types hold the same variant and identifiers.
func (t Type) Equal(other Type) bool {
	return t.kind == other.kind && slices.Equal(t.ids, other.ids)
}

func (t Type) String() string {
	switch t.kind {
	case TypeSingle:
		return t.ids[0]
	case TypeMultiple:
		return "[" + strings.Join(t.ids, ",") + "]"
	default:
		return ""
	}
}

// MarshalJSON encodes single types as a string, multiple types as an array and
// unspecified types as null.
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case TypeSingle:
		return json.Marshal(t.ids[0])
	case TypeMultiple:
		if t.ids == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.ids)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string or an array. Arrays keep their string
// members only. Any other shape yields the unspecified type without error.
func (t *Type) UnmarshalJSON(data []byte) error {
	*t = Type{}
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = Single(single)
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err == nil {
		*t = Multiple(stringsOnly(items)...)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (t Type) MarshalYAML() (any, error) {
	switch t.kind {
	case TypeSingle:
		return t.ids[0], nil
	case TypeMultiple:
		if t.ids == nil {
			return []string{}, nil
		}
		return t.ids, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML mirrors UnmarshalJSON: strings and sequences decode, other
// nodes leave the type unspecified.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	*t = Type{}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!str" {
			*t = Single(node.Value)
		}
	case yaml.SequenceNode:
		ids := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str" {
				ids = append(ids, item.Value)
			}
		}
		*t = Multiple(ids...)
	}
	return nil
}

func stringsOnly(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Component describes one renderable element on the design canvas. Props
// carries arbitrary UI configuration the designer attaches to the element.
type Component struct {
	Type        Type           `json:"type" yaml:"type"`
	UUID        string         `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Props       map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// IsGroup reports whether the component is a group header.
func (c Component) IsGroup() bool {
	return IsGroupComponent(c)
}

// Clone returns a copy that shares no mutable state with c.
func (c Component) Clone() Component {
	out := c
	out.Type = Type{kind: c.Type.kind, ids: c.Type.IDs()}
	out.Props = cloneProps(c.Props)
	return out
}

func cloneProps(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneProps(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

func cloneComponents(in []Component) []Component {
	if in == nil {
		return nil
	}
	out := make([]Component, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
