// Package formdesign is the entry point for the form designer toolkit. It
// re-exports the operations most callers need: reordering components,
// detecting and building groups, loading design documents and rendering
// previews. The subpackages under pkg/ hold the full APIs.
package formdesign

import (
	"context"

	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/document"
	"github.com/goliatone/go-formdesign/pkg/preview"
	"github.com/goliatone/go-formdesign/pkg/reorder"
)

// ErrOutOfRange is returned by Reorder for indices outside the sequence.
var ErrOutOfRange = reorder.ErrOutOfRange

// GroupType is the reserved type identifier of group header components.
const GroupType = design.GroupType

// Reorder moves the element at from to to and returns a new slice. moved is
// false, and the result nil, when the indices are equal.
func Reorder[T any](seq []T, from, to int) (result []T, moved bool, err error) {
	return reorder.Move(seq, from, to)
}

// IsGrouped reports whether components form a grouped block.
func IsGrouped(components []design.Component) bool {
	return design.IsGrouped(components)
}

// MatchesType reports whether a component's type is, or contains, expected.
func MatchesType(component design.Component, expected string) bool {
	return design.MatchesType(component, expected)
}

// CreateGroup wraps members in a new group with a fresh header.
func CreateGroup(label string, members ...design.Component) []design.Component {
	return design.CreateGroup(label, members...)
}

// StripUUIDs clears component UUIDs on a copy of components.
func StripUUIDs(components []design.Component) []design.Component {
	return design.StripUUIDs(components)
}

// LoadDesign reads a JSON or YAML design document from disk.
func LoadDesign(path string) (design.Design, error) {
	return document.LoadFile(path)
}

// RenderPreview renders d with the default preview templates.
func RenderPreview(ctx context.Context, d design.Design, options ...preview.Option) ([]byte, error) {
	renderer, err := preview.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, d, preview.RenderOptions{})
}
