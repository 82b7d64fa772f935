package design

import "github.com/google/uuid"

// GroupType is the reserved type identifier of a group header component.
const GroupType = "__design-component-group__"

// MatchesType reports whether the component's type equals expected (single
// types) or contains it (multiple types). Unspecified types never match.
func MatchesType(c Component, expected string) bool {
	return c.Type.Has(expected)
}

// IsGroupComponent reports whether c is a group header.
func IsGroupComponent(c Component) bool {
	return MatchesType(c, GroupType)
}

// IsGrouped reports whether seq is a grouped block: a group header followed by
// at least one member.
func IsGrouped(seq []Component) bool {
	if len(seq) < 2 {
		return false
	}
	return IsGroupComponent(seq[0])
}

// NewGroup returns a group header with a fresh UUID.
func NewGroup(label string) Component {
	return Component{
		Type:  Single(GroupType),
		UUID:  uuid.NewString(),
		Label: label,
	}
}

// CreateGroup returns a new sequence made of a fresh group header followed by
// copies of members. Members that are themselves group headers are skipped so
// groups never nest.
func CreateGroup(label string, members ...Component) []Component {
	out := make([]Component, 0, len(members)+1)
	out = append(out, NewGroup(label))
	for _, member := range members {
		if member.IsGroup() {
			continue
		}
		out = append(out, member.Clone())
	}
	return out
}

// Ungroup returns copies of the members of a grouped sequence. Sequences that
// are not grouped are returned as a copy, unchanged.
func Ungroup(seq []Component) []Component {
	if !IsGrouped(seq) {
		return cloneComponents(seq)
	}
	return cloneComponents(seq[1:])
}

// StripUUIDs returns a copy of seq with every UUID cleared.
func StripUUIDs(seq []Component) []Component {
	out := cloneComponents(seq)
	for i := range out {
		out[i].UUID = ""
	}
	return out
}
