// Package design defines the component descriptors a form designer arranges
// on its canvas. A Design is an ordered list of Components; order is render
// order. Component types are a closed variant (single id or id set) so type
// matching is total, and groups are a first-class notion: a sequence is
// grouped when its first component is a group header and at least one member
// follows it.
package design
