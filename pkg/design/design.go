package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdesign/pkg/reorder"
)

var (
	// ErrNotGrouped is returned when a group operation targets a block that is
	// not a grouped sequence.
	ErrNotGrouped = errors.New("design: block is not grouped")
	// ErrInvalidBlock is returned when a block holds no components.
	ErrInvalidBlock = errors.New("design: block is empty")
)

// Block is one top-level entry of a design: either a single component or a
// grouped sequence (header plus members).
type Block []Component

// Grouped reports whether the block is a grouped sequence.
func (b Block) Grouped() bool {
	return IsGrouped(b)
}

// Header returns the group header when the block is grouped.
func (b Block) Header() (Component, bool) {
	if !b.Grouped() {
		return Component{}, false
	}
	return b[0], true
}

// Members returns the components rendered by the block, excluding any group
// header.
func (b Block) Members() []Component {
	if b.Grouped() {
		return b[1:]
	}
	return b
}

// MarshalJSON writes ungrouped single-component blocks as an object and every
// other block as an array.
func (b Block) MarshalJSON() ([]byte, error) {
	if len(b) == 1 && !b[0].IsGroup() {
		return json.Marshal(b[0])
	}
	return json.Marshal([]Component(b))
}

// UnmarshalJSON accepts either an object (single component) or an array. null
// decodes to an empty block, which Validate rejects.
func (b *Block) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*b = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var seq []Component
		if err := json.Unmarshal(data, &seq); err != nil {
			return err
		}
		*b = seq
		return nil
	}
	var single Component
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*b = Block{single}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (b Block) MarshalYAML() (any, error) {
	if len(b) == 1 && !b[0].IsGroup() {
		return b[0], nil
	}
	return []Component(b), nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var seq []Component
		if err := node.Decode(&seq); err != nil {
			return err
		}
		*b = seq
		return nil
	}
	var single Component
	if err := node.Decode(&single); err != nil {
		return err
	}
	*b = Block{single}
	return nil
}

// Design is the document a form designer edits: an ordered list of blocks.
type Design struct {
	Name   string  `json:"name" yaml:"name"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Blocks []Block `json:"components" yaml:"components"`
}

// Clone returns a deep copy of d.
func (d Design) Clone() Design {
	out := d
	out.Blocks = cloneBlocks(d.Blocks)
	return out
}

// Components flattens the design into render order, group headers included.
func (d Design) Components() []Component {
	var out []Component
	for _, block := range d.Blocks {
		out = append(out, block...)
	}
	return out
}

// Validate reports empty blocks.
func (d Design) Validate() error {
	for i, block := range d.Blocks {
		if len(block) == 0 {
			return fmt.Errorf("%w: index %d", ErrInvalidBlock, i)
		}
	}
	return nil
}

// MoveBlock returns a copy of d with block from relocated to index to. The
// boolean is false when the indices are equal and d is returned untouched.
func (d Design) MoveBlock(from, to int) (Design, bool, error) {
	blocks, moved, err := reorder.Move(d.Blocks, from, to)
	if err != nil || !moved {
		return d, false, err
	}
	out := d
	out.Blocks = cloneBlocks(blocks)
	return out, true, nil
}

// MoveMember relocates a member inside the grouped block at index block.
// Member indices exclude the header, which always stays first.
func (d Design) MoveMember(block, from, to int) (Design, bool, error) {
	if block < 0 || block >= len(d.Blocks) {
		return d, false, fmt.Errorf("design: block %d: %w", block, reorder.ErrOutOfRange)
	}
	target := d.Blocks[block]
	if !target.Grouped() {
		return d, false, fmt.Errorf("design: block %d: %w", block, ErrNotGrouped)
	}
	members, moved, err := reorder.Move(target.Members(), from, to)
	if err != nil || !moved {
		return d, false, err
	}
	out := d.Clone()
	regrouped := make(Block, 0, len(target))
	regrouped = append(regrouped, target[0].Clone())
	regrouped = append(regrouped, cloneComponents(members)...)
	out.Blocks[block] = regrouped
	return out, true, nil
}

// GroupBlocks merges the blocks in [from, to] into one grouped block labelled
// label. Members of grouped blocks inside the range are folded into the new
// group; their headers are dropped.
func (d Design) GroupBlocks(from, to int, label string) (Design, error) {
	if from > to {
		from, to = to, from
	}
	if from < 0 || to >= len(d.Blocks) {
		return d, fmt.Errorf("design: group range [%d, %d]: %w", from, to, reorder.ErrOutOfRange)
	}
	var members []Component
	for _, block := range d.Blocks[from : to+1] {
		members = append(members, block.Members()...)
	}

	out := d.Clone()
	blocks := make([]Block, 0, len(d.Blocks)-(to-from))
	blocks = append(blocks, out.Blocks[:from]...)
	blocks = append(blocks, Block(CreateGroup(label, members...)))
	blocks = append(blocks, out.Blocks[to+1:]...)
	out.Blocks = blocks
	return out, nil
}

// UngroupBlock splits the grouped block at index block into one block per
// member.
func (d Design) UngroupBlock(block int) (Design, error) {
	if block < 0 || block >= len(d.Blocks) {
		return d, fmt.Errorf("design: block %d: %w", block, reorder.ErrOutOfRange)
	}
	target := d.Blocks[block]
	if !target.Grouped() {
		return d, fmt.Errorf("design: block %d: %w", block, ErrNotGrouped)
	}

	out := d.Clone()
	members := Ungroup(target)
	blocks := make([]Block, 0, len(d.Blocks)+len(members)-1)
	blocks = append(blocks, out.Blocks[:block]...)
	for _, member := range members {
		blocks = append(blocks, Block{member})
	}
	blocks = append(blocks, out.Blocks[block+1:]...)
	out.Blocks = blocks
	return out, nil
}

// StripUUIDs returns a copy of d with every component UUID cleared.
func (d Design) StripUUIDs() Design {
	out := d
	out.Blocks = make([]Block, len(d.Blocks))
	for i, block := range d.Blocks {
		out.Blocks[i] = StripUUIDs(block)
	}
	return out
}

func cloneBlocks(in []Block) []Block {
	if in == nil {
		return nil
	}
	out := make([]Block, len(in))
	for i, block := range in {
		out[i] = cloneComponents(block)
	}
	return out
}
