package design_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/reorder"
)

func named(label string) design.Component {
	return design.Component{Type: design.Single("input"), Label: label}
}

func labels(blocks []design.Block) [][]string {
	out := make([][]string, len(blocks))
	for i, block := range blocks {
		for _, c := range block {
			out[i] = append(out[i], c.Label)
		}
	}
	return out
}

func sampleDesign() design.Design {
	return design.Design{
		Name: "signup",
		Blocks: []design.Block{
			{named("a")},
			{named("b")},
			{design.Component{Type: design.Single(design.GroupType), Label: "g"}, named("c"), named("d")},
			{named("e")},
		},
	}
}

func TestDesign_MoveBlock(t *testing.T) {
	d := sampleDesign()
	moved, changed, err := d.MoveBlock(0, 2)
	if err != nil {
		t.Fatalf("move block: %v", err)
	}
	if !changed {
		t.Fatalf("expected change")
	}
	want := [][]string{{"b"}, {"g", "c", "d"}, {"a"}, {"e"}}
	if diff := cmp.Diff(want, labels(moved.Blocks)); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(labels(sampleDesign().Blocks), labels(d.Blocks)); diff != "" {
		t.Fatalf("original design mutated (-want +got):\n%s", diff)
	}

	_, changed, err = d.MoveBlock(1, 1)
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
	}

	if _, _, err := d.MoveBlock(0, 9); !errors.Is(err, reorder.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDesign_MoveMember(t *testing.T) {
	d := sampleDesign()
	moved, changed, err := d.MoveMember(2, 1, 0)
	if err != nil || !changed {
		t.Fatalf("move member: changed=%v err=%v", changed, err)
	}
	if diff := cmp.Diff([]string{"g", "d", "c"}, labels(moved.Blocks)[2]); diff != "" {
		t.Fatalf("group mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := d.MoveMember(0, 0, 1); !errors.Is(err, design.ErrNotGrouped) {
		t.Fatalf("expected ErrNotGrouped, got %v", err)
	}
	if _, _, err := d.MoveMember(2, 0, 2); !errors.Is(err, reorder.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDesign_GroupAndUngroupBlocks(t *testing.T) {
	d := sampleDesign()
	grouped, err := d.GroupBlocks(3, 1, "merged")
	if err != nil {
		t.Fatalf("group blocks: %v", err)
	}
	want := [][]string{{"a"}, {"merged", "b", "c", "d", "e"}}
	if diff := cmp.Diff(want, labels(grouped.Blocks)); diff != "" {
		t.Fatalf("grouped mismatch (-want +got):\n%s", diff)
	}
	if !grouped.Blocks[1].Grouped() {
		t.Fatalf("expected merged block to be grouped")
	}

	ungrouped, err := grouped.UngroupBlock(1)
	if err != nil {
		t.Fatalf("ungroup block: %v", err)
	}
	want = [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}
	if diff := cmp.Diff(want, labels(ungrouped.Blocks)); diff != "" {
		t.Fatalf("ungrouped mismatch (-want +got):\n%s", diff)
	}

	if _, err := d.UngroupBlock(0); !errors.Is(err, design.ErrNotGrouped) {
		t.Fatalf("expected ErrNotGrouped, got %v", err)
	}
	if _, err := d.GroupBlocks(-1, 2, "x"); !errors.Is(err, reorder.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDesign_Components(t *testing.T) {
	got := []string{}
	for _, c := range sampleDesign().Components() {
		got = append(got, c.Label)
	}
	if diff := cmp.Diff([]string{"a", "b", "g", "c", "d", "e"}, got); diff != "" {
		t.Fatalf("flattened order mismatch (-want +got):\n%s", diff)
	}
}

func TestDesign_Validate(t *testing.T) {
	d := sampleDesign()
	if err := d.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	d.Blocks = append(d.Blocks, design.Block{})
	if err := d.Validate(); !errors.Is(err, design.ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}
}

func TestBlock_NullEntry(t *testing.T) {
	var fromJSON design.Design
	if err := json.Unmarshal([]byte(`{"name":"x","components":[{"type":"input"},null]}`), &fromJSON); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if len(fromJSON.Blocks) != 2 || fromJSON.Blocks[1] != nil {
		t.Fatalf("expected null entry to decode as an empty block, got %#v", fromJSON.Blocks)
	}
	if err := fromJSON.Validate(); !errors.Is(err, design.ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}

	var fromYAML design.Design
	if err := yaml.Unmarshal([]byte("name: x\ncomponents:\n  - type: input\n  - ~\n"), &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if err := fromYAML.Validate(); !errors.Is(err, design.ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}
}

func TestBlock_Encoding(t *testing.T) {
	payload := `{"name":"signup","components":[{"type":"input","label":"a"},[{"type":"__design-component-group__","label":"g"},{"type":"input","label":"c"}]]}`

	var d design.Design
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if diff := cmp.Diff([][]string{{"a"}, {"g", "c"}}, labels(d.Blocks)); diff != "" {
		t.Fatalf("json blocks mismatch (-want +got):\n%s", diff)
	}
	if !d.Blocks[1].Grouped() {
		t.Fatalf("expected second block grouped")
	}

	encoded, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if string(encoded) != payload {
		t.Fatalf("json encoding mismatch:\nwant %s\ngot  %s", payload, encoded)
	}

	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	var fromYAML design.Design
	if err := yaml.Unmarshal(out, &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if diff := cmp.Diff(d, fromYAML); diff != "" {
		t.Fatalf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDesign_StripUUIDs(t *testing.T) {
	d := design.Design{Blocks: []design.Block{design.Block(design.CreateGroup("g", named("a")))}}
	stripped := d.StripUUIDs()
	if stripped.Blocks[0][0].UUID != "" {
		t.Fatalf("expected UUID cleared")
	}
	if d.Blocks[0][0].UUID == "" {
		t.Fatalf("original UUID must be preserved")
	}
}
