package arrange_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesign/pkg/arrange"
	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/reorder"
)

type scriptedDriver struct {
	selects  []int
	confirms []bool
	prompts  []string
	infos    []string
	err      error
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg arrange.ConfirmConfig) (bool, error) {
	d.prompts = append(d.prompts, cfg.Message)
	if len(d.confirms) == 0 {
		return false, errors.New("unexpected confirm")
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg arrange.SelectConfig) (int, error) {
	d.prompts = append(d.prompts, cfg.Message)
	if len(d.selects) == 0 {
		if d.err != nil {
			return 0, d.err
		}
		return 0, errors.New("unexpected select")
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func input(label string) design.Component {
	return design.Component{Type: design.Single("input"), Label: label}
}

func sample() design.Design {
	return design.Design{
		Name: "profile",
		Blocks: []design.Block{
			{input("a")},
			{design.Component{Type: design.Single(design.GroupType), Label: "g"}, input("b"), input("c")},
			{input("d")},
		},
	}
}

func labels(d design.Design) []string {
	var out []string
	for _, c := range d.Components() {
		out = append(out, c.Label)
	}
	return out
}

func TestSession_Run(t *testing.T) {
	driver := &scriptedDriver{
		// move block 0 to 2, then group (now index 0) members 1 -> 0, then done.
		selects:  []int{0, 2, 0, 1, 0, 3},
		confirms: []bool{true},
	}
	session := arrange.NewSession(driver, sample())

	got, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"g", "c", "b", "d", "a"}, labels(got)); diff != "" {
		t.Fatalf("arranged order mismatch (-want +got):\n%s", diff)
	}

	wantMoves := []arrange.Move{
		{Block: -1, Step: reorder.Step{From: 0, To: 2}},
		{Block: 0, Step: reorder.Step{From: 1, To: 0}},
	}
	if diff := cmp.Diff(wantMoves, session.Moves()); diff != "" {
		t.Fatalf("moves mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) != 2 {
		t.Fatalf("expected two info messages, got %v", driver.infos)
	}
}

func TestSession_NoOpMove(t *testing.T) {
	driver := &scriptedDriver{selects: []int{2, 2, 3}}
	session := arrange.NewSession(driver, sample())
	got, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(labels(sample()), labels(got)); diff != "" {
		t.Fatalf("expected unchanged design (-want +got):\n%s", diff)
	}
	if len(session.Moves()) != 0 {
		t.Fatalf("no-op must not be recorded")
	}
	if diff := cmp.Diff([]string{"Position unchanged."}, driver.infos); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_Aborted(t *testing.T) {
	driver := &scriptedDriver{err: arrange.ErrAborted}
	_, err := arrange.NewSession(driver, sample()).Run(context.Background())
	if !errors.Is(err, arrange.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	if _, err := arrange.NewSession(nil, sample()).Run(context.Background()); !errors.Is(err, arrange.ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}
}

func TestSession_DoesNotMutateInput(t *testing.T) {
	original := sample()
	driver := &scriptedDriver{selects: []int{0, 2, 3}}
	if _, err := arrange.NewSession(driver, original).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(labels(sample()), labels(original)); diff != "" {
		t.Fatalf("input design mutated (-want +got):\n%s", diff)
	}
}
