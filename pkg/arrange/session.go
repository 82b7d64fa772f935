// Package arrange runs interactive reorder sessions over a design. Each round
// asks which block to move and where to drop it, then applies the move with
// the same reorder rules the designer canvas uses.
package arrange

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/reorder"
)

const doneOption = "Done"

// Move records one applied move. Block is -1 for top-level moves, otherwise
// the index of the group whose members were reordered.
type Move struct {
	Block int          `json:"block"`
	Step  reorder.Step `json:"step"`
}

// Session holds the design being arranged and the moves applied so far.
type Session struct {
	driver PromptDriver
	design design.Design
	moves  []Move
}

// NewSession starts a session over a copy of d.
func NewSession(driver PromptDriver, d design.Design) *Session {
	return &Session{driver: driver, design: d.Clone()}
}

// Design returns the current state of the design.
func (s *Session) Design() design.Design {
	return s.design.Clone()
}

// Moves returns the moves applied so far, in order.
func (s *Session) Moves() []Move {
	return append([]Move(nil), s.moves...)
}

// Run prompts until the user picks Done and returns the arranged design.
func (s *Session) Run(ctx context.Context) (design.Design, error) {
	if s.driver == nil {
		return design.Design{}, ErrNoDriver
	}
	for {
		if err := ctx.Err(); err != nil {
			return design.Design{}, err
		}
		if len(s.design.Blocks) == 0 {
			return s.Design(), s.driver.Info(ctx, "Design has no components.")
		}

		options := append(blockOptions(s.design.Blocks), doneOption)
		picked, err := s.driver.Select(ctx, SelectConfig{
			Message:      "Move which component?",
			Options:      options,
			DefaultIndex: len(options) - 1,
		})
		if err != nil {
			return design.Design{}, err
		}
		if picked < 0 || picked >= len(s.design.Blocks) {
			return s.Design(), nil
		}

		if s.design.Blocks[picked].Grouped() {
			inside, err := s.driver.Confirm(ctx, ConfirmConfig{
				Message: "Reorder the members of this group instead?",
			})
			if err != nil {
				return design.Design{}, err
			}
			if inside {
				if err := s.arrangeMembers(ctx, picked); err != nil {
					return design.Design{}, err
				}
				continue
			}
		}

		if err := s.arrangeBlock(ctx, picked); err != nil {
			return design.Design{}, err
		}
	}
}

func (s *Session) arrangeBlock(ctx context.Context, from int) error {
	to, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Drop it at which position?",
		Options:      positionOptions(len(s.design.Blocks)),
		DefaultIndex: from,
	})
	if err != nil {
		return err
	}
	next, moved, err := s.design.MoveBlock(from, to)
	if err != nil {
		return err
	}
	if !moved {
		return s.driver.Info(ctx, "Position unchanged.")
	}
	s.design = next
	s.moves = append(s.moves, Move{Block: -1, Step: reorder.Step{From: from, To: to}})
	return s.driver.Info(ctx, fmt.Sprintf("Moved %s to position %d.", describe(s.design.Blocks[to]), to+1))
}

func (s *Session) arrangeMembers(ctx context.Context, block int) error {
	members := s.design.Blocks[block].Members()
	options := make([]string, len(members))
	for i, member := range members {
		options[i] = fmt.Sprintf("%d. %s", i+1, describeComponent(member))
	}
	from, err := s.driver.Select(ctx, SelectConfig{Message: "Move which member?", Options: options})
	if err != nil {
		return err
	}
	to, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Drop it at which position?",
		Options:      positionOptions(len(members)),
		DefaultIndex: from,
	})
	if err != nil {
		return err
	}
	next, moved, err := s.design.MoveMember(block, from, to)
	if err != nil {
		return err
	}
	if !moved {
		return s.driver.Info(ctx, "Position unchanged.")
	}
	s.design = next
	s.moves = append(s.moves, Move{Block: block, Step: reorder.Step{From: from, To: to}})
	return s.driver.Info(ctx, fmt.Sprintf("Moved member to position %d.", to+1))
}

func blockOptions(blocks []design.Block) []string {
	out := make([]string, len(blocks))
	for i, block := range blocks {
		out[i] = fmt.Sprintf("%d. %s", i+1, describe(block))
	}
	return out
}

func positionOptions(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Position %d", i+1)
	}
	return out
}

func describe(block design.Block) string {
	if header, ok := block.Header(); ok {
		label := strings.TrimSpace(header.Label)
		if label == "" {
			label = "group"
		}
		return fmt.Sprintf("[%s] (%d members)", label, len(block.Members()))
	}
	if len(block) == 0 {
		return "(empty)"
	}
	return describeComponent(block[0])
}

func describeComponent(c design.Component) string {
	label := strings.TrimSpace(c.Label)
	if label == "" {
		label = "untitled"
	}
	if c.Type.IsZero() {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, c.Type)
}
