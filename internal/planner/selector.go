// Package planner turns a patient's phase, stage, symptoms, and block
// continuity state into a fully dosed session for today. Selection and
// dosing are pure functions over the catalog; the Engine composes them with
// the safety gate and the fine-grained symptom pass.
package planner

import (
	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/clinical"
)

// Selection names the block chosen for today and why.
type Selection struct {
	Block  clinical.Block
	Reason string
}

// SelectBlock picks today's block. Precedence: a RED flag routes to the
// phase's recovery block when one exists; otherwise a still-matching
// continuity block is kept; otherwise the first stage-eligible block wins,
// falling back to the phase default. A phase with no usable block at all is
// a *catalog.ConfigurationError.
func SelectBlock(cat *catalog.Catalog, phase clinical.Phase, stage clinical.Stage, state *clinical.BlockState, flag clinical.SafetyFlag) (Selection, error) {
	if flag == clinical.FlagRed {
		if block, ok := cat.RecoveryBlockForPhase(phase); ok {
			return Selection{Block: block, Reason: "Recovery block selected due to red safety flag"}, nil
		}
	}

	if state != nil && state.BlockID != "" {
		if block, ok := cat.BlockByID(state.BlockID); ok && block.Phase == phase {
			return Selection{Block: block, Reason: "Continuing current block"}, nil
		}
	}

	if blocks := cat.BlocksForPhaseAndStage(phase, stage); len(blocks) > 0 {
		return Selection{Block: blocks[0], Reason: "Selected block matching phase and stage"}, nil
	}

	if block, ok := cat.DefaultBlockForPhase(phase); ok {
		return Selection{Block: block, Reason: "Selected default block for phase"}, nil
	}

	return Selection{}, &catalog.ConfigurationError{Phase: phase, Stage: stage}
}
