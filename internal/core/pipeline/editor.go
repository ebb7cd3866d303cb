package pipeline

import (
	"fmt"

	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/utils"
)

// The editor functions implement the canvas edit contract. They take
// the current step list and return the mutated list - callers persist
// the result. None of them fail on malformed graph shapes: invalid
// drags degrade to no-ops so the canvas never ends up in an error
// state over user edited data.

// ConnectSteps applies a drag-connect from sourceKey to targetKey.
// Connecting Start to a step clears the step's dependencies, making it
// a root. Connecting two real steps appends the source key to the
// target's depends_on if not already present. Connections into Start
// or out of End are rejected, as are edges into End (End edges are
// always re-derived from the leaf set).
func ConnectSteps(steps []models.PipelineStep, sourceKey, targetKey string) []models.PipelineStep {
	if targetKey == StartNodeID || sourceKey == EndNodeID || targetKey == EndNodeID {
		return steps
	}

	targetIdx := indexOfKey(steps, targetKey)
	if targetIdx < 0 {
		return steps
	}

	if sourceKey == StartNodeID {
		steps[targetIdx].DependsOn = nil
		return steps
	}

	if indexOfKey(steps, sourceKey) < 0 {
		return steps
	}
	if utils.Contains(steps[targetIdx].DependsOn, sourceKey) {
		return steps
	}

	steps[targetIdx].DependsOn = append(steps[targetIdx].DependsOn, sourceKey)
	return steps
}

// DisconnectSteps removes the edge between two real steps. Edges
// touching the synthetic anchors are derived, not stored, so deleting
// them is a no-op.
func DisconnectSteps(steps []models.PipelineStep, sourceKey, targetKey string) []models.PipelineStep {
	if sourceKey == StartNodeID || sourceKey == EndNodeID || targetKey == StartNodeID || targetKey == EndNodeID {
		return steps
	}

	targetIdx := indexOfKey(steps, targetKey)
	if targetIdx < 0 {
		return steps
	}

	steps[targetIdx].DependsOn = utils.Remove(steps[targetIdx].DependsOn, sourceKey)
	return steps
}

// DeleteStep removes the step and strips its key from every other
// step's depends_on list, then renumbers the order by list position.
func DeleteStep(steps []models.PipelineStep, stepKey string) []models.PipelineStep {
	remaining := utils.Filter(steps, func(step models.PipelineStep) bool {
		return step.StepKey != stepKey
	})

	for i := range remaining {
		remaining[i].DependsOn = utils.Remove(remaining[i].DependsOn, stepKey)
		remaining[i].Order = i
	}

	return remaining
}

// RenameStepKey renames a step key and cascades the rename through
// every depends_on list. Without the cascade the string keyed
// indirection silently breaks every edge into the renamed step.
func RenameStepKey(steps []models.PipelineStep, oldKey, newKey string) []models.PipelineStep {
	if oldKey == newKey || indexOfKey(steps, newKey) >= 0 {
		return steps
	}

	for i := range steps {
		if steps[i].StepKey == oldKey {
			steps[i].StepKey = newKey
		}
		for j, depKey := range steps[i].DependsOn {
			if depKey == oldKey {
				steps[i].DependsOn[j] = newKey
			}
		}
	}

	return steps
}

// ValidateUniqueStepKeys enforces the step key uniqueness invariant at
// the boundary. Nothing downstream guards against duplicates - the key
// lookup would just pick one of them.
func ValidateUniqueStepKeys(steps []models.PipelineStep) error {
	seen := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		if step.StepKey == "" {
			return fmt.Errorf("step %q has an empty step key", step.Name)
		}
		if _, ok := seen[step.StepKey]; ok {
			return fmt.Errorf("duplicate step key %q", step.StepKey)
		}
		seen[step.StepKey] = struct{}{}
	}
	return nil
}

func indexOfKey(steps []models.PipelineStep, stepKey string) int {
	for i, step := range steps {
		if step.StepKey == stepKey {
			return i
		}
	}
	return -1
}
