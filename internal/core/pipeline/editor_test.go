package pipeline

import (
	"testing"

	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSteps(t *testing.T) {
	t.Run("connecting two steps appends the dependency once", func(t *testing.T) {
		steps := []models.PipelineStep{step("a"), step("b")}

		steps = ConnectSteps(steps, "a", "b")
		assert.Equal(t, []string{"a"}, []string(steps[1].DependsOn))

		// no duplicate edges
		steps = ConnectSteps(steps, "a", "b")
		assert.Equal(t, []string{"a"}, []string(steps[1].DependsOn))
	})

	t.Run("connecting start clears the target's dependencies", func(t *testing.T) {
		steps := []models.PipelineStep{step("a"), step("b", "a")}

		steps = ConnectSteps(steps, StartNodeID, "b")
		assert.Empty(t, steps[1].DependsOn)
	})

	t.Run("connections into start or out of end are no-ops", func(t *testing.T) {
		steps := []models.PipelineStep{step("a"), step("b", "a")}

		before := []string(steps[1].DependsOn)
		steps = ConnectSteps(steps, "b", StartNodeID)
		steps = ConnectSteps(steps, EndNodeID, "b")
		steps = ConnectSteps(steps, "a", EndNodeID)
		assert.Equal(t, before, []string(steps[1].DependsOn))
	})

	t.Run("unknown keys are tolerated", func(t *testing.T) {
		steps := []models.PipelineStep{step("a")}

		steps = ConnectSteps(steps, "ghost", "a")
		assert.Empty(t, steps[0].DependsOn)
	})
}

func TestDisconnectSteps(t *testing.T) {
	steps := []models.PipelineStep{step("a"), step("b", "a")}

	steps = DisconnectSteps(steps, "a", "b")
	assert.Empty(t, steps[1].DependsOn)

	// anchor edges are derived, deleting them changes nothing
	steps = []models.PipelineStep{step("a"), step("b", "a")}
	steps = DisconnectSteps(steps, StartNodeID, "a")
	assert.Equal(t, []string{"a"}, []string(steps[1].DependsOn))
}

func TestDeleteStep(t *testing.T) {
	steps := []models.PipelineStep{step("a"), step("b", "a"), step("c", "a", "b")}

	steps = DeleteStep(steps, "a")
	require.Len(t, steps, 2)

	// a is stripped from every depends_on list
	assert.Empty(t, steps[0].DependsOn)
	assert.Equal(t, []string{"b"}, []string(steps[1].DependsOn))

	// order is renumbered by list position
	assert.Equal(t, 0, steps[0].Order)
	assert.Equal(t, 1, steps[1].Order)
}

func TestRenameStepKey(t *testing.T) {
	t.Run("rename cascades through depends_on lists", func(t *testing.T) {
		steps := []models.PipelineStep{step("a"), step("b", "a"), step("c", "a")}

		steps = RenameStepKey(steps, "a", "bootstrap")
		assert.Equal(t, "bootstrap", steps[0].StepKey)
		assert.Equal(t, []string{"bootstrap"}, []string(steps[1].DependsOn))
		assert.Equal(t, []string{"bootstrap"}, []string(steps[2].DependsOn))
	})

	t.Run("renaming onto an existing key is rejected", func(t *testing.T) {
		steps := []models.PipelineStep{step("a"), step("b", "a")}

		steps = RenameStepKey(steps, "a", "b")
		assert.Equal(t, "a", steps[0].StepKey)
		assert.Equal(t, []string{"a"}, []string(steps[1].DependsOn))
	})
}

func TestValidateUniqueStepKeys(t *testing.T) {
	assert.NoError(t, ValidateUniqueStepKeys([]models.PipelineStep{step("a"), step("b")}))
	assert.Error(t, ValidateUniqueStepKeys([]models.PipelineStep{step("a"), step("a")}))
	assert.Error(t, ValidateUniqueStepKeys([]models.PipelineStep{{Name: "unnamed"}}))
}
