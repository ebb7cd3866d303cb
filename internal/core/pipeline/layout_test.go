package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(key string, dependsOn ...string) models.PipelineStep {
	return models.PipelineStep{
		Model:     models.Model{ID: uuid.New()},
		StepKey:   key,
		Name:      key,
		DependsOn: dependsOn,
	}
}

func TestCalculateAutoLayout(t *testing.T) {
	t.Run("diamond uses longest path leveling", func(t *testing.T) {
		a := step("a")
		b := step("b", "a")
		c := step("c", "a")
		d := step("d", "b", "c")

		positions := CalculateAutoLayout([]models.PipelineStep{a, b, c, d})
		require.Len(t, positions, 4)

		// level(a)=0, level(b)=level(c)=1, level(d)=2 - d must sit
		// strictly right of both b and c, not at min(b,c)+1
		assert.Less(t, positions[a.ID].X, positions[b.ID].X)
		assert.Equal(t, positions[b.ID].X, positions[c.ID].X)
		assert.Greater(t, positions[d.ID].X, positions[b.ID].X)
		assert.Greater(t, positions[d.ID].X, positions[c.ID].X)
	})

	t.Run("deep chain beats a shortcut edge", func(t *testing.T) {
		a := step("a")
		b := step("b", "a")
		// c depends on both the root and the middle of the chain
		c := step("c", "a", "b")

		positions := CalculateAutoLayout([]models.PipelineStep{a, b, c})
		assert.Greater(t, positions[c.ID].X, positions[b.ID].X)
	})

	t.Run("columns respect the layout constants", func(t *testing.T) {
		a := step("a")
		b := step("b", "a")

		positions := CalculateAutoLayout([]models.PipelineStep{a, b})
		assert.Equal(t, originX, positions[a.ID].X)
		assert.Equal(t, originX+nodeWidth+horizontalGap, positions[b.ID].X)
	})

	t.Run("column stacking is vertically centered and clamped", func(t *testing.T) {
		a := step("a")
		b := step("b")
		c := step("c")

		positions := CalculateAutoLayout([]models.PipelineStep{a, b, c})
		assert.GreaterOrEqual(t, positions[a.ID].Y, originY)
		assert.Equal(t, positions[a.ID].Y+nodeHeight+verticalGap, positions[b.ID].Y)
		assert.Equal(t, positions[b.ID].Y+nodeHeight+verticalGap, positions[c.ID].Y)
	})

	t.Run("cyclic dependencies terminate and stay at level zero", func(t *testing.T) {
		a := step("a", "b")
		b := step("b", "a")
		root := step("root")

		positions := CalculateAutoLayout([]models.PipelineStep{a, b, root})
		require.Len(t, positions, 3)
		// cycle participants never reach in-degree zero, default level 0
		assert.Equal(t, originX, positions[a.ID].X)
		assert.Equal(t, originX, positions[b.ID].X)
		assert.Equal(t, originX, positions[root.ID].X)
	})

	t.Run("dangling dependencies render as root", func(t *testing.T) {
		orphan := step("orphan", "nonexistent-key")

		positions := CalculateAutoLayout([]models.PipelineStep{orphan})
		assert.Equal(t, originX, positions[orphan.ID].X)
	})

	t.Run("empty input yields an empty map", func(t *testing.T) {
		positions := CalculateAutoLayout(nil)
		assert.Empty(t, positions)
	})
}
