package pipeline

import (
	"fmt"
	"testing"

	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edgeIDs(edges []Edge) []string {
	ids := make([]string, len(edges))
	for i, edge := range edges {
		ids[i] = edge.ID
	}
	return ids
}

func TestStepsToEdges(t *testing.T) {
	t.Run("diamond roots and leaves", func(t *testing.T) {
		a := step("a")
		b := step("b", "a")
		c := step("c", "a")
		d := step("d", "b", "c")
		steps := []models.PipelineStep{a, b, c, d}

		edges := StepsToEdges(steps)
		ids := edgeIDs(edges)

		assert.Contains(t, ids, fmt.Sprintf("%s-%s", StartNodeID, a.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", a.ID, b.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", a.ID, c.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", b.ID, d.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", c.ID, d.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", d.ID, EndNodeID))

		// b, c and d are not roots, a is not a leaf
		assert.NotContains(t, ids, fmt.Sprintf("%s-%s", StartNodeID, b.ID))
		assert.NotContains(t, ids, fmt.Sprintf("%s-%s", StartNodeID, d.ID))
		assert.NotContains(t, ids, fmt.Sprintf("%s-%s", a.ID, EndNodeID))
	})

	t.Run("edge ids are deterministic across calls", func(t *testing.T) {
		steps := []models.PipelineStep{step("a"), step("b", "a"), step("c", "a")}

		first := edgeIDs(StepsToEdges(steps))
		second := edgeIDs(StepsToEdges(steps))
		assert.ElementsMatch(t, first, second)
	})

	t.Run("empty pipeline renders the dashed placeholder", func(t *testing.T) {
		edges := StepsToEdges(nil)
		require.Len(t, edges, 1)
		assert.Equal(t, StartNodeID, edges[0].Source)
		assert.Equal(t, EndNodeID, edges[0].Target)
		assert.True(t, edges[0].Dashed)
	})

	t.Run("dangling dependency keys are dropped silently", func(t *testing.T) {
		orphan := step("orphan", "nonexistent-key")

		edges := StepsToEdges([]models.PipelineStep{orphan})
		for _, edge := range edges {
			assert.NotContains(t, edge.ID, "nonexistent-key")
		}
		// the step is not a root (it has a depends_on entry), but it is
		// a leaf - only the End edge survives
		ids := edgeIDs(edges)
		assert.NotContains(t, ids, fmt.Sprintf("%s-%s", StartNodeID, orphan.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", orphan.ID, EndNodeID))
	})

	t.Run("a single step is both root and leaf", func(t *testing.T) {
		only := step("only")

		ids := edgeIDs(StepsToEdges([]models.PipelineStep{only}))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", StartNodeID, only.ID))
		assert.Contains(t, ids, fmt.Sprintf("%s-%s", only.ID, EndNodeID))
	})
}
