package pipeline

import (
	"fmt"

	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

// Synthetic anchor nodes. They are derived on every render and never
// stored - persisting them would let them drift out of sync with the
// depends_on lists they are computed from.
const (
	StartNodeID = "__start__"
	EndNodeID   = "__end__"
)

type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Dashed bool   `json:"dashed"`
}

func newEdge(source, target string) Edge {
	// deterministic id - the canvas diffs edges by id across renders
	return Edge{
		ID:     fmt.Sprintf("%s-%s", source, target),
		Source: source,
		Target: target,
	}
}

// StepsToEdges derives the full edge set of the pipeline canvas:
// Start to every root step, one edge per resolvable (dependency,
// dependent) pair, and every leaf step to End. Dangling depends_on
// keys are dropped silently - the data is user edited and must never
// hard-fail the canvas. An empty pipeline renders a single dashed
// Start to End placeholder.
func StepsToEdges(steps []models.PipelineStep) []Edge {
	if len(steps) == 0 {
		placeholder := newEdge(StartNodeID, EndNodeID)
		placeholder.Dashed = true
		return []Edge{placeholder}
	}

	byKey := make(map[string]models.PipelineStep, len(steps))
	for _, step := range steps {
		byKey[step.StepKey] = step
	}

	// a step is a leaf if no other step lists it as a dependency
	referenced := make(map[string]struct{})
	for _, step := range steps {
		for _, depKey := range step.DependsOn {
			referenced[depKey] = struct{}{}
		}
	}

	edges := make([]Edge, 0, len(steps)+2)

	for _, step := range steps {
		if len(step.DependsOn) == 0 {
			edges = append(edges, newEdge(StartNodeID, step.ID.String()))
		}

		for _, depKey := range step.DependsOn {
			dep, ok := byKey[depKey]
			if !ok {
				continue
			}
			edges = append(edges, newEdge(dep.ID.String(), step.ID.String()))
		}

		if _, ok := referenced[step.StepKey]; !ok {
			edges = append(edges, newEdge(step.ID.String(), EndNodeID))
		}
	}

	return edges
}
