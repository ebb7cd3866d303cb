package pipeline

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/monitoring"
)

// layout constants - must stay stable for pixel compatible rendering
const (
	nodeWidth     = 200.0
	nodeHeight    = 80.0
	horizontalGap = 80.0
	verticalGap   = 40.0
	originX       = 50.0
	originY       = 100.0

	// vertical center line the columns are balanced around
	baselineY = 300.0
)

// CalculateAutoLayout computes a deterministic left-to-right position
// for every step so no manual placement is needed.
//
// Levels are assigned with longest-path leveling over the dependency
// edges (Kahn style, in-degree driven): a step sits one column right of
// its deepest dependency. That keeps a dependency strictly left of
// everything depending on it, even under diamond shapes. The in-degree
// bookkeeping also makes the traversal safe against cyclic depends_on
// lists - steps on a cycle never reach in-degree zero and simply stay
// at level 0 instead of looping forever.
//
// Dangling depends_on keys are ignored. The returned map is keyed by
// step id, not step key.
func CalculateAutoLayout(steps []models.PipelineStep) map[uuid.UUID]models.UIPosition {
	monitoring.PipelineLayoutAmount.Inc()

	positions := make(map[uuid.UUID]models.UIPosition, len(steps))
	if len(steps) == 0 {
		return positions
	}

	byKey := make(map[string]int, len(steps))
	for i, step := range steps {
		byKey[step.StepKey] = i
	}

	// dependents[i] lists the indices of steps depending on step i
	dependents := make(map[int][]int, len(steps))
	inDegree := make([]int, len(steps))
	for i, step := range steps {
		for _, depKey := range step.DependsOn {
			depIdx, ok := byKey[depKey]
			if !ok {
				// dangling reference - render the step as if the
				// dependency never existed
				continue
			}
			dependents[depIdx] = append(dependents[depIdx], i)
			inDegree[i]++
		}
	}

	levels := make([]int, len(steps))
	queue := make([]int, 0, len(steps))
	for i := range steps {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dependent := range dependents[current] {
			if level := levels[current] + 1; level > levels[dependent] {
				levels[dependent] = level
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	// group by level, preserving the input order inside a column
	columns := make(map[int][]int)
	maxLevel := 0
	for i := range steps {
		columns[levels[i]] = append(columns[levels[i]], i)
		if levels[i] > maxLevel {
			maxLevel = levels[i]
		}
	}

	for level := 0; level <= maxLevel; level++ {
		column := columns[level]
		if len(column) == 0 {
			continue
		}

		x := originX + float64(level)*(nodeWidth+horizontalGap)

		columnHeight := float64(len(column))*nodeHeight + float64(len(column)-1)*verticalGap
		y := baselineY - columnHeight/2
		if y < originY {
			y = originY
		}

		for _, idx := range column {
			positions[steps[idx].ID] = models.UIPosition{X: x, Y: y}
			y += nodeHeight + verticalGap
		}
	}

	return positions
}
