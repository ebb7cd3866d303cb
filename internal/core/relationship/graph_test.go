package relationship

import (
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
)

func rel(relationshipType models.RelationshipType, source, target uuid.UUID) models.AssetRelationship {
	return models.AssetRelationship{
		Model:           models.Model{ID: uuid.New()},
		Type:            relationshipType,
		SourceAssetID:   source,
		SourceAssetName: "source",
		SourceAssetKind: models.AssetKindService,
		TargetAssetID:   target,
		TargetAssetName: "target",
		TargetAssetKind: models.AssetKindDatabase,
		ImpactWeight:    5,
	}
}

func TestBuildGraph(t *testing.T) {
	x := uuid.New()
	y := uuid.New()
	z := uuid.New()

	t.Run("deduplicates nodes by asset id", func(t *testing.T) {
		graph := BuildGraph([]models.AssetRelationship{
			rel(models.RelationshipDependsOn, x, y),
			rel(models.RelationshipConnectsTo, x, z),
		}, nil)

		assert.Len(t, graph.Nodes, 3)
		assert.Len(t, graph.Edges, 2)

		occurrences := 0
		for _, node := range graph.Nodes {
			if node.ID == x {
				occurrences++
			}
		}
		assert.Equal(t, 1, occurrences)
	})

	t.Run("first write wins on conflicting node data", func(t *testing.T) {
		first := rel(models.RelationshipDependsOn, x, y)
		first.SourceAssetName = "old-name"
		second := rel(models.RelationshipConnectsTo, x, z)
		second.SourceAssetName = "new-name"

		graph := BuildGraph([]models.AssetRelationship{first, second}, nil)
		for _, node := range graph.Nodes {
			if node.ID == x {
				assert.Equal(t, "old-name", node.Name)
			}
		}
	})

	t.Run("edge label replaces underscores with spaces", func(t *testing.T) {
		graph := BuildGraph([]models.AssetRelationship{rel(models.RelationshipStoresDataIn, x, y)}, nil)
		assert.Equal(t, "stores data in", graph.Edges[0].Label)
	})

	t.Run("filter restricts to source or target matches", func(t *testing.T) {
		graph := BuildGraph([]models.AssetRelationship{
			rel(models.RelationshipDependsOn, x, y),
			rel(models.RelationshipDependsOn, y, z),
			rel(models.RelationshipDependsOn, z, x),
		}, &x)

		assert.Len(t, graph.Edges, 2)
		for _, edge := range graph.Edges {
			assert.True(t, edge.Source == x || edge.Target == x)
		}
	})

	t.Run("empty input yields an empty graph", func(t *testing.T) {
		graph := BuildGraph(nil, nil)
		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
	})
}

func TestImpactAnalysis(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	// a depends_on b depends_on c
	chain := []models.AssetRelationship{
		rel(models.RelationshipDependsOn, a, b),
		rel(models.RelationshipDependsOn, b, c),
	}

	t.Run("dependents are single hop", func(t *testing.T) {
		assert.Equal(t, []uuid.UUID{b}, DependentAssets(chain, c))
	})

	t.Run("dependencies are single hop", func(t *testing.T) {
		assert.Equal(t, []uuid.UUID{b}, Dependencies(chain, a))
	})

	t.Run("only depends_on edges count", func(t *testing.T) {
		withNoise := append([]models.AssetRelationship{}, chain...)
		withNoise = append(withNoise, rel(models.RelationshipConnectsTo, a, c))
		assert.Equal(t, []uuid.UUID{b}, DependentAssets(withNoise, c))
	})

	t.Run("transitive impact walks the whole chain", func(t *testing.T) {
		analysis := AnalyzeImpact(chain, c)
		assert.Equal(t, []uuid.UUID{b}, analysis.DirectDependents)
		assert.ElementsMatch(t, []uuid.UUID{a, b}, analysis.TransitivelyImpacted)
	})

	t.Run("transitive impact terminates on cycles", func(t *testing.T) {
		cyclic := []models.AssetRelationship{
			rel(models.RelationshipDependsOn, a, b),
			rel(models.RelationshipDependsOn, b, a),
		}
		analysis := AnalyzeImpact(cyclic, a)
		assert.ElementsMatch(t, []uuid.UUID{b}, analysis.TransitivelyImpacted)
	})

	t.Run("distinct ids even with duplicate edges", func(t *testing.T) {
		duplicated := []models.AssetRelationship{
			rel(models.RelationshipDependsOn, a, c),
			rel(models.RelationshipDependsOn, a, c),
		}
		assert.Equal(t, []uuid.UUID{a}, DependentAssets(duplicated, c))
	})
}
