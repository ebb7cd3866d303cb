package attackpath

import (
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(name string, reachable bool, risk float64) models.Asset {
	return models.Asset{
		Model:                 models.Model{ID: uuid.New()},
		Name:                  name,
		Kind:                  models.AssetKindService,
		RiskScore:             risk,
		ReachableFromInternet: reachable,
	}
}

func edge(source, target models.Asset, weight int) models.AssetRelationship {
	return models.AssetRelationship{
		Model:           models.Model{ID: uuid.New()},
		Type:            models.RelationshipConnectsTo,
		SourceAssetID:   source.ID,
		SourceAssetName: source.Name,
		SourceAssetKind: source.Kind,
		TargetAssetID:   target.ID,
		TargetAssetName: target.Name,
		TargetAssetKind: target.Kind,
		ImpactWeight:    weight,
	}
}

func TestDiscoverPaths(t *testing.T) {
	t.Run("finds every route from entry to target", func(t *testing.T) {
		web := asset("web", true, 5)
		api := asset("api", false, 3)
		db := asset("db", false, 8)

		// web -> api -> db and web -> db
		assets := []models.Asset{web, api, db}
		rels := []models.AssetRelationship{
			edge(web, api, 5),
			edge(api, db, 10),
			edge(web, db, 2),
		}

		paths := DiscoverPaths(assets, rels, db.ID, 0)
		require.Len(t, paths, 2)
		for _, path := range paths {
			assert.Equal(t, web.ID, path.EntryPoint)
			assert.Equal(t, db.ID, path.TargetAsset)
			assert.Equal(t, db.ID, path.Steps[len(path.Steps)-1].AssetID)
		}
	})

	t.Run("non reachable assets are no entry points", func(t *testing.T) {
		internal := asset("internal", false, 5)
		db := asset("db", false, 8)

		paths := DiscoverPaths([]models.Asset{internal, db}, []models.AssetRelationship{edge(internal, db, 5)}, db.ID, 0)
		assert.Empty(t, paths)
	})

	t.Run("cycles terminate", func(t *testing.T) {
		web := asset("web", true, 5)
		a := asset("a", false, 3)
		b := asset("b", false, 3)
		db := asset("db", false, 8)

		rels := []models.AssetRelationship{
			edge(web, a, 5),
			edge(a, b, 5),
			edge(b, a, 5), // cycle
			edge(b, db, 5),
		}

		paths := DiscoverPaths([]models.Asset{web, a, b, db}, rels, db.ID, 0)
		require.Len(t, paths, 1)
		assert.Len(t, paths[0].Steps, 4)
	})

	t.Run("hop bound cuts long chains", func(t *testing.T) {
		web := asset("web", true, 5)
		a := asset("a", false, 1)
		b := asset("b", false, 1)
		db := asset("db", false, 8)

		rels := []models.AssetRelationship{
			edge(web, a, 5),
			edge(a, b, 5),
			edge(b, db, 5),
		}

		assert.Len(t, DiscoverPaths([]models.Asset{web, a, b, db}, rels, db.ID, 3), 1)
		assert.Empty(t, DiscoverPaths([]models.Asset{web, a, b, db}, rels, db.ID, 2))
	})

	t.Run("risk accumulates along the path", func(t *testing.T) {
		web := asset("web", true, 4)
		db := asset("db", false, 10)

		paths := DiscoverPaths([]models.Asset{web, db}, []models.AssetRelationship{edge(web, db, 5)}, db.ID, 0)
		require.Len(t, paths, 1)
		// entry risk 4 + target risk 10 * weight 5/10
		assert.InDelta(t, 9.0, paths[0].TotalRiskScore, 0.001)
	})
}
