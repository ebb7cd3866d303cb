package relationship

import (
	"testing"

	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
)

func TestIsValidRelationship(t *testing.T) {
	t.Run("directionality matters and is not auto inverted", func(t *testing.T) {
		assert.True(t, IsValidRelationship(models.RelationshipDependsOn, models.AssetKindService, models.AssetKindDatabase))
		assert.False(t, IsValidRelationship(models.RelationshipDependsOn, models.AssetKindDatabase, models.AssetKindService))
	})

	t.Run("unknown type is never valid", func(t *testing.T) {
		assert.False(t, IsValidRelationship("totally_made_up", models.AssetKindService, models.AssetKindDatabase))
	})

	t.Run("constraint entries are not flattened into a cross product", func(t *testing.T) {
		// exposes has two entries:
		//   website/api/service -> api_endpoint
		//   host/load_balancer  -> website/api
		// host -> api_endpoint crosses the two entries and must be invalid
		assert.True(t, IsValidRelationship(models.RelationshipExposes, models.AssetKindWebsite, models.AssetKindAPIEndpoint))
		assert.True(t, IsValidRelationship(models.RelationshipExposes, models.AssetKindHost, models.AssetKindAPI))
		assert.False(t, IsValidRelationship(models.RelationshipExposes, models.AssetKindHost, models.AssetKindAPIEndpoint))
	})

	t.Run("replicates_to only allows database to database", func(t *testing.T) {
		assert.True(t, IsValidRelationship(models.RelationshipReplicatesTo, models.AssetKindDatabase, models.AssetKindDatabase))
		assert.False(t, IsValidRelationship(models.RelationshipReplicatesTo, models.AssetKindService, models.AssetKindDatabase))
		assert.False(t, IsValidRelationship(models.RelationshipReplicatesTo, models.AssetKindDatabase, models.AssetKindHost))
	})

	t.Run("extended kinds work as endpoints", func(t *testing.T) {
		assert.True(t, IsValidRelationship(models.RelationshipRoutesTo, models.AssetKindLoadBalancer, models.AssetKindWebsite))
		assert.True(t, IsValidRelationship(models.RelationshipPeersWith, models.AssetKindNetwork, models.AssetKindNetwork))
	})
}

func TestValidTargetKinds(t *testing.T) {
	t.Run("union over matching entries, deduplicated", func(t *testing.T) {
		// stores_data_in: service matches both entries
		targets := ValidTargetKinds(models.RelationshipStoresDataIn, models.AssetKindService)
		assert.ElementsMatch(t, []models.AssetKind{models.AssetKindDatabase, models.AssetKindCloudAccount}, targets)

		// container only matches the first entry
		targets = ValidTargetKinds(models.RelationshipStoresDataIn, models.AssetKindContainer)
		assert.ElementsMatch(t, []models.AssetKind{models.AssetKindDatabase}, targets)
	})

	t.Run("no matching entry yields an empty slice", func(t *testing.T) {
		targets := ValidTargetKinds(models.RelationshipReplicatesTo, models.AssetKindWebsite)
		assert.Empty(t, targets)
	})
}

func TestValidRelationshipTypes(t *testing.T) {
	t.Run("follows declaration order", func(t *testing.T) {
		types := ValidRelationshipTypes(models.AssetKindDatabase)
		// database only appears as a source kind in replicates_to
		assert.Equal(t, []models.RelationshipType{models.RelationshipReplicatesTo}, types)

		types = ValidRelationshipTypes(models.AssetKindService)
		assert.NotEmpty(t, types)
		// declaration order, not alphabetical: depends_on before authenticates_to
		dependsOnIdx := -1
		authIdx := -1
		for i, relationshipType := range types {
			if relationshipType == models.RelationshipDependsOn {
				dependsOnIdx = i
			}
			if relationshipType == models.RelationshipAuthenticatesTo {
				authIdx = i
			}
		}
		assert.GreaterOrEqual(t, dependsOnIdx, 0)
		assert.GreaterOrEqual(t, authIdx, 0)
		assert.Less(t, dependsOnIdx, authIdx)
	})
}

func TestTypeCatalogIsInLockstep(t *testing.T) {
	// every type needs a label pair, a description and at least one
	// constraint entry - otherwise validation silently rejects edges
	for _, relationshipType := range RelationshipTypes() {
		labels, ok := LabelsFor(relationshipType)
		assert.True(t, ok, "missing label pair for %s", relationshipType)
		assert.NotEmpty(t, labels.Direct)
		assert.NotEmpty(t, labels.Inverse)
		assert.NotEmpty(t, DescriptionFor(relationshipType), "missing description for %s", relationshipType)
		assert.NotEmpty(t, ConstraintsFor(relationshipType), "missing constraints for %s", relationshipType)
	}
}
