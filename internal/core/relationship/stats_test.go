package relationship

import (
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateStats(t *testing.T) {
	t.Run("empty input does not divide by zero", func(t *testing.T) {
		stats := CalculateStats(nil)

		assert.Equal(t, 0, stats.TotalRelationships)
		assert.Equal(t, 0.0, stats.AverageImpactWeight)
		// all three confidence keys are present even at zero
		assert.Contains(t, stats.ByConfidence, models.ConfidenceHigh)
		assert.Contains(t, stats.ByConfidence, models.ConfidenceMedium)
		assert.Contains(t, stats.ByConfidence, models.ConfidenceLow)
	})

	t.Run("single pass aggregation", func(t *testing.T) {
		a, b, c := uuid.New(), uuid.New(), uuid.New()

		first := rel(models.RelationshipDependsOn, a, b)
		first.Confidence = models.ConfidenceHigh
		first.DiscoveryMethod = models.DiscoveryAutomatic
		first.ImpactWeight = 8

		second := rel(models.RelationshipDependsOn, b, c)
		second.Confidence = models.ConfidenceLow
		second.DiscoveryMethod = models.DiscoveryManual
		second.ImpactWeight = 2

		third := rel(models.RelationshipConnectsTo, a, c)
		third.Confidence = models.ConfidenceHigh
		third.DiscoveryMethod = models.DiscoveryAutomatic
		third.ImpactWeight = 5

		stats := CalculateStats([]models.AssetRelationship{first, second, third})

		assert.Equal(t, 3, stats.TotalRelationships)
		assert.Equal(t, 2, stats.ByType[models.RelationshipDependsOn])
		assert.Equal(t, 1, stats.ByType[models.RelationshipConnectsTo])
		assert.Equal(t, 2, stats.ByConfidence[models.ConfidenceHigh])
		assert.Equal(t, 0, stats.ByConfidence[models.ConfidenceMedium])
		assert.Equal(t, 1, stats.ByConfidence[models.ConfidenceLow])
		assert.Equal(t, 2, stats.ByDiscoveryMethod[models.DiscoveryAutomatic])
		assert.Equal(t, 1, stats.ByDiscoveryMethod[models.DiscoveryManual])
		assert.InDelta(t, 5.0, stats.AverageImpactWeight, 0.001)
	})
}
