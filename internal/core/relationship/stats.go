package relationship

import (
	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

type Stats struct {
	TotalRelationships  int                             `json:"totalRelationships"`
	ByType              map[models.RelationshipType]int `json:"byType"`
	ByConfidence        map[models.Confidence]int       `json:"byConfidence"`
	ByDiscoveryMethod   map[models.DiscoveryMethod]int  `json:"byDiscoveryMethod"`
	AverageImpactWeight float64                         `json:"averageImpactWeight"`
}

// CalculateStats aggregates the relationship list in a single pass.
// All three confidence keys are always present, even at zero. An empty
// list yields an average impact weight of 0, not NaN.
func CalculateStats(relationships []models.AssetRelationship) Stats {
	stats := Stats{
		TotalRelationships: len(relationships),
		ByType:             make(map[models.RelationshipType]int),
		ByConfidence: map[models.Confidence]int{
			models.ConfidenceHigh:   0,
			models.ConfidenceMedium: 0,
			models.ConfidenceLow:    0,
		},
		ByDiscoveryMethod: make(map[models.DiscoveryMethod]int),
	}

	totalWeight := 0
	for _, rel := range relationships {
		stats.ByType[rel.Type]++
		stats.ByConfidence[rel.Confidence]++
		stats.ByDiscoveryMethod[rel.DiscoveryMethod]++
		totalWeight += rel.ImpactWeight
	}

	if len(relationships) > 0 {
		stats.AverageImpactWeight = float64(totalWeight) / float64(len(relationships))
	}

	return stats
}
