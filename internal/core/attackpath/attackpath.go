package attackpath

import (
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/monitoring"
)

type Step struct {
	AssetID          uuid.UUID               `json:"assetId"`
	AssetName        string                  `json:"assetName"`
	AssetKind        models.AssetKind        `json:"assetType"`
	RelationshipType models.RelationshipType `json:"relationshipType"`
}

// AttackPath is an ordered chain from an internet reachable entry
// asset to the target, following relationship edges in their stored
// direction.
type AttackPath struct {
	EntryPoint     uuid.UUID `json:"entryPoint"`
	TargetAsset    uuid.UUID `json:"targetAsset"`
	Steps          []Step    `json:"steps"`
	TotalRiskScore float64   `json:"totalRiskScore"`
}

const DefaultMaxHops = 6

// DiscoverPaths enumerates attack paths to the target asset. Entry
// points are all assets flagged as reachable from the internet. The
// walk is a depth-first search over the relationship edges with a
// per-path visited set, so cyclic relationship data terminates. Paths
// longer than maxHops edges are cut off.
//
// The risk score of a path is the sum over its edges of the target
// node's risk weighted by the edge's impact weight.
func DiscoverPaths(assets []models.Asset, relationships []models.AssetRelationship, targetID uuid.UUID, maxHops int) []AttackPath {
	start := time.Now()
	defer func() {
		monitoring.AttackPathDiscoveryDuration.Observe(time.Since(start).Seconds())
	}()

	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	assetsByID := make(map[uuid.UUID]models.Asset, len(assets))
	for _, asset := range assets {
		assetsByID[asset.ID] = asset
	}

	// adjacency in stored edge direction
	outgoing := make(map[uuid.UUID][]models.AssetRelationship)
	for _, rel := range relationships {
		outgoing[rel.SourceAssetID] = append(outgoing[rel.SourceAssetID], rel)
	}

	paths := make([]AttackPath, 0)

	var walk func(current uuid.UUID, visited map[uuid.UUID]struct{}, trail []Step, risk float64)
	walk = func(current uuid.UUID, visited map[uuid.UUID]struct{}, trail []Step, risk float64) {
		if current == targetID {
			steps := make([]Step, len(trail))
			copy(steps, trail)
			paths = append(paths, AttackPath{
				EntryPoint:     trail[0].AssetID,
				TargetAsset:    targetID,
				Steps:          steps,
				TotalRiskScore: risk,
			})
			return
		}
		if len(trail) > maxHops {
			return
		}

		for _, rel := range outgoing[current] {
			if _, ok := visited[rel.TargetAssetID]; ok {
				continue
			}
			visited[rel.TargetAssetID] = struct{}{}

			edgeRisk := assetsByID[rel.TargetAssetID].RiskScore * float64(rel.ImpactWeight) / 10
			walk(rel.TargetAssetID, visited, append(trail, Step{
				AssetID:          rel.TargetAssetID,
				AssetName:        rel.TargetAssetName,
				AssetKind:        rel.TargetAssetKind,
				RelationshipType: rel.Type,
			}), risk+edgeRisk)

			delete(visited, rel.TargetAssetID)
		}
	}

	for _, asset := range assets {
		if !asset.ReachableFromInternet || asset.ID == targetID {
			continue
		}

		entry := Step{
			AssetID:   asset.ID,
			AssetName: asset.Name,
			AssetKind: asset.Kind,
		}
		walk(asset.ID, map[uuid.UUID]struct{}{asset.ID: {}}, []Step{entry}, asset.RiskScore)
	}

	return paths
}
