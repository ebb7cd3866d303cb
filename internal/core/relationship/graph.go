package relationship

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/monitoring"
)

type GraphNode struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Kind         models.AssetKind `json:"type"`
	RiskScore    float64          `json:"riskScore"`
	FindingCount int              `json:"findingCount"`
}

type GraphEdge struct {
	ID           uuid.UUID               `json:"id"`
	Source       uuid.UUID               `json:"source"`
	Target       uuid.UUID               `json:"target"`
	Type         models.RelationshipType `json:"type"`
	Label        string                  `json:"label"`
	ImpactWeight int                     `json:"impactWeight"`
}

// Graph is the visualization ready form of a relationship list. It is
// derived on every call and never persisted. It may contain cycles -
// consumers have to handle that.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// BuildGraph flattens relationships into node and edge lists. If a
// filter id is given, only relationships touching that asset as source
// or target are considered. Nodes are deduplicated by asset id with
// first-write-wins semantics: the first encountered name and kind stick.
// The graph builder does not validate the edges it is given - an
// invalid triple renders like any other edge.
func BuildGraph(relationships []models.AssetRelationship, assetIDFilter *uuid.UUID) Graph {
	start := time.Now()
	defer func() {
		monitoring.RelationshipGraphBuildAmount.Inc()
		monitoring.RelationshipGraphBuildDuration.Observe(time.Since(start).Seconds())
	}()

	if assetIDFilter != nil {
		filtered := make([]models.AssetRelationship, 0, len(relationships))
		for _, rel := range relationships {
			if rel.SourceAssetID == *assetIDFilter || rel.TargetAssetID == *assetIDFilter {
				filtered = append(filtered, rel)
			}
		}
		relationships = filtered
	}

	seen := make(map[uuid.UUID]struct{})
	nodes := make([]GraphNode, 0)
	edges := make([]GraphEdge, 0, len(relationships))

	upsertNode := func(id uuid.UUID, name string, kind models.AssetKind) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		nodes = append(nodes, GraphNode{
			ID:   id,
			Name: name,
			Kind: kind,
		})
	}

	for _, rel := range relationships {
		upsertNode(rel.SourceAssetID, rel.SourceAssetName, rel.SourceAssetKind)
		upsertNode(rel.TargetAssetID, rel.TargetAssetName, rel.TargetAssetKind)

		edges = append(edges, GraphEdge{
			ID:           rel.ID,
			Source:       rel.SourceAssetID,
			Target:       rel.TargetAssetID,
			Type:         rel.Type,
			Label:        strings.ReplaceAll(string(rel.Type), "_", " "),
			ImpactWeight: rel.ImpactWeight,
		})
	}

	return Graph{Nodes: nodes, Edges: edges}
}

// DependentAssets returns the distinct source asset ids of all
// depends_on relationships targeting the asset - "who needs me".
// Single hop only, no transitive closure.
func DependentAssets(relationships []models.AssetRelationship, assetID uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	dependents := make([]uuid.UUID, 0)
	for _, rel := range relationships {
		if rel.Type != models.RelationshipDependsOn || rel.TargetAssetID != assetID {
			continue
		}
		if _, ok := seen[rel.SourceAssetID]; ok {
			continue
		}
		seen[rel.SourceAssetID] = struct{}{}
		dependents = append(dependents, rel.SourceAssetID)
	}
	return dependents
}

// Dependencies returns the distinct target asset ids of all depends_on
// relationships originating at the asset - "what I need". Single hop.
func Dependencies(relationships []models.AssetRelationship, assetID uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	dependencies := make([]uuid.UUID, 0)
	for _, rel := range relationships {
		if rel.Type != models.RelationshipDependsOn || rel.SourceAssetID != assetID {
			continue
		}
		if _, ok := seen[rel.TargetAssetID]; ok {
			continue
		}
		seen[rel.TargetAssetID] = struct{}{}
		dependencies = append(dependencies, rel.TargetAssetID)
	}
	return dependencies
}

type ImpactAnalysis struct {
	AssetID              uuid.UUID   `json:"assetId"`
	DirectDependents     []uuid.UUID `json:"directDependents"`
	DirectDependencies   []uuid.UUID `json:"directDependencies"`
	TransitivelyImpacted []uuid.UUID `json:"transitivelyImpacted"`
}

// AnalyzeImpact runs the full impact analysis for an asset. The
// transitive set is computed by BFS over reversed depends_on edges with
// a visited set - the relationship list is not guaranteed to be acyclic.
func AnalyzeImpact(relationships []models.AssetRelationship, assetID uuid.UUID) ImpactAnalysis {
	visited := map[uuid.UUID]struct{}{assetID: {}}
	impacted := make([]uuid.UUID, 0)
	queue := []uuid.UUID{assetID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dependent := range DependentAssets(relationships, current) {
			if _, ok := visited[dependent]; ok {
				continue
			}
			visited[dependent] = struct{}{}
			impacted = append(impacted, dependent)
			queue = append(queue, dependent)
		}
	}

	return ImpactAnalysis{
		AssetID:              assetID,
		DirectDependents:     DependentAssets(relationships, assetID),
		DirectDependencies:   Dependencies(relationships, assetID),
		TransitivelyImpacted: impacted,
	}
}
