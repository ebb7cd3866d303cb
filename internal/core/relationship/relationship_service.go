package relationship

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/pkg/errors"
)

type service struct {
	relationshipRepository core.RelationshipRepository
	assetRepository        core.AssetRepository
	findingRepository      core.FindingRepository
}

func NewService(relationshipRepository core.RelationshipRepository, assetRepository core.AssetRepository, findingRepository core.FindingRepository) *service {
	return &service{
		relationshipRepository: relationshipRepository,
		assetRepository:        assetRepository,
		findingRepository:      findingRepository,
	}
}

var ErrInvalidTriple = fmt.Errorf("relationship type does not allow this source and target kind combination")

// CreateRelationship resolves both endpoints, validates the triple
// against the constraint table and persists the denormalized edge.
// The graph builder itself stays permissive - blocking invalid triples
// here keeps the authoring boundary strict without making rendering
// fragile.
func (s *service) CreateRelationship(req createRequest) (models.AssetRelationship, error) {
	source, err := s.assetRepository.Read(req.SourceAssetID)
	if err != nil {
		return models.AssetRelationship{}, errors.Wrap(err, "could not read source asset")
	}
	target, err := s.assetRepository.Read(req.TargetAssetID)
	if err != nil {
		return models.AssetRelationship{}, errors.Wrap(err, "could not read target asset")
	}

	if !IsValidRelationship(models.RelationshipType(req.Type), source.Kind, target.Kind) {
		return models.AssetRelationship{}, ErrInvalidTriple
	}

	rel := req.toModel(source, target)
	if err := s.relationshipRepository.Create(nil, &rel); err != nil {
		return models.AssetRelationship{}, errors.Wrap(err, "could not save relationship")
	}
	return rel, nil
}

// BuildDecoratedGraph builds the graph and annotates the nodes with
// the current risk score and open finding count of the assets.
func (s *service) BuildDecoratedGraph(relationships []models.AssetRelationship, assetIDFilter *uuid.UUID) (Graph, error) {
	graph := BuildGraph(relationships, assetIDFilter)

	ids := make([]uuid.UUID, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		ids = append(ids, node.ID)
	}

	assets, err := s.assetRepository.List(ids)
	if err != nil {
		return graph, errors.Wrap(err, "could not load assets for graph decoration")
	}
	riskScores := make(map[uuid.UUID]float64, len(assets))
	for _, asset := range assets {
		riskScores[asset.ID] = asset.RiskScore
	}

	findingCounts, err := s.findingRepository.CountByAssetID()
	if err != nil {
		return graph, errors.Wrap(err, "could not load finding counts for graph decoration")
	}

	for i := range graph.Nodes {
		graph.Nodes[i].RiskScore = riskScores[graph.Nodes[i].ID]
		graph.Nodes[i].FindingCount = findingCounts[graph.Nodes[i].ID]
	}

	return graph, nil
}
