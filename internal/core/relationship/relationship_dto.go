package relationship

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

type createRequest struct {
	Type string `json:"type" validate:"required"`

	SourceAssetID uuid.UUID `json:"sourceAssetId" validate:"required"`
	TargetAssetID uuid.UUID `json:"targetAssetId" validate:"required"`

	Description     string   `json:"description"`
	Confidence      string   `json:"confidence" validate:"omitempty,oneof=high medium low"`
	DiscoveryMethod string   `json:"discoveryMethod" validate:"omitempty,oneof=automatic manual imported inferred"`
	ImpactWeight    int      `json:"impactWeight" validate:"omitempty,min=1,max=10"`
	Tags            []string `json:"tags"`
}

func (r createRequest) toModel(source, target models.Asset) models.AssetRelationship {
	confidence := models.Confidence(r.Confidence)
	if confidence == "" {
		confidence = models.ConfidenceMedium
	}
	discoveryMethod := models.DiscoveryMethod(r.DiscoveryMethod)
	if discoveryMethod == "" {
		discoveryMethod = models.DiscoveryManual
	}
	impactWeight := r.ImpactWeight
	if impactWeight == 0 {
		impactWeight = 5
	}

	return models.AssetRelationship{
		Type: models.RelationshipType(r.Type),

		SourceAssetID:   source.ID,
		SourceAssetName: source.Name,
		SourceAssetKind: source.Kind,

		TargetAssetID:   target.ID,
		TargetAssetName: target.Name,
		TargetAssetKind: target.Kind,

		Description:     r.Description,
		Confidence:      confidence,
		DiscoveryMethod: discoveryMethod,
		ImpactWeight:    impactWeight,
		Tags:            r.Tags,
	}
}

// typeDTO is the static configuration surface of a relationship type:
// everything an authoring UI needs to offer legal edges.
type typeDTO struct {
	Type        models.RelationshipType `json:"type"`
	Labels      Labels                  `json:"labels"`
	Description string                  `json:"description"`
	Constraints []constraintDTO         `json:"constraints"`
}

type constraintDTO struct {
	SourceTypes []models.AssetKind `json:"sourceTypes"`
	TargetTypes []models.AssetKind `json:"targetTypes"`
}

func toTypeDTOs() []typeDTO {
	dtos := make([]typeDTO, 0, len(RelationshipTypes()))
	for _, relationshipType := range RelationshipTypes() {
		labels, _ := LabelsFor(relationshipType)

		constraints := make([]constraintDTO, 0)
		for _, constraint := range ConstraintsFor(relationshipType) {
			constraints = append(constraints, constraintDTO{
				SourceTypes: constraint.SourceKinds,
				TargetTypes: constraint.TargetKinds,
			})
		}

		dtos = append(dtos, typeDTO{
			Type:        relationshipType,
			Labels:      labels,
			Description: DescriptionFor(relationshipType),
			Constraints: constraints,
		})
	}
	return dtos
}
