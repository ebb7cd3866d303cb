package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RelationshipType is the closed set of typed edges between assets.
// Adding a new type requires a label pair and at least one constraint
// entry in the relationship package - all three in lockstep, otherwise
// validation rejects every edge of the new type.
type RelationshipType string

const (
	RelationshipDependsOn       RelationshipType = "depends_on"
	RelationshipConnectsTo      RelationshipType = "connects_to"
	RelationshipStoresDataIn    RelationshipType = "stores_data_in"
	RelationshipAuthenticatesTo RelationshipType = "authenticates_to"
	RelationshipExposes         RelationshipType = "exposes"
	RelationshipRoutesTo        RelationshipType = "routes_to"
	RelationshipResolvesTo      RelationshipType = "resolves_to"
	RelationshipContains        RelationshipType = "contains"
	RelationshipRunsOn          RelationshipType = "runs_on"
	RelationshipBuiltFrom       RelationshipType = "built_from"
	RelationshipDeploysTo       RelationshipType = "deploys_to"
	RelationshipReplicatesTo    RelationshipType = "replicates_to"
	RelationshipManages         RelationshipType = "manages"
	RelationshipSecuredBy       RelationshipType = "secured_by"
	RelationshipPeersWith       RelationshipType = "peers_with"
	RelationshipMonitors        RelationshipType = "monitors"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type DiscoveryMethod string

const (
	DiscoveryAutomatic DiscoveryMethod = "automatic"
	DiscoveryManual    DiscoveryMethod = "manual"
	DiscoveryImported  DiscoveryMethod = "imported"
	DiscoveryInferred  DiscoveryMethod = "inferred"
)

// AssetRelationship is a typed, directed edge between two assets.
// Source and target name/kind are denormalized onto the edge so graph
// views can be built without joining the asset table.
type AssetRelationship struct {
	Model

	Type RelationshipType `json:"type" gorm:"type:text;not null;index;"`

	SourceAssetID   uuid.UUID `json:"sourceAssetId" gorm:"type:uuid;not null;index;"`
	SourceAssetName string    `json:"sourceAssetName" gorm:"type:text;not null;"`
	SourceAssetKind AssetKind `json:"sourceAssetType" gorm:"type:text;not null;"`

	TargetAssetID   uuid.UUID `json:"targetAssetId" gorm:"type:uuid;not null;index;"`
	TargetAssetName string    `json:"targetAssetName" gorm:"type:text;not null;"`
	TargetAssetKind AssetKind `json:"targetAssetType" gorm:"type:text;not null;"`

	Description     string          `json:"description" gorm:"type:text"`
	Confidence      Confidence      `json:"confidence" gorm:"type:text;default:'medium';not null;"`
	DiscoveryMethod DiscoveryMethod `json:"discoveryMethod" gorm:"type:text;default:'manual';not null;"`

	// 1 (barely coupled) to 10 (hard dependency)
	ImpactWeight int `json:"impactWeight" gorm:"default:5;"`

	Tags datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`

	LastVerified *time.Time `json:"lastVerified"`
}

func (m AssetRelationship) TableName() string {
	return "asset_relationships"
}
