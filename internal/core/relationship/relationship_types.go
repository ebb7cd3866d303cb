package relationship

import (
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/l3montree-dev/exposuremap/internal/utils"
)

// TypeConstraint is one legal (source kinds, target kinds) combination
// for a relationship type. A triple is valid if ANY constraint entry
// matches - source kind in SourceKinds AND target kind in TargetKinds.
// The entries are deliberately not flattened into a cross product:
// replicates_to allows database -> database, but that must not leak
// arbitrary database pairs into other entries of the same type.
type TypeConstraint struct {
	SourceKinds []models.AssetKind
	TargetKinds []models.AssetKind
}

// Labels is the bidirectional label pair of a relationship type, used
// to render an edge from either endpoint's perspective.
type Labels struct {
	Direct  string `json:"direct"`
	Inverse string `json:"inverse"`
}

// relationshipTypes fixes the declaration order. ValidRelationshipTypes
// iterates this slice, not the maps, so callers get a stable order.
var relationshipTypes = []models.RelationshipType{
	models.RelationshipDependsOn,
	models.RelationshipConnectsTo,
	models.RelationshipStoresDataIn,
	models.RelationshipAuthenticatesTo,
	models.RelationshipExposes,
	models.RelationshipRoutesTo,
	models.RelationshipResolvesTo,
	models.RelationshipContains,
	models.RelationshipRunsOn,
	models.RelationshipBuiltFrom,
	models.RelationshipDeploysTo,
	models.RelationshipReplicatesTo,
	models.RelationshipManages,
	models.RelationshipSecuredBy,
	models.RelationshipPeersWith,
	models.RelationshipMonitors,
}

var relationshipLabels = map[models.RelationshipType]Labels{
	models.RelationshipDependsOn:       {Direct: "Depends on", Inverse: "Is a dependency of"},
	models.RelationshipConnectsTo:      {Direct: "Connects to", Inverse: "Receives connections from"},
	models.RelationshipStoresDataIn:    {Direct: "Stores data in", Inverse: "Stores data for"},
	models.RelationshipAuthenticatesTo: {Direct: "Authenticates to", Inverse: "Authenticates"},
	models.RelationshipExposes:         {Direct: "Exposes", Inverse: "Is exposed by"},
	models.RelationshipRoutesTo:        {Direct: "Routes to", Inverse: "Receives traffic from"},
	models.RelationshipResolvesTo:      {Direct: "Resolves to", Inverse: "Is resolved from"},
	models.RelationshipContains:        {Direct: "Contains", Inverse: "Is contained in"},
	models.RelationshipRunsOn:          {Direct: "Runs on", Inverse: "Runs"},
	models.RelationshipBuiltFrom:       {Direct: "Built from", Inverse: "Is build source of"},
	models.RelationshipDeploysTo:       {Direct: "Deploys to", Inverse: "Is deployed from"},
	models.RelationshipReplicatesTo:    {Direct: "Replicates to", Inverse: "Receives replicas from"},
	models.RelationshipManages:         {Direct: "Manages", Inverse: "Is managed by"},
	models.RelationshipSecuredBy:       {Direct: "Secured by", Inverse: "Secures"},
	models.RelationshipPeersWith:       {Direct: "Peers with", Inverse: "Peers with"},
	models.RelationshipMonitors:        {Direct: "Monitors", Inverse: "Is monitored by"},
}

var relationshipDescriptions = map[models.RelationshipType]string{
	models.RelationshipDependsOn:       "The source needs the target to function",
	models.RelationshipConnectsTo:      "The source opens network connections to the target",
	models.RelationshipStoresDataIn:    "The source persists data in the target",
	models.RelationshipAuthenticatesTo: "The source authenticates its users or itself against the target",
	models.RelationshipExposes:         "The source makes the target reachable",
	models.RelationshipRoutesTo:        "The source forwards traffic to the target",
	models.RelationshipResolvesTo:      "The source name resolves to the target",
	models.RelationshipContains:        "The target runs inside the source",
	models.RelationshipRunsOn:          "The source is executed on the target",
	models.RelationshipBuiltFrom:       "The source is built from the target's code",
	models.RelationshipDeploysTo:       "The source's pipeline deploys onto the target",
	models.RelationshipReplicatesTo:    "The source replicates its data to the target",
	models.RelationshipManages:         "The source provisions and controls the target",
	models.RelationshipSecuredBy:       "The target enforces access to the source",
	models.RelationshipPeersWith:       "The source and target networks are peered",
	models.RelationshipMonitors:        "The source observes the target's health",
}

var relationshipConstraints = map[models.RelationshipType][]TypeConstraint{
	models.RelationshipDependsOn: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindService, models.AssetKindWebsite, models.AssetKindAPI},
			TargetKinds: []models.AssetKind{models.AssetKindService, models.AssetKindAPI, models.AssetKindDatabase, models.AssetKindHost},
		},
		{
			SourceKinds: []models.AssetKind{models.AssetKindContainer, models.AssetKindK8sWorkload},
			TargetKinds: []models.AssetKind{models.AssetKindService, models.AssetKindAPI, models.AssetKindDatabase},
		},
	},
	models.RelationshipConnectsTo: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindService, models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindHost, models.AssetKindContainer, models.AssetKindK8sWorkload},
			TargetKinds: []models.AssetKind{models.AssetKindService, models.AssetKindAPI, models.AssetKindDatabase, models.AssetKindHost, models.AssetKindNetwork, models.AssetKindAPIEndpoint},
		},
	},
	models.RelationshipStoresDataIn: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindService, models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindContainer, models.AssetKindK8sWorkload},
			TargetKinds: []models.AssetKind{models.AssetKindDatabase},
		},
		{
			SourceKinds: []models.AssetKind{models.AssetKindService, models.AssetKindAPI},
			TargetKinds: []models.AssetKind{models.AssetKindCloudAccount},
		},
	},
	models.RelationshipAuthenticatesTo: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindService, models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindHost, models.AssetKindK8sWorkload},
			TargetKinds: []models.AssetKind{models.AssetKindIdentityProvider},
		},
	},
	models.RelationshipExposes: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindService},
			TargetKinds: []models.AssetKind{models.AssetKindAPIEndpoint},
		},
		{
			SourceKinds: []models.AssetKind{models.AssetKindHost, models.AssetKindLoadBalancer},
			TargetKinds: []models.AssetKind{models.AssetKindWebsite, models.AssetKindAPI},
		},
	},
	models.RelationshipRoutesTo: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindLoadBalancer},
			TargetKinds: []models.AssetKind{models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindService, models.AssetKindHost, models.AssetKindContainer},
		},
	},
	models.RelationshipResolvesTo: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindDomain},
			TargetKinds: []models.AssetKind{models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindHost, models.AssetKindLoadBalancer},
		},
	},
	models.RelationshipContains: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindK8sCluster},
			TargetKinds: []models.AssetKind{models.AssetKindK8sWorkload},
		},
		{
			SourceKinds: []models.AssetKind{models.AssetKindHost},
			TargetKinds: []models.AssetKind{models.AssetKindContainer},
		},
		{
			SourceKinds: []models.AssetKind{models.AssetKindNetwork},
			TargetKinds: []models.AssetKind{models.AssetKindHost, models.AssetKindDatabase, models.AssetKindLoadBalancer},
		},
		{
			SourceKinds: []models.AssetKind{models.AssetKindCloudAccount},
			TargetKinds: []models.AssetKind{models.AssetKindNetwork},
		},
	},
	models.RelationshipRunsOn: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindContainer, models.AssetKindK8sWorkload, models.AssetKindService, models.AssetKindWebsite, models.AssetKindAPI},
			TargetKinds: []models.AssetKind{models.AssetKindHost, models.AssetKindK8sCluster},
		},
	},
	models.RelationshipBuiltFrom: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindContainerImage, models.AssetKindContainer, models.AssetKindService, models.AssetKindWebsite, models.AssetKindAPI},
			TargetKinds: []models.AssetKind{models.AssetKindRepository},
		},
	},
	models.RelationshipDeploysTo: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindRepository},
			TargetKinds: []models.AssetKind{models.AssetKindHost, models.AssetKindK8sCluster, models.AssetKindCloudAccount, models.AssetKindContainer},
		},
	},
	models.RelationshipReplicatesTo: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindDatabase},
			TargetKinds: []models.AssetKind{models.AssetKindDatabase},
		},
	},
	models.RelationshipManages: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindCloudAccount},
			TargetKinds: []models.AssetKind{models.AssetKindHost, models.AssetKindDatabase, models.AssetKindK8sCluster, models.AssetKindLoadBalancer, models.AssetKindNetwork},
		},
	},
	models.RelationshipSecuredBy: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindWebsite, models.AssetKindAPI, models.AssetKindService, models.AssetKindHost},
			TargetKinds: []models.AssetKind{models.AssetKindIdentityProvider, models.AssetKindNetwork, models.AssetKindLoadBalancer},
		},
	},
	models.RelationshipPeersWith: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindNetwork},
			TargetKinds: []models.AssetKind{models.AssetKindNetwork},
		},
	},
	models.RelationshipMonitors: {
		{
			SourceKinds: []models.AssetKind{models.AssetKindService},
			TargetKinds: []models.AssetKind{models.AssetKindService, models.AssetKindAPI, models.AssetKindDatabase, models.AssetKindHost, models.AssetKindWebsite},
		},
	},
}

// RelationshipTypes returns all relationship types in declaration order.
func RelationshipTypes() []models.RelationshipType {
	return relationshipTypes
}

// LabelsFor returns the bidirectional label pair of a relationship type.
func LabelsFor(relationshipType models.RelationshipType) (Labels, bool) {
	labels, ok := relationshipLabels[relationshipType]
	return labels, ok
}

// DescriptionFor returns the human readable description of a type.
func DescriptionFor(relationshipType models.RelationshipType) string {
	return relationshipDescriptions[relationshipType]
}

// ConstraintsFor returns the constraint entries of a relationship type.
func ConstraintsFor(relationshipType models.RelationshipType) []TypeConstraint {
	return relationshipConstraints[relationshipType]
}

// IsValidRelationship reports whether the (type, source kind, target
// kind) triple satisfies at least one constraint entry. Unknown types
// are never valid. Directionality matters: depends_on service->database
// being valid says nothing about database->service.
func IsValidRelationship(relationshipType models.RelationshipType, sourceKind, targetKind models.AssetKind) bool {
	constraints, ok := relationshipConstraints[relationshipType]
	if !ok {
		return false
	}

	for _, constraint := range constraints {
		if utils.Contains(constraint.SourceKinds, sourceKind) && utils.Contains(constraint.TargetKinds, targetKind) {
			return true
		}
	}
	return false
}

// ValidTargetKinds returns the deduplicated union of target kinds over
// every constraint entry of the type that accepts the source kind.
func ValidTargetKinds(relationshipType models.RelationshipType, sourceKind models.AssetKind) []models.AssetKind {
	targets := make([]models.AssetKind, 0)
	for _, constraint := range relationshipConstraints[relationshipType] {
		if utils.Contains(constraint.SourceKinds, sourceKind) {
			targets = append(targets, constraint.TargetKinds...)
		}
	}
	return utils.Uniq(targets)
}

// ValidRelationshipTypes returns every type that accepts the source
// kind in at least one constraint entry, in declaration order.
func ValidRelationshipTypes(sourceKind models.AssetKind) []models.RelationshipType {
	types := make([]models.RelationshipType, 0)
	for _, relationshipType := range relationshipTypes {
		for _, constraint := range relationshipConstraints[relationshipType] {
			if utils.Contains(constraint.SourceKinds, sourceKind) {
				types = append(types, relationshipType)
				break
			}
		}
	}
	return types
}
