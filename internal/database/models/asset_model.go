package models

import (
	"time"
)

// AssetKind is the closed set of asset types the platform manages.
// The base kinds are assets on their own. The extended kinds only ever
// appear as relationship endpoints - they are discovered as part of the
// attack surface but not managed as first class assets.
type AssetKind string

const (
	AssetKindDomain       AssetKind = "domain"
	AssetKindWebsite      AssetKind = "website"
	AssetKindAPI          AssetKind = "api"
	AssetKindService      AssetKind = "service"
	AssetKindDatabase     AssetKind = "database"
	AssetKindHost         AssetKind = "host"
	AssetKindContainer    AssetKind = "container"
	AssetKindCloudAccount AssetKind = "cloud_account"
	AssetKindK8sCluster   AssetKind = "k8s_cluster"
	AssetKindRepository   AssetKind = "repository"

	// extended kinds - relationship endpoints only
	AssetKindK8sWorkload      AssetKind = "k8s_workload"
	AssetKindContainerImage   AssetKind = "container_image"
	AssetKindLoadBalancer     AssetKind = "load_balancer"
	AssetKindIdentityProvider AssetKind = "identity_provider"
	AssetKindAPIEndpoint      AssetKind = "api_endpoint"
	AssetKindNetwork          AssetKind = "network"
)

// BaseAssetKinds returns the kinds an asset record may be created with.
func BaseAssetKinds() []AssetKind {
	return []AssetKind{
		AssetKindDomain,
		AssetKindWebsite,
		AssetKindAPI,
		AssetKindService,
		AssetKindDatabase,
		AssetKindHost,
		AssetKindContainer,
		AssetKindCloudAccount,
		AssetKindK8sCluster,
		AssetKindRepository,
	}
}

func (k AssetKind) IsBaseKind() bool {
	for _, kind := range BaseAssetKinds() {
		if kind == k {
			return true
		}
	}
	return false
}

type Asset struct {
	Model
	Name string `json:"name" gorm:"type:text;not null;"`
	Slug string `json:"slug" gorm:"type:text;uniqueIndex;not null;"`

	Description string    `json:"description" gorm:"type:text"`
	Kind        AssetKind `json:"type" gorm:"type:text;not null;"`

	RiskScore             float64 `json:"riskScore" gorm:"default:0;"`
	Importance            int     `json:"importance" gorm:"default:1;"`
	ReachableFromInternet bool    `json:"reachableFromInternet" gorm:"default:false;"`

	Findings []Finding `json:"findings" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE;"`

	LastSeen *time.Time `json:"lastSeen"`
}

func (m Asset) TableName() string {
	return "assets"
}
