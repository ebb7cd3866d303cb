package asset

import (
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

type createRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required"`

	Importance            int  `json:"importance"`
	ReachableFromInternet bool `json:"reachableFromInternet"`
}

func (r createRequest) toModel() models.Asset {
	importance := r.Importance
	if importance == 0 {
		importance = 1
	}
	return models.Asset{
		Name:        r.Name,
		Slug:        slug.Make(r.Name),
		Description: r.Description,
		Kind:        models.AssetKind(r.Type),

		Importance:            importance,
		ReachableFromInternet: r.ReachableFromInternet,
	}
}

type patchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	RiskScore             *float64 `json:"riskScore"`
	Importance            *int     `json:"importance"`
	ReachableFromInternet *bool    `json:"reachableFromInternet"`
}

func (r patchRequest) applyToModel(asset *models.Asset) bool {
	updated := false
	if r.Name != nil && *r.Name != asset.Name {
		asset.Name = *r.Name
		asset.Slug = slug.Make(*r.Name)
		updated = true
	}
	if r.Description != nil && *r.Description != asset.Description {
		asset.Description = *r.Description
		updated = true
	}
	if r.RiskScore != nil && *r.RiskScore != asset.RiskScore {
		asset.RiskScore = *r.RiskScore
		updated = true
	}
	if r.Importance != nil && *r.Importance != asset.Importance {
		asset.Importance = *r.Importance
		updated = true
	}
	if r.ReachableFromInternet != nil && *r.ReachableFromInternet != asset.ReachableFromInternet {
		asset.ReachableFromInternet = *r.ReachableFromInternet
		updated = true
	}
	return updated
}
