package asset

import (
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	assetRepository   core.AssetRepository
	findingRepository core.FindingRepository
}

func NewHTTPController(assetRepository core.AssetRepository, findingRepository core.FindingRepository) *httpController {
	return &httpController{
		assetRepository:   assetRepository,
		findingRepository: findingRepository,
	}
}

func (c *httpController) List(ctx core.Context) error {
	assets, err := c.assetRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not list assets").WithInternal(err)
	}
	return ctx.JSON(200, assets)
}

func (c *httpController) Create(ctx core.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	// extended kinds only exist as relationship endpoints
	if !models.AssetKind(req.Type).IsBaseKind() {
		return echo.NewHTTPError(400, "invalid asset type")
	}

	asset := req.toModel()
	if err := c.assetRepository.Create(nil, &asset); err != nil {
		return echo.NewHTTPError(500, "could not create asset").WithInternal(err)
	}
	return ctx.JSON(201, asset)
}

func (c *httpController) Read(ctx core.Context) error {
	return ctx.JSON(200, core.GetAsset(ctx))
}

func (c *httpController) Update(ctx core.Context) error {
	asset := core.GetAsset(ctx)

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if req.applyToModel(&asset) {
		if err := c.assetRepository.Save(nil, &asset); err != nil {
			return echo.NewHTTPError(500, "could not update asset").WithInternal(err)
		}
	}
	return ctx.JSON(200, asset)
}

func (c *httpController) Delete(ctx core.Context) error {
	asset := core.GetAsset(ctx)
	if err := c.assetRepository.Delete(nil, asset.ID); err != nil {
		return echo.NewHTTPError(500, "could not delete asset").WithInternal(err)
	}
	return ctx.NoContent(204)
}

// Findings lists the findings of the asset for the triage view.
func (c *httpController) Findings(ctx core.Context) error {
	asset := core.GetAsset(ctx)
	findings, err := c.findingRepository.GetByAssetID(asset.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not list findings").WithInternal(err)
	}
	return ctx.JSON(200, findings)
}
