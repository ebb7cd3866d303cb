package attackpath

import (
	"strconv"

	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	assetRepository        core.AssetRepository
	relationshipRepository core.RelationshipRepository
}

func NewHTTPController(assetRepository core.AssetRepository, relationshipRepository core.RelationshipRepository) *httpController {
	return &httpController{
		assetRepository:        assetRepository,
		relationshipRepository: relationshipRepository,
	}
}

// Discover returns all attack paths leading to the asset loaded by the
// slug middleware.
func (c *httpController) Discover(ctx core.Context) error {
	targetID := core.GetAsset(ctx).ID

	maxHops, _ := strconv.Atoi(ctx.QueryParam("maxHops"))

	assets, err := c.assetRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not load assets").WithInternal(err)
	}
	rels, err := c.relationshipRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not load relationships").WithInternal(err)
	}

	return ctx.JSON(200, DiscoverPaths(assets, rels, targetID, maxHops))
}
