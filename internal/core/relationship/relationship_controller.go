package relationship

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	relationshipRepository core.RelationshipRepository
	relationshipService    *service
}

func NewHTTPController(relationshipRepository core.RelationshipRepository, relationshipService *service) *httpController {
	return &httpController{
		relationshipRepository: relationshipRepository,
		relationshipService:    relationshipService,
	}
}

// Types returns the static relationship type catalog: labels,
// descriptions and the constraint table. The UI derives legal edge
// choices from this instead of hardcoding them.
func (c *httpController) Types(ctx core.Context) error {
	return ctx.JSON(200, toTypeDTOs())
}

func (c *httpController) List(ctx core.Context) error {
	rels, err := c.relationshipRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not list relationships").WithInternal(err)
	}
	return ctx.JSON(200, rels)
}

func (c *httpController) Create(ctx core.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	rel, err := c.relationshipService.CreateRelationship(req)
	if err != nil {
		if err == ErrInvalidTriple {
			return echo.NewHTTPError(400, err.Error())
		}
		return echo.NewHTTPError(500, "could not create relationship").WithInternal(err)
	}

	return ctx.JSON(201, rel)
}

func (c *httpController) Delete(ctx core.Context) error {
	id, err := uuid.Parse(core.GetParam(ctx, "relationshipID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid relationship id").WithInternal(err)
	}

	if err := c.relationshipRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete relationship").WithInternal(err)
	}
	return ctx.NoContent(204)
}

// Graph returns the visualization graph, optionally restricted to a
// single asset's neighborhood via the assetId query parameter.
func (c *httpController) Graph(ctx core.Context) error {
	var filter *uuid.UUID
	if assetID := ctx.QueryParam("assetId"); assetID != "" {
		id, err := uuid.Parse(assetID)
		if err != nil {
			return echo.NewHTTPError(400, "invalid asset id").WithInternal(err)
		}
		filter = &id
	}

	rels, err := c.relationshipRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not load relationships").WithInternal(err)
	}

	graph, err := c.relationshipService.BuildDecoratedGraph(rels, filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not build relationship graph").WithInternal(err)
	}

	return ctx.JSON(200, graph)
}

func (c *httpController) Stats(ctx core.Context) error {
	rels, err := c.relationshipRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not load relationships").WithInternal(err)
	}
	return ctx.JSON(200, CalculateStats(rels))
}

// Impact returns direct dependents, direct dependencies and the
// transitive impact set of an asset.
func (c *httpController) Impact(ctx core.Context) error {
	assetID, err := uuid.Parse(core.GetParam(ctx, "assetID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid asset id").WithInternal(err)
	}

	rels, err := c.relationshipRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not load relationships").WithInternal(err)
	}

	return ctx.JSON(200, AnalyzeImpact(rels, assetID))
}
