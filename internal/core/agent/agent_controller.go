package agent

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	agentRepository core.AgentRepository
	agentService    *service
}

func NewHTTPController(agentRepository core.AgentRepository, agentService *service) *httpController {
	return &httpController{
		agentRepository: agentRepository,
		agentService:    agentService,
	}
}

type registerRequest struct {
	Name         string   `json:"name" validate:"required"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type heartbeatRequest struct {
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

func (c *httpController) List(ctx core.Context) error {
	agents, err := c.agentRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not list agents").WithInternal(err)
	}
	return ctx.JSON(200, agents)
}

func (c *httpController) Register(ctx core.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	agent := models.Agent{
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		Version:      req.Version,
		Capabilities: req.Capabilities,
		Status:       models.AgentStatusOffline,
	}
	if err := c.agentRepository.Create(nil, &agent); err != nil {
		return echo.NewHTTPError(500, "could not register agent").WithInternal(err)
	}
	return ctx.JSON(201, agent)
}

func (c *httpController) Heartbeat(ctx core.Context) error {
	agentID, err := uuid.Parse(core.GetParam(ctx, "agentID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid agent id").WithInternal(err)
	}

	var req heartbeatRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	agent, err := c.agentService.Heartbeat(agentID, req.Version, req.Capabilities)
	if err != nil {
		return echo.NewHTTPError(404, "agent not found").WithInternal(err)
	}
	return ctx.JSON(200, agent)
}

// ByCapability returns the agents able to run a given tool, served
// from the capability cache.
func (c *httpController) ByCapability(ctx core.Context) error {
	capability := ctx.QueryParam("capability")
	if capability == "" {
		return echo.NewHTTPError(400, "missing capability")
	}

	agents, err := c.agentService.FindByCapability(capability)
	if err != nil {
		return echo.NewHTTPError(500, "could not look up agents").WithInternal(err)
	}
	return ctx.JSON(200, agents)
}

func (c *httpController) Delete(ctx core.Context) error {
	agentID, err := uuid.Parse(core.GetParam(ctx, "agentID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid agent id").WithInternal(err)
	}

	if err := c.agentRepository.Delete(nil, agentID); err != nil {
		return echo.NewHTTPError(500, "could not delete agent").WithInternal(err)
	}
	return ctx.NoContent(204)
}
