package pipeline

import (
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	pipelineRepository core.PipelineRepository
	pipelineService    *service
}

func NewHTTPController(pipelineRepository core.PipelineRepository, pipelineService *service) *httpController {
	return &httpController{
		pipelineRepository: pipelineRepository,
		pipelineService:    pipelineService,
	}
}

func (c *httpController) List(ctx core.Context) error {
	pipelines, err := c.pipelineRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not list pipelines").WithInternal(err)
	}
	return ctx.JSON(200, pipelines)
}

func (c *httpController) Create(ctx core.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	pipeline := req.toModel()
	if err := c.pipelineRepository.Create(nil, &pipeline); err != nil {
		return echo.NewHTTPError(500, "could not create pipeline").WithInternal(err)
	}
	return ctx.JSON(201, pipeline)
}

func (c *httpController) Read(ctx core.Context) error {
	return ctx.JSON(200, core.GetPipeline(ctx))
}

func (c *httpController) Delete(ctx core.Context) error {
	pipeline := core.GetPipeline(ctx)
	if err := c.pipelineRepository.Delete(nil, pipeline.ID); err != nil {
		return echo.NewHTTPError(500, "could not delete pipeline").WithInternal(err)
	}
	return ctx.NoContent(204)
}

// Graph returns steps, derived edges and per-step positions in a
// single response - one canvas render, one request.
func (c *httpController) Graph(ctx core.Context) error {
	return ctx.JSON(200, c.pipelineService.Graph(core.GetPipeline(ctx)))
}

func (c *httpController) AddStep(ctx core.Context) error {
	var req createStepRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	step, err := c.pipelineService.AddStep(core.GetPipeline(ctx), req)
	if err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return ctx.JSON(201, step)
}

func (c *httpController) Connect(ctx core.Context) error {
	var req connectRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	steps, err := c.pipelineService.Connect(core.GetPipeline(ctx), req.Source, req.Target)
	if err != nil {
		return echo.NewHTTPError(500, "could not connect steps").WithInternal(err)
	}
	return ctx.JSON(200, steps)
}

func (c *httpController) Disconnect(ctx core.Context) error {
	var req connectRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	steps, err := c.pipelineService.Disconnect(core.GetPipeline(ctx), req.Source, req.Target)
	if err != nil {
		return echo.NewHTTPError(500, "could not disconnect steps").WithInternal(err)
	}
	return ctx.JSON(200, steps)
}

func (c *httpController) RemoveStep(ctx core.Context) error {
	stepKey := core.GetParam(ctx, "stepKey")
	if err := c.pipelineService.RemoveStep(core.GetPipeline(ctx), stepKey); err != nil {
		return echo.NewHTTPError(500, "could not remove step").WithInternal(err)
	}
	return ctx.NoContent(204)
}

func (c *httpController) RenameStepKey(ctx core.Context) error {
	var req renameStepKeyRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	steps, err := c.pipelineService.RenameKey(core.GetPipeline(ctx), core.GetParam(ctx, "stepKey"), req.NewKey)
	if err != nil {
		return echo.NewHTTPError(500, "could not rename step key").WithInternal(err)
	}
	return ctx.JSON(200, steps)
}

// SavePosition persists a dragged node position onto the step.
func (c *httpController) SavePosition(ctx core.Context) error {
	var req positionRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	err := c.pipelineService.SavePosition(core.GetPipeline(ctx), core.GetParam(ctx, "stepKey"), models.UIPosition{X: req.X, Y: req.Y})
	if err != nil {
		return echo.NewHTTPError(500, "could not save step position").WithInternal(err)
	}
	return ctx.NoContent(204)
}
