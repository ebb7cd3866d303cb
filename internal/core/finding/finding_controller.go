package finding

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	findingRepository core.FindingRepository
	findingService    *service
}

func NewHTTPController(findingRepository core.FindingRepository, findingService *service) *httpController {
	return &httpController{
		findingRepository: findingRepository,
		findingService:    findingService,
	}
}

func (c *httpController) List(ctx core.Context) error {
	if state := ctx.QueryParam("state"); state != "" {
		findings, err := c.findingRepository.GetByState(models.FindingState(state))
		if err != nil {
			return echo.NewHTTPError(500, "could not list findings").WithInternal(err)
		}
		return ctx.JSON(200, findings)
	}

	findings, err := c.findingRepository.GetByState(models.FindingStateOpen)
	if err != nil {
		return echo.NewHTTPError(500, "could not list findings").WithInternal(err)
	}
	return ctx.JSON(200, findings)
}

func (c *httpController) Read(ctx core.Context) error {
	findingID, err := uuid.Parse(core.GetParam(ctx, "findingID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid finding id").WithInternal(err)
	}

	finding, err := c.findingRepository.Read(findingID)
	if err != nil {
		return echo.NewHTTPError(404, "finding not found").WithInternal(err)
	}
	return ctx.JSON(200, finding)
}

type triageRequest struct {
	State         string `json:"state" validate:"required,oneof=open accepted false_positive fixed"`
	Justification string `json:"justification"`
}

// Triage transitions a finding's triage state.
func (c *httpController) Triage(ctx core.Context) error {
	findingID, err := uuid.Parse(core.GetParam(ctx, "findingID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid finding id").WithInternal(err)
	}

	var req triageRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	finding, err := c.findingService.Triage(findingID, models.FindingState(req.State), req.Justification)
	if err != nil {
		if err == ErrJustificationRequired {
			return echo.NewHTTPError(400, err.Error())
		}
		return echo.NewHTTPError(500, "could not triage finding").WithInternal(err)
	}
	return ctx.JSON(200, finding)
}
