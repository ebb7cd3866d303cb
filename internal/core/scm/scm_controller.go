package scm

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/labstack/echo/v4"
)

type httpController struct {
	connectionRepository core.SCMConnectionRepository
	scmService           *service
}

func NewHTTPController(connectionRepository core.SCMConnectionRepository, scmService *service) *httpController {
	return &httpController{
		connectionRepository: connectionRepository,
		scmService:           scmService,
	}
}

type createRequest struct {
	Name        string `json:"name" validate:"required"`
	Provider    string `json:"provider" validate:"required,oneof=github gitlab"`
	BaseURL     string `json:"baseUrl" validate:"omitempty,url"`
	AccessToken string `json:"accessToken" validate:"required"`
}

func (c *httpController) List(ctx core.Context) error {
	connections, err := c.connectionRepository.GetAll()
	if err != nil {
		return echo.NewHTTPError(500, "could not list scm connections").WithInternal(err)
	}
	return ctx.JSON(200, connections)
}

func (c *httpController) Create(ctx core.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := core.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	connection := models.SCMConnection{
		Name:        req.Name,
		Provider:    models.SCMProvider(req.Provider),
		BaseURL:     req.BaseURL,
		AccessToken: req.AccessToken,
	}
	if err := c.connectionRepository.Create(nil, &connection); err != nil {
		return echo.NewHTTPError(500, "could not create scm connection").WithInternal(err)
	}

	// verify right away so the UI can show the connection state
	connection, _ = c.scmService.VerifyConnection(ctx.Request().Context(), connection)
	return ctx.JSON(201, connection)
}

func (c *httpController) Delete(ctx core.Context) error {
	connectionID, err := uuid.Parse(core.GetParam(ctx, "connectionID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid connection id").WithInternal(err)
	}

	if err := c.connectionRepository.Delete(nil, connectionID); err != nil {
		return echo.NewHTTPError(500, "could not delete scm connection").WithInternal(err)
	}
	return ctx.NoContent(204)
}

// Verify re-checks every connection's token.
func (c *httpController) Verify(ctx core.Context) error {
	connections, err := c.scmService.VerifyAll(ctx.Request().Context())
	if err != nil {
		return echo.NewHTTPError(500, "could not verify scm connections").WithInternal(err)
	}
	return ctx.JSON(200, connections)
}
