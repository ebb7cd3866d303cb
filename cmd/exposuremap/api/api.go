// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package api

import (
	"log/slog"
	"sort"
	"time"

	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/core/agent"
	"github.com/l3montree-dev/exposuremap/internal/core/asset"
	"github.com/l3montree-dev/exposuremap/internal/core/attackpath"
	"github.com/l3montree-dev/exposuremap/internal/core/finding"
	"github.com/l3montree-dev/exposuremap/internal/core/pipeline"
	"github.com/l3montree-dev/exposuremap/internal/core/relationship"
	"github.com/l3montree-dev/exposuremap/internal/core/scm"
	"github.com/l3montree-dev/exposuremap/internal/database/repositories"
	"github.com/l3montree-dev/exposuremap/internal/echohttp"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func assetMiddleware(repository core.AssetRepository) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			assetSlug, err := core.GetAssetSlug(c)
			if err != nil {
				return echo.NewHTTPError(400, "invalid asset slug")
			}

			asset, err := repository.ReadBySlug(assetSlug)
			if err != nil {
				return echo.NewHTTPError(404, "could not find asset").WithInternal(err)
			}

			core.SetAsset(c, asset)

			return next(c)
		}
	}
}

func pipelineMiddleware(repository core.PipelineRepository) core.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			pipelineSlug, err := core.GetPipelineSlug(c)
			if err != nil {
				return echo.NewHTTPError(400, "invalid pipeline slug")
			}

			p, err := repository.ReadBySlug(pipelineSlug)
			if err != nil {
				return echo.NewHTTPError(404, "could not find pipeline").WithInternal(err)
			}

			// the editor operations always work on the full step list
			p, err = repository.ReadWithSteps(p.ID)
			if err != nil {
				return echo.NewHTTPError(500, "could not load pipeline steps").WithInternal(err)
			}

			core.SetPipeline(c, p)

			return next(c)
		}
	}
}

func health(c echo.Context) error {
	return c.String(200, "ok")
}

// stale agent detection runs in the background. A ticker is enough
// here, the check is idempotent and cheap.
func startHeartbeatDaemon(agentService interface{ MarkStaleAgentsOffline() error }) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := agentService.MarkStaleAgentsOffline(); err != nil {
				slog.Error("could not mark stale agents offline", "err", err)
			}
		}
	}()
}

func Start(db core.DB) {
	// init all repositories using the provided database
	assetRepository := repositories.NewAssetRepository(db)
	relationshipRepository := repositories.NewRelationshipRepository(db)
	pipelineRepository := repositories.NewPipelineRepository(db)
	agentRepository := repositories.NewAgentRepository(db)
	findingRepository := repositories.NewFindingRepository(db)
	scmConnectionRepository := repositories.NewSCMConnectionRepository(db)

	relationshipService := relationship.NewService(relationshipRepository, assetRepository, findingRepository)
	pipelineService := pipeline.NewService(pipelineRepository)
	agentService := agent.NewService(agentRepository, 128, 30*time.Second)
	findingService := finding.NewService(findingRepository, assetRepository)
	scmService := scm.NewService(scmConnectionRepository, scm.NewVerifier())

	// init all http controllers using the repositories
	assetController := asset.NewHTTPController(assetRepository, findingRepository)
	relationshipController := relationship.NewHTTPController(relationshipRepository, relationshipService)
	pipelineController := pipeline.NewHTTPController(pipelineRepository, pipelineService)
	attackPathController := attackpath.NewHTTPController(assetRepository, relationshipRepository)
	agentController := agent.NewHTTPController(agentRepository, agentService)
	findingController := finding.NewHTTPController(findingRepository, findingService)
	scmController := scm.NewHTTPController(scmConnectionRepository, scmService)

	server := echohttp.Server()
	server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiV1Router := server.Group("/api/v1")
	apiV1Router.GET("/health/", health)

	assetsRouter := apiV1Router.Group("/assets")
	assetsRouter.GET("/", assetController.List)
	assetsRouter.POST("/", assetController.Create)

	assetRouter := assetsRouter.Group("/:assetSlug", assetMiddleware(assetRepository))
	assetRouter.GET("/", assetController.Read)
	assetRouter.PATCH("/", assetController.Update)
	assetRouter.DELETE("/", assetController.Delete)
	assetRouter.GET("/findings/", assetController.Findings)
	assetRouter.GET("/attack-paths/", attackPathController.Discover)

	relationshipRouter := apiV1Router.Group("/relationships")
	relationshipRouter.GET("/", relationshipController.List)
	relationshipRouter.POST("/", relationshipController.Create)
	relationshipRouter.GET("/types/", relationshipController.Types)
	relationshipRouter.GET("/graph/", relationshipController.Graph)
	relationshipRouter.GET("/stats/", relationshipController.Stats)
	relationshipRouter.GET("/impact/:assetID/", relationshipController.Impact)
	relationshipRouter.DELETE("/:relationshipID/", relationshipController.Delete)

	pipelinesRouter := apiV1Router.Group("/pipelines")
	pipelinesRouter.GET("/", pipelineController.List)
	pipelinesRouter.POST("/", pipelineController.Create)

	pipelineRouter := pipelinesRouter.Group("/:pipelineSlug", pipelineMiddleware(pipelineRepository))
	pipelineRouter.GET("/", pipelineController.Read)
	pipelineRouter.DELETE("/", pipelineController.Delete)
	pipelineRouter.GET("/graph/", pipelineController.Graph)
	pipelineRouter.POST("/steps/", pipelineController.AddStep)
	pipelineRouter.POST("/connect/", pipelineController.Connect)
	pipelineRouter.POST("/disconnect/", pipelineController.Disconnect)
	pipelineRouter.DELETE("/steps/:stepKey/", pipelineController.RemoveStep)
	pipelineRouter.POST("/steps/:stepKey/rename/", pipelineController.RenameStepKey)
	pipelineRouter.POST("/steps/:stepKey/position/", pipelineController.SavePosition)

	agentRouter := apiV1Router.Group("/agents")
	agentRouter.GET("/", agentController.List)
	agentRouter.POST("/", agentController.Register)
	agentRouter.GET("/lookup/", agentController.ByCapability)
	agentRouter.POST("/:agentID/heartbeat/", agentController.Heartbeat)
	agentRouter.DELETE("/:agentID/", agentController.Delete)

	findingRouter := apiV1Router.Group("/findings")
	findingRouter.GET("/", findingController.List)
	findingRouter.GET("/:findingID/", findingController.Read)
	findingRouter.POST("/:findingID/triage/", findingController.Triage)

	scmRouter := apiV1Router.Group("/scm-connections")
	scmRouter.GET("/", scmController.List)
	scmRouter.POST("/", scmController.Create)
	scmRouter.DELETE("/:connectionID/", scmController.Delete)
	scmRouter.POST("/verify/", scmController.Verify)

	startHeartbeatDaemon(agentService)

	routes := server.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	// print all registered routes
	for _, route := range routes {
		if route.Method != "echo_route_not_found" {
			slog.Info(route.Path, "method", route.Method)
		}
	}
	slog.Error("failed to start server", "err", server.Start(":8080").Error())
}
