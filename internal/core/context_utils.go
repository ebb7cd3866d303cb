package core

import (
	"fmt"
	"strconv"

	"github.com/l3montree-dev/exposuremap/internal/database"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

func SetAsset(ctx Context, asset models.Asset) {
	ctx.Set("asset", asset)
}

func GetAsset(ctx Context) models.Asset {
	return ctx.Get("asset").(models.Asset)
}

func HasAsset(ctx Context) bool {
	_, ok := ctx.Get("asset").(models.Asset)
	return ok
}

func SetPipeline(ctx Context, pipeline models.Pipeline) {
	ctx.Set("pipeline", pipeline)
}

func GetPipeline(ctx Context) models.Pipeline {
	return ctx.Get("pipeline").(models.Pipeline)
}

func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		fallback := ctx.Get(param)
		if fallback == nil {
			return ""
		}
		return fallback.(string)
	}
	return v
}

func GetAssetSlug(ctx Context) (string, error) {
	slug := GetParam(ctx, "assetSlug")
	if slug == "" {
		return "", fmt.Errorf("could not get asset slug")
	}
	return SanitizeParam(slug), nil
}

func GetPipelineSlug(ctx Context) (string, error) {
	slug := GetParam(ctx, "pipelineSlug")
	if slug == "" {
		return "", fmt.Errorf("could not get pipeline slug")
	}
	return SanitizeParam(slug), nil
}

func GetPageInfo(ctx Context) database.PageInfo {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 10
	}

	return database.PageInfo{
		Page:     page,
		PageSize: pageSize,
	}
}
