package pipeline

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
)

type createRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (r createRequest) toModel() models.Pipeline {
	return models.Pipeline{
		Name:        r.Name,
		Slug:        slug.Make(r.Name),
		Description: r.Description,
	}
}

type createStepRequest struct {
	StepKey string `json:"stepKey" validate:"required"`
	Name    string `json:"name" validate:"required"`

	DependsOn      []string `json:"dependsOn"`
	TimeoutSeconds int      `json:"timeoutSeconds" validate:"omitempty,min=1"`

	Tool         string   `json:"tool"`
	Capabilities []string `json:"capabilities"`
}

func (r createStepRequest) toModel(pipelineID uuid.UUID, order int) models.PipelineStep {
	timeout := r.TimeoutSeconds
	if timeout == 0 {
		timeout = 300
	}
	return models.PipelineStep{
		PipelineID:     pipelineID,
		StepKey:        r.StepKey,
		Name:           r.Name,
		DependsOn:      r.DependsOn,
		TimeoutSeconds: timeout,
		Order:          order,
		Tool:           r.Tool,
		Capabilities:   r.Capabilities,
	}
}

type connectRequest struct {
	// step keys, or the synthetic __start__/__end__ ids
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

type renameStepKeyRequest struct {
	NewKey string `json:"newKey" validate:"required"`
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// graphDTO bundles everything the canvas needs for one render.
type graphDTO struct {
	Steps     []models.PipelineStep          `json:"steps"`
	Edges     []Edge                         `json:"edges"`
	Positions map[uuid.UUID]models.UIPosition `json:"positions"`
}
