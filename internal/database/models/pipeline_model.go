package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Pipeline struct {
	Model
	Name        string `json:"name" gorm:"type:text;not null;"`
	Slug        string `json:"slug" gorm:"type:text;uniqueIndex;not null;"`
	Description string `json:"description" gorm:"type:text"`

	Steps []PipelineStep `json:"steps" gorm:"foreignKey:PipelineID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (m Pipeline) TableName() string {
	return "pipelines"
}

// UIPosition is the persisted canvas position of a step. It is only
// written when a user drags a node - automatic layout is never stored.
type UIPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PipelineStep references its dependencies by step key, not by id.
// Keys are human-chosen and survive reorder and id regeneration, which
// is exactly why the indirection exists. The price is that a key rename
// has to cascade through every other step's depends_on list.
type PipelineStep struct {
	Model
	PipelineID uuid.UUID `json:"pipelineId" gorm:"uniqueIndex:idx_step_pipeline_key;not null;type:uuid;"`

	StepKey string `json:"stepKey" gorm:"uniqueIndex:idx_step_pipeline_key;type:text;not null;"`
	Name    string `json:"name" gorm:"type:text;not null;"`

	DependsOn datatypes.JSONSlice[string] `json:"dependsOn" gorm:"type:jsonb"`

	TimeoutSeconds int `json:"timeoutSeconds" gorm:"default:300;"`
	Order          int `json:"order" gorm:"column:step_order;default:0;"`

	Tool         string                      `json:"tool" gorm:"type:text"`
	Capabilities datatypes.JSONSlice[string] `json:"capabilities" gorm:"type:jsonb"`

	UIPosition *datatypes.JSONType[UIPosition] `json:"uiPosition" gorm:"type:jsonb"`
}

func (m PipelineStep) TableName() string {
	return "pipeline_steps"
}
