package models

import (
	"github.com/google/uuid"
)

type FindingSeverity string

const (
	SeverityCritical FindingSeverity = "critical"
	SeverityHigh     FindingSeverity = "high"
	SeverityMedium   FindingSeverity = "medium"
	SeverityLow      FindingSeverity = "low"
	SeverityInfo     FindingSeverity = "info"
)

type FindingState string

const (
	FindingStateOpen          FindingState = "open"
	FindingStateAccepted      FindingState = "accepted"
	FindingStateFalsePositive FindingState = "false_positive"
	FindingStateFixed         FindingState = "fixed"
)

type Finding struct {
	Model
	AssetID uuid.UUID `json:"assetId" gorm:"type:uuid;not null;index;"`

	RuleID      string `json:"ruleId" gorm:"type:text;not null;"`
	Title       string `json:"title" gorm:"type:text;not null;"`
	Description string `json:"description" gorm:"type:text"`

	Severity FindingSeverity `json:"severity" gorm:"type:text;not null;"`
	State    FindingState    `json:"state" gorm:"type:text;default:'open';not null;"`

	// justification of the last triage decision, empty while open
	Justification string `json:"justification" gorm:"type:text"`

	// which agent reported the finding
	FoundBy *uuid.UUID `json:"foundBy" gorm:"type:uuid;"`
}

func (m Finding) TableName() string {
	return "findings"
}
