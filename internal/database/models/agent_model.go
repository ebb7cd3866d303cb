package models

import (
	"time"

	"gorm.io/datatypes"
)

type AgentStatus string

const (
	AgentStatusOnline   AgentStatus = "online"
	AgentStatusDegraded AgentStatus = "degraded"
	AgentStatusOffline  AgentStatus = "offline"
)

// Agent is a scan worker. Agents register themselves, send heartbeats
// and advertise the capabilities pipeline steps get scheduled against.
type Agent struct {
	Model
	Name string `json:"name" gorm:"type:text;not null;"`
	Slug string `json:"slug" gorm:"type:text;uniqueIndex;not null;"`

	Status  AgentStatus `json:"status" gorm:"type:text;default:'offline';not null;"`
	Version string      `json:"version" gorm:"type:text"`

	Capabilities datatypes.JSONSlice[string] `json:"capabilities" gorm:"type:jsonb"`

	LastHeartbeat *time.Time `json:"lastHeartbeat"`
}

func (m Agent) TableName() string {
	return "agents"
}

// IsStale reports whether the agent missed its heartbeat window.
func (m Agent) IsStale(window time.Duration) bool {
	if m.LastHeartbeat == nil {
		return true
	}
	return time.Since(*m.LastHeartbeat) > window
}
