package models

import (
	"time"
)

type SCMProvider string

const (
	SCMProviderGithub SCMProvider = "github"
	SCMProviderGitlab SCMProvider = "gitlab"
)

// SCMConnection links the platform to a source code management system.
// The access token is write-only - it never leaves the API.
type SCMConnection struct {
	Model
	Name     string      `json:"name" gorm:"type:text;not null;"`
	Provider SCMProvider `json:"provider" gorm:"type:text;not null;"`

	// empty means the provider's public endpoint
	BaseURL string `json:"baseUrl" gorm:"type:text"`

	AccessToken string `json:"-" gorm:"type:text;not null;"`

	LastVerified *time.Time `json:"lastVerified"`
	Healthy      bool       `json:"healthy" gorm:"default:false;"`
}

func (m SCMConnection) TableName() string {
	return "scm_connections"
}
