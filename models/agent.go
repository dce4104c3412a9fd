package models

import "gorm.io/gorm"

// Agent is an in-house front-end integration account. Integrator routes
// authenticate against it; provider callbacks never see this table.
type Agent struct {
	gorm.Model

	AgentCode string `gorm:"uniqueIndex;size:32" json:"agent_code"`
	SecretKey string `gorm:"size:128" json:"secret_key"`
	Currency  string `gorm:"size:8" json:"currency"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}
