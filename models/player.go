package models

import (
	"gorm.io/gorm"
)

// Player is the local mirror of a wallet account, one row per
// (provider, play_id). Created lazily on the first launch request and never
// deleted. Token and GameCode are overwritten on each new launch.
type Player struct {
	gorm.Model

	Provider string `gorm:"size:32;uniqueIndex:idx_provider_play;index" json:"provider"`
	PlayID   string `gorm:"size:64;uniqueIndex:idx_provider_play" json:"play_id"`
	Username string `gorm:"size:64" json:"username"`
	Currency string `gorm:"size:8" json:"currency"`
	Token    string `gorm:"size:100;index" json:"token"`
	GameCode string `gorm:"size:64" json:"game_code"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
