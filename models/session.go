package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	gorm.Model
	SID       string    `gorm:"size:36;uniqueIndex;not null"`
	PlayerID  uint      `gorm:"index"`
	Player    Player    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Provider  string    `gorm:"size:32;index"`
	GameCode  string    `gorm:"size:64"`
	ExpiresAt time.Time `gorm:"index"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	s.SID = strings.ToLower(uuid.New().String())
	return nil
}
