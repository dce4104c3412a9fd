package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"saldo/models"
)

// PlayerStore reads and writes the local Player mirror.
type PlayerStore interface {
	Find(ctx context.Context, provider, playID string) (*models.Player, error)
	CreateIfAbsent(ctx context.Context, player *models.Player) error
	UpdateLaunch(ctx context.Context, provider, playID, token, gameCode string) error
}

type playerStore struct {
	db *gorm.DB
}

func NewPlayerStore(db *gorm.DB) PlayerStore {
	return &playerStore{db: db}
}

func (s *playerStore) Find(ctx context.Context, provider, playID string) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		Where("provider = ? AND play_id = ?", provider, playID).
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &player, nil
}

// CreateIfAbsent is an atomic insert-or-ignore. Concurrent first-launch
// requests for the same player must both succeed; ON CONFLICT DO NOTHING
// keeps that race out of application code.
func (s *playerStore) CreateIfAbsent(ctx context.Context, player *models.Player) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "play_id"}},
			DoNothing: true,
		}).
		Create(player).Error
}

func (s *playerStore) UpdateLaunch(ctx context.Context, provider, playID, token, gameCode string) error {
	return s.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("provider = ? AND play_id = ?", provider, playID).
		Updates(map[string]any{"token": token, "game_code": gameCode}).Error
}
