package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"saldo/models"
)

// Settlement carries the terminal-state write for a round: the win fields
// and the timestamp that closes it.
type Settlement struct {
	WinAmount  decimal.Decimal
	BetWinlose decimal.Decimal
	Status     string
	SettledAt  time.Time
}

// TransactionStore reads and writes ProviderTransaction rows. All lookups
// are keyed on indexed columns.
type TransactionStore interface {
	FindByExternalID(ctx context.Context, provider, externalID string) (*models.ProviderTransaction, error)
	FindByRound(ctx context.Context, provider, roundID string) (*models.ProviderTransaction, error)
	Insert(ctx context.Context, txn *models.ProviderTransaction) error
	UpdateSettlement(ctx context.Context, provider, externalID string, s Settlement) error
	MarkVoided(ctx context.Context, provider, externalID string, at time.Time) error
}

type transactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) TransactionStore {
	return &transactionStore{db: db}
}

func (s *transactionStore) FindByExternalID(ctx context.Context, provider, externalID string) (*models.ProviderTransaction, error) {
	var txn models.ProviderTransaction
	err := s.db.WithContext(ctx).
		Where("provider = ? AND external_id = ?", provider, externalID).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (s *transactionStore) FindByRound(ctx context.Context, provider, roundID string) (*models.ProviderTransaction, error) {
	var txn models.ProviderTransaction
	err := s.db.WithContext(ctx).
		Where("provider = ? AND round_id = ?", provider, roundID).
		Order("id ASC").
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// Insert relies on the (provider, external_id) unique index: under concurrent
// duplicate submissions exactly one insert wins, the loser gets ErrDuplicate.
func (s *transactionStore) Insert(ctx context.Context, txn *models.ProviderTransaction) error {
	err := s.db.WithContext(ctx).Create(txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *transactionStore) UpdateSettlement(ctx context.Context, provider, externalID string, st Settlement) error {
	settledAt := st.SettledAt
	res := s.db.WithContext(ctx).
		Model(&models.ProviderTransaction{}).
		Where("provider = ? AND external_id = ? AND settled_at IS NULL", provider, externalID).
		Updates(map[string]any{
			"win_amount":  st.WinAmount,
			"bet_winlose": st.BetWinlose,
			"status":      st.Status,
			"settled_at":  &settledAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVoided closes a round as net zero: win_amount mirrors bet_amount so the
// turnover report still carries the stake. Unlike UpdateSettlement it may hit
// an already-settled row, the caller decides whether that is permitted.
func (s *transactionStore) MarkVoided(ctx context.Context, provider, externalID string, at time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&models.ProviderTransaction{}).
		Where("provider = ? AND external_id = ? AND status <> ?", provider, externalID, models.TxStatusVoided).
		Updates(map[string]any{
			"win_amount":  gorm.Expr("bet_amount"),
			"bet_winlose": decimal.Zero,
			"status":      models.TxStatusVoided,
			"settled_at":  &at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
