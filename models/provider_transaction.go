package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TxStatusOpen    = "OPEN"
	TxStatusSettled = "SETTLED"
	TxStatusVoided  = "VOIDED"
)

// ProviderTransaction is one bet round in the local ledger. ExternalID is the
// vendor-derived idempotency key; the composite unique index on
// (provider, external_id) is what makes duplicate submissions race-safe, the
// in-engine existence check is only a fast path.
//
// SettledAt stays nil while the round is open. Settlement or void fills it
// exactly once; rows are never deleted.
type ProviderTransaction struct {
	gorm.Model

	Provider   string `gorm:"size:32;uniqueIndex:idx_provider_external;index:idx_provider_round" json:"provider"`
	ExternalID string `gorm:"size:64;uniqueIndex:idx_provider_external" json:"external_id"`
	RoundID    string `gorm:"size:64;index:idx_provider_round" json:"round_id"`
	PlayID     string `gorm:"size:64;index" json:"play_id"`
	GameCode   string `gorm:"size:64" json:"game_code"`

	BetAmount  decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"bet_amount"`
	BetValid   decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"bet_valid"`
	WinAmount  decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"win_amount"`
	BetWinlose decimal.Decimal `gorm:"type:numeric(18,2);default:0" json:"bet_winlose"`
	Currency   string          `gorm:"size:8" json:"currency"`

	Status    string     `gorm:"size:16;index" json:"status"`
	BetAt     time.Time  `json:"bet_at"`
	SettledAt *time.Time `gorm:"index" json:"settled_at"`

	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`
}

// Open reports whether the round still awaits settlement.
func (t *ProviderTransaction) Open() bool {
	return t.SettledAt == nil
}
