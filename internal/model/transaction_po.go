package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transactions corresponds to the transactions table. Append-only ledger entries:
// a row is written in pending state before any chain submission is attempted,
// then moved exactly once to success or failed.
type Transactions struct {
	Id        int64           `gorm:"primaryKey"`
	UserId    int64           `gorm:"not null;index"`
	ToAddress string          `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(38,18);not null"`
	Status    string          `gorm:"default:pending"`
	Chain     string          `gorm:"default:ETH"`
	TxHash    sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}
