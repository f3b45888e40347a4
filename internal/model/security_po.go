package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Securities corresponds to the securities table. One record per user holding the PIN
// hash and the lockout bookkeeping.
type Securities struct {
	Id             int64          `gorm:"primaryKey"`
	UserId         int64          `gorm:"uniqueIndex;not null"`
	PinHash        sql.NullString
	FailedAttempts int             `gorm:"default:0"`
	LockedUntil    sql.NullTime
	DailyLimit     decimal.Decimal `gorm:"type:numeric(38,18);default:1000"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
