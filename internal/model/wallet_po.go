package model

import (
	"time"
)

// Wallets corresponds to the wallets table. One wallet per user, address immutable.
type Wallets struct {
	Id                  int64  `gorm:"primaryKey"`
	UserId              int64  `gorm:"uniqueIndex;not null"`
	Address             string `gorm:"uniqueIndex;not null"`
	EncryptedPrivateKey string `gorm:"not null"`
	Chain               string `gorm:"default:ETH"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
