package model

import (
	"time"
)

// Users corresponds to the users table. One row per Telegram account.
type Users struct {
	Id         int64     `gorm:"primaryKey"`
	TelegramId int64     `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
