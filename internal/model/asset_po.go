package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Assets corresponds to the assets table. One balance line per (wallet, symbol, chain).
type Assets struct {
	Id           int64          `gorm:"primaryKey"`
	WalletId     int64          `gorm:"not null;uniqueIndex:idx_wallet_symbol_chain"`
	Symbol       string         `gorm:"not null;uniqueIndex:idx_wallet_symbol_chain"`
	Name         string         `gorm:"not null"`
	Chain        string         `gorm:"not null;uniqueIndex:idx_wallet_symbol_chain"`
	ContractAddr sql.NullString
	Decimals     int             `gorm:"default:18"`
	LogoUrl      sql.NullString
	IsEnabled    bool            `gorm:"default:true"`
	IsCustom     bool            `gorm:"default:false"`
	Balance      decimal.Decimal `gorm:"type:numeric(38,18);default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
