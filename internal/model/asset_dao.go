package model

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetsDao defines the interface for database operations on the assets table.
// Balance mutations go through AddBalance so concurrent transfers serialize at the row
// instead of racing through an application-level read-modify-write.
type AssetsDao interface {
	Insert(ctx context.Context, data *Assets) error
	Upsert(ctx context.Context, data *Assets) error
	FindOne(ctx context.Context, id int64) (*Assets, error)
	FindOneByWalletSymbolChain(ctx context.Context, walletId int64, symbol, chain string) (*Assets, error)
	FindAllByWalletId(ctx context.Context, walletId int64) ([]*Assets, error)
	FindByWalletAndSymbols(ctx context.Context, walletId int64, symbols []string) ([]*Assets, error)
	AddBalance(ctx context.Context, walletId int64, symbol, chain string, delta decimal.Decimal) error
	SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	SetEnabled(ctx context.Context, id int64, enabled bool) error
}

type assetsDao struct {
	db *gorm.DB
}

// NewAssetsDao creates a new instance of AssetsDao.
func NewAssetsDao(db *gorm.DB) AssetsDao {
	return &assetsDao{db: db}
}

// Insert creates the asset row. A (wallet_id, symbol, chain) unique-index hit
// surfaces as ErrDuplicate so concurrent adds of the same token stay detectable.
func (d *assetsDao) Insert(ctx context.Context, data *Assets) error {
	err := d.db.WithContext(ctx).Create(data).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// Upsert inserts the asset or, when the (wallet_id, symbol, chain) row already exists,
// refreshes structural metadata only. 余额与开关在冲突时保持不变。
func (d *assetsDao) Upsert(ctx context.Context, data *Assets) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "wallet_id"}, {Name: "symbol"}, {Name: "chain"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"name", "contract_addr", "logo_url"}),
	}).Create(data).Error
}

func (d *assetsDao) FindOne(ctx context.Context, id int64) (*Assets, error) {
	var resp Assets
	err := d.db.WithContext(ctx).First(&resp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (d *assetsDao) FindOneByWalletSymbolChain(ctx context.Context, walletId int64, symbol, chain string) (*Assets, error) {
	var resp Assets
	err := d.db.WithContext(ctx).
		Where("wallet_id = ? AND symbol = ? AND chain = ?", walletId, symbol, chain).
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (d *assetsDao) FindAllByWalletId(ctx context.Context, walletId int64) ([]*Assets, error) {
	var assets []*Assets
	err := d.db.WithContext(ctx).
		Where("wallet_id = ?", walletId).
		Order("symbol asc").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (d *assetsDao) FindByWalletAndSymbols(ctx context.Context, walletId int64, symbols []string) ([]*Assets, error) {
	var assets []*Assets
	err := d.db.WithContext(ctx).
		Where("wallet_id = ? AND symbol IN ?", walletId, symbols).
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// AddBalance applies an atomic increment (negative delta for debit) at the storage layer.
// Returns ErrNotFound when no balance line matches, so a mutation against a missing
// row never passes silently.
func (d *assetsDao) AddBalance(ctx context.Context, walletId int64, symbol, chain string, delta decimal.Decimal) error {
	res := d.db.WithContext(ctx).Model(&Assets{}).
		Where("wallet_id = ? AND symbol = ? AND chain = ?", walletId, symbol, chain).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *assetsDao) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	return d.db.WithContext(ctx).Model(&Assets{}).
		Where("id = ?", id).
		UpdateColumn("balance", balance).Error
}

func (d *assetsDao) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return d.db.WithContext(ctx).Model(&Assets{}).
		Where("id = ?", id).
		UpdateColumn("is_enabled", enabled).Error
}
