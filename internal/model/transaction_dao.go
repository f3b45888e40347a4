package model

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// TransactionsDao defines the interface for database operations on the transactions table.
type TransactionsDao interface {
	Insert(ctx context.Context, data *Transactions) error
	FindRecentByUserId(ctx context.Context, userId int64, limit int) ([]*Transactions, error)
	MarkSuccess(ctx context.Context, id int64, txHash string) error
	MarkFailed(ctx context.Context, id int64) error
}

type transactionsDao struct {
	db *gorm.DB
}

// NewTransactionsDao creates a new instance of TransactionsDao.
func NewTransactionsDao(db *gorm.DB) TransactionsDao {
	return &transactionsDao{db: db}
}

func (d *transactionsDao) Insert(ctx context.Context, data *Transactions) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// FindRecentByUserId returns the newest records first, bounded by limit.
func (d *transactionsDao) FindRecentByUserId(ctx context.Context, userId int64, limit int) ([]*Transactions, error) {
	var txs []*Transactions
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at desc").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// MarkSuccess moves a pending record to its terminal success state and attaches the hash.
func (d *transactionsDao) MarkSuccess(ctx context.Context, id int64, txHash string) error {
	return d.db.WithContext(ctx).Model(&Transactions{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  "success",
			"tx_hash": sql.NullString{String: txHash, Valid: true},
		}).Error
}

// MarkFailed moves a pending record to its terminal failed state. The record is kept
// for audit; no automatic retry.
func (d *transactionsDao) MarkFailed(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&Transactions{}).
		Where("id = ?", id).
		UpdateColumn("status", "failed").Error
}
