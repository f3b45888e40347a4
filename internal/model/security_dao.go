package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SecuritiesDao defines the interface for database operations on the securities table.
// The failure counter and lockout timestamp are mutated only through these methods.
type SecuritiesDao interface {
	Insert(ctx context.Context, data *Securities) error
	FindOneByUserId(ctx context.Context, userId int64) (*Securities, error)
	SetPinHash(ctx context.Context, userId int64, pinHash string) error
	ResetFailures(ctx context.Context, userId int64) error
	RecordFailure(ctx context.Context, userId int64, attempts int, lockedUntil *time.Time) error
}

type securitiesDao struct {
	db *gorm.DB
}

// NewSecuritiesDao creates a new instance of SecuritiesDao.
func NewSecuritiesDao(db *gorm.DB) SecuritiesDao {
	return &securitiesDao{db: db}
}

func (d *securitiesDao) Insert(ctx context.Context, data *Securities) error {
	return d.db.WithContext(ctx).Create(data).Error
}

func (d *securitiesDao) FindOneByUserId(ctx context.Context, userId int64) (*Securities, error) {
	var resp Securities
	err := d.db.WithContext(ctx).Where("user_id = ?", userId).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (d *securitiesDao) SetPinHash(ctx context.Context, userId int64, pinHash string) error {
	return d.db.WithContext(ctx).Model(&Securities{}).
		Where("user_id = ?", userId).
		UpdateColumn("pin_hash", sql.NullString{String: pinHash, Valid: true}).Error
}

// ResetFailures zeroes the counter and clears any lockout after a successful verification.
func (d *securitiesDao) ResetFailures(ctx context.Context, userId int64) error {
	return d.db.WithContext(ctx).Model(&Securities{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked_until":    sql.NullTime{},
		}).Error
}

// RecordFailure stores the new counter value and, once the threshold is reached,
// the lockout expiry.
func (d *securitiesDao) RecordFailure(ctx context.Context, userId int64, attempts int, lockedUntil *time.Time) error {
	locked := sql.NullTime{}
	if lockedUntil != nil {
		locked = sql.NullTime{Time: *lockedUntil, Valid: true}
	}
	return d.db.WithContext(ctx).Model(&Securities{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"failed_attempts": attempts,
			"locked_until":    locked,
		}).Error
}
