package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionsDao defines the interface for database operations on the sessions table.
type SessionsDao interface {
	FindOneByUserId(ctx context.Context, userId int64) (*Sessions, error)
	Upsert(ctx context.Context, userId int64, step, data string) error
}

type sessionsDao struct {
	db *gorm.DB
}

// NewSessionsDao creates a new instance of SessionsDao.
func NewSessionsDao(db *gorm.DB) SessionsDao {
	return &sessionsDao{db: db}
}

func (d *sessionsDao) FindOneByUserId(ctx context.Context, userId int64) (*Sessions, error) {
	var resp Sessions
	err := d.db.WithContext(ctx).Where("user_id = ?", userId).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// Upsert writes the session state through to storage, creating the row on first use.
func (d *sessionsDao) Upsert(ctx context.Context, userId int64, step, data string) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"step", "data"}),
	}).Create(&Sessions{
		UserId: userId,
		Step:   step,
		Data:   data,
	}).Error
}
