package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// UsersDao defines the interface for database operations on the users table.
type UsersDao interface {
	Insert(ctx context.Context, data *Users) error
	FindOneByTelegramId(ctx context.Context, telegramId int64) (*Users, error)
}

type usersDao struct {
	db *gorm.DB
}

// NewUsersDao creates a new instance of UsersDao.
func NewUsersDao(db *gorm.DB) UsersDao {
	return &usersDao{db: db}
}

func (d *usersDao) Insert(ctx context.Context, data *Users) error {
	return d.db.WithContext(ctx).Create(data).Error
}

func (d *usersDao) FindOneByTelegramId(ctx context.Context, telegramId int64) (*Users, error) {
	var resp Users
	err := d.db.WithContext(ctx).Where("telegram_id = ?", telegramId).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}
