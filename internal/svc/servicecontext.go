package svc

import (
	"log"
	"time"

	"tgwallet/internal/chain"
	"tgwallet/internal/config"
	"tgwallet/internal/crypt"
	"tgwallet/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config          config.Config
	DB              *gorm.DB
	UsersDao        model.UsersDao
	WalletsDao      model.WalletsDao
	AssetsDao       model.AssetsDao
	TransactionsDao model.TransactionsDao
	SecuritiesDao   model.SecuritiesDao
	SessionsDao     model.SessionsDao
	Chain           chain.Client
	EncryptionKey   []byte
}

func NewServiceContext(c config.Config) *ServiceContext {
	db, err := initDB(c.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	key, err := crypt.ResolveKey(c.EncryptionKey)
	if err != nil {
		log.Fatalf("failed to resolve encryption key: %v", err)
	}

	return &ServiceContext{
		Config:          c,
		DB:              db,
		UsersDao:        model.NewUsersDao(db),
		WalletsDao:      model.NewWalletsDao(db),
		AssetsDao:       model.NewAssetsDao(db),
		TransactionsDao: model.NewTransactionsDao(db),
		SecuritiesDao:   model.NewSecuritiesDao(db),
		SessionsDao:     model.NewSessionsDao(db),
		Chain:           chain.NewEvmClient(),
		EncryptionKey:   key,
	}
}

func initDB(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Users{},
		&model.Wallets{},
		&model.Assets{},
		&model.Transactions{},
		&model.Securities{},
		&model.Sessions{},
	); err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
