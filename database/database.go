package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"saldo/config"
	"saldo/models"
)

// Connect opens the Postgres pool. TranslateError is required: the stores
// map gorm.ErrDuplicatedKey onto the idempotency rejection, which only works
// when the driver translates unique-violation errors.
func Connect(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info("connected to database")

	if cfg.DBAutoMigrate {
		log.Info("starting auto-migration")

		if err := db.AutoMigrate(
			&models.Agent{},
			&models.Player{},
			&models.ProviderTransaction{},
			&models.Session{},
		); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}

		log.Info("auto migration completed")
	}

	return db, nil
}
