package db

import (
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the catalog, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Store{},
		&model.Product{},
		&model.Tag{},
		&model.StoreProduct{},
		&model.ProductTag{},
	}
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
