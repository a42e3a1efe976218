package repository

import (
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindAll() ([]model.Store, error)
	FindByID(id uint) (*model.Store, error)
	Update(store *model.Store) (UpdateOutcome, error)
	Delete(id uint) error
	Exists(id uint) (bool, error)
}

type storeRepository struct {
	table table[model.Store]
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{table: newTable[model.Store](db, "store")}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":     store.Name,
		"currency": store.Currency,
	})

	if err := r.table.create(store); err != nil {
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return nil
}

func (r *storeRepository) FindAll() ([]model.Store, error) {
	return r.table.findAll()
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	logger.Debug("Finding store by ID in database", map[string]interface{}{
		"store_id": id,
	})
	return r.table.findByID(id)
}

func (r *storeRepository) Update(store *model.Store) (UpdateOutcome, error) {
	logger.Debug("Updating store in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
		"currency": store.Currency,
	})

	return r.table.updateColumns(store.ID, map[string]interface{}{
		"name":     store.Name,
		"currency": store.Currency,
	})
}

func (r *storeRepository) Delete(id uint) error {
	logger.Debug("Deleting store from database", map[string]interface{}{
		"store_id": id,
	})
	return r.table.delete(id)
}

func (r *storeRepository) Exists(id uint) (bool, error) {
	return r.table.exists(id)
}
