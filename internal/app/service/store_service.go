package service

import (
	"errors"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/pkg/logger"
)

var ErrStoreNotFound = errors.New("store not found")

type StoreService interface {
	ListStores() ([]dto.StoreDTO, error)
	GetStore(id uint) (dto.StoreDTO, error)
	CreateStore(in dto.StoreDTO) (dto.StoreDTO, error)
	UpdateStore(id uint, in dto.StoreDTO) error
	DeleteStore(id uint) error
}

type storeService struct {
	storeRepo       repository.StoreRepository
	defaultCurrency string
}

// NewStoreService builds the store service. An empty defaultCurrency falls
// back to model.DefaultCurrency.
func NewStoreService(storeRepo repository.StoreRepository, defaultCurrency string) StoreService {
	if defaultCurrency == "" {
		defaultCurrency = model.DefaultCurrency
	}
	return &storeService{
		storeRepo:       storeRepo,
		defaultCurrency: defaultCurrency,
	}
}

func (s *storeService) ListStores() ([]dto.StoreDTO, error) {
	stores, err := s.storeRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list stores", err)
		return nil, translateLookup(err, ErrStoreNotFound)
	}
	return dto.FromStores(stores), nil
}

func (s *storeService) GetStore(id uint) (dto.StoreDTO, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		return dto.StoreDTO{}, translateLookup(err, ErrStoreNotFound)
	}
	return dto.FromStore(store), nil
}

func (s *storeService) CreateStore(in dto.StoreDTO) (dto.StoreDTO, error) {
	store := &model.Store{
		Name:     in.Name,
		Currency: in.Currency,
		Products: []model.StoreProduct{},
	}
	if store.Currency == "" {
		store.Currency = s.defaultCurrency
	}

	logger.Info("Creating new store", map[string]interface{}{
		"name":     store.Name,
		"currency": store.Currency,
	})

	if err := s.storeRepo.Create(store); err != nil {
		logger.Error("Failed to create store", err, map[string]interface{}{
			"name": store.Name,
		})
		return dto.StoreDTO{}, translateLookup(err, ErrStoreNotFound)
	}

	logger.Info("Store created successfully", map[string]interface{}{
		"store_id": store.ID,
	})
	return dto.FromStore(store), nil
}

func (s *storeService) UpdateStore(id uint, in dto.StoreDTO) error {
	if in.ID != id {
		logger.Warn("Store update id mismatch", map[string]interface{}{
			"path_id": id,
			"body_id": in.ID,
		})
		return ErrIDMismatch
	}

	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		return translateLookup(err, ErrStoreNotFound)
	}

	store.Name = in.Name
	store.Currency = in.Currency

	outcome, err := s.storeRepo.Update(store)
	if err != nil {
		logger.Error("Failed to update store", err, map[string]interface{}{
			"store_id": id,
		})
		return translateLookup(err, ErrStoreNotFound)
	}
	if outcome == repository.UpdateConflict {
		return resolveConflict("store", id, s.storeRepo.Exists, ErrStoreNotFound)
	}

	logger.Info("Store updated successfully", map[string]interface{}{
		"store_id": id,
	})
	return nil
}

func (s *storeService) DeleteStore(id uint) error {
	if err := s.storeRepo.Delete(id); err != nil {
		return translateLookup(err, ErrStoreNotFound)
	}

	logger.Info("Store deleted successfully", map[string]interface{}{
		"store_id": id,
	})
	return nil
}
