package service

import (
	"testing"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreServiceTest(t *testing.T) StoreService {
	return NewStoreService(repository.NewStoreRepository(setupTestDB(t)), "")
}

func TestStoreService_CreateStore_DefaultCurrency(t *testing.T) {
	storeService := setupStoreServiceTest(t)

	created, err := storeService.CreateStore(dto.StoreDTO{Name: "Corner"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", created.Currency)

	created, err = storeService.CreateStore(dto.StoreDTO{Name: "Market1", Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, dto.StoreDTO{ID: 2, Name: "Market1", Currency: "USD"}, created)
}

func TestStoreService_ConfiguredDefaultCurrency(t *testing.T) {
	storeService := NewStoreService(repository.NewStoreRepository(setupTestDB(t)), "GBP")

	created, err := storeService.CreateStore(dto.StoreDTO{Name: "Corner"})
	require.NoError(t, err)
	assert.Equal(t, "GBP", created.Currency)
}

func TestStoreService_UpdateStore(t *testing.T) {
	storeService := setupStoreServiceTest(t)

	created, err := storeService.CreateStore(dto.StoreDTO{Name: "Market1", Currency: "USD"})
	require.NoError(t, err)

	err = storeService.UpdateStore(created.ID, dto.StoreDTO{ID: created.ID + 1, Name: "Other"})
	assert.ErrorIs(t, err, ErrIDMismatch)

	err = storeService.UpdateStore(created.ID, dto.StoreDTO{ID: created.ID, Name: "Market One", Currency: "CHF"})
	require.NoError(t, err)

	found, err := storeService.GetStore(created.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StoreDTO{ID: created.ID, Name: "Market One", Currency: "CHF"}, found)

	err = storeService.UpdateStore(77, dto.StoreDTO{ID: 77})
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_ListAndDelete(t *testing.T) {
	storeService := setupStoreServiceTest(t)

	created, err := storeService.CreateStore(dto.StoreDTO{Name: "Market1"})
	require.NoError(t, err)

	stores, err := storeService.ListStores()
	require.NoError(t, err)
	assert.Len(t, stores, 1)

	require.NoError(t, storeService.DeleteStore(created.ID))

	_, err = storeService.GetStore(created.ID)
	assert.ErrorIs(t, err, ErrStoreNotFound)
	assert.ErrorIs(t, storeService.DeleteStore(created.ID), ErrStoreNotFound)

	stores, err = storeService.ListStores()
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestStoreService_TableUnavailable(t *testing.T) {
	storeService := NewStoreService(repository.NewStoreRepository(nil), "")

	_, err := storeService.ListStores()
	assert.ErrorIs(t, err, ErrTableUnavailable)
}
