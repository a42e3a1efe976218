package service

import (
	"testing"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relationTestEnv struct {
	products  ProductService
	stores    StoreService
	tags      TagService
	relations RelationService
	relRepo   repository.RelationRepository
}

func setupRelationServiceTest(t *testing.T, opts RelationOptions) relationTestEnv {
	testDB := setupTestDB(t)

	productRepo := repository.NewProductRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	relationRepo := repository.NewRelationRepository(testDB)

	return relationTestEnv{
		products:  NewProductService(productRepo),
		stores:    NewStoreService(storeRepo, ""),
		tags:      NewTagService(tagRepo),
		relations: NewRelationService(productRepo, storeRepo, tagRepo, relationRepo, opts),
		relRepo:   relationRepo,
	}
}

func (e relationTestEnv) seed(t *testing.T) (dto.StoreDTO, dto.ProductDTO) {
	t.Helper()
	store, err := e.stores.CreateStore(dto.StoreDTO{Name: "Market1", Currency: "USD"})
	require.NoError(t, err)
	product, err := e.products.CreateProduct(dto.ProductDTO{Name: "Milk", ShelfLife: 7})
	require.NoError(t, err)
	return store, product
}

func TestRelationService_AddStoreToProduct_IsBidirectional(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	link, err := env.relations.AddStoreToProduct(product.ID, store.ID, decimal.RequireFromString("2.50"))
	require.NoError(t, err)

	require.NotNil(t, link.Association)
	assert.Equal(t, store.ID, link.Association.StoreID)
	assert.Equal(t, product.ID, link.Association.ProductID)
	assert.True(t, link.Association.Price.Equal(decimal.RequireFromString("2.5")))

	// in-memory collections on both parents hold the new row
	require.Len(t, link.Product.Stores, 1)
	require.Len(t, link.Store.Products, 1)
	assert.Equal(t, link.Association.ID, link.Product.Stores[0].ID)
	assert.Equal(t, link.Association.ID, link.Store.Products[0].ID)

	stores, err := env.relations.ListProductStores(product.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.StoreDTO{store}, stores)

	products, err := env.relations.ListStoreProducts(store.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.ProductDTO{product}, products)
}

func TestRelationService_AddProductToStore(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	_, err := env.relations.AddProductToStore(store.ID, product.ID, decimal.NewFromInt(3))
	require.NoError(t, err)

	stores, err := env.relations.ListProductStores(product.ID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, store.ID, stores[0].ID)
}

func TestRelationService_AddStoreToProduct_MissingParentWritesNothing(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	tests := []struct {
		name      string
		productID uint
		storeID   uint
		wantErr   error
	}{
		{"missing store", product.ID, 999, ErrStoreNotFound},
		{"missing product", 999, store.ID, ErrProductNotFound},
		{"both missing", 998, 999, ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := env.relations.AddStoreToProduct(tt.productID, tt.storeID, decimal.NewFromInt(1))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, link)
		})
	}

	_, err := env.relations.AddProductToStore(999, product.ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrStoreNotFound)

	rows, err := env.relRepo.FindStoreProductsByProduct(product.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, err = env.relRepo.FindStoreProductsByStore(store.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRelationService_RepeatedAssociate_AppendsSecondRow(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	_, err := env.relations.AddStoreToProduct(product.ID, store.ID, decimal.NewFromInt(1))
	require.NoError(t, err)
	link, err := env.relations.AddStoreToProduct(product.ID, store.ID, decimal.NewFromInt(2))
	require.NoError(t, err)

	assert.Len(t, link.Product.Stores, 2)
	assert.Len(t, link.Store.Products, 2)

	stores, err := env.relations.ListProductStores(product.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.StoreDTO{store, store}, stores)

	products, err := env.relations.ListStoreProducts(store.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestRelationService_RepeatedAssociate_UpsertUpdatesPrice(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{UpsertStoreProducts: true})
	store, product := env.seed(t)

	first, err := env.relations.AddStoreToProduct(product.ID, store.ID, decimal.NewFromInt(1))
	require.NoError(t, err)
	second, err := env.relations.AddStoreToProduct(product.ID, store.ID, decimal.RequireFromString("4.20"))
	require.NoError(t, err)

	assert.Equal(t, first.Association.ID, second.Association.ID)
	require.Len(t, second.Product.Stores, 1)
	assert.True(t, second.Product.Stores[0].Price.Equal(decimal.RequireFromString("4.2")))

	rows, err := env.relRepo.FindStoreProductsByProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("4.20")))
}

func TestRelationService_Traversal_SkipsDeletedCounterparts(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	other, err := env.stores.CreateStore(dto.StoreDTO{Name: "Market2"})
	require.NoError(t, err)

	_, err = env.relations.AddStoreToProduct(product.ID, store.ID, decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = env.relations.AddStoreToProduct(product.ID, other.ID, decimal.NewFromInt(2))
	require.NoError(t, err)

	require.NoError(t, env.stores.DeleteStore(store.ID))

	stores, err := env.relations.ListProductStores(product.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.StoreDTO{other}, stores)

	report, err := env.relations.AuditDangling()
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.StoreProducts)
	assert.Equal(t, int64(1), report.Total())
}

func TestRelationService_Traversal_MissingOwner(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})

	_, err := env.relations.ListProductStores(1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = env.relations.ListStoreProducts(1)
	assert.ErrorIs(t, err, ErrStoreNotFound)

	_, err = env.relations.ListTagProducts(1)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestRelationService_Traversal_InsertionOrder(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, _ := env.seed(t)

	var created []dto.ProductDTO
	for _, name := range []string{"Zucchini", "Apple", "Milk"} {
		p, err := env.products.CreateProduct(dto.ProductDTO{Name: name})
		require.NoError(t, err)
		created = append(created, p)
	}
	// associate in reverse id order; traversal follows association order
	for i := len(created) - 1; i >= 0; i-- {
		_, err := env.relations.AddProductToStore(store.ID, created[i].ID, decimal.Zero)
		require.NoError(t, err)
	}

	products, err := env.relations.ListStoreProducts(store.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.ProductDTO{created[2], created[1], created[0]}, products)
}

func TestRelationService_ProductTags(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	_, product := env.seed(t)

	tag, err := env.tags.CreateTag(dto.TagDTO{Name: "dairy"})
	require.NoError(t, err)

	link, err := env.relations.AddTagToProduct(product.ID, tag.ID)
	require.NoError(t, err)
	require.Len(t, link.Product.Tags, 1)
	require.Len(t, link.Tag.Products, 1)

	tags, err := env.relations.ListProductTags(product.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.TagDTO{tag}, tags)

	products, err := env.relations.ListTagProducts(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.ProductDTO{product}, products)

	_, err = env.relations.AddTagToProduct(product.ID, 404)
	assert.ErrorIs(t, err, ErrTagNotFound)

	require.NoError(t, env.relations.RemoveTagFromProduct(product.ID, tag.ID))
	assert.ErrorIs(t, env.relations.RemoveTagFromProduct(product.ID, tag.ID), ErrAssociationNotFound)

	tags, err = env.relations.ListProductTags(product.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestRelationService_RemoveStoreFromProduct(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	_, err := env.relations.AddStoreToProduct(product.ID, store.ID, decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = env.relations.AddStoreToProduct(product.ID, store.ID, decimal.NewFromInt(1))
	require.NoError(t, err)

	require.NoError(t, env.relations.RemoveStoreFromProduct(product.ID, store.ID))

	stores, err := env.relations.ListProductStores(product.ID)
	require.NoError(t, err)
	assert.Empty(t, stores)

	assert.ErrorIs(t, env.relations.RemoveStoreFromProduct(product.ID, store.ID), ErrAssociationNotFound)
	assert.ErrorIs(t, env.relations.RemoveStoreFromProduct(404, store.ID), ErrProductNotFound)
}

func TestRelationService_TableUnavailable(t *testing.T) {
	relations := NewRelationService(
		repository.NewProductRepository(nil),
		repository.NewStoreRepository(nil),
		repository.NewTagRepository(nil),
		repository.NewRelationRepository(nil),
		RelationOptions{},
	)

	_, err := relations.ListProductStores(1)
	assert.ErrorIs(t, err, ErrTableUnavailable)

	_, err = relations.AddStoreToProduct(1, 1, decimal.Zero)
	assert.ErrorIs(t, err, ErrTableUnavailable)
}

func TestDanglingReport_Total(t *testing.T) {
	assert.Equal(t, int64(5), DanglingReport{StoreProducts: 2, ProductTags: 3}.Total())
	assert.Zero(t, DanglingReport{}.Total())
}

func TestRelationService_ListProductOffers(t *testing.T) {
	env := setupRelationServiceTest(t, RelationOptions{})
	store, product := env.seed(t)

	gone, err := env.stores.CreateStore(dto.StoreDTO{Name: "Closed"})
	require.NoError(t, err)

	_, err = env.relations.AddStoreToProduct(product.ID, store.ID, decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	_, err = env.relations.AddStoreToProduct(product.ID, gone.ID, decimal.NewFromInt(9))
	require.NoError(t, err)
	require.NoError(t, env.stores.DeleteStore(gone.ID))

	offers, err := env.relations.ListProductOffers(product.ID)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, store.ID, offers[0].StoreID)
	assert.Equal(t, product.ID, offers[0].ProductID)
	assert.True(t, offers[0].Price.Equal(decimal.RequireFromString("2.5")))

	_, err = env.relations.ListProductOffers(404)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
