package db

import (
	"testing"

	"github.com/ikkim/marketplace-api/config"
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_CreatesCatalogTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	for _, table := range []string{"stores", "products", "tags", "store_products", "product_tags"} {
		assert.True(t, testDB.Migrator().HasTable(table), table)
	}
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, testDB.Create(&model.Store{Name: "Market1", Currency: "USD"}).Error)
	require.NoError(t, testDB.Create(&model.StoreProduct{StoreID: 1, ProductID: 1}).Error)

	require.NoError(t, TruncateAllTables(testDB))

	var count int64
	require.NoError(t, testDB.Unscoped().Model(&model.Store{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, testDB.Model(&model.StoreProduct{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: t.TempDir() + "/market.db",
	}

	conn, err := Open(cfg)
	require.NoError(t, err)
	defer Close(conn)

	require.NoError(t, Migrate(conn))
	assert.True(t, conn.Migrator().HasTable(&model.StoreProduct{}))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
