package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"casemart/database"
	"casemart/models"
)

// setupTestDB points the package-global DB at a fresh in-memory SQLite
// database scoped to this test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

// setupFileDB is setupTestDB on a file-backed database with WAL and a
// busy timeout, so tests can run real overlapping transactions instead
// of sharing one serialized connection.
func setupFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "casemart.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, balance int64, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Balance:  balance,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	p := models.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		Category: "skins",
		Rarity:   models.RarityCommon,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func createCase(t *testing.T, db *gorm.DB, name string, price int64, items ...models.GachaItem) *models.GachaCase {
	t.Helper()
	gcase := models.GachaCase{Name: name, Price: price, Items: items}
	require.NoError(t, db.Create(&gcase).Error)
	return &gcase
}

func caseItem(name string, rarity models.Rarity, percent string) models.GachaItem {
	return models.GachaItem{
		Name:        name,
		Rarity:      rarity,
		Probability: decimal.RequireFromString(percent),
	}
}

func reload[T any](t *testing.T, db *gorm.DB, id uint) *T {
	t.Helper()
	var out T
	require.NoError(t, db.First(&out, id).Error)
	return &out
}
