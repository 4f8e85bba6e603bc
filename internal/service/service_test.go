package service

import (
	"fmt"
	"testing"

	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway SQLite database in a temp dir. The DSN asks
// for immediate write transactions so concurrent writers queue instead of
// deadlocking on a lock upgrade.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s/ledger.db?_busy_timeout=10000&_txlock=immediate", t.TempDir())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.User{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Description: name + " items"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID uuid.UUID, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       name,
		CategoryID: categoryID,
		Stock:      stock,
		Price:      decimal.NewFromFloat(9.99),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		FullName:  "Test " + string(role),
		FirstName: "Test",
		LastName:  string(role),
		Email:     email,
		Role:      role,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func newRepos(db *gorm.DB) (repository.ProductRepository, repository.CategoryRepository, repository.TransactionRepository, repository.UserRepository) {
	return repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewTransactionRepo(db),
		repository.NewUserRepo(db)
}
