package service

import (
	"testing"

	"go-stock-api/internal/apperr"
	"go-stock-api/internal/media"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogFixture(t *testing.T) (CatalogService, *gorm.DB, model.Identity) {
	t.Helper()
	db := setupTestDB(t)
	productRepo, categoryRepo, txRepo, _ := newRepos(db)
	store := media.NewDiskStore(t.TempDir(), "/storage")
	user := seedUser(t, db, "admin@stock.com", model.RoleAdmin)

	svc := NewCatalogService(productRepo, categoryRepo, txRepo, store, db)
	return svc, db, user.Identity()
}

func TestCreateProduct(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")

	product, err := svc.CreateProduct(identity, &CreateProductRequest{
		Name:       "Wireless Mouse",
		CategoryID: category.ID,
		Stock:      40,
		Price:      decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)

	assert.Equal(t, 40, product.Stock)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("19.99")))
	require.NotNil(t, product.Category)
	assert.Equal(t, "Electronics", product.Category.Name)
}

func TestCreateProductRejections(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	seedProduct(t, db, "Wireless Mouse", category.ID, 5)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.CreateProduct(identity, &CreateProductRequest{
			Name: "Wireless Mouse", CategoryID: category.ID,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.CreateProduct(identity, &CreateProductRequest{
			Name: "USB-C Dock", CategoryID: uuid.New(),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := svc.CreateProduct(identity, &CreateProductRequest{
			Name: "USB-C Dock", CategoryID: category.ID,
			Price: decimal.RequireFromString("-1"),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.CreateProduct(identity, &CreateProductRequest{CategoryID: category.ID})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

// Updating a product can touch every field except stock; stock moves only
// through ledger transactions.
func TestUpdateProductLeavesStockAlone(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	other := seedCategory(t, db, "Office Supplies")
	product := seedProduct(t, db, "Wireless Mouse", category.ID, 17)

	updated, err := svc.UpdateProduct(identity, product.ID, &UpdateProductRequest{
		Name:        "Wireless Mouse v2",
		Description: "updated",
		CategoryID:  other.ID,
		Price:       decimal.RequireFromString("24.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Wireless Mouse v2", updated.Name)
	assert.Equal(t, other.ID, updated.CategoryID)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Office Supplies", updated.Category.Name)
	assert.Equal(t, 17, updated.Stock)

	// The move survives a fresh read.
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, other.ID, reloaded.CategoryID)
}

func TestUpdateProductNameConflict(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	seedProduct(t, db, "Wireless Mouse", category.ID, 5)
	product := seedProduct(t, db, "USB-C Dock", category.ID, 5)

	_, err := svc.UpdateProduct(identity, product.ID, &UpdateProductRequest{
		Name: "Wireless Mouse", CategoryID: category.ID,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Keeping its own name is not a conflict.
	_, err = svc.UpdateProduct(identity, product.ID, &UpdateProductRequest{
		Name: "USB-C Dock", CategoryID: category.ID,
	})
	require.NoError(t, err)
}

func TestDeleteProductCascadesLedger(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, "Wireless Mouse", category.ID, 25)
	user := seedUser(t, db, "second@stock.com", model.RoleAdmin)

	productRepo, _, txRepo, _ := newRepos(db)
	ledger := NewLedgerService(productRepo, txRepo, db, nil)
	for i := 0; i < 3; i++ {
		_, err := ledger.RecordTransaction(user.Identity(), &RecordTransactionRequest{
			ProductID: product.ID, Type: model.TxStockIn, Quantity: 1,
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteProduct(identity, product.ID))

	_, err := svc.GetProduct(product.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var count int64
	require.NoError(t, db.Model(&model.Transaction{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListProductsSearch(t *testing.T) {
	svc, db, _ := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	seedProduct(t, db, "Wireless Mouse", category.ID, 5)
	seedProduct(t, db, "Wireless Keyboard", category.ID, 5)
	seedProduct(t, db, "USB-C Dock", category.ID, 5)

	products, total, err := svc.ListProducts(repository.ProductFilter{Search: "Wireless"}, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	// Name-ordered listing.
	assert.Equal(t, "Wireless Keyboard", products[0].Name)
	assert.Equal(t, "Wireless Mouse", products[1].Name)
}

func TestListLowStock(t *testing.T) {
	svc, db, _ := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	seedProduct(t, db, "Plentiful", category.ID, 50)
	seedProduct(t, db, "Scarce", category.ID, 3)
	seedProduct(t, db, "Borderline", category.ID, 10)
	seedProduct(t, db, "Empty", category.ID, 0)

	products, total, err := svc.ListLowStock(10, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, products, 3)
	// Scarcest first.
	assert.Equal(t, "Empty", products[0].Name)
	assert.Equal(t, "Scarce", products[1].Name)
	assert.Equal(t, "Borderline", products[2].Name)
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _, identity := newCatalogFixture(t)

	category, err := svc.CreateCategory(identity, &CategoryRequest{Name: "Furniture", Description: "desks and chairs"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(identity, &CategoryRequest{Name: "Furniture"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	found, err := svc.GetCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Furniture", found.Name)

	_, err = svc.GetCategory(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	updated, err := svc.UpdateCategory(identity, category.ID, &CategoryRequest{Name: "Office Furniture"})
	require.NoError(t, err)
	assert.Equal(t, "Office Furniture", updated.Name)

	require.NoError(t, svc.DeleteCategory(identity, category.ID))

	err = svc.DeleteCategory(identity, category.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, "Wireless Mouse", category.ID, 5)

	err := svc.DeleteCategory(identity, category.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Once the products are gone the category can be deleted.
	require.NoError(t, svc.DeleteProduct(identity, product.ID))
	require.NoError(t, svc.DeleteCategory(identity, category.ID))
}

// A deleted product's name (and a deleted category's) must be reusable;
// soft-deleted rows may not hold names hostage at the constraint level.
func TestRecreateAfterDelete(t *testing.T) {
	svc, db, identity := newCatalogFixture(t)
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, "Wireless Mouse", category.ID, 5)

	require.NoError(t, svc.DeleteProduct(identity, product.ID))

	recreated, err := svc.CreateProduct(identity, &CreateProductRequest{
		Name: "Wireless Mouse", CategoryID: category.ID, Stock: 3,
	})
	require.NoError(t, err)
	assert.NotEqual(t, product.ID, recreated.ID)
	assert.Equal(t, 3, recreated.Stock)

	require.NoError(t, svc.DeleteProduct(identity, recreated.ID))
	require.NoError(t, svc.DeleteCategory(identity, category.ID))

	again, err := svc.CreateCategory(identity, &CategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	assert.NotEqual(t, category.ID, again.ID)
}

func TestCategoryOptions(t *testing.T) {
	svc, db, _ := newCatalogFixture(t)
	seedCategory(t, db, "Furniture")
	seedCategory(t, db, "Electronics")

	options, err := svc.CategoryOptions()
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Electronics", options[0].Name)
	assert.Equal(t, "Furniture", options[1].Name)
}
