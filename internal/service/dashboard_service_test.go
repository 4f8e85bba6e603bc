package service

import (
	"testing"

	"go-stock-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardOverview(t *testing.T) {
	db := setupTestDB(t)
	productRepo, categoryRepo, txRepo, _ := newRepos(db)

	category := seedCategory(t, db, "Electronics")
	plentiful := seedProduct(t, db, "Plentiful", category.ID, 50)
	seedProduct(t, db, "Scarce", category.ID, 3)
	user := seedUser(t, db, "admin@stock.com", model.RoleAdmin)

	ledger := NewLedgerService(productRepo, txRepo, db, nil)
	for i := 0; i < 7; i++ {
		_, err := ledger.RecordTransaction(user.Identity(), &RecordTransactionRequest{
			ProductID: plentiful.ID, Type: model.TxStockIn, Quantity: 1,
		})
		require.NoError(t, err)
	}

	svc := NewDashboardService(productRepo, categoryRepo, txRepo)
	overview, err := svc.Overview()
	require.NoError(t, err)

	assert.Equal(t, int64(2), overview.TotalProducts)
	assert.Equal(t, int64(1), overview.TotalCategories)
	assert.Equal(t, int64(1), overview.LowStockProducts)
	assert.Equal(t, int64(7), overview.TransactionsToday)
	assert.Len(t, overview.RecentTransactions, 5)
}

func TestDashboardStockMovement(t *testing.T) {
	db := setupTestDB(t)
	productRepo, categoryRepo, txRepo, _ := newRepos(db)

	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, "Wireless Mouse", category.ID, 50)
	user := seedUser(t, db, "admin@stock.com", model.RoleAdmin)

	ledger := NewLedgerService(productRepo, txRepo, db, nil)
	_, err := ledger.RecordTransaction(user.Identity(), &RecordTransactionRequest{
		ProductID: product.ID, Type: model.TxStockIn, Quantity: 12,
	})
	require.NoError(t, err)
	_, err = ledger.RecordTransaction(user.Identity(), &RecordTransactionRequest{
		ProductID: product.ID, Type: model.TxStockOut, Quantity: 4,
	})
	require.NoError(t, err)

	svc := NewDashboardService(productRepo, categoryRepo, txRepo)
	movement, err := svc.StockMovement(7)
	require.NoError(t, err)

	require.Len(t, movement, 1) // all entries landed today
	assert.Equal(t, 12, movement[0].Inbound)
	assert.Equal(t, 4, movement[0].Outbound)
}
