package repository

import (
	"time"

	"go-stock-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows a ledger listing. Nil fields are ignored.
type TransactionFilter struct {
	Type      *model.TransactionType
	ProductID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// StockMovementData is one day of aggregated in/out quantities, for charts.
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// ProductActivity ranks a product by ledger activity within a window.
type ProductActivity struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	TransactionCount int64     `json:"transaction_count"`
}

// TransactionStats aggregates ledger activity within a date window.
type TransactionStats struct {
	TotalTransactions    int64             `json:"total_transactions"`
	StockInTransactions  int64             `json:"stock_in_transactions"`
	StockOutTransactions int64             `json:"stock_out_transactions"`
	TotalStockIn         int64             `json:"total_stock_in"`
	TotalStockOut        int64             `json:"total_stock_out"`
	MostActiveProducts   []ProductActivity `json:"most_active_products"`
}

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(filter TransactionFilter, page Page) ([]model.Transaction, int64, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error
	GetStats(startDate, endDate time.Time, topN int) (*TransactionStats, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	CountSince(t time.Time) (int64, error)
	FindRecent(limit int) ([]model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create takes the ambient tx so the entry commits atomically with the
// stock adjustment.
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll(filter TransactionFilter, page Page) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var total int64

	q := r.db.Model(&model.Transaction{})
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	// id DESC as secondary key keeps pages stable when timestamps collide.
	err := q.Preload("Product").Preload("Product.Category").Preload("User").
		Order("created_at DESC, id DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").Preload("Product.Category").Preload("User").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.Transaction{}, "product_id = ?", productID).Error
}

func (r *transactionRepo) GetStats(startDate, endDate time.Time, topN int) (*TransactionStats, error) {
	stats := &TransactionStats{}
	// Qualified so the column stays unambiguous in the joined top-products
	// query below.
	window := func() *gorm.DB {
		return r.db.Model(&model.Transaction{}).
			Where("transactions.created_at BETWEEN ? AND ?", startDate, endDate)
	}

	if err := window().Count(&stats.TotalTransactions).Error; err != nil {
		return nil, err
	}
	if err := window().Where("type = ?", model.TxStockIn).Count(&stats.StockInTransactions).Error; err != nil {
		return nil, err
	}
	if err := window().Where("type = ?", model.TxStockOut).Count(&stats.StockOutTransactions).Error; err != nil {
		return nil, err
	}
	if err := window().Where("type = ?", model.TxStockIn).
		Select("COALESCE(SUM(quantity), 0)").Scan(&stats.TotalStockIn).Error; err != nil {
		return nil, err
	}
	if err := window().Where("type = ?", model.TxStockOut).
		Select("COALESCE(SUM(quantity), 0)").Scan(&stats.TotalStockOut).Error; err != nil {
		return nil, err
	}

	// Top products by transaction count; ties break by product id ascending.
	err := window().
		Select("transactions.product_id, products.name AS product_name, COUNT(*) AS transaction_count").
		Joins("JOIN products ON products.id = transactions.product_id").
		Group("transactions.product_id, products.name").
		Order("transaction_count DESC, transactions.product_id ASC").
		Limit(topN).
		Scan(&stats.MostActiveProducts).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'stock_in' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'stock_out' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Product").Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}
