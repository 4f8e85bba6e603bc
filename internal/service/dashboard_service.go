package service

import (
	"time"

	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
)

// LowStockThreshold is the default cutoff for the dashboard's low-stock
// counter, matching the low-stock listing default.
const LowStockThreshold = 10

// DashboardOverview is the aggregate panel shown on the dashboard landing
// page.
type DashboardOverview struct {
	TotalProducts      int64               `json:"total_products"`
	TotalCategories    int64               `json:"total_categories"`
	LowStockProducts   int64               `json:"low_stock_products"`
	TransactionsToday  int64               `json:"total_transactions_today"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
}

type DashboardService interface {
	Overview() (*DashboardOverview, error)
	StockMovement(days int) ([]repository.StockMovementData, error)
}

type dashboardService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRepo       repository.TransactionRepository
}

func NewDashboardService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, tRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		txRepo:       tRepo,
	}
}

func (s *dashboardService) Overview() (*DashboardOverview, error) {
	overview := &DashboardOverview{}
	var err error

	if overview.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if overview.TotalCategories, err = s.categoryRepo.Count(); err != nil {
		return nil, err
	}
	if overview.LowStockProducts, err = s.productRepo.CountLowStock(LowStockThreshold); err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if overview.TransactionsToday, err = s.txRepo.CountSince(startOfDay); err != nil {
		return nil, err
	}

	if overview.RecentTransactions, err = s.txRepo.FindRecent(5); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *dashboardService) StockMovement(days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = 7
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetStockMovement(startDate, endDate)
}
