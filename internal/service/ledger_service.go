package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-stock-api/internal/apperr"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
	"go-stock-api/internal/ws"
	"go-stock-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService owns the append-only transaction ledger and the only write
// path to product stock. A product's stock always equals its value at
// creation plus the net effect of its ledger entries.
type LedgerService interface {
	RecordTransaction(identity model.Identity, req *RecordTransactionRequest) (*model.Transaction, error)
	ListTransactions(filter repository.TransactionFilter, page repository.Page) ([]model.Transaction, int64, error)
	GetTransaction(id uuid.UUID) (*model.Transaction, error)
	ProductHistory(productID uuid.UUID, txType *model.TransactionType, page repository.Page) ([]model.Transaction, int64, error)
	Stats(startDate, endDate time.Time) (*repository.TransactionStats, error)
}

// TopProductCount bounds the most-active-products ranking in stats.
const TopProductCount = 5

type RecordTransactionRequest struct {
	ProductID uuid.UUID             `json:"product_id" validate:"uuid_required"`
	Type      model.TransactionType `json:"type" validate:"required,oneof=stock_in stock_out"`
	Quantity  int                   `json:"quantity" validate:"required,gt=0"`
	Notes     string                `json:"notes"`
}

type ledgerService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo: pRepo,
		txRepo:      tRepo,
		db:          db,
		wsHub:       hub,
	}
}

// RecordTransaction validates the request, then inserts the ledger entry
// and adjusts the product's stock as one atomic unit. The product row is
// locked for the duration so concurrent mutations on the same product
// serialize; a stock_out that exceeds the available quantity fails with no
// mutation at all.
func (s *ledgerService) RecordTransaction(identity model.Identity, req *RecordTransactionRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Newf(apperr.KindValidation, "field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}

	entry := &model.Transaction{
		ProductID: req.ProductID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		UserID:    identity.ID,
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.productRepo.FindForUpdate(tx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindNotFound, "product not found")
			}
			return err
		}

		newStock := product.Stock
		switch req.Type {
		case model.TxStockIn:
			newStock += req.Quantity
		case model.TxStockOut:
			if req.Quantity > product.Stock {
				return &apperr.InsufficientStockError{
					ProductID: product.ID,
					Requested: req.Quantity,
					Available: product.Stock,
				}
			}
			newStock -= req.Quantity
		}

		entry.StockBefore = product.Stock
		entry.StockAfter = newStock

		if err := s.txRepo.Create(tx, entry); err != nil {
			return err
		}
		if err := s.productRepo.UpdateStock(tx, product.ID, newStock); err != nil {
			return err
		}

		product.Stock = newStock
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStockUpdate(identity, entry, product)
	return entry, nil
}

func (s *ledgerService) ListTransactions(filter repository.TransactionFilter, page repository.Page) ([]model.Transaction, int64, error) {
	return s.txRepo.FindAll(filter, page)
}

func (s *ledgerService) GetTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "transaction not found")
		}
		return nil, err
	}
	return transaction, nil
}

func (s *ledgerService) ProductHistory(productID uuid.UUID, txType *model.TransactionType, page repository.Page) ([]model.Transaction, int64, error) {
	filter := repository.TransactionFilter{
		ProductID: &productID,
		Type:      txType,
	}
	return s.txRepo.FindAll(filter, page)
}

func (s *ledgerService) Stats(startDate, endDate time.Time) (*repository.TransactionStats, error) {
	return s.txRepo.GetStats(startDate, endDate, TopProductCount)
}

func (s *ledgerService) broadcastStockUpdate(identity model.Identity, entry *model.Transaction, product *model.Product) {
	if s.wsHub == nil {
		return
	}

	verb := "added"
	if entry.Type == model.TxStockOut {
		verb = "removed"
	}

	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "transaction_created",
			"transaction": map[string]interface{}{
				"id":         entry.ID,
				"type":       entry.Type,
				"quantity":   entry.Quantity,
				"product_id": product.ID,
				"product": map[string]interface{}{
					"name": product.Name,
				},
				"new_stock": product.Stock,
			},
			"user": map[string]interface{}{
				"id":    identity.ID,
				"name":  identity.Name,
				"email": identity.Email,
			},
			"message": fmt.Sprintf("%s %s %d units of '%s'", identity.Name, verb, entry.Quantity, product.Name),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
