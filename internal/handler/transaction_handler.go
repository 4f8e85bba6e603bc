package handler

import (
	"time"

	"go-stock-api/internal/middleware"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
	"go-stock-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.LedgerService
}

func NewTransactionHandler(s service.LedgerService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// CreateTransaction records a stock_in/stock_out ledger entry.
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "validation_error", "error": "Invalid JSON"})
	}

	transaction, err := h.service.RecordTransaction(middleware.IdentityFrom(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Transaction created successfully",
		"data":    transaction,
	})
}

// GetTransactions lists ledger entries, newest first.
// GET /api/v1/transactions?type&product_id&start_date&end_date&page&limit
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter, err := transactionFilterFrom(c)
	if err != nil {
		return respondError(c, err)
	}

	page := pageFrom(c)
	transactions, total, err := h.service.ListTransactions(filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return pagedResponse(c, transactions, page, total)
}

// GetTransaction returns a single ledger entry.
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	transaction, err := h.service.GetTransaction(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": transaction})
}

// GetStats aggregates ledger activity within a window, defaulting to the
// current month.
// GET /api/v1/transactions/stats?start_date&end_date
func (h *TransactionHandler) GetStats(c *fiber.Ctx) error {
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endDate := startDate.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if parsed, err := parseDateQuery(c, "start_date"); err != nil {
		return respondError(c, err)
	} else if parsed != nil {
		startDate = *parsed
	}
	if parsed, err := parseDateQuery(c, "end_date"); err != nil {
		return respondError(c, err)
	} else if parsed != nil {
		endDate = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	stats, err := h.service.Stats(startDate, endDate)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": stats,
		"period": fiber.Map{
			"start_date": startDate,
			"end_date":   endDate,
		},
	})
}

// ProductHistory lists the ledger entries of one product.
// GET /api/v1/transactions/product/:productId/history?type&page&limit
func (h *TransactionHandler) ProductHistory(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		return respondError(c, err)
	}

	var txType *model.TransactionType
	if t := model.TransactionType(c.Query("type")); t == model.TxStockIn || t == model.TxStockOut {
		txType = &t
	}

	page := pageFrom(c)
	transactions, total, err := h.service.ProductHistory(productID, txType, page)
	if err != nil {
		return respondError(c, err)
	}
	return pagedResponse(c, transactions, page, total)
}

func transactionFilterFrom(c *fiber.Ctx) (repository.TransactionFilter, error) {
	var filter repository.TransactionFilter

	if t := model.TransactionType(c.Query("type")); t == model.TxStockIn || t == model.TxStockOut {
		filter.Type = &t
	}

	productID, err := parseUUIDQuery(c, "product_id")
	if err != nil {
		return filter, err
	}
	filter.ProductID = productID

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate

	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		return filter, err
	}
	if endDate != nil {
		// Inclusive: cover the whole end day.
		inclusive := endDate.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.EndDate = &inclusive
	}

	return filter, nil
}
