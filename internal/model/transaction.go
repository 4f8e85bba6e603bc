package model

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxStockIn  TransactionType = "stock_in"
	TxStockOut TransactionType = "stock_out"
)

// Transaction is one entry of the append-only stock ledger. The net effect
// of all entries for a product determines its current stock.
type Transaction struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product     *Product        `json:"product,omitempty" validate:"-"`
	Type        TransactionType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,oneof=stock_in stock_out"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Notes       string          `gorm:"type:text" json:"notes"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `json:"user,omitempty" validate:"-"`
	StockBefore int             `gorm:"not null" json:"stock_before"`
	StockAfter  int             `gorm:"not null" json:"stock_after"`
}

// Ledger entries are append-only.
func (Transaction) BeforeUpdate(*gorm.DB) error {
	return errors.New("transactions are immutable")
}
