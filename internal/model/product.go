package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	// Unique among live rows only; soft-deleted products free their name.
	Name        string          `gorm:"type:varchar(255);not null;uniqueIndex:udx_products_name,where:deleted_at IS NULL" json:"name" validate:"required,max=255"`
	Description string          `gorm:"type:text" json:"description"`
	ImagePath   *string         `gorm:"type:varchar(255)" json:"image_path,omitempty"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category    *Category       `json:"category,omitempty" validate:"-"`
	Stock       int             `gorm:"not null;default:0" json:"stock"` // Written only by the ledger after creation
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	Transactions []Transaction `json:"transactions,omitempty"`
}
