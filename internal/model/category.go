package model

import "github.com/google/uuid"

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:udx_categories_name,where:deleted_at IS NULL" json:"name" validate:"required,max=255"`
	Description string `gorm:"type:text" json:"description"`

	Products []Product `json:"products,omitempty"`
}

// CategoryOption is the id+name pair used to populate form dropdowns.
type CategoryOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
