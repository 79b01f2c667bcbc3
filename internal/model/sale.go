package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale records a single sales transaction against a product.
// ProductID is not a hard foreign key: deleting a product leaves its
// sales in place as dangling references.
type Sale struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gte=1"`
	TotalPrice float64   `gorm:"not null" json:"total_price" validate:"gte=0"`
	SaleDate   time.Time `gorm:"not null" json:"sale_date"` // Set once at creation, UTC
}
