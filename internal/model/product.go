package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sellable item kinds. Services (courses, appointments) carry no stock.
const (
	KindProduct = "product"
	KindService = "service"
)

// Stock status tags recomputed on every stock movement.
const (
	StockAvailable = "available"
	StockLow       = "low_stock"
	StockOut       = "out_of_stock"
)

// Product is a sellable catalog entry. Both physical products and services
// share this shape with a single pricing field; only kind=product tracks
// stock. TaxRatePercent nil means "use the organization default rate",
// resolved once when the item enters a cart.
type Product struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;index"`
	SKU            string           `gorm:"uniqueIndex;not null"`
	Name           string           `gorm:"index;not null"`
	Kind           string           `gorm:"type:varchar(20);not null;default:'product'"`
	Category       string           `gorm:"not null;default:''"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	TaxRatePercent *decimal.Decimal `gorm:"type:decimal(5,2)"`
	StockQuantity  int              `gorm:"not null;default:0"`
	StockStatus    string           `gorm:"type:varchar(20);not null;default:'available'"`
	Active         bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
