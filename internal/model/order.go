package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. The only legal transitions are completed → refunded
// (refund) and held → voided (restore). Orders are never deleted.
const (
	OrderCompleted = "completed"
	OrderRefunded  = "refunded"
	OrderHeld      = "held"
	OrderVoided    = "voided"
)

// Payment methods accepted at the register.
const (
	PayCash     = "cash"
	PayCard     = "card"
	PayTransfer = "transfer"
)

// Order is a finalized, held, or refunded transaction in the ledger.
// Totals are frozen at checkout/hold time; later catalog changes never
// touch an existing Order.
type Order struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	// ShiftID references the shift that was open when the order was
	// created (or parked, for held orders).
	ShiftID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OperatorID    uuid.UUID       `gorm:"type:uuid;not null"`
	ReceiptNumber string          `gorm:"uniqueIndex;not null"` // "{year}-{n}" sales, "H-{n}" holds
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Discount is the computed discount amount. DiscountType/DiscountValue
	// record how it was entered, so the hold round-trip limitation is at
	// least visible in the data.
	Discount      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DiscountType  string           `gorm:"type:varchar(10);not null;default:'fixed'"` // percent | fixed
	DiscountValue decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string           `gorm:"type:varchar(20);not null"`
	Tendered      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Change        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index"`
	Note          *string
	CreatedAt     time.Time

	Items    []OrderLineItem `gorm:"foreignKey:OrderID"`
	Customer *Customer       `gorm:"foreignKey:CustomerID"`
}

// OrderLineItem snapshots price and tax rate at the moment the item entered
// the cart. Kind: "product" | "service" — only products move stock.
type OrderLineItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null"`
	Name           string          `gorm:"not null"`
	Kind           string          `gorm:"type:varchar(20);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity       int             `gorm:"not null"`
	TaxRatePercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

func (OrderLineItem) TableName() string { return "order_line_items" }
