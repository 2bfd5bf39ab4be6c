package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ShiftOpen   = "open"
	ShiftClosed = "closed"
)

// Shift represents one cash-drawer session: opened with a counted float,
// closed exactly once with a counted end amount and a frozen summary.
// At most one Shift per organization may be open at a time — enforced by
// the service layer mutex and by a partial unique index on (organization_id)
// WHERE status = 'open'.
type Shift struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OpenedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	StartCash      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'open'"`
	OpenedAt       time.Time
	ClosedAt       *time.Time

	// Closing snapshot — written once by closeShift, immutable thereafter.
	EndCash          *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	ExpectedCash     *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	CashDifference   *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	TotalOrders      *int
	GrossSales       *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	NetSales         *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	TotalTax         *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	TotalDiscount    *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	TotalRefunds     *decimal.Decimal  `gorm:"type:decimal(12,2)"`
	PaymentBreakdown *PaymentBreakdown `gorm:"type:jsonb"`
}

// PaymentBreakdown maps a payment method to the summed total of completed
// orders paid with it. Stored as jsonb on the closed Shift.
type PaymentBreakdown map[string]decimal.Decimal

func (b PaymentBreakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *PaymentBreakdown) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = nil
		return nil
	default:
		return errors.New("payment breakdown: unsupported scan type")
	}
}
