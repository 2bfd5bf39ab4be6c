package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Finance record kinds. A checkout appends exactly one income record; a
// refund appends exactly one refund record with a negated amount.
const (
	FinanceIncome = "income"
	FinanceRefund = "refund"
)

// FinanceRecord is an immutable entry in the finance ledger. Records are
// NEVER modified or deleted — reversals create inverse entries.
type FinanceRecord struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShiftID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid"`
	Kind           string          `gorm:"type:varchar(20);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod  string          `gorm:"type:varchar(20);not null"`
	Description    string          `gorm:"not null"`
	CreatedAt      time.Time
}

func (FinanceRecord) TableName() string { return "finance_records" }
