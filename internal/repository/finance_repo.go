package repository

import (
	"context"

	"tillpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinanceRepository appends to the finance ledger. Records are immutable —
// there is no update or delete on this interface by design of the ledger.
type FinanceRepository interface {
	CreateTx(tx *gorm.DB, rec *model.FinanceRecord) error
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.FinanceRecord, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.FinanceRecord, error)
}

type financeRepo struct{ db *gorm.DB }

func NewFinanceRepository(db *gorm.DB) FinanceRepository { return &financeRepo{db: db} }

func (r *financeRepo) CreateTx(tx *gorm.DB, rec *model.FinanceRecord) error {
	return tx.Create(rec).Error
}

func (r *financeRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.FinanceRecord, error) {
	var recs []model.FinanceRecord
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&recs).Error
	return recs, err
}

func (r *financeRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.FinanceRecord, error) {
	var recs []model.FinanceRecord
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&recs).Error
	return recs, err
}
