package repository

import (
	"context"

	"tillpos/internal/dto"
	"tillpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Order, error)
	ListHeld(ctx context.Context, organizationID uuid.UUID) ([]model.Order, error)
	List(ctx context.Context, organizationID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error)
	// NextReceiptSeq / NextHoldSeq draw from PostgreSQL sequences so receipt
	// numbers stay collision-free even with concurrent writers.
	NextReceiptSeq(ctx context.Context, tx *gorm.DB) (int, error)
	NextHoldSeq(ctx context.Context, tx *gorm.DB) (int, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListHeld(ctx context.Context, organizationID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("organization_id = ? AND status = ?", organizationID, model.OrderHeld).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) List(ctx context.Context, organizationID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("organization_id = ?", organizationID)
	if filter.ShiftID != "" {
		q = q.Where("shift_id = ?", filter.ShiftID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) NextReceiptSeq(ctx context.Context, tx *gorm.DB) (int, error) {
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('orders_receipt_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) NextHoldSeq(ctx context.Context, tx *gorm.DB) (int, error) {
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('orders_hold_seq')").Scan(&num).Error
	return num, err
}
