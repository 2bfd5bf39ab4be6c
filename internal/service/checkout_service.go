package service

import (
	"context"
	"fmt"
	"time"

	"tillpos/internal/config"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService turns carts into ledger entries and reverses them.
// All ledger, finance, and stock effects of one call happen in a single
// transaction: a failure anywhere leaves cart, ledger, stock, and finance
// records untouched.
type CheckoutService interface {
	Checkout(ctx context.Context, organizationID, operatorID uuid.UUID, req dto.CheckoutRequest) (*dto.OrderResponse, error)
	Refund(ctx context.Context, organizationID uuid.UUID, orderID uuid.UUID) (*dto.OrderResponse, error)
	Hold(ctx context.Context, organizationID, operatorID uuid.UUID, req dto.HoldRequest) (*dto.OrderResponse, error)
	Restore(ctx context.Context, organizationID, operatorID uuid.UUID, orderID uuid.UUID) (*dto.CartResponse, error)
	Get(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, organizationID uuid.UUID, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	ListHeld(ctx context.Context, organizationID uuid.UUID) ([]dto.OrderResponse, error)
}

type checkoutService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	finance  repository.FinanceRepository
	shifts   ShiftService
	carts    CartService
	rdb      *redis.Client
	cfg      *config.Config
}

func NewCheckoutService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	finance repository.FinanceRepository,
	shifts ShiftService,
	carts CartService,
	rdb *redis.Client,
	cfg *config.Config,
) CheckoutService {
	return &checkoutService{
		orders:   orders,
		products: products,
		finance:  finance,
		shifts:   shifts,
		carts:    carts,
		rdb:      rdb,
		cfg:      cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// stockStatus tags a product quantity. The same rule applies on decrement
// (sale) and increment (refund): exactly at the threshold counts as
// available, strictly below it as low, zero or below as out.
func stockStatus(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return model.StockOut
	case quantity < threshold:
		return model.StockLow
	default:
		return model.StockAvailable
	}
}

func (s *checkoutService) Checkout(ctx context.Context, organizationID, operatorID uuid.UUID, req dto.CheckoutRequest) (*dto.OrderResponse, error) {
	mu := s.shifts.Lock(organizationID)
	mu.Lock()
	defer mu.Unlock()

	shift, err := s.shifts.CurrentOpen(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	cart := s.carts.Snapshot(operatorID)
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(&cart)

	var tendered, change decimal.Decimal
	if req.PaymentMethod == model.PayCash {
		if req.Tendered == nil || req.Tendered.LessThan(totals.Total) {
			return nil, ErrInsufficientTender
		}
		tendered = *req.Tendered
		change = tendered.Sub(totals.Total)
	} else {
		tendered = totals.Total
		change = decimal.Zero
	}

	var order model.Order
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		seq, err := s.orders.NextReceiptSeq(ctx, tx)
		if err != nil {
			return err
		}

		order = model.Order{
			OrganizationID: organizationID,
			ShiftID:        shift.ID,
			OperatorID:     operatorID,
			ReceiptNumber:  fmt.Sprintf("%d-%d", time.Now().UTC().Year(), seq),
			Status:         model.OrderCompleted,
			Subtotal:       totals.Subtotal,
			TaxTotal:       totals.TaxTotal,
			Discount:       totals.Discount,
			DiscountType:   cart.DiscountType,
			DiscountValue:  cart.DiscountValue,
			Total:          totals.Total,
			PaymentMethod:  req.PaymentMethod,
			Tendered:       &tendered,
			Change:         &change,
			CustomerID:     cart.CustomerID,
			Items:          cloneLines(cart.Items),
		}
		if cart.Note != "" {
			note := cart.Note
			order.Note = &note
		}
		if err := s.orders.Create(ctx, tx, &order); err != nil {
			return err
		}

		rec := &model.FinanceRecord{
			OrganizationID: organizationID,
			ShiftID:        shift.ID,
			OrderID:        order.ID,
			CustomerID:     cart.CustomerID,
			Kind:           model.FinanceIncome,
			Amount:         totals.Total,
			PaymentMethod:  req.PaymentMethod,
			Description:    fmt.Sprintf("Sale %s", order.ReceiptNumber),
		}
		if err := s.finance.CreateTx(tx, rec); err != nil {
			return err
		}

		return s.moveStock(tx, cart.Items, -1)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Only after commit: a failed checkout must leave the cart intact.
	s.carts.Clear(operatorID)
	invalidateSellableCache(ctx, s.rdb, organizationID)

	resp := orderToResponse(&order)
	return resp, nil
}

func (s *checkoutService) Refund(ctx context.Context, organizationID uuid.UUID, orderID uuid.UUID) (*dto.OrderResponse, error) {
	mu := s.shifts.Lock(organizationID)
	mu.Lock()
	defer mu.Unlock()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil || order.OrganizationID != organizationID {
		return nil, ErrOrderNotFound
	}
	if order.Status != model.OrderCompleted {
		return nil, ErrInvalidOrderState
	}

	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		// Flip in place — a refund never creates a new order.
		if err := s.orders.UpdateStatusTx(tx, order.ID, model.OrderRefunded); err != nil {
			return err
		}

		rec := &model.FinanceRecord{
			OrganizationID: order.OrganizationID,
			ShiftID:        order.ShiftID,
			OrderID:        order.ID,
			CustomerID:     order.CustomerID,
			Kind:           model.FinanceRefund,
			Amount:         order.Total.Neg(),
			PaymentMethod:  order.PaymentMethod,
			Description:    fmt.Sprintf("Refund of %s", order.ReceiptNumber),
		}
		if err := s.finance.CreateTx(tx, rec); err != nil {
			return err
		}

		return s.moveStock(tx, order.Items, +1)
	})
	if txErr != nil {
		return nil, txErr
	}

	invalidateSellableCache(ctx, s.rdb, organizationID)

	order.Status = model.OrderRefunded
	return orderToResponse(order), nil
}

func (s *checkoutService) Hold(ctx context.Context, organizationID, operatorID uuid.UUID, req dto.HoldRequest) (*dto.OrderResponse, error) {
	mu := s.shifts.Lock(organizationID)
	mu.Lock()
	defer mu.Unlock()

	shift, err := s.shifts.CurrentOpen(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	cart := s.carts.Snapshot(operatorID)
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(&cart)

	var order model.Order
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		seq, err := s.orders.NextHoldSeq(ctx, tx)
		if err != nil {
			return err
		}
		order = model.Order{
			OrganizationID: organizationID,
			ShiftID:        shift.ID,
			OperatorID:     operatorID,
			ReceiptNumber:  fmt.Sprintf("H-%d", seq),
			Status:         model.OrderHeld,
			Subtotal:       totals.Subtotal,
			TaxTotal:       totals.TaxTotal,
			Discount:       totals.Discount,
			DiscountType:   cart.DiscountType,
			DiscountValue:  cart.DiscountValue,
			Total:          totals.Total,
			PaymentMethod:  "",
			CustomerID:     cart.CustomerID,
			Items:          cloneLines(cart.Items),
		}
		note := cart.Note
		if req.Note != nil {
			note = *req.Note
		}
		if note != "" {
			order.Note = &note
		}
		// A hold parks the cart without money, stock, or finance movement.
		return s.orders.Create(ctx, tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.carts.Clear(operatorID)
	return orderToResponse(&order), nil
}

func (s *checkoutService) Restore(ctx context.Context, organizationID, operatorID uuid.UUID, orderID uuid.UUID) (*dto.CartResponse, error) {
	mu := s.shifts.Lock(organizationID)
	mu.Lock()
	defer mu.Unlock()

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil || order.OrganizationID != organizationID {
		return nil, ErrOrderNotFound
	}
	if order.Status != model.OrderHeld {
		return nil, ErrInvalidOrderState
	}

	// Consume the held order so it cannot be restored twice. The ticket is
	// either re-held (new H- number) or checked out from here.
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		return s.orders.UpdateStatusTx(tx, order.ID, model.OrderVoided)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Known lossy round-trip: the held order stores only the computed
	// discount amount, so a percent discount comes back as a fixed one.
	cart := Cart{
		Items:         cloneLines(order.Items),
		CustomerID:    order.CustomerID,
		DiscountValue: order.Discount,
		DiscountType:  DiscountFixed,
	}
	for i := range cart.Items {
		cart.Items[i].ID = uuid.Nil
		cart.Items[i].OrderID = uuid.Nil
	}
	if order.Note != nil {
		cart.Note = *order.Note
	}
	s.carts.Replace(operatorID, cart)

	resp := s.carts.Get(operatorID)
	return resp, nil
}

func (s *checkoutService) Get(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return orderToResponse(order), nil
}

func (s *checkoutService) List(ctx context.Context, organizationID uuid.UUID, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.orders.List(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *checkoutService) ListHeld(ctx context.Context, organizationID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListHeld(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return data, nil
}

// moveStock applies sign*quantity to every product line and retags its stock
// status. Services never move stock. Sales floor the result at zero.
func (s *checkoutService) moveStock(tx *gorm.DB, items []model.OrderLineItem, sign int) error {
	for _, line := range items {
		if line.Kind != model.KindProduct {
			continue
		}
		p, err := s.products.FindByIDTx(tx, line.ItemID)
		if err != nil {
			return fmt.Errorf("stock update for %s: %w", line.Name, err)
		}
		q := p.StockQuantity + sign*line.Quantity
		if q < 0 {
			q = 0
		}
		if err := s.products.SetStockTx(tx, line.ItemID, q, stockStatus(q, s.cfg.LowStockThreshold)); err != nil {
			return err
		}
	}
	return nil
}

func cloneLines(items []model.OrderLineItem) []model.OrderLineItem {
	out := make([]model.OrderLineItem, len(items))
	copy(out, items)
	return out
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderLineResponse, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, dto.OrderLineResponse{
			ItemID:         line.ItemID.String(),
			Name:           line.Name,
			Kind:           line.Kind,
			UnitPrice:      line.UnitPrice,
			Quantity:       line.Quantity,
			TaxRatePercent: line.TaxRatePercent,
		})
	}
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		ReceiptNumber: o.ReceiptNumber,
		ShiftID:       o.ShiftID.String(),
		Status:        o.Status,
		Items:         items,
		Subtotal:      o.Subtotal,
		TaxTotal:      o.TaxTotal,
		Discount:      o.Discount,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Tendered:      o.Tendered,
		Change:        o.Change,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		resp.CustomerID = &id
	}
	return resp
}
