package service

import (
	"context"
	"sync"
	"time"

	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/repository"
	"tillpos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftService governs the cash-drawer session lifecycle:
// none → open → closed, terminal. A new sale period requires a new shift.
type ShiftService interface {
	Open(ctx context.Context, organizationID, operatorID uuid.UUID, req dto.OpenShiftRequest) (*dto.ShiftResponse, error)
	Close(ctx context.Context, organizationID uuid.UUID, req dto.CloseShiftRequest) (*dto.ShiftResponse, error)
	Active(ctx context.Context, organizationID uuid.UUID) (*dto.ShiftResponse, error)
	History(ctx context.Context, organizationID uuid.UUID, page, limit int) (*dto.ShiftListResponse, error)
	// CurrentOpen is used by the checkout processor to gate sales.
	CurrentOpen(ctx context.Context, organizationID uuid.UUID) (*model.Shift, error)
	// Lock serializes open/close/checkout/refund per organization.
	Lock(organizationID uuid.UUID) *sync.Mutex
}

type shiftService struct {
	repo       repository.ShiftRepository
	orders     repository.OrderRepository
	dispatcher *worker.Dispatcher

	// One mutex per organization: "at most one open shift" and the
	// multi-entity checkout mutation are enforced here, not by the UI.
	orgMu map[uuid.UUID]*sync.Mutex
	mapMu sync.Mutex
}

func NewShiftService(repo repository.ShiftRepository, orders repository.OrderRepository, dispatcher *worker.Dispatcher) ShiftService {
	return &shiftService{
		repo:       repo,
		orders:     orders,
		dispatcher: dispatcher,
		orgMu:      make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *shiftService) Lock(organizationID uuid.UUID) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()
	mu, ok := s.orgMu[organizationID]
	if !ok {
		mu = &sync.Mutex{}
		s.orgMu[organizationID] = mu
	}
	return mu
}

func (s *shiftService) Open(ctx context.Context, organizationID, operatorID uuid.UUID, req dto.OpenShiftRequest) (*dto.ShiftResponse, error) {
	mu := s.Lock(organizationID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.repo.FindOpen(ctx, organizationID); err == nil {
		return nil, ErrShiftAlreadyOpen
	}

	shift := &model.Shift{
		OrganizationID: organizationID,
		OpenedBy:       operatorID,
		StartCash:      req.StartCash,
		Status:         model.ShiftOpen,
		OpenedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) Close(ctx context.Context, organizationID uuid.UUID, req dto.CloseShiftRequest) (*dto.ShiftResponse, error) {
	mu := s.Lock(organizationID)
	mu.Lock()
	defer mu.Unlock()

	shift, err := s.repo.FindOpen(ctx, organizationID)
	if err != nil {
		return nil, ErrNoOpenShift
	}

	orders, err := s.orders.ListByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	summary := BuildShiftSummary(shift.StartCash, orders, req.EndCash)

	now := time.Now().UTC()
	breakdown := model.PaymentBreakdown(summary.PaymentBreakdown)
	shift.Status = model.ShiftClosed
	shift.ClosedAt = &now
	shift.EndCash = &summary.CashActual
	shift.ExpectedCash = &summary.CashExpected
	shift.CashDifference = &summary.CashDifference
	shift.TotalOrders = &summary.TotalOrders
	shift.GrossSales = &summary.GrossSales
	shift.NetSales = &summary.NetSales
	shift.TotalTax = &summary.TotalTax
	shift.TotalDiscount = &summary.TotalDiscount
	shift.TotalRefunds = &summary.TotalRefunds
	shift.PaymentBreakdown = &breakdown

	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, err
	}

	// Z-report rendering and delivery is async, best-effort: the close
	// itself is already committed and must not fail on SMTP trouble.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueShiftReport(ctx, map[string]interface{}{
			"shift_id": shift.ID.String(),
		})
	}

	return shiftToResponse(shift), nil
}

func (s *shiftService) Active(ctx context.Context, organizationID uuid.UUID) (*dto.ShiftResponse, error) {
	shift, err := s.repo.FindOpen(ctx, organizationID)
	if err != nil {
		return nil, ErrNoOpenShift
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) CurrentOpen(ctx context.Context, organizationID uuid.UUID) (*model.Shift, error) {
	shift, err := s.repo.FindOpen(ctx, organizationID)
	if err != nil {
		return nil, ErrNoOpenShift
	}
	return shift, nil
}

func (s *shiftService) History(ctx context.Context, organizationID uuid.UUID, page, limit int) (*dto.ShiftListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	shifts, total, err := s.repo.ListClosed(ctx, organizationID, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		data = append(data, *shiftToResponse(&shifts[i]))
	}
	return &dto.ShiftListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func shiftToResponse(shift *model.Shift) *dto.ShiftResponse {
	resp := &dto.ShiftResponse{
		ID:        shift.ID.String(),
		Status:    shift.Status,
		OpenedBy:  shift.OpenedBy.String(),
		StartCash: shift.StartCash,
		EndCash:   shift.EndCash,
		OpenedAt:  shift.OpenedAt.Format(time.RFC3339),
	}
	if shift.ClosedAt != nil {
		t := shift.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	if shift.Status == model.ShiftClosed && shift.NetSales != nil {
		summary := &dto.ShiftSummaryResponse{
			TotalOrders:    *shift.TotalOrders,
			GrossSales:     *shift.GrossSales,
			NetSales:       *shift.NetSales,
			TotalTax:       *shift.TotalTax,
			TotalDiscount:  *shift.TotalDiscount,
			TotalRefunds:   *shift.TotalRefunds,
			CashExpected:   *shift.ExpectedCash,
			CashActual:     *shift.EndCash,
			CashDifference: *shift.CashDifference,
		}
		if shift.PaymentBreakdown != nil {
			summary.PaymentBreakdown = *shift.PaymentBreakdown
		}
		summary.AverageCheck = decimal.Zero
		if summary.TotalOrders > 0 {
			summary.AverageCheck = summary.NetSales.Div(decimal.NewFromInt(int64(summary.TotalOrders))).Round(2)
		}
		resp.Summary = summary
	}
	return resp
}
