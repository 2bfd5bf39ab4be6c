package service_test

// In-memory repository stubs shared by the service tests. Each satisfies
// its repository interface (compile-time checked) and keeps everything in
// plain maps and slices — no database involved.

import (
	"context"
	"errors"
	"time"

	"tillpos/internal/config"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/repository"
	"tillpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Shift repository ─────────────────────────────────────────────────────────

type stubShiftRepo struct {
	shifts map[uuid.UUID]*model.Shift
}

func newStubShiftRepo() *stubShiftRepo {
	return &stubShiftRepo{shifts: make(map[uuid.UUID]*model.Shift)}
}

func (r *stubShiftRepo) Create(_ context.Context, s *model.Shift) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *stubShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubShiftRepo) FindOpen(_ context.Context, organizationID uuid.UUID) (*model.Shift, error) {
	for _, s := range r.shifts {
		if s.OrganizationID == organizationID && s.Status == model.ShiftOpen {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubShiftRepo) Update(_ context.Context, s *model.Shift) error {
	r.shifts[s.ID] = s
	return nil
}

func (r *stubShiftRepo) ListClosed(_ context.Context, organizationID uuid.UUID, page, limit int) ([]model.Shift, int64, error) {
	var out []model.Shift
	for _, s := range r.shifts {
		if s.OrganizationID == organizationID && s.Status == model.ShiftClosed {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.ShiftRepository = (*stubShiftRepo)(nil)

// ── Order repository ─────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders     map[uuid.UUID]*model.Order
	receiptSeq int
	holdSeq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return errors.New("not found")
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) ListByShift(_ context.Context, shiftID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.ShiftID == shiftID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListHeld(_ context.Context, organizationID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.OrganizationID == organizationID && o.Status == model.OrderHeld {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context, organizationID uuid.UUID, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.OrganizationID != organizationID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) NextReceiptSeq(_ context.Context, _ *gorm.DB) (int, error) {
	r.receiptSeq++
	return r.receiptSeq, nil
}

func (r *stubOrderRepo) NextHoldSeq(_ context.Context, _ *gorm.DB) (int, error) {
	r.holdSeq++
	return r.holdSeq, nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Product repository ───────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.StockStatus == "" {
		p.StockStatus = model.StockAvailable
	}
	p.Active = true
	r.products[p.ID] = &p
	return &p
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) ListSellable(_ context.Context, organizationID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.OrganizationID == organizationID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, quantity int, status string) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.StockQuantity = quantity
	p.StockStatus = status
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Customer repository ──────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, organizationID uuid.UUID) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.OrganizationID == organizationID {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Finance repository ───────────────────────────────────────────────────────

type stubFinanceRepo struct {
	records []model.FinanceRecord
}

func (r *stubFinanceRepo) CreateTx(_ *gorm.DB, rec *model.FinanceRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now()
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubFinanceRepo) ListByShift(_ context.Context, shiftID uuid.UUID) ([]model.FinanceRecord, error) {
	var out []model.FinanceRecord
	for _, rec := range r.records {
		if rec.ShiftID == shiftID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubFinanceRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.FinanceRecord, error) {
	var out []model.FinanceRecord
	for _, rec := range r.records {
		if rec.OrderID == orderID {
			out = append(out, rec)
		}
	}
	return out, nil
}

var _ repository.FinanceRepository = (*stubFinanceRepo)(nil)

// ── Test fixture ─────────────────────────────────────────────────────────────

// testEnv wires the full service stack over in-memory repositories.
type testEnv struct {
	cfg       *config.Config
	shiftRepo *stubShiftRepo
	orderRepo *stubOrderRepo
	prodRepo  *stubProductRepo
	custRepo  *stubCustomerRepo
	finRepo   *stubFinanceRepo

	shifts   service.ShiftService
	carts    service.CartService
	checkout service.CheckoutService
	catalog  service.CatalogService

	orgID      uuid.UUID
	operatorID uuid.UUID
}

func newTestEnv() *testEnv {
	env := &testEnv{
		cfg: &config.Config{
			DefaultTaxRate:    decimal.NewFromInt(14),
			LowStockThreshold: 5,
		},
		shiftRepo:  newStubShiftRepo(),
		orderRepo:  newStubOrderRepo(),
		prodRepo:   newStubProductRepo(),
		custRepo:   newStubCustomerRepo(),
		finRepo:    &stubFinanceRepo{},
		orgID:      uuid.New(),
		operatorID: uuid.New(),
	}
	env.shifts = service.NewShiftService(env.shiftRepo, env.orderRepo, nil)
	env.carts = service.NewCartService(env.prodRepo, env.custRepo, env.cfg)
	env.checkout = service.NewCheckoutService(env.orderRepo, env.prodRepo, env.finRepo, env.shifts, env.carts, nil, env.cfg)
	env.catalog = service.NewCatalogService(env.prodRepo, nil, env.cfg)
	return env
}

func (e *testEnv) openShift(startCash float64) *dto.ShiftResponse {
	resp, err := e.shifts.Open(context.Background(), e.orgID, e.operatorID, dto.OpenShiftRequest{
		StartCash: decimal.NewFromFloat(startCash),
	})
	if err != nil {
		panic(err)
	}
	return resp
}

func (e *testEnv) addProduct(name string, price float64, taxRate *float64, stock int) *model.Product {
	p := model.Product{
		OrganizationID: e.orgID,
		SKU:            "SKU-" + name,
		Name:           name,
		Kind:           model.KindProduct,
		UnitPrice:      decimal.NewFromFloat(price),
		StockQuantity:  stock,
	}
	if taxRate != nil {
		rate := decimal.NewFromFloat(*taxRate)
		p.TaxRatePercent = &rate
	}
	return e.prodRepo.add(p)
}

func (e *testEnv) addService(name string, price float64) *model.Product {
	return e.prodRepo.add(model.Product{
		OrganizationID: e.orgID,
		SKU:            "SVC-" + name,
		Name:           name,
		Kind:           model.KindService,
		UnitPrice:      decimal.NewFromFloat(price),
	})
}
