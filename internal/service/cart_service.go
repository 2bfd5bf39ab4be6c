package service

import (
	"context"
	"sync"

	"tillpos/internal/config"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService owns the in-progress cart of each operator. Carts are pure
// in-memory state: nothing in the catalog or the ledger changes until the
// cart is checked out or held.
type CartService interface {
	AddItem(ctx context.Context, operatorID uuid.UUID, itemID uuid.UUID) (*dto.CartResponse, error)
	UpdateQuantity(operatorID uuid.UUID, itemID uuid.UUID, delta int) (*dto.CartResponse, error)
	RemoveItem(operatorID uuid.UUID, itemID uuid.UUID) (*dto.CartResponse, error)
	SetDiscount(operatorID uuid.UUID, value decimal.Decimal, discountType string) (*dto.CartResponse, error)
	SetCustomer(ctx context.Context, operatorID uuid.UUID, customerID *uuid.UUID) (*dto.CartResponse, error)
	SetNote(operatorID uuid.UUID, note string) (*dto.CartResponse, error)
	Get(operatorID uuid.UUID) *dto.CartResponse

	// Snapshot/Replace/Clear are used by the checkout processor, which must
	// see a stable copy and only clear the cart after its transaction commits.
	Snapshot(operatorID uuid.UUID) Cart
	Replace(operatorID uuid.UUID, cart Cart)
	Clear(operatorID uuid.UUID)
}

type cartService struct {
	mu        sync.Mutex
	carts     map[uuid.UUID]*Cart
	products  repository.ProductRepository
	customers repository.CustomerRepository
	cfg       *config.Config
}

func NewCartService(products repository.ProductRepository, customers repository.CustomerRepository, cfg *config.Config) CartService {
	return &cartService{
		carts:     make(map[uuid.UUID]*Cart),
		products:  products,
		customers: customers,
		cfg:       cfg,
	}
}

// cart returns the operator's cart, creating an empty one on first use.
// Caller must hold s.mu.
func (s *cartService) cart(operatorID uuid.UUID) *Cart {
	c, ok := s.carts[operatorID]
	if !ok {
		c = &Cart{DiscountType: DiscountFixed, DiscountValue: decimal.Zero}
		s.carts[operatorID] = c
	}
	return c
}

func (s *cartService) AddItem(ctx context.Context, operatorID uuid.UUID, itemID uuid.UUID) (*dto.CartResponse, error) {
	p, err := s.products.FindByID(ctx, itemID)
	if err != nil || !p.Active {
		return nil, ErrItemNotFound
	}

	// Price and tax rate are frozen here. Later catalog edits never touch
	// this line, neither in the open cart nor in any resulting order.
	rate := s.cfg.DefaultTaxRate
	if p.TaxRatePercent != nil {
		rate = *p.TaxRatePercent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)

	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity++
			return s.respond(c), nil
		}
	}

	c.Items = append(c.Items, model.OrderLineItem{
		ItemID:         p.ID,
		Name:           p.Name,
		Kind:           p.Kind,
		UnitPrice:      p.UnitPrice,
		Quantity:       1,
		TaxRatePercent: rate,
	})
	return s.respond(c), nil
}

func (s *cartService) UpdateQuantity(operatorID uuid.UUID, itemID uuid.UUID, delta int) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)

	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			q := c.Items[i].Quantity + delta
			// Quantity never reaches zero through this operation; removal
			// is an explicit action.
			if q < 1 {
				q = 1
			}
			c.Items[i].Quantity = q
			return s.respond(c), nil
		}
	}
	return nil, ErrItemNotInCart
}

func (s *cartService) RemoveItem(operatorID uuid.UUID, itemID uuid.UUID) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)

	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return s.respond(c), nil
		}
	}
	return nil, ErrItemNotInCart
}

func (s *cartService) SetDiscount(operatorID uuid.UUID, value decimal.Decimal, discountType string) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)
	c.DiscountValue = value
	c.DiscountType = discountType
	return s.respond(c), nil
}

func (s *cartService) SetCustomer(ctx context.Context, operatorID uuid.UUID, customerID *uuid.UUID) (*dto.CartResponse, error) {
	if customerID != nil {
		if _, err := s.customers.FindByID(ctx, *customerID); err != nil {
			return nil, ErrCustomerNotFound
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)
	c.CustomerID = customerID
	return s.respond(c), nil
}

func (s *cartService) SetNote(operatorID uuid.UUID, note string) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)
	c.Note = note
	return s.respond(c), nil
}

func (s *cartService) Get(operatorID uuid.UUID) *dto.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respond(s.cart(operatorID))
}

func (s *cartService) Snapshot(operatorID uuid.UUID) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(operatorID)
	cp := *c
	cp.Items = make([]model.OrderLineItem, len(c.Items))
	copy(cp.Items, c.Items)
	return cp
}

func (s *cartService) Replace(operatorID uuid.UUID, cart Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[operatorID] = &cart
}

func (s *cartService) Clear(operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[operatorID] = &Cart{DiscountType: DiscountFixed, DiscountValue: decimal.Zero}
}

func (s *cartService) respond(c *Cart) *dto.CartResponse {
	totals := ComputeTotals(c)
	items := make([]dto.CartLineResponse, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, dto.CartLineResponse{
			ItemID:         line.ItemID.String(),
			Name:           line.Name,
			Kind:           line.Kind,
			UnitPrice:      line.UnitPrice,
			Quantity:       line.Quantity,
			TaxRatePercent: line.TaxRatePercent,
			LineTotal:      line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	resp := &dto.CartResponse{
		Items:         items,
		DiscountValue: c.DiscountValue,
		DiscountType:  c.DiscountType,
		Note:          c.Note,
		Totals: dto.TotalsResponse{
			Subtotal: totals.Subtotal,
			TaxTotal: totals.TaxTotal,
			Discount: totals.Discount,
			Total:    totals.Total,
		},
	}
	if c.CustomerID != nil {
		id := c.CustomerID.String()
		resp.CustomerID = &id
	}
	return resp
}
