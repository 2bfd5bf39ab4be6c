package service

import (
	"context"
	"encoding/json"
	"time"

	"tillpos/internal/config"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	sellableCacheKey = "catalog:sellable:"
	sellableCacheTTL = 30 * time.Second
)

// CatalogService is the engine-side view of the product catalog: the
// sellable list the register works from, plus manual stock adjustment.
// Catalog CRUD lives elsewhere.
type CatalogService interface {
	ListSellable(ctx context.Context, organizationID uuid.UUID) ([]dto.SellableItemResponse, error)
	AdjustStock(ctx context.Context, organizationID, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.SellableItemResponse, error)
}

type catalogService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
	cfg  *config.Config
}

func NewCatalogService(repo repository.ProductRepository, rdb *redis.Client, cfg *config.Config) CatalogService {
	return &catalogService{repo: repo, rdb: rdb, cfg: cfg}
}

func (s *catalogService) ListSellable(ctx context.Context, organizationID uuid.UUID) ([]dto.SellableItemResponse, error) {
	key := sellableCacheKey + organizationID.String()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var items []dto.SellableItemResponse
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	products, err := s.repo.ListSellable(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SellableItemResponse, 0, len(products))
	for i := range products {
		items = append(items, s.toSellable(&products[i]))
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, key, data, sellableCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("catalog: cache write failed")
			}
		}
	}
	return items, nil
}

func (s *catalogService) AdjustStock(ctx context.Context, organizationID, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.SellableItemResponse, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil || p.OrganizationID != organizationID {
		return nil, ErrItemNotFound
	}
	if p.Kind != model.KindProduct {
		return nil, ErrNotStockTracked
	}

	q := p.StockQuantity + req.Delta
	if q < 0 {
		q = 0
	}
	p.StockQuantity = q
	p.StockStatus = stockStatus(q, s.cfg.LowStockThreshold)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, organizationID)

	log.Info().
		Str("product_id", p.ID.String()).
		Int("delta", req.Delta).
		Int("quantity", p.StockQuantity).
		Str("reason", req.Reason).
		Msg("manual stock adjustment")

	resp := s.toSellable(p)
	return &resp, nil
}

func (s *catalogService) invalidate(ctx context.Context, organizationID uuid.UUID) {
	invalidateSellableCache(ctx, s.rdb, organizationID)
}

// invalidateSellableCache drops the cached sellable list for an org. Called
// from every code path that moves stock.
func invalidateSellableCache(ctx context.Context, rdb *redis.Client, organizationID uuid.UUID) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, sellableCacheKey+organizationID.String()).Err(); err != nil {
		log.Debug().Err(err).Msg("catalog: cache invalidation failed")
	}
}

func (s *catalogService) toSellable(p *model.Product) dto.SellableItemResponse {
	rate := s.cfg.DefaultTaxRate
	if p.TaxRatePercent != nil {
		rate = *p.TaxRatePercent
	}
	return dto.SellableItemResponse{
		ID:             p.ID.String(),
		SKU:            p.SKU,
		Name:           p.Name,
		Kind:           p.Kind,
		UnitPrice:      p.UnitPrice,
		TaxRatePercent: rate,
		StockQuantity:  p.StockQuantity,
		StockStatus:    p.StockStatus,
	}
}
