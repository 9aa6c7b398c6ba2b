package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/cache"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type CatalogService interface {
	FlashSaleState(ctx context.Context) models.FlashSaleState
	FlashSaleGrid(ctx context.Context, page, size int) (*models.FlashSaleGrid, error)
	ProductPrice(ctx context.Context, productID uuid.UUID) (*models.PricedProduct, error)
}

type catalogService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	monitor  *FlashSaleMonitor
	currency money.Currency
	ttl      time.Duration
}

// flashSalePage is the cached form of one grid page. Records are cached raw;
// the flash-sale price is applied on every read from the current clock.
type flashSalePage struct {
	Products []models.ProductPrice `json:"products"`
	Total    int                   `json:"total"`
}

func NewCatalogService(repo repository.ProductRepository, c cache.Cache, monitor *FlashSaleMonitor, currency money.Currency, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: c, monitor: monitor, currency: currency, ttl: ttl}
}

func (s *catalogService) FlashSaleState(_ context.Context) models.FlashSaleState {
	return s.monitor.Refresh()
}

func (s *catalogService) FlashSaleGrid(ctx context.Context, page, size int) (*models.FlashSaleGrid, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = DefaultPageSize
	}

	size = min(size, MaxPageSize)

	key := cache.Key(cache.FlashSalePageKeyPrefix, strconv.Itoa(page), strconv.Itoa(size))

	cached, err := cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) (flashSalePage, error) {
		products, total, err := s.repo.ListFlashSaleProducts(ctx, page, size)

		return flashSalePage{Products: products, Total: total}, err
	}, s.cacheError(ctx, key))
	if err != nil {
		return nil, errors.DatabaseError("Failed to list flash sale products").WithError(err)
	}

	state := s.monitor.Refresh()

	products := make([]models.PricedProduct, len(cached.Products))
	for i, p := range cached.Products {
		products[i] = s.priced(p, state)
	}

	return &models.FlashSaleGrid{
		State:    state,
		Products: products,
		Total:    cached.Total,
		Page:     page,
		PageSize: size,
	}, nil
}

func (s *catalogService) ProductPrice(ctx context.Context, productID uuid.UUID) (*models.PricedProduct, error) {
	key := cache.Key(cache.ProductPriceKeyPrefix, productID.String())

	p, err := cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) (models.ProductPrice, error) {
		p, err := s.repo.GetProductPrice(ctx, productID)
		if err != nil {
			return models.ProductPrice{}, err
		}

		return *p, nil
	}, s.cacheError(ctx, key))
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product price").WithError(err)
	}

	priced := s.priced(p, s.monitor.Refresh())

	return &priced, nil
}

func (s *catalogService) priced(p models.ProductPrice, state models.FlashSaleState) models.PricedProduct {
	effective := EffectivePrice(p, state)

	return models.PricedProduct{
		ProductPrice:    p,
		EffectivePrice:  effective,
		DisplayPrice:    s.currency.Format(effective),
		DisplayOriginal: s.currency.Format(p.OriginalPrice),
		DiscountApplied: effective != p.OriginalPrice,
	}
}

func (s *catalogService) cacheError(ctx context.Context, key string) func(error) {
	return func(err error) {
		middleware.LoggerFromContext(ctx).Warn("Product cache unavailable",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
