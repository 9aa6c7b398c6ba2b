package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	cacheMocks "github.com/aaravmahajanofficial/apparel-storefront/internal/cache/mocks"
	appErrors "github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalog(t *testing.T, at time.Time) (service.CatalogService, *mocks.MockProductRepository, *cacheMocks.MockCache) {
	t.Helper()

	repo := mocks.NewMockProductRepository(t)
	c := cacheMocks.NewMockCache(t)
	scheduler := service.NewFlashSaleScheduler(service.DefaultFlashSaleWindows, saigon(t)).WithClock(clock(at))
	monitor := service.NewFlashSaleMonitor(scheduler, time.Minute, discardLogger)

	return service.NewCatalogService(repo, c, monitor, money.VND, 5*time.Minute), repo, c
}

func TestCatalogService_ProductPrice(t *testing.T) {
	productID := uuid.New()
	key := "product_price:" + productID.String()
	duringSale := time.Date(2026, 3, 14, 13, 0, 0, 0, saigon(t))
	afterSale := time.Date(2026, 3, 14, 15, 0, 0, 0, saigon(t))

	t.Run("Success - Cache miss loads and stores the raw record", func(t *testing.T) {
		// Arrange
		catalog, repo, c := setupCatalog(t, duringSale)
		product := flashProduct()
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		repo.On("GetProductPrice", mock.Anything, productID).Return(&product, nil).Once()
		c.On("Set", mock.Anything, key, product, 5*time.Minute).Return(nil).Once()

		// Act
		priced, err := catalog.ProductPrice(t.Context(), productID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, money.Money(392_000), priced.EffectivePrice)
		assert.Equal(t, "392.000 ₫", priced.DisplayPrice)
		assert.Equal(t, "490.000 ₫", priced.DisplayOriginal)
		assert.True(t, priced.DiscountApplied)
	})

	t.Run("Success - Cached record is repriced from the clock", func(t *testing.T) {
		// Arrange
		catalog, _, c := setupCatalog(t, afterSale)
		c.On("Get", mock.Anything, key, mock.Anything).Run(func(args mock.Arguments) {
			*args.Get(2).(*models.ProductPrice) = flashProduct()
		}).Return(true, nil).Once()

		// Act
		priced, err := catalog.ProductPrice(t.Context(), productID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, money.Money(490_000), priced.EffectivePrice)
		assert.False(t, priced.DiscountApplied)
	})

	t.Run("Success - Cache outage falls back to the store", func(t *testing.T) {
		// Arrange
		catalog, repo, c := setupCatalog(t, duringSale)
		product := flashProduct()
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("GetProductPrice", mock.Anything, productID).Return(&product, nil).Once()
		c.On("Set", mock.Anything, key, product, 5*time.Minute).Return(errors.New("redis down")).Once()

		// Act
		priced, err := catalog.ProductPrice(t.Context(), productID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, money.Money(392_000), priced.EffectivePrice)
	})

	t.Run("Failure - Unknown product", func(t *testing.T) {
		// Arrange
		catalog, repo, c := setupCatalog(t, duringSale)
		c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
		repo.On("GetProductPrice", mock.Anything, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		priced, err := catalog.ProductPrice(t.Context(), productID)

		// Assert
		assert.Nil(t, priced)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}

func TestCatalogService_FlashSaleGrid(t *testing.T) {
	duringSale := time.Date(2026, 3, 14, 20, 30, 0, 0, saigon(t))

	t.Run("Success - Page and size are clamped", func(t *testing.T) {
		// Arrange
		catalog, repo, c := setupCatalog(t, duringSale)
		c.On("Get", mock.Anything, "flash_sale_page:1:100", mock.Anything).Return(false, nil).Once()
		repo.On("ListFlashSaleProducts", mock.Anything, 1, 100).Return([]models.ProductPrice{flashProduct()}, 41, nil).Once()
		c.On("Set", mock.Anything, "flash_sale_page:1:100", mock.Anything, 5*time.Minute).Return(nil).Once()

		// Act
		grid, err := catalog.FlashSaleGrid(t.Context(), 0, 500)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, grid.Page)
		assert.Equal(t, service.MaxPageSize, grid.PageSize)
		assert.Equal(t, 41, grid.Total)
		assert.True(t, grid.State.Active)
		require.Len(t, grid.Products, 1)
		assert.Equal(t, money.Money(392_000), grid.Products[0].EffectivePrice)
	})

	t.Run("Failure - Store error", func(t *testing.T) {
		// Arrange
		catalog, repo, c := setupCatalog(t, duringSale)
		c.On("Get", mock.Anything, "flash_sale_page:2:20", mock.Anything).Return(false, nil).Once()
		repo.On("ListFlashSaleProducts", mock.Anything, 2, service.DefaultPageSize).Return(nil, 0, errors.New("timeout")).Once()

		// Act
		grid, err := catalog.FlashSaleGrid(t.Context(), 2, 0)

		// Assert
		assert.Nil(t, grid)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
	})
}

func TestCatalogService_FlashSaleState(t *testing.T) {
	// Arrange
	catalog, _, _ := setupCatalog(t, time.Date(2026, 3, 14, 8, 0, 0, 0, saigon(t)))

	// Act
	state := catalog.FlashSaleState(t.Context())

	// Assert
	assert.False(t, state.Active)
	require.NotNil(t, state.NextWindowStart)
	assert.Equal(t, 12, state.NextWindowStart.Hour())
}
