package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/testutils"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCatalogHandler(t *testing.T) (*handlers.CatalogHandler, *mocks.MockCatalogService) {
	t.Helper()

	catalogService := mocks.NewMockCatalogService(t)

	return handlers.NewCatalogHandler(catalogService), catalogService
}

func TestFlashSaleState(t *testing.T) {
	// Arrange
	catalogHandler, catalogService := setupCatalogHandler(t)
	windowEnd := time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)
	catalogService.On("FlashSaleState", mock.Anything).Return(models.FlashSaleState{Active: true, WindowEnd: &windowEnd}).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/flash-sale", nil, nil)
	rr := httptest.NewRecorder()

	// Act
	catalogHandler.FlashSaleState().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.FlashSaleState](t, rr)
	assert.True(t, body.Data.Active)
	assert.True(t, windowEnd.Equal(*body.Data.WindowEnd))
}

func TestFlashSaleGrid(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"Success - Defaults", "", 1, 20},
		{"Success - Explicit paging", "?page=3&pageSize=50", 3, 50},
		{"Success - Out of range falls back", "?page=-2&pageSize=500", 1, 20},
		{"Success - Garbage falls back", "?page=abc&pageSize=x", 1, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			catalogHandler, catalogService := setupCatalogHandler(t)
			catalogService.On("FlashSaleGrid", mock.Anything, tc.page, tc.pageSize).
				Return(&models.FlashSaleGrid{Page: tc.page, PageSize: tc.pageSize, Products: []models.PricedProduct{}}, nil).Once()

			req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/flash-sale/products"+tc.query, nil, nil)
			rr := httptest.NewRecorder()

			// Act
			catalogHandler.FlashSaleGrid().ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, http.StatusOK, rr.Code)
			body := decode[models.FlashSaleGrid](t, rr)
			assert.Equal(t, tc.page, body.Data.Page)
			assert.Equal(t, tc.pageSize, body.Data.PageSize)
		})
	}

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		catalogHandler, catalogService := setupCatalogHandler(t)
		catalogService.On("FlashSaleGrid", mock.Anything, 1, 20).Return(nil, appErrors.DatabaseError("Failed to list flash sale products")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/flash-sale/products", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.FlashSaleGrid().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestProductPrice(t *testing.T) {
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		catalogHandler, catalogService := setupCatalogHandler(t)
		catalogService.On("ProductPrice", mock.Anything, productID).Return(&models.PricedProduct{
			ProductPrice:    models.ProductPrice{ProductID: productID, Name: "Wrap dress", OriginalPrice: 490_000},
			EffectivePrice:  392_000,
			DisplayPrice:    "392.000 ₫",
			DiscountApplied: true,
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String()+"/price", nil, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.ProductPrice().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		body := decode[models.PricedProduct](t, rr)
		assert.Equal(t, money.Money(392_000), body.Data.EffectivePrice)
		assert.True(t, body.Data.DiscountApplied)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		catalogHandler, _ := setupCatalogHandler(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/nope/price", nil, map[string]string{"id": "nope"})
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.ProductPrice().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid product ID", decode[any](t, rr).Error.Message)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		catalogHandler, catalogService := setupCatalogHandler(t)
		catalogService.On("ProductPrice", mock.Anything, productID).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String()+"/price", nil, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.ProductPrice().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
