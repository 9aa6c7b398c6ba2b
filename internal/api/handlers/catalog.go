package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// FlashSaleState godoc
//	@Summary		Current flash-sale state
//	@Description	Whether a flash-sale window is open now, when it ends, and when the next one starts.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	models.FlashSaleState	"Flash-sale state"
//	@Router			/flash-sale [get]
func (h *CatalogHandler) FlashSaleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalogService.FlashSaleState(r.Context()))
	}
}

// FlashSaleGrid godoc
//	@Summary	List flash-sale products
//	@Tags		Catalog
//	@Produce	json
//	@Param		page		query		int						false	"Page number (default: 1)"						minimum(1)
//	@Param		pageSize	query		int						false	"Items per page (default: 20, max: 100)"	minimum(1)	maximum(100)
//	@Success	200			{object}	models.FlashSaleGrid		"Products with the price currently in force"
//	@Failure	500			{object}	response.ErrorResponse	"Product service error"
//	@Router		/products/flash-sale [get]
func (h *CatalogHandler) FlashSaleGrid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > service.MaxPageSize {
			pageSize = service.DefaultPageSize
		}

		grid, err := h.catalogService.FlashSaleGrid(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list flash sale products", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, grid)
	}
}

// ProductPrice godoc
//	@Summary	Effective price of a product
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.PricedProduct	"Product with its effective price"
//	@Failure	400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Router		/products/{id}/price [get]
func (h *CatalogHandler) ProductPrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUID(r, "id")
		if !ok {
			logger.Warn("Invalid product id", slog.String("id", r.PathValue("id")))
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		product, err := h.catalogService.ProductPrice(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product price", slog.String("productId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
