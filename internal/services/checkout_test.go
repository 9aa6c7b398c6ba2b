package service_test

import (
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutAssembler_Assemble(t *testing.T) {
	assembler := service.NewCheckoutAssembler(service.NewPricingCalculator())
	userID := uuid.New()

	t.Run("Failure - Empty selection", func(t *testing.T) {
		// Act
		intent, err := assembler.Assemble(userID, nil, nil)

		// Assert
		assert.Nil(t, intent)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeEmptySelection))
	})

	t.Run("Success - Intent carries totals and allocation", func(t *testing.T) {
		// Arrange
		selection := []models.CartLine{
			cartLine("tee", 3, 100_000, 2, 5),
			cartLine("jeans", 5, 300_000, 1, 5),
		}
		coupon := percentCoupon(10, 0, 3)

		// Act
		intent, err := assembler.Assemble(userID, selection, coupon)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, intent.ID)
		assert.Equal(t, userID, intent.UserID)
		assert.Equal(t, money.Money(500_000), intent.Subtotal)
		assert.Equal(t, money.Money(20_000), intent.Discount)
		assert.Equal(t, money.Money(480_000), intent.FinalTotal)
		assert.Equal(t, 3, intent.TotalQuantity)
		require.Len(t, intent.Lines, 2)
		assert.Equal(t, money.Money(20_000), intent.Lines[0].Discount)
		assert.Zero(t, intent.Lines[1].Discount)
		assert.Equal(t, &models.CouponRef{ID: coupon.ID, Code: "SALE"}, intent.Coupon)
	})

	t.Run("Success - Clones do not share lines", func(t *testing.T) {
		// Arrange
		intent, err := assembler.Assemble(userID, []models.CartLine{cartLine("tee", 3, 100_000, 1, 5)}, nil)
		require.NoError(t, err)

		// Act
		clone := intent.Clone()
		clone.Lines[0].Quantity = 9

		// Assert
		assert.Equal(t, 1, intent.Lines[0].Quantity)
		assert.Nil(t, intent.Coupon)
	})
}

func TestPayload(t *testing.T) {
	// Arrange
	assembler := service.NewCheckoutAssembler(service.NewPricingCalculator())
	coupon := percentCoupon(10, 0)
	intent, err := assembler.Assemble(uuid.New(), []models.CartLine{cartLine("tee", 3, 100_000, 2, 5)}, coupon)
	require.NoError(t, err)
	orderID := uuid.New()
	shipping := models.ShippingAddress{FullName: "Lan", Phone: "0901234567", Street: "1 Le Loi", City: "HCMC"}

	// Act
	payload := service.Payload(intent, orderID, shipping, models.PaymentCOD)

	// Assert
	assert.Equal(t, orderID, payload.OrderID)
	assert.Equal(t, intent.UserID, payload.UserID)
	require.NotNil(t, payload.UserCouponsID)
	assert.Equal(t, coupon.ID, *payload.UserCouponsID)
	assert.Equal(t, []models.OrderItemPayload{{SKU: "SKU-tee", Quantity: 2, UnitPrice: 100_000, CartID: "tee"}}, payload.Items)
	assert.Equal(t, money.Money(180_000), payload.FinalTotal)
	assert.Equal(t, shipping, payload.Shipping)
}

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("Success - Pending intent shows on the cart until it changes", func(t *testing.T) {
		// Arrange
		f := newSessionFixture(t)
		f.expectLoad(storefrontLines(), "tee", "jeans")

		// Act
		intent, err := f.checkoutService().Checkout(t.Context(), f.userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, money.Money(300_000), intent.FinalTotal)

		view, err := f.cartService().GetCart(t.Context(), f.userID)
		require.NoError(t, err)
		require.NotNil(t, view.PendingIntent)
		assert.Equal(t, intent.ID, view.PendingIntent.ID)

		view, err = f.cartService().ToggleSelect(t.Context(), f.userID, "jeans")
		require.NoError(t, err)
		assert.Nil(t, view.PendingIntent)
	})

	t.Run("Failure - Nothing selected", func(t *testing.T) {
		// Arrange
		f := newSessionFixture(t)
		f.expectLoad(storefrontLines())

		// Act
		_, err := f.checkoutService().Checkout(t.Context(), f.userID)

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeEmptySelection))
	})

	t.Run("Failure - Coupon expired while the cart sat idle", func(t *testing.T) {
		// Arrange
		f := newSessionFixture(t)
		f.expectLoad(storefrontLines(), "tee")
		f.coupons.On("GetCouponByCode", mock.Anything, "SALE").Return(percentCoupon(10, 0), nil).Once()

		_, err := f.couponService().ApplyCoupon(t.Context(), f.userID, "SALE")
		require.NoError(t, err)
		f.advance(25 * time.Hour)

		// Act
		intent, err := f.checkoutService().Checkout(t.Context(), f.userID)

		// Assert
		assert.Nil(t, intent)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeCouponExpired))

		view, err := f.cartService().GetCart(t.Context(), f.userID)
		require.NoError(t, err)
		assert.Nil(t, view.Coupon)
		require.NotNil(t, view.CouponNotice)
		assert.Equal(t, appErrors.ErrCodeCouponExpired, view.CouponNotice.Reason)
		assert.Nil(t, view.PendingIntent)
	})
}
