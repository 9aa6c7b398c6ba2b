package service_test

import (
	"testing"

	appErrors "github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartState(t *testing.T) (*service.CartState, *int) {
	t.Helper()

	inactive := cartLine("gone", 2, 80_000, 1, 4)
	inactive.IsActive = false

	state := service.NewCartState([]models.CartLine{
		cartLine("tee", 1, 250_000, 2, 5),
		cartLine("jeans", 2, 490_000, 1, 3),
		cartLine("sold-out", 1, 120_000, 1, 0),
		inactive,
	})

	signals := 0
	state.OnChange(func() { signals++ })

	return state, &signals
}

func TestCartState_SetQuantity(t *testing.T) {
	tests := []struct {
		name             string
		cartID           string
		quantity         int
		expectedCode     string
		expectedQuantity int
		expectedSignals  int
	}{
		{name: "Success - Within stock", cartID: "tee", quantity: 5, expectedQuantity: 5, expectedSignals: 1},
		{name: "Success - Unchanged quantity does not signal", cartID: "tee", quantity: 2, expectedQuantity: 2},
		{name: "Failure - Zero is out of range", cartID: "tee", quantity: 0, expectedCode: appErrors.ErrCodeQuantityRange, expectedQuantity: 2},
		{name: "Failure - Negative is out of range", cartID: "tee", quantity: -1, expectedCode: appErrors.ErrCodeQuantityRange, expectedQuantity: 2},
		{name: "Failure - Above stock", cartID: "tee", quantity: 6, expectedCode: appErrors.ErrCodeInsufficientStock, expectedQuantity: 2},
		{name: "Failure - Inactive product", cartID: "gone", quantity: 2, expectedCode: appErrors.ErrCodeProductInactive, expectedQuantity: 1},
		{name: "Failure - Unknown line", cartID: "nope", quantity: 1, expectedCode: appErrors.ErrCodeLineNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			state, signals := newCartState(t)

			// Act
			err := state.SetQuantity(tc.cartID, tc.quantity)

			// Assert
			if tc.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, appErrors.HasCode(err, tc.expectedCode), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			line, _ := state.Line(tc.cartID)
			assert.Equal(t, tc.expectedQuantity, line.Quantity)
			assert.Equal(t, tc.expectedSignals, *signals)
		})
	}
}

func TestCartState_Selection(t *testing.T) {
	t.Run("Success - Toggle selects and deselects", func(t *testing.T) {
		// Arrange
		state, signals := newCartState(t)

		// Act
		require.NoError(t, state.ToggleSelect("tee"))
		selectedAfterFirst := state.IsSelected("tee")
		require.NoError(t, state.ToggleSelect("tee"))

		// Assert
		assert.True(t, selectedAfterFirst)
		assert.False(t, state.IsSelected("tee"))
		assert.Equal(t, 2, *signals)
	})

	t.Run("Failure - Out of stock line cannot be selected", func(t *testing.T) {
		// Arrange
		state, signals := newCartState(t)

		// Act
		err := state.ToggleSelect("sold-out")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnselectable))
		assert.Empty(t, state.SelectedIDs())
		assert.Zero(t, *signals)
	})

	t.Run("Success - SelectAll skips unselectable lines", func(t *testing.T) {
		// Arrange
		state, _ := newCartState(t)

		// Act
		state.SelectAll()

		// Assert
		assert.Equal(t, []string{"tee", "jeans"}, state.SelectedIDs())
		require.Len(t, state.Selected(), 2)
		assert.Equal(t, "tee", state.Selected()[0].CartID)
	})

	t.Run("Success - ClearAll empties selection", func(t *testing.T) {
		// Arrange
		state, signals := newCartState(t)
		state.SelectAll()

		// Act
		state.ClearAll()

		// Assert
		assert.Empty(t, state.SelectedIDs())
		assert.Equal(t, 2, *signals)
	})

	t.Run("Success - Restore keeps only selectable known lines", func(t *testing.T) {
		// Arrange
		state, _ := newCartState(t)

		// Act
		state.Restore([]string{"jeans", "sold-out", "gone", "unknown"})

		// Assert
		assert.Equal(t, []string{"jeans"}, state.SelectedIDs())
	})
}

func TestCartState_RemoveLine(t *testing.T) {
	t.Run("Success - Removes line and its selection", func(t *testing.T) {
		// Arrange
		state, signals := newCartState(t)
		require.NoError(t, state.ToggleSelect("tee"))

		// Act
		state.RemoveLine("tee")

		// Assert
		_, ok := state.Line("tee")
		assert.False(t, ok)
		assert.False(t, state.IsSelected("tee"))
		assert.Equal(t, 3, state.Len())
		assert.Equal(t, 2, *signals)
	})

	t.Run("Success - Absent line is a no-op", func(t *testing.T) {
		// Arrange
		state, signals := newCartState(t)

		// Act
		state.RemoveLine("unknown")

		// Assert
		assert.Equal(t, 4, state.Len())
		assert.Zero(t, *signals)
	})
}

func TestCartState_ReplaceLines(t *testing.T) {
	// Arrange
	state, _ := newCartState(t)
	state.SelectAll()

	tee := cartLine("tee", 1, 250_000, 2, 0)
	jeans := cartLine("jeans", 2, 490_000, 1, 3)

	// Act
	state.ReplaceLines([]models.CartLine{tee, jeans})

	// Assert
	assert.Equal(t, []string{"jeans"}, state.SelectedIDs())
	assert.Equal(t, 2, state.Len())
}

func TestCartState_Reprice(t *testing.T) {
	// Arrange
	state := service.NewCartState([]models.CartLine{flashLine("dress", 490_000, 20), cartLine("tee", 3, 100_000, 1, 5)})
	signals := 0
	state.OnChange(func() { signals++ })
	active := models.FlashSaleState{Active: true}

	price := func(line models.CartLine) money.Money { return service.LinePrice(line, active) }

	// Act
	first := state.Reprice(price)
	second := state.Reprice(price)

	// Assert
	assert.True(t, first)
	assert.False(t, second)
	assert.Zero(t, signals)

	dress, _ := state.Line("dress")
	assert.Equal(t, money.Money(392_000), dress.UnitPrice)
	assert.Equal(t, money.Money(490_000), dress.OriginalUnitPrice)
}
