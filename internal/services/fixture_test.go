package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// sessionFixture wires a SessionManager over mocked stores with a clock the
// test can move.
type sessionFixture struct {
	userID    uuid.UUID
	carts     *mocks.MockCartRepository
	store     *mocks.MockSessionRepository
	coupons   *mocks.MockCouponRepository
	pricing   *service.PricingCalculator
	validator *service.CouponValidator
	flash     *service.FlashSaleScheduler
	sessions  *service.SessionManager

	mu  sync.Mutex
	now time.Time
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		userID:  uuid.New(),
		carts:   mocks.NewMockCartRepository(t),
		store:   mocks.NewMockSessionRepository(t),
		coupons: mocks.NewMockCouponRepository(t),
		pricing: service.NewPricingCalculator(),
		now:     fixedNow,
	}

	f.validator = service.NewCouponValidator(f.coupons, f.pricing, money.VND, time.Second).WithClock(f.clock)
	f.flash = service.NewFlashSaleScheduler(nil, time.UTC).WithClock(f.clock)
	f.sessions = service.NewSessionManager(f.carts, f.store, f.pricing, f.validator, f.flash, 30*time.Minute).WithClock(f.clock)

	return f
}

func (f *sessionFixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *sessionFixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

// expectLoad sets up the first-use load of the session.
func (f *sessionFixture) expectLoad(lines []models.CartLine, selected ...string) {
	f.carts.On("ListLines", mock.Anything, f.userID).Return(lines, nil).Once()

	var saved *models.SessionSnapshot
	if selected != nil {
		saved = &models.SessionSnapshot{UserID: f.userID, SelectedIDs: selected}
	}

	f.store.On("Load", mock.Anything, f.userID).Return(saved, nil).Once()
}

func (f *sessionFixture) cartService() service.CartService {
	return service.NewCartService(f.sessions, f.carts, money.VND)
}

func (f *sessionFixture) couponService() service.CouponService {
	return service.NewCouponService(f.sessions, f.validator, nil, money.VND)
}

func (f *sessionFixture) checkoutService() service.CheckoutService {
	return service.NewCheckoutService(f.sessions, service.NewCheckoutAssembler(f.pricing))
}

func storefrontLines() []models.CartLine {
	return []models.CartLine{
		cartLine("tee", 3, 100_000, 1, 5),
		cartLine("jeans", 5, 200_000, 1, 5),
		cartLine("sold-out", 3, 90_000, 1, 0),
	}
}
