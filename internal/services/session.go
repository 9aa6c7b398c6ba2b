package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Session owns one shopper's cart state, applied coupon, latest pricing
// snapshot and pending order intent. Every field is guarded by mu; one
// action finishes, recompute included, before the next one starts.
type Session struct {
	mu sync.Mutex

	userID    uuid.UUID
	state     *CartState
	coupon    *models.Coupon
	couponGen uint64
	snapshot  models.PricingSnapshot
	intent    *models.OrderIntent
	notice    *models.CouponNotice
	lastSeen  time.Time

	// lookups counts coupon validations running outside mu; the sweeper
	// leaves such sessions alone.
	lookups int
	// ended is set once the manager has dropped the session. Callers that
	// raced the drop reload instead of writing to it.
	ended bool

	pricing   *PricingCalculator
	validator *CouponValidator
	flash     *FlashSaleScheduler
}

func newSession(userID uuid.UUID, lines []models.CartLine, pricing *PricingCalculator, validator *CouponValidator, flash *FlashSaleScheduler) *Session {
	s := &Session{
		userID:    userID,
		state:     NewCartState(lines),
		pricing:   pricing,
		validator: validator,
		flash:     flash,
	}

	s.state.OnChange(s.recompute)
	s.recompute()

	return s
}

// recompute runs after every cart mutation with mu held. A coupon that no
// longer holds for the new selection is dropped and the shopper told why;
// any pending intent is discarded because it no longer matches the cart.
func (s *Session) recompute() {
	s.reprice()

	selection := s.state.Selected()

	if s.coupon != nil {
		if err := s.validator.Recheck(s.coupon, selection); err != nil {
			s.notice = noticeFor(s.coupon.Code, err)
			s.coupon = nil
		}
	}

	s.snapshot = s.pricing.Price(selection, s.coupon)
	s.intent = nil
}

// reprice moves flash-sale lines to the price the clock allows right now.
func (s *Session) reprice() bool {
	if s.flash == nil {
		return false
	}

	state := s.flash.Current()

	return s.state.Reprice(func(line models.CartLine) money.Money {
		return LinePrice(line, state)
	})
}

func noticeFor(code string, err error) *models.CouponNotice {
	notice := &models.CouponNotice{Code: code, Reason: errors.ErrCodeInternal, Message: err.Error()}

	if appErr, ok := errors.IsAppError(err); ok {
		notice.Reason = appErr.Code
		notice.Message = appErr.Message
	}

	return notice
}

func (s *Session) snapshotToSave() *models.SessionSnapshot {
	return &models.SessionSnapshot{UserID: s.userID, SelectedIDs: s.state.SelectedIDs()}
}

// SessionManager keeps live sessions in memory, loads them from the cart
// repository and the saved selection on first use, and saves the selection
// when a session ends or idles out.
type SessionManager struct {
	carts     repository.CartRepository
	store     repository.SessionRepository
	pricing   *PricingCalculator
	validator *CouponValidator
	flash     *FlashSaleScheduler
	idleTTL   time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	loads    singleflight.Group

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSessionManager builds the manager. flash may be nil, in which case cart
// lines keep the prices the cart service quoted.
func NewSessionManager(carts repository.CartRepository, store repository.SessionRepository, pricing *PricingCalculator,
	validator *CouponValidator, flash *FlashSaleScheduler, idleTTL time.Duration) *SessionManager {
	return &SessionManager{
		carts:     carts,
		store:     store,
		pricing:   pricing,
		validator: validator,
		flash:     flash,
		idleTTL:   idleTTL,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// WithClock replaces the manager's time source.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now

	return m
}

// Get returns the live session for userID, loading it when absent.
func (m *SessionManager) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()

		return s, nil
	}
	m.mu.Unlock()

	v, err, _ := m.loads.Do(userID.String(), func() (any, error) {
		return m.load(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	loaded := v.(*Session)

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}

	m.sessions[userID] = loaded
	metrics.SetActiveSessions(len(m.sessions))

	return loaded, nil
}

func (m *SessionManager) load(ctx context.Context, userID uuid.UUID) (*Session, error) {
	logger := middleware.LoggerFromContext(ctx)

	lines, err := m.carts.ListLines(ctx, userID)
	if err != nil {
		logger.Error("Failed to load cart lines", slog.String("error", err.Error()))

		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	s := newSession(userID, lines, m.pricing, m.validator, m.flash)
	s.lastSeen = m.now()

	saved, err := m.store.Load(ctx, userID)
	if err != nil {
		logger.Warn("Saved selection unavailable, starting with an empty selection", slog.String("error", err.Error()))
	}

	if saved != nil {
		s.state.Restore(saved.SelectedIDs)
	}

	logger.Info("Cart session loaded",
		slog.Int("lines", s.state.Len()),
		slog.Int("selected", len(s.state.SelectedIDs())))

	return s, nil
}

// touch marks the session as used; callers hold s.mu.
func (m *SessionManager) touch(s *Session) {
	s.lastSeen = m.now()
}

// acquire returns the live session for userID, locked and touched. A session
// that was ended between Get and Lock is skipped and the cart reloaded, so
// the caller's change is never applied to a dropped session.
func (m *SessionManager) acquire(ctx context.Context, userID uuid.UUID) (*Session, error) {
	for {
		s, err := m.Get(ctx, userID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()

		if !s.ended {
			m.touch(s)

			return s, nil
		}

		s.mu.Unlock()
	}
}

// End saves the selection and drops the session from memory.
func (m *SessionManager) End(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	m.mu.Unlock()

	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil
	}

	return m.endLocked(ctx, s)
}

// endLocked saves the selection, then removes the session from the map, all
// under s.mu: a caller waiting on the lock reloads only after the save landed.
func (m *SessionManager) endLocked(ctx context.Context, s *Session) error {
	s.ended = true
	err := m.saveLocked(ctx, s)

	m.mu.Lock()
	if m.sessions[s.userID] == s {
		delete(m.sessions, s.userID)
	}
	metrics.SetActiveSessions(len(m.sessions))
	m.mu.Unlock()

	return err
}

func (m *SessionManager) saveLocked(ctx context.Context, s *Session) error {
	snapshot := s.snapshotToSave()

	if err := m.store.Save(ctx, snapshot); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to save cart selection",
			slog.String("user_id", snapshot.UserID.String()),
			slog.String("error", err.Error()))

		return errors.DatabaseError("Failed to save cart selection").WithError(err)
	}

	return nil
}

func (m *SessionManager) live() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}

	return out
}

// Sweep ends every session idle for longer than the idle TTL and reports how
// many ended. Sessions with a coupon lookup in flight are kept.
func (m *SessionManager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.idleTTL)
	ended := 0

	for _, s := range m.live() {
		s.mu.Lock()
		if !s.ended && s.lookups == 0 && s.lastSeen.Before(cutoff) {
			_ = m.endLocked(ctx, s)
			ended++
		}
		s.mu.Unlock()
	}

	return ended
}

// Reprice recomputes every live session whose flash-sale lines changed price
// and reports how many did. It runs on each flash-sale transition.
func (m *SessionManager) Reprice() int {
	repriced := 0

	for _, s := range m.live() {
		s.mu.Lock()
		if !s.ended && s.reprice() {
			s.recompute()
			repriced++
		}
		s.mu.Unlock()
	}

	return repriced
}

// SaveAll saves every live session without ending it.
func (m *SessionManager) SaveAll(ctx context.Context) {
	for _, s := range m.live() {
		s.mu.Lock()
		if !s.ended {
			_ = m.saveLocked(ctx, s)
		}
		s.mu.Unlock()
	}
}

// StartSweeper runs Sweep every period until Stop.
func (m *SessionManager) StartSweeper(ctx context.Context, period time.Duration) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()

		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(ctx); n > 0 {
					slog.Info("Idle cart sessions ended", slog.Int("count", n))
				}
			}
		}
	}()
}

func (m *SessionManager) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Active reports how many sessions are held in memory.
func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
