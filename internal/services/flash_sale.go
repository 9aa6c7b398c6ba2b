package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
)

var DefaultFlashSaleWindows = []models.FlashSaleWindow{
	{Start: 12 * 60, End: 14 * 60},
	{Start: 20 * 60, End: 22 * 60},
}

// FlashSaleScheduler derives the flash-sale state purely from wall-clock time.
type FlashSaleScheduler struct {
	windows []models.FlashSaleWindow
	loc     *time.Location
	now     func() time.Time
}

func NewFlashSaleScheduler(windows []models.FlashSaleWindow, loc *time.Location) *FlashSaleScheduler {
	if len(windows) == 0 {
		windows = DefaultFlashSaleWindows
	}

	if loc == nil {
		loc = time.Local
	}

	sorted := slices.Clone(windows)
	slices.SortFunc(sorted, func(a, b models.FlashSaleWindow) int { return a.Start - b.Start })

	return &FlashSaleScheduler{windows: sorted, loc: loc, now: time.Now}
}

func (s *FlashSaleScheduler) WithClock(now func() time.Time) *FlashSaleScheduler {
	s.now = now

	return s
}

func (s *FlashSaleScheduler) Windows() []models.FlashSaleWindow {
	return slices.Clone(s.windows)
}

func (s *FlashSaleScheduler) Current() models.FlashSaleState {
	return s.StateAt(s.now())
}

func (s *FlashSaleScheduler) StateAt(t time.Time) models.FlashSaleState {
	local := t.In(s.loc)
	minute := local.Hour()*60 + local.Minute()
	y, m, d := local.Date()

	at := func(day, minuteOfDay int) *time.Time {
		ts := time.Date(y, m, d+day, minuteOfDay/60, minuteOfDay%60, 0, 0, s.loc)

		return &ts
	}

	state := models.FlashSaleState{EvaluatedAt: local}

	for _, w := range s.windows {
		if w.Contains(minute) {
			state.Active = true
			state.WindowEnd = at(0, w.End)

			return state
		}
	}

	for _, w := range s.windows {
		if w.Start > minute {
			state.NextWindowStart = at(0, w.Start)

			return state
		}
	}

	if len(s.windows) > 0 {
		state.NextWindowStart = at(1, s.windows[0].Start)
	}

	return state
}

// EffectivePrice is the price a product sells at under the given state.
// Flash-sale products lose floor(original * pct / 100) while a window is open.
func EffectivePrice(p models.ProductPrice, state models.FlashSaleState) money.Money {
	if !p.FlashSale || !state.Active || p.DiscountPercent.Sign() <= 0 {
		return p.OriginalPrice
	}

	return money.ApplyPercentOff(p.OriginalPrice, p.DiscountPercent)
}

// LinePrice is the unit price a cart line sells at under the given state.
// Lines without a flash-sale promotion keep the price the cart service quoted.
func LinePrice(line models.CartLine, state models.FlashSaleState) money.Money {
	if !line.FlashSale {
		return line.UnitPrice
	}

	return EffectivePrice(models.ProductPrice{
		OriginalPrice:   line.OriginalUnitPrice,
		DiscountPercent: line.DiscountPercent,
		FlashSale:       true,
	}, state)
}

// FlashSaleMonitor re-evaluates the scheduler on a fixed period and notifies
// listeners when the state flips between active and inactive.
type FlashSaleMonitor struct {
	scheduler *FlashSaleScheduler
	period    time.Duration
	logger    *slog.Logger

	mu        sync.Mutex
	active    bool
	primed    bool
	listeners []func(models.FlashSaleState)

	cancel context.CancelFunc
	done   chan struct{}
}

func NewFlashSaleMonitor(scheduler *FlashSaleScheduler, period time.Duration, logger *slog.Logger) *FlashSaleMonitor {
	if period <= 0 {
		period = time.Minute
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FlashSaleMonitor{scheduler: scheduler, period: period, logger: logger}
}

// OnTransition registers fn to run whenever the active flag changes, and once on the first evaluation.
func (m *FlashSaleMonitor) OnTransition(fn func(models.FlashSaleState)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

func (m *FlashSaleMonitor) Scheduler() *FlashSaleScheduler {
	return m.scheduler
}

// Refresh evaluates the clock now. Callers use it whenever product data is refetched.
func (m *FlashSaleMonitor) Refresh() models.FlashSaleState {
	state := m.scheduler.Current()

	m.mu.Lock()
	flipped := !m.primed || m.active != state.Active
	m.primed = true
	m.active = state.Active
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	if flipped {
		m.logger.Info("Flash sale state changed",
			slog.Bool("active", state.Active),
			slog.Any("window_end", state.WindowEnd),
			slog.Any("next_window_start", state.NextWindowStart))

		for _, fn := range listeners {
			fn(state)
		}
	}

	return state
}

func (m *FlashSaleMonitor) Start(ctx context.Context) {
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

	m.Refresh()

	go func() {
		defer close(done)

		ticker := time.NewTicker(m.period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Refresh()
			}
		}
	}()
}

// Stop cancels the timer and waits for the loop to exit. No evaluation runs after Stop returns.
func (m *FlashSaleMonitor) Stop() {
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
