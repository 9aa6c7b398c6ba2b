package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, cartID string, quantity int) (*models.CartView, error)
	RemoveLine(ctx context.Context, userID uuid.UUID, cartID string) (*models.CartView, error)
	ToggleSelect(ctx context.Context, userID uuid.UUID, cartID string) (*models.CartView, error)
	SelectAll(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	ClearAll(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	EndSession(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	sessions *SessionManager
	repo     repository.CartRepository
	currency money.Currency
}

func NewCartService(sessions *SessionManager, repo repository.CartRepository, currency money.Currency) CartService {
	return &cartService{sessions: sessions, repo: repo, currency: currency}
}

// withSession runs fn under the session lock and renders the result.
func (s *cartService) withSession(ctx context.Context, userID uuid.UUID, operation string, fn func(*Session) error) (*models.CartView, error) {
	sess, err := s.sessions.acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.reprice() {
		sess.recompute()
	}

	if fn != nil {
		err = fn(sess)
		metrics.ObserveCartMutation(operation, resultOf(err))

		if err != nil {
			return nil, err
		}
	}

	return sess.view(s.currency), nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	return s.withSession(ctx, userID, "", nil)
}

// SetQuantity validates locally, writes through to the cart service and
// only then updates the session. A stock conflict reported by the store
// refreshes the lines so the shopper sees the stock that blocked them.
func (s *cartService) SetQuantity(ctx context.Context, userID uuid.UUID, cartID string, quantity int) (*models.CartView, error) {
	return s.withSession(ctx, userID, "set_quantity", func(sess *Session) error {
		logger := middleware.LoggerFromContext(ctx)

		if err := sess.state.CheckQuantity(cartID, quantity); err != nil {
			return err
		}

		if line, _ := sess.state.Line(cartID); line.Quantity == quantity {
			return nil
		}

		err := s.repo.UpdateQuantity(ctx, userID, cartID, quantity)
		switch {
		case err == nil:
		case stdErrors.Is(err, repository.ErrStockConflict):
			s.refresh(ctx, sess)

			line, _ := sess.state.Line(cartID)
			logger.Warn("Quantity rejected by stock", slog.String("cart_id", cartID), slog.Int("stock", line.Stock))

			return errors.InsufficientStockError(quantity, line.Stock).WithError(err)
		case stdErrors.Is(err, sql.ErrNoRows):
			s.refresh(ctx, sess)

			return errors.LineNotFoundError(cartID).WithError(err)
		default:
			logger.Error("Failed to update cart line", slog.String("cart_id", cartID), slog.String("error", err.Error()))

			return errors.DatabaseError("Failed to update cart").WithError(err)
		}

		return sess.state.SetQuantity(cartID, quantity)
	})
}

func (s *cartService) RemoveLine(ctx context.Context, userID uuid.UUID, cartID string) (*models.CartView, error) {
	return s.withSession(ctx, userID, "remove_line", func(sess *Session) error {
		if err := s.repo.RemoveLine(ctx, userID, cartID); err != nil {
			middleware.LoggerFromContext(ctx).Error("Failed to remove cart line",
				slog.String("cart_id", cartID), slog.String("error", err.Error()))

			return errors.DatabaseError("Failed to remove item").WithError(err)
		}

		sess.state.RemoveLine(cartID)

		return nil
	})
}

func (s *cartService) ToggleSelect(ctx context.Context, userID uuid.UUID, cartID string) (*models.CartView, error) {
	return s.withSession(ctx, userID, "toggle_select", func(sess *Session) error {
		return sess.state.ToggleSelect(cartID)
	})
}

func (s *cartService) SelectAll(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	return s.withSession(ctx, userID, "select_all", func(sess *Session) error {
		sess.state.SelectAll()

		return nil
	})
}

func (s *cartService) ClearAll(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	return s.withSession(ctx, userID, "clear_all", func(sess *Session) error {
		sess.state.ClearAll()

		return nil
	})
}

func (s *cartService) EndSession(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.End(ctx, userID)
}

// refresh reloads line data after the store disagreed with the session.
// A failed reload keeps the current lines.
func (s *cartService) refresh(ctx context.Context, sess *Session) {
	lines, err := s.repo.ListLines(ctx, sess.userID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to refresh cart lines", slog.String("error", err.Error()))

		return
	}

	sess.state.ReplaceLines(lines)
}

func resultOf(err error) string {
	if err == nil {
		return metrics.ResultOK
	}

	if appErr, ok := errors.IsAppError(err); ok {
		return appErr.Code
	}

	return errors.ErrCodeInternal
}
