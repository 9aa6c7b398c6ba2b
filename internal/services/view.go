package service

import (
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
)

// view renders the session for the storefront; callers hold s.mu.
func (s *Session) view(currency money.Currency) *models.CartView {
	lines := s.state.Lines()
	out := make([]models.CartLineView, len(lines))

	for i, line := range lines {
		subtotal := line.Subtotal()
		out[i] = models.CartLineView{
			CartLine:          line,
			Selected:          s.state.IsSelected(line.CartID),
			SubtotalAmount:    subtotal.Int64(),
			DisplayUnitPrice:  currency.Format(line.UnitPrice),
			DisplayOriginal:   currency.Format(line.OriginalUnitPrice),
			DisplaySubtotal:   currency.Format(subtotal),
			SelectionDisabled: !line.Selectable(),
		}
	}

	view := &models.CartView{
		UserID:      s.userID,
		Lines:       out,
		SelectedIDs: s.state.SelectedIDs(),
		BadgeCount:  s.state.Len(),
		Pricing:     s.snapshot,
		Display: models.PricingDisplay{
			Currency:   currency.Code,
			Subtotal:   currency.Format(s.snapshot.Subtotal),
			Discount:   currency.Format(s.snapshot.Discount),
			FinalTotal: currency.Format(s.snapshot.FinalTotal),
		},
		CouponNotice: s.notice,
	}

	if s.coupon != nil {
		c := *s.coupon
		view.Coupon = &c
	}

	if s.intent != nil {
		view.PendingIntent = &models.OrderIntentInfo{ID: s.intent.ID}
	}

	return view
}
