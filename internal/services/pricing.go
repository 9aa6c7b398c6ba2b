package service

import (
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// PricingCalculator turns a selection and an optional coupon into totals.
// Every method is a pure function of its arguments.
type PricingCalculator struct{}

func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

func (p *PricingCalculator) Subtotal(selection []models.CartLine) money.Money {
	var total money.Money

	for _, line := range selection {
		total += line.Subtotal()
	}

	return total
}

// EligibleCategories returns selectedCategories ∩ appliedCategories. A nil
// result with a scoped coupon means nothing in the selection qualifies.
func (p *PricingCalculator) EligibleCategories(selection []models.CartLine, coupon *models.Coupon) map[int64]struct{} {
	if coupon == nil || !coupon.Scoped() {
		return nil
	}

	applied := make(map[int64]struct{}, len(coupon.AppliedCategories))
	for _, id := range coupon.AppliedCategories {
		applied[id] = struct{}{}
	}

	var eligible map[int64]struct{}

	for _, line := range selection {
		if _, ok := applied[line.CategoryID]; ok {
			if eligible == nil {
				eligible = make(map[int64]struct{})
			}
			eligible[line.CategoryID] = struct{}{}
		}
	}

	return eligible
}

func (p *PricingCalculator) lineEligible(line models.CartLine, coupon *models.Coupon, eligible map[int64]struct{}) bool {
	if coupon == nil || !coupon.Scoped() {
		return true
	}

	_, ok := eligible[line.CategoryID]

	return ok
}

func (p *PricingCalculator) EligibleSubtotal(selection []models.CartLine, coupon *models.Coupon) money.Money {
	if coupon == nil || !coupon.Scoped() {
		return p.Subtotal(selection)
	}

	eligible := p.EligibleCategories(selection, coupon)

	var total money.Money

	for _, line := range selection {
		if p.lineEligible(line, coupon, eligible) {
			total += line.Subtotal()
		}
	}

	return total
}

func (p *PricingCalculator) Discount(selection []models.CartLine, coupon *models.Coupon) money.Money {
	if coupon == nil {
		return 0
	}

	return p.discountFor(p.EligibleSubtotal(selection, coupon), coupon)
}

func (p *PricingCalculator) discountFor(eligible money.Money, coupon *models.Coupon) money.Money {
	if eligible <= 0 {
		return 0
	}

	switch coupon.DiscountType {
	case models.DiscountPercentage:
		d := money.PercentOf(eligible, decimal.NewFromInt(coupon.DiscountValue))
		if coupon.HasMaxDiscount() {
			d = money.Min(d, coupon.MaxDiscountAmount)
		}

		return money.Min(d, eligible)
	case models.DiscountFixed:
		return money.Min(money.NonNegative(money.Money(coupon.DiscountValue)), eligible)
	default:
		return 0
	}
}

func (p *PricingCalculator) FinalTotal(selection []models.CartLine, coupon *models.Coupon) money.Money {
	return money.NonNegative(p.Subtotal(selection) - p.Discount(selection, coupon))
}

// Price computes the full snapshot in one pass, including the per-line
// allocation of the discount.
func (p *PricingCalculator) Price(selection []models.CartLine, coupon *models.Coupon) models.PricingSnapshot {
	eligibleCats := p.EligibleCategories(selection, coupon)

	snap := models.PricingSnapshot{
		Lines: make([]models.LinePricing, 0, len(selection)),
	}

	lastEligible := -1

	for _, line := range selection {
		lp := models.LinePricing{
			CartID:    line.CartID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
			Eligible:  coupon != nil && p.lineEligible(line, coupon, eligibleCats),
		}

		snap.Subtotal += lp.Subtotal
		snap.TotalQuantity += line.Quantity

		if lp.Eligible {
			snap.EligibleSubtotal += lp.Subtotal
			lastEligible = len(snap.Lines)
		}

		snap.Lines = append(snap.Lines, lp)
	}

	if coupon == nil {
		snap.EligibleSubtotal = snap.Subtotal
		snap.FinalTotal = snap.Subtotal

		return snap
	}

	snap.CouponCode = coupon.Code
	snap.Discount = p.discountFor(snap.EligibleSubtotal, coupon)
	snap.FinalTotal = money.NonNegative(snap.Subtotal - snap.Discount)

	allocate(snap.Lines, snap.Discount, snap.EligibleSubtotal, lastEligible)

	return snap
}

// allocate splits discount across eligible lines in proportion to their
// subtotal; flooring leftovers go to the last eligible line.
func allocate(lines []models.LinePricing, discount, eligibleSubtotal money.Money, last int) {
	if discount <= 0 || eligibleSubtotal <= 0 || last < 0 {
		return
	}

	total := decimal.NewFromInt(discount.Int64())
	base := decimal.NewFromInt(eligibleSubtotal.Int64())

	var given money.Money

	for i := range lines {
		if !lines[i].Eligible {
			continue
		}

		if i == last {
			lines[i].Discount = discount - given

			return
		}

		share := money.Money(total.Mul(decimal.NewFromInt(lines[i].Subtotal.Int64())).Div(base).Floor().IntPart())
		lines[i].Discount = share
		given += share
	}
}
