package pricing

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownDiscount means the code is not in the discount table.
	ErrUnknownDiscount = errors.New("pricing: unknown discount code")
	// ErrInactiveDiscount means the code exists but is switched off.
	ErrInactiveDiscount = errors.New("pricing: discount code no longer active")
)

// LineItem is one entry of a quote breakdown.
type LineItem struct {
	Label   string `json:"label"`
	Amount  int    `json:"amount"`
	Monthly bool   `json:"monthly"`
}

// Quote is the derived price of the current selection. Total is the
// one-time amount due at booking; MonthlyTotal recurs every month.
type Quote struct {
	Total          int        `json:"total"`
	Subtotal       int        `json:"subtotal"`
	DiscountAmount int        `json:"discountAmount"`
	MonthlyTotal   int        `json:"monthlyTotal"`
	Items          []LineItem `json:"items"`
}

// Selection holds the user's current choices: at most one main service,
// exactly one subscription tier and a set of extras unique by type. The
// total is never stored; Quote recomputes it from scratch every time.
type Selection struct {
	catalog Catalog
	policy  Policy

	hasService   bool
	service      ServiceType
	servicePrice int

	subscription SubscriptionTier
	extras       map[ExtraType]int
	discount     *Discount
}

// NewSelection returns an empty selection with the basic tier active.
func NewSelection(catalog Catalog, policy Policy) *Selection {
	return &Selection{
		catalog:      catalog,
		policy:       policy,
		subscription: TierBasic,
		extras:       make(map[ExtraType]int),
	}
}

// SelectService replaces the active main service. Unknown identifiers are
// accepted with a zero price.
func (s *Selection) SelectService(t ServiceType) {
	s.hasService = true
	s.service = t
	s.servicePrice = s.catalog.Services[t]
}

// SelectSubscription replaces the active tier. Unknown tiers fall back to basic.
func (s *Selection) SelectSubscription(t SubscriptionTier) {
	if _, ok := s.catalog.Subscriptions[t]; !ok {
		t = TierBasic
	}
	s.subscription = t
}

// ToggleExtra adds the extra if absent and removes it if present.
func (s *Selection) ToggleExtra(t ExtraType) {
	if _, ok := s.extras[t]; ok {
		delete(s.extras, t)
		return
	}
	s.extras[t] = s.catalog.Extras[t]
}

// ApplyDiscount replaces any previously applied code.
func (s *Selection) ApplyDiscount(code string) error {
	d, ok := s.catalog.Discounts[code]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDiscount, code)
	}
	if !d.Active {
		return fmt.Errorf("%w: %q", ErrInactiveDiscount, code)
	}
	s.discount = &d
	return nil
}

// ClearDiscount removes any applied code.
func (s *Selection) ClearDiscount() {
	s.discount = nil
}

// Reset clears service, extras and discount and restores the basic tier.
func (s *Selection) Reset() {
	s.hasService = false
	s.service = ""
	s.servicePrice = 0
	s.subscription = TierBasic
	s.extras = make(map[ExtraType]int)
	s.discount = nil
}

// Service reports the active main service, if any.
func (s *Selection) Service() (ServiceType, int, bool) {
	return s.service, s.servicePrice, s.hasService
}

// Subscription reports the active tier.
func (s *Selection) Subscription() SubscriptionTier {
	return s.subscription
}

// Extras returns the selected extra types in stable order.
func (s *Selection) Extras() []ExtraType {
	out := make([]ExtraType, 0, len(s.extras))
	for t := range s.extras {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DiscountCode reports the applied code, or "" when none is applied.
func (s *Selection) DiscountCode() string {
	if s.discount == nil {
		return ""
	}
	return s.discount.Code
}

// Quote recomputes the derived total. One-time items are the base service
// plus extras not marked monthly by policy; monthly items are the
// subscription fee plus the monthly extras. The discount percentage is
// applied per policy scope, rounded half up, and the result never goes
// below zero.
func (s *Selection) Quote() Quote {
	q := Quote{}

	base := 0
	if s.hasService {
		base = s.servicePrice
		q.Items = append(q.Items, LineItem{Label: string(s.service), Amount: base})
	}

	oneTimeExtras := 0
	for _, t := range s.Extras() {
		price := s.extras[t]
		monthly := s.policy.MonthlyExtras[t]
		q.Items = append(q.Items, LineItem{Label: string(t), Amount: price, Monthly: monthly})
		if monthly {
			q.MonthlyTotal += price
		} else {
			oneTimeExtras += price
		}
	}

	subFee := s.catalog.Subscriptions[s.subscription]
	if subFee > 0 {
		q.Items = append(q.Items, LineItem{Label: string(s.subscription), Amount: subFee, Monthly: true})
	}
	q.MonthlyTotal += subFee

	q.Subtotal = base + oneTimeExtras

	total := q.Subtotal
	if s.discount != nil {
		switch s.policy.DiscountScope {
		case ScopeBase:
			total = discounted(base, s.discount.Percent) + oneTimeExtras
		default:
			total = discounted(q.Subtotal, s.discount.Percent)
		}
	}
	if total < 0 {
		total = 0
	}
	q.Total = total
	q.DiscountAmount = q.Subtotal - total

	return q
}

// discounted applies pct percent off, rounding half up in integer math.
func discounted(amount, pct int) int {
	if pct <= 0 {
		return amount
	}
	if pct >= 100 {
		return 0
	}
	return (amount*(100-pct) + 50) / 100
}
