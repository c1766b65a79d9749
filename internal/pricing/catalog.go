// Package pricing holds the quote form's selection state and derives the
// running total from it. It is free of any UI or transport dependency.
package pricing

// ServiceType identifies a main website service offering.
type ServiceType string

// SubscriptionTier identifies a monthly support plan.
type SubscriptionTier string

// ExtraType identifies an optional add-on service.
type ExtraType string

const (
	TierBasic     SubscriptionTier = "basic"
	TierPlus      SubscriptionTier = "plus"
	TierPremium   SubscriptionTier = "premium"
	TierUnlimited SubscriptionTier = "unlimited"
)

// Discount is one entry of the fixed discount-code table.
type Discount struct {
	Code    string
	Percent int
	Active  bool
}

// Catalog maps the fixed identifiers the form offers to their prices in
// whole currency units.
type Catalog struct {
	Services      map[ServiceType]int
	Subscriptions map[SubscriptionTier]int
	Extras        map[ExtraType]int
	Discounts     map[string]Discount
}

// DefaultCatalog returns the Cocoa Code price list.
func DefaultCatalog() Catalog {
	return Catalog{
		Services: map[ServiceType]int{
			"landing":   800,
			"business":  1200,
			"ecommerce": 2000,
			"custom":    3000,
		},
		Subscriptions: map[SubscriptionTier]int{
			TierBasic:     0,
			TierPlus:      49,
			TierPremium:   99,
			TierUnlimited: 149,
		},
		Extras: map[ExtraType]int{
			"seo":         225,
			"logo":        150,
			"copywriting": 200,
			"hosting":     120,
			"management":  75,
			"fixes":       50,
		},
		Discounts: map[string]Discount{
			"COCOA50":   {Code: "COCOA50", Percent: 50, Active: true},
			"LAUNCH25":  {Code: "LAUNCH25", Percent: 25, Active: true},
			"FRIENDS10": {Code: "FRIENDS10", Percent: 10, Active: false},
		},
	}
}

// DiscountScope controls what a percentage discount is applied to.
type DiscountScope string

const (
	// ScopeSubtotal applies the discount to the full one-time subtotal.
	ScopeSubtotal DiscountScope = "subtotal"
	// ScopeBase applies the discount to the base service price only.
	ScopeBase DiscountScope = "base"
)

// Policy captures the pricing decisions that varied between revisions of
// the form: which extras are billed monthly rather than once, and what
// the discount applies to.
type Policy struct {
	MonthlyExtras map[ExtraType]bool
	DiscountScope DiscountScope
}

// DefaultPolicy excludes management and fixes from the one-time total and
// discounts the full subtotal.
func DefaultPolicy() Policy {
	return Policy{
		MonthlyExtras: map[ExtraType]bool{"management": true, "fixes": true},
		DiscountScope: ScopeSubtotal,
	}
}

// PolicyFrom builds a Policy from configuration values.
func PolicyFrom(monthlyExtras []string, scope string) Policy {
	p := Policy{
		MonthlyExtras: make(map[ExtraType]bool, len(monthlyExtras)),
		DiscountScope: ScopeSubtotal,
	}
	for _, e := range monthlyExtras {
		p.MonthlyExtras[ExtraType(e)] = true
	}
	if DiscountScope(scope) == ScopeBase {
		p.DiscountScope = ScopeBase
	}
	return p
}
