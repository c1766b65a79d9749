// Package booking holds the booking record model and the submission flow
// that persists a record remotely, or locally when no backend is reachable.
package booking

import "time"

// Status tracks how far a booking record has progressed.
type Status string

const (
	StatusPending             Status = "pending"
	StatusPendingReview       Status = "pending_review"
	StatusPendingConfirmation Status = "pending_confirmation"
)

// PaymentStatus tracks the record's payment side separately from Status.
type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "unpaid"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCardSaved PaymentStatus = "card_details_saved"
)

// ColorPrefs carries the client's palette choices from the color pickers.
type ColorPrefs struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

// Request is the form input for one submission attempt. The chosen
// service, subscription, extras and total come from the pricing selection,
// not from here.
type Request struct {
	ClientName   string
	Email        string
	ProjectSpec  string
	WebsiteType  string
	BookingMonth string
	Colors       ColorPrefs
}

// Record is a finalized booking, either confirmed by the backend or
// synthesized locally in offline mode.
type Record struct {
	ProjectID    string     `json:"projectId"`
	ClientName   string     `json:"clientName"`
	Email        string     `json:"email"`
	ProjectSpec  string     `json:"projectSpec"`
	WebsiteType  string     `json:"websiteType,omitempty"`
	BookingMonth string     `json:"bookingMonth"`
	Colors       ColorPrefs `json:"colors"`

	Service      string   `json:"serviceType"`
	Subscription string   `json:"subscriptionType"`
	Extras       []string `json:"extraServices"`
	Total        int      `json:"totalAmount"`
	MonthlyTotal int      `json:"monthlyTotal"`
	DiscountCode string   `json:"discountCode,omitempty"`

	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Local         bool          `json:"local"`
	CreatedAt     time.Time     `json:"createdAt"`
}
