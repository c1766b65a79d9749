package bookingapi

// BookingRequest is the payload posted to the booking endpoint.
type BookingRequest struct {
	ClientName       string   `json:"clientName"`
	Email            string   `json:"email"`
	ProjectSpec      string   `json:"projectSpec"`
	WebsiteType      string   `json:"websiteType"`
	BookingMonth     string   `json:"bookingMonth"`
	ServiceType      string   `json:"serviceType"`
	SubscriptionType string   `json:"subscriptionType"`
	ExtraServices    []string `json:"extraServices"`
	TotalAmount      int      `json:"totalAmount"`
	DiscountCode     string   `json:"discountCode,omitempty"`
	PrimaryColor     string   `json:"primaryColor,omitempty"`
	SecondaryColor   string   `json:"secondaryColor,omitempty"`
	AccentColor      string   `json:"accentColor,omitempty"`
}

// BookingCreated is the success response of the booking endpoint.
type BookingCreated struct {
	ProjectID string `json:"projectId"`
	Message   string `json:"message,omitempty"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// PaymentIntentRequest asks the backend to open a charge intent for an
// existing booking record.
type PaymentIntentRequest struct {
	ProjectID string `json:"projectId"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
}

// PaymentIntentResponse carries the opened intent back to the client.
type PaymentIntentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// ConfirmPaymentRequest confirms an intent with a tokenized payment method.
type ConfirmPaymentRequest struct {
	IntentID        string `json:"intentId"`
	PaymentMethodID string `json:"paymentMethodId"`
}

// ConfirmPaymentResponse reports the resulting payment state.
type ConfirmPaymentResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
