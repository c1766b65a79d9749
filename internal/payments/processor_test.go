package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
	"github.com/Gitgirlels/cocoa-code/internal/bookingapi"
)

type fakeEndpoints struct {
	base   string
	online bool
}

func (f *fakeEndpoints) Active() (string, bool) { return f.base, f.online }

type fakePaymentsClient struct {
	intentErr  error
	confirmErr error
	gotIntent  *bookingapi.PaymentIntentRequest
	gotConfirm *bookingapi.ConfirmPaymentRequest
}

func (f *fakePaymentsClient) CreatePaymentIntent(ctx context.Context, req bookingapi.PaymentIntentRequest) (*bookingapi.PaymentIntentResponse, error) {
	f.gotIntent = &req
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &bookingapi.PaymentIntentResponse{IntentID: "pi_1"}, nil
}

func (f *fakePaymentsClient) ConfirmPayment(ctx context.Context, req bookingapi.ConfirmPaymentRequest) (*bookingapi.ConfirmPaymentResponse, error) {
	f.gotConfirm = &req
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &bookingapi.ConfirmPaymentResponse{Status: "card_details_saved"}, nil
}

func newProcessor(endpoints *fakeEndpoints, client *fakePaymentsClient) *Processor {
	return NewProcessor(ProcessorConfig{
		Endpoints: endpoints,
		NewClient: func(base string) Client { return client },
	})
}

func TestSaveCardHappyPath(t *testing.T) {
	client := &fakePaymentsClient{}
	p := newProcessor(&fakeEndpoints{base: "http://api", online: true}, client)

	rec := &booking.Record{ProjectID: "proj_1", Total: 1025, Status: booking.StatusPendingReview, PaymentStatus: booking.PaymentStatusPending}
	require.NoError(t, p.SaveCard(context.Background(), rec, "pm_1"))

	assert.Equal(t, booking.PaymentStatusCardSaved, rec.PaymentStatus)
	assert.Equal(t, booking.StatusPendingConfirmation, rec.Status)
	require.NotNil(t, client.gotIntent)
	assert.Equal(t, 1025, client.gotIntent.Amount)
	assert.Equal(t, "aud", client.gotIntent.Currency)
	require.NotNil(t, client.gotConfirm)
	assert.Equal(t, "pi_1", client.gotConfirm.IntentID)
	assert.Equal(t, "pm_1", client.gotConfirm.PaymentMethodID)
}

func TestSaveCardOffline(t *testing.T) {
	p := newProcessor(&fakeEndpoints{online: false}, &fakePaymentsClient{})

	rec := &booking.Record{ProjectID: "proj_1", PaymentStatus: booking.PaymentStatusPending}
	err := p.SaveCard(context.Background(), rec, "pm_1")

	assert.ErrorIs(t, err, ErrOffline)
	assert.Equal(t, booking.PaymentStatusPending, rec.PaymentStatus, "record untouched")
}

func TestSaveCardLocalBooking(t *testing.T) {
	p := newProcessor(&fakeEndpoints{base: "http://api", online: true}, &fakePaymentsClient{})

	rec := &booking.Record{ProjectID: "local-1", Local: true}
	assert.ErrorIs(t, p.SaveCard(context.Background(), rec, "pm_1"), ErrLocalBooking)
}

func TestSaveCardConfirmFailureLeavesRecord(t *testing.T) {
	client := &fakePaymentsClient{confirmErr: errors.New("declined")}
	p := newProcessor(&fakeEndpoints{base: "http://api", online: true}, client)

	rec := &booking.Record{ProjectID: "proj_1", PaymentStatus: booking.PaymentStatusPending}
	err := p.SaveCard(context.Background(), rec, "pm_1")

	require.Error(t, err)
	assert.Equal(t, booking.PaymentStatusPending, rec.PaymentStatus)
}
