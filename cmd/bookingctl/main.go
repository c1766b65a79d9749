package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Gitgirlels/cocoa-code/internal/booking"
	"github.com/Gitgirlels/cocoa-code/internal/config"
	"github.com/Gitgirlels/cocoa-code/internal/payments"
	"github.com/Gitgirlels/cocoa-code/internal/session"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	var (
		name         = flag.String("name", "", "client name")
		email        = flag.String("email", "", "client email")
		spec         = flag.String("spec", "", "project description")
		websiteType  = flag.String("website-type", "", "website type hint")
		month        = flag.String("month", "", "booking month, e.g. 'August 2025'")
		service      = flag.String("service", "", "service type: landing, business, ecommerce, custom")
		subscription = flag.String("subscription", "", "subscription tier: basic, plus, premium, unlimited")
		extras       = flag.String("extras", "", "comma-separated extras, e.g. seo,logo")
		discount     = flag.String("discount", "", "discount code")
		paymentID    = flag.String("payment-method", "", "tokenized payment method to attach after booking")
		quoteOnly    = flag.Bool("quote-only", false, "print the quote and exit without submitting")
		months       = flag.Bool("months", false, "print month availability and exit")
	)
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting cocoa-code booking session", "env", cfg.Env, "candidates", len(cfg.APIBaseURLs))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctl := session.New(cfg, logger)
	ctl.Start(ctx)
	defer ctl.Close()

	if *months {
		for m, ok := range ctl.MonthAvailability(ctx) {
			status := "available"
			if !ok {
				status = "fully booked"
			}
			fmt.Printf("%s: %s\n", m, status)
		}
		return
	}

	if err := applySelection(ctl, *service, *subscription, *extras, *discount); err != nil {
		logger.Error("invalid selection", "error", err)
		os.Exit(1)
	}

	q := ctl.Quote()
	fmt.Printf("Subtotal: $%d\n", q.Subtotal)
	if q.DiscountAmount > 0 {
		fmt.Printf("Discount: -$%d\n", q.DiscountAmount)
	}
	fmt.Printf("Total: $%d\n", q.Total)
	if q.MonthlyTotal > 0 {
		fmt.Printf("Monthly: $%d/mo\n", q.MonthlyTotal)
	}
	if *quoteOnly {
		return
	}

	rec, err := ctl.SubmitBooking(ctx, booking.Request{
		ClientName:   *name,
		Email:        *email,
		ProjectSpec:  *spec,
		WebsiteType:  *websiteType,
		BookingMonth: *month,
	})
	if err != nil {
		logger.Error("booking failed", "error", err)
		os.Exit(1)
	}

	mode := "online"
	if rec.Local {
		mode = "offline"
	}
	fmt.Printf("Booked %s (%s): %s\n", rec.BookingMonth, mode, rec.ProjectID)

	if *paymentID != "" {
		if err := ctl.SaveCardDetails(ctx, rec, *paymentID); err != nil {
			if errors.Is(err, payments.ErrOffline) || errors.Is(err, payments.ErrLocalBooking) {
				fmt.Println("Card details deferred until the booking is confirmed online.")
				return
			}
			logger.Error("saving card details failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("Card details saved.")
	}
}

func applySelection(ctl *session.Controller, service, subscription, extras, discount string) error {
	if service != "" {
		if _, err := ctl.Apply(session.Action{Kind: session.ActionSelectService, Value: service}); err != nil {
			return err
		}
	}
	if subscription != "" {
		if _, err := ctl.Apply(session.Action{Kind: session.ActionSelectSubscription, Value: subscription}); err != nil {
			return err
		}
	}
	for _, e := range strings.Split(extras, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, err := ctl.Apply(session.Action{Kind: session.ActionToggleExtra, Value: e}); err != nil {
			return err
		}
	}
	if discount != "" {
		if _, err := ctl.Apply(session.Action{Kind: session.ActionApplyDiscount, Value: discount}); err != nil {
			return err
		}
	}
	return nil
}
