package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Gitgirlels/cocoa-code/internal/bookingapi"
	"github.com/Gitgirlels/cocoa-code/pkg/logging"
)

type state struct {
	mu       sync.Mutex
	capacity int
	months   map[string]int
	intents  map[string]string // intent id -> project id
}

func newRouter(logger *logging.Logger, capacity int) http.Handler {
	if capacity < 1 {
		capacity = 4
	}
	st := &state{
		capacity: capacity,
		months:   make(map[string]int),
		intents:  make(map[string]string),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/bookings/availability/{month}", st.availability)
		r.Post("/bookings", st.createBooking(logger))
		r.Post("/payments/create-intent", st.createIntent(logger))
		r.Post("/payments/confirm", st.confirmPayment)
	})
	return r
}

func (s *state) availability(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	s.mu.Lock()
	available := s.months[month] < s.capacity
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (s *state) createBooking(logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookingapi.BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.ClientName) == "" || strings.TrimSpace(req.Email) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "clientName and email are required"})
			return
		}

		s.mu.Lock()
		if req.BookingMonth != "" && s.months[req.BookingMonth] >= s.capacity {
			s.mu.Unlock()
			writeJSON(w, http.StatusConflict, map[string]string{"error": req.BookingMonth + " is fully booked"})
			return
		}
		if req.BookingMonth != "" {
			s.months[req.BookingMonth]++
		}
		s.mu.Unlock()

		id := "proj-" + uuid.New().String()
		logger.Info("booking accepted", "project_id", id, "month", req.BookingMonth, "total", req.TotalAmount)
		writeJSON(w, http.StatusCreated, bookingapi.BookingCreated{
			ProjectID: id,
			Message:   "Booking received",
		})
	}
}

func (s *state) createIntent(logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookingapi.PaymentIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.ProjectID == "" || req.Amount <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "projectId and a positive amount are required"})
			return
		}

		id := "pi-" + uuid.New().String()
		s.mu.Lock()
		s.intents[id] = req.ProjectID
		s.mu.Unlock()

		logger.Info("payment intent opened", "intent_id", id, "project_id", req.ProjectID, "amount", req.Amount)
		writeJSON(w, http.StatusOK, bookingapi.PaymentIntentResponse{
			IntentID:     id,
			ClientSecret: id + "_secret",
		})
	}
}

func (s *state) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req bookingapi.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	_, ok := s.intents[req.IntentID]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown payment intent"})
		return
	}
	if req.PaymentMethodID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "paymentMethodId is required"})
		return
	}
	writeJSON(w, http.StatusOK, bookingapi.ConfirmPaymentResponse{Status: "card_details_saved"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
