package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for booking seats.
type CreateBookingRequest struct {
	SeatsCount    *int `json:"seats_count"` // Defaults to one seat
	LuggageWeight int  `json:"luggage_weight"`
}

// CancelBookingRequest is the optional HTTP request body for cancelling.
type CancelBookingRequest struct {
	Reason  string `json:"reason"`
	Comment string `json:"comment"`
}

// RejectBookingRequest is the optional HTTP request body for rejecting.
type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

// Create handles POST /v1/trips/:id/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	seats := 1
	if req.SeatsCount != nil {
		seats = *req.SeatsCount
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		TripID:        c.Param("id"),
		PassengerID:   middleware.UserID(c),
		SeatsCount:    seats,
		LuggageWeight: req.LuggageWeight,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// List handles GET /v1/bookings?active=true
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.ListPassengerBookings(c.Request.Context(), middleware.UserID(c), c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}

	respondJSON(c, http.StatusOK, response)
}

// Cancel handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), service.CancelBookingRequest{
		BookingID: c.Param("id"),
		ActorID:   middleware.UserID(c),
		Reason:    req.Reason,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// Confirm handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// Reject handles POST /v1/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	var req RejectBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.RejectBooking(c.Request.Context(), service.RejectBookingRequest{
		BookingID: c.Param("id"),
		ActorID:   middleware.UserID(c),
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// bindOptionalJSON binds a JSON body if one was sent. An empty body is fine.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return false
	}
	return true
}
