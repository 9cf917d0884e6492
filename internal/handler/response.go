package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/plate"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Internal errors are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s request_id=%s: %v",
			c.Request.Method, c.FullPath(), c.GetString(middleware.ContextRequestID), err)
		c.JSON(code, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidLuggageWeight),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidLuggageCapacity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDepartureTime),
		errors.Is(err, service.ErrDepartureInPast),
		errors.Is(err, service.ErrSameOriginDestination),
		errors.Is(err, service.ErrUnknownCity),
		errors.Is(err, service.ErrInvalidDrivingExperience),
		errors.Is(err, service.ErrInvalidCarYear),
		errors.Is(err, service.ErrInvalidVIN),
		errors.Is(err, service.ErrInvalidCarDetails),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, plate.ErrInvalidPlateFormat):
		return http.StatusBadRequest

	// Forbidden errors
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrSelfBookingForbidden),
		errors.Is(err, service.ErrNotADriver),
		errors.Is(err, service.ErrDriverNotVerified),
		errors.Is(err, service.ErrNotParticipant):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrInsufficientCapacity),
		errors.Is(err, service.ErrCapacityBelowBooked),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrTripInactive),
		errors.Is(err, service.ErrAlreadyDriver),
		errors.Is(err, service.ErrPhoneTaken),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// TripResponse is the HTTP representation of a trip.
type TripResponse struct {
	ID              string          `json:"id"`
	DriverID        string          `json:"driver_id"`
	OriginID        string          `json:"origin_id"`
	DestinationID   string          `json:"destination_id"`
	DepartureDate   string          `json:"departure_date"`
	DepartureTime   string          `json:"departure_time"`
	PricePerSeat    decimal.Decimal `json:"price_per_seat"`
	AvailableSeats  int             `json:"available_seats"`
	LuggageCapacity int             `json:"luggage_capacity"`
	IsActive        bool            `json:"is_active"`
	FreeSeats       *int            `json:"free_seats,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

func toTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID,
		DriverID:        t.DriverID,
		OriginID:        t.OriginID,
		DestinationID:   t.DestinationID,
		DepartureDate:   t.DepartureDate.Format(dateLayout),
		DepartureTime:   t.DepartureTime,
		PricePerSeat:    t.PricePerSeat,
		AvailableSeats:  t.AvailableSeats,
		LuggageCapacity: t.LuggageCapacity,
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt.Format(timestampLayout),
	}
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID                 string          `json:"id"`
	TripID             string          `json:"trip_id"`
	PassengerID        string          `json:"passenger_id"`
	SeatsCount         int             `json:"seats_count"`
	LuggageWeight      int             `json:"luggage_weight"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	Status             string          `json:"status"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		TripID:             b.TripID,
		PassengerID:        b.PassengerID,
		SeatsCount:         b.SeatsCount,
		LuggageWeight:      b.LuggageWeight,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(timestampLayout),
	}
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Phone: u.Phone, Role: string(u.Role)}
}

// CityResponse is the HTTP representation of a city.
type CityResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toCityResponse(c *domain.City) *CityResponse {
	if c == nil {
		return nil
	}
	return &CityResponse{ID: c.ID, Name: c.Name, Latitude: c.Latitude, Longitude: c.Longitude}
}
