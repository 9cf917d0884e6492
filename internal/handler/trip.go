package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rideshare/internal/middleware"
	"rideshare/internal/provider"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for publishing a trip.
type CreateTripRequest struct {
	OriginID        string          `json:"origin_id"`
	DestinationID   string          `json:"destination_id"`
	DepartureDate   string          `json:"departure_date"` // YYYY-MM-DD
	DepartureTime   string          `json:"departure_time"` // HH:MM
	PricePerSeat    decimal.Decimal `json:"price_per_seat"`
	AvailableSeats  int             `json:"available_seats"`
	LuggageCapacity int             `json:"luggage_capacity"`
}

// EditTripRequest is the HTTP request body for editing a trip.
type EditTripRequest struct {
	DepartureTime   string          `json:"departure_time"`
	PricePerSeat    decimal.Decimal `json:"price_per_seat"`
	AvailableSeats  int             `json:"available_seats"`
	LuggageCapacity int             `json:"luggage_capacity"`
}

// TripDetailsResponse is the HTTP response for a single trip.
type TripDetailsResponse struct {
	Trip        TripResponse      `json:"trip"`
	Origin      *CityResponse     `json:"origin"`
	Destination *CityResponse     `json:"destination"`
	FreeSeats   int               `json:"free_seats"`
	BookedSeats int               `json:"booked_seats"`
	CanBook     bool              `json:"can_book"`
	Weather     *provider.Weather `json:"weather,omitempty"`
	Route       RouteResponse     `json:"route"`
}

// PassengerResponse is one confirmed passenger of a trip.
type PassengerResponse struct {
	Booking BookingResponse `json:"booking"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
}

// PassengerListResponse is the driver's view of a trip's passengers.
type PassengerListResponse struct {
	TripID       string              `json:"trip_id"`
	Passengers   []PassengerResponse `json:"passengers"`
	TotalLuggage int                 `json:"total_luggage"`
	TotalRevenue decimal.Decimal     `json:"total_revenue"`
}

// Search handles GET /v1/trips
func (h *TripHandler) Search(c *gin.Context) {
	req := service.SearchTripsRequest{
		OriginID:      c.Query("from"),
		DestinationID: c.Query("to"),
		Sort:          repository.TripSort(c.Query("sort")),
	}

	if v := c.Query("date"); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}
		req.Date = date
	}

	var ok bool
	if req.MinPrice, ok = queryDecimal(c, "min_price"); !ok {
		return
	}
	if req.MaxPrice, ok = queryDecimal(c, "max_price"); !ok {
		return
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		req.Limit = limit
	}

	summaries, err := h.tripService.SearchTrips(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(summaries))
	for _, s := range summaries {
		tr := toTripResponse(s.Trip)
		free := s.FreeSeats
		tr.FreeSeats = &free
		response = append(response, tr)
	}

	respondJSON(c, http.StatusOK, response)
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.DepartureDate)
	if err != nil {
		badRequest(c, "departure_date must be YYYY-MM-DD")
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		DriverID:        middleware.UserID(c),
		OriginID:        req.OriginID,
		DestinationID:   req.DestinationID,
		DepartureDate:   date,
		DepartureTime:   req.DepartureTime,
		PricePerSeat:    req.PricePerSeat,
		AvailableSeats:  req.AvailableSeats,
		LuggageCapacity: req.LuggageCapacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// Get handles GET /v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	details, err := h.tripService.GetTripDetails(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TripDetailsResponse{
		Trip:        toTripResponse(details.Trip),
		Origin:      toCityResponse(details.Origin),
		Destination: toCityResponse(details.Destination),
		FreeSeats:   details.FreeSeats,
		BookedSeats: details.BookedSeats,
		CanBook:     details.CanBook,
		Weather:     details.Weather,
		Route:       toRouteResponse(details.Route),
	})
}

// Edit handles PUT /v1/trips/:id
func (h *TripHandler) Edit(c *gin.Context) {
	var req EditTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	trip, err := h.tripService.EditTrip(c.Request.Context(), service.EditTripRequest{
		TripID:          c.Param("id"),
		ActorID:         middleware.UserID(c),
		DepartureTime:   req.DepartureTime,
		PricePerSeat:    req.PricePerSeat,
		AvailableSeats:  req.AvailableSeats,
		LuggageCapacity: req.LuggageCapacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// Cancel handles POST /v1/trips/:id/cancel
func (h *TripHandler) Cancel(c *gin.Context) {
	trip, err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// FreeSeats handles GET /v1/trips/:id/free-seats
func (h *TripHandler) FreeSeats(c *gin.Context) {
	tripID := c.Param("id")
	free, err := h.tripService.GetFreeSeats(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"trip_id": tripID, "free_seats": free})
}

// Passengers handles GET /v1/trips/:id/passengers
func (h *TripHandler) Passengers(c *gin.Context) {
	list, err := h.tripService.TripPassengers(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := PassengerListResponse{
		TripID:       list.Trip.ID,
		Passengers:   make([]PassengerResponse, 0, len(list.Passengers)),
		TotalLuggage: list.TotalLuggage,
		TotalRevenue: list.TotalRevenue,
	}
	for _, p := range list.Passengers {
		response.Passengers = append(response.Passengers, PassengerResponse{
			Booking: toBookingResponse(p.Booking),
			Name:    p.User.Name,
			Phone:   p.User.Phone,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// Manifest handles GET /v1/trips/:id/manifest.pdf
func (h *TripHandler) Manifest(c *gin.Context) {
	data, filename, err := h.tripService.Manifest(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// queryDecimal parses an optional decimal query parameter. It writes a 400
// response and returns false when the value is malformed.
func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		badRequest(c, key+" must be a number")
		return nil, false
	}
	return &d, true
}
