package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/plate"
	"rideshare/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
	tripService   *service.TripService
	tokens        *middleware.TokenIssuer
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, tripService *service.TripService, tokens *middleware.TokenIssuer) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		tripService:   tripService,
		tokens:        tokens,
	}
}

// BecomeDriverRequest is the HTTP request body for driver onboarding.
type BecomeDriverRequest struct {
	LicensePlate      string `json:"license_plate"`
	DrivingExperience int    `json:"driving_experience"`
	CarBrand          string `json:"car_brand"`
	CarModel          string `json:"car_model"`
	CarYear           int    `json:"car_year"`
	VINNumber         string `json:"vin_number"`
}

// DriverProfileResponse is the HTTP response for driver profile data.
type DriverProfileResponse struct {
	LicensePlate      string `json:"license_plate"`
	PlateDisplay      string `json:"plate_display"`
	DrivingExperience int    `json:"driving_experience"`
	CarBrand          string `json:"car_brand"`
	CarModel          string `json:"car_model"`
	CarYear           int    `json:"car_year"`
	VINNumber         string `json:"vin_number"`
	Verified          bool   `json:"verified"`
}

// BecomeDriverResponse carries the new profile and a token with the driver role.
type BecomeDriverResponse struct {
	Profile     DriverProfileResponse `json:"profile"`
	AccessToken string                `json:"access_token"`
	ExpiresAt   string                `json:"expires_at"`
}

// DriverStatsResponse is the HTTP response for driver statistics.
type DriverStatsResponse struct {
	TotalTrips      int             `json:"total_trips"`
	ActiveTrips     int             `json:"active_trips"`
	UpcomingTrips   int             `json:"upcoming_trips"`
	TotalPassengers int             `json:"total_passengers"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
}

// DriverTripResponse is a driver's trip with booking counters.
type DriverTripResponse struct {
	TripResponse
	BookedSeats    int `json:"booked_seats"`
	ConfirmedCount int `json:"confirmed_bookings"`
}

func toDriverProfileResponse(p *domain.DriverProfile) DriverProfileResponse {
	return DriverProfileResponse{
		LicensePlate:      p.LicensePlate,
		PlateDisplay:      plate.FormatForDisplay(p.LicensePlate),
		DrivingExperience: p.DrivingExperience,
		CarBrand:          p.CarBrand,
		CarModel:          p.CarModel,
		CarYear:           p.CarYear,
		VINNumber:         p.VINNumber,
		Verified:          p.Verified,
	}
}

// BecomeDriver handles POST /v1/drivers
func (h *DriverHandler) BecomeDriver(c *gin.Context) {
	var req BecomeDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	userID := middleware.UserID(c)
	profile, err := h.driverService.BecomeDriver(c.Request.Context(), service.BecomeDriverRequest{
		UserID:            userID,
		LicensePlate:      req.LicensePlate,
		DrivingExperience: req.DrivingExperience,
		CarBrand:          req.CarBrand,
		CarModel:          req.CarModel,
		CarYear:           req.CarYear,
		VINNumber:         req.VINNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, exp, err := h.tokens.Issue(userID, string(domain.UserRoleDriver))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, BecomeDriverResponse{
		Profile:     toDriverProfileResponse(profile),
		AccessToken: token,
		ExpiresAt:   exp.Format(timestampLayout),
	})
}

// Stats handles GET /v1/drivers/me/stats
func (h *DriverHandler) Stats(c *gin.Context) {
	stats, err := h.tripService.GetDriverStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DriverStatsResponse{
		TotalTrips:      stats.TotalTrips,
		ActiveTrips:     stats.ActiveTrips,
		UpcomingTrips:   stats.UpcomingTrips,
		TotalPassengers: stats.TotalPassengers,
		TotalEarnings:   stats.TotalEarnings,
	})
}

// Trips handles GET /v1/drivers/me/trips
func (h *DriverHandler) Trips(c *gin.Context) {
	trips, err := h.tripService.ListDriverTrips(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverTripResponse, 0, len(trips))
	for _, dt := range trips {
		response = append(response, DriverTripResponse{
			TripResponse:   toTripResponse(dt.Trip),
			BookedSeats:    dt.BookedSeats,
			ConfirmedCount: dt.ConfirmedCount,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// Verify handles POST /v1/admin/drivers/:id/verify
func (h *DriverHandler) Verify(c *gin.Context) {
	if err := h.driverService.VerifyDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
