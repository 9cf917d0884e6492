package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/plate"
	"rideshare/internal/provider"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// CatalogHandler serves public reference data: cities, plates and routes.
type CatalogHandler struct {
	cities      repository.CityRepository
	tripService *service.TripService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cities repository.CityRepository, tripService *service.TripService) *CatalogHandler {
	return &CatalogHandler{cities: cities, tripService: tripService}
}

// PlateResponse is the HTTP response for plate normalization.
type PlateResponse struct {
	Normalized string `json:"normalized"`
	Display    string `json:"display"`
}

// RouteResponse is the HTTP response for a route estimate.
type RouteResponse struct {
	Available     bool    `json:"available"`
	DistanceKm    float64 `json:"distance_km,omitempty"`
	DurationHours int     `json:"duration_hours,omitempty"`
}

// NormalizePlate handles GET /v1/plates/normalize
func (h *CatalogHandler) NormalizePlate(c *gin.Context) {
	normalized, err := plate.Normalize(c.Query("plate"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PlateResponse{
		Normalized: normalized,
		Display:    plate.FormatForDisplay(normalized),
	})
}

// Cities handles GET /v1/cities
func (h *CatalogHandler) Cities(c *gin.Context) {
	cities, err := h.cities.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]*CityResponse, 0, len(cities))
	for _, city := range cities {
		response = append(response, toCityResponse(city))
	}

	respondJSON(c, http.StatusOK, response)
}

// Route handles GET /v1/routes?lat1=&lon1=&lat2=&lon2=
func (h *CatalogHandler) Route(c *gin.Context) {
	var coords [4]float64
	for i, key := range []string{"lat1", "lon1", "lat2", "lon2"} {
		v, err := strconv.ParseFloat(c.Query(key), 64)
		if err != nil {
			badRequest(c, key+" must be a number")
			return
		}
		coords[i] = v
	}
	if !validLatLon(coords[0], coords[1]) || !validLatLon(coords[2], coords[3]) {
		badRequest(c, "coordinates out of range")
		return
	}

	route := h.tripService.EstimateRoute(c.Request.Context(),
		provider.Point{Lat: coords[0], Lon: coords[1]},
		provider.Point{Lat: coords[2], Lon: coords[3]},
	)

	respondJSON(c, http.StatusOK, toRouteResponse(route))
}

func toRouteResponse(r provider.Route) RouteResponse {
	if !r.Available() {
		return RouteResponse{}
	}
	return RouteResponse{Available: true, DistanceKm: r.DistanceKm, DurationHours: r.DurationHours}
}

func validLatLon(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
