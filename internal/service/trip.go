package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rideshare/internal/domain"
	"rideshare/internal/provider"
	"rideshare/internal/repository"
)

const tripCancelledReason = "trip cancelled by driver"

// WeatherLookup returns the current weather at a coordinate, or nil.
type WeatherLookup interface {
	Current(ctx context.Context, lat, lon float64) *provider.Weather
}

// RouteLookup returns the driving route between two points, or the zero Route.
type RouteLookup interface {
	Route(ctx context.Context, from, to provider.Point) provider.Route
}

// TripService handles trip operations.
type TripService struct {
	store         repository.Store
	notifications *NotificationService
	policy        BookingPolicy
	weather       WeatherLookup // Optional
	routes        RouteLookup   // Optional
	now           func() time.Time
}

// NewTripService creates a new TripService. weather and routes may be nil.
func NewTripService(
	store repository.Store,
	notifications *NotificationService,
	policy BookingPolicy,
	weather WeatherLookup,
	routes RouteLookup,
) *TripService {
	return &TripService{
		store:         store,
		notifications: notifications,
		policy:        policy,
		weather:       weather,
		routes:        routes,
		now:           time.Now,
	}
}

// CreateTripRequest contains the parameters for publishing a trip.
type CreateTripRequest struct {
	DriverID        string
	OriginID        string
	DestinationID   string
	DepartureDate   time.Time
	DepartureTime   string // HH:MM
	PricePerSeat    decimal.Decimal
	AvailableSeats  int
	LuggageCapacity int
}

// CreateTrip publishes a new active trip.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if err := s.validateOffer(req.AvailableSeats, req.LuggageCapacity, req.PricePerSeat, req.DepartureTime); err != nil {
		return nil, err
	}

	if req.OriginID == req.DestinationID {
		return nil, ErrSameOriginDestination
	}

	departureDate := dateOnly(req.DepartureDate)
	if departureDate.Before(dateOnly(s.now())) {
		return nil, ErrDepartureInPast
	}

	driver, err := s.store.Users().GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	if !driver.IsDriver() {
		return nil, ErrNotADriver
	}

	if s.policy.RequireVerifiedDriver {
		profile, err := s.store.DriverProfiles().GetByUserID(ctx, driver.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if profile == nil || !profile.Verified {
			return nil, ErrDriverNotVerified
		}
	}

	for _, cityID := range []string{req.OriginID, req.DestinationID} {
		if _, err := s.store.Cities().GetByID(ctx, cityID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCity, cityID)
			}
			return nil, err
		}
	}

	now := s.now()
	trip := &domain.Trip{
		ID:              uuid.New().String(),
		DriverID:        driver.ID,
		OriginID:        req.OriginID,
		DestinationID:   req.DestinationID,
		DepartureDate:   departureDate,
		DepartureTime:   req.DepartureTime,
		PricePerSeat:    req.PricePerSeat,
		AvailableSeats:  req.AvailableSeats,
		LuggageCapacity: req.LuggageCapacity,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Trips().Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// EditTripRequest contains the new values of a trip's mutable fields.
type EditTripRequest struct {
	TripID          string
	ActorID         string
	DepartureTime   string
	PricePerSeat    decimal.Decimal
	AvailableSeats  int
	LuggageCapacity int
}

// EditTrip updates a trip and notifies every passenger with a confirmed
// booking. The whole edit is rejected if seats would drop below booked seats.
func (s *TripService) EditTrip(ctx context.Context, req EditTripRequest) (*domain.Trip, error) {
	out := s.notifications.newOutbox()

	var trip *domain.Trip
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		var err error
		trip, err = tx.Trips().GetByIDForUpdate(ctx, req.TripID)
		if err != nil {
			return err
		}

		if !trip.IsDrivenBy(req.ActorID) {
			return ErrNotOwner
		}

		if err := s.validateOffer(req.AvailableSeats, req.LuggageCapacity, req.PricePerSeat, req.DepartureTime); err != nil {
			return err
		}

		if !trip.IsActive {
			return ErrTripInactive
		}

		bookings, err := tx.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		if req.AvailableSeats < BookedSeats(bookings) {
			return ErrCapacityBelowBooked
		}

		trip.DepartureTime = req.DepartureTime
		trip.PricePerSeat = req.PricePerSeat
		trip.AvailableSeats = req.AvailableSeats
		trip.LuggageCapacity = req.LuggageCapacity
		trip.UpdatedAt = s.now()

		if err := tx.Trips().Update(ctx, trip); err != nil {
			return err
		}

		route, err := routeName(ctx, tx, trip)
		if err != nil {
			return err
		}

		// One notification per passenger even with several bookings.
		notified := make(map[string]bool)
		for _, b := range bookings {
			if b.Status != domain.BookingStatusConfirmed || notified[b.PassengerID] {
				continue
			}
			notified[b.PassengerID] = true

			if _, err := out.emit(ctx, tx, EmitRequest{
				UserID:  b.PassengerID,
				Type:    domain.NotificationTripUpdate,
				Title:   "Trip updated",
				Message: fmt.Sprintf("Trip %s was updated", route),
				TripID:  trip.ID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return trip, nil
}

// CancelTrip deactivates a trip and cancels every live booking on it,
// notifying each passenger. Either all of it commits or none.
func (s *TripService) CancelTrip(ctx context.Context, tripID, actorID string) (*domain.Trip, error) {
	out := s.notifications.newOutbox()

	var trip *domain.Trip
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		var err error
		trip, err = tx.Trips().GetByIDForUpdate(ctx, tripID)
		if err != nil {
			return err
		}

		if !trip.IsDrivenBy(actorID) {
			return ErrNotOwner
		}

		if !trip.IsActive {
			return ErrTripInactive
		}

		bookings, err := tx.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		route, err := routeName(ctx, tx, trip)
		if err != nil {
			return err
		}

		for _, b := range bookings {
			if !b.CanTransitionTo(domain.BookingStatusCancelled) {
				continue
			}

			err := tx.Bookings().UpdateStatus(ctx, b.ID, b.Status, domain.BookingStatusCancelled, tripCancelledReason)
			if errors.Is(err, repository.ErrStaleStatus) {
				continue
			}
			if err != nil {
				return err
			}

			if _, err := out.emit(ctx, tx, EmitRequest{
				UserID: b.PassengerID,
				Type:   domain.NotificationCancellation,
				Title:  "Trip cancelled",
				Message: fmt.Sprintf("Trip %s on %s was cancelled by the driver",
					route, trip.DepartureDate.Format("02.01.2006")),
				TripID:    trip.ID,
				BookingID: b.ID,
			}); err != nil {
				return err
			}
		}

		trip.IsActive = false
		trip.UpdatedAt = s.now()
		return tx.Trips().Update(ctx, trip)
	})
	if err != nil {
		return nil, err
	}

	out.flush(ctx)
	return trip, nil
}

// GetFreeSeats returns the seats of a trip not held by confirmed bookings.
func (s *TripService) GetFreeSeats(ctx context.Context, tripID string) (int, error) {
	trip, err := s.store.Trips().GetByID(ctx, tripID)
	if err != nil {
		return 0, err
	}

	bookings, err := s.store.Bookings().ListByTrip(ctx, trip.ID)
	if err != nil {
		return 0, err
	}

	return FreeSeats(trip, bookings), nil
}

// SearchTripsRequest contains the search filters. Zero values are ignored.
type SearchTripsRequest struct {
	OriginID      string
	DestinationID string
	Date          time.Time
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Sort          repository.TripSort
	Limit         int
}

// TripSummary is a trip together with its current free seats.
type TripSummary struct {
	Trip      *domain.Trip
	FreeSeats int
}

// SearchTrips returns active trips departing today or later.
func (s *TripService) SearchTrips(ctx context.Context, req SearchTripsRequest) ([]TripSummary, error) {
	sort := req.Sort
	switch sort {
	case repository.TripSortDate, repository.TripSortPriceAsc, repository.TripSortPriceDesc:
	default:
		sort = repository.TripSortDate
	}

	trips, err := s.store.Trips().Search(ctx, repository.TripFilter{
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		Date:          req.Date,
		FromDate:      dateOnly(s.now()),
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		ActiveOnly:    true,
		Sort:          sort,
		Limit:         req.Limit,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]TripSummary, 0, len(trips))
	for _, trip := range trips {
		bookings, err := s.store.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, TripSummary{Trip: trip, FreeSeats: FreeSeats(trip, bookings)})
	}
	return summaries, nil
}

// TripDetails is the full view of a trip for one viewer.
type TripDetails struct {
	Trip        *domain.Trip
	Origin      *domain.City
	Destination *domain.City
	FreeSeats   int
	BookedSeats int
	CanBook     bool
	Weather     *provider.Weather // At origin; nil when unavailable
	Route       provider.Route    // Zero when unavailable
}

// GetTripDetails returns a trip with availability and optional weather and
// route data. Provider lookups run outside any transaction.
func (s *TripService) GetTripDetails(ctx context.Context, tripID, viewerID string) (*TripDetails, error) {
	trip, err := s.store.Trips().GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.store.Bookings().ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	origin, err := s.store.Cities().GetByID(ctx, trip.OriginID)
	if err != nil {
		return nil, err
	}

	destination, err := s.store.Cities().GetByID(ctx, trip.DestinationID)
	if err != nil {
		return nil, err
	}

	details := &TripDetails{
		Trip:        trip,
		Origin:      origin,
		Destination: destination,
		FreeSeats:   FreeSeats(trip, bookings),
		BookedSeats: BookedSeats(bookings),
	}
	details.CanBook = trip.IsActive && details.FreeSeats > 0 && !trip.IsDrivenBy(viewerID)

	if s.weather != nil {
		details.Weather = s.weather.Current(ctx, origin.Latitude, origin.Longitude)
	}

	details.Route = s.EstimateRoute(ctx,
		provider.Point{Lat: origin.Latitude, Lon: origin.Longitude},
		provider.Point{Lat: destination.Latitude, Lon: destination.Longitude},
	)

	return details, nil
}

// EstimateRoute returns the driving distance and duration between two points.
func (s *TripService) EstimateRoute(ctx context.Context, from, to provider.Point) provider.Route {
	if s.routes == nil {
		return provider.Route{}
	}
	return s.routes.Route(ctx, from, to)
}

// DriverTrip is a driver's trip with its confirmed booking totals.
type DriverTrip struct {
	Trip           *domain.Trip
	BookedSeats    int
	ConfirmedCount int
}

// ListDriverTrips returns every trip of a driver, latest departure first.
func (s *TripService) ListDriverTrips(ctx context.Context, driverID string) ([]DriverTrip, error) {
	if err := s.requireDriver(ctx, driverID); err != nil {
		return nil, err
	}

	trips, err := s.store.Trips().ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	result := make([]DriverTrip, 0, len(trips))
	for _, trip := range trips {
		bookings, err := s.store.Bookings().ListByTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}

		dt := DriverTrip{Trip: trip, BookedSeats: BookedSeats(bookings)}
		for _, b := range bookings {
			if b.Status == domain.BookingStatusConfirmed {
				dt.ConfirmedCount++
			}
		}
		result = append(result, dt)
	}
	return result, nil
}

// DriverStats summarizes a driver's activity.
type DriverStats struct {
	TotalTrips      int
	ActiveTrips     int
	UpcomingTrips   int // Active and departing today or later
	TotalPassengers int // Seats across confirmed bookings
	TotalEarnings   decimal.Decimal
}

// GetDriverStats computes the dashboard figures of a driver.
func (s *TripService) GetDriverStats(ctx context.Context, driverID string) (*DriverStats, error) {
	if err := s.requireDriver(ctx, driverID); err != nil {
		return nil, err
	}

	trips, err := s.store.Trips().ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	stats := &DriverStats{TotalTrips: len(trips), TotalEarnings: decimal.Zero}
	today := dateOnly(s.now())
	for _, trip := range trips {
		if !trip.IsActive {
			continue
		}
		stats.ActiveTrips++
		if !trip.DepartureDate.Before(today) {
			stats.UpcomingTrips++
		}
	}

	confirmed, err := s.store.Bookings().ListConfirmedByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	for _, b := range confirmed {
		stats.TotalPassengers += b.SeatsCount
		stats.TotalEarnings = stats.TotalEarnings.Add(b.TotalPrice)
	}
	return stats, nil
}

// Passenger is a confirmed booking with its passenger.
type Passenger struct {
	Booking *domain.Booking
	User    *domain.User
}

// PassengerList is the driver's view of who rides on a trip.
type PassengerList struct {
	Trip         *domain.Trip
	Passengers   []Passenger
	TotalLuggage int
	TotalRevenue decimal.Decimal
}

// TripPassengers lists the confirmed passengers of a trip. Only the
// trip's driver may see it.
func (s *TripService) TripPassengers(ctx context.Context, tripID, actorID string) (*PassengerList, error) {
	trip, err := s.store.Trips().GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !trip.IsDrivenBy(actorID) {
		return nil, ErrNotOwner
	}

	bookings, err := s.store.Bookings().ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	list := &PassengerList{Trip: trip, TotalRevenue: decimal.Zero}
	for _, b := range bookings {
		if b.Status != domain.BookingStatusConfirmed {
			continue
		}

		user, err := s.store.Users().GetByID(ctx, b.PassengerID)
		if err != nil {
			return nil, err
		}

		list.Passengers = append(list.Passengers, Passenger{Booking: b, User: user})
		list.TotalLuggage += b.LuggageWeight
		list.TotalRevenue = list.TotalRevenue.Add(b.TotalPrice)
	}
	return list, nil
}

func (s *TripService) validateOffer(seats, luggage int, price decimal.Decimal, departureTime string) error {
	if !s.policy.validSeatCount(seats) {
		return ErrInvalidSeatCount
	}

	if luggage < 0 {
		return ErrInvalidLuggageCapacity
	}

	if !price.IsPositive() {
		return ErrInvalidPrice
	}

	if _, err := time.Parse(domain.DepartureTimeLayout, departureTime); err != nil {
		return ErrInvalidDepartureTime
	}
	return nil
}

func (s *TripService) requireDriver(ctx context.Context, userID string) error {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.IsDriver() {
		return ErrNotADriver
	}
	return nil
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
