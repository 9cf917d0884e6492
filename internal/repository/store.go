package repository

import "context"

// Repositories groups every repository bound to the same connection or
// transaction.
type Repositories interface {
	Trips() TripRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Users() UserRepository
	DriverProfiles() DriverProfileRepository
	Cities() CityRepository
	Messages() MessageRepository
}

// Store is the entry point to persistence. Repositories returned directly
// run outside any transaction; RunInTx hands fn repositories bound to a
// single transaction that is committed when fn returns nil and rolled back
// otherwise.
type Store interface {
	Repositories
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}
