package app

import (
	"rideshare/internal/domain"
	"rideshare/internal/repository/memory"
)

// DefaultCities mirrors migrations/002_seed_cities.sql.
func DefaultCities() []domain.City {
	return []domain.City{
		{ID: "kyiv", Name: "Kyiv", Latitude: 50.4501, Longitude: 30.5234},
		{ID: "lviv", Name: "Lviv", Latitude: 49.8397, Longitude: 24.0297},
		{ID: "odesa", Name: "Odesa", Latitude: 46.4825, Longitude: 30.7233},
		{ID: "kharkiv", Name: "Kharkiv", Latitude: 49.9935, Longitude: 36.2304},
		{ID: "dnipro", Name: "Dnipro", Latitude: 48.4647, Longitude: 35.0462},
		{ID: "vinnytsia", Name: "Vinnytsia", Latitude: 49.2331, Longitude: 28.4682},
		{ID: "zhytomyr", Name: "Zhytomyr", Latitude: 50.2547, Longitude: 28.6587},
		{ID: "poltava", Name: "Poltava", Latitude: 49.5883, Longitude: 34.5514},
		{ID: "chernihiv", Name: "Chernihiv", Latitude: 51.4982, Longitude: 31.2893},
		{ID: "ivano-frankivsk", Name: "Ivano-Frankivsk", Latitude: 48.9226, Longitude: 24.7111},
		{ID: "ternopil", Name: "Ternopil", Latitude: 49.5535, Longitude: 25.5948},
		{ID: "uzhhorod", Name: "Uzhhorod", Latitude: 48.6208, Longitude: 22.2879},
	}
}

// NewMemoryStore returns an in-memory store seeded with DefaultCities.
func NewMemoryStore() *memory.Store {
	store := memory.NewStore()
	for _, city := range DefaultCities() {
		store.AddCity(city)
	}
	return store
}
