package domain

// City is a location trips depart from and arrive at.
type City struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
}
