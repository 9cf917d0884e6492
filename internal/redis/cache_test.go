package redis

import "testing"

func TestCoordKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lat, lon float64
		want     string
	}{
		{50.4501, 30.5234, "50.450:30.523"},
		{50.45049, 30.52341, "50.450:30.523"},
		{-33.8688, 151.2093, "-33.869:151.209"},
	}

	for _, tt := range tests {
		if got := coordKey(tt.lat, tt.lon); got != tt.want {
			t.Errorf("coordKey(%v, %v) = %q, want %q", tt.lat, tt.lon, got, tt.want)
		}
	}
}
