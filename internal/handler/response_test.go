package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"rideshare/internal/plate"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidQuantity, http.StatusBadRequest},
		{service.ErrDepartureInPast, http.StatusBadRequest},
		{fmt.Errorf("%w: atlantis", service.ErrUnknownCity), http.StatusBadRequest},
		{plate.ErrInvalidPlateFormat, http.StatusBadRequest},
		{service.ErrSelfBookingForbidden, http.StatusForbidden},
		{service.ErrNotOwner, http.StatusForbidden},
		{service.ErrNotParticipant, http.StatusForbidden},
		{service.ErrInsufficientCapacity, http.StatusConflict},
		{service.ErrTripInactive, http.StatusConflict},
		{service.ErrPhoneTaken, http.StatusConflict},
		{repository.ErrConflict, http.StatusConflict},
		{fmt.Errorf("load trip: %w", repository.ErrNotFound), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := mapErrorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
