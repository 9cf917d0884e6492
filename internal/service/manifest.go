package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"rideshare/internal/plate"
)

// Manifest renders the confirmed passengers of a trip as an A4 PDF.
// Returns the document and a suggested file name.
func (s *TripService) Manifest(ctx context.Context, tripID, actorID string) ([]byte, string, error) {
	list, err := s.TripPassengers(ctx, tripID, actorID)
	if err != nil {
		return nil, "", err
	}

	origin, err := s.store.Cities().GetByID(ctx, list.Trip.OriginID)
	if err != nil {
		return nil, "", err
	}

	destination, err := s.store.Cities().GetByID(ctx, list.Trip.DestinationID)
	if err != nil {
		return nil, "", err
	}

	vehicle := "-"
	if profile, err := s.store.DriverProfiles().GetByUserID(ctx, actorID); err == nil {
		vehicle = fmt.Sprintf("%s %s, %s", profile.CarBrand, profile.CarModel, plate.FormatForDisplay(profile.LicensePlate))
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Passenger manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PASSENGER MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Route     : %s -> %s", origin.Name, destination.Name),
		fmt.Sprintf("Departure : %s %s", list.Trip.DepartureDate.Format("02.01.2006"), list.Trip.DepartureTime),
		fmt.Sprintf("Vehicle   : %s", vehicle),
		fmt.Sprintf("Seats     : %d", list.Trip.AvailableSeats),
	}
	for _, line := range header {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{10, 60, 40, 20, 25, 30}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"#", "Passenger", "Phone", "Seats", "Luggage", "Total"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range list.Passengers {
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.User.Name,
			p.User.Phone,
			fmt.Sprintf("%d", p.Booking.SeatsCount),
			fmt.Sprintf("%d kg", p.Booking.LuggageWeight),
			p.Booking.TotalPrice.StringFixed(2),
		}
		for j, cell := range row {
			pdf.CellFormat(widths[j], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Total luggage: %d kg", list.TotalLuggage))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Total revenue: "+list.TotalRevenue.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render manifest: %w", err)
	}

	filename := fmt.Sprintf("manifest_%s_%s.pdf", list.Trip.DepartureDate.Format("20060102"), list.Trip.ID)
	return buf.Bytes(), filename, nil
}
