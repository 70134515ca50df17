package trainline

import (
	"strings"
	"time"
)

// Trip is one passenger's itinerary inside a folder: an ordered sequence of
// segments, in the order the API listed them.
type Trip struct {
	ID                 string
	Departure          time.Time
	Arrival            time.Time
	DepartureStationID string
	ArrivalStationID   string
	Price              float64
	Currency           string
	PassengerID        string

	SegmentIDs []string
	Segments   []*Segment

	// TransportationMean joins the distinct segment modes with '+', in
	// first-appearance order (e.g. "coach+train").
	TransportationMean string
	// BicyclePrice is the sum of the segment bicycle surcharges, in minor
	// units. Nil as soon as one segment has no bicycle price, since the
	// whole itinerary cannot be booked with a bicycle then.
	BicyclePrice *int
}

func newTrip(raw rawTrip, segments map[string]*Segment) (*Trip, error) {
	if raw.ID == nil {
		return nil, &FieldError{Entity: "trip", Field: "id", Want: "string"}
	}
	if raw.DepartureDate == nil {
		return nil, &FieldError{Entity: "trip", Field: "departure_date", Want: "string"}
	}
	if raw.ArrivalDate == nil {
		return nil, &FieldError{Entity: "trip", Field: "arrival_date", Want: "string"}
	}
	if raw.DepartureStationID == nil {
		return nil, &FieldError{Entity: "trip", Field: "departure_station_id", Want: "string"}
	}
	if raw.ArrivalStationID == nil {
		return nil, &FieldError{Entity: "trip", Field: "arrival_station_id", Want: "string"}
	}
	if raw.Price == nil {
		return nil, &FieldError{Entity: "trip", Field: "price", Want: "number"}
	}
	if raw.Currency == nil {
		return nil, &FieldError{Entity: "trip", Field: "currency", Want: "string"}
	}
	if *raw.Price < 0 {
		return nil, &ValueError{Entity: "trip", Field: "price", Reason: "negative price"}
	}

	departure, err := time.Parse(time.RFC3339, *raw.DepartureDate)
	if err != nil {
		return nil, &FieldError{Entity: "trip", Field: "departure_date", Want: "timestamp"}
	}
	arrival, err := time.Parse(time.RFC3339, *raw.ArrivalDate)
	if err != nil {
		return nil, &FieldError{Entity: "trip", Field: "arrival_date", Want: "timestamp"}
	}

	keptIDs, kept := resolveIDs(raw.SegmentIDs, segments)

	t := &Trip{
		ID:                 *raw.ID,
		Departure:          departure,
		Arrival:            arrival,
		DepartureStationID: *raw.DepartureStationID,
		ArrivalStationID:   *raw.ArrivalStationID,
		Price:              *raw.Price,
		Currency:           *raw.Currency,
		PassengerID:        raw.PassengerID,
		SegmentIDs:         keptIDs,
		Segments:           kept,
	}
	t.TransportationMean = joinedMeans(kept)
	t.BicyclePrice = summedBicyclePrice(kept)

	return t, nil
}

func joinedMeans(segments []*Segment) string {
	var means []string
	seen := make(map[string]bool)
	for _, s := range segments {
		if !seen[s.TransportationMean] {
			seen[s.TransportationMean] = true
			means = append(means, s.TransportationMean)
		}
	}
	return strings.Join(means, "+")
}

// summedBicyclePrice adds up the per-segment surcharges, or returns nil when
// any segment lacks one.
func summedBicyclePrice(segments []*Segment) *int {
	if len(segments) == 0 {
		return nil
	}
	total := 0
	for _, s := range segments {
		if s.BicyclePrice == nil {
			return nil
		}
		total += *s.BicyclePrice
	}
	return &total
}
