package trainline

import (
	"fmt"
	"time"
)

// Folder is a priced itinerary bundle covering all passengers for one
// departure: one trip per passenger, same route and timing.
type Folder struct {
	ID                 string
	Departure          time.Time
	Arrival            time.Time
	DepartureStationID string
	ArrivalStationID   string
	Price              float64
	Currency           string

	TripIDs []string
	Trips   []*Trip

	// Taken from the first trip; all trips of a folder share route and mode.
	TransportationMean string
	SegmentCount       int
	// BicyclePrice mirrors the first trip's surcharge; nil renders as
	// "unavailable".
	BicyclePrice *int
}

func newFolder(raw rawFolder, trips map[string]*Trip) (*Folder, error) {
	if raw.ID == nil {
		return nil, &FieldError{Entity: "folder", Field: "id", Want: "string"}
	}
	if raw.DepartureDate == nil {
		return nil, &FieldError{Entity: "folder", Field: "departure_date", Want: "string"}
	}
	if raw.ArrivalDate == nil {
		return nil, &FieldError{Entity: "folder", Field: "arrival_date", Want: "string"}
	}
	if raw.DepartureStationID == nil {
		return nil, &FieldError{Entity: "folder", Field: "departure_station_id", Want: "string"}
	}
	if raw.ArrivalStationID == nil {
		return nil, &FieldError{Entity: "folder", Field: "arrival_station_id", Want: "string"}
	}
	if raw.Price == nil {
		return nil, &FieldError{Entity: "folder", Field: "price", Want: "number"}
	}
	if raw.Currency == nil {
		return nil, &FieldError{Entity: "folder", Field: "currency", Want: "string"}
	}
	if *raw.Price < 0 {
		return nil, &ValueError{Entity: "folder", Field: "price", Reason: "negative price"}
	}

	departure, err := time.Parse(time.RFC3339, *raw.DepartureDate)
	if err != nil {
		return nil, &FieldError{Entity: "folder", Field: "departure_date", Want: "timestamp"}
	}
	arrival, err := time.Parse(time.RFC3339, *raw.ArrivalDate)
	if err != nil {
		return nil, &FieldError{Entity: "folder", Field: "arrival_date", Want: "timestamp"}
	}

	keptIDs, kept := resolveIDs(raw.TripIDs, trips)

	f := &Folder{
		ID:                 *raw.ID,
		Departure:          departure,
		Arrival:            arrival,
		DepartureStationID: *raw.DepartureStationID,
		ArrivalStationID:   *raw.ArrivalStationID,
		Price:              *raw.Price,
		Currency:           *raw.Currency,
		TripIDs:            keptIDs,
		Trips:              kept,
	}
	if len(kept) > 0 {
		first := kept[0]
		f.TransportationMean = first.TransportationMean
		f.SegmentCount = len(first.Segments)
		if first.BicyclePrice != nil {
			price := *first.BicyclePrice
			f.BicyclePrice = &price
		}
	}

	return f, nil
}

// Duration is the folder's total travel time.
func (f *Folder) Duration() time.Duration {
	return f.Arrival.Sub(f.Departure)
}

// dedupeKey identifies a folder structurally. Overlapping page queries return
// the same itinerary under fresh upstream ids, so identity has to come from
// the timing, price and trip count instead.
func (f *Folder) dedupeKey() string {
	return fmt.Sprintf("%d|%d|%.2f|%s|%d",
		f.Departure.Unix(), f.Arrival.Unix(), f.Price, f.Currency, len(f.Trips))
}
