package trainline

import "time"

// Segment is one indivisible movement leg between two stations.
type Segment struct {
	ID                 string
	Departure          time.Time
	Arrival            time.Time
	DepartureStationID string
	ArrivalStationID   string
	TransportationMean string
	Carrier            string
	TrainNumber        string
	TravelClass        string
	TripID             string

	// ComfortClassIDs keeps only the ids that resolved against the pool.
	ComfortClassIDs []string
	ComfortClasses  []*ComfortClass

	BicycleWithReservation    bool
	BicycleWithoutReservation bool
	// BicyclePrice is the surcharge of the first comfort class offering a
	// bicycle option; nil when no class on this leg carries one.
	BicyclePrice *int
}

// newSegment validates a raw segment and resolves its comfort class ids
// against the pool. Ids with no match are dropped from the list rather than
// failing the segment; the API routinely references classes it never ships.
func newSegment(raw rawSegment, classes map[string]*ComfortClass) (*Segment, error) {
	if raw.ID == nil {
		return nil, &FieldError{Entity: "segment", Field: "id", Want: "string"}
	}
	if raw.DepartureDate == nil {
		return nil, &FieldError{Entity: "segment", Field: "departure_date", Want: "string"}
	}
	if raw.ArrivalDate == nil {
		return nil, &FieldError{Entity: "segment", Field: "arrival_date", Want: "string"}
	}
	if raw.DepartureStationID == nil {
		return nil, &FieldError{Entity: "segment", Field: "departure_station_id", Want: "string"}
	}
	if raw.ArrivalStationID == nil {
		return nil, &FieldError{Entity: "segment", Field: "arrival_station_id", Want: "string"}
	}
	if raw.TransportationMean == nil {
		return nil, &FieldError{Entity: "segment", Field: "transportation_mean", Want: "string"}
	}

	departure, err := time.Parse(time.RFC3339, *raw.DepartureDate)
	if err != nil {
		return nil, &FieldError{Entity: "segment", Field: "departure_date", Want: "timestamp"}
	}
	arrival, err := time.Parse(time.RFC3339, *raw.ArrivalDate)
	if err != nil {
		return nil, &FieldError{Entity: "segment", Field: "arrival_date", Want: "timestamp"}
	}

	keptIDs, kept := resolveIDs(raw.ComfortClassIDs, classes)

	s := &Segment{
		ID:                 *raw.ID,
		Departure:          departure,
		Arrival:            arrival,
		DepartureStationID: *raw.DepartureStationID,
		ArrivalStationID:   *raw.ArrivalStationID,
		TransportationMean: *raw.TransportationMean,
		Carrier:            raw.Carrier,
		TrainNumber:        raw.TrainNumber,
		TravelClass:        raw.TravelClass,
		TripID:             raw.TripID,
		ComfortClassIDs:    keptIDs,
		ComfortClasses:     kept,
	}

	for _, cc := range kept {
		if cc.hasExtra(extraBicycleWithReservation) {
			s.BicycleWithReservation = true
		}
		if cc.hasExtra(extraBicycleWithoutReservation) {
			s.BicycleWithoutReservation = true
		}
		if s.BicyclePrice == nil && cc.BicyclePrice != nil {
			price := *cc.BicyclePrice
			s.BicyclePrice = &price
		}
	}

	return s, nil
}
