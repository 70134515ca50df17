package trainline

import "encoding/json"

// searchRequest is the body POSTed to the search endpoint.
type searchRequest struct {
	Search searchQuery `json:"search"`
}

type searchQuery struct {
	DepartureDate      string         `json:"departure_date"`
	DepartureStationID string         `json:"departure_station_id"`
	ArrivalStationID   string         `json:"arrival_station_id"`
	Currency           string         `json:"currency"`
	TravelClass        string         `json:"travel_class,omitempty"`
	Passengers         []rawPassenger `json:"passengers"`
	Systems            []string       `json:"systems"`
}

type rawPassenger struct {
	ID    string    `json:"id"`
	Age   int       `json:"age"`
	Cards []rawCard `json:"cards"`
	Label string    `json:"label"`
}

type rawCard struct {
	Reference string `json:"reference"`
	Number    string `json:"number,omitempty"`
}

// searchResponse mirrors the denormalized payload of one search page: four
// parallel arrays whose entities reference each other only by id string.
// Each element stays raw so a single malformed entity can be rejected on its
// own instead of failing the whole page decode.
type searchResponse struct {
	Folders        []json.RawMessage `json:"folders"`
	Trips          []json.RawMessage `json:"trips"`
	Segments       []json.RawMessage `json:"segments"`
	ComfortClasses []json.RawMessage `json:"comfort_classes"`
}

// Raw entity shapes. Required fields are pointers so that a missing key can
// be told apart from a zero value after unmarshalling.

type rawComfortClass struct {
	ID          *string    `json:"id"`
	Name        *string    `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SegmentID   string     `json:"segment_id"`
	Options     []rawExtra `json:"options"`
}

type rawExtra struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Price int    `json:"price"` // minor currency units
}

type rawSegment struct {
	ID                 *string  `json:"id"`
	DepartureDate      *string  `json:"departure_date"`
	DepartureStationID *string  `json:"departure_station_id"`
	ArrivalDate        *string  `json:"arrival_date"`
	ArrivalStationID   *string  `json:"arrival_station_id"`
	TransportationMean *string  `json:"transportation_mean"`
	Carrier            string   `json:"carrier"`
	TrainNumber        string   `json:"train_number"`
	TravelClass        string   `json:"travel_class"`
	TripID             string   `json:"trip_id"`
	ComfortClassIDs    []string `json:"comfort_class_ids"`
}

type rawTrip struct {
	ID                 *string  `json:"id"`
	DepartureDate      *string  `json:"departure_date"`
	DepartureStationID *string  `json:"departure_station_id"`
	ArrivalDate        *string  `json:"arrival_date"`
	ArrivalStationID   *string  `json:"arrival_station_id"`
	Price              *float64 `json:"price"`
	Currency           *string  `json:"currency"`
	PassengerID        string   `json:"passenger_id"`
	SegmentIDs         []string `json:"segment_ids"`
}

type rawFolder struct {
	ID                 *string  `json:"id"`
	DepartureDate      *string  `json:"departure_date"`
	DepartureStationID *string  `json:"departure_station_id"`
	ArrivalDate        *string  `json:"arrival_date"`
	ArrivalStationID   *string  `json:"arrival_station_id"`
	Price              *float64 `json:"price"`
	Currency           *string  `json:"currency"`
	TripIDs            []string `json:"trip_ids"`
}
