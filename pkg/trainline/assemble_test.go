package trainline

import (
	"encoding/json"
	"testing"
)

func decodePage(t *testing.T, payload string) *searchResponse {
	t.Helper()
	var resp searchResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("fixture did not decode: %v", err)
	}
	return &resp
}

func TestAssemble_FullGraph(t *testing.T) {
	resp := decodePage(t, `{
		"comfort_classes": [
			{"id": "cc1", "name": "pao.economy", "title": "Eco", "segment_id": "s1",
			 "options": [{"code": "bicycle_with_reservation", "title": "Bicycle", "price": 1000}]},
			{"id": "cc2", "name": "pao.first", "title": "First", "segment_id": "s1"}
		],
		"segments": [
			{"id": "s1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "transportation_mean": "train",
			 "carrier": "sncf", "train_number": "8501", "travel_class": "economy", "trip_id": "t1",
			 "comfort_class_ids": ["cc1", "cc2"]}
		],
		"trips": [
			{"id": "t1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "passenger_id": "p1", "segment_ids": ["s1"]}
		],
		"folders": [
			{"id": "f1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "trip_ids": ["t1"]}
		]
	}`)

	folders, err := assemble(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(folders))
	}

	folder := folders[0]
	if len(folder.Trips) != 1 {
		t.Fatalf("expected 1 trip in the folder, got %d", len(folder.Trips))
	}
	trip := folder.Trips[0]
	if len(trip.Segments) != 1 {
		t.Fatalf("expected 1 segment in the trip, got %d", len(trip.Segments))
	}
	segment := trip.Segments[0]
	if len(segment.ComfortClasses) != 2 {
		t.Fatalf("expected 2 comfort classes on the segment, got %d", len(segment.ComfortClasses))
	}

	if folder.TransportationMean != "train" {
		t.Errorf("folder should take its mode from the first trip, got %s", folder.TransportationMean)
	}
	if folder.SegmentCount != 1 {
		t.Errorf("folder should take its segment count from the first trip, got %d", folder.SegmentCount)
	}
	if folder.BicyclePrice == nil || *folder.BicyclePrice != 1000 {
		t.Errorf("expected folder bicycle price 1000, got %v", folder.BicyclePrice)
	}
	if !segment.BicycleWithReservation || segment.BicycleWithoutReservation {
		t.Errorf("bicycle flags derived wrong: with=%v without=%v",
			segment.BicycleWithReservation, segment.BicycleWithoutReservation)
	}
}

func TestAssemble_MissingArraysDefaultToEmpty(t *testing.T) {
	folders, err := assemble(decodePage(t, `{"folders": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("expected no folders, got %d", len(folders))
	}
}

func TestAssemble_DanglingTripReferenceIsDropped(t *testing.T) {
	resp := decodePage(t, `{
		"trips": [
			{"id": "t1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "segment_ids": []}
		],
		"folders": [
			{"id": "f1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "trip_ids": ["t1", "t-missing"]}
		]
	}`)

	folders, err := assemble(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	folder := folders[0]
	if len(folder.Trips) != 1 {
		t.Errorf("expected the dangling trip to be dropped, got %d trips", len(folder.Trips))
	}
	if len(folder.TripIDs) != 1 || folder.TripIDs[0] != "t1" {
		t.Errorf("expected trip_ids to lose the dangling id, got %v", folder.TripIDs)
	}
}

func TestAssemble_MalformedSegmentIsDroppedSilently(t *testing.T) {
	resp := decodePage(t, `{
		"segments": [
			{"id": 12345, "departure_date": "2018-10-15T08:49:00+02:00"},
			{"id": "s-no-dates"},
			{"id": "s1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "transportation_mean": "train"}
		],
		"trips": [
			{"id": "t1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "segment_ids": ["s1", "s-no-dates"]}
		],
		"folders": [
			{"id": "f1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "trip_ids": ["t1"]}
		]
	}`)

	folders, err := assemble(resp)
	if err != nil {
		t.Fatalf("a malformed segment must not void the page: %v", err)
	}

	trip := folders[0].Trips[0]
	if len(trip.Segments) != 1 || trip.Segments[0].ID != "s1" {
		t.Errorf("expected only the valid segment to survive, got %d", len(trip.Segments))
	}
}

func TestAssemble_DanglingComfortClassIsDropped(t *testing.T) {
	resp := decodePage(t, `{
		"comfort_classes": [{"id": "cc1", "name": "pao.economy"}],
		"segments": [
			{"id": "s1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "transportation_mean": "train",
			 "comfort_class_ids": ["cc1", "cc-missing"]}
		],
		"trips": [
			{"id": "t1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "segment_ids": ["s1"]}
		],
		"folders": [
			{"id": "f1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR",
			 "trip_ids": ["t1"]}
		]
	}`)

	folders, err := assemble(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	segment := folders[0].Trips[0].Segments[0]
	if len(segment.ComfortClassIDs) != 1 || segment.ComfortClassIDs[0] != "cc1" {
		t.Errorf("expected comfort_class_ids to lose the dangling id, got %v", segment.ComfortClassIDs)
	}
}

func TestAssemble_MalformedTripPropagates(t *testing.T) {
	resp := decodePage(t, `{
		"trips": [
			{"id": "t1", "departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": "not_a_float", "currency": "EUR"}
		],
		"folders": []
	}`)

	if _, err := assemble(resp); err == nil {
		t.Fatalf("a malformed trip must fail the page, got nil error")
	}
}

func TestAssemble_MalformedFolderPropagates(t *testing.T) {
	resp := decodePage(t, `{
		"folders": [
			{"departure_date": "2018-10-15T08:49:00+02:00", "arrival_date": "2018-10-15T10:58:00+02:00",
			 "departure_station_id": "5311", "arrival_station_id": "828", "price": 66.0, "currency": "EUR"}
		]
	}`)

	_, err := assemble(resp)
	if err == nil {
		t.Fatalf("a folder without an id must fail the page, got nil error")
	}
}
