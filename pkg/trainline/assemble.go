package trainline

import (
	"encoding/json"
	"fmt"
)

// resolveIDs maps an id list against a pool, partitioning into the retained
// ids and their resolved values. Dangling ids are simply left out.
func resolveIDs[T any](ids []string, pool map[string]T) ([]string, []T) {
	kept := make([]string, 0, len(ids))
	values := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := pool[id]; ok {
			kept = append(kept, id)
			values = append(values, v)
		}
	}
	return kept, values
}

// assemble turns the four flat arrays of one response page into materialized
// folders, bottom-up: comfort classes, then segments, trips and folders, each
// stage resolving child references against the one before it.
//
// Error policy is asymmetric on purpose. A malformed comfort class or segment
// is dropped so one bad entity cannot void a whole page, but a malformed trip
// or folder means the response shape itself changed and is surfaced.
func assemble(resp *searchResponse) ([]*Folder, error) {
	classes := make(map[string]*ComfortClass, len(resp.ComfortClasses))
	for _, msg := range resp.ComfortClasses {
		var raw rawComfortClass
		if err := json.Unmarshal(msg, &raw); err != nil {
			continue
		}
		cc, err := newComfortClass(raw)
		if err != nil {
			continue
		}
		classes[cc.ID] = cc
	}

	segments := make(map[string]*Segment, len(resp.Segments))
	for _, msg := range resp.Segments {
		var raw rawSegment
		if err := json.Unmarshal(msg, &raw); err != nil {
			continue
		}
		s, err := newSegment(raw, classes)
		if err != nil {
			continue
		}
		segments[s.ID] = s
	}

	trips := make(map[string]*Trip, len(resp.Trips))
	for _, msg := range resp.Trips {
		var raw rawTrip
		if err := json.Unmarshal(msg, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode trip: %w", err)
		}
		t, err := newTrip(raw, segments)
		if err != nil {
			return nil, err
		}
		trips[t.ID] = t
	}

	folders := make([]*Folder, 0, len(resp.Folders))
	for _, msg := range resp.Folders {
		var raw rawFolder
		if err := json.Unmarshal(msg, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode folder: %w", err)
		}
		f, err := newFolder(raw, trips)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}

	return folders, nil
}
