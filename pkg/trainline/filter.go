package trainline

import "time"

// Filters narrows a deduplicated folder list. Zero values mean "no bound":
// a MaxPrice of 0 is unbounded, a MinPrice of 0 keeps everything.
//
// A folder is kept only when every trip inside it, and every segment inside
// every trip, satisfies every active condition. One segment on the wrong
// mode or without the requested bicycle option excludes the whole folder.
type Filters struct {
	MinPrice float64
	MaxPrice float64

	// TransportationMean must match every segment exactly (e.g. "train").
	TransportationMean string

	MinSegments int
	MaxSegments int

	BicycleWithReservationOnly      bool
	BicycleWithoutReservationOnly   bool
	BicycleWithOrWithoutReservation bool

	// Re-applied against each folder's own departure, independent of the
	// pagination bookkeeping; pages overshoot the window on both ends.
	fromDate time.Time
	toDate   time.Time
}

// dedupeBy reduces items to the first occurrence of each key. Order of the
// survivors follows first appearance.
func dedupeBy[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	var unique []T
	for _, item := range items {
		k := key(item)
		if !seen[k] {
			seen[k] = true
			unique = append(unique, item)
		}
	}
	return unique
}

// dedupeFolders collapses folders that are structurally the same itinerary,
// which is what duplicate results from overlapping window queries look like.
func dedupeFolders(folders []*Folder) []*Folder {
	return dedupeBy(folders, func(f *Folder) string { return f.dedupeKey() })
}

// applyFilters returns the folders satisfying f, in unspecified order.
func applyFilters(folders []*Folder, f Filters) []*Folder {
	var kept []*Folder
	for _, folder := range folders {
		if f.keep(folder) {
			kept = append(kept, folder)
		}
	}
	return kept
}

func (f Filters) keep(folder *Folder) bool {
	if folder.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && folder.Price > f.MaxPrice {
		return false
	}
	if !f.fromDate.IsZero() && folder.Departure.Before(f.fromDate) {
		return false
	}
	if !f.toDate.IsZero() && folder.Departure.After(f.toDate) {
		return false
	}

	for _, trip := range folder.Trips {
		if f.MinSegments > 0 && len(trip.Segments) < f.MinSegments {
			return false
		}
		if f.MaxSegments > 0 && len(trip.Segments) > f.MaxSegments {
			return false
		}
		for _, segment := range trip.Segments {
			if !f.keepSegment(segment) {
				return false
			}
		}
	}
	return true
}

func (f Filters) keepSegment(s *Segment) bool {
	if f.TransportationMean != "" && s.TransportationMean != f.TransportationMean {
		return false
	}
	if f.BicycleWithReservationOnly && !s.BicycleWithReservation {
		return false
	}
	if f.BicycleWithoutReservationOnly && !s.BicycleWithoutReservation {
		return false
	}
	if f.BicycleWithOrWithoutReservation &&
		!s.BicycleWithReservation && !s.BicycleWithoutReservation {
		return false
	}
	return true
}
