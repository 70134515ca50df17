package trainline

import (
	"fmt"
	"time"
)

const (
	// ReadableDateFormat is the layout of user-facing dates, both on input
	// (from/to) and in the rendered table.
	ReadableDateFormat = "02/01/2006 15:04"
	queryDateFormat    = "2006-01-02T15:04:05-0700"
	searchTimezone     = "Europe/Paris"

	// DefaultCurrency applies when the caller does not pick one.
	DefaultCurrency = "EUR"

	// Travel classes the API accepts on the query.
	TravelClassEconomy = "economy"
	TravelClassFirst   = "first"

	// stallJump is how far the window is forced forward when a page fails to
	// advance it, e.g. across an overnight gap with no departures.
	stallJump = 4 * time.Hour
	// maxPages caps the number of window queries for one search so a remote
	// that keeps answering without ever reaching toDate cannot loop forever.
	maxPages = 120
)

// StationFinder resolves a human station name to the opaque station id the
// API expects.
type StationFinder interface {
	Find(name string) (string, error)
}

// SearchOptions describes one search: the route, the departure window, who
// travels, and which filters to apply on top of the raw results.
type SearchOptions struct {
	Departure string // station name, resolved through the finder
	Arrival   string
	FromDate  string // DD/MM/YYYY HH:MM, interpreted in Europe/Paris
	ToDate    string

	// Passengers defaults to a single adult when nil.
	Passengers []*Passenger
	Currency   string
	// TravelClass restricts the query to "economy" or "first"; empty means
	// the API picks across all classes.
	TravelClass string
	Filters     Filters
}

// Trainline runs windowed searches against the API with an explicitly owned
// station table.
type Trainline struct {
	Client   *Client
	Stations StationFinder
}

// New wires a search facade from a transport client and a station lookup.
func New(client *Client, stations StationFinder) *Trainline {
	return &Trainline{Client: client, Stations: stations}
}

// Search covers the requested departure window with as many page queries as
// needed, then deduplicates, filters and sorts the accumulated folders.
// Any unrecovered error aborts the whole search; partial pages are discarded.
func (t *Trainline) Search(opts SearchOptions) (*Results, error) {
	loc, err := time.LoadLocation(searchTimezone)
	if err != nil {
		return nil, fmt.Errorf("could not load search timezone: %w", err)
	}

	fromDate, err := time.ParseInLocation(ReadableDateFormat, opts.FromDate, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q, expected DD/MM/YYYY HH:MM: %w", opts.FromDate, err)
	}
	toDate, err := time.ParseInLocation(ReadableDateFormat, opts.ToDate, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q, expected DD/MM/YYYY HH:MM: %w", opts.ToDate, err)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("to date %s is before from date %s", opts.ToDate, opts.FromDate)
	}

	departureID, err := t.Stations.Find(opts.Departure)
	if err != nil {
		return nil, err
	}
	arrivalID, err := t.Stations.Find(opts.Arrival)
	if err != nil {
		return nil, err
	}

	passengers := opts.Passengers
	if passengers == nil {
		passengers = defaultPassengers()
	}
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	if c := opts.TravelClass; c != "" && c != TravelClassEconomy && c != TravelClassFirst {
		return nil, fmt.Errorf("unknown travel class %q, expected %q or %q",
			c, TravelClassEconomy, TravelClassFirst)
	}

	folders, err := t.collectPages(departureID, arrivalID, currency, opts.TravelClass, fromDate, toDate, passengers)
	if err != nil {
		return nil, err
	}

	filters := opts.Filters
	filters.fromDate = fromDate
	filters.toDate = toDate

	kept := applyFilters(dedupeFolders(folders), filters)
	return NewResults(kept), nil
}

// collectPages is the pagination driver. The API only answers with a bounded
// page of departures after searchDate, so the window is advanced to the last
// departure of each page until it passes toDate. When a page cannot advance
// the window (overnight gap, empty page) the window jumps forward by a fixed
// four hours instead, which keeps the loop terminating.
func (t *Trainline) collectPages(departureID, arrivalID, currency, travelClass string, fromDate, toDate time.Time, passengers []*Passenger) ([]*Folder, error) {
	searchDate := fromDate
	var accumulated []*Folder

	for page := 1; ; page++ {
		if page > maxPages {
			return nil, fmt.Errorf("window %s - %s not covered after %d page queries",
				fromDate.Format(ReadableDateFormat), toDate.Format(ReadableDateFormat), maxPages)
		}

		lastSearchDate := searchDate

		resp, err := t.Client.search(buildQuery(departureID, arrivalID, currency, travelClass, searchDate, passengers))
		if err != nil {
			return nil, err
		}
		folders, err := assemble(resp)
		if err != nil {
			return nil, err
		}

		t.Client.Logger.Debug().
			Int("page", page).
			Int("folders", len(folders)).
			Time("search_date", searchDate).
			Msg("collected search page")

		accumulated = append(accumulated, folders...)

		if len(folders) > 0 {
			lastDeparture := folders[len(folders)-1].Departure
			if lastDeparture.After(toDate) {
				break
			}
			searchDate = lastDeparture
		}

		// Stalled window: force the jump
		if !searchDate.After(lastSearchDate) {
			searchDate = lastSearchDate.Add(stallJump)
		}
		if searchDate.After(toDate) {
			break
		}
	}

	return accumulated, nil
}
