package stations

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// Station is one row of the reference table: an opaque id and the lowercased
// display name it is looked up by.
type Station struct {
	ID   string `csv:"id"`
	Name string `csv:"name"`
}

// Table is an explicitly owned station lookup, loaded once and passed into
// the search entry point. No process-wide cache hides behind it.
type Table struct {
	stations []Station
	byName   map[string]string
}

// NewTable indexes the given stations by lowercased name.
func NewTable(records []Station) *Table {
	t := &Table{
		stations: records,
		byName:   make(map[string]string, len(records)),
	}
	for _, s := range records {
		t.byName[strings.ToLower(s.Name)] = s.ID
	}
	return t
}

// Load reads a semicolon-separated station table (id;name with header).
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'

	var records []Station
	if err := gocsv.UnmarshalCSV(reader, &records); err != nil {
		return nil, fmt.Errorf("failed to parse station table: %w", err)
	}
	return NewTable(records), nil
}

// Find resolves a station name (case-insensitive) to its id. Unknown names
// are a caller input error and fail immediately.
func (t *Table) Find(name string) (string, error) {
	id, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown station %q", name)
	}
	return id, nil
}

// Search returns every station whose name contains the query, for the
// stations command listing.
func (t *Table) Search(query string) []Station {
	query = strings.ToLower(strings.TrimSpace(query))
	var matches []Station
	for _, s := range t.stations {
		if strings.Contains(strings.ToLower(s.Name), query) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Len returns the number of stations in the table.
func (t *Table) Len() int {
	return len(t.stations)
}
