package trainline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CSVHeader is the first row of the rendered table.
const CSVHeader = "departure_date;arrival_date;duration;number_of_segments;price;currency;transportation_mean;bicycle_reservation"

// bicycleUnavailable is rendered when a folder carries no bicycle price.
const bicycleUnavailable = "unavailable"

// pricePrinter renders prices with a comma decimal separator.
var pricePrinter = message.NewPrinter(language.French)

// Results is the ordered outcome of a search: folders sorted ascending by
// departure time.
type Results struct {
	folders []*Folder
}

// NewResults sorts the given folders into a result set. Search calls this
// itself; it is exported for callers that assemble folders by other means.
func NewResults(folders []*Folder) *Results {
	sorted := make([]*Folder, len(folders))
	copy(sorted, folders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Departure.Before(sorted[j].Departure)
	})
	return &Results{folders: sorted}
}

// Len returns the number of folders found.
func (r *Results) Len() int {
	return len(r.folders)
}

// At returns the i-th folder in departure order.
func (r *Results) At(i int) *Folder {
	return r.folders[i]
}

// Folders returns the underlying ordered slice.
func (r *Results) Folders() []*Folder {
	return r.folders
}

// CSV renders the header row plus one semicolon-separated row per folder.
func (r *Results) CSV() string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteString("\n")
	for _, f := range r.folders {
		b.WriteString(formatRow(f))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRow(f *Folder) string {
	bicycle := bicycleUnavailable
	if f.BicyclePrice != nil {
		bicycle = formatPrice(float64(*f.BicyclePrice) / 100)
	}

	fields := []string{
		f.Departure.Format(ReadableDateFormat),
		f.Arrival.Format(ReadableDateFormat),
		formatDuration(f),
		strconv.Itoa(f.SegmentCount),
		formatPrice(f.Price),
		f.Currency,
		f.TransportationMean,
		bicycle,
	}
	return strings.Join(fields, ";")
}

// formatDuration renders the travel time as HHhMMm, e.g. "02h09m". The API
// does not guarantee departure before arrival, so the magnitude is rendered
// either way.
func formatDuration(f *Folder) string {
	d := f.Duration()
	if d < 0 {
		d = -d
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%02dh%02dm", hours, minutes)
}

func formatPrice(price float64) string {
	return pricePrinter.Sprintf("%.2f", price)
}
