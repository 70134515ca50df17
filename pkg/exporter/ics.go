package exporter

import (
	"fmt"
	"io"
	"time"

	"railsearch/pkg/trainline"

	ics "github.com/arran4/golang-ical"
)

// GenerateICS creates an ICS calendar from the found itineraries and writes
// it to the provided writer. Each folder becomes one event spanning its
// departure to arrival time.
func GenerateICS(route string, results *trainline.Results, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for i := 0; i < results.Len(); i++ {
		folder := results.At(i)

		event := cal.AddEvent(fmt.Sprintf("%s-%d", folder.Departure.Format("20060102T150405Z"), i))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetModifiedAt(time.Now())
		event.SetStartAt(folder.Departure)
		event.SetEndAt(folder.Arrival)
		event.SetSummary(fmt.Sprintf("🚆 %s (%.2f %s)", route, folder.Price, folder.Currency))

		description := fmt.Sprintf("Transportation: %s\nSegments: %d\nPrice: %.2f %s",
			folder.TransportationMean, folder.SegmentCount, folder.Price, folder.Currency)
		event.SetDescription(description)
	}

	return cal.SerializeTo(w)
}
