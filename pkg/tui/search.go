package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"railsearch/pkg/config"
	"railsearch/pkg/stations"
	"railsearch/pkg/trainline"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunSearchTUI walks the user through a full itinerary search.
func RunSearchTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	defaultFrom := time.Now().Add(time.Hour).Format(trainline.ReadableDateFormat)
	defaultTo := time.Now().Add(13 * time.Hour).Format(trainline.ReadableDateFormat)

	departure := cfg.HomeStation
	var arrival, fromDate, toDate, maxPrice, bicycle string
	fromDate = defaultFrom
	toDate = defaultTo

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Departure station").
				Placeholder("e.g. toulouse matabiau").
				Value(&departure),

			huh.NewInput().
				Title("Arrival station").
				Placeholder("e.g. bordeaux st-jean").
				Value(&arrival),

			huh.NewInput().
				Title("Earliest departure (DD/MM/YYYY HH:MM)").
				Value(&fromDate),

			huh.NewInput().
				Title("Latest departure (DD/MM/YYYY HH:MM)").
				Value(&toDate),

			huh.NewInput().
				Title("Max price (empty for no limit)").
				Value(&maxPrice),

			huh.NewSelect[string]().
				Title("Bicycle").
				Options(
					huh.NewOption("No bicycle", "none"),
					huh.NewOption("With reservation only", "with"),
					huh.NewOption("Without reservation only", "without"),
					huh.NewOption("With or without reservation", "any"),
				).
				Value(&bicycle),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	filters := trainline.Filters{
		BicycleWithReservationOnly:      bicycle == "with",
		BicycleWithoutReservationOnly:   bicycle == "without",
		BicycleWithOrWithoutReservation: bicycle == "any",
	}
	if maxPrice != "" {
		price, err := strconv.ParseFloat(strings.ReplaceAll(maxPrice, ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid max price %q: %w", maxPrice, err)
		}
		filters.MaxPrice = price
	}

	var table *stations.Table
	var loadErr error
	_ = spinner.New().
		Title("Loading station table...").
		Action(func() {
			table, loadErr = stations.Open(nil)
		}).
		Run()
	if loadErr != nil {
		return fmt.Errorf("could not load station table: %w", loadErr)
	}

	t := trainline.New(trainline.NewClient(), table)

	var results *trainline.Results
	var searchErr error
	_ = spinner.New().
		Title(fmt.Sprintf("Searching %s -> %s...", departure, arrival)).
		Action(func() {
			results, searchErr = t.Search(trainline.SearchOptions{
				Departure: departure,
				Arrival:   arrival,
				FromDate:  fromDate,
				ToDate:    toDate,
				Currency:  cfg.Currency(trainline.DefaultCurrency),
				Filters:   filters,
			})
		}).
		Run()
	if searchErr != nil {
		return fmt.Errorf("search failed: %w", searchErr)
	}

	if results.Len() == 0 {
		fmt.Println(errorStyle.Render("No itineraries matched your search."))
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🚆 %d itineraries: %s -> %s ---\n", results.Len(), departure, arrival)))

	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	for _, folder := range results.Folders() {
		fmt.Printf("  • [%s] %.2f %s, %d segment(s), %s\n",
			timeStyle.Render(folder.Departure.Format("02/01 15:04")),
			folder.Price,
			folder.Currency,
			folder.SegmentCount,
			folder.TransportationMean,
		)
	}
	fmt.Println()

	return nil
}

// RunStationsTUI prompts for a name fragment and lists matching stations.
func RunStationsTUI() error {
	var query string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Station name to look up").
				Placeholder("e.g. toulouse").
				Value(&query),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	var table *stations.Table
	var loadErr error
	_ = spinner.New().
		Title("Loading station table...").
		Action(func() {
			table, loadErr = stations.Open(nil)
		}).
		Run()
	if loadErr != nil {
		return fmt.Errorf("could not load station table: %w", loadErr)
	}

	matches := table.Search(query)
	if len(matches) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No stations matching %q.", query)))
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 📍 %d stations matching %q ---\n", len(matches), query)))
	for _, s := range matches {
		fmt.Printf("  • %s (id: %s)\n", s.Name, s.ID)
	}
	fmt.Println()

	return nil
}
