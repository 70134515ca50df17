package tui

import (
	"fmt"

	"railsearch/pkg/config"

	"github.com/charmbracelet/huh"
)

// RunConfigTUI lets the user edit the persisted defaults interactively.
func RunConfigTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	currency := cfg.DefaultCurrency
	travelClass := cfg.DefaultTravelClass
	home := cfg.HomeStation
	birthdate := cfg.DefaultBirthdate
	accent := cfg.AccentColor

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default currency").
				Options(
					huh.NewOption("Euro (EUR)", "EUR"),
					huh.NewOption("Swiss Franc (CHF)", "CHF"),
					huh.NewOption("Pound Sterling (GBP)", "GBP"),
				).
				Value(&currency),

			huh.NewSelect[string]().
				Title("Default travel class").
				Options(
					huh.NewOption("Any", ""),
					huh.NewOption("Economy", "economy"),
					huh.NewOption("First", "first"),
				).
				Value(&travelClass),

			huh.NewInput().
				Title("Home station (prefills searches)").
				Placeholder("e.g. toulouse matabiau").
				Value(&home),

			huh.NewInput().
				Title("Default passenger birthdate (DD/MM/YYYY)").
				Value(&birthdate),

			huh.NewInput().
				Title("Accent color (ANSI 256 code)").
				Placeholder("36").
				Value(&accent),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultCurrency = currency
	cfg.DefaultTravelClass = travelClass
	cfg.HomeStation = home
	cfg.DefaultBirthdate = birthdate
	cfg.AccentColor = accent

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("✅ Settings saved."))
	return nil
}
