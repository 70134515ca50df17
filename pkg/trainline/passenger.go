package trainline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BirthdateFormat is the layout passenger birthdates are written in.
const BirthdateFormat = "02/01/2006"

// Discount card references recognized by the search API.
const (
	CardEnfantPlus = "SNCF.CarteEnfantPlus"
	CardJeune      = "SNCF.Carte1225"
	CardWeekEnd    = "SNCF.CarteEscapades"
	CardSenior     = "SNCF.CarteSenior"
)

// AvailableCards lists every discount card reference a Passenger may carry.
var AvailableCards = []string{
	CardEnfantPlus,
	CardJeune,
	CardWeekEnd,
	CardSenior,
}

// Card is a discount card reference, optionally with its serial number for
// cards that are bound to a subscription.
type Card struct {
	Reference string
	Number    string
}

// Passenger is one traveller on the search. The ID is generated at
// construction and doubles as the display label sent to the API.
type Passenger struct {
	ID        string
	Birthdate time.Time
	Age       int
	Cards     []Card
}

// NewPassenger builds a passenger from a DD/MM/YYYY birthdate and an optional
// card list. Unknown card references fail construction.
func NewPassenger(birthdate string, cards []Card) (*Passenger, error) {
	bd, err := time.Parse(BirthdateFormat, birthdate)
	if err != nil {
		return nil, fmt.Errorf("invalid birthdate %q, expected DD/MM/YYYY: %w", birthdate, err)
	}

	for _, card := range cards {
		if !isKnownCard(card.Reference) {
			return nil, fmt.Errorf("unknown discount card %q", card.Reference)
		}
	}

	return &Passenger{
		ID:        uuid.NewString(),
		Birthdate: bd,
		Age:       ageAt(bd, time.Now()),
		Cards:     cards,
	}, nil
}

func isKnownCard(reference string) bool {
	for _, known := range AvailableCards {
		if known == reference {
			return true
		}
	}
	return false
}

// ageAt returns the whole years elapsed between birthdate and now.
func ageAt(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	// Birthday not reached yet this year
	if now.YearDay() < birthdate.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// defaultPassengers builds the fallback traveller list: a single adult with
// no cards. A fresh instance is constructed on every call so searches never
// share passenger state.
func defaultPassengers() []*Passenger {
	p, _ := NewPassenger("01/01/1980", nil)
	return []*Passenger{p}
}

func (p *Passenger) toRaw() rawPassenger {
	cards := make([]rawCard, 0, len(p.Cards))
	for _, card := range p.Cards {
		cards = append(cards, rawCard{Reference: card.Reference, Number: card.Number})
	}
	return rawPassenger{
		ID:    p.ID,
		Age:   p.Age,
		Cards: cards,
		Label: p.ID,
	}
}
