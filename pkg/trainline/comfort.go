package trainline

// Extra codes the bicycle filters care about.
const (
	extraBicycleWithReservation    = "bicycle_with_reservation"
	extraBicycleWithoutReservation = "bicycle_without_reservation"
)

// Extra is an optional line item sold with a comfort class, like a bicycle
// space or extra luggage. Price is in minor currency units.
type Extra struct {
	Code  string
	Title string
	Price int
}

// ComfortClass is a purchasable fare/seat option on one segment.
type ComfortClass struct {
	ID          string
	Name        string
	Title       string
	Description string
	SegmentID   string
	Extras      []Extra

	// BicyclePrice is the surcharge of whichever extra covers a bicycle,
	// with or without reservation. Nil when the class has no bicycle option.
	BicyclePrice *int
}

func newComfortClass(raw rawComfortClass) (*ComfortClass, error) {
	if raw.ID == nil {
		return nil, &FieldError{Entity: "comfort_class", Field: "id", Want: "string"}
	}
	if raw.Name == nil {
		return nil, &FieldError{Entity: "comfort_class", Field: "name", Want: "string"}
	}

	cc := &ComfortClass{
		ID:          *raw.ID,
		Name:        *raw.Name,
		Title:       raw.Title,
		Description: raw.Description,
		SegmentID:   raw.SegmentID,
		Extras:      make([]Extra, 0, len(raw.Options)),
	}

	for _, opt := range raw.Options {
		extra := Extra{Code: opt.Code, Title: opt.Title, Price: opt.Price}
		cc.Extras = append(cc.Extras, extra)

		if cc.BicyclePrice == nil &&
			(extra.Code == extraBicycleWithReservation || extra.Code == extraBicycleWithoutReservation) {
			price := extra.Price
			cc.BicyclePrice = &price
		}
	}

	return cc, nil
}

// hasExtra reports whether any extra of this class carries the given code.
func (c *ComfortClass) hasExtra(code string) bool {
	for _, extra := range c.Extras {
		if extra.Code == code {
			return true
		}
	}
	return false
}
