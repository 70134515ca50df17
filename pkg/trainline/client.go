package trainline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

var baseURL = "https://www.trainline.eu/api/v5_1"

const (
	defaultRetryAttempts = 3
	defaultRetryInterval = 10 * time.Second
)

// systems is the fixed set of operator codes every search query applies to.
var systems = []string{
	"sncf", "db", "idtgv", "ouigo", "trenitalia", "ntv", "hkx", "renfe",
	"cff", "benerail", "ocebo", "westbahn", "leoexpress", "locomore",
	"busbud", "flixbus", "distribusion", "city_airport_train", "obb",
	"timetable",
}

// Client talks to the search API. Each request gets a bounded number of
// automatic retries on unexpected status codes, separated by a fixed
// interval; both are plain configuration rather than buried constants.
type Client struct {
	httpClient *http.Client

	RetryAttempts int
	RetryInterval time.Duration
	Logger        zerolog.Logger
}

// NewClient creates a search client with the default retry budget.
func NewClient() *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		RetryAttempts: defaultRetryAttempts,
		RetryInterval: defaultRetryInterval,
		Logger:        zerolog.Nop(),
	}
}

// search POSTs one query and decodes the page it returns. Non-200 responses
// are retried up to the budget, then escalate to a *ConnectionError carrying
// the last status and body.
func (c *Client) search(query searchQuery) (*searchResponse, error) {
	payload, err := json.Marshal(searchRequest{Search: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	url := fmt.Sprintf("%s/search", baseURL)
	var page searchResponse
	attempt := 0

	operation := func() error {
		attempt++

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "railsearch/1.0 (github.com/railsearch)")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.Logger.Warn().Err(err).Int("attempt", attempt).Msg("search request failed")
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read search response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			c.Logger.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt).
				Msg("unexpected status code from search")
			return &ConnectionError{StatusCode: resp.StatusCode, URL: url, Body: string(body)}
		}

		if err := json.Unmarshal(body, &page); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode search JSON: %w", err))
		}
		return nil
	}

	// A zero or negative attempt count still means one try; the subtraction
	// must never go negative before the unsigned conversion.
	attempts := c.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(c.RetryInterval),
		uint64(attempts-1),
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return &page, nil
}

// buildQuery assembles the wire query for one departure window.
func buildQuery(departureStationID, arrivalStationID, currency, travelClass string, searchDate time.Time, passengers []*Passenger) searchQuery {
	rawPassengers := make([]rawPassenger, 0, len(passengers))
	for _, p := range passengers {
		rawPassengers = append(rawPassengers, p.toRaw())
	}
	return searchQuery{
		DepartureDate:      searchDate.Format(queryDateFormat),
		DepartureStationID: departureStationID,
		ArrivalStationID:   arrivalStationID,
		Currency:           currency,
		TravelClass:        travelClass,
		Passengers:         rawPassengers,
		Systems:            systems,
	}
}
