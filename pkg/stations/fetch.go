package stations

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"railsearch/pkg/config"

	"github.com/gocarina/gocsv"
)

var stationsURL = "https://raw.githubusercontent.com/trainline-eu/stations/master/stations.csv"

// defaultCacheMaxAge determines how long a downloaded station table is kept
// before a refresh. The upstream list changes rarely.
const defaultCacheMaxAge = 30 * 24 * time.Hour

// cacheMaxAge honors the configured station_cache_days override when set.
func cacheMaxAge() time.Duration {
	cfg, err := config.Load()
	if err != nil || cfg.StationCacheDays <= 0 {
		return defaultCacheMaxAge
	}
	return time.Duration(cfg.StationCacheDays) * 24 * time.Hour
}

// upstreamStation maps the columns we keep from the full trainline-eu
// stations.csv; the other ~60 columns are ignored.
type upstreamStation struct {
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	IsSuggestable string `csv:"is_suggestable"`
}

func cachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".railsearch_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "stations.csv"), nil
}

// readCache loads the cached table if it exists and has not expired.
func readCache() (*Table, bool) {
	path, err := cachePath()
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > cacheMaxAge() {
		return nil, false
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	table, err := Load(f)
	if err != nil {
		return nil, false
	}
	return table, true
}

// writeCache saves the table to disk, best effort.
func writeCache(records []Station) {
	path, err := cachePath()
	if err != nil {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	_ = gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(w))
}

// Download fetches the upstream stations.csv and reduces it to the mini
// table: suggestable stations only, names lowercased.
func Download(client *http.Client) (*Table, error) {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	resp, err := client.Get(stationsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download station table: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d when downloading station table", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.Comma = ';'
	// Upstream rows occasionally have ragged column counts
	reader.FieldsPerRecord = -1

	var upstream []upstreamStation
	if err := gocsv.UnmarshalCSV(reader, &upstream); err != nil {
		return nil, fmt.Errorf("failed to parse upstream station table: %w", err)
	}

	var records []Station
	for _, s := range upstream {
		if s.IsSuggestable != "t" {
			continue
		}
		records = append(records, Station{ID: s.ID, Name: strings.ToLower(s.Name)})
	}

	writeCache(records)
	return NewTable(records), nil
}

// Open returns the cached table when fresh, downloading it otherwise.
func Open(client *http.Client) (*Table, error) {
	if table, ok := readCache(); ok {
		return table, nil
	}
	return Download(client)
}
