package stations

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const upstreamCSV = `id;name;slug;is_suggestable
4916;Toulouse Matabiau;toulouse-matabiau;t
4917;Toulouse Arènes;toulouse-arenes;f
5306;Paris Gare de Lyon;paris-gare-de-lyon;t
`

func TestDownload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(upstreamCSV))
	}))
	defer server.Close()

	originalURL := stationsURL
	stationsURL = server.URL
	defer func() { stationsURL = originalURL }()

	table, err := Download(server.Client())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only suggestable rows survive, with lowercased names
	if table.Len() != 2 {
		t.Fatalf("expected 2 suggestable stations, got %d", table.Len())
	}
	if id, err := table.Find("paris gare de lyon"); err != nil || id != "5306" {
		t.Errorf("lookup after download failed: id=%s err=%v", id, err)
	}
	if _, err := table.Find("toulouse arènes"); err == nil {
		t.Errorf("non-suggestable stations should be dropped")
	}
}

func TestDownload_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	originalURL := stationsURL
	stationsURL = server.URL
	defer func() { stationsURL = originalURL }()

	if _, err := Download(server.Client()); err == nil {
		t.Fatalf("expected error on upstream 500, got nil")
	}
}

func TestOpen_PrefersFreshCache(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	writeCache([]Station{{ID: "4916", Name: "toulouse matabiau"}})

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(upstreamCSV))
	}))
	defer server.Close()

	originalURL := stationsURL
	stationsURL = server.URL
	defer func() { stationsURL = originalURL }()

	table, err := Open(server.Client())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 0 {
		t.Errorf("a fresh cache should prevent any download, got %d requests", requests)
	}
	if table.Len() != 1 {
		t.Errorf("expected the cached table, got %d stations", table.Len())
	}
}

func TestOpen_DownloadsWhenCacheMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamCSV))
	}))
	defer server.Close()

	originalURL := stationsURL
	stationsURL = server.URL
	defer func() { stationsURL = originalURL }()

	table, err := Open(server.Client())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("expected the downloaded table, got %d stations", table.Len())
	}

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".railsearch_cache", "stations.csv")); err != nil {
		t.Errorf("expected the download to populate the cache: %v", err)
	}
}
