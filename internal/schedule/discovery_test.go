package schedule

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscoverTimetableURLFromHTML_PrefersXLSXWithCollectionText(t *testing.T) {
	html := `
<html><body>
<a href="/docs/minutes.pdf">Committee minutes</a>
<a href="/docs/collection-days.xlsx">Bin collection days</a>
<a href="/docs/map.pdf">Area map</a>
</body></html>`

	got, err := discoverTimetableURLFromHTML("https://example.gov.uk/bins/", html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.gov.uk/docs/collection-days.xlsx" {
		t.Errorf("unexpected url: %s", got)
	}
}

func TestDiscoverTimetableURLFromHTML_FallsBackToBareHrefs(t *testing.T) {
	html := `<link href="/downloads/waste-calendar.pdf">`

	got, err := discoverTimetableURLFromHTML("https://example.gov.uk/", html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "/downloads/waste-calendar.pdf") {
		t.Errorf("unexpected url: %s", got)
	}
}

func TestDiscoverTimetableURLFromHTML_NoLinks(t *testing.T) {
	if _, err := discoverTimetableURLFromHTML("https://example.gov.uk/", "<p>nothing here</p>"); err == nil {
		t.Fatal("expected an error when no document links exist")
	}
}

func TestRefreshCouncilTimetable(t *testing.T) {
	const doc = "fake xlsx bytes"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bins/":
			fmt.Fprint(w, `<a href="/files/collection-days.xlsx">Collection days</a>`)
		case "/files/collection-days.xlsx":
			fmt.Fprint(w, doc)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := CouncilDescriptor{
		Key:        "testshire",
		LandingURL: srv.URL + "/bins/",
		DataDir:    dir,
	}

	docURL, err := RefreshCouncilTimetable(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(docURL, "/files/collection-days.xlsx") {
		t.Errorf("unexpected document url: %s", docURL)
	}

	data, err := os.ReadFile(filepath.Join(dir, "collection-days.xlsx"))
	if err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	if string(data) != doc {
		t.Errorf("unexpected file contents: %q", data)
	}
}

func TestRefreshCouncilTimetable_NoLandingURL(t *testing.T) {
	if _, err := RefreshCouncilTimetable(CouncilDescriptor{Key: "x"}); err == nil {
		t.Fatal("expected an error for a council without a landing url")
	}
}
