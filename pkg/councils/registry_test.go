package councils_test

import (
	"testing"

	"binwatch/pkg/councils"
	_ "binwatch/pkg/councils/ashfordvale"
	_ "binwatch/pkg/councils/northmoor"
)

func TestRegisteredCouncils(t *testing.T) {
	keys := councils.List()
	if len(keys) != 2 {
		t.Fatalf("expected 2 registered councils, got %v", keys)
	}
	if keys[0] != "ashfordvale" || keys[1] != "northmoor" {
		t.Errorf("unexpected keys: %v", keys)
	}

	c, ok := councils.Get("northmoor")
	if !ok {
		t.Fatal("expected northmoor to be registered")
	}
	if c.Format() != councils.FormatPDF {
		t.Errorf("unexpected format: %v", c.Format())
	}
	if c.Name() == "" || c.LandingURL() == "" || c.DefaultDataDir() == "" {
		t.Error("incomplete council descriptor")
	}

	if _, ok := councils.Get("atlantis"); ok {
		t.Error("unknown key must not resolve")
	}
}

func TestGetAllSorted(t *testing.T) {
	all := councils.GetAll()
	if len(all) != 2 {
		t.Fatalf("expected 2 councils, got %d", len(all))
	}
	if all[0].Key() != "ashfordvale" {
		t.Errorf("expected sorted order, got %s first", all[0].Key())
	}
}
