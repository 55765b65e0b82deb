package schedule

import "testing"

func TestCouncils_Defaults(t *testing.T) {
	t.Setenv("BINWATCH_COUNCILS_JSON", "")

	list := Councils()
	if len(list) != 2 {
		t.Fatalf("expected 2 registered councils, got %d", len(list))
	}

	c, ok := GetCouncil("ashfordvale")
	if !ok {
		t.Fatal("expected ashfordvale to be registered")
	}
	if c.DataDir == "" || c.LandingURL == "" {
		t.Errorf("incomplete descriptor: %+v", c)
	}
}

func TestCouncils_EnvOverride(t *testing.T) {
	t.Setenv("BINWATCH_COUNCILS_JSON",
		`[{"key":"testshire","name":"Testshire","landingUrl":"http://example.com","dataDir":"/tmp/testshire"}]`)

	list := Councils()
	if len(list) != 1 || list[0].Key != "testshire" {
		t.Fatalf("expected env override to take effect, got %+v", list)
	}

	if _, ok := GetCouncil("ashfordvale"); ok {
		t.Error("defaults must not leak through an env override")
	}
}

func TestCouncils_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("BINWATCH_COUNCILS_JSON", "{not json")

	list := Councils()
	if len(list) != 2 {
		t.Fatalf("expected fallback to defaults, got %+v", list)
	}
}
