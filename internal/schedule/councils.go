package schedule

import (
	"encoding/json"
	"os"

	"binwatch/pkg/councils"
	_ "binwatch/pkg/councils/ashfordvale"
	_ "binwatch/pkg/councils/northmoor"
)

// CouncilDescriptor identifies one council whose timetables we scan.
type CouncilDescriptor struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	LandingURL string `json:"landingUrl"`
	DataDir    string `json:"dataDir"`
	Notes      string `json:"notes,omitempty"`
}

const councilsEnv = "BINWATCH_COUNCILS_JSON"

func defaultCouncils() []CouncilDescriptor {
	var out []CouncilDescriptor
	for _, c := range councils.GetAll() {
		out = append(out, CouncilDescriptor{
			Key:        c.Key(),
			Name:       c.Name(),
			LandingURL: c.LandingURL(),
			DataDir:    c.DefaultDataDir(),
			Notes:      c.Notes(),
		})
	}
	return out
}

// Councils returns the configured council list: the JSON override from the
// environment when set and valid, otherwise the registered integrations.
func Councils() []CouncilDescriptor {
	raw := os.Getenv(councilsEnv)
	if raw == "" {
		return defaultCouncils()
	}
	var out []CouncilDescriptor
	if err := json.Unmarshal([]byte(raw), &out); err != nil || len(out) == 0 {
		return defaultCouncils()
	}
	return out
}

func GetCouncil(key string) (CouncilDescriptor, bool) {
	for _, c := range Councils() {
		if c.Key == key {
			return c, true
		}
	}
	return CouncilDescriptor{}, false
}
