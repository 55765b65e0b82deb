package northmoor

import (
	"binwatch/pkg/councils"
)

func init() {
	councils.Register(&Council{})
}

type Council struct{}

func (c *Council) Key() string {
	return "northmoor"
}

func (c *Council) Name() string {
	return "Northmoor Borough Council"
}

func (c *Council) LandingURL() string {
	return "https://www.northmoor.gov.uk/waste/collection-calendar/"
}

func (c *Council) DefaultDataDir() string {
	return "/data/northmoor"
}

func (c *Council) Format() councils.TimetableFormat {
	return councils.FormatPDF
}

func (c *Council) Notes() string {
	return "Publishes a single pdf calendar per year"
}
