package ashfordvale

import (
	"binwatch/pkg/councils"
)

func init() {
	councils.Register(&Council{})
}

type Council struct{}

func (c *Council) Key() string {
	return "ashfordvale"
}

func (c *Council) Name() string {
	return "Ashford Vale District Council"
}

func (c *Council) LandingURL() string {
	return "https://www.ashfordvale.gov.uk/bins-and-recycling/collection-days/"
}

func (c *Council) DefaultDataDir() string {
	return "/data/ashfordvale"
}

func (c *Council) Format() councils.TimetableFormat {
	return councils.FormatXLSX
}

func (c *Council) Notes() string {
	return "Publishes per-area xlsx timetables"
}
