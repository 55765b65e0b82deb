package schedule

import "strings"

// ClassifyService maps a timetable cell's text to a service type.
// Anything mentioning recycling is recycling; everything else, including
// unrecognised text, is refuse. Default-wins, never an error.
func ClassifyService(cellText string) ServiceType {
	if strings.Contains(strings.ToLower(cellText), "recycling") {
		return ServiceRecycling
	}
	return ServiceRefuse
}
