package councils

import "errors"

// TimetableFormat identifies how a council publishes its collection
// timetable.
type TimetableFormat string

const (
	FormatXLSX TimetableFormat = "xlsx"
	FormatPDF  TimetableFormat = "pdf"
)

// Council is the base interface for all council integrations.
type Council interface {
	// Key returns the unique identifier for the council (e.g., "ashfordvale").
	Key() string
	// Name returns the human-readable name of the council.
	Name() string
	// LandingURL returns the URL of the council's collection-days page.
	LandingURL() string
	// DefaultDataDir returns the default directory timetable documents are
	// downloaded into.
	DefaultDataDir() string
	// Format returns the document format the council publishes.
	Format() TimetableFormat
	// Notes returns free-form notes about the council's publishing habits.
	Notes() string
}

// Common errors shared across councils.
var (
	ErrCouncilNotFound = errors.New("council not found")
)
