package schedule

import "errors"

// Scan failures carry a cause so operators can tell a missing street from
// a corrupt timetable. The propagation policy is unchanged by the tags:
// only the directory-listing failure reaches the caller of ScanDirectory;
// everything else is swallowed one level up with the unit skipped.
var (
	// ErrNoStreetAnchor: no cell in the sheet matches the street name.
	ErrNoStreetAnchor = errors.New("street name not found in sheet")

	// ErrNoDateAnchor: no cell in the sheet resolves as a date.
	ErrNoDateAnchor = errors.New("no date cell found in sheet")

	// ErrMalformedDate: a cell inside the scanned column range of the
	// date row failed to parse. The whole sheet is discarded.
	ErrMalformedDate = errors.New("malformed date cell")

	// ErrNoLoader: no workbook loader is registered for the file's
	// extension.
	ErrNoLoader = errors.New("no loader for file extension")
)
