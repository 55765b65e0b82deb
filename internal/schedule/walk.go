package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ListTimetableFiles lists the timetable documents directly under root,
// in directory order (os.ReadDir sorts by filename, so the fold over
// files is deterministic). An entry qualifies when its extension,
// compared case-insensitively, has a registered loader. Enumeration is
// single-level: councils drop their documents straight into the data
// directory, never into subdirectories.
//
// A listing failure (missing directory, permission denied) is the one
// fatal error in a scan and propagates to the caller.
func ListTimetableFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list timetable dir %s: %w", root, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))

		loadersMu.RLock()
		_, ok := loaders[ext]
		loadersMu.RUnlock()

		if ok {
			paths = append(paths, filepath.Join(root, e.Name()))
		}
	}
	return paths, nil
}
