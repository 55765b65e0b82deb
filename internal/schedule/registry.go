package schedule

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// LoaderFunc opens a timetable document and materialises it as a Workbook.
// Implementations must release the underlying document before returning.
type LoaderFunc func(path string) (*Workbook, error)

var (
	loadersMu sync.RWMutex
	loaders   = make(map[string]LoaderFunc)
)

// RegisterLoader registers a workbook loader for a file extension
// (lower case, including the dot). Called from init() in each loader file.
func RegisterLoader(ext string, fn LoaderFunc) {
	if ext == "" || !strings.HasPrefix(ext, ".") {
		panic(fmt.Sprintf("schedule: RegisterLoader called with bad extension %q", ext))
	}
	if fn == nil {
		panic(fmt.Sprintf("schedule: RegisterLoader(%q) called with nil loader", ext))
	}

	loadersMu.Lock()
	defer loadersMu.Unlock()

	if _, exists := loaders[ext]; exists {
		panic(fmt.Sprintf("schedule: RegisterLoader called twice for %q", ext))
	}
	loaders[ext] = fn
}

// LoaderExtensions returns the registered extensions, sorted.
func LoaderExtensions() []string {
	loadersMu.RLock()
	defer loadersMu.RUnlock()

	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LoadWorkbook picks the loader for the file's extension (compared case
// insensitively) and runs it.
func LoadWorkbook(path string) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))

	loadersMu.RLock()
	fn, ok := loaders[ext]
	loadersMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoLoader, ext)
	}
	return fn(path)
}
