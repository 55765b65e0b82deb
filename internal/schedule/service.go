package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"binwatch/internal/storage"
)

// Config controls how the schedule service behaves.
type Config struct {
	// DataDirs optionally overrides the data directory per council key
	// (e.g. from ASHFORDVALE_DATA_DIR).
	DataDirs map[string]string

	// Now supplies the reference date for year-less timetable cells.
	// Defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Service coordinates scanning and caching of collection lookups.
type Service struct {
	cfg   Config
	store storage.Storage // may be nil for scan-only mode
}

// NewService returns a scan-only Service with no snapshot caching.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// NewServiceWithStorage returns a Service that caches lookups as schedule
// snapshots in the given storage backend.
func NewServiceWithStorage(cfg Config, st storage.Storage) *Service {
	return &Service{cfg: cfg, store: st}
}

func (s *Service) now() time.Time {
	if s.cfg.Now != nil {
		return s.cfg.Now()
	}
	return time.Now()
}

func (s *Service) dataDir(c CouncilDescriptor) string {
	if dir, ok := s.cfg.DataDirs[c.Key]; ok && dir != "" {
		return dir
	}
	return c.DataDir
}

// NextCollection answers the next upcoming collection for a street in a
// council's area. It consults a stored snapshot first; a snapshot is
// reused only when it was computed today (the answer depends on "today",
// so yesterday's snapshot may already point at a past date). On a miss
// the council's data directory is scanned and the result written back,
// best-effort.
//
// A nil Collection in the response is a definitive "nothing found"; the
// only error from a scan itself is an unreadable data directory.
func (s *Service) NextCollection(ctx context.Context, councilKey, street string) (*NextCollectionResponse, error) {
	council, ok := GetCouncil(councilKey)
	if !ok {
		return nil, fmt.Errorf("unknown council: %s", councilKey)
	}

	today := s.now()

	if s.store != nil {
		snap, err := s.store.GetScheduleSnapshot(ctx, councilKey, street)
		if err == nil && snap != nil && len(snap.Payload) > 0 && sameDay(snap.FetchedAt, today) {
			var resp NextCollectionResponse
			if err := json.Unmarshal(snap.Payload, &resp); err == nil {
				return &resp, nil
			}
			// Undecodable snapshot: fall through and rescan.
		}
	}

	root := s.dataDir(council)
	found, err := ScanDirectory(root, street, today)
	if err != nil {
		return nil, err
	}

	resp := &NextCollectionResponse{
		Council:    councilKey,
		Street:     street,
		Source:     root,
		FetchedAt:  today,
		Collection: found,
	}

	if s.store != nil {
		if payload, err := json.Marshal(resp); err == nil {
			_ = s.store.SaveScheduleSnapshot(ctx, storage.ScheduleSnapshot{
				Council:   councilKey,
				Street:    street,
				Payload:   payload,
				FetchedAt: resp.FetchedAt,
			})
		}
	}

	return resp, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
