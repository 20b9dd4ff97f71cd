package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// SessionState is the persisted state of a session.
type SessionState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// ScanPeriods holds the last applied scan periods, if any were set.
	ScanPeriods *ScanPeriodsState `json:"scan_periods,omitempty"`

	// MonitoredRegions lists the regions to re-arm after a restart.
	MonitoredRegions []region.Region `json:"monitored_regions,omitempty"`
}

// ScanPeriodsState mirrors sensing.ScanPeriods for JSON serialization.
type ScanPeriodsState struct {
	ForegroundMs int64 `json:"foreground_ms"`
	BetweenMs    int64 `json:"between_ms"`
}

// FileStore persists session state to a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store at path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the state file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save persists state to disk.
func (s *FileStore) Save(state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(state)
}

func (s *FileStore) saveLocked(state *SessionState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Replace atomically.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist.
func (s *FileStore) Load() (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() (*SessionState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return state, nil
}

// update applies fn to the current state and saves the result.
func (s *FileStore) update(fn func(*SessionState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadLocked()
	if err != nil {
		return err
	}
	if state == nil {
		state = &SessionState{}
	}
	fn(state)
	return s.saveLocked(state)
}

// SaveScanPeriods implements sensing.Store.
func (s *FileStore) SaveScanPeriods(p sensing.ScanPeriods) error {
	return s.update(func(st *SessionState) {
		st.ScanPeriods = &ScanPeriodsState{
			ForegroundMs: p.Foreground.Milliseconds(),
			BetweenMs:    p.ForegroundBetween.Milliseconds(),
		}
	})
}

// SaveMonitoredRegions implements sensing.Store.
func (s *FileStore) SaveMonitoredRegions(regions []region.Region) error {
	return s.update(func(st *SessionState) {
		st.MonitoredRegions = append([]region.Region(nil), regions...)
	})
}

// LoadScanPeriods returns the saved periods. ok is false if none were saved.
func (s *FileStore) LoadScanPeriods() (sensing.ScanPeriods, bool, error) {
	state, err := s.Load()
	if err != nil || state == nil || state.ScanPeriods == nil {
		return sensing.ScanPeriods{}, false, err
	}
	return sensing.ScanPeriods{
		Foreground:        time.Duration(state.ScanPeriods.ForegroundMs) * time.Millisecond,
		ForegroundBetween: time.Duration(state.ScanPeriods.BetweenMs) * time.Millisecond,
	}, true, nil
}

// LoadMonitoredRegions returns the saved regions.
func (s *FileStore) LoadMonitoredRegions() ([]region.Region, error) {
	state, err := s.Load()
	if err != nil || state == nil {
		return nil, err
	}
	return state.MonitoredRegions, nil
}

// Clear removes the state file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
