package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/ambient/config"
)

// csvTable appends gocsv records to one file. The header goes out with the
// first batch only, so a run can be followed with tail -f.
type csvTable struct {
	name    string
	file    *os.File
	started bool
}

func openTable(dir, name string) (*csvTable, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable{name: name, file: f}, nil
}

// append writes records, which must be a slice of csv-tagged structs.
func (t *csvTable) append(records any) error {
	var err error
	if t.started {
		err = gocsv.MarshalWithoutHeaders(records, t.file)
	} else {
		err = gocsv.Marshal(records, t.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	t.started = true
	return nil
}

func (t *csvTable) close() error {
	if t == nil {
		return nil
	}
	return t.file.Close()
}

// OutputManager writes one run's artifacts into a directory:
//
//	telemetry.csv  one row per stats window
//	perf.csv       frame timings and field load per window
//	phases.csv     per-phase timings per window
//	bookmarks.csv  flagged windows
//	config.yaml    the effective configuration
//
// A nil manager accepts every call and writes nothing.
type OutputManager struct {
	dir       string
	windows   *csvTable
	profiles  *csvTable
	phases    *csvTable
	bookmarks *csvTable
}

// NewOutputManager creates dir and the CSV files in it. An empty dir
// disables output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	tables := []struct {
		dst  **csvTable
		name string
	}{
		{&om.windows, "telemetry.csv"},
		{&om.profiles, "perf.csv"},
		{&om.phases, "phases.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	}
	for _, t := range tables {
		table, err := openTable(dir, t.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*t.dst = table
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends a stats window to telemetry.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.windows.append([]WindowStats{stats})
}

// WriteProfile appends the frame profile closing at windowEndMs to perf.csv
// and its phases to phases.csv.
func (om *OutputManager) WriteProfile(prof FrameProfile, windowEndMs float64) error {
	if om == nil {
		return nil
	}
	row, phases := prof.Rows(windowEndMs)
	if err := om.profiles.append([]ProfileRow{row}); err != nil {
		return err
	}
	if len(phases) == 0 {
		return nil
	}
	return om.phases.append(phases)
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.append([]Bookmark{b})
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every file and reports all failures.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(
		om.windows.close(),
		om.profiles.close(),
		om.phases.close(),
		om.bookmarks.close(),
	)
}
