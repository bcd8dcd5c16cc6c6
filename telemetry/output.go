package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/shoal/config"
)

// csvLog appends gocsv rows to one file, writing the header with the first row.
type csvLog struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openCSVLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, file: f}, nil
}

// append writes rows, a slice of csv-tagged structs.
func (l *csvLog) append(rows any) error {
	marshal := gocsv.MarshalWithoutHeaders
	if !l.headerWritten {
		marshal = gocsv.Marshal
	}
	if err := marshal(rows, l.file); err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.headerWritten = true
	return nil
}

// OutputManager writes a run's school windows, pass timings, bookmarks and
// config snapshot into one directory.
type OutputManager struct {
	dir       string
	telemetry *csvLog // telemetry.csv, one row per stats window
	perf      *csvLog // perf.csv, one row per stats window
	bookmarks *csvLog // bookmarks.csv, one row per detected episode
}

// NewOutputManager creates dir and opens the CSV logs in it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, slot := range []struct {
		log  **csvLog
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	} {
		l, err := openCSVLog(dir, slot.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*slot.log = l
	}
	return om, nil
}

// WriteConfig saves the run's configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends one school window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append([]WindowStats{stats})
}

// WritePerf appends the pass timings for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends a detected school episode.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.append([]Bookmark{b})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open log and returns the joined errors.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, l := range []*csvLog{om.telemetry, om.perf, om.bookmarks} {
		if l == nil {
			continue
		}
		if err := l.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", l.name, err))
		}
	}
	return errors.Join(errs...)
}
