package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
)

// DecisionRecord is one dispatched action, logged per tick.
type DecisionRecord struct {
	Tick     int64  `csv:"tick"`
	Action   string `csv:"action"`
	Item     string `csv:"item"`
	Location string `csv:"location"`
}

// NewDecisionRecord builds a decision row from a cascade action.
func NewDecisionRecord(tick int64, act systems.CascadeAction, location string) DecisionRecord {
	return DecisionRecord{
		Tick:     tick,
		Action:   act.Kind.String(),
		Item:     act.Item.Name,
		Location: location,
	}
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir           string
	windowsFile   *os.File
	decisionsFile *os.File

	// Track if headers have been written
	windowsHeaderWritten   bool
	decisionsHeaderWritten bool
}

// NewOutputManager creates an output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowsFile = f

	f, err = os.Create(filepath.Join(dir, "decisions.csv"))
	if err != nil {
		om.windowsFile.Close()
		return nil, fmt.Errorf("creating decisions.csv: %w", err)
	}
	om.decisionsFile = f

	return om, nil
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.windowsHeaderWritten {
		if err := gocsv.Marshal(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
		om.windowsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
	}

	return nil
}

// WriteDecision writes one decision record to decisions.csv.
func (om *OutputManager) WriteDecision(rec DecisionRecord) error {
	if om == nil {
		return nil
	}

	records := []DecisionRecord{rec}

	if !om.decisionsHeaderWritten {
		if err := gocsv.Marshal(records, om.decisionsFile); err != nil {
			return fmt.Errorf("writing decisions: %w", err)
		}
		om.decisionsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.decisionsFile); err != nil {
			return fmt.Errorf("writing decisions: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.windowsFile != nil {
		if err := om.windowsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.decisionsFile != nil {
		if err := om.decisionsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
