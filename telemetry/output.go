package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/antfarm/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir          string
	attemptsFile *os.File

	attemptsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	attemptsPath := filepath.Join(dir, "attempts.csv")
	f, err := os.Create(attemptsPath)
	if err != nil {
		return nil, fmt.Errorf("creating attempts.csv: %w", err)
	}
	om.attemptsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteAttempt appends an attempt record to attempts.csv.
func (om *OutputManager) WriteAttempt(rec AttemptRecord) error {
	if om == nil {
		return nil
	}

	records := []AttemptRecord{rec}

	if !om.attemptsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.attemptsFile); err != nil {
			return fmt.Errorf("writing attempt: %w", err)
		}
		om.attemptsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.attemptsFile); err != nil {
			return fmt.Errorf("writing attempt: %w", err)
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
	if om == nil || om.attemptsFile == nil {
		return nil
	}
	return om.attemptsFile.Close()
}
