// Package output renders scan reports and command results for people and
// for scripts.
package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/vidupe/pkg/models"
)

// Formatter defines the interface for output formatting
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Files renders a ranked multi-file folder report
	Files(report *models.FileScanReport) error

	// Folders renders a ranked duplicate folder report
	Folders(report *models.FolderScanReport) error

	// Stats renders the statistics of one folder
	Stats(folder string, stats models.FolderStats) error

	// Contents renders the file listing of one folder
	Contents(folder string, entries []models.FileEntry) error

	// Score renders a quality score breakdown
	Score(score models.QualityScore) error

	// Deletions renders per-path delete outcomes in the given order
	Deletions(paths []string, outcomes map[string]models.DeleteOutcome) error

	// Error reports an error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// New returns the formatter registered under name, writing to w
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}
