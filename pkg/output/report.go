package output

import (
	"fmt"
	"os"
)

// WriteReport creates path and renders into it with the named formatter
func WriteReport(path, format string, render func(Formatter) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	f, err := New(format, file)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
