package tags

import (
	"fmt"
	"io"
	"strings"

	"github.com/sdejongh/vidupe/pkg/fileops"
	"github.com/sdejongh/vidupe/pkg/models"
)

// StatsFunc returns the statistics of a folder, or ok=false when none are known
type StatsFunc func(path string) (stats models.FolderStats, ok bool)

// Export writes the tagged folders as a plain text report. Folders with
// known statistics get their video count and size listed below the path.
func Export(w io.Writer, paths []string, stats StatsFunc) error {
	var b strings.Builder
	b.WriteString("Tagged Folders\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	for _, path := range paths {
		b.WriteString(path + "\n")
		if stats != nil {
			if st, ok := stats(path); ok {
				fmt.Fprintf(&b, "  Videos: %d\n", st.VideoFiles)
				fmt.Fprintf(&b, "  Size: %s\n", fileops.FormatSize(st.TotalSize))
			}
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
