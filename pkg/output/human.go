package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sdejongh/vidupe/pkg/fileops"
	"github.com/sdejongh/vidupe/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	taggedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &HumanFormatter{writer: w}
}

// Files renders every movie folder with its files, best copy first marked
func (f *HumanFormatter) Files(report *models.FileScanReport) error {
	fmt.Fprintf(f.writer, "%s\n", headerStyle.Render("Movie folders with multiple videos: "+report.Root))
	fmt.Fprintf(f.writer, "\n")

	f.writeTree(models.FileTree(report), 0)

	fmt.Fprintf(f.writer, "Found %d folders in %s\n", len(report.Groups), report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)
	return nil
}

// Folders renders every duplicate group with its member folders
func (f *HumanFormatter) Folders(report *models.FolderScanReport) error {
	title := fmt.Sprintf("Duplicate folders (%s", report.Mode)
	if report.Mode == models.MatchFuzzy {
		title += fmt.Sprintf(", threshold %.0f%%", report.Threshold*100)
	}
	title += ")"
	fmt.Fprintf(f.writer, "%s\n", headerStyle.Render(title))
	for _, root := range report.Roots {
		fmt.Fprintf(f.writer, "  %s\n", dimStyle.Render(root))
	}
	fmt.Fprintf(f.writer, "\n")

	f.writeTree(models.FolderTree(report), 0)

	fmt.Fprintf(f.writer, "Found %d groups, %d folders in %s\n",
		len(report.Groups), report.TotalFolders(), report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)
	return nil
}

// writeTree prints nodes depth first, one line each
func (f *HumanFormatter) writeTree(nodes []models.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch n.Kind {
		case models.NodeGroup:
			fmt.Fprintf(f.writer, "%s%s  %s\n", indent, headerStyle.Render(n.Label), dimStyle.Render(fileops.FormatSize(n.Size)))
		case models.NodeFolder:
			if depth == 0 {
				fmt.Fprintf(f.writer, "%s%s  %s\n", indent, headerStyle.Render(n.Label), dimStyle.Render(n.Path))
			} else {
				fmt.Fprintf(f.writer, "%s%s%s  %s\n", indent, markers(n), n.Path, fileops.FormatSize(n.Size))
			}
		case models.NodeFile:
			fmt.Fprintf(f.writer, "%s%s%s  %s\n", indent, markers(n), n.Label, fileops.FormatSize(n.Size))
		}
		f.writeTree(n.Children, depth+1)
		if depth == 0 {
			fmt.Fprintf(f.writer, "\n")
		}
	}
}

func markers(n models.Node) string {
	var b strings.Builder
	if n.Best {
		b.WriteString(bestStyle.Render("[BEST]") + " ")
	}
	if n.Tagged {
		b.WriteString(taggedStyle.Render("[TAGGED]") + " ")
	}
	return b.String()
}

// Stats renders folder statistics
func (f *HumanFormatter) Stats(folder string, stats models.FolderStats) error {
	fmt.Fprintf(f.writer, "%s\n", headerStyle.Render(folder))
	fmt.Fprintf(f.writer, "  Files:        %d (%s)\n", stats.TotalFiles, fileops.FormatSize(stats.TotalSize))
	fmt.Fprintf(f.writer, "  Video files:  %d (%s)\n", stats.VideoFiles, fileops.FormatSize(stats.VideoSize))
	return nil
}

// Contents renders every file of a folder with its size
func (f *HumanFormatter) Contents(folder string, entries []models.FileEntry) error {
	var total int64
	fmt.Fprintf(f.writer, "%s\n", headerStyle.Render(folder))
	for _, e := range entries {
		total += e.Size
		fmt.Fprintf(f.writer, "  %-60s %10s\n", e.RelativePath, fileops.FormatSize(e.Size))
	}
	fmt.Fprintf(f.writer, "\n%d files, %s\n", len(entries), fileops.FormatSize(total))
	return nil
}

// Score renders a quality breakdown
func (f *HumanFormatter) Score(score models.QualityScore) error {
	d := score.Details
	kind := "file"
	if d.IsFolder {
		kind = "folder"
	}
	fmt.Fprintf(f.writer, "%s (%s)\n", headerStyle.Render(d.Name), kind)
	fmt.Fprintf(f.writer, "  Size:        %8.2f  (%.2f GB)\n", score.SizeScore, d.SizeGB)
	fmt.Fprintf(f.writer, "  Codec:       %8.2f  (%s)\n", score.CodecScore, d.Codec)
	fmt.Fprintf(f.writer, "  Resolution:  %8.2f  (%s)\n", score.ResolutionScore, d.Resolution)
	fmt.Fprintf(f.writer, "  Source:      %8.2f  (%s)\n", score.SourceScore, d.Source)
	fmt.Fprintf(f.writer, "  Total:       %8.2f\n", score.TotalScore)
	return nil
}

// Deletions renders per-path outcomes and a summary line
func (f *HumanFormatter) Deletions(paths []string, outcomes map[string]models.DeleteOutcome) error {
	deleted := 0
	for _, p := range paths {
		o := outcomes[p]
		if o.OK() {
			deleted++
			fmt.Fprintf(f.writer, "✓ %s\n", p)
			continue
		}
		fmt.Fprintf(f.writer, "✗ %s: %s\n", p, o.Message)
	}
	fmt.Fprintf(f.writer, "\nDeleted %d of %d files\n", deleted, len(paths))
	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	fmt.Fprintf(f.writer, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
