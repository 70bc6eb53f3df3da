package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/vidupe/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONFileReport represents a multi-file folder report
type JSONFileReport struct {
	ID         string          `json:"id"`
	Root       string          `json:"root"`
	Status     string          `json:"status"`
	Duration   string          `json:"duration"`
	DurationMs int64           `json:"duration_ms"`
	Groups     []JSONFileGroup `json:"groups"`
}

// JSONFileGroup represents one movie folder
type JSONFileGroup struct {
	Folder string         `json:"folder"`
	Files  []JSONFileData `json:"files"`
}

// JSONFileData represents one ranked video file
type JSONFileData struct {
	Filename string              `json:"filename"`
	Path     string              `json:"path"`
	Size     int64               `json:"size"`
	MIME     string              `json:"mime,omitempty"`
	Best     bool                `json:"best"`
	Score    models.QualityScore `json:"score"`
}

// JSONFolderReport represents a duplicate folder report
type JSONFolderReport struct {
	ID         string            `json:"id"`
	Roots      []string          `json:"roots"`
	Mode       string            `json:"mode"`
	Threshold  float64           `json:"threshold,omitempty"`
	Status     string            `json:"status"`
	Duration   string            `json:"duration"`
	DurationMs int64             `json:"duration_ms"`
	Groups     []JSONFolderGroup `json:"groups"`
}

// JSONFolderGroup represents one duplicate group
type JSONFolderGroup struct {
	ID      string           `json:"id"`
	Key     string           `json:"key"`
	Name    string           `json:"name"`
	Folders []JSONFolderData `json:"folders"`
}

// JSONFolderData represents one ranked folder
type JSONFolderData struct {
	Path   string              `json:"path"`
	Stats  JSONStatsData       `json:"stats"`
	Best   bool                `json:"best"`
	Tagged bool                `json:"tagged"`
	Score  models.QualityScore `json:"score"`
}

// JSONStatsData represents folder statistics
type JSONStatsData struct {
	Path       string `json:"path,omitempty"`
	TotalFiles int    `json:"total_files"`
	VideoFiles int    `json:"video_files"`
	TotalSize  int64  `json:"total_size"`
	VideoSize  int64  `json:"video_size"`
}

// JSONContentsData represents a folder listing
type JSONContentsData struct {
	Folder string          `json:"folder"`
	Files  []JSONEntryData `json:"files"`
}

// JSONEntryData represents one listed file
type JSONEntryData struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	ModTime string `json:"mod_time"`
}

// JSONDeleteData represents one delete outcome
type JSONDeleteData struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// Files outputs a file report as JSON
func (f *JSONFormatter) Files(report *models.FileScanReport) error {
	out := JSONFileReport{
		ID:         report.ID,
		Root:       report.Root,
		Status:     string(report.Status),
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Groups:     make([]JSONFileGroup, 0, len(report.Groups)),
	}
	for _, g := range report.Groups {
		group := JSONFileGroup{Folder: g.Folder}
		for _, file := range g.Files {
			group.Files = append(group.Files, JSONFileData{
				Filename: file.Filename,
				Path:     file.FullPath,
				Size:     file.Size,
				MIME:     file.MIME,
				Best:     file.Best,
				Score:    file.Score,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	return f.encode(out)
}

// Folders outputs a folder report as JSON
func (f *JSONFormatter) Folders(report *models.FolderScanReport) error {
	out := JSONFolderReport{
		ID:         report.ID,
		Roots:      report.Roots,
		Mode:       string(report.Mode),
		Status:     string(report.Status),
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Groups:     make([]JSONFolderGroup, 0, len(report.Groups)),
	}
	if report.Mode == models.MatchFuzzy {
		out.Threshold = report.Threshold
	}
	for _, g := range report.Groups {
		group := JSONFolderGroup{ID: g.ID, Key: g.Key, Name: g.DisplayName()}
		for _, folder := range g.Folders {
			group.Folders = append(group.Folders, JSONFolderData{
				Path:   folder.Path,
				Stats:  statsData("", folder.Stats),
				Best:   folder.Best,
				Tagged: folder.Tagged,
				Score:  folder.Score,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	return f.encode(out)
}

// Stats outputs folder statistics as JSON
func (f *JSONFormatter) Stats(folder string, stats models.FolderStats) error {
	return f.encode(statsData(folder, stats))
}

// Contents outputs a folder listing as JSON
func (f *JSONFormatter) Contents(folder string, entries []models.FileEntry) error {
	out := JSONContentsData{Folder: folder, Files: make([]JSONEntryData, 0, len(entries))}
	for _, e := range entries {
		out.Files = append(out.Files, JSONEntryData{
			Path:    e.RelativePath,
			Size:    e.Size,
			ModTime: e.ModTime.Format(time.RFC3339),
		})
	}
	return f.encode(out)
}

// Score outputs a quality score as JSON
func (f *JSONFormatter) Score(score models.QualityScore) error {
	return f.encode(score)
}

// Deletions outputs delete outcomes as JSON
func (f *JSONFormatter) Deletions(paths []string, outcomes map[string]models.DeleteOutcome) error {
	out := make([]JSONDeleteData, 0, len(paths))
	for _, p := range paths {
		o := outcomes[p]
		out = append(out, JSONDeleteData{Path: p, Status: string(o.Status), Message: o.Message})
	}
	return f.encode(out)
}

// Error reports an error as a JSON object
func (f *JSONFormatter) Error(err error) error {
	return f.encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func statsData(path string, s models.FolderStats) JSONStatsData {
	return JSONStatsData{
		Path:       path,
		TotalFiles: s.TotalFiles,
		VideoFiles: s.VideoFiles,
		TotalSize:  s.TotalSize,
		VideoSize:  s.VideoSize,
	}
}
