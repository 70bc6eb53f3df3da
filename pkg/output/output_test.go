package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/vidupe/pkg/models"
)

func sampleFolderReport() *models.FolderScanReport {
	return &models.FolderScanReport{
		ID:        "scan-1",
		Roots:     []string{"/lib1", "/lib2"},
		Mode:      models.MatchFuzzy,
		Threshold: 0.8,
		Duration:  1500 * time.Millisecond,
		Status:    models.StatusSuccess,
		Groups: []models.RankedFolderGroup{{
			ID:  "group-1",
			Key: "alien",
			Folders: []models.RankedFolder{
				{
					Path:  "/lib1/Alien (1979) 1080p",
					Stats: models.FolderStats{TotalFiles: 2, VideoFiles: 1, TotalSize: 2048},
					Score: models.QualityScore{TotalScore: 90},
					Best:  true,
				},
				{
					Path:   "/lib2/Aliens",
					Stats:  models.FolderStats{TotalFiles: 1, VideoFiles: 1, TotalSize: 512},
					Tagged: true,
				},
			},
		}},
	}
}

func sampleFileReport() *models.FileScanReport {
	return &models.FileScanReport{
		ID:     "scan-2",
		Root:   "/lib",
		Status: models.StatusSuccess,
		Groups: []models.RankedFileGroup{{
			Folder: "/lib/Heat",
			Files: []models.RankedFile{
				{VideoFile: models.VideoFile{Filename: "Heat.1080p.mkv", FullPath: "/lib/Heat/Heat.1080p.mkv", Size: 1024, MIME: "video/x-matroska"}, Best: true},
				{VideoFile: models.VideoFile{Filename: "Heat.720p.mkv", FullPath: "/lib/Heat/Heat.720p.mkv", Size: 100}},
			},
		}},
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "human", "json"} {
		if _, err := New(name, &bytes.Buffer{}); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Error("New(xml) should fail")
	}
}

func TestHumanFormatter_Folders(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHumanFormatter(&buf).Folders(sampleFolderReport()); err != nil {
		t.Fatalf("Folders() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Duplicate folders (fuzzy, threshold 80%)",
		"Group: Alien (1979) 1080p (2 folders)",
		"[BEST] /lib1/Alien (1979) 1080p  2.0 KB",
		"[TAGGED] /lib2/Aliens  512 B",
		"Found 1 groups, 2 folders",
		"Status: success",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHumanFormatter_Files(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHumanFormatter(&buf).Files(sampleFileReport()); err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Heat (2 files)",
		"[BEST] Heat.1080p.mkv  1.0 KB",
		"  Heat.720p.mkv  100 B",
		"Found 1 folders",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHumanFormatter_Misc(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter(&buf)

	f.Stats("/lib/Heat", models.FolderStats{TotalFiles: 3, VideoFiles: 2, TotalSize: 2048, VideoSize: 1024})
	f.Score(models.QualityScore{
		TotalScore: 161.5, SizeScore: 80, CodecScore: 100, ResolutionScore: 300, SourceScore: 150,
		Details: models.QualityDetails{Name: "Movie.mkv", SizeGB: 8, Codec: "h265", Resolution: "1080p", Source: "BluRay"},
	})
	f.Deletions([]string{"/a", "/b"}, map[string]models.DeleteOutcome{
		"/a": {Path: "/a", Status: models.DeleteSuccess},
		"/b": {Path: "/b", Status: models.DeleteNotFound, Message: "File not found"},
	})
	f.Error(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		"Video files:  2 (1.0 KB)",
		"Total:         161.50",
		"(h265)",
		"✓ /a",
		"✗ /b: File not found",
		"Deleted 1 of 2 files",
		"Error: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormatter_Folders(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Folders(sampleFolderReport()); err != nil {
		t.Fatalf("Folders() error = %v", err)
	}

	var got JSONFolderReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Mode != "fuzzy" || got.Threshold != 0.8 || got.DurationMs != 1500 {
		t.Errorf("header = %+v", got)
	}
	if len(got.Groups) != 1 || got.Groups[0].Name != "Group: Alien (1979) 1080p (2 folders)" {
		t.Fatalf("groups = %+v", got.Groups)
	}
	folders := got.Groups[0].Folders
	if !folders[0].Best || folders[1].Best || !folders[1].Tagged {
		t.Errorf("markers = %+v", folders)
	}
	if folders[0].Stats.TotalSize != 2048 || folders[0].Score.TotalScore != 90 {
		t.Errorf("folder = %+v", folders[0])
	}
}

func TestJSONFormatter_FilesAndDeletions(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)
	if err := f.Files(sampleFileReport()); err != nil {
		t.Fatalf("Files() error = %v", err)
	}

	var files JSONFileReport
	if err := json.Unmarshal(buf.Bytes(), &files); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(files.Groups) != 1 || len(files.Groups[0].Files) != 2 || !files.Groups[0].Files[0].Best {
		t.Errorf("files = %+v", files)
	}

	buf.Reset()
	f.Deletions([]string{"/x"}, map[string]models.DeleteOutcome{
		"/x": {Path: "/x", Status: models.DeletePermissionDenied, Message: "Permission denied"},
	})
	var dels []JSONDeleteData
	if err := json.Unmarshal(buf.Bytes(), &dels); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(dels) != 1 || dels[0].Status != "permission_denied" {
		t.Errorf("deletions = %+v", dels)
	}
}

func TestProgressLog(t *testing.T) {
	var buf bytes.Buffer
	events := make(chan models.ProgressUpdate, 4)
	events <- models.ProgressUpdate{Type: models.ProgressPhase, Phase: "stats"}
	events <- models.ProgressUpdate{Type: models.ProgressFolderDone, Path: "/lib/A", Current: 1, Total: 2}
	events <- models.ProgressUpdate{Type: models.ProgressScanComplete}
	close(events)

	NewProgressLog(&buf).Consume(events)

	want := "== stats\n[1/2] /lib/A\n== done\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestProgressBar_Consume(t *testing.T) {
	var buf bytes.Buffer
	events := make(chan models.ProgressUpdate, 8)
	events <- models.ProgressUpdate{Type: models.ProgressPhase, Phase: "scan", Total: 2}
	events <- models.ProgressUpdate{Type: models.ProgressFolderDone, Current: 1, Total: 2}
	events <- models.ProgressUpdate{Type: models.ProgressFolderDone, Current: 2, Total: 2}
	events <- models.ProgressUpdate{Type: models.ProgressPhase, Phase: "rank"}
	close(events)

	bar := NewProgressBar(&buf)
	bar.Consume(events)

	if bar.bar != nil {
		t.Error("bar should be finished once the channel closes")
	}
	if !strings.Contains(buf.String(), "scan") {
		t.Errorf("output should mention the phase: %q", buf.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if _, ok := NewProgressSink(&bytes.Buffer{}).(*ProgressLog); !ok {
		t.Error("non-terminal writers should get line progress")
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	err := WriteReport(path, "json", func(f Formatter) error {
		return f.Folders(sampleFolderReport())
	})
	if err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("report is not valid JSON: %s", data)
	}

	if err := WriteReport(filepath.Join(t.TempDir(), "missing", "r.txt"), "human", nil); err == nil {
		t.Error("WriteReport() into a missing directory should fail")
	}
}
