// Package detect runs complete duplicate scans: it enumerates libraries,
// groups candidates, aggregates folder statistics and ranks every member.
package detect

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/vidupe/pkg/group"
	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/quality"
	"github.com/sdejongh/vidupe/pkg/scanner"
)

// Scan phases reported through ProgressPhase events
const (
	PhaseScan  = "scan"
	PhaseGroup = "group"
	PhaseStats = "stats"
	PhaseRank  = "rank"
)

// TagSet reports whether a folder is tagged
type TagSet interface {
	Contains(path string) bool
}

// Options configures an Engine
type Options struct {
	// MaxWorkers bounds concurrent folder statistics walks
	MaxWorkers int
	// Progress receives events while a scan runs. The engine never closes it.
	Progress chan<- models.ProgressUpdate
}

// FolderRequest describes a duplicate-folder scan
type FolderRequest struct {
	Roots []string
	Mode  models.MatchMode
	// Threshold is the fuzzy similarity ratio, clamped before use
	Threshold float64
	// Tags marks tagged members; nil means none are tagged
	Tags TagSet
}

// Engine orchestrates scans
type Engine struct {
	scanner  *scanner.Scanner
	grouper  *group.Grouper
	stats    *statsPool
	logger   logging.Logger
	progress chan<- models.ProgressUpdate
}

// NewEngine creates a new detection engine
func NewEngine(s *scanner.Scanner, logger logging.Logger, opts Options) *Engine {
	logger = logging.OrNull(logger)
	return &Engine{
		scanner:  s,
		grouper:  group.New(s, logger),
		stats:    newStatsPool(s, logger, opts.MaxWorkers),
		logger:   logger.WithFields(logging.Fields{"component": "detect"}),
		progress: opts.Progress,
	}
}

// RunFiles finds the movie folders of root holding two or more video files
// and ranks the files of each.
func (e *Engine) RunFiles(ctx context.Context, root string) (*models.FileScanReport, error) {
	if root == "" {
		return nil, &models.ValidationError{Field: "root", Message: "library path is required"}
	}

	report := &models.FileScanReport{
		ID:        uuid.New().String(),
		Root:      root,
		StartTime: time.Now(),
		Status:    models.StatusSuccess,
	}

	e.logger.Info(ctx, "Starting file scan", logging.Fields{"scan_id": report.ID, "root": root})
	e.emit(ctx, models.ProgressUpdate{Type: models.ProgressPhase, Phase: PhaseScan})

	groups := e.scanner.LibraryGroups(ctx, root, func(done, total int, folder string, videos int) {
		e.emit(ctx, models.ProgressUpdate{
			Type:    models.ProgressFolderDone,
			Phase:   PhaseScan,
			Path:    folder,
			Current: done,
			Total:   total,
		})
	})

	e.emit(ctx, models.ProgressUpdate{Type: models.ProgressPhase, Phase: PhaseRank, Total: len(groups)})
	for _, g := range groups {
		report.Groups = append(report.Groups, rankFiles(g))
	}

	e.finish(ctx, &report.Status, &report.StartTime, &report.EndTime, &report.Duration)
	e.logger.Info(ctx, "File scan finished", logging.Fields{
		"scan_id":  report.ID,
		"groups":   len(report.Groups),
		"status":   string(report.Status),
		"duration": report.Duration.String(),
	})
	return report, nil
}

// RunFolders groups the subdirectories of every root by name, computes the
// statistics of each member and ranks the members of each group.
func (e *Engine) RunFolders(ctx context.Context, req FolderRequest) (*models.FolderScanReport, error) {
	if len(req.Roots) == 0 {
		return nil, &models.ValidationError{Field: "roots", Message: "at least one library path is required"}
	}

	mode := req.Mode
	if mode == "" {
		mode = models.MatchExact
	}
	if mode != models.MatchExact && mode != models.MatchFuzzy {
		return nil, &models.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown match mode %q", mode)}
	}

	threshold := clampRatio(req.Threshold)
	report := &models.FolderScanReport{
		ID:        uuid.New().String(),
		Roots:     req.Roots,
		Mode:      mode,
		Threshold: threshold,
		StartTime: time.Now(),
		Status:    models.StatusSuccess,
	}

	e.logger.Info(ctx, "Starting folder scan", logging.Fields{
		"scan_id":   report.ID,
		"roots":     len(req.Roots),
		"mode":      string(mode),
		"threshold": threshold,
	})

	e.emit(ctx, models.ProgressUpdate{Type: models.ProgressPhase, Phase: PhaseGroup})
	groups := e.grouper.Run(ctx, req.Roots, mode, threshold)

	var members []string
	for _, g := range groups {
		members = append(members, g.Folders...)
	}

	e.emit(ctx, models.ProgressUpdate{Type: models.ProgressPhase, Phase: PhaseStats, Total: len(members)})
	stats, err := e.stats.collect(ctx, members, func(done int, folder string) {
		e.emit(ctx, models.ProgressUpdate{
			Type:    models.ProgressFolderDone,
			Phase:   PhaseStats,
			Path:    folder,
			Current: done,
			Total:   len(members),
		})
	})
	if err != nil {
		report.Status = models.StatusFailed
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
		e.logger.Error(ctx, "Folder statistics failed", err, logging.Fields{"scan_id": report.ID})
		return report, fmt.Errorf("failed to start stats pool: %w", err)
	}

	e.emit(ctx, models.ProgressUpdate{Type: models.ProgressPhase, Phase: PhaseRank, Total: len(groups)})
	offset := 0
	for _, g := range groups {
		n := len(g.Folders)
		report.Groups = append(report.Groups, rankFolders(g, stats[offset:offset+n], req.Tags))
		offset += n
	}

	e.finish(ctx, &report.Status, &report.StartTime, &report.EndTime, &report.Duration)
	e.logger.Info(ctx, "Folder scan finished", logging.Fields{
		"scan_id":  report.ID,
		"groups":   len(report.Groups),
		"folders":  report.TotalFolders(),
		"status":   string(report.Status),
		"duration": report.Duration.String(),
	})
	return report, nil
}

// finish stamps timing, marks cancelled scans and emits the completion event
func (e *Engine) finish(ctx context.Context, status *models.ScanStatus, start, end *time.Time, dur *time.Duration) {
	*end = time.Now()
	*dur = end.Sub(*start)
	if ctx.Err() != nil {
		*status = models.StatusCancelled
		e.logger.Warn(ctx, "Scan cancelled, results are partial", nil)
		return
	}
	e.emit(ctx, models.ProgressUpdate{Type: models.ProgressScanComplete})
}

// emit sends a progress event unless nobody listens or ctx is done
func (e *Engine) emit(ctx context.Context, u models.ProgressUpdate) {
	if e.progress == nil {
		return
	}
	select {
	case e.progress <- u:
	case <-ctx.Done():
	}
}

func rankFiles(g models.FileGroup) models.RankedFileGroup {
	ranked := models.RankedFileGroup{Folder: g.Folder, Files: make([]models.RankedFile, len(g.Files))}
	candidates := make([]quality.Candidate, len(g.Files))

	for i, f := range g.Files {
		score := quality.ScoreFile(f.FullPath, f.Size)
		ranked.Files[i] = models.RankedFile{VideoFile: f, Score: score}
		candidates[i] = quality.Candidate{Name: f.Filename, Total: score.TotalScore}
	}

	if best, ok := quality.Best(candidates); ok {
		ranked.Files[best].Best = true
	}
	return ranked
}

func rankFolders(g models.FolderGroup, stats []models.FolderStats, tags TagSet) models.RankedFolderGroup {
	ranked := models.RankedFolderGroup{ID: g.ID, Key: g.Key, Folders: make([]models.RankedFolder, len(g.Folders))}
	candidates := make([]quality.Candidate, len(g.Folders))

	for i, path := range g.Folders {
		score := quality.ScoreFolder(path, stats[i])
		ranked.Folders[i] = models.RankedFolder{
			Path:   path,
			Stats:  stats[i],
			Score:  score,
			Tagged: tags != nil && tags.Contains(path),
		}
		candidates[i] = quality.Candidate{Name: filepath.Base(path), Total: score.TotalScore}
	}

	if best, ok := quality.Best(candidates); ok {
		ranked.Folders[best].Best = true
	}
	return ranked
}

// clampRatio bounds a fuzzy threshold already expressed as a ratio
func clampRatio(t float64) float64 {
	switch {
	case t == 0:
		return group.ClampThreshold(group.DefaultThresholdPercent)
	case t < group.MinThreshold:
		return group.MinThreshold
	case t > group.MaxThreshold:
		return group.MaxThreshold
	}
	return t
}
