// Package scanner walks media folders: it finds video files, reports movie
// folders that hold more than one of them and aggregates folder statistics.
//
// Nothing in this package returns I/O errors. Entries that cannot be read are
// logged at debug level and skipped; a root that is missing or not a
// directory simply yields nothing.
package scanner

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"

	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/storage"
)

// DefaultExtensions are the recognized video extensions
var DefaultExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".m4v"}

// MinLibraryVideos is the number of videos that flags a movie folder
const MinLibraryVideos = 2

// Options configures a Scanner
type Options struct {
	// Extensions overrides DefaultExtensions when non-empty
	Extensions []string
	// Exclude holds glob patterns of entries to skip, relative to the walked folder
	Exclude []string
}

// Scanner enumerates folders through a storage backend
type Scanner struct {
	backend    storage.Backend
	logger     logging.Logger
	extensions map[string]bool
	exclude    []string
}

// New creates a scanner
func New(backend storage.Backend, logger logging.Logger, opts Options) *Scanner {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}

	return &Scanner{
		backend:    backend,
		logger:     logging.OrNull(logger).WithFields(logging.Fields{"component": "scanner"}),
		extensions: set,
		exclude:    opts.Exclude,
	}
}

// Backend returns the storage backend the scanner reads through
func (s *Scanner) Backend() storage.Backend {
	return s.backend
}

// IsVideo reports whether name carries a recognized video extension
func (s *Scanner) IsVideo(name string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// FindVideos returns every video file under folder at any depth, ordered by
// filename then path. A cancelled ctx stops the walk and returns what was found.
func (s *Scanner) FindVideos(ctx context.Context, folder string) []models.VideoFile {
	var videos []models.VideoFile

	s.walk(ctx, folder, func(info storage.FileInfo) {
		if !s.IsVideo(info.Name) {
			return
		}
		videos = append(videos, models.VideoFile{
			Filename: info.Name,
			FullPath: info.Path,
			Size:     info.Size,
			MIME:     mimeOf(info.Name),
		})
	})

	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Filename != videos[j].Filename {
			return videos[i].Filename < videos[j].Filename
		}
		return videos[i].FullPath < videos[j].FullPath
	})
	return videos
}

// FolderFunc is called after each library folder has been walked
type FolderFunc func(done, total int, folder string, videos int)

// ScanLibrary walks each immediate subdirectory of root and returns those
// holding at least two video files, keyed by folder path.
func (s *Scanner) ScanLibrary(ctx context.Context, root string) map[string][]models.VideoFile {
	result := make(map[string][]models.VideoFile)
	for _, g := range s.LibraryGroups(ctx, root, nil) {
		result[g.Folder] = g.Files
	}
	return result
}

// LibraryGroups is ScanLibrary returning groups ordered by folder path.
// onFolder, when set, is called once per subdirectory walked.
func (s *Scanner) LibraryGroups(ctx context.Context, root string, onFolder FolderFunc) []models.FileGroup {
	dirs := s.Subdirs(ctx, root)

	var groups []models.FileGroup
	for i, dir := range dirs {
		if ctx.Err() != nil {
			break
		}
		videos := s.FindVideos(ctx, dir.Path)
		if onFolder != nil {
			onFolder(i+1, len(dirs), dir.Path, len(videos))
		}
		if len(videos) >= MinLibraryVideos {
			groups = append(groups, models.FileGroup{Folder: dir.Path, Files: videos})
		}
	}
	return groups
}

// Subdirs returns the immediate, non-excluded subdirectories of root as
// absolute paths. Missing or unreadable roots yield nothing.
func (s *Scanner) Subdirs(ctx context.Context, root string) []storage.FileInfo {
	root = absPath(root)
	if !storage.IsDir(ctx, s.backend, root) {
		s.logger.Debug(ctx, "root is not a directory", logging.Fields{"path": root})
		return nil
	}

	dirs, err := s.backend.ListDirs(ctx, root)
	if err != nil {
		s.logger.Debug(ctx, "skipping unreadable root", logging.Fields{"path": root, "error": err.Error()})
		return nil
	}

	kept := dirs[:0]
	for _, d := range dirs {
		if shouldExclude(d.Name, s.exclude) {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// Stats counts every file and every video file under folder and sums their sizes
func (s *Scanner) Stats(ctx context.Context, folder string) models.FolderStats {
	var stats models.FolderStats

	s.walk(ctx, folder, func(info storage.FileInfo) {
		stats.TotalFiles++
		stats.TotalSize += info.Size
		if s.IsVideo(info.Name) {
			stats.VideoFiles++
			stats.VideoSize += info.Size
		}
	})
	return stats
}

// Contents lists every file under folder, ordered by relative path
func (s *Scanner) Contents(ctx context.Context, folder string) []models.FileEntry {
	folder = absPath(folder)
	var entries []models.FileEntry

	s.walk(ctx, folder, func(info storage.FileInfo) {
		rel, err := filepath.Rel(folder, info.Path)
		if err != nil {
			rel = info.Name
		}
		entries = append(entries, models.FileEntry{
			RelativePath: rel,
			AbsolutePath: info.Path,
			Size:         info.Size,
			ModTime:      info.ModTime,
		})
	})

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelativePath < entries[j].RelativePath })
	return entries
}

// walk calls visit for every accessible, non-excluded regular file under folder
func (s *Scanner) walk(ctx context.Context, folder string, visit func(storage.FileInfo)) {
	folder = absPath(folder)
	if !storage.IsDir(ctx, s.backend, folder) {
		return
	}

	err := s.backend.Walk(ctx, folder, func(info storage.FileInfo, err error) error {
		if err != nil {
			s.logger.Debug(ctx, "skipping inaccessible entry", logging.Fields{"path": info.Path, "error": err.Error()})
			return nil
		}

		if info.Path != folder && len(s.exclude) > 0 {
			rel, rerr := filepath.Rel(folder, info.Path)
			if rerr == nil && shouldExclude(rel, s.exclude) {
				if info.IsDir {
					return storage.SkipDir
				}
				return nil
			}
		}

		if !info.IsDir {
			visit(info)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug(ctx, "walk stopped", logging.Fields{"path": folder, "error": err.Error()})
	}
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func mimeOf(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return filetype.GetType(ext).MIME.Value
}
