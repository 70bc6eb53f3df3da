// Package tags persists the set of folders an operator has tagged for
// retention.
package tags

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/sdejongh/vidupe/pkg/logging"
)

// document is the on-disk encoding of the tag store
type document struct {
	TaggedFolders []string            `json:"tagged_folders"`
	TagMetadata   map[string]metadata `json:"tag_metadata"`
}

type metadata struct {
	TaggedDate string `json:"tagged_date"`
}

// Dates are written as RFC 3339. Stores written by older tools carry naive
// local timestamps such as 2024-05-01T12:00:00.123456.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// parseDate returns the zero time when value matches no known layout
func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// SaveError reports that the tag store could not be written. The change
// that triggered it has not been applied.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("could not save tags to %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// DefaultPath returns the default location of the tag store
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".vidupe", "folder_tags.json")
}

// Store is the set of tagged folder paths with the time each was tagged.
// Mutations are written through immediately.
type Store struct {
	fs     afero.Fs
	path   string
	logger logging.Logger
	now    func() time.Time

	mu     sync.RWMutex
	tagged map[string]time.Time
}

// Open loads the store at path from the OS filesystem
func Open(ctx context.Context, path string, logger logging.Logger) *Store {
	return OpenFs(ctx, afero.NewOsFs(), path, logger)
}

// OpenFs loads the store at path from fsys. A missing, unreadable or corrupt
// store opens empty.
func OpenFs(ctx context.Context, fsys afero.Fs, path string, logger logging.Logger) *Store {
	s := &Store{
		fs:     fsys,
		path:   path,
		logger: logging.OrNull(logger).WithFields(logging.Fields{"component": "tags"}),
		now:    time.Now,
		tagged: make(map[string]time.Time),
	}
	s.load(ctx)
	return s
}

// Path returns the store location
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load(ctx context.Context) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn(ctx, "tag store unreadable, starting empty", logging.Fields{"path": s.path, "error": err.Error()})
		}
		return
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn(ctx, "tag store corrupt, starting empty", logging.Fields{"path": s.path, "error": err.Error()})
		return
	}

	for _, p := range doc.TaggedFolders {
		raw := doc.TagMetadata[p].TaggedDate
		t, ok := parseDate(raw)
		if !ok && raw != "" {
			s.logger.Debug(ctx, "unrecognized tag date", logging.Fields{"path": p, "tagged_date": raw})
		}
		s.tagged[p] = t
	}
	s.logger.Debug(ctx, "tag store loaded", logging.Fields{"path": s.path, "tagged": len(s.tagged)})
}

// Contains reports whether path is tagged
func (s *Store) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tagged[path]
	return ok
}

// Len returns the number of tagged folders
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tagged)
}

// Paths returns the tagged folders in sorted order
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.tagged)
}

// TaggedAt returns when path was last tagged
func (s *Store) TaggedAt(path string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tagged[path]
	return t, ok
}

// Add tags paths. Paths already tagged get a fresh timestamp.
func (s *Store) Add(ctx context.Context, paths ...string) error {
	return s.update(ctx, func(next map[string]time.Time) {
		now := s.now()
		for _, p := range paths {
			next[p] = now
		}
	})
}

// Remove untags paths. Untagged paths are ignored.
func (s *Store) Remove(ctx context.Context, paths ...string) error {
	return s.update(ctx, func(next map[string]time.Time) {
		for _, p := range paths {
			delete(next, p)
		}
	})
}

// Clear untags everything and deletes the store file
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return &SaveError{Path: s.path, Err: err}
	}
	s.tagged = make(map[string]time.Time)
	s.logger.Info(ctx, "Cleared all tags", logging.Fields{"path": s.path})
	return nil
}

// update applies fn to a copy of the set and commits it only once saved
func (s *Store) update(ctx context.Context, fn func(map[string]time.Time)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]time.Time, len(s.tagged))
	for k, v := range s.tagged {
		next[k] = v
	}
	fn(next)

	if err := s.save(next); err != nil {
		s.logger.Error(ctx, "Failed to save tags", err, logging.Fields{"path": s.path})
		return err
	}
	s.tagged = next
	return nil
}

// save writes set to the store through a temp file and rename
func (s *Store) save(set map[string]time.Time) error {
	doc := document{
		TaggedFolders: sortedKeys(set),
		TagMetadata:   make(map[string]metadata, len(set)),
	}
	for p, t := range set {
		doc.TagMetadata[p] = metadata{TaggedDate: formatDate(t)}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}

	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0644); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		s.fs.Remove(tmpPath)
		return &SaveError{Path: s.path, Err: err}
	}
	return nil
}

func sortedKeys(m map[string]time.Time) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
