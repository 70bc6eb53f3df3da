package storage

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"
)

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// SkipDir can be returned by a WalkFunc to skip the directory being visited
var SkipDir = filepath.SkipDir

// WalkFunc is called for every entry under the walked root, directories included.
// When err is non-nil the entry could not be accessed and info only carries Path;
// returning nil skips it and the walk continues.
type WalkFunc func(info FileInfo, err error) error

// Backend defines the filesystem operations the scanner needs.
// Implementations never follow writes: the only mutating call is Remove.
type Backend interface {
	// Walk visits every entry under root recursively
	Walk(ctx context.Context, root string, fn WalkFunc) error

	// ListDirs returns the immediate subdirectories of path, sorted by name
	ListDirs(ctx context.Context, path string) ([]FileInfo, error)

	// List returns the immediate entries of path, sorted by name
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Remove deletes a single regular file
	Remove(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}

// IsDir reports whether path exists and is a directory
func IsDir(ctx context.Context, b Backend, path string) bool {
	info, err := b.Stat(ctx, path)
	return err == nil && info.IsDir
}

func fromFileInfo(path string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}
