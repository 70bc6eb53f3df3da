package models

import (
	"time"
)

// VideoFile is a snapshot of one video file taken during a walk
type VideoFile struct {
	// Filename is the base name of the file
	Filename string

	// FullPath is the absolute path on the filesystem
	FullPath string

	// Size in bytes
	Size int64

	// MIME is the media type derived from the extension (may be empty)
	MIME string
}

// FolderStats holds aggregate counts for a folder tree
type FolderStats struct {
	TotalFiles int
	VideoFiles int
	TotalSize  int64
	VideoSize  int64
}

// IsZero reports whether nothing was counted
func (s FolderStats) IsZero() bool {
	return s == FolderStats{}
}

// FileEntry is a generic file found under a folder, used for content listings
type FileEntry struct {
	// RelativePath is the path relative to the listed folder
	RelativePath string

	// AbsolutePath is the full path on the filesystem
	AbsolutePath string

	Size    int64
	ModTime time.Time
}
