package models

import (
	"time"
)

// RankedFile is a video file with its quality score
type RankedFile struct {
	VideoFile
	Score QualityScore
	Best  bool
}

// RankedFileGroup is a FileGroup with every member scored
type RankedFileGroup struct {
	Folder string
	Files  []RankedFile
}

// RankedFolder is a member of a duplicate folder group with stats and score
type RankedFolder struct {
	Path   string
	Stats  FolderStats
	Score  QualityScore
	Best   bool
	Tagged bool
}

// RankedFolderGroup is a FolderGroup with every member scored
type RankedFolderGroup struct {
	ID      string
	Key     string
	Folders []RankedFolder
}

// DisplayName returns "Group: <first folder> (N folders)"
func (g RankedFolderGroup) DisplayName() string {
	if len(g.Folders) == 0 {
		return "Group: (empty)"
	}
	return "Group: " + baseName(g.Folders[0].Path) + " (" + itoa(len(g.Folders)) + " folders)"
}

// FileScanReport is the result of scanning a library for multi-file movie folders
type FileScanReport struct {
	ID        string
	Root      string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Groups    []RankedFileGroup
	Status    ScanStatus
}

// FolderScanReport is the result of a duplicate-folder scan
type FolderScanReport struct {
	ID        string
	Roots     []string
	Mode      MatchMode
	Threshold float64
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Groups    []RankedFolderGroup
	Status    ScanStatus
}

// TotalFolders returns the number of folders across all groups
func (r *FolderScanReport) TotalFolders() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Folders)
	}
	return n
}

// ScanStatus represents the overall result
type ScanStatus string

const (
	// StatusSuccess indicates the scan ran to completion
	StatusSuccess ScanStatus = "success"
	// StatusPartial indicates some steps failed
	StatusPartial ScanStatus = "partial"
	// StatusFailed indicates the scan failed
	StatusFailed ScanStatus = "failed"
	// StatusCancelled indicates the scan was cancelled
	StatusCancelled ScanStatus = "cancelled"
)

// ExitCode returns the appropriate exit code for the scan status
func (s ScanStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
