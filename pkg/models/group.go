package models

// MatchMode selects how duplicate folders are grouped
type MatchMode string

const (
	// MatchExact groups folders sharing an identical normalized name
	MatchExact MatchMode = "exact"
	// MatchFuzzy groups folders whose normalized names are similar to a seed
	MatchFuzzy MatchMode = "fuzzy"
)

// FileGroup is a movie folder holding two or more video files
type FileGroup struct {
	// Folder is the movie folder path
	Folder string

	// Files are ordered by filename
	Files []VideoFile
}

// FolderGroup is a set of folders believed to hold the same content
type FolderGroup struct {
	// ID is the normalized name in exact mode, or a discovery-order
	// identifier in fuzzy mode. Fuzzy IDs are not stable across runs.
	ID string

	// Key is the normalized name shared by (exact) or seeding (fuzzy) the group
	Key string

	// Folders are the member folder paths
	Folders []string
}
