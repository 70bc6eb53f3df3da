package models

// ProgressType identifies a progress event
type ProgressType string

const (
	ProgressPhase        ProgressType = "phase"
	ProgressFolderDone   ProgressType = "folder_done"
	ProgressScanComplete ProgressType = "scan_complete"
)

// ProgressUpdate is a snapshot emitted while a scan runs
type ProgressUpdate struct {
	Type    ProgressType
	Phase   string
	Path    string
	Current int
	Total   int
}

// DeleteStatus is the outcome category of a single deletion
type DeleteStatus string

const (
	DeleteSuccess          DeleteStatus = "success"
	DeleteNotFound         DeleteStatus = "not_found"
	DeletePermissionDenied DeleteStatus = "permission_denied"
	DeleteError            DeleteStatus = "error"
)

// DeleteOutcome reports what happened to one path
type DeleteOutcome struct {
	Path    string
	Status  DeleteStatus
	Message string
}

// OK reports whether the file was removed
func (o DeleteOutcome) OK() bool {
	return o.Status == DeleteSuccess
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
