// Package fileops deletes files on request and totals their sizes.
package fileops

import (
	"context"
	"errors"
	"io/fs"

	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/storage"
)

// Deleter removes files through a storage backend
type Deleter struct {
	backend storage.Backend
	logger  logging.Logger
}

// NewDeleter creates a deleter
func NewDeleter(backend storage.Backend, logger logging.Logger) *Deleter {
	return &Deleter{
		backend: backend,
		logger:  logging.OrNull(logger).WithFields(logging.Fields{"component": "fileops"}),
	}
}

// Delete attempts every path independently and reports one outcome per path.
// Directories are never removed; they report not_found like missing files.
func (d *Deleter) Delete(ctx context.Context, paths []string) map[string]models.DeleteOutcome {
	results := make(map[string]models.DeleteOutcome, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			results[path] = models.DeleteOutcome{Path: path, Status: models.DeleteError, Message: err.Error()}
			continue
		}

		outcome := d.deleteOne(ctx, path)
		results[path] = outcome

		if outcome.OK() {
			d.logger.Info(ctx, "Deleted file", logging.Fields{"path": path})
		} else {
			d.logger.Warn(ctx, "Delete failed", logging.Fields{
				"path":   path,
				"status": string(outcome.Status),
				"error":  outcome.Message,
			})
		}
	}
	return results
}

func (d *Deleter) deleteOne(ctx context.Context, path string) models.DeleteOutcome {
	err := d.backend.Remove(ctx, path)
	switch {
	case err == nil:
		return models.DeleteOutcome{Path: path, Status: models.DeleteSuccess}
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, storage.ErrNotRegular):
		return models.DeleteOutcome{Path: path, Status: models.DeleteNotFound, Message: "File not found"}
	case errors.Is(err, fs.ErrPermission):
		return models.DeleteOutcome{Path: path, Status: models.DeletePermissionDenied, Message: "Permission denied"}
	default:
		return models.DeleteOutcome{Path: path, Status: models.DeleteError, Message: err.Error()}
	}
}

// TotalSize sums the sizes of the regular files among paths, skipping
// anything that cannot be read.
func TotalSize(ctx context.Context, backend storage.Backend, paths []string) int64 {
	var total int64
	for _, path := range paths {
		info, err := backend.Stat(ctx, path)
		if err != nil || info.IsDir {
			continue
		}
		total += info.Size
	}
	return total
}
