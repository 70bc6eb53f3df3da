package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotRegular is returned by Remove for directories and special files
var ErrNotRegular = errors.New("not a regular file")

// Local is a filesystem backend on top of an afero.Fs
type Local struct {
	fs afero.Fs
}

// NewLocal creates a backend on the operating system filesystem
func NewLocal() *Local {
	return &Local{fs: afero.NewOsFs()}
}

// NewFromFs creates a backend on an arbitrary afero filesystem
func NewFromFs(fsys afero.Fs) *Local {
	return &Local{fs: fsys}
}

// Fs returns the underlying filesystem
func (l *Local) Fs() afero.Fs {
	return l.fs
}

// maxLinkHops bounds symlink chains followed when resolving a walk root
const maxLinkHops = 40

// Walk visits every entry under root. Inaccessible entries are handed to fn
// with a non-nil error instead of aborting the walk. A root that is a
// symlink to a directory is walked through its target, with paths reported
// under root.
func (l *Local) Walk(ctx context.Context, root string, fn WalkFunc) error {
	target := l.resolveLink(root)

	return afero.Walk(l.fs, target, func(p string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p = rebase(p, target, root)

		if err != nil {
			return fn(FileInfo{Path: p}, err)
		}

		// Walk uses Lstat; resolve symlinks so linked media counts like the target
		if info.Mode()&os.ModeSymlink != 0 {
			resolved, serr := l.fs.Stat(p)
			if serr != nil {
				return fn(FileInfo{Path: p}, serr)
			}
			fi := fromFileInfo(p, resolved)
			// Linked directories are not descended into
			if fi.IsDir {
				return nil
			}
			return fn(fi, nil)
		}

		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		return fn(fromFileInfo(p, info), nil)
	})
}

// resolveLink follows path while it is a symlink. path is returned unchanged
// when it is not a link or the filesystem cannot read links.
func (l *Local) resolveLink(path string) string {
	lst, ok := l.fs.(afero.Lstater)
	if !ok {
		return path
	}
	lr, ok := l.fs.(afero.LinkReader)
	if !ok {
		return path
	}

	current := path
	for i := 0; i < maxLinkHops; i++ {
		info, lstatCalled, err := lst.LstatIfPossible(current)
		if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return current
		}
		dest, err := lr.ReadlinkIfPossible(current)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(current), dest)
		}
		current = dest
	}
	return path
}

// rebase rewrites p, found under from, as the same entry under to
func rebase(p, from, to string) string {
	if from == to {
		return p
	}
	rel, err := filepath.Rel(from, p)
	if err != nil {
		return p
	}
	return filepath.Join(to, rel)
}

// ListDirs returns the immediate subdirectories of path
func (l *Local) ListDirs(ctx context.Context, path string) ([]FileInfo, error) {
	entries, err := l.List(ctx, path)
	if err != nil {
		return nil, err
	}

	dirs := entries[:0]
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e)
		}
	}
	return dirs, nil
}

// List returns the immediate entries of path
func (l *Local) List(ctx context.Context, path string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		p := filepath.Join(path, info.Name())
		if info.Mode()&os.ModeSymlink != 0 {
			resolved, err := l.fs.Stat(p)
			if err != nil {
				continue
			}
			info = resolved
		}
		entries = append(entries, fromFileInfo(p, info))
	}
	return entries, nil
}

// Stat returns file metadata, following symlinks
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	fi := fromFileInfo(path, info)
	return &fi, nil
}

// Remove deletes a regular file. Directories are refused.
func (l *Local) Remove(ctx context.Context, path string) error {
	info, err := l.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "remove", Path: path, Err: ErrNotRegular}
	}

	if err := l.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
