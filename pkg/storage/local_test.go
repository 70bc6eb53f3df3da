package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func memBackend(t *testing.T, files map[string]string) *Local {
	t.Helper()
	mem := afero.NewMemMapFs()
	for path, content := range files {
		if err := mem.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := afero.WriteFile(mem, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	return NewFromFs(mem)
}

// TestLocalWalk tests the Walk method
func TestLocalWalk(t *testing.T) {
	backend := memBackend(t, map[string]string{
		"/lib/a/movie.mkv":      "12345",
		"/lib/a/extras/x.mp4":   "12",
		"/lib/b/readme.txt":     "hello",
		"/lib/b/deep/er/z.avi":  "1",
	})
	ctx := context.Background()

	t.Run("VisitsAllFiles", func(t *testing.T) {
		var files []string
		var dirs int
		err := backend.Walk(ctx, "/lib", func(info FileInfo, err error) error {
			if err != nil {
				t.Fatalf("unexpected walk error: %v", err)
			}
			if info.IsDir {
				dirs++
				return nil
			}
			files = append(files, info.Path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if len(files) != 4 {
			t.Errorf("Walk() found %d files, expected 4: %v", len(files), files)
		}
		if dirs < 5 {
			t.Errorf("Walk() found %d dirs, expected at least 5", dirs)
		}
	})

	t.Run("SkipDir", func(t *testing.T) {
		var files []string
		err := backend.Walk(ctx, "/lib", func(info FileInfo, err error) error {
			if info.IsDir && info.Name == "b" {
				return SkipDir
			}
			if !info.IsDir {
				files = append(files, info.Name)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		sort.Strings(files)
		if len(files) != 2 || files[0] != "movie.mkv" || files[1] != "x.mp4" {
			t.Errorf("Walk() with SkipDir = %v", files)
		}
	})

	t.Run("MissingRootReportsError", func(t *testing.T) {
		var gotErr error
		err := backend.Walk(ctx, "/nope", func(info FileInfo, err error) error {
			gotErr = err
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if gotErr == nil {
			t.Error("WalkFunc should receive the root access error")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := backend.Walk(cctx, "/lib", func(info FileInfo, err error) error { return nil })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Walk() error = %v, want context.Canceled", err)
		}
	})
}

// TestLocalListDirs tests the ListDirs method
func TestLocalListDirs(t *testing.T) {
	backend := memBackend(t, map[string]string{
		"/lib/Zeta/a.mkv":  "1",
		"/lib/Alpha/b.mkv": "1",
		"/lib/loose.mkv":   "1",
	})
	ctx := context.Background()

	dirs, err := backend.ListDirs(ctx, "/lib")
	if err != nil {
		t.Fatalf("ListDirs() error = %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("ListDirs() returned %d entries, expected 2", len(dirs))
	}
	if dirs[0].Name != "Alpha" || dirs[1].Name != "Zeta" {
		t.Errorf("ListDirs() order = %s, %s", dirs[0].Name, dirs[1].Name)
	}
	if dirs[0].Path != filepath.Join("/lib", "Alpha") {
		t.Errorf("ListDirs() path = %s", dirs[0].Path)
	}

	if _, err := backend.ListDirs(ctx, "/missing"); err == nil {
		t.Error("ListDirs() should fail for missing path")
	}
}

// TestLocalStat tests the Stat method
func TestLocalStat(t *testing.T) {
	backend := memBackend(t, map[string]string{"/lib/a/movie.mkv": "12345"})
	ctx := context.Background()

	info, err := backend.Stat(ctx, "/lib/a/movie.mkv")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size != 5 || info.IsDir {
		t.Errorf("Stat() = %+v", info)
	}
	if !IsDir(ctx, backend, "/lib/a") {
		t.Error("IsDir() should be true for directory")
	}
	if IsDir(ctx, backend, "/lib/a/movie.mkv") {
		t.Error("IsDir() should be false for file")
	}
	if IsDir(ctx, backend, "/lib/missing") {
		t.Error("IsDir() should be false for missing path")
	}
}

// TestLocalRemove tests the Remove method
func TestLocalRemove(t *testing.T) {
	backend := memBackend(t, map[string]string{"/lib/a/movie.mkv": "12345"})
	ctx := context.Background()

	t.Run("RemovesFile", func(t *testing.T) {
		if err := backend.Remove(ctx, "/lib/a/movie.mkv"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := backend.Stat(ctx, "/lib/a/movie.mkv"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("file should be gone, Stat() error = %v", err)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		err := backend.Remove(ctx, "/lib/a/movie.mkv")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove() error = %v, want not exist", err)
		}
	})

	t.Run("RefusesDirectory", func(t *testing.T) {
		err := backend.Remove(ctx, "/lib/a")
		if !errors.Is(err, ErrNotRegular) {
			t.Errorf("Remove() error = %v, want ErrNotRegular", err)
		}
	})
}

// TestLocalOsFs runs the backend against the real filesystem
func TestLocalOsFs(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, "movie"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	target := filepath.Join(tempDir, "movie", "a.mkv")
	if err := os.WriteFile(target, []byte("data"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(tempDir, "movie", "link.mkv")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	backend := NewLocal()
	defer backend.Close()

	var sizes []int64
	err := backend.Walk(context.Background(), tempDir, func(info FileInfo, err error) error {
		if err == nil && !info.IsDir {
			sizes = append(sizes, info.Size)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(sizes) != 2 || sizes[0] != 4 || sizes[1] != 4 {
		t.Errorf("Walk() sizes = %v, expected symlink resolved to target size", sizes)
	}
}

func TestLocalBackend_WalkSymlinkedRoot(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, "real", "sub"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "real", "sub", "a.mkv"), []byte("data"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	// Relative link target
	link := filepath.Join(tempDir, "Movie")
	if err := os.Symlink("real", link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	backend := NewLocal()
	defer backend.Close()

	var paths []string
	err := backend.Walk(context.Background(), link, func(info FileInfo, err error) error {
		if err == nil && !info.IsDir {
			paths = append(paths, info.Path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if want := filepath.Join(link, "sub", "a.mkv"); len(paths) != 1 || paths[0] != want {
		t.Errorf("Walk() paths = %v, want [%s]", paths, want)
	}
}
