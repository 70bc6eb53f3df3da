package group

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/scanner"
	"github.com/sdejongh/vidupe/pkg/storage"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
	}
}

func newGrouper() *Grouper {
	s := scanner.New(storage.NewLocal(), logging.NewNullLogger(), scanner.Options{})
	return New(s, logging.NewNullLogger())
}

func TestClampThreshold(t *testing.T) {
	tests := []struct {
		percent float64
		want    float64
	}{
		{80, 0.8},
		{50, 0.5},
		{100, 1.0},
		{10, 0.5},
		{0, 0.5},
		{150, 1.0},
		{65, 0.65},
	}
	for _, tt := range tests {
		if got := ClampThreshold(tt.percent); got != tt.want {
			t.Errorf("ClampThreshold(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestExact(t *testing.T) {
	lib1 := t.TempDir()
	lib2 := t.TempDir()
	mkdirs(t, lib1, "Movie (2020) 1080p", "Other Movie", "Heat 1995")
	mkdirs(t, lib2, "Movie [2019] 720p BluRay", "Heat (1995) DVDRip")
	// Regular files are never candidates
	os.WriteFile(filepath.Join(lib2, "Other Movie"), []byte("x"), 0644)

	groups := newGrouper().Exact(context.Background(), []string{lib1, lib2})
	if len(groups) != 2 {
		t.Fatalf("Exact() returned %d groups, want 2: %+v", len(groups), groups)
	}

	// Ordered by key
	heat, movie := groups[0], groups[1]
	if heat.Key != "heat" || movie.Key != "movie" {
		t.Fatalf("keys = %q, %q; want heat, movie", heat.Key, movie.Key)
	}
	if movie.ID != "movie" {
		t.Errorf("ID = %q, want movie", movie.ID)
	}

	want := []string{
		filepath.Join(lib1, "Movie (2020) 1080p"),
		filepath.Join(lib2, "Movie [2019] 720p BluRay"),
	}
	if len(movie.Folders) != len(want) {
		t.Fatalf("movie group = %v, want %v", movie.Folders, want)
	}
	for i := range want {
		if movie.Folders[i] != want[i] {
			t.Errorf("Folders[%d] = %s, want %s", i, movie.Folders[i], want[i])
		}
	}

	for _, g := range groups {
		for _, f := range g.Folders {
			if filepath.Base(f) == "Other Movie" {
				t.Error("Other Movie must not be grouped")
			}
		}
	}
}

func TestExact_SkipsEmptyKeys(t *testing.T) {
	lib := t.TempDir()
	mkdirs(t, lib, "[2020] 1080p", "(1999) x264", "Solo")

	if groups := newGrouper().Exact(context.Background(), []string{lib}); len(groups) != 0 {
		t.Errorf("Exact() = %+v, want no groups", groups)
	}
}

func TestExact_OverlappingRoots(t *testing.T) {
	lib := t.TempDir()
	mkdirs(t, lib, "Alien", "Aliens")

	// The same root twice must not pair a folder with itself
	if groups := newGrouper().Exact(context.Background(), []string{lib, lib}); len(groups) != 0 {
		t.Errorf("Exact() = %+v, want no groups", groups)
	}
}

func TestExact_InvalidRoots(t *testing.T) {
	lib := t.TempDir()
	mkdirs(t, lib, "Movie 1080p", "Movie 720p")
	file := filepath.Join(lib, "file.txt")
	os.WriteFile(file, []byte("x"), 0644)

	roots := []string{filepath.Join(lib, "missing"), file, lib}
	groups := newGrouper().Exact(context.Background(), roots)
	if len(groups) != 1 || len(groups[0].Folders) != 2 {
		t.Errorf("Exact() = %+v, want one group of 2", groups)
	}
}

func TestFuzzy(t *testing.T) {
	t.Run("SequelBelowThreshold", func(t *testing.T) {
		lib := t.TempDir()
		mkdirs(t, lib, "The Matrix", "The Matrix Reloaded")

		if groups := newGrouper().Fuzzy(context.Background(), []string{lib}, 0.8); len(groups) != 0 {
			t.Errorf("Fuzzy() = %+v, want no groups", groups)
		}
	})

	t.Run("WhitespaceVariant", func(t *testing.T) {
		lib := t.TempDir()
		mkdirs(t, lib, "The Matrix", "The  Matrix")

		groups := newGrouper().Fuzzy(context.Background(), []string{lib}, 0.8)
		if len(groups) != 1 || len(groups[0].Folders) != 2 {
			t.Fatalf("Fuzzy() = %+v, want one group of 2", groups)
		}
		if groups[0].ID != "group-1" {
			t.Errorf("ID = %q, want group-1", groups[0].ID)
		}
	})

	t.Run("CrossLibrary", func(t *testing.T) {
		lib1 := t.TempDir()
		lib2 := t.TempDir()
		mkdirs(t, lib1, "Alien (1979)", "Heat")
		mkdirs(t, lib2, "Aliens 1986 1080p")

		groups := newGrouper().Fuzzy(context.Background(), []string{lib1, lib2}, 0.8)
		if len(groups) != 1 {
			t.Fatalf("Fuzzy() = %+v, want 1 group", groups)
		}
		g := groups[0]
		if g.Key != "alien" {
			t.Errorf("Key = %q, want alien", g.Key)
		}
		if g.Folders[0] != filepath.Join(lib1, "Alien (1979)") || g.Folders[1] != filepath.Join(lib2, "Aliens 1986 1080p") {
			t.Errorf("Folders = %v", g.Folders)
		}
	})

	t.Run("SeedOnlyMembership", func(t *testing.T) {
		lib := t.TempDir()
		// abcdefgh~abcdefghij = 0.89, abcdefghij~cdefghijkl = 0.80,
		// abcdefgh~cdefghijkl = 0.67
		mkdirs(t, lib, "abcdefgh", "abcdefghij", "cdefghijkl")

		groups := newGrouper().Fuzzy(context.Background(), []string{lib}, 0.8)
		if len(groups) != 1 {
			t.Fatalf("Fuzzy() = %+v, want 1 group", groups)
		}
		if n := len(groups[0].Folders); n != 2 {
			t.Errorf("group has %d folders, want 2 (the third is only similar to a non-seed member)", n)
		}
		for _, f := range groups[0].Folders {
			if filepath.Base(f) == "cdefghijkl" {
				t.Error("cdefghijkl must not join the seed's group")
			}
		}
	})

	t.Run("DiscoveryOrderIDs", func(t *testing.T) {
		lib := t.TempDir()
		mkdirs(t, lib, "Alien", "Aliens", "Heat", "Heat 1995 720p", "Solo")

		groups := newGrouper().Fuzzy(context.Background(), []string{lib}, 0.8)
		if len(groups) != 2 {
			t.Fatalf("Fuzzy() = %+v, want 2 groups", groups)
		}
		if groups[0].ID != "group-1" || groups[1].ID != "group-2" {
			t.Errorf("IDs = %q, %q", groups[0].ID, groups[1].ID)
		}
		if groups[0].Key != "alien" || groups[1].Key != "heat" {
			t.Errorf("keys = %q, %q", groups[0].Key, groups[1].Key)
		}
	})
}

func TestRun(t *testing.T) {
	lib := t.TempDir()
	mkdirs(t, lib, "Alien", "Aliens")
	g := newGrouper()
	ctx := context.Background()

	if groups := g.Run(ctx, []string{lib}, models.MatchExact, 0.8); len(groups) != 0 {
		t.Errorf("exact Run() = %+v, want none", groups)
	}
	if groups := g.Run(ctx, []string{lib}, models.MatchFuzzy, 0.8); len(groups) != 1 {
		t.Errorf("fuzzy Run() = %+v, want one", groups)
	}
}
