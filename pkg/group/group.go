// Package group partitions library folders into sets of likely duplicates by
// comparing their normalized names.
package group

import (
	"context"
	"fmt"
	"sort"

	"github.com/sdejongh/vidupe/pkg/logging"
	"github.com/sdejongh/vidupe/pkg/match"
	"github.com/sdejongh/vidupe/pkg/models"
	"github.com/sdejongh/vidupe/pkg/scanner"
)

const (
	// MinThreshold is the lowest similarity accepted in fuzzy mode
	MinThreshold = 0.5
	// MaxThreshold is the highest similarity accepted in fuzzy mode
	MaxThreshold = 1.0
	// DefaultThresholdPercent is the fuzzy threshold used when none is configured
	DefaultThresholdPercent = 80
)

// ClampThreshold converts a percentage to a ratio in [MinThreshold, MaxThreshold]
func ClampThreshold(percent float64) float64 {
	t := percent / 100
	if t < MinThreshold {
		return MinThreshold
	}
	if t > MaxThreshold {
		return MaxThreshold
	}
	return t
}

// candidate is an immediate subdirectory of a root with its comparison key
type candidate struct {
	path string
	key  string
}

// Grouper finds duplicate folders across one or more library roots
type Grouper struct {
	scanner *scanner.Scanner
	logger  logging.Logger
}

// New creates a grouper that enumerates roots through s
func New(s *scanner.Scanner, logger logging.Logger) *Grouper {
	return &Grouper{
		scanner: s,
		logger:  logging.OrNull(logger).WithFields(logging.Fields{"component": "group"}),
	}
}

// Exact buckets the immediate subdirectories of roots by normalized name and
// returns every bucket with two or more folders, ordered by key.
func (g *Grouper) Exact(ctx context.Context, roots []string) []models.FolderGroup {
	buckets := make(map[string][]string)
	var keys []string

	for _, c := range g.candidates(ctx, roots) {
		if _, seen := buckets[c.key]; !seen {
			keys = append(keys, c.key)
		}
		buckets[c.key] = append(buckets[c.key], c.path)
	}

	sort.Strings(keys)
	var groups []models.FolderGroup
	for _, key := range keys {
		folders := buckets[key]
		if len(folders) < 2 {
			continue
		}
		groups = append(groups, models.FolderGroup{ID: key, Key: key, Folders: folders})
	}

	g.logger.Debug(ctx, "exact grouping done", logging.Fields{"groups": len(groups), "keys": len(keys)})
	return groups
}

// Fuzzy groups folders whose normalized name is at least threshold similar to
// a seed. Folders are taken in enumeration order; each unclaimed folder seeds
// a group and claims every later unclaimed folder similar to it. Membership is
// decided against the seed only, so two members need not be similar to each
// other and a folder is never reconsidered once a seed has passed it by.
//
// threshold must already be clamped with ClampThreshold.
func (g *Grouper) Fuzzy(ctx context.Context, roots []string, threshold float64) []models.FolderGroup {
	cands := g.candidates(ctx, roots)
	claimed := make([]bool, len(cands))

	var groups []models.FolderGroup
	for i, seed := range cands {
		if claimed[i] {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		claimed[i] = true
		folders := []string{seed.path}

		for j := i + 1; j < len(cands); j++ {
			if claimed[j] {
				continue
			}
			if match.Similar(seed.key, cands[j].key, threshold) {
				claimed[j] = true
				folders = append(folders, cands[j].path)
			}
		}

		if len(folders) < 2 {
			continue
		}
		groups = append(groups, models.FolderGroup{
			ID:      fmt.Sprintf("group-%d", len(groups)+1),
			Key:     seed.key,
			Folders: folders,
		})
	}

	g.logger.Debug(ctx, "fuzzy grouping done", logging.Fields{
		"groups":    len(groups),
		"folders":   len(cands),
		"threshold": threshold,
	})
	return groups
}

// Run dispatches to Exact or Fuzzy
func (g *Grouper) Run(ctx context.Context, roots []string, mode models.MatchMode, threshold float64) []models.FolderGroup {
	if mode == models.MatchFuzzy {
		return g.Fuzzy(ctx, roots, threshold)
	}
	return g.Exact(ctx, roots)
}

// candidates lists the eligible subdirectories of every root in order. A
// folder reachable through overlapping roots appears once.
func (g *Grouper) candidates(ctx context.Context, roots []string) []candidate {
	seen := make(map[string]bool)
	var out []candidate

	for _, root := range roots {
		for _, dir := range g.scanner.Subdirs(ctx, root) {
			if seen[dir.Path] {
				continue
			}
			seen[dir.Path] = true

			key := match.Normalize(dir.Name)
			if key == "" {
				g.logger.Debug(ctx, "name has no usable key", logging.Fields{"path": dir.Path})
				continue
			}
			out = append(out, candidate{path: dir.Path, key: key})
		}
	}
	return out
}
