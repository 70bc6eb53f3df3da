package scanner

import (
	"path/filepath"
	"strings"
)

// shouldExclude checks if a path should be excluded based on the given patterns
// Patterns support:
//   - Simple glob patterns: *.nfo, sample*
//   - Directory patterns: .@__thumb/, Extras/
//   - Path patterns: Featurettes/*, **/trailers/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 || relativePath == "." {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		normalizedPattern := filepath.ToSlash(pattern)

		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if normalizedPath == dirPattern ||
				strings.HasPrefix(normalizedPath, dirPattern+"/") ||
				strings.HasSuffix(normalizedPath, "/"+dirPattern) ||
				strings.Contains(normalizedPath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		// **/pattern matches at any depth
		if suffix, ok := strings.CutPrefix(normalizedPattern, "**/"); ok {
			if matchGlob(baseName, suffix) || normalizedPath == suffix ||
				strings.HasSuffix(normalizedPath, "/"+suffix) || matchAnyComponent(normalizedPath, suffix) {
				return true
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			if matched, _ := filepath.Match(normalizedPattern, normalizedPath); matched {
				return true
			}
			if strings.HasSuffix(normalizedPath, "/"+normalizedPattern) {
				return true
			}
		} else if matchGlob(baseName, normalizedPattern) {
			return true
		}
	}

	return false
}

func matchGlob(name, pattern string) bool {
	matched, _ := filepath.Match(pattern, name)
	return matched
}

func matchAnyComponent(path, pattern string) bool {
	for _, part := range strings.Split(path, "/") {
		if matchGlob(part, pattern) {
			return true
		}
	}
	return false
}
