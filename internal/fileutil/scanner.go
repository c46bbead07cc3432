// Package fileutil provides file system enumeration for map searching.
//
// The scanner resolves a search root that may be a single file or a
// directory tree into the ordered list of map files to search, filtering by
// extension suffix and skipping hidden directories. Non-fatal errors (for
// example, an unreadable subdirectory) are collected so a scan can report
// them without aborting.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures directory scanning behavior.
type ScanOptions struct {
	// Extensions lists file suffixes to include (e.g. ".mm", ".md").
	// Matching is case-insensitive. An empty list matches every file.
	Extensions []string
	// ExcludeDirs lists directory names to skip entirely (e.g. "node_modules").
	// Hidden directories (names starting with ".") are always skipped.
	ExcludeDirs []string
}

// ScanResult contains the results of a scan.
type ScanResult struct {
	// Files contains the matched file paths, sorted for deterministic output.
	Files []string
	// Errors contains non-fatal errors encountered while scanning.
	Errors []error
}

// ListFiles resolves root, which may be a single file or a directory, into
// the files to search. A single file is returned as-is regardless of its
// extension; a directory is scanned recursively with the extension filter
// applied.
func ListFiles(root string, extensions []string) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("unknown file path: %s", root)
	}

	if !info.IsDir() {
		return &ScanResult{Files: []string{root}}, nil
	}
	return ScanDirectory(root, ScanOptions{Extensions: extensions})
}

// ScanDirectory recursively scans dir for files matching the provided
// options.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	// Normalize extensions for case-insensitive suffix matching.
	suffixes := make([]string, 0, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		suffixes = append(suffixes, strings.ToLower(ext))
	}

	excludeMap := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		excludeMap[d] = true
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !matchesSuffix(d.Name(), suffixes) {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort for consistent output across runs and platforms.
	sort.Strings(result.Files)

	return result, nil
}

// matchesSuffix reports whether name ends with any of the normalized
// suffixes. An empty suffix list matches everything.
func matchesSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
