// Package meta answers "which packages are installed into this prefix" by
// reading the prefix's conda-meta directory. The directory holds one JSON
// document per linked package, named after its dist string
// ("name-version-build.json").
package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Record is the subset of a package's metadata document this toolchain
// reads.
type Record struct {
	// Name is the package name.
	Name string `json:"name"`

	// Version is the package version string.
	Version string `json:"version"`

	// Build is the build string (e.g. "py311_0").
	Build string `json:"build"`

	// Files lists the files the package installed, relative to the prefix.
	Files []string `json:"files,omitempty"`
}

// PrefixReader lists and reads package metadata in installation prefixes.
// The zero value is ready to use.
type PrefixReader struct{}

// Linked returns the dist names of the packages installed into prefix, in
// sorted order. A prefix without a conda-meta directory has no packages.
func (PrefixReader) Linked(prefix string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(prefix, "conda-meta"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read conda-meta in %s: %w", prefix, err)
	}

	var dists []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		dists = append(dists, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dists)
	return dists, nil
}

// Record reads the metadata document of the given dist inside prefix. The
// packaging and relocation stages use it to enumerate the files a linked
// package installed; settings resolution itself only needs Linked.
func (PrefixReader) Record(prefix, dist string) (*Record, error) {
	path := filepath.Join(prefix, "conda-meta", dist+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package record %s: %w", path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse package record %s: %w", path, err)
	}
	return &rec, nil
}
