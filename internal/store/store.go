// Package store persists intermediate artifacts between generation rounds.
// Each per-module round writes its factory manifests under one output
// directory; later aggregation rounds, possibly in other modules, read every
// artifact visible on a configured search path, the aggregated-classpath
// analog.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Suffix is the fixed extension tag identifying fractory artifacts.
const Suffix = ".fractory.json"

// Artifact is one payload read back from the search path.
type Artifact struct {
	Path    string
	Payload []byte
}

// Store reads and writes intermediate artifacts. The enumeration order over
// artifacts (search-path order first, then lexical file order within one
// directory tree) is part of the store's contract: aggregation resolves
// duplicate model registrations last-write-wins against exactly this order.
type Store struct {
	writeDir string
	path     []string
}

// New creates a store writing to writeDir and reading from the directories
// on path, in order. writeDir is not implicitly on the path; callers that
// want the current round's artifacts visible to aggregation include it.
func New(writeDir string, path []string) *Store {
	return &Store{writeDir: writeDir, path: path}
}

// Write persists one payload keyed by the declaring package path and simple
// name, under the fixed artifact suffix.
func (s *Store) Write(pkgPath, name string, payload []byte) error {
	dir := filepath.Join(s.writeDir, filepath.FromSlash(pkgPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
	}

	file := filepath.Join(dir, name+Suffix)
	if err := os.WriteFile(file, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", file, err)
	}
	return nil
}

// ReadAll returns every artifact visible on the search path, in the
// documented enumeration order. A missing directory is not an error:
// upstream units that generated nothing leave nothing behind.
func (s *Store) ReadAll() ([]Artifact, error) {
	var artifacts []Artifact
	for _, root := range s.path {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		// WalkDir visits entries in lexical order, which fixes the
		// within-directory half of the enumeration contract.
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, Suffix) {
				return nil
			}
			payload, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("failed to read artifact %s: %w", p, err)
			}
			artifacts = append(artifacts, Artifact{Path: p, Payload: payload})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate artifacts under %s: %w", root, err)
		}
	}
	return artifacts, nil
}
