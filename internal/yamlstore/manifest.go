package yamlstore

// manifest.go - Catalog integrity manifest: a BLAKE3 hash per entity file.
// The manifest pins the exact authored bytes, so unreviewed edits and
// transfer corruption surface before an import run trusts the data.

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// ManifestName is the manifest file name at the catalog root.
const ManifestName = "manifest.json"

// Manifest maps catalog-relative file paths to BLAKE3 content hashes.
type Manifest struct {
	Entries map[string]string `json:"entries"`
}

// hashFile returns the hex BLAKE3 hash of one file's contents.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", cperrors.NewIO("read", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// BuildManifest hashes every entity file in the catalog.
func (s *Store) BuildManifest() (*Manifest, error) {
	m := &Manifest{Entries: make(map[string]string)}
	for _, kind := range cards.Kinds {
		ids, err := s.ListIDs(kind)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			path := s.path(kind, id)
			sum, err := hashFile(path)
			if err != nil {
				return nil, err
			}
			rel, err := filepath.Rel(s.root, path)
			if err != nil {
				return nil, err
			}
			m.Entries[filepath.ToSlash(rel)] = sum
		}
	}
	return m, nil
}

// WriteManifest hashes the catalog and writes the manifest file.
func (s *Store) WriteManifest() (*Manifest, error) {
	m, err := s.BuildManifest()
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.root, ManifestName)
	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return nil, cperrors.NewIO("write", path, err)
	}
	return m, nil
}

// VerifyManifest re-hashes the catalog and compares it against the stored
// manifest. It returns the sorted paths that are modified, missing, or
// untracked; an empty slice means the catalog is intact.
func (s *Store) VerifyManifest() ([]string, error) {
	path := filepath.Join(s.root, ManifestName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cperrors.NewIO("read", path, err)
	}
	var stored Manifest
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, cperrors.NewParse("manifest", path, err.Error())
	}
	current, err := s.BuildManifest()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(current.Entries))
	var bad []string
	for rel, sum := range current.Entries {
		seen[rel] = true
		want, ok := stored.Entries[rel]
		switch {
		case !ok:
			bad = append(bad, fmt.Sprintf("%s: untracked", rel))
		case want != sum:
			bad = append(bad, fmt.Sprintf("%s: modified", rel))
		}
	}
	for rel := range stored.Entries {
		if !seen[rel] {
			bad = append(bad, fmt.Sprintf("%s: missing", rel))
		}
	}
	sort.Strings(bad)
	return bad, nil
}
