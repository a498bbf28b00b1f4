// Package yamlstore is the file-persistence adapter: one YAML document per
// entity, one directory per kind. The document nests the field map under a
// top-level key naming the kind, which keeps authored files self-describing.
package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// kindDirs maps each kind to its directory under the catalog root.
var kindDirs = map[cards.Kind]string{
	cards.KindMechanic: "mechanics",
	cards.KindTrait:    "traits",
	cards.KindAttack:   "attacks",
	cards.KindCreature: "creatures",
	cards.KindEffect:   "effects",
}

// docKeys maps each kind to the top-level document key.
var docKeys = map[cards.Kind]string{
	cards.KindMechanic: "mechanic",
	cards.KindTrait:    "trait",
	cards.KindAttack:   "attack",
	cards.KindCreature: "creature",
	cards.KindEffect:   "effect",
}

// Store reads and writes a catalog directory tree.
type Store struct {
	root string
}

// New returns a store rooted at the given catalog directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the catalog root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(kind cards.Kind, id string) string {
	return filepath.Join(s.root, kindDirs[kind], id+".yaml")
}

// ListIDs returns the IDs of every stored entity of one kind, sorted.
// A missing kind directory is an empty kind, not an error.
func (s *Store) ListIDs(kind cards.Kind) ([]string, error) {
	dir := filepath.Join(s.root, kindDirs[kind])
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, cperrors.NewIO("read", dir, err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads one entity's field map.
func (s *Store) Load(kind cards.Kind, id string) (cards.Fields, error) {
	path := s.path(kind, id)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cperrors.NewIO("read", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, cperrors.NewParse("YAML", path, err.Error())
	}
	fields, ok := doc[docKeys[kind]].(map[string]any)
	if !ok {
		return nil, cperrors.NewParse("YAML", path, fmt.Sprintf("missing top-level %q key", docKeys[kind]))
	}
	return fields, nil
}

// Save writes one entity's field map, creating the kind directory on
// first use.
func (s *Store) Save(kind cards.Kind, id string, f cards.Fields) error {
	dir := filepath.Join(s.root, kindDirs[kind])
	if err := os.MkdirAll(dir, 0755); err != nil {
		return cperrors.NewIO("create", dir, err)
	}
	raw, err := yaml.Marshal(map[string]any{docKeys[kind]: f})
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, id, err)
	}
	path := s.path(kind, id)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return cperrors.NewIO("write", path, err)
	}
	return nil
}
