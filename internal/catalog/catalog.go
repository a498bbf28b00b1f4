// Package catalog orchestrates the bulk lifecycle of a card catalog:
// import from a persistence adapter into a frozen registry, export of a
// registry back through an adapter, and store-to-store conversion.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberdeck/cardpress/core/cards"
	"github.com/emberdeck/cardpress/core/registry"
	"github.com/emberdeck/cardpress/internal/logging"
)

// Store is the persistence adapter surface the catalog needs. Encoding is
// the adapter's concern; the catalog only requires Load(Save(x)) == x for
// every field.
type Store interface {
	// ListIDs returns the IDs of every stored entity of one kind.
	ListIDs(kind cards.Kind) ([]string, error)

	// Load reads one entity's field map.
	Load(kind cards.Kind, id string) (cards.Fields, error)

	// Save writes one entity's field map.
	Save(kind cards.Kind, id string, f cards.Fields) error
}

// Import bulk-creates all entities from the store in dependency order
// (mechanics, traits, attacks, then creatures and effects) and returns a
// frozen registry. Any failure aborts the import; the partially populated
// registry is discarded by the caller.
func Import(ctx context.Context, store Store) (*registry.Registry, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logging.InfoContext(ctx, "catalog import started")

	reg := registry.New()
	resolver := registry.NewResolver(reg)
	for _, kind := range cards.Kinds {
		ids, err := store.ListIDs(kind)
		if err != nil {
			return nil, fmt.Errorf("list %ss: %w", kind, err)
		}
		for _, id := range ids {
			fields, err := store.Load(kind, id)
			if err != nil {
				return nil, fmt.Errorf("load %s %s: %w", kind, id, err)
			}
			e, err := cards.Decode(kind, fields, resolver)
			if err != nil {
				return nil, err
			}
			if err := reg.Register(e); err != nil {
				return nil, err
			}
		}
		logging.DebugContext(ctx, "kind imported", "kind", kind.String(), "count", len(ids))
	}
	reg.Freeze()
	logging.InfoContext(ctx, "catalog import finished", "entities", reg.Len())
	return reg, nil
}

// Export saves every registered entity through the store, in the same
// dependency order used by Import.
func Export(ctx context.Context, reg *registry.Registry, store Store) error {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logging.InfoContext(ctx, "catalog export started", "entities", reg.Len())

	for _, kind := range cards.Kinds {
		for _, e := range reg.OfKind(kind) {
			fields, err := cards.Encode(e)
			if err != nil {
				return err
			}
			if err := store.Save(kind, e.ElementID(), fields); err != nil {
				return fmt.Errorf("save %s %s: %w", kind, e.ElementID(), err)
			}
		}
	}
	logging.InfoContext(ctx, "catalog export finished")
	return nil
}

// Copy imports from src and exports to dst: a full store-to-store
// conversion through the in-memory model.
func Copy(ctx context.Context, src, dst Store) (*registry.Registry, error) {
	reg, err := Import(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := Export(ctx, reg, dst); err != nil {
		return nil, err
	}
	return reg, nil
}
