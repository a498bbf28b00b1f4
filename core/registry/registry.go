// Package registry holds the canonical entity instances of a catalog: one
// ID-keyed store per kind, populated during import and frozen afterward.
// A frozen registry is safe for concurrent reads; it is never mutated
// concurrently.
package registry

import (
	"fmt"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// ErrFrozen is returned on registration attempts after Freeze.
var ErrFrozen = fmt.Errorf("registry is frozen")

// DuplicateIDError reports a second registration of an already-held ID.
type DuplicateIDError struct {
	Kind cards.Kind
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s with ID %q already exists", e.Kind, e.ID)
}

func (e *DuplicateIDError) Unwrap() error {
	return cperrors.ErrAlreadyExists
}

// UnknownPrefixError reports an ID whose prefix no kind claims.
type UnknownPrefixError struct {
	ID string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("ID %q has an unexpected prefix", e.ID)
}

func (e *UnknownPrefixError) Unwrap() error {
	return cperrors.ErrInvalidInput
}

// kindStore is one logical map plus insertion order for a single kind.
type kindStore struct {
	byID  map[string]cards.GameElement
	order []string
}

func newKindStore() *kindStore {
	return &kindStore{byID: make(map[string]cards.GameElement)}
}

// Registry stores every imported entity, keyed by ID within its kind.
// Lifecycle: construct, populate via Register, Freeze, then read-only.
type Registry struct {
	kinds  map[cards.Kind]*kindStore
	frozen bool
}

// New returns an empty, unfrozen registry.
func New() *Registry {
	r := &Registry{kinds: make(map[cards.Kind]*kindStore, len(cards.Kinds))}
	for _, k := range cards.Kinds {
		r.kinds[k] = newKindStore()
	}
	return r
}

// Register inserts an entity. Fails with *cards.InvalidPrefixError when the
// ID lacks the kind's prefix, with *DuplicateIDError when the ID is already
// held, and with ErrFrozen after Freeze.
func (r *Registry) Register(e cards.GameElement) error {
	if r.frozen {
		return ErrFrozen
	}
	kind := e.ElementKind()
	id := e.ElementID()
	if err := cards.CheckID(kind, id); err != nil {
		return err
	}
	store := r.kinds[kind]
	if _, exists := store.byID[id]; exists {
		return &DuplicateIDError{Kind: kind, ID: id}
	}
	store.byID[id] = e
	store.order = append(store.order, id)
	return nil
}

// Freeze ends the populate phase. Subsequent Register calls fail.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Len returns the total number of registered entities.
func (r *Registry) Len() int {
	n := 0
	for _, store := range r.kinds {
		n += len(store.byID)
	}
	return n
}

// LenOfKind returns the number of registered entities of one kind.
func (r *Registry) LenOfKind(kind cards.Kind) int {
	return len(r.kinds[kind].byID)
}

// get looks up an entity of a known kind.
func (r *Registry) get(kind cards.Kind, id string) (cards.GameElement, error) {
	e, ok := r.kinds[kind].byID[id]
	if !ok {
		return nil, cperrors.NewNotFound(kind.String(), id)
	}
	return e, nil
}

// Mechanic returns the mechanic with the given ID.
func (r *Registry) Mechanic(id string) (*cards.Mechanic, error) {
	e, err := r.get(cards.KindMechanic, id)
	if err != nil {
		return nil, err
	}
	return e.(*cards.Mechanic), nil
}

// Trait returns the trait with the given ID.
func (r *Registry) Trait(id string) (*cards.Trait, error) {
	e, err := r.get(cards.KindTrait, id)
	if err != nil {
		return nil, err
	}
	return e.(*cards.Trait), nil
}

// Attack returns the attack with the given ID.
func (r *Registry) Attack(id string) (*cards.Attack, error) {
	e, err := r.get(cards.KindAttack, id)
	if err != nil {
		return nil, err
	}
	return e.(*cards.Attack), nil
}

// Creature returns the creature with the given ID.
func (r *Registry) Creature(id string) (*cards.Creature, error) {
	e, err := r.get(cards.KindCreature, id)
	if err != nil {
		return nil, err
	}
	return e.(*cards.Creature), nil
}

// Effect returns the effect with the given ID.
func (r *Registry) Effect(id string) (*cards.Effect, error) {
	e, err := r.get(cards.KindEffect, id)
	if err != nil {
		return nil, err
	}
	return e.(*cards.Effect), nil
}

// Element returns the entity with the given ID, dispatching on the ID's
// prefix. Fails with *UnknownPrefixError when no kind claims the prefix.
func (r *Registry) Element(id string) (cards.GameElement, error) {
	kind, ok := cards.KindForID(id)
	if !ok {
		return nil, &UnknownPrefixError{ID: id}
	}
	return r.get(kind, id)
}

// Card returns the card (creature or effect) with the given ID.
func (r *Registry) Card(id string) (cards.Card, error) {
	kind, ok := cards.KindForID(id)
	if !ok || (kind != cards.KindCreature && kind != cards.KindEffect) {
		return nil, &UnknownPrefixError{ID: id}
	}
	e, err := r.get(kind, id)
	if err != nil {
		return nil, err
	}
	return e.(cards.Card), nil
}

// OfKind returns every entity of one kind in registration order.
func (r *Registry) OfKind(kind cards.Kind) []cards.GameElement {
	store := r.kinds[kind]
	out := make([]cards.GameElement, 0, len(store.order))
	for _, id := range store.order {
		out = append(out, store.byID[id])
	}
	return out
}

// Mechanics returns every mechanic in registration order.
func (r *Registry) Mechanics() []*cards.Mechanic {
	elems := r.OfKind(cards.KindMechanic)
	out := make([]*cards.Mechanic, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.(*cards.Mechanic))
	}
	return out
}

// Traits returns every trait in registration order.
func (r *Registry) Traits() []*cards.Trait {
	elems := r.OfKind(cards.KindTrait)
	out := make([]*cards.Trait, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.(*cards.Trait))
	}
	return out
}

// Attacks returns every attack in registration order.
func (r *Registry) Attacks() []*cards.Attack {
	elems := r.OfKind(cards.KindAttack)
	out := make([]*cards.Attack, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.(*cards.Attack))
	}
	return out
}

// Creatures returns every creature in registration order.
func (r *Registry) Creatures() []*cards.Creature {
	elems := r.OfKind(cards.KindCreature)
	out := make([]*cards.Creature, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.(*cards.Creature))
	}
	return out
}

// Effects returns every effect in registration order.
func (r *Registry) Effects() []*cards.Effect {
	elems := r.OfKind(cards.KindEffect)
	out := make([]*cards.Effect, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.(*cards.Effect))
	}
	return out
}

// Cards returns every card: creatures first, then effects, each group in
// registration order. This order is the tie-break baseline for the
// canonical stable sort.
func (r *Registry) Cards() []cards.Card {
	creatures := r.OfKind(cards.KindCreature)
	effects := r.OfKind(cards.KindEffect)
	out := make([]cards.Card, 0, len(creatures)+len(effects))
	for _, e := range creatures {
		out = append(out, e.(cards.Card))
	}
	for _, e := range effects {
		out = append(out, e.(cards.Card))
	}
	return out
}
