package registry

import (
	"fmt"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// UnresolvedReferenceError reports an authored reference to an ID that is
// not in the registry. The referenced kind must be fully imported before
// resolution runs.
type UnresolvedReferenceError struct {
	RefID string
	Want  string // expected capability, e.g. "trait", "attack", "element"
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q", e.Want, e.RefID)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return cperrors.ErrNotFound
}

// WrongKindError reports a reference that resolved to an entity of the
// wrong capability.
type WrongKindError struct {
	RefID string
	Want  string
	Got   cards.Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("reference %q resolves to a %s, expected a %s", e.RefID, e.Got, e.Want)
}

func (e *WrongKindError) Unwrap() error {
	return cperrors.ErrInvalidInput
}

// Resolver binds authored ID references against a registry. It implements
// cards.RefResolver for the import decoders.
type Resolver struct {
	reg *Registry
}

// NewResolver returns a resolver over the given registry.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// ResolveTrait resolves a trait reference.
func (r *Resolver) ResolveTrait(id string) (*cards.Trait, error) {
	e, err := r.resolve(id, "trait")
	if err != nil {
		return nil, err
	}
	t, ok := e.(*cards.Trait)
	if !ok {
		return nil, &WrongKindError{RefID: id, Want: "trait", Got: e.ElementKind()}
	}
	return t, nil
}

// ResolveAttack resolves an attack reference.
func (r *Resolver) ResolveAttack(id string) (*cards.Attack, error) {
	e, err := r.resolve(id, "attack")
	if err != nil {
		return nil, err
	}
	a, ok := e.(*cards.Attack)
	if !ok {
		return nil, &WrongKindError{RefID: id, Want: "attack", Got: e.ElementKind()}
	}
	return a, nil
}

// ResolveElement resolves a reference to any element kind.
func (r *Resolver) ResolveElement(id string) (cards.GameElement, error) {
	return r.resolve(id, "element")
}

func (r *Resolver) resolve(id, want string) (cards.GameElement, error) {
	e, err := r.reg.Element(id)
	if err != nil {
		return nil, &UnresolvedReferenceError{RefID: id, Want: want}
	}
	return e, nil
}
