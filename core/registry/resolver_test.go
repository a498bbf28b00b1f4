package registry

import (
	"errors"
	"testing"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

func TestResolveTrait(t *testing.T) {
	trait := &cards.Trait{ID: "T001", Name: "Swift", DevStage: cards.StageAlpha0}
	r := NewResolver(newTestRegistry(t, trait))

	got, err := r.ResolveTrait("T001")
	if err != nil {
		t.Fatalf("ResolveTrait(T001): %v", err)
	}
	if got != trait {
		t.Error("ResolveTrait returned a different entity")
	}
}

func TestResolveUnknownID(t *testing.T) {
	r := NewResolver(newTestRegistry(t))
	_, err := r.ResolveTrait("T404")
	var uerr *UnresolvedReferenceError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %T, want *UnresolvedReferenceError", err)
	}
	if !errors.Is(err, cperrors.ErrNotFound) {
		t.Error("error doesn't unwrap to ErrNotFound")
	}
}

func TestResolveWrongKind(t *testing.T) {
	r := NewResolver(newTestRegistry(t,
		&cards.Attack{ID: "A001", DevStage: cards.StageAlpha0},
	))
	_, err := r.ResolveTrait("A001")
	var werr *WrongKindError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %T, want *WrongKindError", err)
	}
	if werr.Got != cards.KindAttack {
		t.Errorf("Got = %s, want attack", werr.Got)
	}
	if !errors.Is(err, cperrors.ErrInvalidInput) {
		t.Error("error doesn't unwrap to ErrInvalidInput")
	}
}

func TestResolveElementAnyKind(t *testing.T) {
	r := NewResolver(newTestRegistry(t,
		&cards.Mechanic{ID: "M001", DevStage: cards.StageAlpha0},
	))
	if _, err := r.ResolveElement("M001"); err != nil {
		t.Errorf("ResolveElement(M001): %v", err)
	}
}
