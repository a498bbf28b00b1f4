package registry

import (
	"errors"
	"testing"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

func newTestRegistry(t *testing.T, elements ...cards.GameElement) *Registry {
	t.Helper()
	r := New()
	for _, e := range elements {
		if err := r.Register(e); err != nil {
			t.Fatalf("Register(%s): %v", e.ElementID(), err)
		}
	}
	return r
}

func TestRegisterAndLookup(t *testing.T) {
	trait := &cards.Trait{ID: "T001", Name: "Swift", DevStage: cards.StageAlpha0}
	creature := &cards.Creature{ID: "C001", Name: "Drake", DevStage: cards.StageAlpha0}
	r := newTestRegistry(t, trait, creature)

	got, err := r.Trait("T001")
	if err != nil {
		t.Fatalf("Trait(T001): %v", err)
	}
	if got != trait {
		t.Error("Trait(T001) returned a different entity")
	}

	e, err := r.Element("C001")
	if err != nil {
		t.Fatalf("Element(C001): %v", err)
	}
	if e != cards.GameElement(creature) {
		t.Error("Element(C001) returned a different entity")
	}

	if _, err := r.Trait("T999"); !errors.Is(err, cperrors.ErrNotFound) {
		t.Errorf("Trait(T999): err = %v, want ErrNotFound", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry(t, &cards.Trait{ID: "T001", DevStage: cards.StageAlpha0})
	err := r.Register(&cards.Trait{ID: "T001", DevStage: cards.StageAlpha0})
	if !errors.Is(err, cperrors.ErrAlreadyExists) {
		t.Errorf("duplicate Register: err = %v, want ErrAlreadyExists", err)
	}
}

func TestRegisterWrongPrefix(t *testing.T) {
	r := New()
	err := r.Register(&cards.Trait{ID: "C001", DevStage: cards.StageAlpha0})
	if !errors.Is(err, cperrors.ErrInvalidInput) {
		t.Errorf("Register with wrong prefix: err = %v, want ErrInvalidInput", err)
	}
}

func TestRegisterAfterFreeze(t *testing.T) {
	r := New()
	r.Freeze()
	if !r.Frozen() {
		t.Fatal("Frozen() = false after Freeze")
	}
	err := r.Register(&cards.Trait{ID: "T001", DevStage: cards.StageAlpha0})
	if !errors.Is(err, ErrFrozen) {
		t.Errorf("Register after Freeze: err = %v, want ErrFrozen", err)
	}
}

func TestNoCrossKindFallback(t *testing.T) {
	r := newTestRegistry(t, &cards.Creature{ID: "C001", DevStage: cards.StageAlpha0})
	// A trait lookup must not find a creature even with a creature's ID.
	if _, err := r.Trait("C001"); err == nil {
		t.Error("Trait(C001) found a creature")
	}
	if _, err := r.Element("X001"); !errors.Is(err, cperrors.ErrInvalidInput) {
		t.Errorf("Element(X001): err = %v, want ErrInvalidInput", err)
	}
}

func TestCardLookup(t *testing.T) {
	r := newTestRegistry(t,
		&cards.Creature{ID: "C001", DevStage: cards.StageAlpha0},
		&cards.Effect{ID: "E001", Type: cards.EffectAction, DevStage: cards.StageAlpha0},
		&cards.Trait{ID: "T001", DevStage: cards.StageAlpha0},
	)
	if _, err := r.Card("C001"); err != nil {
		t.Errorf("Card(C001): %v", err)
	}
	if _, err := r.Card("E001"); err != nil {
		t.Errorf("Card(E001): %v", err)
	}
	if _, err := r.Card("T001"); err == nil {
		t.Error("Card(T001) succeeded for a trait")
	}
}

func TestCardsOrder(t *testing.T) {
	// Creatures first, then effects, each in registration order.
	r := newTestRegistry(t,
		&cards.Effect{ID: "E002", Type: cards.EffectAction, DevStage: cards.StageAlpha0},
		&cards.Creature{ID: "C002", DevStage: cards.StageAlpha0},
		&cards.Creature{ID: "C001", DevStage: cards.StageAlpha0},
		&cards.Effect{ID: "E001", Type: cards.EffectAction, DevStage: cards.StageAlpha0},
	)
	var ids []string
	for _, c := range r.Cards() {
		ids = append(ids, c.ElementID())
	}
	want := []string{"C002", "C001", "E002", "E001"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Cards() order = %v, want %v", ids, want)
		}
	}
}

func TestLen(t *testing.T) {
	r := newTestRegistry(t,
		&cards.Trait{ID: "T001", DevStage: cards.StageAlpha0},
		&cards.Trait{ID: "T002", DevStage: cards.StageAlpha0},
		&cards.Creature{ID: "C001", DevStage: cards.StageAlpha0},
	)
	if got := r.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := r.LenOfKind(cards.KindTrait); got != 2 {
		t.Errorf("LenOfKind(trait) = %d, want 2", got)
	}
}
