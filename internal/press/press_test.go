package press

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
	"github.com/emberdeck/cardpress/core/placeholder"
	"github.com/emberdeck/cardpress/core/registry"
)

func intp(n int) *int { return &n }

func colorp(c cards.Color) *cards.Color { return &c }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	swift := &cards.Trait{
		ID: "T001", Name: "Swift", Description: "Deal (HP) damage. (REF:T001.NAME) is great.",
		Type: cards.TraitCombat, DevStage: cards.StageAlpha0,
	}
	bite := &cards.Attack{
		ID: "A001", Name: "Bite", Description: "Remove one (HP).",
		DevStage: cards.StageAlpha0,
	}
	reg := registry.New()
	for _, e := range []cards.GameElement{
		swift,
		bite,
		&cards.Creature{
			ID: "C001", Name: "Fox", Color: colorp(cards.ColorOrange),
			CostTotal: intp(3), HP: intp(4), Speed: intp(2),
			AtkStrong:    cards.AttackSlot{Base: intp(5)},
			AtkTechnical: cards.AttackSlot{Base: intp(2), Effect: bite, Variable: intp(1)},
			Traits:       []*cards.Trait{swift},
			DevStage:     cards.StageAlpha0,
		},
		&cards.Creature{
			ID: "C002", Name: "Foxling", Color: colorp(cards.ColorOrange),
			IsToken: true, HP: intp(1), DevStage: cards.StageAlpha0,
		},
		&cards.Creature{
			ID: "C003", Name: "Sketch", DevStage: cards.StageConception,
		},
		&cards.Effect{
			ID: "E001", Name: "Spark", Color: colorp(cards.ColorOrange),
			Type: cards.EffectAction, CostTotal: intp(1),
			Description: "Deal 2 damage to a (CREATURE).",
			DevStage:    cards.StageAlpha1,
		},
	} {
		if err := reg.Register(e); err != nil {
			t.Fatalf("Register(%s): %v", e.ElementID(), err)
		}
	}
	reg.Freeze()
	return reg
}

func TestDeriveCreature(t *testing.T) {
	d := NewDeriver(testRegistry(t), 1)
	a, err := d.Derive("C001")
	if err != nil {
		t.Fatalf("Derive(C001): %v", err)
	}
	if a.Number != 1 || a.Total != 3 {
		t.Errorf("number = %d/%d, want 1/3", a.Number, a.Total)
	}
	if a.Color == nil || *a.Color != "Orange" {
		t.Errorf("color = %v, want Orange", a.Color)
	}
	if len(a.Traits) != 1 {
		t.Fatalf("traits = %d, want 1", len(a.Traits))
	}
	desc := a.Traits[0].Description
	if desc.Text != "Deal  damage. Swift is great." {
		t.Errorf("trait text = %q", desc.Text)
	}
	if !reflect.DeepEqual(desc.IconPositions, []int{6}) {
		t.Errorf("icon positions = %v, want [6]", desc.IconPositions)
	}
	if !reflect.DeepEqual(desc.NamePositions, []int{16, 17, 18, 19, 20}) {
		t.Errorf("name positions = %v, want [16..20]", desc.NamePositions)
	}
	if a.AtkTechnical == nil || a.AtkTechnical.Name != "Bite" {
		t.Fatalf("technical slot = %+v", a.AtkTechnical)
	}
	if a.AtkTechnical.Description.Text != "Remove one ." {
		t.Errorf("attack text = %q", a.AtkTechnical.Description.Text)
	}
}

func TestDeriveTokenTraitFirst(t *testing.T) {
	d := NewDeriver(testRegistry(t), 1)
	a, err := d.Derive("C002")
	if err != nil {
		t.Fatalf("Derive(C002): %v", err)
	}
	if !a.IsToken {
		t.Error("IsToken = false")
	}
	if len(a.Traits) == 0 || a.Traits[0].Name != placeholder.TokenTraitName {
		t.Fatalf("first trait = %+v, want the synthetic token trait", a.Traits)
	}
	if a.Traits[0].ID != "" {
		t.Error("synthetic trait carries an entity ID")
	}
	if len(a.Traits[0].Description.IconPositions) != 1 {
		t.Errorf("token trait icons = %v, want the (CREATURE) glyph", a.Traits[0].Description.IconPositions)
	}
}

func TestDeriveUnprintable(t *testing.T) {
	d := NewDeriver(testRegistry(t), 1)
	if _, err := d.Derive("C003"); !errors.Is(err, cperrors.ErrNotFound) {
		t.Errorf("Derive(C003): err = %v, want ErrNotFound", err)
	}
}

func TestDeriveAllOrder(t *testing.T) {
	d := NewDeriver(testRegistry(t), 4)
	assets, err := d.DeriveAll(context.Background())
	if err != nil {
		t.Fatalf("DeriveAll: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("len = %d, want 3", len(assets))
	}
	// Canonical order: the orange creature, the orange effect, the token.
	want := []string{"C001", "E001", "C002"}
	for i, a := range assets {
		if a.ID != want[i] {
			t.Fatalf("order = %v..., want %v", a.ID, want)
		}
		if a.Number != i+1 {
			t.Errorf("%s number = %d, want %d", a.ID, a.Number, i+1)
		}
	}
}

func TestWriteDir(t *testing.T) {
	d := NewDeriver(testRegistry(t), 2)
	dir := filepath.Join(t.TempDir(), "out")
	if err := d.WriteDir(context.Background(), dir); err != nil {
		t.Fatalf("WriteDir: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var index []string
	if err := json.Unmarshal(raw, &index); err != nil {
		t.Fatalf("parse index: %v", err)
	}
	if len(index) != 3 {
		t.Fatalf("index = %v, want 3 entries", index)
	}
	raw, err = os.ReadFile(filepath.Join(dir, index[0]))
	if err != nil {
		t.Fatalf("read asset: %v", err)
	}
	var a Asset
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("parse asset: %v", err)
	}
	if a.ID != "C001" {
		t.Errorf("first asset = %s, want C001", a.ID)
	}
}
