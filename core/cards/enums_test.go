package cards

import (
	"errors"
	"testing"

	cperrors "github.com/emberdeck/cardpress/core/errors"
)

func TestKindForID(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
		ok   bool
	}{
		{"M001", KindMechanic, true},
		{"T012", KindTrait, true},
		{"A003", KindAttack, true},
		{"C101", KindCreature, true},
		{"E020", KindEffect, true},
		{"X001", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := KindForID(tt.id)
		if ok != tt.ok || got != tt.want {
			t.Errorf("KindForID(%q) = %v, %v; want %v, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCheckID(t *testing.T) {
	if err := CheckID(KindCreature, "C001"); err != nil {
		t.Fatalf("CheckID(creature, C001) = %v", err)
	}
	err := CheckID(KindCreature, "T001")
	if err == nil {
		t.Fatal("CheckID(creature, T001) succeeded")
	}
	var perr *InvalidPrefixError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *InvalidPrefixError", err)
	}
	if !errors.Is(err, cperrors.ErrInvalidInput) {
		t.Error("error doesn't unwrap to ErrInvalidInput")
	}
	if err := CheckID(KindTrait, ""); err == nil {
		t.Error("CheckID with empty ID succeeded")
	}
}

func TestColorSortOrder(t *testing.T) {
	// The press ordering of the color wheel.
	ordered := []Color{
		ColorNone, ColorOrange, ColorGreen, ColorBlue, ColorWhite,
		ColorYellow, ColorPurple, ColorPink, ColorBlack, ColorCyan,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].SortKey() >= ordered[i].SortKey() {
			t.Errorf("%s (key %d) should sort before %s (key %d)",
				ordered[i-1], ordered[i-1].SortKey(), ordered[i], ordered[i].SortKey())
		}
	}
}

func TestDevStagePlayable(t *testing.T) {
	tests := []struct {
		stage    DevStage
		playable bool
	}{
		{StageConception, false},
		{StageAlpha0, true},
		{StageAlpha1, true},
		{StageDiscontinued, false},
	}
	for _, tt := range tests {
		if got := tt.stage.Playable(); got != tt.playable {
			t.Errorf("%s.Playable() = %v, want %v", tt.stage, got, tt.playable)
		}
	}
	if StageConception.SortKey() >= StageDiscontinued.SortKey() {
		t.Error("Conception should sort before Discontinued among non-playables")
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	if _, err := ParseColor("Mauve"); err == nil {
		t.Error("ParseColor accepted unknown color")
	}
	if _, err := ParseEffectType("Ritual"); err == nil {
		t.Error("ParseEffectType accepted unknown type")
	}
	if _, err := ParseDevStage("Beta"); err == nil {
		t.Error("ParseDevStage accepted unknown stage")
	}
	if _, err := ParseTraitType("Passive"); err == nil {
		t.Error("ParseTraitType accepted unknown type")
	}
	if _, err := ParseKind("spell"); err == nil {
		t.Error("ParseKind accepted unknown kind")
	}
}

func TestDisplayNameFallback(t *testing.T) {
	tests := []struct {
		name    string
		devName string
		want    string
	}{
		{"Swift", "fast-one", "Swift"},
		{"", "fast-one", "(fast-one)"},
		{"", "", ""},
	}
	for _, tt := range tests {
		tr := &Trait{ID: "T001", Name: tt.name, DevName: tt.devName}
		if got := tr.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.name, tt.devName, got, tt.want)
		}
	}
}
