package placeholder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

type stubLookup map[string]cards.GameElement

func (s stubLookup) Element(id string) (cards.GameElement, error) {
	e, ok := s[id]
	if !ok {
		return nil, cperrors.NewNotFound("element", id)
	}
	return e, nil
}

func testLookup() stubLookup {
	return stubLookup{
		"T001": &cards.Trait{ID: "T001", Name: "Swift", Description: "This creature acts twice."},
		"T002": &cards.Trait{ID: "T002", Name: "Spiky", Description: "Deals (HP) damage when blocked."},
		"T003": &cards.Trait{ID: "T003", Name: "Nested", Description: "Like (REF:T001.DESCRIPTION) but better."},
		"C001": &cards.Creature{ID: "C001", Name: "Fox"},
		"C002": &cards.Creature{ID: "C002"},
	}
}

func expand(t *testing.T, text string) *Result {
	t.Helper()
	res, err := Expand(text, testLookup())
	if err != nil {
		t.Fatalf("Expand(%q): %v", text, err)
	}
	return res
}

func TestExpandPlainText(t *testing.T) {
	res := expand(t, "Destroy target creature.")
	if res.Text != "Destroy target creature." {
		t.Errorf("Text = %q, want input unchanged", res.Text)
	}
	if len(res.IconPositions) != 0 || len(res.NamePositions) != 0 {
		t.Errorf("positions = %v / %v, want none", res.IconPositions, res.NamePositions)
	}
}

func TestExpandKeywordAndName(t *testing.T) {
	res := expand(t, "Deal (HP) damage. (REF:T001.NAME) is great.")
	if res.Text != "Deal  damage. Swift is great." {
		t.Errorf("Text = %q", res.Text)
	}
	if !reflect.DeepEqual(res.IconPositions, []int{6}) {
		t.Errorf("IconPositions = %v, want [6]", res.IconPositions)
	}
	if !reflect.DeepEqual(res.NamePositions, []int{16, 17, 18, 19, 20}) {
		t.Errorf("NamePositions = %v, want [16..20]", res.NamePositions)
	}
}

func TestExpandUnknownKeywordIsLiteral(t *testing.T) {
	res := expand(t, "The (BEST) card (ever.")
	if res.Text != "The (BEST) card (ever." {
		t.Errorf("Text = %q, want input unchanged", res.Text)
	}
}

func TestExpandDescriptionStripsPeriod(t *testing.T) {
	res := expand(t, "Entry: (REF:T001.DESCRIPTION), then untap it.")
	if res.Text != "Entry: This creature acts twice, then untap it." {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestExpandDescriptionThenKeywords(t *testing.T) {
	// Keywords inside a spliced description are expanded by the second
	// pass and styled as icons.
	res := expand(t, "(REF:T002.DESCRIPTION).")
	if res.Text != "Deals  damage when blocked." {
		t.Errorf("Text = %q", res.Text)
	}
	if !reflect.DeepEqual(res.IconPositions, []int{7}) {
		t.Errorf("IconPositions = %v, want [7]", res.IconPositions)
	}
}

func TestExpandDescriptionIsOneLevel(t *testing.T) {
	// A DESCRIPTION reference inside a spliced description stays literal.
	res := expand(t, "(REF:T003.DESCRIPTION).")
	if res.Text != "Like (REF:T001.DESCRIPTION) but better." {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestExpandFieldCaseInsensitive(t *testing.T) {
	res := expand(t, "(REF:T001.name)")
	if res.Text != "Swift" {
		t.Errorf("Text = %q, want Swift", res.Text)
	}
}

func TestExpandNameFallbacks(t *testing.T) {
	lookup := stubLookup{
		"C002": &cards.Creature{ID: "C002"},
		"T005": &cards.Trait{ID: "T005"},
	}
	res, err := Expand("(REF:C002.NAME) / (REF:T005.NAME)", lookup)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if res.Text != "(Card C002) / (Trait T005)" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestExpandUnknownID(t *testing.T) {
	_, err := Expand("(REF:T404.NAME)", testLookup())
	var uerr *UnknownReferenceIDError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %T, want *UnknownReferenceIDError", err)
	}
	if uerr.RefID != "T404" {
		t.Errorf("RefID = %q, want T404", uerr.RefID)
	}
	if !errors.Is(err, cperrors.ErrNotFound) {
		t.Error("error doesn't unwrap to ErrNotFound")
	}
}

func TestExpandDescriptionOfNonTrait(t *testing.T) {
	_, err := Expand("(REF:C001.DESCRIPTION)", testLookup())
	var ferr *InvalidReferenceFieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %T, want *InvalidReferenceFieldError", err)
	}
	if ferr.Got != "creature" {
		t.Errorf("Got = %q, want creature", ferr.Got)
	}
}

func TestExpandUnknownField(t *testing.T) {
	_, err := Expand("(REF:T001.COST)", testLookup())
	var ferr *InvalidReferenceFieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %T, want *InvalidReferenceFieldError", err)
	}
	if ferr.Got != "" {
		t.Errorf("Got = %q, want empty for an unknown field", ferr.Got)
	}
}

func TestExpandMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing field", "(REF:T001)"},
		{"unterminated", "Deal (REF:T001.NAME"},
		{"empty", "(REF:)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.text, testLookup())
			var merr *MalformedPlaceholderError
			if !errors.As(err, &merr) {
				t.Fatalf("err = %T (%v), want *MalformedPlaceholderError", err, err)
			}
			if !errors.Is(err, cperrors.ErrInvalidInput) {
				t.Error("error doesn't unwrap to ErrInvalidInput")
			}
		})
	}
}

func TestExpandWholeFailureNoPartialOutput(t *testing.T) {
	// One bad token fails the whole expansion even when earlier tokens
	// are fine.
	if _, err := Expand("(HP) then (REF:T404.NAME)", testLookup()); err == nil {
		t.Fatal("Expand succeeded despite an unknown reference")
	}
}

func TestKeywordTableIsComplete(t *testing.T) {
	table := Keywords()
	for _, kw := range []string{
		"(CREATURE)", "(ACTION)", "(AURA)", "(FIELD)",
		"(HP)", "(SATK)", "(SPE)",
		"(NOCOLOR)", "(BLACK)", "(BLUE)", "(CYAN)", "(GREEN)",
		"(ORANGE)", "(PINK)", "(PURPLE)", "(WHITE)", "(YELLOW)",
	} {
		glyph, ok := table[kw]
		if !ok {
			t.Errorf("keyword %s missing from table", kw)
			continue
		}
		if len([]rune(glyph)) != 1 {
			t.Errorf("keyword %s maps to %d runes, want 1", kw, len([]rune(glyph)))
		}
	}
}
