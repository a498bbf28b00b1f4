package cards

// enums.go - Closed vocabularies shared by every element kind.
// Display text, sort weights, and playability flags live here so that the
// ordering and press packages never hard-code them.

import (
	"fmt"

	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// Kind identifies one of the five element kinds in a catalog.
type Kind string

// Kind constants.
const (
	KindMechanic Kind = "mechanic"
	KindTrait    Kind = "trait"
	KindAttack   Kind = "attack"
	KindCreature Kind = "creature"
	KindEffect   Kind = "effect"
)

// Kinds lists every kind in import dependency order: creatures reference
// traits and attacks, so those must be populated first.
var Kinds = []Kind{KindMechanic, KindTrait, KindAttack, KindCreature, KindEffect}

// kindPrefixes maps each kind to the mandatory ID prefix.
// Changing a prefix invalidates every authored ID of that kind.
var kindPrefixes = map[Kind]string{
	KindMechanic: "M",
	KindTrait:    "T",
	KindAttack:   "A",
	KindCreature: "C",
	KindEffect:   "E",
}

// Prefix returns the mandatory ID prefix for the kind.
func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// IsValid returns true if the kind is one of the five known kinds.
func (k Kind) IsValid() bool {
	_, ok := kindPrefixes[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown kind %q: %w", s, cperrors.ErrInvalidInput)
	}
	return k, nil
}

// KindForID dispatches an ID to its kind by inspecting the leading prefix.
// Returns false if no kind claims the prefix.
func KindForID(id string) (Kind, bool) {
	for _, k := range Kinds {
		if len(id) > 0 && id[:1] == kindPrefixes[k] {
			return k, true
		}
	}
	return "", false
}

// CheckID validates that an ID carries the kind's prefix.
func CheckID(kind Kind, id string) error {
	if id == "" || id[:1] != kind.Prefix() {
		return &InvalidPrefixError{Kind: kind, ID: id}
	}
	return nil
}

// InvalidPrefixError reports an ID that does not start with its kind's prefix.
type InvalidPrefixError struct {
	Kind Kind
	ID   string
}

func (e *InvalidPrefixError) Error() string {
	return fmt.Sprintf("%s ID %q doesn't start with prefix %q", e.Kind, e.ID, e.Kind.Prefix())
}

func (e *InvalidPrefixError) Unwrap() error {
	return cperrors.ErrInvalidInput
}

// Color is a card's color.
type Color string

// Color constants.
const (
	ColorNone   Color = "None"
	ColorOrange Color = "Orange"
	ColorGreen  Color = "Green"
	ColorBlue   Color = "Blue"
	ColorWhite  Color = "White"
	ColorYellow Color = "Yellow"
	ColorPurple Color = "Purple"
	ColorPink   Color = "Pink"
	ColorBlack  Color = "Black"
	ColorCyan   Color = "Cyan"
)

// colorSortKeys orders colors in the canonical print sequence.
var colorSortKeys = map[Color]int{
	ColorNone:   0,
	ColorOrange: 1,
	ColorGreen:  2,
	ColorBlue:   3,
	ColorWhite:  4,
	ColorYellow: 5,
	ColorPurple: 6,
	ColorPink:   7,
	ColorBlack:  8,
	ColorCyan:   9,
}

// SortKey returns the color's weight in the canonical ordering.
func (c Color) SortKey() int {
	return colorSortKeys[c]
}

// IsValid returns true if the color is a known color. ColorNone is valid:
// colorless is a color, an absent color is represented by a nil *Color.
func (c Color) IsValid() bool {
	_, ok := colorSortKeys[c]
	return ok
}

func (c Color) String() string {
	return string(c)
}

// ParseColor parses a color display name.
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

// EffectType is a type of effect card.
type EffectType string

// Effect type constants.
const (
	EffectAction EffectType = "Action"
	EffectAura   EffectType = "Aura"
	EffectField  EffectType = "Field"
)

type effectTypeInfo struct {
	description string
	sortKey     int
}

var effectTypes = map[EffectType]effectTypeInfo{
	EffectAction: {
		"Has an immediate effect. Goes to the discard pile after resolved",
		0,
	},
	EffectAura: {
		"Has a continued effect on a creature. Stays attached to it after resolved, " +
			"goes to the discard pile whenever the attached creature is no longer on the field",
		1,
	},
	EffectField: {
		"Has a continued effect. Stays on the board after resolved, until the end of the round",
		2,
	},
}

// Description returns the rules text describing the effect type.
func (t EffectType) Description() string {
	return effectTypes[t].description
}

// SortKey returns the effect type's sort weight.
func (t EffectType) SortKey() int {
	return effectTypes[t].sortKey
}

// IsValid returns true if the effect type is known.
func (t EffectType) IsValid() bool {
	_, ok := effectTypes[t]
	return ok
}

func (t EffectType) String() string {
	return string(t)
}

// ParseEffectType parses an effect type display name.
func ParseEffectType(s string) (EffectType, error) {
	t := EffectType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown effect type %q", s)
	}
	return t, nil
}

// DevStage is an element's readiness state, independent of its content.
type DevStage string

// Dev stage constants.
const (
	StageConception   DevStage = "Conception"
	StageAlpha0       DevStage = "Alpha-0"
	StageAlpha1       DevStage = "Alpha-1"
	StageDiscontinued DevStage = "Discontinued"
)

type devStageInfo struct {
	description string
	playable    bool
	sortKey     int
}

var devStages = map[DevStage]devStageInfo{
	StageConception:   {"Still in conception, not all fields may be filled in", false, 1000},
	StageAlpha0:       {"Ready to be used, never tried out", true, 100},
	StageAlpha1:       {"Has been used at least once", true, 101},
	StageDiscontinued: {"Replaced by another card or abandoned entirely", false, 9000},
}

// Description returns the human-readable description of the stage.
func (s DevStage) Description() string {
	return devStages[s].description
}

// Playable returns true if elements at this stage may be printed and played.
func (s DevStage) Playable() bool {
	return devStages[s].playable
}

// SortKey returns the stage's weight in the canonical ordering.
// Only meaningful for non-playable stages; playable cards tie at zero.
func (s DevStage) SortKey() int {
	return devStages[s].sortKey
}

// IsValid returns true if the dev stage is known.
func (s DevStage) IsValid() bool {
	_, ok := devStages[s]
	return ok
}

func (s DevStage) String() string {
	return string(s)
}

// ParseDevStage parses a dev stage display name.
func ParseDevStage(s string) (DevStage, error) {
	st := DevStage(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown dev stage %q", s)
	}
	return st, nil
}

// TraitType is a type of creature trait.
type TraitType string

// Trait type constants.
const (
	TraitEntry  TraitType = "Entry"
	TraitCombat TraitType = "Combat"
	TraitOther  TraitType = "Other"
)

var traitTypes = map[TraitType]string{
	TraitEntry:  "Its effect happens when the creature enters the field",
	TraitCombat: "Its effect happens when the creature is in combat",
	TraitOther:  "Doesn't fit any of the above",
}

// Description returns the human-readable description of the trait type.
func (t TraitType) Description() string {
	return traitTypes[t]
}

// IsValid returns true if the trait type is known.
func (t TraitType) IsValid() bool {
	_, ok := traitTypes[t]
	return ok
}

func (t TraitType) String() string {
	return string(t)
}

// ParseTraitType parses a trait type display name.
func ParseTraitType(s string) (TraitType, error) {
	t := TraitType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown trait type %q", s)
	}
	return t, nil
}
