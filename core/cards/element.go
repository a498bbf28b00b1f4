// Package cards defines the in-memory content model for the card catalog:
// the five element kinds (mechanics, traits, attacks, creatures, effects),
// their closed vocabularies, and the field-map codec used at the persistence
// boundary. Entities are immutable after import; changing one means
// re-importing from the source of truth.
package cards

// GameElement is the capability shared by every catalogued concept.
type GameElement interface {
	// ElementID returns the unique, prefix-validated ID.
	ElementID() string

	// DisplayName returns the explicit name, else the parenthesized dev
	// name, else the empty string.
	DisplayName() string

	// Stage returns the element's development stage.
	Stage() DevStage

	// ElementKind returns the element's kind.
	ElementKind() Kind
}

// Card is the capability of directly printable elements. The implementing
// set is closed: exactly Creature and Effect.
type Card interface {
	GameElement

	// CardColor returns the card's color, or nil when the color is not yet
	// decided. ColorNone is a real color, not an absent one.
	CardColor() *Color

	// TotalCost returns the card's total cost, nil when undefined.
	TotalCost() *int

	// ColorCost returns the colored part of the cost, nil when undefined.
	ColorCost() *int

	// Playable reports whether the card's dev stage allows print and play.
	Playable() bool

	isCard()
}

// ColorAffinity groups the colors an element is intended for, by priority.
type ColorAffinity struct {
	Primary   []Color
	Secondary []Color
	Tertiary  []Color
}

// IsZero returns true if no affinity colors are set.
func (a ColorAffinity) IsZero() bool {
	return len(a.Primary) == 0 && len(a.Secondary) == 0 && len(a.Tertiary) == 0
}

// displayName implements the shared name fallback chain.
func displayName(name, devName string) string {
	if name != "" {
		return name
	}
	if devName != "" {
		return "(" + devName + ")"
	}
	return ""
}
