package cards

// AttackSlot is one of a creature's two attacks: a base value plus an
// optional bound Attack with an optional effect variable.
type AttackSlot struct {
	Base     *int
	Effect   *Attack
	Variable *int
}

// IsZero returns true if the slot is entirely unset.
func (s AttackSlot) IsZero() bool {
	return s.Base == nil && s.Effect == nil && s.Variable == nil
}

// Creature is a creature card. Its traits and attack bindings are resolved
// against the registry at import time, so traits and attacks import first.
type Creature struct {
	ID           string
	Name         string
	Color        *Color
	IsToken      bool
	CostTotal    *int
	CostColor    *int
	HP           *int
	Speed        *int
	AtkStrong    AttackSlot
	AtkTechnical AttackSlot
	Traits       []*Trait
	FlavorText   string

	Value    *int
	DevStage DevStage
	DevName  string
	Order    *int
	Summary  string
	Notes    string
}

func (c *Creature) ElementID() string { return c.ID }

func (c *Creature) DisplayName() string { return displayName(c.Name, c.DevName) }

func (c *Creature) Stage() DevStage { return c.DevStage }

func (c *Creature) ElementKind() Kind { return KindCreature }

func (c *Creature) CardColor() *Color { return c.Color }

func (c *Creature) TotalCost() *int { return c.CostTotal }

func (c *Creature) ColorCost() *int { return c.CostColor }

func (c *Creature) Playable() bool { return c.DevStage.Playable() }

func (c *Creature) isCard() {}
