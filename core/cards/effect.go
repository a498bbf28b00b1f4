package cards

// Effect is an effect card: an action, aura, or field.
type Effect struct {
	ID          string
	Name        string
	Color       *Color
	Type        EffectType
	CostTotal   *int
	CostColor   *int
	Description string
	FlavorText  string

	DevStage DevStage
	DevName  string
	Order    *int
	Summary  string
	Notes    string
}

func (e *Effect) ElementID() string { return e.ID }

func (e *Effect) DisplayName() string { return displayName(e.Name, e.DevName) }

func (e *Effect) Stage() DevStage { return e.DevStage }

func (e *Effect) ElementKind() Kind { return KindEffect }

func (e *Effect) CardColor() *Color { return e.Color }

func (e *Effect) TotalCost() *int { return e.CostTotal }

func (e *Effect) ColorCost() *int { return e.CostColor }

func (e *Effect) Playable() bool { return e.DevStage.Playable() }

func (e *Effect) isCard() {}
