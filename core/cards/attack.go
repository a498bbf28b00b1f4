package cards

// Attack is a named attack effect bound to creatures' attack slots.
type Attack struct {
	ID          string
	Name        string
	Description string
	Value       *int
	Colors      ColorAffinity

	DevStage DevStage
	DevName  string
	Order    *int
	Summary  string
	Notes    string
}

func (a *Attack) ElementID() string { return a.ID }

func (a *Attack) DisplayName() string { return displayName(a.Name, a.DevName) }

func (a *Attack) Stage() DevStage { return a.DevStage }

func (a *Attack) ElementKind() Kind { return KindAttack }
