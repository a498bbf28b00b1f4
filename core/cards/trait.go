package cards

// Trait is a named, reusable creature ability. Its description may contain
// placeholders that the placeholder engine expands at press time.
type Trait struct {
	ID          string
	Name        string
	Description string
	Type        TraitType
	Value       *int
	Colors      ColorAffinity

	DevStage DevStage
	DevName  string
	Order    *int
	Summary  string
	Notes    string
}

func (t *Trait) ElementID() string { return t.ID }

func (t *Trait) DisplayName() string { return displayName(t.Name, t.DevName) }

func (t *Trait) Stage() DevStage { return t.DevStage }

func (t *Trait) ElementKind() Kind { return KindTrait }
