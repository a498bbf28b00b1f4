package cards

// Mechanic is a game mechanic relevant enough to be catalogued and
// version-controlled. Mechanics are never referenced by other elements.
type Mechanic struct {
	ID     string
	Name   string
	Colors ColorAffinity

	DevStage DevStage
	Order    *int
	Notes    string
}

func (m *Mechanic) ElementID() string { return m.ID }

// DisplayName returns the mechanic's name. Mechanics have no dev name.
func (m *Mechanic) DisplayName() string { return m.Name }

func (m *Mechanic) Stage() DevStage { return m.DevStage }

func (m *Mechanic) ElementKind() Kind { return KindMechanic }
