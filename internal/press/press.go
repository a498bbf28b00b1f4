// Package press derives print-ready card assets: plain card fields plus
// fully expanded text with the rune-position sets the rendering backend
// styles. This is the last stop before the illustration tooling; its JSON
// output is the contract with that backend.
package press

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
	"github.com/emberdeck/cardpress/core/placeholder"
	"github.com/emberdeck/cardpress/core/printing"
	"github.com/emberdeck/cardpress/core/registry"
	"github.com/emberdeck/cardpress/internal/logging"
)

// Derived assets are immutable, so the cache only exists to bound rebuild
// work during interactive sessions; expiry is generous.
const (
	cacheExpiration      = 30 * time.Minute
	cacheCleanupInterval = time.Hour
)

// StyledText is expanded text plus the disjoint 1-indexed rune position
// sets the renderer styles.
type StyledText struct {
	Text          string `json:"text"`
	IconPositions []int  `json:"icon-positions,omitempty"`
	NamePositions []int  `json:"name-positions,omitempty"`
}

// TraitBlock is one rendered trait line on a creature card.
type TraitBlock struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description StyledText `json:"description"`
}

// AttackBlock is one of a creature's two attack slots.
type AttackBlock struct {
	Base        *int        `json:"base,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description *StyledText `json:"description,omitempty"`
	Variable    *int        `json:"variable,omitempty"`
}

// Asset is one card, fully derived for rendering.
type Asset struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Number int    `json:"number"`
	Total  int    `json:"total"`

	Color     *string `json:"color,omitempty"`
	CostTotal *int    `json:"cost-total,omitempty"`
	CostColor *int    `json:"cost-color,omitempty"`

	// Creature fields.
	IsToken      bool         `json:"is-token,omitempty"`
	HP           *int         `json:"hp,omitempty"`
	Speed        *int         `json:"spe,omitempty"`
	AtkStrong    *AttackBlock `json:"atk-strong,omitempty"`
	AtkTechnical *AttackBlock `json:"atk-technical,omitempty"`
	Traits       []TraitBlock `json:"traits,omitempty"`

	// Effect fields.
	EffectType  string      `json:"effect-type,omitempty"`
	Description *StyledText `json:"description,omitempty"`

	FlavorText string `json:"flavor-text,omitempty"`
}

// Deriver turns a frozen registry into per-card assets. The print sequence
// is built once up front; per-card derivation is independent after that and
// safe to parallelize.
type Deriver struct {
	reg     *registry.Registry
	seq     *printing.Sequence
	workers int
	cache   *gocache.Cache
}

// NewDeriver builds the print sequence and returns a deriver. workers <= 0
// means one worker per CPU.
func NewDeriver(reg *registry.Registry, workers int) *Deriver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Deriver{
		reg:     reg,
		seq:     printing.Printable(reg),
		workers: workers,
		cache:   gocache.New(cacheExpiration, cacheCleanupInterval),
	}
}

// Sequence returns the print sequence the deriver numbers cards against.
func (d *Deriver) Sequence() *printing.Sequence {
	return d.seq
}

// Derive derives the asset for one card by ID.
func (d *Deriver) Derive(id string) (*Asset, error) {
	if hit, ok := d.cache.Get(id); ok {
		if a, ok := hit.(*Asset); ok {
			return a, nil
		}
	}
	card, err := d.reg.Card(id)
	if err != nil {
		return nil, err
	}
	a, err := d.derive(card)
	if err != nil {
		return nil, err
	}
	d.cache.Set(id, a, gocache.DefaultExpiration)
	return a, nil
}

// DeriveAll derives every printable card in print order, with a bounded
// worker pool. The first failure cancels outstanding work.
func (d *Deriver) DeriveAll(ctx context.Context) ([]*Asset, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	list := d.seq.Cards()
	assets := make([]*Asset, len(list))
	jobs := make(chan int)
	errs := make(chan error, d.workers)

	var wg sync.WaitGroup
	for w := 0; w < d.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a, err := d.Derive(list[i].ElementID())
				if err != nil {
					errs <- err
					cancel()
					return
				}
				assets[i] = a
			}
		}()
	}

	for i := range list {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// WriteDir derives every printable card and writes one JSON asset per card
// plus an index file, for the rendering backend to consume.
func (d *Deriver) WriteDir(ctx context.Context, dir string) error {
	logger := logging.LoggerFromContext(ctx)
	assets, err := d.DeriveAll(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cperrors.NewIO("mkdir", dir, err)
	}
	index := make([]string, 0, len(assets))
	for _, a := range assets {
		name := fmt.Sprintf("%03d-%s.json", a.Number, a.ID)
		if err := writeJSON(filepath.Join(dir, name), a); err != nil {
			return err
		}
		index = append(index, name)
	}
	if err := writeJSON(filepath.Join(dir, "index.json"), index); err != nil {
		return err
	}
	logger.Info("press output written", "dir", dir, "cards", len(assets))
	return nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return cperrors.NewIO("write", path, err)
	}
	return nil
}

// derive builds one card's asset. The card is known to be in the sequence.
func (d *Deriver) derive(card cards.Card) (*Asset, error) {
	number, err := d.seq.NumberOf(card.ElementID())
	if err != nil {
		return nil, err
	}
	a := &Asset{
		ID:        card.ElementID(),
		Kind:      card.ElementKind().String(),
		Name:      card.DisplayName(),
		Number:    number,
		Total:     d.seq.Len(),
		CostTotal: card.TotalCost(),
		CostColor: card.ColorCost(),
	}
	if c := card.CardColor(); c != nil {
		s := c.String()
		a.Color = &s
	}
	switch v := card.(type) {
	case *cards.Creature:
		err = d.deriveCreature(a, v)
	case *cards.Effect:
		err = d.deriveEffect(a, v)
	}
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", card.ElementID(), err)
	}
	return a, nil
}

func (d *Deriver) deriveCreature(a *Asset, c *cards.Creature) error {
	a.IsToken = c.IsToken
	a.HP = c.HP
	a.Speed = c.Speed
	a.FlavorText = c.FlavorText

	var err error
	if a.AtkStrong, err = d.deriveSlot(c.AtkStrong); err != nil {
		return err
	}
	if a.AtkTechnical, err = d.deriveSlot(c.AtkTechnical); err != nil {
		return err
	}

	// Tokens lead with the synthetic token-rules trait.
	if c.IsToken {
		desc, err := d.expand(placeholder.TokenTraitDescription)
		if err != nil {
			return err
		}
		a.Traits = append(a.Traits, TraitBlock{
			Name:        placeholder.TokenTraitName,
			Description: *desc,
		})
	}
	for _, t := range c.Traits {
		desc, err := d.expand(t.Description)
		if err != nil {
			return fmt.Errorf("trait %s: %w", t.ID, err)
		}
		a.Traits = append(a.Traits, TraitBlock{
			ID:          t.ID,
			Name:        t.DisplayName(),
			Description: *desc,
		})
	}
	return nil
}

func (d *Deriver) deriveEffect(a *Asset, e *cards.Effect) error {
	a.EffectType = e.Type.String()
	a.FlavorText = e.FlavorText
	desc, err := d.expand(e.Description)
	if err != nil {
		return err
	}
	a.Description = desc
	return nil
}

func (d *Deriver) deriveSlot(s cards.AttackSlot) (*AttackBlock, error) {
	if s.IsZero() {
		return nil, nil
	}
	block := &AttackBlock{Base: s.Base, Variable: s.Variable}
	if s.Effect != nil {
		block.Name = s.Effect.DisplayName()
		desc, err := d.expand(s.Effect.Description)
		if err != nil {
			return nil, fmt.Errorf("attack %s: %w", s.Effect.ID, err)
		}
		block.Description = desc
	}
	return block, nil
}

func (d *Deriver) expand(text string) (*StyledText, error) {
	res, err := placeholder.Expand(text, d.reg)
	if err != nil {
		return nil, err
	}
	return &StyledText{
		Text:          res.Text,
		IconPositions: res.IconPositions,
		NamePositions: res.NamePositions,
	}, nil
}
