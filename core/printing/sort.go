// Package printing derives the print sequence: the canonical card ordering,
// the playability filter, and stable 1-based print numbers over the
// filtered sequence.
package printing

import (
	"math"
	"sort"

	"github.com/emberdeck/cardpress/core/cards"
)

// Filter selects which cards belong in a sequence.
type Filter func(cards.Card) bool

// NoFilter keeps every card.
func NoFilter(cards.Card) bool { return true }

// IsPlayable keeps only cards whose dev stage allows print and play.
func IsPlayable(c cards.Card) bool { return c.Playable() }

// sortKey is the composite comparison key of the canonical ordering,
// most significant field first.
type sortKey struct {
	notPlayable int
	stageWeight int // 0 for playable cards
	isToken     int
	colorWeight int // undefined color sorts last
	isEffect    int
	costTotal   int // undefined cost sorts last
	name        string
}

func keyOf(c cards.Card) sortKey {
	k := sortKey{name: c.DisplayName()}
	if !c.Playable() {
		k.notPlayable = 1
		k.stageWeight = c.Stage().SortKey()
	}
	switch v := c.(type) {
	case *cards.Creature:
		if v.IsToken {
			k.isToken = 1
		}
	case *cards.Effect:
		k.isEffect = 1
	}
	if col := c.CardColor(); col != nil {
		k.colorWeight = col.SortKey()
	} else {
		k.colorWeight = math.MaxInt
	}
	if cost := c.TotalCost(); cost != nil {
		k.costTotal = *cost
	} else {
		k.costTotal = math.MaxInt
	}
	return k
}

func (a sortKey) less(b sortKey) bool {
	if a.notPlayable != b.notPlayable {
		return a.notPlayable < b.notPlayable
	}
	if a.stageWeight != b.stageWeight {
		return a.stageWeight < b.stageWeight
	}
	if a.isToken != b.isToken {
		return a.isToken < b.isToken
	}
	if a.colorWeight != b.colorWeight {
		return a.colorWeight < b.colorWeight
	}
	if a.isEffect != b.isEffect {
		return a.isEffect < b.isEffect
	}
	if a.costTotal != b.costTotal {
		return a.costTotal < b.costTotal
	}
	return a.name < b.name
}

// CanonicalLess reports whether a sorts before b in the canonical print
// ordering. Equal keys compare false both ways; a stable sort preserves
// registration order for them.
func CanonicalLess(a, b cards.Card) bool {
	return keyOf(a).less(keyOf(b))
}

// SortCanonical stable-sorts a copy of the given cards into canonical
// order. The input slice is not modified.
func SortCanonical(list []cards.Card) []cards.Card {
	out := make([]cards.Card, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return CanonicalLess(out[i], out[j])
	})
	return out
}
