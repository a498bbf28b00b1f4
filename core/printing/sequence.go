package printing

import (
	"fmt"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// NotPrintableError reports a print-number query for a card that the
// playability filter excluded. Expected in speculative queries.
type NotPrintableError struct {
	ID string
}

func (e *NotPrintableError) Error() string {
	return fmt.Sprintf("card %q doesn't verify the printing criteria", e.ID)
}

func (e *NotPrintableError) Unwrap() error {
	return cperrors.ErrNotFound
}

// CardSource is the card supply a sequence is built from. Satisfied by
// *registry.Registry.
type CardSource interface {
	Cards() []cards.Card
}

// Sequence is a filtered, canonically ordered card list with stable
// 1-based print numbers. Build it once after the registry is frozen;
// afterwards it is read-only and safe for concurrent use.
type Sequence struct {
	cards   []cards.Card
	numbers map[string]int
}

// NewSequence filters and stable-sorts the given cards into a sequence.
func NewSequence(list []cards.Card, keep Filter) *Sequence {
	filtered := make([]cards.Card, 0, len(list))
	for _, c := range list {
		if keep(c) {
			filtered = append(filtered, c)
		}
	}
	ordered := SortCanonical(filtered)
	numbers := make(map[string]int, len(ordered))
	for i, c := range ordered {
		numbers[c.ElementID()] = i + 1
	}
	return &Sequence{cards: ordered, numbers: numbers}
}

// Printable builds the print sequence: playable cards only, canonical
// order.
func Printable(src CardSource) *Sequence {
	return NewSequence(src.Cards(), IsPlayable)
}

// Cards returns the ordered cards. The caller must not modify the slice.
func (s *Sequence) Cards() []cards.Card {
	return s.cards
}

// Len returns the number of cards in the sequence.
func (s *Sequence) Len() int {
	return len(s.cards)
}

// NumberOf returns the 1-based print number of the card with the given ID.
// Fails with *NotPrintableError when the card is not in the sequence.
func (s *Sequence) NumberOf(id string) (int, error) {
	n, ok := s.numbers[id]
	if !ok {
		return 0, &NotPrintableError{ID: id}
	}
	return n, nil
}
