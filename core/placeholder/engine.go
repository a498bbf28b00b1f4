// Package placeholder expands raw authored text into final print text plus
// per-character style classifications. Two grammars are recognized: a
// closed table of parenthesized keywords mapping to icon glyphs, and
// reference tokens `(REF:<id>.<FIELD>)` resolving to another element's name
// or description. Failures are terminal; there is no partial output.
package placeholder

import (
	"strings"
	"unicode/utf8"

	"github.com/emberdeck/cardpress/core/cards"
)

// refOpen marks the start of a reference token.
const refOpen = "(REF:"

// Lookup resolves element IDs for reference tokens. Satisfied by
// *registry.Registry.
type Lookup interface {
	Element(id string) (cards.GameElement, error)
}

// Result is fully expanded text plus the disjoint 1-indexed rune position
// sets the renderer styles: icon glyphs and reference-name characters.
type Result struct {
	Text          string
	IconPositions []int
	NamePositions []int
}

// spanClass classifies one replacement for downstream styling.
type spanClass int

const (
	classPlain spanClass = iota // no styling, e.g. description splices
	classIcon
	className
)

// span is one pending replacement: the matched byte range of the input
// text and the replacement it expands to. Replacements change the text
// length, so final positions are recomputed during reconstruction by
// accumulating the deltas of all earlier spans.
type span struct {
	start int // byte offset of the match in the input text
	end   int // byte offset one past the match
	repl  string
	class spanClass
}

// Expand expands all placeholders in text. Descriptions are expanded
// first, in one non-recursive pass, so that keywords and name references
// inside a spliced trait description are visible to the second pass.
func Expand(text string, lookup Lookup) (*Result, error) {
	spans, err := collectDescriptionSpans(text, lookup)
	if err != nil {
		return nil, err
	}
	expanded, _, _ := rebuild(text, spans)

	spans, err = collectKeywordAndNameSpans(expanded, lookup)
	if err != nil {
		return nil, err
	}
	final, icons, names := rebuild(expanded, spans)
	return &Result{Text: final, IconPositions: icons, NamePositions: names}, nil
}

// collectDescriptionSpans finds every reference token and produces
// replacement spans for the DESCRIPTION ones. All tokens are validated
// here, so phase two only ever sees tokens this pass approved or spliced
// in.
func collectDescriptionSpans(text string, lookup Lookup) ([]span, error) {
	var spans []span
	for i := 0; i < len(text); {
		rel := strings.Index(text[i:], refOpen)
		if rel < 0 {
			break
		}
		start := i + rel
		tok, end, err := cutRefToken(text, start)
		if err != nil {
			return nil, err
		}
		ref, err := parseRefToken(tok)
		if err != nil {
			return nil, err
		}
		if ref.field == FieldDescription {
			repl, err := descriptionOf(ref.id, lookup)
			if err != nil {
				return nil, err
			}
			spans = append(spans, span{start: start, end: end, repl: repl, class: classPlain})
		}
		i = end
	}
	return spans, nil
}

// collectKeywordAndNameSpans scans left to right for keywords and NAME
// references in a single pass. DESCRIPTION tokens at this point came from
// a spliced description and stay literal: description chains expand one
// level only. Unrecognized parenthesized text is left untouched.
func collectKeywordAndNameSpans(text string, lookup Lookup) ([]span, error) {
	var spans []span
	for i := 0; i < len(text); {
		if text[i] != '(' {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if strings.HasPrefix(text[i:], refOpen) {
			tok, end, err := cutRefToken(text, i)
			if err != nil {
				return nil, err
			}
			ref, err := parseRefToken(tok)
			if err != nil {
				return nil, err
			}
			if ref.field == FieldName {
				repl, err := nameOf(ref.id, lookup)
				if err != nil {
					return nil, err
				}
				spans = append(spans, span{start: i, end: end, repl: repl, class: className})
			}
			i = end
			continue
		}
		if j := strings.IndexByte(text[i:], ')'); j >= 0 {
			candidate := text[i : i+j+1]
			if glyph, ok := keywordGlyphs[candidate]; ok {
				spans = append(spans, span{start: i, end: i + j + 1, repl: glyph, class: classIcon})
				i += j + 1
				continue
			}
		}
		i++
	}
	return spans, nil
}

// cutRefToken cuts the complete reference token starting at start.
func cutRefToken(text string, start int) (token string, end int, err error) {
	stop := strings.IndexByte(text[start:], ')')
	if stop < 0 {
		return "", 0, &MalformedPlaceholderError{Token: text[start:], Reason: "unterminated token"}
	}
	return text[start : start+stop+1], start + stop + 1, nil
}

// descriptionOf resolves a DESCRIPTION reference: the target must be a
// trait; a trailing full stop is stripped so the description splices into
// a sentence.
func descriptionOf(id string, lookup Lookup) (string, error) {
	e, err := lookup.Element(id)
	if err != nil {
		return "", &UnknownReferenceIDError{RefID: id, Field: FieldDescription}
	}
	trait, ok := e.(*cards.Trait)
	if !ok {
		return "", &InvalidReferenceFieldError{
			RefID: id,
			Field: string(FieldDescription),
			Got:   e.ElementKind().String(),
		}
	}
	return strings.TrimSuffix(trait.Description, "."), nil
}

// nameOf resolves a NAME reference to the target's display name, falling
// back to a bracketed placeholder when the target has no name yet.
func nameOf(id string, lookup Lookup) (string, error) {
	e, err := lookup.Element(id)
	if err != nil {
		return "", &UnknownReferenceIDError{RefID: id, Field: FieldName}
	}
	name := e.DisplayName()
	if name == "" {
		switch e.(type) {
		case cards.Card:
			name = "(Card " + id + ")"
		case *cards.Trait:
			name = "(Trait " + id + ")"
		}
	}
	return name, nil
}

// rebuild applies the collected spans in one reconstruction pass. Final
// positions are 1-indexed rune positions over the output text; each span's
// positions account for the length deltas of everything before it.
func rebuild(text string, spans []span) (out string, icons, names []int) {
	var b strings.Builder
	pos := 0 // rune count of output built so far
	last := 0
	for _, s := range spans {
		between := text[last:s.start]
		b.WriteString(between)
		pos += utf8.RuneCountInString(between)

		b.WriteString(s.repl)
		n := utf8.RuneCountInString(s.repl)
		switch s.class {
		case classIcon:
			for p := pos + 1; p <= pos+n; p++ {
				icons = append(icons, p)
			}
		case className:
			for p := pos + 1; p <= pos+n; p++ {
				names = append(names, p)
			}
		}
		pos += n
		last = s.end
	}
	b.WriteString(text[last:])
	return b.String(), icons, names
}
