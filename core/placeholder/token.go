package placeholder

// token.go - Grammar for reference tokens. The canonical form is the
// two-field `(REF:<id>.<FIELD>)`; the older single-field form is not
// recognized.

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// RefField is the referenced field of a reference token.
type RefField string

// Reference token fields.
const (
	FieldName        RefField = "NAME"
	FieldDescription RefField = "DESCRIPTION"
)

// MalformedPlaceholderError reports a reference token that cannot be
// parsed: unterminated, or missing its field part.
type MalformedPlaceholderError struct {
	Token  string // the offending token text, as authored
	Reason string
}

func (e *MalformedPlaceholderError) Error() string {
	return fmt.Sprintf("malformed placeholder %q: %s", e.Token, e.Reason)
}

func (e *MalformedPlaceholderError) Unwrap() error {
	return cperrors.ErrInvalidInput
}

// UnknownReferenceIDError reports a reference to an ID that no element has.
type UnknownReferenceIDError struct {
	RefID string
	Field RefField
}

func (e *UnknownReferenceIDError) Error() string {
	return fmt.Sprintf("reference (REF:%s.%s): unknown element ID %q", e.RefID, e.Field, e.RefID)
}

func (e *UnknownReferenceIDError) Unwrap() error {
	return cperrors.ErrNotFound
}

// InvalidReferenceFieldError reports a reference whose field is not
// available on the target: either a field outside the grammar, or
// DESCRIPTION on a non-trait element.
type InvalidReferenceFieldError struct {
	RefID string
	Field string
	Got   string // target kind, empty when the field itself is unknown
}

func (e *InvalidReferenceFieldError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("reference (REF:%s.%s): %q is a %s, field %s is only valid for traits",
			e.RefID, e.Field, e.RefID, e.Got, e.Field)
	}
	return fmt.Sprintf("reference (REF:%s.%s): unknown field %q", e.RefID, e.Field, e.Field)
}

func (e *InvalidReferenceFieldError) Unwrap() error {
	return cperrors.ErrInvalidInput
}

// refGrammar is the participle grammar for a reference token.
//
type refGrammar struct {
	ID    string `parser:"'(' 'REF' ':' @Word"`
	Field string `parser:"'.' @Word ')'"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[A-Za-z0-9_-]+`},
	{Name: "Punct", Pattern: `[():.]`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// refToken is a parsed, field-validated reference token.
type refToken struct {
	id    string
	field RefField
}

// parseRefToken parses one complete reference token, parens included.
// The field name is case-insensitive.
func parseRefToken(token string) (refToken, error) {
	parsed, err := refParser.ParseString("", token)
	if err != nil {
		reason := "missing field"
		if !strings.Contains(token, ".") {
			reason = "missing field separator"
		}
		return refToken{}, &MalformedPlaceholderError{Token: token, Reason: reason}
	}
	switch {
	case strings.EqualFold(parsed.Field, string(FieldName)):
		return refToken{id: parsed.ID, field: FieldName}, nil
	case strings.EqualFold(parsed.Field, string(FieldDescription)):
		return refToken{id: parsed.ID, field: FieldDescription}, nil
	default:
		return refToken{}, &InvalidReferenceFieldError{RefID: parsed.ID, Field: parsed.Field}
	}
}
