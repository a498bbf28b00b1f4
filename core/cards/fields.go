package cards

// fields.go - Codec between entities and the flat field maps exchanged with
// persistence adapters. The map shape mirrors the authored file layout
// (data/metadata sections, dashed keys). Values are restricted to the types
// that survive a marshal round-trip in any adapter encoding: string, int,
// bool, nil, []any and map[string]any.

import "fmt"

// Fields is the field-map representation of one entity, as exchanged with
// persistence adapters. Encode(Decode(f)) and Decode(Encode(e)) are both
// lossless for every modeled field.
type Fields = map[string]any

// RefResolver binds authored ID references to already-imported entities.
// Implemented by the registry's resolver; must only be used once the
// referenced kinds are fully imported.
type RefResolver interface {
	ResolveTrait(id string) (*Trait, error)
	ResolveAttack(id string) (*Attack, error)
}

// Encode turns any element into its field map.
func Encode(e GameElement) (Fields, error) {
	switch v := e.(type) {
	case *Mechanic:
		return EncodeMechanic(v), nil
	case *Trait:
		return EncodeTrait(v), nil
	case *Attack:
		return EncodeAttack(v), nil
	case *Creature:
		return EncodeCreature(v), nil
	case *Effect:
		return EncodeEffect(v), nil
	default:
		return nil, fmt.Errorf("encode: unsupported element type %T", e)
	}
}

// Decode turns a field map of the given kind back into an element.
// The resolver is only consulted for creatures; it may be nil for the
// other kinds.
func Decode(kind Kind, f Fields, r RefResolver) (GameElement, error) {
	switch kind {
	case KindMechanic:
		return DecodeMechanic(f)
	case KindTrait:
		return DecodeTrait(f)
	case KindAttack:
		return DecodeAttack(f)
	case KindCreature:
		return DecodeCreature(f, r)
	case KindEffect:
		return DecodeEffect(f)
	default:
		return nil, fmt.Errorf("decode: unknown kind %q", kind)
	}
}

// EncodeMechanic encodes a mechanic. Mechanics use a flat map, no
// data/metadata split.
func EncodeMechanic(m *Mechanic) Fields {
	return Fields{
		"name":      m.Name,
		"id":        m.ID,
		"colors":    encodeColors(m.Colors),
		"dev-stage": m.DevStage.String(),
		"order":     encodeOptInt(m.Order),
		"notes":     m.Notes,
	}
}

// DecodeMechanic decodes a mechanic field map.
func DecodeMechanic(f Fields) (*Mechanic, error) {
	id := getString(f, "id")
	if err := CheckID(KindMechanic, id); err != nil {
		return nil, err
	}
	stage, err := ParseDevStage(getString(f, "dev-stage"))
	if err != nil {
		return nil, fmt.Errorf("mechanic %s: %w", id, err)
	}
	colors, err := decodeColors(f["colors"])
	if err != nil {
		return nil, fmt.Errorf("mechanic %s: %w", id, err)
	}
	order, err := getOptInt(f, "order")
	if err != nil {
		return nil, fmt.Errorf("mechanic %s: %w", id, err)
	}
	return &Mechanic{
		ID:       id,
		Name:     getString(f, "name"),
		Colors:   colors,
		DevStage: stage,
		Order:    order,
		Notes:    getString(f, "notes"),
	}, nil
}

// EncodeTrait encodes a trait.
func EncodeTrait(t *Trait) Fields {
	return Fields{
		"data": map[string]any{
			"name":        t.Name,
			"description": t.Description,
		},
		"metadata": map[string]any{
			"id":        t.ID,
			"type":      t.Type.String(),
			"value":     encodeOptInt(t.Value),
			"colors":    encodeColors(t.Colors),
			"dev-stage": t.DevStage.String(),
			"dev-name":  t.DevName,
			"order":     encodeOptInt(t.Order),
			"summary":   t.Summary,
			"notes":     t.Notes,
		},
	}
}

// DecodeTrait decodes a trait field map.
func DecodeTrait(f Fields) (*Trait, error) {
	data, meta, err := sections(f)
	if err != nil {
		return nil, fmt.Errorf("trait: %w", err)
	}
	id := getString(meta, "id")
	if err := CheckID(KindTrait, id); err != nil {
		return nil, err
	}
	typ, err := ParseTraitType(getString(meta, "type"))
	if err != nil {
		return nil, fmt.Errorf("trait %s: %w", id, err)
	}
	stage, err := ParseDevStage(getString(meta, "dev-stage"))
	if err != nil {
		return nil, fmt.Errorf("trait %s: %w", id, err)
	}
	value, err := getOptInt(meta, "value")
	if err != nil {
		return nil, fmt.Errorf("trait %s: %w", id, err)
	}
	order, err := getOptInt(meta, "order")
	if err != nil {
		return nil, fmt.Errorf("trait %s: %w", id, err)
	}
	colors, err := decodeColors(meta["colors"])
	if err != nil {
		return nil, fmt.Errorf("trait %s: %w", id, err)
	}
	return &Trait{
		ID:          id,
		Name:        getString(data, "name"),
		Description: getString(data, "description"),
		Type:        typ,
		Value:       value,
		Colors:      colors,
		DevStage:    stage,
		DevName:     getString(meta, "dev-name"),
		Order:       order,
		Summary:     getString(meta, "summary"),
		Notes:       getString(meta, "notes"),
	}, nil
}

// EncodeAttack encodes an attack.
func EncodeAttack(a *Attack) Fields {
	return Fields{
		"data": map[string]any{
			"name":        a.Name,
			"description": a.Description,
		},
		"metadata": map[string]any{
			"id":        a.ID,
			"value":     encodeOptInt(a.Value),
			"colors":    encodeColors(a.Colors),
			"dev-stage": a.DevStage.String(),
			"dev-name":  a.DevName,
			"order":     encodeOptInt(a.Order),
			"summary":   a.Summary,
			"notes":     a.Notes,
		},
	}
}

// DecodeAttack decodes an attack field map.
func DecodeAttack(f Fields) (*Attack, error) {
	data, meta, err := sections(f)
	if err != nil {
		return nil, fmt.Errorf("attack: %w", err)
	}
	id := getString(meta, "id")
	if err := CheckID(KindAttack, id); err != nil {
		return nil, err
	}
	stage, err := ParseDevStage(getString(meta, "dev-stage"))
	if err != nil {
		return nil, fmt.Errorf("attack %s: %w", id, err)
	}
	value, err := getOptInt(meta, "value")
	if err != nil {
		return nil, fmt.Errorf("attack %s: %w", id, err)
	}
	order, err := getOptInt(meta, "order")
	if err != nil {
		return nil, fmt.Errorf("attack %s: %w", id, err)
	}
	colors, err := decodeColors(meta["colors"])
	if err != nil {
		return nil, fmt.Errorf("attack %s: %w", id, err)
	}
	return &Attack{
		ID:          id,
		Name:        getString(data, "name"),
		Description: getString(data, "description"),
		Value:       value,
		Colors:      colors,
		DevStage:    stage,
		DevName:     getString(meta, "dev-name"),
		Order:       order,
		Summary:     getString(meta, "summary"),
		Notes:       getString(meta, "notes"),
	}, nil
}

// EncodeCreature encodes a creature. Trait and attack bindings are stored
// by ID only; the referenced entities are authoritative for their content.
func EncodeCreature(c *Creature) Fields {
	var traits any
	if len(c.Traits) > 0 {
		list := make([]any, 0, len(c.Traits))
		for _, t := range c.Traits {
			list = append(list, map[string]any{"id": t.ID})
		}
		traits = list
	}
	return Fields{
		"data": map[string]any{
			"name":                 c.Name,
			"color":                encodeOptColor(c.Color),
			"is-token":             c.IsToken,
			"cost-total":           encodeOptInt(c.CostTotal),
			"cost-color":           encodeOptInt(c.CostColor),
			"hp":                   encodeOptInt(c.HP),
			"spe":                  encodeOptInt(c.Speed),
			"traits":               traits,
			"atk-strong":           encodeOptInt(c.AtkStrong.Base),
			"atk-strong-effect":    encodeSlotEffect(c.AtkStrong),
			"atk-technical":        encodeOptInt(c.AtkTechnical.Base),
			"atk-technical-effect": encodeSlotEffect(c.AtkTechnical),
			"flavor-text":          c.FlavorText,
		},
		"metadata": map[string]any{
			"id":        c.ID,
			"value":     encodeOptInt(c.Value),
			"dev-stage": c.DevStage.String(),
			"dev-name":  c.DevName,
			"order":     encodeOptInt(c.Order),
			"summary":   c.Summary,
			"notes":     c.Notes,
		},
	}
}

// DecodeCreature decodes a creature field map, binding trait and attack
// references through the resolver. Traits and attacks must already be
// imported.
func DecodeCreature(f Fields, r RefResolver) (*Creature, error) {
	data, meta, err := sections(f)
	if err != nil {
		return nil, fmt.Errorf("creature: %w", err)
	}
	id := getString(meta, "id")
	if err := CheckID(KindCreature, id); err != nil {
		return nil, err
	}
	stage, err := ParseDevStage(getString(meta, "dev-stage"))
	if err != nil {
		return nil, fmt.Errorf("creature %s: %w", id, err)
	}
	color, err := decodeOptColor(data["color"])
	if err != nil {
		return nil, fmt.Errorf("creature %s: %w", id, err)
	}

	c := &Creature{
		ID:         id,
		Name:       getString(data, "name"),
		Color:      color,
		IsToken:    getBool(data, "is-token"),
		FlavorText: getString(data, "flavor-text"),
		DevStage:   stage,
		DevName:    getString(meta, "dev-name"),
		Summary:    getString(meta, "summary"),
		Notes:      getString(meta, "notes"),
	}
	for key, dst := range map[string]**int{
		"cost-total": &c.CostTotal,
		"cost-color": &c.CostColor,
		"hp":         &c.HP,
		"spe":        &c.Speed,
	} {
		if *dst, err = getOptInt(data, key); err != nil {
			return nil, fmt.Errorf("creature %s: %w", id, err)
		}
	}
	if c.Value, err = getOptInt(meta, "value"); err != nil {
		return nil, fmt.Errorf("creature %s: %w", id, err)
	}
	if c.Order, err = getOptInt(meta, "order"); err != nil {
		return nil, fmt.Errorf("creature %s: %w", id, err)
	}

	if c.AtkStrong, err = decodeSlot(data, "atk-strong", r); err != nil {
		return nil, fmt.Errorf("creature %s: %w", id, err)
	}
	if c.AtkTechnical, err = decodeSlot(data, "atk-technical", r); err != nil {
		return nil, fmt.Errorf("creature %s: %w", id, err)
	}

	if raw, ok := data["traits"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("creature %s: field traits: expected a list, got %T", id, raw)
		}
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("creature %s: field traits: expected a map entry, got %T", id, item)
			}
			trait, err := r.ResolveTrait(getString(entry, "id"))
			if err != nil {
				return nil, fmt.Errorf("creature %s: field traits: %w", id, err)
			}
			c.Traits = append(c.Traits, trait)
		}
	}
	return c, nil
}

// EncodeEffect encodes an effect.
func EncodeEffect(e *Effect) Fields {
	return Fields{
		"data": map[string]any{
			"name":        e.Name,
			"color":       encodeOptColor(e.Color),
			"type":        e.Type.String(),
			"cost-total":  encodeOptInt(e.CostTotal),
			"cost-color":  encodeOptInt(e.CostColor),
			"description": e.Description,
			"flavor-text": e.FlavorText,
		},
		"metadata": map[string]any{
			"id":        e.ID,
			"dev-stage": e.DevStage.String(),
			"dev-name":  e.DevName,
			"order":     encodeOptInt(e.Order),
			"summary":   e.Summary,
			"notes":     e.Notes,
		},
	}
}

// DecodeEffect decodes an effect field map.
func DecodeEffect(f Fields) (*Effect, error) {
	data, meta, err := sections(f)
	if err != nil {
		return nil, fmt.Errorf("effect: %w", err)
	}
	id := getString(meta, "id")
	if err := CheckID(KindEffect, id); err != nil {
		return nil, err
	}
	typ, err := ParseEffectType(getString(data, "type"))
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", id, err)
	}
	stage, err := ParseDevStage(getString(meta, "dev-stage"))
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", id, err)
	}
	color, err := decodeOptColor(data["color"])
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", id, err)
	}
	e := &Effect{
		ID:          id,
		Name:        getString(data, "name"),
		Color:       color,
		Type:        typ,
		Description: getString(data, "description"),
		FlavorText:  getString(data, "flavor-text"),
		DevStage:    stage,
		DevName:     getString(meta, "dev-name"),
		Summary:     getString(meta, "summary"),
		Notes:       getString(meta, "notes"),
	}
	if e.CostTotal, err = getOptInt(data, "cost-total"); err != nil {
		return nil, fmt.Errorf("effect %s: %w", id, err)
	}
	if e.CostColor, err = getOptInt(data, "cost-color"); err != nil {
		return nil, fmt.Errorf("effect %s: %w", id, err)
	}
	if e.Order, err = getOptInt(meta, "order"); err != nil {
		return nil, fmt.Errorf("effect %s: %w", id, err)
	}
	return e, nil
}

// encodeSlotEffect encodes the bound-attack part of an attack slot.
func encodeSlotEffect(s AttackSlot) any {
	if s.Effect == nil {
		return nil
	}
	m := map[string]any{"id": s.Effect.ID}
	if s.Variable != nil {
		m["variable"] = *s.Variable
	}
	return m
}

// decodeSlot decodes one attack slot from its base and effect keys.
func decodeSlot(data map[string]any, key string, r RefResolver) (AttackSlot, error) {
	var slot AttackSlot
	var err error
	if slot.Base, err = getOptInt(data, key); err != nil {
		return slot, err
	}
	raw, ok := data[key+"-effect"]
	if !ok || raw == nil {
		return slot, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return slot, fmt.Errorf("field %s-effect: expected a map, got %T", key, raw)
	}
	if slot.Effect, err = r.ResolveAttack(getString(m, "id")); err != nil {
		return slot, fmt.Errorf("field %s-effect: %w", key, err)
	}
	if slot.Variable, err = getOptInt(m, "variable"); err != nil {
		return slot, fmt.Errorf("field %s-effect: %w", key, err)
	}
	return slot, nil
}

func encodeOptInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func encodeOptColor(c *Color) any {
	if c == nil {
		return nil
	}
	return c.String()
}

func decodeOptColor(raw any) (*Color, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("field color: expected a string, got %T", raw)
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// encodeColors encodes a color affinity triple; nil when empty so that
// encodings with no empty-map/nil distinction stay lossless.
func encodeColors(a ColorAffinity) any {
	if a.IsZero() {
		return nil
	}
	m := map[string]any{}
	for key, group := range map[string][]Color{
		"primary":   a.Primary,
		"secondary": a.Secondary,
		"tertiary":  a.Tertiary,
	} {
		if len(group) == 0 {
			continue
		}
		list := make([]any, 0, len(group))
		for _, c := range group {
			list = append(list, c.String())
		}
		m[key] = list
	}
	return m
}

func decodeColors(raw any) (ColorAffinity, error) {
	var a ColorAffinity
	if raw == nil {
		return a, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return a, fmt.Errorf("field colors: expected a map, got %T", raw)
	}
	for key, dst := range map[string]*[]Color{
		"primary":   &a.Primary,
		"secondary": &a.Secondary,
		"tertiary":  &a.Tertiary,
	} {
		raw, ok := m[key]
		if !ok || raw == nil {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			return a, fmt.Errorf("field colors.%s: expected a list, got %T", key, raw)
		}
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return a, fmt.Errorf("field colors.%s: expected a string, got %T", key, item)
			}
			c, err := ParseColor(s)
			if err != nil {
				return a, fmt.Errorf("field colors.%s: %w", key, err)
			}
			*dst = append(*dst, c)
		}
	}
	return a, nil
}

// sections splits a field map into its data and metadata sections.
func sections(f Fields) (data, meta map[string]any, err error) {
	var ok bool
	if data, ok = f["data"].(map[string]any); !ok {
		return nil, nil, fmt.Errorf("missing data section")
	}
	if meta, ok = f["metadata"].(map[string]any); !ok {
		return nil, nil, fmt.Errorf("missing metadata section")
	}
	return data, meta, nil
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// getOptInt reads an optional integer field. Absent and nil both mean
// undefined. Accepts the integer widths produced by the adapter decoders.
func getOptInt(m map[string]any, key string) (*int, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case float64:
		n := int(v)
		if float64(n) != v {
			return nil, fmt.Errorf("field %s: expected an integer, got %v", key, v)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("field %s: expected an integer, got %T", key, raw)
	}
}
