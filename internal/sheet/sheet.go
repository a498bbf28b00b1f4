// Package sheet exchanges a catalog with SpreadsheetML 2003 workbooks, one
// worksheet per kind. Nested field maps are flattened into dotted column
// keys so a whole kind fits a rectangular grid; cell types carry the value
// types back out losslessly.
package sheet

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

var (
	worksheetQuery = xpath.MustCompile("//Worksheet")
	rowQuery       = xpath.MustCompile("Table/Row")
	cellQuery      = xpath.MustCompile("Cell")
)

// Workbook is an in-memory catalog keyed by kind and entity ID, as read
// from or written to one SpreadsheetML file.
type Workbook struct {
	kinds map[cards.Kind]map[string]cards.Fields
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{kinds: make(map[cards.Kind]map[string]cards.Fields)}
}

// ListIDs returns the IDs present on one kind's worksheet, sorted.
func (w *Workbook) ListIDs(kind cards.Kind) ([]string, error) {
	var ids []string
	for id := range w.kinds[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Load returns one entity's field map.
func (w *Workbook) Load(kind cards.Kind, id string) (cards.Fields, error) {
	f, ok := w.kinds[kind][id]
	if !ok {
		return nil, cperrors.NewNotFound(kind.String(), id)
	}
	return f, nil
}

// Save records one entity's field map.
func (w *Workbook) Save(kind cards.Kind, id string, f cards.Fields) error {
	if w.kinds[kind] == nil {
		w.kinds[kind] = make(map[string]cards.Fields)
	}
	w.kinds[kind][id] = f
	return nil
}

// ReadFile parses a SpreadsheetML workbook. Worksheets whose name does not
// match a kind are ignored.
func ReadFile(path string) (*Workbook, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, cperrors.NewIO("open", path, err)
	}
	defer fh.Close()

	doc, err := xmlquery.Parse(fh)
	if err != nil {
		return nil, cperrors.NewParse("SpreadsheetML", path, err.Error())
	}

	w := NewWorkbook()
	for _, ws := range xmlquery.QuerySelectorAll(doc, worksheetQuery) {
		kind, err := cards.ParseKind(ssAttr(ws, "Name"))
		if err != nil {
			continue
		}
		if err := w.readWorksheet(kind, ws); err != nil {
			return nil, cperrors.NewParse("SpreadsheetML", path, err.Error())
		}
	}
	return w, nil
}

// readWorksheet decodes one kind's grid: the first row holds the dotted
// column keys, each following row one entity.
func (w *Workbook) readWorksheet(kind cards.Kind, ws *xmlquery.Node) error {
	rows := xmlquery.QuerySelectorAll(ws, rowQuery)
	if len(rows) == 0 {
		return nil
	}
	var columns []string
	for _, cell := range xmlquery.QuerySelectorAll(rows[0], cellQuery) {
		columns = append(columns, cellText(cell))
	}
	for n, row := range rows[1:] {
		fields := cards.Fields{}
		col := 0
		for _, cell := range xmlquery.QuerySelectorAll(row, cellQuery) {
			// ss:Index skips empty cells.
			if idx := ssAttr(cell, "Index"); idx != "" {
				i, err := strconv.Atoi(idx)
				if err != nil || i < 1 || i > len(columns) {
					return fmt.Errorf("worksheet %s row %d: bad cell index %q", kind, n+2, idx)
				}
				col = i - 1
			}
			if col >= len(columns) {
				return fmt.Errorf("worksheet %s row %d: more cells than columns", kind, n+2)
			}
			value, ok, err := cellValue(cell)
			if err != nil {
				return fmt.Errorf("worksheet %s row %d column %s: %w", kind, n+2, columns[col], err)
			}
			if ok {
				if err := setFlat(fields, columns[col], value); err != nil {
					return fmt.Errorf("worksheet %s row %d: %w", kind, n+2, err)
				}
			}
			col++
		}
		settleLists(fields)
		id, err := fieldID(kind, fields)
		if err != nil {
			return fmt.Errorf("worksheet %s row %d: %w", kind, n+2, err)
		}
		if err := w.Save(kind, id, fields); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the workbook as one SpreadsheetML file, one worksheet
// per kind that has entities, columns sorted, rows sorted by ID.
func (w *Workbook) WriteFile(path string) error {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"` + "\n")
	b.WriteString(` xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">` + "\n")
	for _, kind := range cards.Kinds {
		entities := w.kinds[kind]
		if len(entities) == 0 {
			continue
		}
		if err := writeWorksheet(&b, kind, entities); err != nil {
			return err
		}
	}
	b.WriteString("</Workbook>\n")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return cperrors.NewIO("write", path, err)
	}
	return nil
}

func writeWorksheet(b *strings.Builder, kind cards.Kind, entities map[string]cards.Fields) error {
	flatByID := make(map[string]map[string]any, len(entities))
	columnSet := map[string]bool{}
	for id, fields := range entities {
		flat := map[string]any{}
		flattenInto(flat, "", fields)
		flatByID[id] = flat
		for key := range flat {
			columnSet[key] = true
		}
	}
	columns := make([]string, 0, len(columnSet))
	for key := range columnSet {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	ids := make([]string, 0, len(flatByID))
	for id := range flatByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(b, " <Worksheet ss:Name=%q>\n  <Table>\n", kind.String())
	b.WriteString("   <Row>")
	for _, key := range columns {
		writeCell(b, "String", key)
	}
	b.WriteString("</Row>\n")
	for _, id := range ids {
		flat := flatByID[id]
		b.WriteString("   <Row>")
		for _, key := range columns {
			value, ok := flat[key]
			if !ok || value == nil {
				b.WriteString("<Cell/>")
				continue
			}
			switch v := value.(type) {
			case string:
				writeCell(b, "String", v)
			case int:
				writeCell(b, "Number", strconv.Itoa(v))
			case bool:
				n := "0"
				if v {
					n = "1"
				}
				writeCell(b, "Boolean", n)
			default:
				return fmt.Errorf("worksheet %s entity %s column %s: unsupported value type %T", kind, id, key, value)
			}
		}
		b.WriteString("</Row>\n")
	}
	b.WriteString("  </Table>\n </Worksheet>\n")
	return nil
}

func writeCell(b *strings.Builder, typ, text string) {
	var escaped strings.Builder
	xml.EscapeText(&escaped, []byte(text))
	fmt.Fprintf(b, `<Cell><Data ss:Type="%s">%s</Data></Cell>`, typ, escaped.String())
}

// cellValue reads one typed cell. ok is false for empty cells; empty cells
// decode as absent keys, which every field codec treats like nil.
func cellValue(cell *xmlquery.Node) (value any, ok bool, err error) {
	data := cell.SelectElement("Data")
	if data == nil {
		return nil, false, nil
	}
	text := data.InnerText()
	switch typ := ssAttr(data, "Type"); typ {
	case "String", "":
		return text, true, nil
	case "Number":
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, false, fmt.Errorf("non-integer number %q", text)
		}
		return n, true, nil
	case "Boolean":
		switch text {
		case "1":
			return true, true, nil
		case "0":
			return false, true, nil
		}
		return nil, false, fmt.Errorf("bad boolean %q", text)
	default:
		return nil, false, fmt.Errorf("unsupported cell type %q", typ)
	}
}

// ssAttr reads an attribute that SpreadsheetML writers emit either with or
// without the ss namespace prefix.
func ssAttr(n *xmlquery.Node, name string) string {
	if v := n.SelectAttr("ss:" + name); v != "" {
		return v
	}
	return n.SelectAttr(name)
}

func cellText(cell *xmlquery.Node) string {
	if data := cell.SelectElement("Data"); data != nil {
		return data.InnerText()
	}
	return ""
}

// flattenInto maps a nested field map onto dotted column keys. List
// elements use their numeric index as the key segment, zero-padded so
// lexicographic column order matches index order.
func flattenInto(flat map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			flattenInto(flat, joinKey(prefix, key), item)
		}
	case []any:
		for i, item := range v {
			flattenInto(flat, joinKey(prefix, fmt.Sprintf("%04d", i)), item)
		}
	default:
		if prefix != "" {
			flat[prefix] = v
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// setFlat rebuilds the nested structure one dotted key at a time. Numeric
// segments address list elements and must arrive in index order, which
// sorted columns guarantee for the zero-padded indexes the writer emits.
func setFlat(fields cards.Fields, key string, value any) error {
	segments := strings.Split(key, ".")
	var container any = fields
	for i, seg := range segments[:len(segments)-1] {
		next, err := descend(container, seg, segments[i+1])
		if err != nil {
			return fmt.Errorf("column %s: %w", key, err)
		}
		container = next
	}
	return assign(container, segments[len(segments)-1], value)
}

func descend(container any, seg, nextSeg string) (any, error) {
	_, nextIsIndex := parseIndex(nextSeg)
	var fresh any
	if nextIsIndex {
		fresh = &[]any{}
	} else {
		fresh = map[string]any{}
	}
	switch c := container.(type) {
	case map[string]any:
		if existing, ok := c[seg]; ok && existing != nil {
			return existing, nil
		}
		c[seg] = fresh
		return fresh, nil
	case *[]any:
		idx, ok := parseIndex(seg)
		if !ok {
			return nil, fmt.Errorf("expected list index, got %q", seg)
		}
		if idx < len(*c) {
			return (*c)[idx], nil
		}
		if idx != len(*c) {
			return nil, fmt.Errorf("list index %d out of order", idx)
		}
		*c = append(*c, fresh)
		return fresh, nil
	default:
		return nil, fmt.Errorf("segment %q addresses a scalar", seg)
	}
}

func assign(container any, seg string, value any) error {
	switch c := container.(type) {
	case map[string]any:
		c[seg] = value
		return nil
	case *[]any:
		idx, ok := parseIndex(seg)
		if !ok || idx != len(*c) {
			return fmt.Errorf("bad list index %q", seg)
		}
		*c = append(*c, value)
		return nil
	default:
		return fmt.Errorf("segment %q addresses a scalar", seg)
	}
}

// settleLists replaces the mutable *[]any containers used while rows are
// assembled with the plain []any the field codecs expect.
func settleLists(container any) {
	switch c := container.(type) {
	case map[string]any:
		for key, item := range c {
			if p, ok := item.(*[]any); ok {
				settleLists(p)
				c[key] = *p
				continue
			}
			settleLists(item)
		}
	case *[]any:
		for i, item := range *c {
			if p, ok := item.(*[]any); ok {
				settleLists(p)
				(*c)[i] = *p
				continue
			}
			settleLists(item)
		}
	}
}

func parseIndex(seg string) (int, bool) {
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// fieldID extracts the entity ID from a decoded field map: top-level for
// mechanics, inside metadata for everything else.
func fieldID(kind cards.Kind, fields cards.Fields) (string, error) {
	section := fields
	if kind != cards.KindMechanic {
		meta, ok := fields["metadata"].(map[string]any)
		if !ok {
			return "", fmt.Errorf("missing metadata section")
		}
		section = meta
	}
	id, _ := section["id"].(string)
	if id == "" {
		return "", fmt.Errorf("missing id")
	}
	return id, nil
}
