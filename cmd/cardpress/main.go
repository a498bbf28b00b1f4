// Command cardpress is the CLI for the card catalog: validating and
// converting catalog data, inspecting cards, and deriving print assets.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/emberdeck/cardpress/core/cards"
	"github.com/emberdeck/cardpress/core/placeholder"
	"github.com/emberdeck/cardpress/core/printing"
	"github.com/emberdeck/cardpress/core/registry"
	"github.com/emberdeck/cardpress/internal/archive"
	"github.com/emberdeck/cardpress/internal/catalog"
	"github.com/emberdeck/cardpress/internal/logging"
	"github.com/emberdeck/cardpress/internal/press"
	"github.com/emberdeck/cardpress/internal/sheet"
	"github.com/emberdeck/cardpress/internal/sqlitestore"
	"github.com/emberdeck/cardpress/internal/yamlstore"
)

const version = "0.2.0"

// CLI defines the command-line interface for cardpress.
var CLI struct {
	// Global flags
	Data      string `help:"Catalog data directory" default:"data" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`

	// Command groups (noun-first organization)
	Catalog CatalogGroup `cmd:"" help:"Catalog operations (validate, export, convert, verify, bundle)"`
	Card    CardGroup    `cmd:"" help:"Card queries (list, show, text)"`
	Press   PressCmd     `cmd:"" help:"Derive print assets for the rendering backend"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

// CatalogGroup contains catalog lifecycle operations.
type CatalogGroup struct {
	Validate ValidateCmd `cmd:"" help:"Import the catalog and report anything invalid"`
	Export   ExportCmd   `cmd:"" help:"Rewrite the catalog in normalized form and record its manifest"`
	Convert  ConvertCmd  `cmd:"" help:"Convert the catalog to another storage format"`
	Verify   VerifyCmd   `cmd:"" help:"Verify catalog files against the recorded manifest"`
	Bundle   BundleCmd   `cmd:"" help:"Pack the catalog directory into a tar.xz bundle"`
	Unbundle UnbundleCmd `cmd:"" help:"Unpack a catalog bundle"`
}

// CardGroup contains single-card queries.
type CardGroup struct {
	List ListCmd `cmd:"" help:"List cards in print order"`
	Show ShowCmd `cmd:"" help:"Show one card's fields"`
	Text TextCmd `cmd:"" help:"Show one element's expanded print text"`
}

// runContext initializes logging from the global flags and attaches a run
// ID, mirroring what the import pipeline logs under.
func runContext() context.Context {
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	return logging.WithRunID(context.Background(), uuid.NewString())
}

// loadRegistry imports the catalog from the data directory.
func loadRegistry(ctx context.Context) (*registry.Registry, error) {
	return catalog.Import(ctx, yamlstore.New(CLI.Data))
}

// ValidateCmd imports the whole catalog, which exercises every decoder,
// reference binding, and ID rule.
type ValidateCmd struct{}

func (c *ValidateCmd) Run() error {
	ctx := runContext()
	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	for _, kind := range cards.Kinds {
		fmt.Printf("%-10s %d\n", kind.String()+"s:", reg.LenOfKind(kind))
	}
	fmt.Printf("printable: %d\n", printing.Printable(reg).Len())
	return nil
}

// ExportCmd round-trips the catalog through the model, normalizing file
// shape, then records the manifest.
type ExportCmd struct{}

func (c *ExportCmd) Run() error {
	ctx := runContext()
	store := yamlstore.New(CLI.Data)
	reg, err := catalog.Import(ctx, store)
	if err != nil {
		return err
	}
	if err := catalog.Export(ctx, reg, store); err != nil {
		return err
	}
	manifest, err := store.WriteManifest()
	if err != nil {
		return err
	}
	fmt.Printf("exported %d entities, manifest covers %d files\n", reg.Len(), len(manifest.Entries))
	return nil
}

// ConvertCmd converts the catalog between storage formats, in either
// direction.
type ConvertCmd struct {
	From string `help:"Source format" enum:"yaml,sqlite,sheet" default:"yaml"`
	In   string `help:"Source path (defaults to --data)" type:"path"`
	To   string `required:"" help:"Target format" enum:"yaml,sqlite,sheet"`
	Out  string `required:"" help:"Target path (directory for yaml, file otherwise)" type:"path"`
}

func (c *ConvertCmd) Run() error {
	ctx := runContext()
	in := c.In
	if in == "" {
		in = CLI.Data
	}
	src, closeSrc, err := openSource(c.From, in)
	if err != nil {
		return err
	}
	defer closeSrc()
	switch c.To {
	case "yaml":
		_, err := catalog.Copy(ctx, src, yamlstore.New(c.Out))
		return err
	case "sqlite":
		dst, err := sqlitestore.Open(c.Out)
		if err != nil {
			return err
		}
		defer dst.Close()
		_, err = catalog.Copy(ctx, src, dst)
		return err
	case "sheet":
		wb := sheet.NewWorkbook()
		if _, err := catalog.Copy(ctx, src, wb); err != nil {
			return err
		}
		return wb.WriteFile(c.Out)
	}
	return fmt.Errorf("unsupported format %q", c.To)
}

// openSource builds the source store for a conversion. The returned func
// releases the store when the adapter holds an open handle.
func openSource(format, path string) (catalog.Store, func(), error) {
	switch format {
	case "yaml":
		return yamlstore.New(path), func() {}, nil
	case "sqlite":
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "sheet":
		wb, err := sheet.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return wb, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported format %q", format)
}

// VerifyCmd checks catalog files against the recorded blake3 manifest.
type VerifyCmd struct{}

func (c *VerifyCmd) Run() error {
	runContext()
	problems, err := yamlstore.New(CLI.Data).VerifyManifest()
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(p)
		}
		return fmt.Errorf("%d file(s) differ from the manifest", len(problems))
	}
	fmt.Println("catalog matches manifest")
	return nil
}

// BundleCmd packs the catalog directory into one distributable file.
type BundleCmd struct {
	Out string `required:"" help:"Output bundle path (.tar.xz)" type:"path"`
}

func (c *BundleCmd) Run() error {
	runContext()
	if err := archive.CreateTarXz(CLI.Data, c.Out); err != nil {
		return err
	}
	fmt.Printf("bundled %s into %s\n", CLI.Data, c.Out)
	return nil
}

// UnbundleCmd unpacks a catalog bundle.
type UnbundleCmd struct {
	Archive string `arg:"" help:"Bundle path" type:"existingfile"`
	Out     string `required:"" help:"Output directory" type:"path"`
}

func (c *UnbundleCmd) Run() error {
	runContext()
	if err := archive.ExtractTarXz(c.Archive, c.Out); err != nil {
		return err
	}
	fmt.Printf("unpacked %s into %s\n", c.Archive, c.Out)
	return nil
}

// ListCmd prints cards in canonical order with their print numbers.
type ListCmd struct {
	All bool `help:"Include cards excluded from printing"`
}

func (c *ListCmd) Run() error {
	ctx := runContext()
	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	keep := printing.IsPlayable
	if c.All {
		keep = printing.NoFilter
	}
	seq := printing.NewSequence(reg.Cards(), keep)
	for _, card := range seq.Cards() {
		marker := " "
		if !card.Playable() {
			marker = "!"
		}
		n, err := seq.NumberOf(card.ElementID())
		if err != nil {
			return err
		}
		fmt.Printf("%3d/%d %s %-6s %s\n", n, seq.Len(), marker, card.ElementID(), card.DisplayName())
	}
	return nil
}

// ShowCmd prints one card's plain fields.
type ShowCmd struct {
	ID string `arg:"" help:"Card ID (C… or E…)"`
}

func (c *ShowCmd) Run() error {
	ctx := runContext()
	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	card, err := reg.Card(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("id:        %s\n", card.ElementID())
	fmt.Printf("name:      %s\n", card.DisplayName())
	fmt.Printf("kind:      %s\n", card.ElementKind())
	fmt.Printf("stage:     %s\n", card.Stage())
	if col := card.CardColor(); col != nil {
		fmt.Printf("color:     %s\n", col)
	}
	if v := card.TotalCost(); v != nil {
		fmt.Printf("cost:      %d", *v)
		if cc := card.ColorCost(); cc != nil {
			fmt.Printf(" (%d colored)", *cc)
		}
		fmt.Println()
	}
	switch v := card.(type) {
	case *cards.Creature:
		if v.HP != nil {
			fmt.Printf("hp:        %d\n", *v.HP)
		}
		if v.Speed != nil {
			fmt.Printf("spe:       %d\n", *v.Speed)
		}
		for _, t := range v.Traits {
			fmt.Printf("trait:     %s (%s)\n", t.DisplayName(), t.ID)
		}
	case *cards.Effect:
		fmt.Printf("type:      %s\n", v.Type)
	}
	if n, err := printing.Printable(reg).NumberOf(card.ElementID()); err == nil {
		fmt.Printf("number:    %d\n", n)
	}
	return nil
}

// TextCmd prints an element's expanded print text, with the styled rune
// positions the renderer would receive.
type TextCmd struct {
	ID        string `arg:"" help:"Element ID"`
	Positions bool   `help:"Also print icon and name rune positions"`
}

func (c *TextCmd) Run() error {
	ctx := runContext()
	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	e, err := reg.Element(c.ID)
	if err != nil {
		return err
	}
	blocks, err := textBlocks(e)
	if err != nil {
		return err
	}
	for _, block := range blocks {
		res, err := placeholder.Expand(block.text, reg)
		if err != nil {
			return err
		}
		if block.label != "" {
			fmt.Printf("%s: %s\n", block.label, res.Text)
		} else {
			fmt.Println(res.Text)
		}
		if c.Positions {
			fmt.Printf("  icons: %s\n", formatPositions(res.IconPositions))
			fmt.Printf("  names: %s\n", formatPositions(res.NamePositions))
		}
	}
	return nil
}

type textBlock struct {
	label string
	text  string
}

// textBlocks gathers the authored text an element contributes to a card.
func textBlocks(e cards.GameElement) ([]textBlock, error) {
	switch v := e.(type) {
	case *cards.Trait:
		return []textBlock{{text: v.Description}}, nil
	case *cards.Attack:
		return []textBlock{{text: v.Description}}, nil
	case *cards.Effect:
		return []textBlock{{text: v.Description}}, nil
	case *cards.Creature:
		var blocks []textBlock
		if v.IsToken {
			blocks = append(blocks, textBlock{label: placeholder.TokenTraitName, text: placeholder.TokenTraitDescription})
		}
		for _, t := range v.Traits {
			blocks = append(blocks, textBlock{label: t.DisplayName(), text: t.Description})
		}
		for _, slot := range []struct {
			label string
			slot  cards.AttackSlot
		}{
			{"strong", v.AtkStrong},
			{"technical", v.AtkTechnical},
		} {
			if a := slot.slot.Effect; a != nil {
				blocks = append(blocks, textBlock{label: slot.label + " / " + a.DisplayName(), text: a.Description})
			}
		}
		return blocks, nil
	default:
		return nil, fmt.Errorf("element %s has no print text", e.ElementID())
	}
}

func formatPositions(positions []int) string {
	if len(positions) == 0 {
		return "-"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}

// PressCmd derives every printable card's asset JSON.
type PressCmd struct {
	Out     string `required:"" help:"Output directory" type:"path"`
	Workers int    `help:"Worker count (0 = one per CPU)" default:"0"`
}

func (c *PressCmd) Run() error {
	ctx := runContext()
	reg, err := loadRegistry(ctx)
	if err != nil {
		return err
	}
	return press.NewDeriver(reg, c.Workers).WriteDir(ctx, c.Out)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("cardpress %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cardpress"),
		kong.Description("Card catalog tooling - validation, conversion, and print asset derivation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
