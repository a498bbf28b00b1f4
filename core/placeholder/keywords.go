package placeholder

// Keywords are replaced by glyphs in the Unicode private-use area. The
// press fonts map these code points to the game's iconography; fonts
// without them render garbage, so the renderer styles every icon position
// with its icon character style.
var keywordGlyphs = map[string]string{
	"(CREATURE)": "",
	"(ACTION)":   "",
	"(AURA)":     "",
	"(FIELD)":    "",

	"(HP)":   "",
	"(SATK)": "",
	"(SPE)":  "",

	"(NOCOLOR)": "",
	"(BLACK)":   "",
	"(BLUE)":    "",
	"(CYAN)":    "",
	"(GREEN)":   "",
	"(ORANGE)":  "",
	"(PINK)":    "",
	"(PURPLE)":  "",
	"(WHITE)":   "",
	"(YELLOW)":  "",
}

// Keywords returns the closed keyword table, keyword to glyph.
func Keywords() map[string]string {
	out := make(map[string]string, len(keywordGlyphs))
	for k, v := range keywordGlyphs {
		out[k] = v
	}
	return out
}

// Token creatures carry a synthetic trait describing the token rules; the
// press injects it ahead of the creature's authored traits.
const (
	TokenTraitName = "Token Creature"

	TokenTraitDescription = "This (CREATURE) can't be in the deck at the start of the game. " +
		"If it leaves the field, remove it from the game."
)
