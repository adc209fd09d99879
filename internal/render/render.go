// Package render draws session state to a terminal. Everything shown is
// derived from the session; nothing is read back from the screen.
package render

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/tarotdraw/internal/card"
	"github.com/arcanaland/tarotdraw/internal/deck"
	"github.com/arcanaland/tarotdraw/internal/session"
)

const (
	defaultWidth = 80
	faceWidth    = 20
	faceHeight   = 11
	spacing      = 4
)

// View is the read side of a session
type View interface {
	State() session.State
	DeckName() string
	Deck() *deck.Deck
	Current() (card.Card, bool)
	Drawn() []card.Card
	Remaining() int
}

// Renderer writes card faces and session screens
type Renderer struct {
	out      io.Writer
	width    int
	cacheDir string
}

// New creates a renderer for out. Image art is cached under cacheDir when
// it is non-empty.
func New(out io.Writer, cacheDir string) *Renderer {
	width := defaultWidth
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &Renderer{out: out, width: width, cacheDir: cacheDir}
}

// SetWidth overrides the detected terminal width
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Art returns the face art for a card: ANSI art from its image when the
// image can be read, a framed symbol otherwise
func (r *Renderer) Art(d *deck.Deck, c card.Card) string {
	if c.HasImage() && d != nil && d.Path != "" {
		imagePath := c.Image
		if !filepath.IsAbs(imagePath) {
			imagePath = filepath.Join(d.Path, imagePath)
		}
		art, err := cachedAnsiArt(imagePath, r.cacheDir)
		if err == nil {
			return art
		}
		log.Printf("render: falling back to symbol for %q: %v", c.Name, err)
	}
	return frame(c.Face(), c.Name)
}

// Back returns the art for a face-down card
func Back() string {
	return frame("🌙", "Face Down")
}

// frame draws a bordered card with a glyph and a caption
func frame(glyph, caption string) string {
	inner := faceWidth - 2
	if len([]rune(caption)) > inner {
		caption = string([]rune(caption)[:inner-1]) + "…"
	}

	var lines []string
	lines = append(lines, "╭"+strings.Repeat("─", inner)+"╮")
	for i := 0; i < faceHeight-2; i++ {
		content := ""
		switch i {
		case (faceHeight-2)/2 - 1:
			content = glyph
		case faceHeight - 4:
			content = caption
		}
		lines = append(lines, "│"+center(content, inner)+"│")
	}
	lines = append(lines, "╰"+strings.Repeat("─", inner)+"╯")
	return strings.Join(lines, "\n")
}

func center(s string, width int) string {
	w := visibleWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Card displays a face-up card with its art beside the card information
func (r *Renderer) Card(d *deck.Deck, deckName string, c card.Card) {
	art := r.Art(d, c)
	infoWidth := r.infoWidth(art)

	info := []string{
		colorize.CyanString("Card: ") + colorize.HiWhiteString("%s", c.Name),
		colorize.CyanString("Deck: ") + colorize.HiWhiteString("%s", deckName),
	}
	if c.Meaning != "" {
		info = append(info, "", colorize.CyanString("Meaning:"))
		info = append(info, wrapText(c.Meaning, infoWidth)...)
	}
	if c.Interpretation != "" {
		info = append(info, "", colorize.CyanString("Interpretation:"))
		info = append(info, wrapText(c.Interpretation, infoWidth)...)
	}

	r.sideBySide(art, info)
}

// Session displays the whole session screen: counter, the card on the
// table, the drawn history and the next action
func (r *Renderer) Session(v View) {
	if v.State() == session.Empty {
		fmt.Fprintln(r.out, "No deck loaded.")
		return
	}

	d := v.Deck()
	fmt.Fprintf(r.out, "%s %s\n",
		colorize.CyanString("Deck:"), colorize.HiWhiteString("%s", v.DeckName()))
	fmt.Fprintln(r.out, Counter(v.Remaining(), d.Len()))

	current, ok := v.Current()
	switch {
	case v.State() == session.AwaitingReveal:
		art := Back()
		r.sideBySide(art, []string{
			colorize.HiWhiteString("A card lies face down."),
			colorize.New(colorize.Faint).Sprint("Run reveal to turn it over."),
		})
	case ok:
		r.Card(d, v.DeckName(), current)
	default:
		fmt.Fprintln(r.out)
	}

	r.DrawnList(v.Drawn())
	fmt.Fprintln(r.out, colorize.YellowString("» %s", ActionLabel(v)))
}

// DrawnList prints the revealed cards, most recent first
func (r *Renderer) DrawnList(drawn []card.Card) {
	fmt.Fprintln(r.out, colorize.CyanString("Drawn Cards:"))
	if len(drawn) == 0 {
		fmt.Fprintln(r.out, colorize.New(colorize.Italic).Sprint("  No cards drawn yet"))
		return
	}
	for _, c := range drawn {
		fmt.Fprintf(r.out, "  %s %s · %s\n", c.Face(), colorize.HiWhiteString("%s", c.Name), c.Meaning)
	}
}

// Counter formats the remaining-cards counter
func Counter(remaining, total int) string {
	return fmt.Sprintf("Cards Remaining: %d/%d", remaining, total)
}

// ActionLabel names the next thing the user can do
func ActionLabel(v View) string {
	switch v.State() {
	case session.Empty:
		return "Choose a Deck"
	case session.AwaitingReveal:
		return "Reveal Your Card"
	}

	if v.Remaining() == 0 {
		return "Deck Empty"
	}
	if len(v.Drawn()) == 0 {
		return "Draw Your Card"
	}
	return "Draw Next Card"
}

func (r *Renderer) infoWidth(art string) int {
	artWidth := 0
	for _, line := range strings.Split(art, "\n") {
		artWidth = max(artWidth, visibleWidth(line))
	}

	// Leave a small margin; keep at least 20 columns for text
	return max(r.width-2-artWidth-spacing-2, 20)
}

// sideBySide prints art on the left and info lines on the right
func (r *Renderer) sideBySide(art string, info []string) {
	artLines := strings.Split(art, "\n")
	artWidth := 0
	for _, line := range artLines {
		artWidth = max(artWidth, visibleWidth(line))
	}
	infoStartCol := artWidth + spacing

	fmt.Fprintln(r.out)
	for i := 0; i < max(len(artLines), len(info)); i++ {
		fmt.Fprint(r.out, "  ")
		if i < len(artLines) {
			fmt.Fprint(r.out, artLines[i])
			fmt.Fprint(r.out, strings.Repeat(" ", infoStartCol-visibleWidth(artLines[i])))
		} else {
			fmt.Fprint(r.out, strings.Repeat(" ", infoStartCol))
		}

		if i < len(info) {
			fmt.Fprint(r.out, info[i])
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintln(r.out)
}
