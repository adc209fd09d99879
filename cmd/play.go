package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/tarotdraw/internal/session"
)

const playHelp = `Commands:
  d, draw              draw a card face down
  r, reveal            reveal the face-down card
  s, shuffle           return all cards to the deck
  s!, shuffle!         shuffle, discarding a face-down card
  x, switch <deck>     switch to another deck
  h, help              show this help
  q, quit              leave`

// playCmd runs an interactive drawing session
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Draw and reveal cards interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p := &player{
			app:   a,
			in:    bufio.NewScanner(cmd.InOrStdin()),
			out:   cmd.OutOrStdout(),
			delay: a.cfg.RevealDelay.Duration,
		}
		if f, ok := p.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			p.clear = true
		}
		return p.run(cmd.Context())
	},
}

// player is the read-eval loop behind the play command
type player struct {
	app   *app
	in    *bufio.Scanner
	out   io.Writer
	delay time.Duration
	clear bool
}

func (p *player) run(ctx context.Context) error {
	p.show("")
	for {
		fmt.Fprint(p.out, colorize.CyanString("tarot> "))
		if !p.in.Scan() {
			fmt.Fprintln(p.out)
			return p.in.Err()
		}

		fields := strings.Fields(p.in.Text())
		if len(fields) == 0 {
			continue
		}

		notice, quit, err := p.handle(ctx, fields)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		p.show(notice)
	}
}

// handle applies one command and returns a notice for the user
func (p *player) handle(ctx context.Context, fields []string) (string, bool, error) {
	s := p.app.session

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return "", true, nil

	case "h", "help", "?":
		return playHelp, false, nil

	case "d", "draw":
		if s.State() != session.Ready || s.Remaining() == 0 {
			return p.ignored("draw"), false, nil
		}
		// Pause while the previous card turns back over
		if _, faceUp := s.Current(); faceUp && p.delay > 0 {
			fmt.Fprintln(p.out, colorize.New(colorize.Faint).Sprint("Shuffling..."))
			select {
			case <-ctx.Done():
				return "", false, ctx.Err()
			case <-time.After(p.delay):
			}
		}
		if _, _, err := s.Draw(ctx); err != nil {
			return "", false, fmt.Errorf("error saving draw: %w", err)
		}
		return "", false, nil

	case "r", "reveal":
		_, ok, err := s.Reveal(ctx)
		if err != nil {
			return "", false, fmt.Errorf("error saving reveal: %w", err)
		}
		if !ok {
			return p.ignored("reveal"), false, nil
		}
		return "", false, nil

	case "s", "shuffle", "s!", "shuffle!":
		force := strings.HasSuffix(fields[0], "!")
		ok, err := s.Shuffle(ctx, force)
		if err != nil {
			return "", false, fmt.Errorf("error clearing saved progress: %w", err)
		}
		if !ok {
			return p.ignored("shuffle"), false, nil
		}
		return "Shuffled.", false, nil

	case "x", "switch":
		if len(fields) < 2 {
			return "Usage: switch <deck>", false, nil
		}
		return p.switchDeck(ctx, fields[1])
	}

	return fmt.Sprintf("Unknown command %q. Type 'help' for commands.", fields[0]), false, nil
}

func (p *player) switchDeck(ctx context.Context, target string) (string, bool, error) {
	s := p.app.session

	keep := false
	if s.AwaitingReveal() {
		answer, ok := p.ask("A card is face down. Keep it in your drawn cards? [y/n] ")
		if !ok {
			return "", true, p.in.Err()
		}
		keep = answer == "y" || answer == "yes"
	}

	if err := s.SwitchDeck(ctx, target, keep); err != nil {
		// The previous deck stays loaded
		return colorize.RedString("%v", err), false, nil
	}
	if err := p.app.setActiveDeck(ctx, target); err != nil {
		return "", false, fmt.Errorf("error saving active deck: %w", err)
	}
	return fmt.Sprintf("Switched to %s.", target), false, nil
}

func (p *player) ask(prompt string) (string, bool) {
	fmt.Fprint(p.out, colorize.YellowString("%s", prompt))
	if !p.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(p.in.Text())), true
}

func (p *player) ignored(action string) string {
	s := p.app.session
	switch {
	case action == "draw" && s.State() == session.AwaitingReveal:
		return "A card is already face down. Reveal it first."
	case action == "draw":
		return "The deck is empty. Shuffle to start over."
	case action == "reveal":
		return "There is no face-down card. Draw one first."
	default:
		return "A card is face down. Reveal it first or use 'shuffle!' to discard it."
	}
}

func (p *player) show(notice string) {
	if p.clear {
		fmt.Fprint(p.out, "\033[H\033[2J")
	}
	p.app.renderer.Session(p.app.session)
	if notice != "" {
		fmt.Fprintln(p.out, notice)
	}
}

func init() {
	addDeckFlag(playCmd)
	RootCmd.AddCommand(playCmd)
}
