package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/constellation/internal/core"
)

// KeyMap defines the key bindings of the game screen.
// While a round runs every printable key is a letter, so only control keys
// are bound there; the title and results screens use plain letters too.
type KeyMap struct {
	// Round
	End       key.Binding
	Backspace key.Binding
	Clear     key.Binding

	// Title and results screens
	Start        key.Binding
	NextDuration key.Binding
	PrevDuration key.Binding
	Scores       key.Binding
	Leave        key.Binding

	// Everywhere
	Quit       key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		End: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "end round"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u", "ctrl+w"),
			key.WithHelp("ctrl+u", "clear"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		NextDuration: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "longer"),
		),
		PrevDuration: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "shorter"),
		),
		Scores: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scores"),
		),
		Leave: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Map translates a key message to a game input. typing selects the bindings
// of a running round. Unbound keys map to ActionNone.
func (k KeyMap) Map(msg tea.KeyMsg, typing bool) core.Input {
	if key.Matches(msg, k.Quit) {
		return core.Input{Action: core.ActionQuit}
	}

	if typing {
		switch {
		case key.Matches(msg, k.End):
			return core.Input{Action: core.ActionEnd}
		case key.Matches(msg, k.Backspace):
			return core.Input{Action: core.ActionBackspace}
		case key.Matches(msg, k.Clear):
			return core.Input{Action: core.ActionClear}
		}

		// Pasted text and Alt chords are not typing
		if msg.Type == tea.KeyRunes && !msg.Paste && !msg.Alt && len(msg.Runes) == 1 {
			return core.Letter(unicode.ToLower(msg.Runes[0]))
		}
		return core.Input{}
	}

	switch {
	case key.Matches(msg, k.Start):
		return core.Input{Action: core.ActionStart}
	case key.Matches(msg, k.NextDuration):
		return core.Input{Action: core.ActionNextDuration}
	case key.Matches(msg, k.PrevDuration):
		return core.Input{Action: core.ActionPrevDuration}
	case key.Matches(msg, k.Scores):
		return core.Input{Action: core.ActionScores}
	case key.Matches(msg, k.Leave):
		return core.Input{Action: core.ActionQuit}
	}
	return core.Input{}
}

// Help returns the bindings to show in the help bar.
func (k KeyMap) Help(typing bool) help.KeyMap {
	if typing {
		return helpKeys{k.End, k.Backspace, k.Clear, k.Quit}
	}
	return helpKeys{k.Start, k.NextDuration, k.PrevDuration, k.Scores, k.Leave}
}

// helpKeys is a flat binding list satisfying help.KeyMap.
type helpKeys []key.Binding

// ShortHelp returns key bindings for the short help view.
func (h helpKeys) ShortHelp() []key.Binding {
	return h
}

// FullHelp returns key bindings for the full help view.
func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}
