package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/games/typer"
	"github.com/vovakirdan/constellation/internal/lobby"
	"github.com/vovakirdan/constellation/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the help bar.
const helpHeight = 1

// noticeDuration is how long a lobby notice replaces the help bar.
const noticeDuration = 4 * time.Second

// Model is the Bubble Tea model hosting one player's typing game.
// It feeds wall-clock frame deltas to the game and opens the scoreboard on request.
type Model struct {
	game       *typer.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	scoreboard *ScoreboardModel
	durations  []int
	lastTick   time.Time
	quitting   bool

	// Lobby notices, only for SSH sessions
	lobby      *lobby.Session
	notice     string
	noticeLeft time.Duration
}

// NewModel creates a new Bubble Tea model for the given game.
// durations are the scoreboard tabs in seconds.
func NewModel(game *typer.Game, store *storage.Store, cfg core.RuntimeConfig, durations []int) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:     store,
		config:    cfg,
		keys:      DefaultKeyMap(),
		help:      h,
		durations: durations,
	}
}

// WithLobby makes the model show the session's lobby notices.
func (m Model) WithLobby(s *lobby.Session) Model {
	m.lobby = s
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	if m.lobby != nil {
		return tea.Batch(tickCmd(m.config.FrameInterval()), m.waitForNotice())
	}
	return tickCmd(m.config.FrameInterval())
}

// waitForNotice returns a command that waits for the next lobby event.
func (m Model) waitForNotice() tea.Cmd {
	s := m.lobby
	return func() tea.Msg {
		if s == nil {
			return nil
		}
		select {
		case evt := <-s.Events():
			return evt
		case <-s.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case lobby.Event:
		m.notice = noticeText(msg)
		m.noticeLeft = noticeDuration
		return m, m.waitForNotice()
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	in := m.keys.Map(msg, m.game.Typing())
	if in.Action == core.ActionNone {
		return m, nil
	}

	switch m.game.HandleInput(in) {
	case typer.RequestQuit:
		m.quitting = true
		m.game.Engine().Stop()
		return m, tea.Quit
	case typer.RequestScores:
		sb := NewScoreboardModel(m.store, m.durations, m.config.ScreenW, m.config.ScreenH)
		sb.embedded = true
		sb.SelectDuration(int(m.game.Duration() / time.Second))
		m.scoreboard = &sb
	}
	return m, nil
}

// updateScoreboard forwards a message to the open scoreboard.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}

	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
	default:
		m.scoreboard = &sb
	}
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
	m.help.Width = msg.Width

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

// handleTick advances the game by the wall-clock time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameInterval()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.game.Update(dt)
	if m.noticeLeft > 0 {
		m.noticeLeft -= dt
	}

	// Continue ticking
	return m, tickCmd(m.config.FrameInterval())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	// Create screenshots directory
	dir := filepath.Join(home, ".constellation", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("constellation_%s.txt", timestamp))

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	if m.noticeLeft > 0 && m.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
		return RenderScreen(m.screen) + "\n" + noticeStyle.Render(m.notice)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Help(m.game.Typing())))
}

// noticeText formats a lobby event for the help bar.
func noticeText(evt lobby.Event) string {
	switch e := evt.(type) {
	case lobby.PlayerJoined:
		return fmt.Sprintf("%s joined (%d online)", e.Player, e.Online)
	case lobby.PlayerLeft:
		return fmt.Sprintf("%s left (%d online)", e.Player, e.Online)
	case lobby.RecordSet:
		return fmt.Sprintf("✦ %s set a new %ds record: %d", e.Player, e.DurationSecs, e.Score)
	default:
		return ""
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(game *typer.Game, store *storage.Store, cfg core.RuntimeConfig, durations []int) error {
	model := NewModel(game, store, cfg, durations)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
