package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/constellation/internal/config"
	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/games/typer"
	"github.com/vovakirdan/constellation/internal/lobby"
	"github.com/vovakirdan/constellation/internal/storage"
	"github.com/vovakirdan/constellation/internal/words"
)

// sessionIDKey stores the session ID in the SSH context.
const sessionIDKey = "constellation-session-id"

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.constellation/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int

	// Config and Pack are shared by all sessions; each session gets its own engine.
	Config config.TyperConfig
	Pack   words.Pack

	// Logger defaults to a timestamped stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.constellation/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Config:      config.DefaultTyperConfig(),
	}
}

// SSHServer wraps a Wish SSH server serving one typing game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	lobby  *lobby.Lobby
	logger *log.Logger

	mu    sync.Mutex
	games map[string]*typer.Game // Live games by session ID
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "constellation-ssh",
		})
	}

	if err := cfg.Pack.Validate(); err != nil {
		return nil, fmt.Errorf("invalid word pack: %w", err)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		lobby:  lobby.New(0),
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".constellation", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a typing game and its Bubble Tea model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sessionID, _ := sshSession.Context().Value(sessionIDKey).(string)
	logger := s.logger.With("session", sessionID, "user", sshSession.User())

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	game, err := NewGame(GameOptions{
		Config: s.config.Config,
		Pack:   s.config.Pack,
		Store:  s.store,
		Logger: logger,
		Player: sshSession.User(),
		Seed:   cfg.Seed,
	})
	if err != nil {
		logger.Error("could not create game", "error", err)
		return nil, nil
	}

	s.trackGame(sessionID, game)

	// Share records with the other players on this server
	member := s.lobby.Join(lobby.SessionID(sessionID), sshSession.User())
	game.Engine().Subscribe(s.lobby.RecordSink(member))

	model := NewModel(game, s.store, cfg, s.config.Config.Round.Durations).WithLobby(member)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware tags each SSH session with an ID and logs its lifetime.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		sessionID := uuid.NewString()
		sshSession.Context().SetValue(sessionIDKey, sessionID)

		start := time.Now()
		s.logger.Info("session started",
			"session", sessionID,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		s.logger.Debug("players online", "players", s.lobby.Players())
		next(sshSession)
		s.endSession(sessionID)
		s.logger.Info("session ended",
			"session", sessionID,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"online", s.lobby.Count(),
		)
	}
}

// trackGame remembers the game of a session until the session ends.
func (s *SSHServer) trackGame(sessionID string, game *typer.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.games == nil {
		s.games = make(map[string]*typer.Game)
	}
	s.games[sessionID] = game
}

// endSession stops a round left running by a disconnected player, so it is
// recorded and checked against the high score, and leaves the lobby.
func (s *SSHServer) endSession(sessionID string) {
	s.mu.Lock()
	game, ok := s.games[sessionID]
	delete(s.games, sessionID)
	s.mu.Unlock()

	if ok && game.Typing() {
		s.logger.Info("stopping abandoned round", "session", sessionID)
		game.Engine().Stop()
	}
	s.lobby.Leave(lobby.SessionID(sessionID))
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "pack", s.config.Pack.ID)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
