package tui

import (
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/denisecase/rockfit/internal/game"
	"github.com/denisecase/rockfit/internal/netclient"
	"github.com/denisecase/rockfit/internal/protocol"
)

const (
	boardWidth  = 10
	boardHeight = 20

	// uiTick is the frame cadence; gravity owed time accumulates
	// against it and is spent as single-row moves.
	uiTick     = 50 * time.Millisecond
	streamTick = 100 * time.Millisecond
)

// --- Custom tea.Msg types ---

type TickMsg time.Time

// StreamTickMsg triggers sending game states to the server.
type StreamTickMsg time.Time

// --- Screens ---

type Screen int

const (
	ScreenConnecting Screen = iota
	ScreenWelcome
	ScreenPlaying
	ScreenGameOver
)

// --- Model ---

type Model struct {
	screen     Screen
	playerName string
	sessionID  string

	engine *game.Engine
	snap   *game.Snapshot

	// Gravity pacing: wall-clock time owed to the fall timer.
	lastGravity time.Time
	owed        time.Duration

	width  int
	height int

	// Network (nil = offline single player)
	client       *netclient.Client
	scores       []protocol.ScoreRow
	finishedSent bool

	err          error
	disconnected bool
}

// NewModel creates a model for the client TUI. A nil client means
// offline play with no score reporting.
func NewModel(playerName string, client *netclient.Client) Model {
	screen := ScreenConnecting
	if client == nil {
		screen = ScreenWelcome
	}
	return Model{
		screen:     screen,
		playerName: playerName,
		client:     client,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func streamTickCmd() tea.Cmd {
	return tea.Tick(streamTick, func(t time.Time) tea.Msg {
		return StreamTickMsg(t)
	})
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	case StreamTickMsg:
		return m.handleStreamTick()

	// Network messages
	case netclient.ConnectedMsg:
		m.sessionID = msg.SessionID
		if m.screen == ScreenConnecting {
			m.screen = ScreenWelcome
		}
		return m, nil
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
		return m, nil
	case netclient.ServerMsg:
		return m.handleServerMsg(msg)
	}
	return m, nil
}

func (m Model) handleServerMsg(msg netclient.ServerMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case protocol.MsgScores:
		var payload protocol.ScoresPayload
		if json.Unmarshal(msg.Raw, &payload) == nil {
			m.scores = payload.Top
		}
	}
	return m, nil
}

// --- Key handlers ---

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.client != nil {
			m.client.Close()
		}
		return m, tea.Quit
	case "q":
		if m.screen == ScreenPlaying {
			// Don't quit during gameplay with q
			break
		}
		if m.client != nil {
			m.client.Close()
		}
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenWelcome:
		return m.handleWelcomeKeys(msg)
	case ScreenPlaying:
		return m.handlePlayingKeys(msg)
	case ScreenGameOver:
		return m.handleGameOverKeys(msg)
	}
	return m, nil
}

func (m Model) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		return m.startGame(game.NewBagRandomizer(time.Now().UnixNano()))
	case "2":
		return m.startGame(game.NewUniformRandomizer(time.Now().UnixNano()))
	}
	return m, nil
}

func (m Model) startGame(r game.Randomizer) (tea.Model, tea.Cmd) {
	m.engine = game.NewEngine(r)
	snap, err := m.engine.NewGame(boardWidth, boardHeight)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.snap = snap
	m.screen = ScreenPlaying
	m.lastGravity = time.Now()
	m.owed = 0
	m.finishedSent = false
	m.scores = nil

	var cmd tea.Cmd
	if m.client != nil {
		m.client.Send(protocol.Envelope{
			Type:    protocol.MsgHello,
			Payload: protocol.HelloPayload{PlayerName: m.playerName},
		})
		cmd = streamTickCmd()
	}
	return m, cmd
}

func (m Model) handlePlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.snap == nil {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.apply(m.engine.Move(m.snap, -1, 0))
	case "right", "l":
		m.apply(m.engine.Move(m.snap, 1, 0))
	case "down", "j":
		m.apply(m.engine.Move(m.snap, 0, 1))
	case "up", "x":
		m.apply(m.engine.Rotate(m.snap))
	case " ", "c":
		m.apply(m.engine.HardDrop(m.snap))
	case "p":
		m.apply(m.engine.TogglePause(m.snap))
	case "r":
		return m.restart()
	}

	if m.snap.GameOver {
		return m.finishGame(), nil
	}
	return m, nil
}

func (m Model) handleGameOverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m.restart()
	case "enter":
		m.screen = ScreenWelcome
		m.snap = nil
		m.engine = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) restart() (tea.Model, tea.Cmd) {
	if m.engine == nil || m.snap == nil {
		return *m, nil
	}
	// The stream tick chain dies once the game-over screen stops it;
	// re-arm it only in that case so it never doubles up.
	rearmStream := m.screen == ScreenGameOver && m.client != nil
	m.apply(m.engine.Restart(m.snap))
	m.screen = ScreenPlaying
	m.lastGravity = time.Now()
	m.owed = 0
	m.finishedSent = false
	if rearmStream {
		return *m, streamTickCmd()
	}
	return *m, nil
}

// apply installs a transition result, skipping no-ops.
func (m *Model) apply(res game.Result) {
	if res.Changed {
		m.snap = res.State
	}
}

// --- Tick handlers ---

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.screen == ScreenPlaying && m.snap != nil {
		m.applyGravity(now)
		if m.snap.GameOver {
			m = m.finishGame()
		}
	}
	return m, tickCmd()
}

// applyGravity spends accumulated wall-clock time as single-row falls,
// one tick interval per row, re-reading the interval after each step
// since a lock may raise the level.
func (m *Model) applyGravity(now time.Time) {
	if m.snap.Paused || m.snap.GameOver {
		m.lastGravity = now
		m.owed = 0
		return
	}
	m.owed += now.Sub(m.lastGravity)
	m.lastGravity = now

	for {
		step := game.SpeedForLevel(m.snap.Level)
		if m.owed < step {
			return
		}
		m.owed -= step
		res := m.engine.Move(m.snap, 0, 1)
		if !res.Changed {
			return
		}
		m.snap = res.State
		if m.snap.GameOver {
			return
		}
	}
}

func (m Model) finishGame() Model {
	m.screen = ScreenGameOver
	if m.client != nil && !m.finishedSent {
		m.finishedSent = true
		m.client.Send(protocol.Envelope{
			Type: protocol.MsgFinished,
			Payload: protocol.FinishedPayload{
				Score: m.snap.Score,
				Level: m.snap.Level,
				Lines: m.snap.Lines,
			},
		})
	}
	return m
}

func (m Model) handleStreamTick() (tea.Model, tea.Cmd) {
	if m.screen != ScreenPlaying || m.snap == nil || m.client == nil {
		return m, nil
	}

	m.client.Send(protocol.Envelope{
		Type: protocol.MsgState,
		Payload: protocol.StatePayload{
			Score:  m.snap.Score,
			Level:  m.snap.Level,
			Lines:  m.snap.Lines,
			Combo:  m.snap.Combo,
			Alive:  !m.snap.GameOver,
			Width:  m.snap.Grid.Width(),
			Height: m.snap.Grid.Height(),
			Board:  m.snap.FlatGrid(),
		},
	})

	return m, streamTickCmd()
}

// --- View ---

func (m Model) View() string {
	if m.disconnected {
		return m.renderCentered("Disconnected from server.\nPress Ctrl+C to exit.")
	}

	switch m.screen {
	case ScreenConnecting:
		return m.renderCentered("Connecting to server...")
	case ScreenWelcome:
		return m.renderCentered(RenderWelcome())
	case ScreenPlaying:
		return m.renderPlaying()
	case ScreenGameOver:
		return m.renderGameOver()
	}
	return ""
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) renderPlaying() string {
	if m.snap == nil {
		return "Loading..."
	}

	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderHUD(m.snap, m.playerName) + "\n" + RenderControls())

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(RenderBoard(m.snap))

	return m.renderCentered(lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		centerPanel,
	))
}

func (m Model) renderGameOver() string {
	if m.snap == nil {
		return m.renderCentered("Game Over")
	}
	return m.renderCentered(RenderGameOver(
		m.snap.Score, m.snap.Level, m.snap.Lines,
		RenderScoreboard(m.scores),
	))
}
