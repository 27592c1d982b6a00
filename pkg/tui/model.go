package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/sora-blue/GreatCorpSimulator/pkg/ledger"
	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
)

type screen int

const (
	screenHome screen = iota
	screenGame
	screenResult
	screenLeaderboard
	screenAbout
)

// TickMsg advances the simulation clock by one step. ID ties the tick to the
// timer chain that produced it; ticks from a stopped chain are dropped.
type TickMsg struct {
	ID int
}

// Config holds the presentation settings of the TUI.
type Config struct {
	TickEvery      time.Duration
	DataDir        string
	DangerApproval int // meters below these are drawn as warnings
	DangerMorale   int
}

// Model is the Bubble Tea model for the game. All session mutations happen
// inside Update, which Bubble Tea runs on a single goroutine.
type Model struct {
	session *sim.Session
	ledger  *ledger.Ledger
	cfg     Config
	keys    KeyMap
	width   int
	height  int
	screen  screen
	back    screen // where esc returns to from the leaderboard
	rows    []TaskRow
	cursor  int
	paused  bool
	tickID  int

	// Modal state
	showHelpModal    bool
	showClearConfirm bool

	approvalBar progress.Model
	moraleBar   progress.Model
	timeBar     progress.Model
	board       table.Model

	// Scrollable markdown for the about and result screens
	doc       viewport.Model
	docSource string

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model around a session and the ledger that
// records its runs.
func NewModel(session *sim.Session, lg *ledger.Ledger, cfg Config) Model {
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = 200 * time.Millisecond
	}

	board := table.New(
		table.WithColumns(LeaderboardColumns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(ColorPurple)
	styles.Selected = styles.Selected.
		Foreground(ColorWhite).
		Background(ColorSelectionBg)
	board.SetStyles(styles)

	m := Model{
		session:     session,
		ledger:      lg,
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		approvalBar: newMeterBar("#E05252", "#25A065"),
		moraleBar:   newMeterBar("#E05252", "#4285F4"),
		timeBar:     newMeterBar("#404040", "#E5C07B"),
		board:       board,
		doc:         viewport.New(minWidth, minHeight-4),
	}
	m.refreshBoard()
	return m
}

func newMeterBar(from, to string) progress.Model {
	return progress.New(
		progress.WithGradient(from, to),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, tea.ClearScreen

	case TickMsg:
		return m.handleTick(msg)

	case LedgerChangedMsg:
		if err := m.ledger.Reload(); err != nil {
			m.setStatus("Reload failed: " + err.Error())
		}
		m.refreshBoard()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.tickID || m.screen != screenGame || m.paused {
		return m, nil
	}
	m.session.Tick()
	m.afterAction()
	if m.screen != screenGame {
		return m, nil
	}
	return m, m.tick()
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	// Clear history confirmation
	if m.showClearConfirm {
		switch msg.String() {
		case "y", "Y":
			m.ledger.Clear()
			m.refreshBoard()
			m.setStatus("History cleared")
			m.showClearConfirm = false
		case "n", "N", "esc":
			m.showClearConfirm = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		// Leaving mid-run counts as resigning so the run is still recorded
		if m.session.Phase() == sim.PhaseActive {
			m.session.VoluntaryExit()
			m.afterAction()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
		return m, nil
	}

	switch m.screen {
	case screenGame:
		return m.handleGameKey(msg)
	case screenResult:
		return m.handleResultKey(msg)
	case screenLeaderboard:
		return m.handleLeaderboardKey(msg)
	case screenAbout:
		if key.Matches(msg, m.keys.Back) {
			m.screen = screenHome
			return m, nil
		}
		return m.scrollDoc(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewRun):
		return m.startRun()
	case key.Matches(msg, m.keys.Leaderboard):
		m.showLeaderboard()
	case key.Matches(msg, m.keys.About):
		m.screen = screenAbout
		m.setDoc(aboutText)
	}
	return m, nil
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Complete):
		if m.cursor < len(m.rows) {
			m.session.CompleteTask(m.rows[m.cursor].Task.ID)
			m.afterAction()
		}

	case key.Matches(msg, m.keys.Idle):
		before := m.session.State()
		m.session.Idle()
		if m.session.State() == before {
			m.setStatus("Not enough time left to slack off")
		}
		m.afterAction()

	case key.Matches(msg, m.keys.CardApproval):
		m.useCard(sim.SkillResetApproval)

	case key.Matches(msg, m.keys.CardMorale):
		m.useCard(sim.SkillResetMorale)

	case key.Matches(msg, m.keys.CardSuppress):
		m.useCard(sim.SkillSuppress)

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.setStatus("Paused")
			return m, nil
		}
		m.setStatus("Back to work")
		m.tickID++
		return m, m.tick()

	case key.Matches(msg, m.keys.Resign):
		m.session.VoluntaryExit()
		m.afterAction()
	}

	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewRun):
		return m.startRun()
	case key.Matches(msg, m.keys.Leaderboard):
		m.showLeaderboard()
	case key.Matches(msg, m.keys.Back), msg.Type == tea.KeyEnter:
		m.screen = screenHome
	default:
		return m.scrollDoc(msg)
	}
	return m, nil
}

func (m Model) scrollDoc(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.doc, cmd = m.doc.Update(msg)
	return m, cmd
}

func (m Model) handleLeaderboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = m.back
		return m, nil
	case key.Matches(msg, m.keys.ClearHistory):
		if m.ledger.Len() == 0 {
			m.setStatus("Nothing to clear")
		} else {
			m.showClearConfirm = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

// startRun begins a run, or resumes the one already in progress.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	if err := m.session.Start(); err != nil && !errors.Is(err, sim.ErrRunInProgress) {
		m.setStatus("Error: " + err.Error())
		return m, nil
	}
	m.screen = screenGame
	m.paused = false
	m.cursor = 0
	m.tickID++
	m.afterAction()
	return m, m.tick()
}

func (m *Model) showLeaderboard() {
	m.back = m.screen
	m.refreshBoard()
	m.screen = screenLeaderboard
}

func (m *Model) useCard(kind sim.SkillKind) {
	err := m.session.UseSkillCard(kind)
	switch {
	case errors.Is(err, sim.ErrNoSkillCard):
		m.setStatus("No " + skillLabel(kind) + " cards left")
	case err != nil:
		m.setStatus("Error: " + err.Error())
	}
	m.afterAction()
}

// afterAction consumes session events and moves to the result screen once
// the run is over.
func (m *Model) afterAction() {
	for _, e := range m.session.DrainEvents() {
		m.notify(e)
	}
	m.refreshRows()
	if m.screen == screenGame && m.session.Phase() == sim.PhaseEnded {
		m.screen = screenResult
		m.paused = false
		m.refreshBoard()
		m.setDoc(m.resultMarkdown())
	}
}

// setDoc renders md into the scrollable document and scrolls to the top.
func (m *Model) setDoc(md string) {
	m.docSource = md
	m.doc.SetContent(m.renderMarkdown(md))
	m.doc.GotoTop()
}

func (m *Model) notify(e sim.Event) {
	switch e.Kind {
	case sim.EventTaskOverdue:
		m.setStatus("Missed a deadline: " + e.Task.Name)
	case sim.EventSkillCardAwarded:
		m.setStatus("Earned a skill card: " + skillLabel(e.Skill))
	case sim.EventSkillCardUsed:
		m.setStatus("Used " + skillLabel(e.Skill))
	case sim.EventEffectExpired:
		m.setStatus("Suppression wore off")
	case sim.EventDayStarted:
		if e.Day > 1 {
			m.setStatus(fmt.Sprintf("Day %d begins", e.Day))
		}
	}
}

func (m *Model) refreshRows() {
	selected := -1
	if m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].Task.ID
	}
	m.rows = BuildTaskRows(m.session.AvailableTasks(), m.session.State().Day)
	if i := IndexOfTask(m.rows, selected); i >= 0 {
		m.cursor = i
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) refreshBoard() {
	m.board.SetRows(LeaderboardRows(m.ledger.Records()))
	if m.board.Cursor() >= len(m.board.Rows()) {
		m.board.SetCursor(0)
	}
}

func (m *Model) resize() {
	barWidth := max(10, min(40, m.width/3))
	m.approvalBar.Width = barWidth
	m.moraleBar.Width = barWidth
	m.timeBar.Width = barWidth

	m.board.SetColumns(LeaderboardColumns(m.width - 4))
	m.board.SetHeight(max(3, m.height-8))

	m.getGlamourRenderer(max(20, m.width-8))

	m.doc.Width = max(minWidth, m.width)
	m.doc.Height = max(minHeight, m.height) - 4
	if m.docSource != "" {
		m.doc.SetContent(m.renderMarkdown(m.docSource))
	}
}

func (m Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.cfg.TickEvery, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}
