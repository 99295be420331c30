package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/campus-guesser/internal/registry"
	"github.com/vovakirdan/campus-guesser/internal/storage"
)

const (
	minWidthForDetail = 96 // below this the round log pane is hidden
	detailWidth       = 40
	maxScores         = 100
	maxSessions       = 50
)

// ScoreboardView selects what the table lists.
type ScoreboardView int

const (
	ViewSessions ScoreboardView = iota
	ViewTopScores
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ToggleView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.ToggleView}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v", "tab"),
			key.WithHelp("v", "sessions/top scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbPaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbEmptyStyle = sbDimStyle.Italic(true).Padding(2, 4)
	sbGoodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sbBadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ScoreboardModel lists past sessions of one game with the round log of
// the highlighted session, or the game's top scores.
type ScoreboardModel struct {
	gameID   string
	title    string
	store    *storage.Store
	view     ScoreboardView
	scores   []storage.ScoreEntry
	sessions []storage.SessionRecord
	stats    *storage.GameStats
	loadErr  error

	// Round log of the highlighted session
	detailID  string
	detail    []storage.RoundRecord
	detailErr error

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for gameID. store may be nil.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	title := gameID
	if info, ok := registry.Lookup(gameID); ok {
		title = info.Title
	}

	m := ScoreboardModel{
		gameID: gameID,
		title:  title,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m ScoreboardModel) showDetail() bool {
	return m.view == ViewSessions && m.width >= minWidthForDetail
}

// createTable builds an empty table with the columns of the current view.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	switch m.view {
	case ViewSessions:
		columns = []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Result", Width: 10},
			{Title: "Correct", Width: 7},
			{Title: "Bonus", Width: 5},
			{Title: "Score", Width: 5},
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 16},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // title, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload fetches the rows of the current view and the aggregate stats.
func (m *ScoreboardModel) reload() {
	m.scores, m.sessions, m.stats, m.loadErr = nil, nil, nil, nil
	if m.store != nil {
		switch m.view {
		case ViewSessions:
			m.sessions, m.loadErr = m.store.RecentSessions(m.gameID, maxSessions)
		default:
			m.scores, m.loadErr = m.store.TopScores(m.gameID, maxScores)
		}
		if stats, err := m.store.GetGameStats(m.gameID); err == nil {
			m.stats = stats
		}
	}

	var rows []table.Row
	for _, s := range m.sessions {
		rows = append(rows, table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			s.Reason,
			fmt.Sprintf("%d/%d", s.Correct, s.Rounds),
			fmt.Sprintf("%d", s.FinalScore-s.Points),
			fmt.Sprintf("%d", s.FinalScore),
		})
	}
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadDetail()
}

// loadDetail fetches the round log of the highlighted session when it
// changed.
func (m *ScoreboardModel) loadDetail() {
	if m.view != ViewSessions || m.store == nil {
		m.detailID, m.detail, m.detailErr = "", nil, nil
		return
	}
	cur := m.table.Cursor()
	if cur < 0 || cur >= len(m.sessions) {
		m.detailID, m.detail, m.detailErr = "", nil, nil
		return
	}
	id := m.sessions[cur].ID
	if id == m.detailID {
		return
	}
	m.detailID = id
	m.detail, m.detailErr = m.store.SessionRounds(id)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.ToggleView):
			if m.view == ViewSessions {
				m.view = ViewTopScores
			} else {
				m.view = ViewSessions
			}
			m.table = m.createTable()
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadDetail()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-9, 3))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	heading := "RECENT SESSIONS"
	if m.view == ViewTopScores {
		heading = "HIGH SCORES"
	}
	b.WriteString(centerText(sbTitleStyle.Render(heading+" - "+m.title), m.width))
	b.WriteString("\n\n")

	body := sbPaneStyle.Render(m.renderTableContent())
	if m.showDetail() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", sbPaneStyle.Render(m.renderDetail()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderStats(), m.width))
	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregate line under the table.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return sbDimStyle.Render("No games played yet.")
	}
	line := fmt.Sprintf("Games: %d  |  Best: %d  |  Average: %.0f  |  Last played: %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))
	return sbDimStyle.Render(line)
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return sbEmptyStyle.Render("No score database.\nScores are kept when a database is open.")
	case m.loadErr != nil:
		return sbEmptyStyle.Render("Cannot load scores:\n" + m.loadErr.Error())
	case m.view == ViewSessions && len(m.sessions) == 0:
		return sbEmptyStyle.Render("No sessions recorded yet.\nFinish a game to see it here!")
	case m.view == ViewTopScores && len(m.scores) == 0:
		return sbEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// renderDetail renders the round log of the highlighted session.
func (m ScoreboardModel) renderDetail() string {
	var b strings.Builder
	b.WriteString(sbTitleStyle.Render("Game Log"))
	b.WriteString("\n")

	switch {
	case m.detailErr != nil:
		b.WriteString(sbDimStyle.Render("Cannot load rounds:\n" + m.detailErr.Error()))
	case m.detailID == "":
		b.WriteString(sbDimStyle.Render("Select a session."))
	case len(m.detail) == 0:
		b.WriteString(sbDimStyle.Render("No guesses were made."))
	}

	for _, r := range m.detail {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d. %s\n", r.Round, truncate(r.Target, detailWidth-4)))
		switch {
		case r.Correct:
			b.WriteString(sbGoodStyle.Render("   correct"))
		case r.Hit != "":
			b.WriteString(sbBadStyle.Render(truncate(fmt.Sprintf("   %s, %.0f m off", r.Hit, r.MissMeters), detailWidth)))
		default:
			b.WriteString(sbBadStyle.Render(fmt.Sprintf("   missed by %.0f m", r.MissMeters)))
		}
	}

	return lipgloss.NewStyle().Width(detailWidth).Render(b.String())
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen for gameID.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
