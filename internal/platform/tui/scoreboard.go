package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	maxScores  = 100 // Max rows loaded per view
	shortRunID = 8   // Run ID prefix shown in tables, accepted by `blockfall replay --run`
)

var boardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var activeTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

var tabStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	Padding(0, 1)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewTop    boardView = iota // Best scores
	viewRecent                  // Latest replayable runs
)

func (v boardView) String() string {
	if v == viewRecent {
		return "Recent runs"
	}
	return "Top scores"
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	variants  []registry.GameInfo
	cursor    int
	view      boardView
	store     *storage.Store
	stats     *storage.GameStats
	rowCount  int
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.load()
	return m
}

// variantID returns the ID of the variant being shown.
func (m ScoreboardModel) variantID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.cursor].ID
}

// load rebuilds the table for the current variant and view.
func (m *ScoreboardModel) load() {
	var columns []table.Column
	var rows []table.Row

	m.loadErr = nil
	m.stats = nil

	switch m.view {
	case viewRecent:
		columns = []table.Column{
			{Title: "Run", Width: shortRunID},
			{Title: "Score", Width: 8},
			{Title: "Steps", Width: 7},
			{Title: "Rules", Width: 18},
			{Title: "Date", Width: 12},
		}
		rows = m.recentRows()
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Run", Width: shortRunID},
			{Title: "Date", Width: 12},
		}
		rows = m.topRows()
	}

	if m.store != nil && m.variantID() != "" {
		if stats, err := m.store.GetGameStats(m.variantID()); err == nil {
			m.stats = stats
		}
	}

	m.rowCount = len(rows)
	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Title, tabs, stats, help and borders
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
	m.table.SetStyles(s)
}

func (m *ScoreboardModel) topRows() []table.Row {
	if m.store == nil || m.variantID() == "" {
		return nil
	}
	scores, err := m.store.TopScores(m.variantID(), maxScores)
	if err != nil {
		m.loadErr = err
		return nil
	}

	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			shortID(s.RunID),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) recentRows() []table.Row {
	if m.store == nil || m.variantID() == "" {
		return nil
	}
	runs, err := m.store.RecentRuns(m.variantID(), maxScores)
	if err != nil {
		m.loadErr = err
		return nil
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			shortID(r.ID),
			strconv.Itoa(r.Record.Score),
			strconv.Itoa(r.Record.Steps),
			r.Record.Rules,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// shortID trims a run ID to the prefix shown in tables.
func shortID(id string) string {
	if id == "" {
		return "-"
	}
	return id[:min(shortRunID, len(id))]
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
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + len(m.variants) - 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			m.view = 1 - m.view
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.variants) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.variants[m.cursor].Title)
	}
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(v.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(dimStyle.Render(m.summary()), m.width))
	b.WriteString("\n")

	b.WriteString(centerText(boardStyle.Render(m.tableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the current view and the variant's totals.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return m.view.String()
	}
	return fmt.Sprintf("%s  ·  %d games (%d replayable)  ·  best %d  ·  avg %.0f",
		m.view, m.stats.GamesCount, m.stats.RunsCount, m.stats.HighScore, m.stats.AvgScore)
}

// tableContent renders the table or a placeholder message.
func (m ScoreboardModel) tableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.store == nil:
		return empty.Render("Scores are unavailable:\nno database is open.")
	case m.loadErr != nil:
		return empty.Render("Could not load scores:\n" + m.loadErr.Error())
	case m.rowCount == 0 && m.view == viewRecent:
		return empty.Render("No runs recorded yet.\nFinished games are saved for replay.")
	case m.rowCount == 0:
		return empty.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
