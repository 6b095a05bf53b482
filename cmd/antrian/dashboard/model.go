// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/klinikmitra/antrian/lib/clock"
	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/service"
)

// statusFilters is the cycle order for the f key. The empty status
// means no filter.
var statusFilters = []record.Status{
	"",
	record.StatusNew,
	record.StatusInProgress,
	record.StatusDone,
	record.StatusCancelled,
}

// refreshTickMsg is sent when the refresh interval elapses.
type refreshTickMsg struct{}

// reloadedMsg carries the result of an asynchronous queue reload.
type reloadedMsg struct {
	tickets []record.Ticket
	err     error
}

// Config configures a dashboard Model.
type Config struct {
	Session service.Session
	Service *service.Service

	// Clock drives the auto-refresh timer. The dashboard command
	// passes clock.Real(); tests pass a fake.
	Clock clock.Clock

	// RefreshEvery is the reload interval.
	RefreshEvery time.Duration

	// Keys and Theme default to DefaultKeyMap and DefaultTheme.
	Keys  *KeyMap
	Theme *Theme
}

// Model is the bubbletea model for the queue dashboard.
type Model struct {
	session      service.Session
	svc          *service.Service
	clk          clock.Clock
	refreshEvery time.Duration
	keys         KeyMap
	theme        Theme

	tickets    []record.Ticket
	cursor     int
	filter     int // index into statusFilters
	showDetail bool

	width  int
	height int

	lastError   string
	lastRefresh time.Time
}

// NewModel builds a dashboard model.
func NewModel(cfg Config) Model {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.RefreshEvery <= 0 {
		cfg.RefreshEvery = 5 * time.Second
	}
	keys := DefaultKeyMap
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}
	theme := DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	return Model{
		session:      cfg.Session,
		svc:          cfg.Service,
		clk:          cfg.Clock,
		refreshEvery: cfg.RefreshEvery,
		keys:         keys,
		theme:        theme,
		width:        80,
		height:       24,
	}
}

// Init starts the first reload and the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.scheduleTick())
}

// reload reads the queue off the update loop. The read applies the
// stale-promotion rule, so a reload is what moves aged tickets to
// Sedang Berlangsung on screen.
func (m Model) reload() tea.Cmd {
	session := m.session
	svc := m.svc
	return func() tea.Msg {
		var tickets []record.Ticket
		var err error
		if session.IsAdmin() {
			tickets, err = svc.ListAllTickets(session)
		} else {
			tickets, err = svc.ListTicketsForOwner(session.User.NIK)
		}
		return reloadedMsg{tickets: tickets, err: err}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	clk := m.clk
	interval := m.refreshEvery
	return func() tea.Msg {
		<-clk.After(interval)
		return refreshTickMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.reload(), m.scheduleTick())

	case reloadedMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.lastError = ""
		m.tickets = msg.tickets
		m.lastRefresh = m.clk.Now()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0

	case key.Matches(msg, m.keys.End):
		if n := len(m.visible()); n > 0 {
			m.cursor = n - 1
		}

	case key.Matches(msg, m.keys.Filter):
		m.filter = (m.filter + 1) % len(statusFilters)
		m.clampCursor()

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload()
	}
	return m, nil
}

// visible returns the tickets after the status filter.
func (m Model) visible() []record.Ticket {
	want := statusFilters[m.filter]
	if want == "" {
		return m.tickets
	}
	var rows []record.Ticket
	for _, ticket := range m.tickets {
		if ticket.Status == want {
			rows = append(rows, ticket)
		}
	}
	return rows
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if n == 0 {
		m.cursor = 0
	} else if m.cursor >= n {
		m.cursor = n - 1
	}
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	rows := m.visible()
	if len(rows) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("  (no tickets)"))
		b.WriteString("\n")
	}
	for index, ticket := range rows {
		b.WriteString(m.renderRow(ticket, index == m.cursor))
		b.WriteString("\n")
	}

	if m.showDetail && len(rows) > 0 {
		b.WriteString(m.renderDetail(rows[m.cursor]))
	}

	if m.lastError != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.StatusCancelled).
			Render("error: " + m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	filterLabel := "semua"
	if status := statusFilters[m.filter]; status != "" {
		filterLabel = string(status)
	}
	refreshed := "-"
	if !m.lastRefresh.IsZero() {
		refreshed = m.lastRefresh.Format("15:04:05")
	}
	title := fmt.Sprintf("Antrian Klinik — %s — filter: %s — dimuat %s",
		m.session.User.Nama, filterLabel, refreshed)
	return lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render(ansi.Truncate(title, m.width, "…"))
}

func (m Model) renderRow(ticket record.Ticket, selected bool) string {
	age := "-"
	if !ticket.Status.Terminal() {
		age = ticket.Age(m.clk.Now()).Truncate(time.Second).String()
	}

	statusStyle := lipgloss.NewStyle().Foreground(m.theme.StatusColor(ticket.Status))
	row := fmt.Sprintf("%4d  %-20s %-12s %s %8s",
		ticket.ID,
		ansi.Truncate(ticket.PatientName, 20, "…"),
		ansi.Truncate(ticket.Department, 12, "…"),
		statusStyle.Render(fmt.Sprintf("%-18s", ticket.Status)),
		age,
	)

	style := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	if selected {
		style = lipgloss.NewStyle().
			Background(m.theme.SelectedBackground).
			Foreground(m.theme.SelectedForeground)
	}
	return style.Render(ansi.Truncate(row, m.width, "…"))
}

func (m Model) renderDetail(ticket record.Ticket) string {
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.BorderColor).
		Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s (NIK %s)\n",
		faint.Render("Pasien:"), ticket.PatientName, ticket.PatientNIK))
	b.WriteString(fmt.Sprintf("%s %s\n", faint.Render("Poli:"), ticket.Department))
	b.WriteString(fmt.Sprintf("%s %s\n", faint.Render("Keluhan:"), ticket.Complaint))
	b.WriteString(fmt.Sprintf("%s %s oleh NIK %s\n",
		faint.Render("Dibuat:"),
		ticket.CreatedAt.Format(record.TimestampLayout),
		ticket.CreatorNIK))
	return b.String()
}

func (m Model) renderHelp() string {
	parts := []string{
		m.keys.Up.Help().Key + "/" + m.keys.Down.Help().Key + " pilih",
		m.keys.Filter.Help().Key + " " + m.keys.Filter.Help().Desc,
		m.keys.Detail.Help().Key + " " + m.keys.Detail.Help().Desc,
		m.keys.Refresh.Help().Key + " " + m.keys.Refresh.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}
	return lipgloss.NewStyle().Foreground(m.theme.HelpText).
		Render(ansi.Truncate(strings.Join(parts, " · "), m.width, "…"))
}
