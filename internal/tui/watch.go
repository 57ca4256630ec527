// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/credmaster/internal/clock"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
	"github.com/toeirei/credmaster/internal/totp"
)

// clipboardWriteFunc is a test seam for clipboard access.
var clipboardWriteFunc = clipboard.WriteAll

// tickMsg drives the per-second refresh of codes and countdowns.
type tickMsg time.Time

// watchModel shows live authenticator codes for every account that carries a
// secret. Codes roll over exactly at the 30 second window boundary; the
// per-second tick only refreshes the countdown column in between.
type watchModel struct {
	st  *store.Store
	gen *totp.Generator
	clk clock.Clock

	table       table.Model
	accounts    []model.Account // accounts with a secret, in display order
	filter      string
	isFiltering bool
	status      string
}

func newWatchModel(st *store.Store, clk clock.Clock) watchModel {
	m := watchModel{
		st:  st,
		gen: totp.NewGenerator(clk),
		clk: clk,
	}

	columns := []table.Column{
		{Title: i18n.T("otp.header.email"), Width: 36},
		{Title: i18n.T("otp.header.code"), Width: 8},
		{Title: i18n.T("otp.header.remaining"), Width: 8},
		{Title: i18n.T("otp.header.tags"), Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	m.rebuildTableRows()
	return m
}

// rebuildTableRows filters the store's accounts and populates the table.
func (m *watchModel) rebuildTableRows() {
	m.accounts = m.accounts[:0]
	lowerFilter := strings.ToLower(m.filter)

	var rows []table.Row
	remaining := int(m.gen.Remaining().Seconds())
	for _, acc := range m.st.Accounts() {
		if !acc.HasTOTP() {
			continue
		}
		if lowerFilter != "" && !strings.Contains(strings.ToLower(acc.Email), lowerFilter) {
			continue
		}
		m.accounts = append(m.accounts, acc)
		rows = append(rows, table.Row{
			acc.Email,
			m.gen.Code(acc.TOTPSecret),
			fmt.Sprintf("%ds", remaining),
			m.tagNames(acc),
		})
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func (m *watchModel) tagNames(acc model.Account) string {
	var names []string
	for _, id := range acc.Tags {
		if tag, ok := m.st.TagByID(id); ok {
			names = append(names, tag.Name)
		}
	}
	return strings.Join(names, ", ")
}

// nextTickAt returns the next refresh instant: the upcoming whole second,
// clamped to the window boundary so a refresh always lands on the rollover
// even when the clock sits at a sub-second offset.
func nextTickAt(now, boundary time.Time) time.Time {
	next := now.Truncate(time.Second).Add(time.Second)
	if boundary.Before(next) {
		return boundary
	}
	return next
}

// tickCmd schedules the next refresh. The countdown column updates every
// second; code rollovers are pinned to the generator's window boundary.
func (m watchModel) tickCmd() tea.Cmd {
	next := nextTickAt(m.clk.Now(), m.gen.NextBoundary())
	return tea.Tick(time.Until(next), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tickMsg:
		m.rebuildTableRows()
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
		m.table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		m.status = ""
		if m.isFiltering {
			switch msg.Type {
			case tea.KeyEsc:
				m.isFiltering = false
				m.filter = ""
				m.rebuildTableRows()
			case tea.KeyEnter:
				m.isFiltering = false
			case tea.KeyBackspace:
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.rebuildTableRows()
				}
			case tea.KeyRunes:
				m.filter += string(msg.Runes)
				m.rebuildTableRows()
			}
			return m, nil
		}

		switch msg.String() {
		case "/":
			m.isFiltering = true
			m.filter = ""
			m.rebuildTableRows()
			return m, nil
		case "enter", "c":
			m.copySelected()
			return m, nil
		case "q", "esc", "ctrl+c":
			if m.filter != "" {
				m.filter = ""
				m.isFiltering = false
				m.rebuildTableRows()
				return m, nil
			}
			return m, tea.Quit
		}
	}

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// copySelected puts the selected account's current code on the clipboard and
// records the account as used.
func (m *watchModel) copySelected() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return
	}
	acc := m.accounts[idx]
	code := m.gen.Code(acc.TOTPSecret)
	if code == totp.Unavailable {
		return
	}
	if err := clipboardWriteFunc(code); err != nil {
		m.status = errorStyle.Render(i18n.T("otp.error_clipboard", err))
		return
	}
	_ = m.st.TouchLastUsed(acc.ID)
	m.status = statusMessageStyle.Render(i18n.T("otp.copied", acc.Email))
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🔐 "+i18n.T("otp.watch_title")) + "\n\n")

	if len(m.table.Rows()) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("otp.watch_empty")))
		b.WriteString(m.footerView())
		return b.String()
	}

	b.WriteString(m.table.View())
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	b.WriteString(m.footerView())
	return b.String()
}

func (m watchModel) footerView() string {
	var filterStatus string
	if m.isFiltering {
		filterStatus = fmt.Sprintf("Filter: %s█", m.filter)
	} else if m.filter != "" {
		filterStatus = fmt.Sprintf("Filter: %s (press 'esc' to clear)", m.filter)
	}
	return helpStyle.Render(fmt.Sprintf("\n%s %s", i18n.T("otp.watch_help"), filterStatus))
}

// RunWatch starts the live authenticator view and blocks until the user quits.
func RunWatch(st *store.Store, clk clock.Clock) error {
	p := tea.NewProgram(newWatchModel(st, clk), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
