package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *mainLoopModel) startReportForm() {
	year := textinput.New()
	year.Placeholder = "year, e.g. 2025"
	year.Width = 40
	year.Focus()

	month := textinput.New()
	month.Placeholder = "month 1-12 (empty = whole year)"
	month.Width = 40

	m.reportInputs = []textinput.Model{year, month}
	m.reportFocus = 0
	m.reportErr = ""
	m.page = pageReportForm
}

func (m mainLoopModel) updateReportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.page = pageTransactions
			m.reportErr = ""
			return m, nil
		case "tab":
			m.reportInputs[m.reportFocus].Blur()
			m.reportFocus = (m.reportFocus + 1) % len(m.reportInputs)
			m.reportInputs[m.reportFocus].Focus()
			return m, nil
		case "shift+tab":
			m.reportInputs[m.reportFocus].Blur()
			m.reportFocus = (m.reportFocus - 1 + len(m.reportInputs)) % len(m.reportInputs)
			m.reportInputs[m.reportFocus].Focus()
			return m, nil
		case "enter":
			yearRaw := strings.TrimSpace(m.reportInputs[0].Value())
			monthRaw := strings.TrimSpace(m.reportInputs[1].Value())

			year, err := strconv.Atoi(yearRaw)
			if err != nil || year < 1 || year > 9999 {
				m.reportErr = "year must be a number between 1 and 9999"
				return m, nil
			}

			month := 0
			if monthRaw != "" {
				month, err = strconv.Atoi(monthRaw)
				if err != nil || month < 1 || month > 12 {
					m.reportErr = "month must be a number between 1 and 12"
					return m, nil
				}
			}

			m.reportErr = ""
			return m, m.cmdLoadReport(year, month)
		}
	}

	var cmd tea.Cmd
	m.reportInputs[m.reportFocus], cmd = m.reportInputs[m.reportFocus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) updateReportView(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc", "q":
		m.page = pageTransactions
		return m, nil
	case "r":
		m.startReportForm()
		return m, textinput.Blink
	}

	return m, nil
}

func (m mainLoopModel) cmdLoadReport(year, month int) tea.Cmd {
	ctx := m.opCtx()
	svc := m.services.ReportService

	return func() tea.Msg {
		if month > 0 {
			report, err := svc.MonthlyReport(ctx, year, month)
			return reportLoadedMsg{report: report, err: err}
		}

		report, err := svc.YearlyReport(ctx, year)
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m mainLoopModel) viewReportForm() string {
	out := "Field  │ Value\n"
	out += "───────┼──────────────────────────────────────────\n"
	out += "Year   │ [" + m.reportInputs[0].View() + "]\n"
	out += "Month  │ [" + m.reportInputs[1].View() + "]\n"

	if m.reportErr != "" {
		out += "\nError: " + m.reportErr + "\n"
	}

	return renderPage("REPORT", strings.TrimRight(out, "\n"), "esc: back │ tab: next field │ enter: build")
}

func (m mainLoopModel) viewReport() string {
	out := "Period: " + m.report.Period() + "\n\n"
	out += fmt.Sprintf("%-9s │ %s\n", "Metric", "Amount")
	out += "──────────┼────────────\n"
	out += fmt.Sprintf("%-9s │ %s\n", "Income", formatAmount(m.report.TotalIncome))
	out += fmt.Sprintf("%-9s │ %s\n", "Expense", formatAmount(m.report.TotalExpense))
	out += fmt.Sprintf("%-9s │ %s\n", "Savings", formatAmount(m.report.Savings()))

	return renderPage("REPORT", strings.TrimRight(out, "\n"), "r: another period │ esc: back")
}
