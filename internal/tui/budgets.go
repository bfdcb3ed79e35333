package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-finance-tracker/models"
)

func (m mainLoopModel) updateBudgets(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc", "q":
		m.page = pageTransactions
		m.loading = true
		return m, m.cmdLoadTransactions()
	case "n":
		m.startBudgetForm()
		return m, textinput.Blink
	}

	return m, nil
}

func (m *mainLoopModel) startBudgetForm() {
	category := textinput.New()
	category.Placeholder = "category"
	category.Width = 40
	category.Focus()

	amount := textinput.New()
	amount.Placeholder = "monthly limit"
	amount.Width = 40

	month := textinput.New()
	month.Placeholder = "YYYY-MM (empty = current month)"
	month.Width = 40

	m.budgetInputs = []textinput.Model{category, amount, month}
	m.budgetFocus = 0
	m.budgetErr = ""
	m.budgetSaving = false
	m.page = pageSetBudget
}

func (m mainLoopModel) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.page = pageBudgets
			m.budgetErr = ""
			return m, nil
		case "tab":
			m.budgetInputs[m.budgetFocus].Blur()
			m.budgetFocus = (m.budgetFocus + 1) % len(m.budgetInputs)
			m.budgetInputs[m.budgetFocus].Focus()
			return m, nil
		case "shift+tab":
			m.budgetInputs[m.budgetFocus].Blur()
			m.budgetFocus = (m.budgetFocus - 1 + len(m.budgetInputs)) % len(m.budgetInputs)
			m.budgetInputs[m.budgetFocus].Focus()
			return m, nil
		case "enter":
			if m.budgetSaving {
				return m, nil
			}

			budget, err := m.collectBudget()
			if err != nil {
				m.budgetErr = err.Error()
				return m, nil
			}

			m.budgetErr = ""
			m.budgetSaving = true
			return m, m.cmdSetBudget(budget)
		}
	}

	var cmd tea.Cmd
	m.budgetInputs[m.budgetFocus], cmd = m.budgetInputs[m.budgetFocus].Update(msg)
	return m, cmd
}

func (m *mainLoopModel) collectBudget() (models.Budget, error) {
	category := strings.TrimSpace(m.budgetInputs[0].Value())
	amountRaw := strings.TrimSpace(m.budgetInputs[1].Value())
	monthRaw := strings.TrimSpace(m.budgetInputs[2].Value())

	if category == "" {
		return models.Budget{}, fmt.Errorf("category is required")
	}

	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil || amount < 0 {
		return models.Budget{}, fmt.Errorf("limit must be a non-negative number")
	}

	if monthRaw != "" {
		if _, err := time.Parse("2006-01", monthRaw); err != nil {
			return models.Budget{}, fmt.Errorf("month must be YYYY-MM")
		}
	}

	return models.Budget{
		Category: category,
		Amount:   amount,
		Month:    monthRaw,
	}, nil
}

func (m mainLoopModel) cmdLoadBudgets() tea.Cmd {
	ctx := m.opCtx()
	svc := m.services.BudgetService

	return func() tea.Msg {
		items, err := svc.ListBudgets(ctx)
		return budgetsLoadedMsg{items: items, err: err}
	}
}

func (m mainLoopModel) cmdSetBudget(budget models.Budget) tea.Cmd {
	ctx := m.opCtx()
	svc := m.services.BudgetService

	return func() tea.Msg {
		saved, err := svc.SetBudget(ctx, budget)
		return budgetSavedMsg{budget: saved, err: err}
	}
}

func (m mainLoopModel) viewBudgets() string {
	out := ""

	if m.loading {
		out += "Loading budgets...\n"
		return renderPage("BUDGETS", strings.TrimRight(out, "\n"), "n: set budget │ esc: back")
	}

	if m.errMsg != "" {
		out += "Error: " + m.errMsg + "\n"
	}
	if m.status != "" {
		out += "Status: " + m.status + "\n"
	}

	if len(m.budgets) == 0 {
		out += "\nNo budgets configured\n"
	} else {
		out += "\n"
		out += "Month   │ Category             │ Limit\n"
		out += "────────┼──────────────────────┼────────────\n"
		for _, budget := range m.budgets {
			out += fmt.Sprintf(
				"%-7s │ %-20s │ %s\n",
				budget.Month,
				fitText(budget.Category, 20),
				formatAmount(budget.Amount),
			)
		}
	}

	return renderPage("BUDGETS", strings.TrimRight(out, "\n"), "n: set budget │ esc: back")
}

func (m mainLoopModel) viewBudgetForm() string {
	out := "Field     │ Value\n"
	out += "──────────┼──────────────────────────────────────────\n"
	out += "Category  │ [" + m.budgetInputs[0].View() + "]\n"
	out += "Limit     │ [" + m.budgetInputs[1].View() + "]\n"
	out += "Month     │ [" + m.budgetInputs[2].View() + "]\n"

	if m.budgetSaving {
		out += "\n[Saving...]\n"
	} else {
		out += "\n[Save]\n"
	}
	if m.budgetErr != "" {
		out += "\nError: " + m.budgetErr + "\n"
	}

	return renderPage("SET BUDGET", strings.TrimRight(out, "\n"), "esc: back │ tab: next field │ enter: save")
}
