package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-finance-tracker/internal/backup"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

type mainPage int

const (
	pageTransactions mainPage = iota
	pageAddTransaction
	pageBudgets
	pageSetBudget
	pageReportForm
	pageReportView
	pageBackups
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.Services
	backups  *backup.Manager
	logger   *logger.Logger
	uuid     *utils.UUIDGenerator
	userID   int64

	page    mainPage
	loading bool
	status  string
	errMsg  string
	logout  bool

	// transactions list
	transactions []models.Transaction
	idx          int
	filter       models.TransactionKind

	// add-transaction form
	addInputs []textinput.Model
	addFocus  int
	addKind   models.TransactionKind
	addSaving bool
	addErr    string

	// budgets
	budgets      []models.Budget
	budgetInputs []textinput.Model
	budgetFocus  int
	budgetSaving bool
	budgetErr    string

	// reports
	reportInputs []textinput.Model
	reportFocus  int
	reportErr    string
	report       models.Report

	// backups
	snapshots []backup.Snapshot
	backupIdx int
	restoring bool
}

type transactionsLoadedMsg struct {
	items []models.Transaction
	err   error
}

type transactionSavedMsg struct {
	warning *models.BudgetWarning
	err     error
}

type transactionDeletedMsg struct {
	deleted bool
	err     error
}

type budgetsLoadedMsg struct {
	items []models.Budget
	err   error
}

type budgetSavedMsg struct {
	budget models.Budget
	err    error
}

type reportLoadedMsg struct {
	report models.Report
	err    error
}

type backupsLoadedMsg struct {
	snapshots []backup.Snapshot
	err       error
}

type backupDoneMsg struct {
	snapshot backup.Snapshot
	err      error
}

type restoreDoneMsg struct {
	err error
}

func newMainLoopModel(ctx context.Context, services *service.Services, backups *backup.Manager, log *logger.Logger, userID int64) mainLoopModel {
	effectiveUserID := userID
	if effectiveUserID == 0 {
		effectiveUserID = getSessionUserID()
	}
	if effectiveUserID > 0 {
		setSessionUserID(effectiveUserID)
	}

	return mainLoopModel{
		ctx:      ctx,
		services: services,
		backups:  backups,
		logger:   log,
		uuid:     utils.NewUUIDGenerator(),
		userID:   effectiveUserID,
		loading:  true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadTransactions()
}

// opCtx derives a per-operation context carrying the user identifier and a
// fresh trace id, with an enriched logger attached for the service layers.
func (m mainLoopModel) opCtx() context.Context {
	opID := m.uuid.Generate()
	ctx := context.WithValue(m.ctx, utils.UserIDCtxKey, m.userID)
	ctx = context.WithValue(ctx, utils.OperationIDCtxKey, opID)

	opLogger := &logger.Logger{Logger: m.logger.With().Str("op_id", opID).Int64("user_id", m.userID).Logger()}
	return opLogger.WithContext(ctx)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.transactions = msg.items
		if m.idx >= len(m.transactions) {
			m.idx = len(m.transactions) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case transactionSavedMsg:
		m.addSaving = false
		if msg.err != nil {
			m.addErr = msg.err.Error()
			return m, nil
		}
		m.page = pageTransactions
		if msg.warning != nil {
			w := msg.warning
			m.status = fmt.Sprintf(
				"Recorded. Warning: %s %s projected %s over limit %s (spent %s)",
				w.Category, w.Month, formatAmount(w.Projected), formatAmount(w.Limit), formatAmount(w.SpentSoFar),
			)
		} else {
			m.status = "Transaction recorded"
		}
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadTransactions()

	case transactionDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		if msg.deleted {
			m.status = "Transaction deleted"
		} else {
			m.status = "Nothing deleted"
		}
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadTransactions()

	case budgetsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.budgets = msg.items
		return m, nil

	case budgetSavedMsg:
		m.budgetSaving = false
		if msg.err != nil {
			m.budgetErr = msg.err.Error()
			return m, nil
		}
		m.page = pageBudgets
		m.status = fmt.Sprintf("Budget set: %s %s = %s", msg.budget.Category, msg.budget.Month, formatAmount(msg.budget.Amount))
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadBudgets()

	case reportLoadedMsg:
		if msg.err != nil {
			m.reportErr = msg.err.Error()
			return m, nil
		}
		m.report = msg.report
		m.reportErr = ""
		m.page = pageReportView
		return m, nil

	case backupsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.snapshots = msg.snapshots
		if m.backupIdx >= len(m.snapshots) {
			m.backupIdx = len(m.snapshots) - 1
		}
		if m.backupIdx < 0 {
			m.backupIdx = 0
		}
		return m, nil

	case backupDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Backup failed: %v", msg.err)
			return m, nil
		}
		m.status = "Backup created: " + msg.snapshot.Name
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadBackups()

	case restoreDoneMsg:
		m.restoring = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Restore failed: %v", msg.err)
			return m, nil
		}
		m.status = "Store restored from backup"
		m.errMsg = ""
		m.page = pageTransactions
		m.loading = true
		return m, m.cmdLoadTransactions()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		switch m.page {
		case pageAddTransaction:
			return m.updateAddForm(msg)
		case pageSetBudget:
			return m.updateBudgetForm(msg)
		case pageReportForm:
			return m.updateReportForm(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.page {
	case pageAddTransaction:
		return m.updateAddForm(msg)
	case pageSetBudget:
		return m.updateBudgetForm(msg)
	case pageReportForm:
		return m.updateReportForm(msg)
	case pageReportView:
		return m.updateReportView(keyMsg)
	case pageBudgets:
		return m.updateBudgets(keyMsg)
	case pageBackups:
		return m.updateBackups(keyMsg)
	default:
		return m.updateTransactions(keyMsg)
	}
}

func (m mainLoopModel) updateTransactions(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.transactions)-1 {
			m.idx++
		}
	case "a":
		m.startAddForm()
		return m, textinput.Blink
	case "f":
		m.filter = nextFilter(m.filter)
		m.loading = true
		return m, m.cmdLoadTransactions()
	case "c":
		item, ok := m.current()
		if !ok {
			m.status = "Nothing to copy"
			return m, nil
		}
		line := fmt.Sprintf("%s %s %s %s", item.Date.Format("2006-01-02"), item.Kind, item.Category, formatAmount(item.Amount))
		if err := clipboard.WriteAll(line); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.status = "Copied"
	case "ctrl+d":
		item, ok := m.current()
		if !ok {
			m.status = "No transactions"
			return m, nil
		}
		return m, m.cmdDeleteTransaction(item.ID)
	case "b":
		m.page = pageBudgets
		m.loading = true
		return m, m.cmdLoadBudgets()
	case "r":
		m.startReportForm()
		return m, textinput.Blink
	case "s":
		m.page = pageBackups
		m.loading = true
		return m, m.cmdLoadBackups()
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) current() (models.Transaction, bool) {
	if len(m.transactions) == 0 || m.idx < 0 || m.idx >= len(m.transactions) {
		return models.Transaction{}, false
	}
	return m.transactions[m.idx], true
}

func nextFilter(filter models.TransactionKind) models.TransactionKind {
	switch filter {
	case "":
		return models.KindIncome
	case models.KindIncome:
		return models.KindExpense
	default:
		return ""
	}
}

func filterLabel(filter models.TransactionKind) string {
	if filter == "" {
		return "All"
	}
	return string(filter)
}

// ── add-transaction form ─────────────────────────────────────────────────────

func (m *mainLoopModel) startAddForm() {
	category := textinput.New()
	category.Placeholder = "category"
	category.Width = 40
	category.Focus()

	amount := textinput.New()
	amount.Placeholder = "amount"
	amount.Width = 40

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD (empty = today)"
	date.Width = 40

	m.addInputs = []textinput.Model{category, amount, date}
	m.addFocus = 0
	m.addKind = models.KindExpense
	m.addErr = ""
	m.addSaving = false
	m.page = pageAddTransaction
}

func (m mainLoopModel) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.page = pageTransactions
			m.addErr = ""
			return m, nil
		case "tab":
			m.addInputs[m.addFocus].Blur()
			m.addFocus = (m.addFocus + 1) % len(m.addInputs)
			m.addInputs[m.addFocus].Focus()
			return m, nil
		case "shift+tab":
			m.addInputs[m.addFocus].Blur()
			m.addFocus = (m.addFocus - 1 + len(m.addInputs)) % len(m.addInputs)
			m.addInputs[m.addFocus].Focus()
			return m, nil
		case "ctrl+t":
			if m.addKind == models.KindExpense {
				m.addKind = models.KindIncome
			} else {
				m.addKind = models.KindExpense
			}
			return m, nil
		case "enter":
			if m.addSaving {
				return m, nil
			}

			transaction, err := m.collectTransaction()
			if err != nil {
				m.addErr = err.Error()
				return m, nil
			}

			m.addErr = ""
			m.addSaving = true
			return m, m.cmdAddTransaction(transaction)
		}
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m *mainLoopModel) collectTransaction() (models.Transaction, error) {
	category := strings.TrimSpace(m.addInputs[0].Value())
	amountRaw := strings.TrimSpace(m.addInputs[1].Value())
	dateRaw := strings.TrimSpace(m.addInputs[2].Value())

	if category == "" {
		return models.Transaction{}, fmt.Errorf("category is required")
	}

	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil || amount < 0 {
		return models.Transaction{}, fmt.Errorf("amount must be a non-negative number")
	}

	transaction := models.Transaction{
		Kind:     m.addKind,
		Category: category,
		Amount:   amount,
	}

	if dateRaw != "" {
		date, err := time.Parse("2006-01-02", dateRaw)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("date must be YYYY-MM-DD")
		}
		transaction.Date = date
	}

	return transaction, nil
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m mainLoopModel) cmdLoadTransactions() tea.Cmd {
	ctx := m.opCtx()
	svc := m.services.LedgerService
	filter := m.filter

	return func() tea.Msg {
		items, err := svc.ListTransactions(ctx, filter)
		return transactionsLoadedMsg{items: items, err: err}
	}
}

func (m mainLoopModel) cmdAddTransaction(transaction models.Transaction) tea.Cmd {
	ctx := m.opCtx()
	svc := m.services.LedgerService

	return func() tea.Msg {
		_, warning, err := svc.AddTransaction(ctx, transaction)
		return transactionSavedMsg{warning: warning, err: err}
	}
}

func (m mainLoopModel) cmdDeleteTransaction(transactionID int64) tea.Cmd {
	ctx := m.opCtx()
	svc := m.services.LedgerService

	return func() tea.Msg {
		deleted, err := svc.DeleteTransaction(ctx, transactionID)
		return transactionDeletedMsg{deleted: deleted, err: err}
	}
}

// ── views ────────────────────────────────────────────────────────────────────

func (m mainLoopModel) View() string {
	switch m.page {
	case pageAddTransaction:
		return m.viewAddForm()
	case pageBudgets:
		return m.viewBudgets()
	case pageSetBudget:
		return m.viewBudgetForm()
	case pageReportForm:
		return m.viewReportForm()
	case pageReportView:
		return m.viewReport()
	case pageBackups:
		return m.viewBackups()
	default:
		return m.viewTransactions()
	}
}

func (m mainLoopModel) viewTransactions() string {
	out := ""

	if m.loading {
		out += "Loading transactions...\n"
		return renderPage("TRANSACTIONS", strings.TrimRight(out, "\n"), m.transactionsHotKeys())
	}

	if m.errMsg != "" {
		out += "Error: " + m.errMsg + "\n"
	}
	if m.status != "" {
		out += "Status: " + m.status + "\n"
	}
	out += "Filter: " + filterLabel(m.filter) + "\n"

	if len(m.transactions) == 0 {
		out += "\nNo transactions\n"
	} else {
		out += "\n"
		out += "ID    │ Date       │ Type    │ Category             │ Amount\n"
		out += "──────┼────────────┼─────────┼──────────────────────┼────────────\n"
		for i, item := range m.transactions {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			out += fmt.Sprintf(
				"%s %-4d│ %s │ %-7s │ %-20s │ %s\n",
				cursor,
				item.ID,
				item.Date.Format("2006-01-02"),
				item.Kind,
				fitText(item.Category, 20),
				formatAmount(item.Amount),
			)
		}
	}

	return renderPage("TRANSACTIONS", strings.TrimRight(out, "\n"), m.transactionsHotKeys())
}

func (m mainLoopModel) transactionsHotKeys() string {
	return "a: add │ f: filter │ c: copy │ ctrl+d: delete │ b: budgets │ r: report │ s: backups │ l: logout"
}

func (m mainLoopModel) viewAddForm() string {
	out := "Field     │ Value\n"
	out += "──────────┼──────────────────────────────────────────\n"
	out += "Type      │ " + string(m.addKind) + "  [ctrl+t: toggle]\n"
	out += "Category  │ [" + m.addInputs[0].View() + "]\n"
	out += "Amount    │ [" + m.addInputs[1].View() + "]\n"
	out += "Date      │ [" + m.addInputs[2].View() + "]\n"

	if m.addSaving {
		out += "\n[Saving...]\n"
	} else {
		out += "\n[Save]\n"
	}
	if m.addErr != "" {
		out += "\nError: " + m.addErr + "\n"
	}

	return renderPage("NEW TRANSACTION", strings.TrimRight(out, "\n"), "esc: back │ tab: next field │ ctrl+t: type │ enter: save")
}
