package store

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES (?, ?)
    RETURNING id, username, password_hash, created_at;`

	findUserByUsername = `SELECT id, username, password_hash, created_at
    FROM users
    WHERE username = ?;`

	createTransaction = `INSERT INTO transactions (user_id, type, category, amount, date)
    VALUES (?, ?, ?, ?, ?)
    RETURNING id;`

	deleteTransaction = `DELETE FROM transactions
    WHERE id = ? AND user_id = ?;`

	sumExpensesForMonth = `SELECT COALESCE(SUM(amount), 0)
    FROM transactions
    WHERE user_id = ? AND category = ? AND type = 'Expense' AND strftime('%Y-%m', date) = ?;`

	findBudget = `SELECT id, user_id, category, amount, month
    FROM budgets
    WHERE user_id = ? AND category = ? AND month = ?;`

	updateBudgetAmount = `UPDATE budgets SET amount = ?
    WHERE id = ?;`

	createBudget = `INSERT INTO budgets (user_id, category, amount, month)
    VALUES (?, ?, ?, ?)
    RETURNING id;`

	listBudgets = `SELECT id, user_id, category, amount, month
    FROM budgets
    WHERE user_id = ?
    ORDER BY month DESC, category ASC;`
)

// dateLayout is the ISO-8601 calendar date format used by the transactions
// table. Lexicographic order of stored values equals chronological order.
const dateLayout = "2006-01-02"
