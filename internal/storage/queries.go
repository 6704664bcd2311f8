package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type PlayerRow struct {
	Name           string
	Spending       float64
	Savings        float64
	Retirement     float64
	WeeklyExpenses float64
}

type FlagsRow struct {
	DoneThisWeeksQuiz             bool
	DoneThisWeeksInteractiveEvent bool
	CompletedLessonThisWeek       bool
	WithdrawnThisMonth            bool
	CompletedTutorial             bool
	CompletedWelcome              bool
	CurrentPage                   int64
	IsInitialised                 bool
}

type TransactionRow struct {
	Seq          int64
	ID           string
	Account      string
	Description  string
	Value        float64
	CreatedAt    int64
	BalanceAfter float64
}

type OwnedItemRow struct {
	Name       string
	Icon       string
	Price      float64
	Value      float64
	IsSellable bool
	Quantity   int64
}

type CompletedLessonRow struct {
	LessonID   int64
	Title      string
	AllCorrect bool
}

const getPlayer = `-- name: GetPlayer :one
SELECT name, spending, savings, retirement, weekly_expenses FROM player WHERE id = 1
`

func (q *Queries) GetPlayer(ctx context.Context) (PlayerRow, error) {
	row := q.db.QueryRowContext(ctx, getPlayer)
	var i PlayerRow
	err := row.Scan(&i.Name, &i.Spending, &i.Savings, &i.Retirement, &i.WeeklyExpenses)
	return i, err
}

const upsertPlayer = `-- name: UpsertPlayer :exec
INSERT INTO player (id, name, spending, savings, retirement, weekly_expenses)
VALUES (1, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    spending = excluded.spending,
    savings = excluded.savings,
    retirement = excluded.retirement,
    weekly_expenses = excluded.weekly_expenses
`

func (q *Queries) UpsertPlayer(ctx context.Context, arg PlayerRow) error {
	_, err := q.db.ExecContext(ctx, upsertPlayer, arg.Name, arg.Spending, arg.Savings, arg.Retirement, arg.WeeklyExpenses)
	return err
}

const getJob = `-- name: GetJob :one
SELECT promotion_progress FROM job WHERE id = 1
`

func (q *Queries) GetJob(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, getJob)
	var progress int64
	err := row.Scan(&progress)
	return progress, err
}

const upsertJob = `-- name: UpsertJob :exec
INSERT INTO job (id, promotion_progress) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET promotion_progress = excluded.promotion_progress
`

func (q *Queries) UpsertJob(ctx context.Context, progress int64) error {
	_, err := q.db.ExecContext(ctx, upsertJob, progress)
	return err
}

const getTime = `-- name: GetTime :one
SELECT week, month, year FROM game_time WHERE id = 1
`

func (q *Queries) GetTime(ctx context.Context) (week, month, year int64, err error) {
	row := q.db.QueryRowContext(ctx, getTime)
	err = row.Scan(&week, &month, &year)
	return week, month, year, err
}

const upsertTime = `-- name: UpsertTime :exec
INSERT INTO game_time (id, week, month, year) VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET week = excluded.week, month = excluded.month, year = excluded.year
`

func (q *Queries) UpsertTime(ctx context.Context, week, month, year int64) error {
	_, err := q.db.ExecContext(ctx, upsertTime, week, month, year)
	return err
}

const getFlags = `-- name: GetFlags :one
SELECT done_this_weeks_quiz, done_this_weeks_interactive_event, completed_lesson_this_week,
       withdrawn_this_month, completed_tutorial, completed_welcome, current_page, is_initialised
FROM session_flags WHERE id = 1
`

func (q *Queries) GetFlags(ctx context.Context) (FlagsRow, error) {
	row := q.db.QueryRowContext(ctx, getFlags)
	var i FlagsRow
	err := row.Scan(
		&i.DoneThisWeeksQuiz,
		&i.DoneThisWeeksInteractiveEvent,
		&i.CompletedLessonThisWeek,
		&i.WithdrawnThisMonth,
		&i.CompletedTutorial,
		&i.CompletedWelcome,
		&i.CurrentPage,
		&i.IsInitialised,
	)
	return i, err
}

const upsertFlags = `-- name: UpsertFlags :exec
INSERT INTO session_flags (
    id, done_this_weeks_quiz, done_this_weeks_interactive_event, completed_lesson_this_week,
    withdrawn_this_month, completed_tutorial, completed_welcome, current_page, is_initialised
) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    done_this_weeks_quiz = excluded.done_this_weeks_quiz,
    done_this_weeks_interactive_event = excluded.done_this_weeks_interactive_event,
    completed_lesson_this_week = excluded.completed_lesson_this_week,
    withdrawn_this_month = excluded.withdrawn_this_month,
    completed_tutorial = excluded.completed_tutorial,
    completed_welcome = excluded.completed_welcome,
    current_page = excluded.current_page,
    is_initialised = excluded.is_initialised
`

func (q *Queries) UpsertFlags(ctx context.Context, arg FlagsRow) error {
	_, err := q.db.ExecContext(ctx, upsertFlags,
		arg.DoneThisWeeksQuiz,
		arg.DoneThisWeeksInteractiveEvent,
		arg.CompletedLessonThisWeek,
		arg.WithdrawnThisMonth,
		arg.CompletedTutorial,
		arg.CompletedWelcome,
		arg.CurrentPage,
		arg.IsInitialised,
	)
	return err
}

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (id, account, description, value, created_at, balance_after)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING seq
`

func (q *Queries) CreateTransaction(ctx context.Context, arg TransactionRow) (int64, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.ID, arg.Account, arg.Description, arg.Value, arg.CreatedAt, arg.BalanceAfter)
	var seq int64
	err := row.Scan(&seq)
	return seq, err
}

const listTransactions = `-- name: ListTransactions :many
SELECT seq, id, account, description, value, created_at, balance_after
FROM transactions ORDER BY seq ASC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TransactionRow
	for rows.Next() {
		var i TransactionRow
		if err := rows.Scan(&i.Seq, &i.ID, &i.Account, &i.Description, &i.Value, &i.CreatedAt, &i.BalanceAfter); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOwnedItems = `-- name: ListOwnedItems :many
SELECT name, icon, price, value, is_sellable, quantity FROM owned_items ORDER BY position ASC
`

func (q *Queries) ListOwnedItems(ctx context.Context) ([]OwnedItemRow, error) {
	rows, err := q.db.QueryContext(ctx, listOwnedItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OwnedItemRow
	for rows.Next() {
		var i OwnedItemRow
		if err := rows.Scan(&i.Name, &i.Icon, &i.Price, &i.Value, &i.IsSellable, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getOwnedItem = `-- name: GetOwnedItem :one
SELECT name, icon, price, value, is_sellable, quantity FROM owned_items WHERE name = ?
`

func (q *Queries) GetOwnedItem(ctx context.Context, name string) (OwnedItemRow, error) {
	row := q.db.QueryRowContext(ctx, getOwnedItem, name)
	var i OwnedItemRow
	err := row.Scan(&i.Name, &i.Icon, &i.Price, &i.Value, &i.IsSellable, &i.Quantity)
	return i, err
}

const upsertOwnedItem = `-- name: UpsertOwnedItem :exec
INSERT INTO owned_items (name, icon, price, value, is_sellable, quantity)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    icon = excluded.icon,
    price = excluded.price,
    value = excluded.value,
    is_sellable = excluded.is_sellable,
    quantity = excluded.quantity
`

func (q *Queries) UpsertOwnedItem(ctx context.Context, arg OwnedItemRow) error {
	_, err := q.db.ExecContext(ctx, upsertOwnedItem, arg.Name, arg.Icon, arg.Price, arg.Value, arg.IsSellable, arg.Quantity)
	return err
}

const deleteOwnedItem = `-- name: DeleteOwnedItem :execrows
DELETE FROM owned_items WHERE name = ?
`

func (q *Queries) DeleteOwnedItem(ctx context.Context, name string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteOwnedItem, name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listCompletedLessons = `-- name: ListCompletedLessons :many
SELECT lesson_id, title, all_correct FROM completed_lessons ORDER BY lesson_id ASC
`

func (q *Queries) ListCompletedLessons(ctx context.Context) ([]CompletedLessonRow, error) {
	rows, err := q.db.QueryContext(ctx, listCompletedLessons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CompletedLessonRow
	for rows.Next() {
		var i CompletedLessonRow
		if err := rows.Scan(&i.LessonID, &i.Title, &i.AllCorrect); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCompletedLesson = `-- name: GetCompletedLesson :one
SELECT lesson_id, title, all_correct FROM completed_lessons WHERE lesson_id = ?
`

func (q *Queries) GetCompletedLesson(ctx context.Context, lessonID int64) (CompletedLessonRow, error) {
	row := q.db.QueryRowContext(ctx, getCompletedLesson, lessonID)
	var i CompletedLessonRow
	err := row.Scan(&i.LessonID, &i.Title, &i.AllCorrect)
	return i, err
}

const upsertCompletedLesson = `-- name: UpsertCompletedLesson :exec
INSERT INTO completed_lessons (lesson_id, title, all_correct) VALUES (?, ?, ?)
ON CONFLICT(lesson_id) DO UPDATE SET title = excluded.title, all_correct = excluded.all_correct
`

func (q *Queries) UpsertCompletedLesson(ctx context.Context, arg CompletedLessonRow) error {
	_, err := q.db.ExecContext(ctx, upsertCompletedLesson, arg.LessonID, arg.Title, arg.AllCorrect)
	return err
}

// resetStatements run in order inside one transaction.
var resetStatements = []string{
	`DELETE FROM completed_lessons`,
	`DELETE FROM owned_items`,
	`DELETE FROM transactions`,
	`DELETE FROM session_flags`,
	`DELETE FROM game_time`,
	`DELETE FROM job`,
	`DELETE FROM player`,
}

func (q *Queries) ResetAll(ctx context.Context) error {
	for _, stmt := range resetStatements {
		if _, err := q.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
