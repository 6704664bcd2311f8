package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"goodcents/internal/core"
	"goodcents/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the game in a single SQLite file. A repository
// created by Atomic shares the connection pool and runs on one *sql.Tx.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	inTx    bool
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// a single writer keeps SQLite from returning SQLITE_BUSY inside Atomic
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil && !r.inTx {
		return r.db.Close()
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func (r *SQLiteRepository) GetPlayer(ctx context.Context) (core.Player, error) {
	row, err := r.queries.GetPlayer(ctx)
	if err != nil {
		return core.Player{}, notFound(err)
	}
	return core.Player{
		Name:           row.Name,
		Spending:       row.Spending,
		Savings:        row.Savings,
		Retirement:     row.Retirement,
		WeeklyExpenses: row.WeeklyExpenses,
	}, nil
}

func (r *SQLiteRepository) SavePlayer(ctx context.Context, p core.Player) error {
	err := r.queries.UpsertPlayer(ctx, PlayerRow{
		Name:           p.Name,
		Spending:       p.Spending,
		Savings:        p.Savings,
		Retirement:     p.Retirement,
		WeeklyExpenses: p.WeeklyExpenses,
	})
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetJob(ctx context.Context) (core.Job, error) {
	progress, err := r.queries.GetJob(ctx)
	if err != nil {
		return core.Job{}, notFound(err)
	}
	return core.Job{PromotionProgress: int(progress)}, nil
}

func (r *SQLiteRepository) SaveJob(ctx context.Context, j core.Job) error {
	if err := r.queries.UpsertJob(ctx, int64(j.PromotionProgress)); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetTime(ctx context.Context) (core.Time, error) {
	week, month, year, err := r.queries.GetTime(ctx)
	if err != nil {
		return core.Time{}, notFound(err)
	}
	return core.Time{Week: int(week), Month: int(month), Year: int(year)}, nil
}

func (r *SQLiteRepository) SaveTime(ctx context.Context, t core.Time) error {
	if err := r.queries.UpsertTime(ctx, int64(t.Week), int64(t.Month), int64(t.Year)); err != nil {
		return fmt.Errorf("save time: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetFlags(ctx context.Context) (core.GameSessionFlags, error) {
	row, err := r.queries.GetFlags(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.GameSessionFlags{}, nil
	}
	if err != nil {
		return core.GameSessionFlags{}, fmt.Errorf("get flags: %w", err)
	}
	return core.GameSessionFlags{
		DoneThisWeeksQuiz:             row.DoneThisWeeksQuiz,
		DoneThisWeeksInteractiveEvent: row.DoneThisWeeksInteractiveEvent,
		CompletedLessonThisWeek:       row.CompletedLessonThisWeek,
		WithdrawnThisMonth:            row.WithdrawnThisMonth,
		CompletedTutorial:             row.CompletedTutorial,
		CompletedWelcome:              row.CompletedWelcome,
		CurrentPage:                   int(row.CurrentPage),
		IsInitialised:                 row.IsInitialised,
	}, nil
}

func (r *SQLiteRepository) SaveFlags(ctx context.Context, f core.GameSessionFlags) error {
	err := r.queries.UpsertFlags(ctx, FlagsRow{
		DoneThisWeeksQuiz:             f.DoneThisWeeksQuiz,
		DoneThisWeeksInteractiveEvent: f.DoneThisWeeksInteractiveEvent,
		CompletedLessonThisWeek:       f.CompletedLessonThisWeek,
		WithdrawnThisMonth:            f.WithdrawnThisMonth,
		CompletedTutorial:             f.CompletedTutorial,
		CompletedWelcome:              f.CompletedWelcome,
		CurrentPage:                   int64(f.CurrentPage),
		IsInitialised:                 f.IsInitialised,
	})
	if err != nil {
		return fmt.Errorf("save flags: %w", err)
	}
	return nil
}

// AppendTransaction implements store.TransactionWriter
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	seq, err := r.queries.CreateTransaction(ctx, TransactionRow{
		ID:           tx.ID,
		Account:      tx.Account,
		Description:  tx.Description,
		Value:        tx.Value,
		CreatedAt:    tx.Timestamp.UnixNano(),
		BalanceAfter: tx.BalanceAfter,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	tx.Seq = seq

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"seq", seq,
		"account", tx.Account,
		"description", tx.Description,
		"value", tx.Value)

	return tx, nil
}

// ListTransactions implements store.TransactionLister
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = core.Transaction{
			ID:           row.ID,
			Seq:          row.Seq,
			Account:      row.Account,
			Description:  row.Description,
			Value:        row.Value,
			Timestamp:    time.Unix(0, row.CreatedAt).UTC(),
			BalanceAfter: row.BalanceAfter,
		}
	}
	return txs, nil
}

func itemFromRow(row OwnedItemRow) core.OwnedItem {
	return core.OwnedItem{
		Name:       row.Name,
		Icon:       row.Icon,
		Price:      row.Price,
		Value:      row.Value,
		IsSellable: row.IsSellable,
		Quantity:   int(row.Quantity),
	}
}

func (r *SQLiteRepository) ListOwnedItems(ctx context.Context) ([]core.OwnedItem, error) {
	rows, err := r.queries.ListOwnedItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owned items: %w", err)
	}
	items := make([]core.OwnedItem, len(rows))
	for i, row := range rows {
		items[i] = itemFromRow(row)
	}
	return items, nil
}

func (r *SQLiteRepository) GetOwnedItem(ctx context.Context, name string) (core.OwnedItem, error) {
	row, err := r.queries.GetOwnedItem(ctx, name)
	if err != nil {
		return core.OwnedItem{}, notFound(err)
	}
	return itemFromRow(row), nil
}

func (r *SQLiteRepository) SaveOwnedItem(ctx context.Context, item core.OwnedItem) error {
	err := r.queries.UpsertOwnedItem(ctx, OwnedItemRow{
		Name:       item.Name,
		Icon:       item.Icon,
		Price:      item.Price,
		Value:      item.Value,
		IsSellable: item.IsSellable,
		Quantity:   int64(item.Quantity),
	})
	if err != nil {
		return fmt.Errorf("save owned item %s: %w", item.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteOwnedItem(ctx context.Context, name string) error {
	n, err := r.queries.DeleteOwnedItem(ctx, name)
	if err != nil {
		return fmt.Errorf("delete owned item %s: %w", name, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListCompletedLessons(ctx context.Context) ([]core.CompletedLesson, error) {
	rows, err := r.queries.ListCompletedLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed lessons: %w", err)
	}
	lessons := make([]core.CompletedLesson, len(rows))
	for i, row := range rows {
		lessons[i] = core.CompletedLesson{LessonID: int(row.LessonID), Title: row.Title, AllCorrect: row.AllCorrect}
	}
	return lessons, nil
}

func (r *SQLiteRepository) GetCompletedLesson(ctx context.Context, lessonID int) (core.CompletedLesson, error) {
	row, err := r.queries.GetCompletedLesson(ctx, int64(lessonID))
	if err != nil {
		return core.CompletedLesson{}, notFound(err)
	}
	return core.CompletedLesson{LessonID: int(row.LessonID), Title: row.Title, AllCorrect: row.AllCorrect}, nil
}

func (r *SQLiteRepository) SaveCompletedLesson(ctx context.Context, l core.CompletedLesson) error {
	err := r.queries.UpsertCompletedLesson(ctx, CompletedLessonRow{
		LessonID:   int64(l.LessonID),
		Title:      l.Title,
		AllCorrect: l.AllCorrect,
	})
	if err != nil {
		return fmt.Errorf("save completed lesson %d: %w", l.LessonID, err)
	}
	return nil
}

// ResetAll deletes every record. Missing flag rows read back as defaults.
func (r *SQLiteRepository) ResetAll(ctx context.Context) error {
	err := r.Atomic(ctx, func(tx store.Store) error {
		return tx.(*SQLiteRepository).queries.ResetAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("reset all: %w", err)
	}
	slog.InfoContext(ctx, "SQLite store reset")
	return nil
}

// Atomic runs fn inside a database transaction. Calls from within a
// transaction reuse it.
func (r *SQLiteRepository) Atomic(ctx context.Context, fn func(tx store.Store) error) error {
	if r.inTx {
		return fn(r)
	}

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txRepo := &SQLiteRepository{db: r.db, queries: r.queries.WithTx(sqlTx), inTx: true}

	if err := fn(txRepo); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", "error", rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
