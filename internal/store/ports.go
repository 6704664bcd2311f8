package store

import (
	"context"
	"errors"

	"goodcents/internal/core"
)

// ErrNotFound is returned when a singleton record or item does not exist.
var ErrNotFound = errors.New("record not found")

// Ports for persistence adapters.
type (
	PlayerStore interface {
		GetPlayer(ctx context.Context) (core.Player, error)
		SavePlayer(ctx context.Context, p core.Player) error
	}

	JobStore interface {
		GetJob(ctx context.Context) (core.Job, error)
		SaveJob(ctx context.Context, j core.Job) error
	}

	TimeStore interface {
		GetTime(ctx context.Context) (core.Time, error)
		SaveTime(ctx context.Context, t core.Time) error
	}

	// FlagStore returns zero-valued flags when nothing was saved yet.
	FlagStore interface {
		GetFlags(ctx context.Context) (core.GameSessionFlags, error)
		SaveFlags(ctx context.Context, f core.GameSessionFlags) error
	}

	// TransactionWriter appends a ledger entry and returns it with its
	// sequence number assigned.
	TransactionWriter interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	}

	// TransactionLister returns every ledger entry in append order.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	InventoryStore interface {
		ListOwnedItems(ctx context.Context) ([]core.OwnedItem, error)
		GetOwnedItem(ctx context.Context, name string) (core.OwnedItem, error)
		SaveOwnedItem(ctx context.Context, item core.OwnedItem) error
		DeleteOwnedItem(ctx context.Context, name string) error
	}

	LessonStore interface {
		ListCompletedLessons(ctx context.Context) ([]core.CompletedLesson, error)
		GetCompletedLesson(ctx context.Context, lessonID int) (core.CompletedLesson, error)
		SaveCompletedLesson(ctx context.Context, l core.CompletedLesson) error
	}

	// Store is the full persistence surface used by the engine.
	Store interface {
		PlayerStore
		JobStore
		TimeStore
		FlagStore
		TransactionWriter
		TransactionLister
		InventoryStore
		LessonStore

		// ResetAll deletes every record and restores default flags.
		ResetAll(ctx context.Context) error

		// Atomic runs fn against a transactional view. Nothing fn wrote is
		// visible if it returns an error.
		Atomic(ctx context.Context, fn func(tx Store) error) error
	}
)
