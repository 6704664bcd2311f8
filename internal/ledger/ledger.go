// Package ledger records balance changes as immutable transactions and
// serves them back for history views.
package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"goodcents/internal/core"
	"goodcents/internal/store"
)

// Ledger appends entries through a store writer. Build one per transaction
// so entries land in the same commit as the balance they describe.
type Ledger struct {
	w     store.TransactionWriter
	clock Clock
}

func New(w store.TransactionWriter, clock Clock) *Ledger {
	if clock == nil {
		clock = RealClock{}
	}
	return &Ledger{w: w, clock: clock}
}

// Record appends one entry. balanceAfter must be the post-mutation balance of
// the account.
func (l *Ledger) Record(ctx context.Context, account core.Account, description string, amount, balanceAfter float64) (core.Transaction, error) {
	tx := core.Transaction{
		ID:           uuid.NewString(),
		Account:      account.Label(),
		Description:  description,
		Value:        amount,
		Timestamp:    l.clock.Now(),
		BalanceAfter: balanceAfter,
	}
	saved, err := l.w.AppendTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record %q on %s: %w", description, tx.Account, err)
	}
	return saved, nil
}

// EntriesFor returns the entries of one account, newest first. label may be
// a ledger label or a short account name.
func EntriesFor(ctx context.Context, r store.TransactionLister, label string) ([]core.Transaction, error) {
	if a, err := core.ParseAccount(label); err == nil {
		label = a.Label()
	}
	all, err := r.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	var out []core.Transaction
	for _, tx := range all {
		if tx.Account == label {
			out = append(out, tx)
		}
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders by timestamp descending, then by sequence
// descending.
func SortNewestFirst(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].Timestamp.After(txs[j].Timestamp)
		}
		return txs[i].Seq > txs[j].Seq
	})
}

func NetChange(txs []core.Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		sum += tx.Value
	}
	return sum
}

// LatestBalance returns the snapshot of the newest entry.
func LatestBalance(txs []core.Transaction) (float64, bool) {
	if len(txs) == 0 {
		return 0, false
	}
	newest := txs[0]
	for _, tx := range txs[1:] {
		if tx.Timestamp.After(newest.Timestamp) || (tx.Timestamp.Equal(newest.Timestamp) && tx.Seq > newest.Seq) {
			newest = tx
		}
	}
	return newest.BalanceAfter, true
}
