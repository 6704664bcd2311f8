package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"goodcents/internal/core"
	"goodcents/internal/ledger"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

// AccountService moves money between the player's accounts and the
// inventory. Each operation commits its balance change and ledger entries
// together.
type AccountService struct {
	store   store.Store
	clock   Clock
	metrics *metrics.Recorder
}

func NewAccountService(st store.Store, clock Clock, m *metrics.Recorder) *AccountService {
	return &AccountService{store: st, clock: clock, metrics: m}
}

// TransferOutcome is a committed transfer with its ledger entries.
type TransferOutcome struct {
	core.TransferResult
	Entries []core.Transaction
	Message string
}

// PurchaseOutcome is a committed purchase.
type PurchaseOutcome struct {
	Name    string
	Price   float64
	Balance float64
	Entry   core.Transaction
}

// SaleOutcome is a committed sale.
type SaleOutcome struct {
	Item      core.OwnedItem
	Remaining int
	Balance   float64
	Entry     core.Transaction
}

func (s *AccountService) Player(ctx context.Context) (core.Player, error) {
	return loadPlayer(ctx, s.store)
}

func (s *AccountService) Transfer(ctx context.Context, from, to core.Account, amount float64) (TransferOutcome, error) {
	var (
		out    TransferOutcome
		player core.Player
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		p, err := loadPlayer(ctx, tx)
		if err != nil {
			return err
		}
		j := newJournal(tx, s.clock)
		res, err := transfer(ctx, tx, j, &p, from, to, amount)
		if err != nil {
			return err
		}
		out = TransferOutcome{TransferResult: res, Entries: j.entries}
		player = p
		return nil
	})
	if err != nil {
		s.fail(ctx, log.OpTransfer, err, log.NewFields().WithMoney(string(from), amount, 0))
		return TransferOutcome{}, err
	}

	out.Message = fmt.Sprintf("Successfully transferred %s to %s.", core.FormatMoney(out.Amount), out.To.Label())
	observe(s.metrics, player, out.Entries)
	slog.InfoContext(ctx, "Transfer completed",
		"from", out.From,
		"to", out.To,
		log.FieldAmount, out.Amount,
		"from_balance", out.FromBalance,
		"to_balance", out.ToBalance)
	return out, nil
}

// Purchase buys the item or flat-priced service of a purchase action from
// the spending account.
func (s *AccountService) Purchase(ctx context.Context, action core.Action) (PurchaseOutcome, error) {
	var (
		out    PurchaseOutcome
		player core.Player
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		p, err := loadPlayer(ctx, tx)
		if err != nil {
			return err
		}
		j := newJournal(tx, s.clock)
		out, err = purchase(ctx, tx, j, &p, action)
		player = p
		return err
	})
	if err != nil {
		s.fail(ctx, log.OpPurchase, err, log.NewFields().WithMoney(string(core.Spending), 0, player.Spending))
		return PurchaseOutcome{}, err
	}

	observe(s.metrics, player, []core.Transaction{out.Entry})
	slog.InfoContext(ctx, "Purchase completed",
		"item", out.Name,
		log.FieldAmount, out.Price,
		log.FieldBalance, out.Balance)
	return out, nil
}

// SellItem sells one unit of an owned item at its resale value.
func (s *AccountService) SellItem(ctx context.Context, name string) (SaleOutcome, error) {
	var (
		out    SaleOutcome
		player core.Player
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		p, err := loadPlayer(ctx, tx)
		if err != nil {
			return err
		}
		item, err := tx.GetOwnedItem(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %q", core.ErrItemNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("load item: %w", err)
		}
		if !item.IsSellable {
			return fmt.Errorf("%w: %q", core.ErrItemNotSellable, name)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: %q", core.ErrItemNotFound, name)
		}

		balance := p.Adjust(core.Spending, item.Value)
		if err := tx.SavePlayer(ctx, p); err != nil {
			return fmt.Errorf("save player: %w", err)
		}

		remaining := item.Quantity - 1
		if remaining == 0 {
			err = tx.DeleteOwnedItem(ctx, item.Name)
		} else {
			updated := item
			updated.Quantity = remaining
			err = tx.SaveOwnedItem(ctx, updated)
		}
		if err != nil {
			return fmt.Errorf("update inventory: %w", err)
		}

		j := newJournal(tx, s.clock)
		if err := j.record(ctx, core.Spending, "Sold "+item.Name, item.Value, balance); err != nil {
			return err
		}
		out = SaleOutcome{Item: item, Remaining: remaining, Balance: balance, Entry: j.entries[0]}
		player = p
		return nil
	})
	if err != nil {
		s.fail(ctx, log.OpSell, err, nil)
		return SaleOutcome{}, err
	}

	observe(s.metrics, player, []core.Transaction{out.Entry})
	slog.InfoContext(ctx, "Item sold",
		"item", out.Item.Name,
		log.FieldAmount, out.Item.Value,
		"remaining", out.Remaining)
	return out, nil
}

// History returns the ledger of one account, newest first.
func (s *AccountService) History(ctx context.Context, a core.Account) ([]core.Transaction, error) {
	return ledger.EntriesFor(ctx, s.store, a.Label())
}

func (s *AccountService) Inventory(ctx context.Context) ([]core.OwnedItem, error) {
	items, err := s.store.ListOwnedItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owned items: %w", err)
	}
	return items, nil
}

func (s *AccountService) fail(ctx context.Context, op string, err error, fields log.LogFields) {
	s.metrics.OperationFailed(op)
	if userError(err) {
		slog.WarnContext(ctx, "Operation rejected", log.FieldOperation, op, log.FieldError, err)
		return
	}
	log.LogError(ctx, "Operation failed", err, log.ComponentAccount, op, fields)
}

// transfer applies a transfer to p inside tx and journals both sides.
func transfer(ctx context.Context, tx store.Store, j *journal, p *core.Player, from, to core.Account, amount float64) (core.TransferResult, error) {
	res, err := p.Transfer(from, to, amount)
	if err != nil {
		return core.TransferResult{}, err
	}
	if err := tx.SavePlayer(ctx, *p); err != nil {
		return core.TransferResult{}, fmt.Errorf("save player: %w", err)
	}
	if err := j.record(ctx, from, "Transfer to "+string(to), -amount, res.FromBalance); err != nil {
		return core.TransferResult{}, err
	}
	if err := j.record(ctx, to, "Transfer from "+string(from), amount, res.ToBalance); err != nil {
		return core.TransferResult{}, err
	}

	if from == core.Savings {
		flags, err := loadFlags(ctx, tx)
		if err != nil {
			return core.TransferResult{}, err
		}
		flags.WithdrawnThisMonth = true
		if err := tx.SaveFlags(ctx, flags); err != nil {
			return core.TransferResult{}, fmt.Errorf("save flags: %w", err)
		}
	}
	return res, nil
}

// purchase debits spending by the action price, adds the item to the
// inventory when there is one and journals the debit.
func purchase(ctx context.Context, tx store.Store, j *journal, p *core.Player, action core.Action) (PurchaseOutcome, error) {
	price, ok := action.Price()
	if !ok {
		return PurchaseOutcome{}, core.ErrInvalidAmount
	}
	balance, err := p.Debit(core.Spending, price)
	if err != nil {
		return PurchaseOutcome{}, err
	}
	if err := tx.SavePlayer(ctx, *p); err != nil {
		return PurchaseOutcome{}, fmt.Errorf("save player: %w", err)
	}

	name := action.Title
	if it := action.Item; it != nil {
		name = it.Name
		owned, err := tx.GetOwnedItem(ctx, it.Name)
		switch {
		case errors.Is(err, store.ErrNotFound):
			owned = core.OwnedItem{
				Name:       it.Name,
				Icon:       it.Icon,
				Price:      it.Price,
				Value:      it.Value,
				IsSellable: it.IsSellable,
			}
		case err != nil:
			return PurchaseOutcome{}, fmt.Errorf("load item: %w", err)
		}
		owned.Quantity++
		if err := tx.SaveOwnedItem(ctx, owned); err != nil {
			return PurchaseOutcome{}, fmt.Errorf("save item: %w", err)
		}
	}

	if err := j.record(ctx, core.Spending, "Purchased "+name, -price, balance); err != nil {
		return PurchaseOutcome{}, err
	}
	return PurchaseOutcome{Name: name, Price: price, Balance: balance, Entry: j.entries[len(j.entries)-1]}, nil
}
