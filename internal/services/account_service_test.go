package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/core"
)

func TestAccountService_Transfer(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	out, err := f.game.Accounts.Transfer(f.ctx, core.Spending, core.Savings, 75)
	require.NoError(t, err)

	assert.Equal(t, 125.0, out.FromBalance)
	assert.Equal(t, 575.0, out.ToBalance)
	assert.Equal(t, "Successfully transferred $75.00 to Savings.", out.Message)

	p := f.player(t)
	assert.Equal(t, 125.0, p.Spending)
	assert.Equal(t, 575.0, p.Savings)

	txs := f.transactions(t)
	require.Len(t, txs, 2)
	assert.Equal(t, "Everyday Spending", txs[0].Account)
	assert.Equal(t, "Transfer to Savings", txs[0].Description)
	assert.Equal(t, -75.0, txs[0].Value)
	assert.Equal(t, p.Spending, txs[0].BalanceAfter)
	assert.Equal(t, "Savings", txs[1].Account)
	assert.Equal(t, "Transfer from Spending", txs[1].Description)
	assert.Equal(t, 75.0, txs[1].Value)
	assert.Equal(t, p.Savings, txs[1].BalanceAfter)

	assert.False(t, f.flags(t).WithdrawnThisMonth)
}

func TestAccountService_TransferFromSavingsMarksWithdrawal(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	_, err := f.game.Accounts.Transfer(f.ctx, core.Savings, core.Retirement, 100)
	require.NoError(t, err)

	flags := f.flags(t)
	assert.True(t, flags.WithdrawnThisMonth)
	assert.True(t, flags.IsInitialised)
	assert.Equal(t, 350.0, f.player(t).Retirement)
}

func TestAccountService_TransferRejected(t *testing.T) {
	tests := []struct {
		name    string
		from    core.Account
		to      core.Account
		amount  float64
		wantErr error
	}{
		{"negative amount", core.Spending, core.Savings, -5, core.ErrInvalidAmount},
		{"zero amount", core.Spending, core.Savings, 0, core.ErrInvalidAmount},
		{"same account", core.Savings, core.Savings, 10, core.ErrSameAccount},
		{"insufficient funds", core.Spending, core.Savings, 200.01, core.ErrInsufficientFunds},
		{"retirement overdraw", core.Retirement, core.Spending, 251, core.ErrInsufficientFunds},
		{"unknown account", core.Account("Checking"), core.Savings, 10, core.ErrUnknownAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, startingPlayer())

			_, err := f.game.Accounts.Transfer(f.ctx, tt.from, tt.to, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, startingPlayer(), f.player(t))
			assert.Empty(t, f.transactions(t))
			assert.False(t, f.flags(t).WithdrawnThisMonth)
		})
	}
}

func TestAccountService_NotInitialised(t *testing.T) {
	f := newFixture(t)
	_, err := f.game.Accounts.Transfer(f.ctx, core.Spending, core.Savings, 10)
	assert.ErrorIs(t, err, core.ErrNotInitialised)
}

func TestAccountService_PurchaseItemAndSell(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	bike := core.Action{ID: 1, Title: "Buy the bike", Type: core.ActionPurchase,
		Item: &core.Item{Name: "Used Bike", Icon: "bicycle", Price: 60, Value: 40, IsSellable: true}}

	_, err := f.game.Accounts.Purchase(f.ctx, bike)
	require.NoError(t, err)
	out, err := f.game.Accounts.Purchase(f.ctx, bike)
	require.NoError(t, err)
	assert.Equal(t, "Used Bike", out.Name)
	assert.Equal(t, 80.0, out.Balance)

	items, err := f.game.Accounts.Inventory(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	sale, err := f.game.Accounts.SellItem(f.ctx, "Used Bike")
	require.NoError(t, err)
	assert.Equal(t, 1, sale.Remaining)
	assert.Equal(t, 120.0, sale.Balance)

	_, err = f.game.Accounts.SellItem(f.ctx, "Used Bike")
	require.NoError(t, err)
	items, err = f.game.Accounts.Inventory(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.game.Accounts.SellItem(f.ctx, "Used Bike")
	assert.ErrorIs(t, err, core.ErrItemNotFound)

	history, err := f.game.Accounts.History(f.ctx, core.Spending)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "Sold Used Bike", history[0].Description)
	assert.Equal(t, 160.0, history[0].BalanceAfter)
	assert.Equal(t, "Purchased Used Bike", history[3].Description)
	assert.Equal(t, -60.0, history[3].Value)
}

func TestAccountService_PurchaseFlatAmount(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	out, err := f.game.Accounts.Purchase(f.ctx, core.Action{Title: "Go along", Type: core.ActionPurchase, Amount: ptr(25.0)})
	require.NoError(t, err)
	assert.Equal(t, "Go along", out.Name)
	assert.Equal(t, 175.0, f.player(t).Spending)

	items, err := f.game.Accounts.Inventory(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAccountService_PurchaseRejected(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	_, err := f.game.Accounts.Purchase(f.ctx, core.Action{Type: core.ActionPurchase, Item: &core.Item{Name: "Laptop", Price: 900}})
	var funds *core.InsufficientFundsError
	require.ErrorAs(t, err, &funds)
	assert.Equal(t, core.Spending, funds.Account)
	assert.Equal(t, "Insufficient funds in Spending Account.", core.UserMessage(err))

	_, err = f.game.Accounts.Purchase(f.ctx, core.Action{Type: core.ActionPurchase})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	assert.Equal(t, startingPlayer(), f.player(t))
	assert.Empty(t, f.transactions(t))
}

func TestAccountService_SellUnsellable(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	_, err := f.game.Accounts.Purchase(f.ctx, core.Action{Type: core.ActionPurchase,
		Item: &core.Item{Name: "Concert Ticket", Price: 50, Value: 0, IsSellable: false}})
	require.NoError(t, err)

	_, err = f.game.Accounts.SellItem(f.ctx, "Concert Ticket")
	assert.ErrorIs(t, err, core.ErrItemNotSellable)
	assert.Equal(t, 150.0, f.player(t).Spending)
}
