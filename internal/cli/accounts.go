package cli

import (
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"goodcents/internal/core"
	"goodcents/internal/ledger"
)

func newTransferCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer FROM TO AMOUNT",
		Short: "Move money between Spending, Savings and Retirement",
		Example: `  goodcents transfer spending savings 50
  goodcents transfer "Retirement Savings" Spending 1,000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := core.ParseAccount(args[0])
			if err != nil {
				return err
			}
			to, err := core.ParseAccount(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			out, err := app.Game.Accounts.Transfer(cmd.Context(), from, to, amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, out.Message)
			fmt.Fprintf(app.out, "%s: %s, %s: %s\n", from.Label(), money(out.FromBalance), to.Label(), money(out.ToBalance))
			return nil
		},
	}
}

func newSellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sell ITEM",
		Short: "Sell one owned item for its resale value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Game.Accounts.SellItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Sold %s for %s. %d left. Everyday Spending is now %s.\n",
				out.Item.Name, money(out.Item.Value), out.Remaining, money(out.Balance))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [ACCOUNT]",
		Short: "List an account's transactions, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := core.Spending
			if len(args) == 1 {
				a, err := core.ParseAccount(args[0])
				if err != nil {
					return err
				}
				account = a
			}
			txs, err := app.Game.Accounts.History(cmd.Context(), account)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Fprintf(app.out, "No transactions in %s yet.\n", account.Label())
				return nil
			}
			if limit > 0 && len(txs) > limit {
				txs = txs[:limit]
			}
			tw := newTable(app.out)
			fmt.Fprintln(tw, "Date\tDescription\tAmount\tBalance")
			for _, t := range txs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					t.Timestamp.Local().Format("2006-01-02 15:04"), t.Description, signedMoney(t.Value), money(t.BalanceAfter))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Net change over %s: %s\n",
				english.Plural(len(txs), "entry", "entries"), signedMoney(ledger.NetChange(txs)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many entries; 0 shows all")
	return cmd
}

func newExpensesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expenses",
		Short: "Break the weekly expenses down by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.Game.Accounts.Player(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(app.out)
			for _, s := range core.BreakdownExpenses(p.WeeklyExpenses) {
				fmt.Fprintf(tw, "  %s\t%s\n", s.Category, money(s.Amount))
			}
			fmt.Fprintf(tw, "  Total\t%s\n", money(p.WeeklyExpenses))
			return tw.Flush()
		},
	}
}
