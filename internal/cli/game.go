package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"goodcents/internal/core"
	"goodcents/internal/services"
)

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new [NAME]",
		Short: "Start a new game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			p, err := app.Game.NewGame(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Welcome, %s! You start as a %s earning %s a week.\n",
				p.Name, core.JobTitle(0), money(core.JobIncome(0)))
			printBalances(app.out, p)
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show balances, job and this week's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.Game.Status(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(app.out, snap)
			return nil
		},
	}
}

func printStatus(w io.Writer, s services.Snapshot) {
	fmt.Fprintf(w, "%s - %s week of month %d, year %d\n",
		s.Player.Name, humanize.Ordinal(s.Time.Week), s.Time.Month, s.Time.Year)
	fmt.Fprintf(w, "Job: %s (%d/%d promotion points), %s a week\n",
		s.Job.Title(), s.Job.PromotionProgress, s.Job.Goal(), money(s.Job.Income()))
	printBalances(w, s.Player)
	fmt.Fprintf(w, "This week: %s quiz  %s event  %s lesson\n",
		checkbox(s.Flags.DoneThisWeeksQuiz),
		checkbox(s.Flags.DoneThisWeeksInteractiveEvent),
		checkbox(s.Flags.CompletedLessonThisWeek))
	if s.CanAdvance {
		fmt.Fprintln(w, "All done. Run 'goodcents advance' to end the week.")
	}
	if len(s.Items) > 0 {
		fmt.Fprintln(w, "Items:")
		tw := newTable(w)
		for _, it := range s.Items {
			sell := "-"
			if it.IsSellable {
				sell = money(it.Value)
			}
			fmt.Fprintf(tw, "  %s\tx%d\tresale %s\n", it.Name, it.Quantity, sell)
		}
		tw.Flush()
	}
}

func printBalances(w io.Writer, p core.Player) {
	tw := newTable(w)
	for _, a := range core.Accounts() {
		fmt.Fprintf(tw, "  %s\t%s\n", a.Label(), money(p.Balance(a)))
	}
	fmt.Fprintf(tw, "  Weekly expenses\t%s\n", money(p.WeeklyExpenses))
	tw.Flush()
}

func newGoalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show progress on the long-term goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			goals, err := app.Game.Progression.Goals(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range goals {
				fmt.Fprintf(app.out, "%s %s %s\n  %s\n", progressBar(g.Progress, 20), percent(g.Progress), g.Title, g.Description)
			}
			if services.GameWon(goals) {
				fmt.Fprintln(app.out, "Every goal complete. You won!")
			}
			return nil
		},
	}
}

func newAdvanceCmd(app *App) *cobra.Command {
	var force, wait bool
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "End the week: wages, expenses, interest and a random event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := app.Game.EndWeek(cmd.Context(), force)
			if err != nil {
				return err
			}
			printSummary(app.out, summary)
			if !wait {
				return nil
			}
			owed := summary.Event != nil && summary.Event.IsMoneyOwed
			return app.Game.ResultsCountdown(cmd.Context(), owed, func(remaining time.Duration) {
				if remaining > 0 {
					fmt.Fprintf(app.out, "Continuing in %s...\n", remaining.Round(time.Second))
				}
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "end the week even if tasks are unfinished")
	cmd.Flags().BoolVar(&wait, "wait", false, "pause on the results before returning")
	return cmd
}

func printSummary(w io.Writer, s core.WeekSummary) {
	fmt.Fprintf(w, "Now the %s week of month %d, year %d.\n", humanize.Ordinal(s.Time.Week), s.Time.Month, s.Time.Year)
	tw := newTable(w)
	fmt.Fprintf(tw, "  Weekly income\t%s\n", signedMoney(s.Income))
	fmt.Fprintf(tw, "  Weekly expenses\t%s\n", signedMoney(-s.Expenses))
	if s.MonthRolled {
		fmt.Fprintf(tw, "  Savings interest\t%s\n", signedMoney(s.SavingsChange))
		fmt.Fprintf(tw, "  Retirement interest\t%s\n", signedMoney(s.RetirementChange))
		fmt.Fprintf(tw, "  Expenses change\t%s\n", signedMoney(s.ExpensesChange))
	}
	tw.Flush()
	if e := s.Event; e != nil {
		fmt.Fprintf(w, "%s: %s\n%s. Everyday Spending is now %s.\n", e.Title, e.Body, e.AmountString(), money(e.BalanceAfter))
	}
}

func newSimulateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate WEEKS",
		Short: "End several weeks in a row without doing the weekly tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var weeks int
			if _, err := fmt.Sscan(args[0], &weeks); err != nil || weeks < 1 {
				return fmt.Errorf("WEEKS must be a positive number, got %q", args[0])
			}
			tw := newTable(app.out)
			fmt.Fprintln(tw, "Week\tSpending\tSavings\tRetirement\tEvent")
			for range weeks {
				summary, err := app.Game.EndWeek(cmd.Context(), true)
				if err != nil {
					tw.Flush()
					return err
				}
				p, err := app.Game.Accounts.Player(cmd.Context())
				if err != nil {
					tw.Flush()
					return err
				}
				event := "-"
				if e := summary.Event; e != nil {
					event = fmt.Sprintf("%s (%s)", e.Title, signedMoney(e.SignedAmount()))
				}
				fmt.Fprintf(tw, "Y%d M%d W%d\t%s\t%s\t%s\t%s\n",
					summary.Time.Year, summary.Time.Month, summary.Time.Week,
					money(p.Spending), money(p.Savings), money(p.Retirement), event)
			}
			return tw.Flush()
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := app.prompt.confirm("Delete the saved game?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(app.out, "Nothing deleted.")
					return nil
				}
			}
			if err := app.Game.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Game deleted. Run 'goodcents new' to start again.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}
