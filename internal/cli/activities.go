package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"goodcents/internal/core"
	"goodcents/internal/services"
)

func newEventCmd(app *App) *cobra.Command {
	var (
		action     int
		amountFlag string
		weights    bool
	)
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Draw and respond to this week's money event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if weights {
				list, err := app.Game.Interactive.Weights(ctx)
				if err != nil {
					return err
				}
				tw := newTable(app.out)
				for _, w := range list {
					fmt.Fprintf(tw, "  %d\t%s\t%.2f\n", w.Event.ID, w.Event.Name, w.Weight)
				}
				return tw.Flush()
			}

			flags, _, err := app.Game.Progression.WeekStatus(ctx)
			if err != nil {
				return err
			}
			if flags.DoneThisWeeksInteractiveEvent {
				fmt.Fprintln(app.out, "You already handled this week's event.")
				return nil
			}

			ev, err := app.Game.Interactive.Draw(ctx)
			if err != nil {
				return err
			}
			if ev.IsNone() {
				fmt.Fprintln(app.out, ev.Description)
				return nil
			}
			fmt.Fprintf(app.out, "%s\n%s\n", ev.Name, ev.Description)
			for i, a := range ev.Actions {
				fmt.Fprintf(app.out, "  %d) %s%s\n", i+1, a.Title, actionHint(a))
			}

			idx := action - 1
			if action == 0 {
				if idx, err = app.prompt.choose("Your choice: ", len(ev.Actions)); err != nil {
					return err
				}
			} else if idx < 0 || idx >= len(ev.Actions) {
				return fmt.Errorf("--action must be between 1 and %d", len(ev.Actions))
			}
			chosen := ev.Actions[idx]

			var amount float64
			if chosen.Type == core.ActionTransfer {
				if amountFlag != "" {
					amount, err = parseAmount(amountFlag)
				} else {
					amount, err = app.prompt.amount(fmt.Sprintf("Amount (at least %s): ", money(chosen.Transfer.MinAmount)))
				}
				if err != nil {
					return err
				}
			}

			out, err := app.Game.Interactive.Perform(ctx, ev.ID, chosen.ID, amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.out, out.Message)
			return nil
		},
	}
	cmd.Flags().IntVarP(&action, "action", "a", 0, "pick the numbered action without prompting")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "transfer amount, clamped to the action's limits")
	cmd.Flags().BoolVar(&weights, "weights", false, "list the eligible events and their weights instead")
	return cmd
}

func actionHint(a core.Action) string {
	switch a.Type {
	case core.ActionPurchase:
		if price, ok := a.Price(); ok {
			return " (" + money(price) + ")"
		}
	case core.ActionTransfer:
		t := a.Transfer
		hint := fmt.Sprintf(" (%s to %s, min %s", t.SourceAccount.Label(), t.DestinationAccount.Label(), money(t.MinAmount))
		if t.MaxAmount != nil {
			hint += ", max " + money(*t.MaxAmount)
		}
		return hint + ")"
	}
	return ""
}

func newQuizCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Take this week's job quiz to earn promotion points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			flags, _, err := app.Game.Progression.WeekStatus(ctx)
			if err != nil {
				return err
			}
			if flags.DoneThisWeeksQuiz {
				fmt.Fprintln(app.out, "You already took this week's quiz.")
				return nil
			}

			round, err := app.Game.Progression.NewQuiz()
			if err != nil {
				return err
			}
			answers := make([]int, len(round))
			for i, q := range round {
				fmt.Fprintf(app.out, "\nQuestion %d: %s\n", i+1, q.Text)
				for j, a := range q.Answers {
					fmt.Fprintf(app.out, "  %d) %s\n", j+1, a)
				}
				if answers[i], err = app.prompt.choose("Answer: ", len(q.Answers)); err != nil {
					return err
				}
				if answers[i] == q.Correct {
					fmt.Fprintln(app.out, "Correct!")
				} else {
					fmt.Fprintf(app.out, "Not quite. The answer was: %s\n", q.Answers[q.Correct])
				}
			}

			res, err := app.Game.Progression.SubmitQuiz(ctx, services.ScoreQuiz(round, answers))
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "\n%d/%d correct, +%d promotion points (%d/%d).\n",
				res.Correct, len(round), res.Gained, res.After.PromotionProgress, res.After.Goal())
			if res.Promoted {
				fmt.Fprintf(app.out, "Promoted to %s! Your wage is now %s a week.\n", res.After.Title(), money(res.After.Income()))
			}
			return nil
		},
	}
}

func newLessonCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lesson [ID]",
		Short: "List lessons, or study one and answer its questions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lessons, enabled, err := app.Game.Progression.Lessons(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				tw := newTable(app.out)
				for _, l := range lessons {
					state := "locked"
					if enabled[l.ID] {
						state = "open"
					}
					fmt.Fprintf(tw, "  %d\t%s\t%s\n", l.ID, l.Title, state)
				}
				return tw.Flush()
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("lesson id must be a number, got %q", args[0])
			}
			var lesson *core.Lesson
			for i := range lessons {
				if lessons[i].ID == id {
					lesson = &lessons[i]
				}
			}
			if lesson == nil {
				return fmt.Errorf("no lesson with id %d", id)
			}
			if !enabled[id] {
				return fmt.Errorf("lesson %d is not available yet", id)
			}

			fmt.Fprintf(app.out, "%s\n%s\n", lesson.Title, lesson.Description)
			for _, page := range lesson.Pages {
				fmt.Fprintf(app.out, "\n## %s\n%s\n", page.Title, page.Content)
			}
			correct := 0
			for i, q := range lesson.Questions {
				fmt.Fprintf(app.out, "\nQuestion %d: %s\n", i+1, q.Question)
				for j, a := range q.Answers {
					fmt.Fprintf(app.out, "  %d) %s\n", j+1, a.Answer)
				}
				pick, err := app.prompt.choose("Answer: ", len(q.Answers))
				if err != nil {
					return err
				}
				if q.Answers[pick].IsCorrect {
					correct++
				}
			}

			res, err := app.Game.Progression.CompleteLesson(ctx, id, correct)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "\n%d/%d correct.", res.Correct, res.Questions)
			if res.Record.AllCorrect {
				fmt.Fprintln(app.out, " Lesson mastered!")
			} else {
				fmt.Fprintln(app.out, " You can retake this lesson later.")
			}
			return nil
		},
	}
}
