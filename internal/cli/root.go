package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"goodcents/internal/config"
)

type rootOptions struct {
	backend     string
	dbPath      string
	contentDir  string
	rulesFile   string
	logLevel    string
	metricsFile string
	seed        uint64
}

// apply overrides cfg with the flags the user actually set.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) *config.Config {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.DataBackend = o.backend
	}
	if flags.Changed("db") {
		cfg.SQLiteDBPath = o.dbPath
	}
	if flags.Changed("content-dir") {
		cfg.ContentDir = o.contentDir
	}
	if flags.Changed("rules") {
		cfg.RulesFile = o.rulesFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	return cfg
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "goodcents",
		Short: "A week-by-week personal finance game",
		Long: `GoodCents is a personal finance game played one week at a time.
Each week you take a short job quiz, respond to a money event and study a
lesson. Ending the week pays your wage, charges your expenses, credits
monthly interest and may throw a random event at your spending account.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.open(cmd.Context(), opts.apply(cmd, config.Load()))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.backend, "backend", "sqlite", "storage backend: sqlite or memory")
	pf.StringVar(&opts.dbPath, "db", "./data/goodcents.db", "SQLite database path")
	pf.StringVar(&opts.contentDir, "content-dir", "", "directory with replacement event and lesson files")
	pf.StringVar(&opts.rulesFile, "rules", "", "YAML file overriding the game rules")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	pf.Uint64Var(&opts.seed, "seed", 0, "random seed; 0 picks one at random")

	root.AddCommand(
		newNewCmd(app),
		newStatusCmd(app),
		newGoalsCmd(app),
		newTransferCmd(app),
		newSellCmd(app),
		newHistoryCmd(app),
		newExpensesCmd(app),
		newEventCmd(app),
		newQuizCmd(app),
		newLessonCmd(app),
		newAdvanceCmd(app),
		newSimulateCmd(app),
		newResetCmd(app),
	)
	return root
}

// Execute runs the command line with args and releases everything the
// command opened.
func Execute(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	app := newApp(in, out)
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, app.Close(ctx))
}
