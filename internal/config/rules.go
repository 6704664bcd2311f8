package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rules holds the game balance. A rules file is decoded over the defaults,
// so it only needs the keys it changes and an explicit zero is kept.
type Rules struct {
	PlayerName         string  `yaml:"player_name"`
	StartingSpending   float64 `yaml:"starting_spending"`
	StartingSavings    float64 `yaml:"starting_savings"`
	StartingRetirement float64 `yaml:"starting_retirement"`

	SavingsRate          float64 `yaml:"savings_rate"`
	WithdrawnSavingsRate float64 `yaml:"withdrawn_savings_rate"`
	RetirementRate       float64 `yaml:"retirement_rate"`

	ExpenseRegenChance float64 `yaml:"expense_regen_chance"`
	ExpenseBandBelow   float64 `yaml:"expense_band_below"`
	ExpenseBandAbove   float64 `yaml:"expense_band_above"`

	WeeklyEventChance     float64 `yaml:"weekly_event_chance"`
	NegativeEventCutoff   float64 `yaml:"negative_event_cutoff"`
	PositiveEventCutoff   float64 `yaml:"positive_event_cutoff"`
	QuizQuestionsPerRound int     `yaml:"quiz_questions_per_round"`

	ResultsDelay     time.Duration `yaml:"results_delay"`
	ResultsDelayOwed time.Duration `yaml:"results_delay_owed"`
}

// MaxQuizQuestionsPerRound is the size of the job quiz bank.
const MaxQuizQuestionsPerRound = 25

// DefaultRules returns the standard game balance.
func DefaultRules() Rules {
	return Rules{
		PlayerName:         "Player 1",
		StartingSpending:   200,
		StartingSavings:    500,
		StartingRetirement: 250,

		SavingsRate:          0.00375,
		WithdrawnSavingsRate: 0.0004166667,
		RetirementRate:       0.0064583333,

		ExpenseRegenChance: 0.8,
		ExpenseBandBelow:   80,
		ExpenseBandAbove:   40,

		WeeklyEventChance:     1.0,
		NegativeEventCutoff:   0.60,
		PositiveEventCutoff:   0.99,
		QuizQuestionsPerRound: 3,

		ResultsDelay:     6 * time.Second,
		ResultsDelayOwed: 10 * time.Second,
	}
}

func (r Rules) Validate() error {
	for name, p := range map[string]float64{
		"expense_regen_chance":  r.ExpenseRegenChance,
		"weekly_event_chance":   r.WeeklyEventChance,
		"negative_event_cutoff": r.NegativeEventCutoff,
		"positive_event_cutoff": r.PositiveEventCutoff,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
		}
	}
	if r.NegativeEventCutoff > r.PositiveEventCutoff {
		return fmt.Errorf("negative_event_cutoff %v is above positive_event_cutoff %v", r.NegativeEventCutoff, r.PositiveEventCutoff)
	}
	if r.SavingsRate < 0 || r.WithdrawnSavingsRate < 0 || r.RetirementRate < 0 {
		return fmt.Errorf("interest rates must not be negative")
	}
	if r.StartingSpending < 0 || r.StartingSavings < 0 || r.StartingRetirement < 0 {
		return fmt.Errorf("starting balances must not be negative")
	}
	if r.QuizQuestionsPerRound < 1 || r.QuizQuestionsPerRound > MaxQuizQuestionsPerRound {
		return fmt.Errorf("quiz_questions_per_round must be within [1, %d], got %d", MaxQuizQuestionsPerRound, r.QuizQuestionsPerRound)
	}
	return nil
}

// LoadRules reads a YAML rules file. An empty path yields the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	r := DefaultRules()
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return r, nil
}
