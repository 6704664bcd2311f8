package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: filepath.Join(tempDir, "game.db"),
				LogLevel:     "info",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				DataBackend: "memory",
				LogLevel:    "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid backend",
			config: Config{
				DataBackend: "postgres",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "sqlite without path",
			config: Config{
				DataBackend: "sqlite",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "missing content directory",
			config: Config{
				DataBackend: "memory",
				ContentDir:  filepath.Join(tempDir, "nope"),
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "content directory does not exist",
		},
		{
			name: "missing rules file",
			config: Config{
				DataBackend: "memory",
				RulesFile:   filepath.Join(tempDir, "rules.yaml"),
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "rules file does not exist",
		},
		{
			name: "bad log level",
			config: Config{
				DataBackend: "memory",
				LogLevel:    "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate() expected error containing %q", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("METRICS_FILE", "/tmp/goodcents.prom")

	cfg := Load()
	if cfg.DataBackend != "memory" || cfg.Seed != 42 || cfg.LogLevel != "warn" || cfg.MetricsFile != "/tmp/goodcents.prom" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATA_BACKEND", "SQLITE_DB_PATH", "RANDOM_SEED", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "./data/goodcents.db" || cfg.Seed != 0 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRules(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		r, err := LoadRules("")
		if err != nil {
			t.Fatalf("LoadRules() error = %v", err)
		}
		if r != DefaultRules() {
			t.Fatalf("expected defaults, got %+v", r)
		}
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "player_name: Sam\nstarting_spending: 1500\nweekly_event_chance: 0.5\nresults_delay: 2s\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		r, err := LoadRules(path)
		if err != nil {
			t.Fatalf("LoadRules() error = %v", err)
		}
		if r.PlayerName != "Sam" || r.StartingSpending != 1500 || r.WeeklyEventChance != 0.5 || r.ResultsDelay != 2*time.Second {
			t.Fatalf("overrides not applied: %+v", r)
		}
		if r.StartingSavings != 500 || r.SavingsRate != 0.00375 || r.ResultsDelayOwed != 10*time.Second {
			t.Fatalf("defaults not applied: %+v", r)
		}
	})

	t.Run("explicit zero is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "weekly_event_chance: 0\nexpense_regen_chance: 0\nstarting_spending: 0\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		r, err := LoadRules(path)
		if err != nil {
			t.Fatalf("LoadRules() error = %v", err)
		}
		if r.WeeklyEventChance != 0 || r.ExpenseRegenChance != 0 || r.StartingSpending != 0 {
			t.Fatalf("zero values replaced: %+v", r)
		}
		if r.StartingSavings != 500 || r.QuizQuestionsPerRound != 3 {
			t.Fatalf("defaults not applied: %+v", r)
		}
	})

	t.Run("quiz round larger than the bank", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte("quiz_questions_per_round: 26\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRules(path); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("out of range probability", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte("expense_regen_chance: 1.5\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRules(path); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	for _, in := range []string{"debug", "info", "warn", "error", "INFO"} {
		if _, err := ParseLogLevel(in); err != nil {
			t.Errorf("ParseLogLevel(%q) error = %v", in, err)
		}
	}
}
