package backend

import (
	"context"
	"path/filepath"
	"testing"

	"goodcents/internal/config"
	"goodcents/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		want    BackendType
		wantErr bool
	}{
		{"sqlite", &config.Config{DataBackend: "sqlite", SQLiteDBPath: "game.db"}, SQLiteBackend, false},
		{"memory", &config.Config{DataBackend: "memory"}, MemoryBackend, false},
		{"unknown", &config.Config{DataBackend: "postgres"}, "", true},
		{"nil", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAppConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Type != tt.want {
				t.Errorf("FromAppConfig() type = %q, want %q", got.Type, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{Type: SQLiteBackend}).Validate(); err == nil {
		t.Error("expected error for sqlite without path")
	}
	if err := (Config{Type: MemoryBackend}).Validate(); err != nil {
		t.Errorf("memory backend: unexpected error %v", err)
	}
	if got := GetBackendTypeStrings(); len(got) != 2 {
		t.Errorf("GetBackendTypeStrings() = %v", got)
	}
}

func TestFactory_CreateBackend(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	for _, cfg := range []Config{
		{Type: MemoryBackend},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "game.db")},
	} {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			res, err := factory.CreateBackend(ctx, cfg)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer res.Cleanup()

			if err := res.Store.SavePlayer(ctx, core.Player{Name: "Player 1", Spending: 200}); err != nil {
				t.Fatalf("SavePlayer() error = %v", err)
			}
			p, err := res.Store.GetPlayer(ctx)
			if err != nil {
				t.Fatalf("GetPlayer() error = %v", err)
			}
			if p.Spending != 200 {
				t.Errorf("Spending = %v, want 200", p.Spending)
			}
		})
	}

	if _, err := factory.CreateBackend(ctx, Config{Type: "postgres"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
