package bootstrap_test

import (
	"context"
	"os"
	"testing"

	"mdrank/internal/bootstrap"
	"mdrank/internal/platform/config"
)

// A vault with no .mdrank directory must wire up and serve an empty
// session; nothing may depend on a previous run having created state.
func TestNewOnFreshVault(t *testing.T) {
	vault := t.TempDir()
	cfg, err := config.New(vault)
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		t.Fatalf("wire on fresh vault: %v", err)
	}
	if _, err := os.Stat(cfg.DataDir); err != nil {
		t.Fatalf("data dir not created: %v", err)
	}

	out, err := app.DuelTUI.StartSession(context.Background(), cfg.DefaultPool)
	if err != nil {
		t.Fatalf("start session on empty vault: %v", err)
	}
	if len(out.Contenders) != 0 {
		t.Fatalf("expected no contenders in an empty vault, got %d", len(out.Contenders))
	}
	if out.EventCount != 0 {
		t.Fatalf("expected empty store, got %d events", out.EventCount)
	}
}
