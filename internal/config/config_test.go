package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iboss-ptk/protostar-sdk/internal/signer"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "protostar-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected App.LogLevel: %s", cfg.App.LogLevel)
	}
	if cfg.App.MetricsTextfile != "/tmp/protostar.prom" {
		t.Fatalf("unexpected App.MetricsTextfile: %s", cfg.App.MetricsTextfile)
	}
	if cfg.AccountPrefix != "osmo" {
		t.Fatalf("unexpected AccountPrefix: %s", cfg.AccountPrefix)
	}
	if cfg.DerivationPath != "m/44'/118'/0'/0/0" {
		t.Fatalf("unexpected DerivationPath: %s", cfg.DerivationPath)
	}
	if names := cfg.AccountNames(); len(names) != 2 || names[0] != "test1" || names[1] != "validator" {
		t.Fatalf("unexpected accounts: %+v", names)
	}
	if !strings.HasPrefix(cfg.Accounts["test1"].Mnemonic, "abandon") {
		t.Fatalf("test1 should be a mnemonic account: %+v", cfg.Accounts["test1"])
	}
	if cfg.Accounts["validator"].PrivateKey == "" || cfg.Accounts["validator"].Mnemonic != "" {
		t.Fatalf("validator should be a private key account")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "minimal.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.Name != DefaultAppName || cfg.App.LogLevel != DefaultLogLevel {
		t.Fatalf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.AccountPrefix != DefaultAccountPrefix {
		t.Fatalf("unexpected prefix default: %s", cfg.AccountPrefix)
	}
	if cfg.DerivationPath != signer.DefaultDerivationPath {
		t.Fatalf("unexpected derivation path default: %s", cfg.DerivationPath)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write empty config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error for empty file: %v", err)
	}
	if cfg.DerivationPath != signer.DefaultDerivationPath || cfg.AccountPrefix != DefaultAccountPrefix {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if len(cfg.Accounts) != 0 {
		t.Fatalf("expected no accounts, got %+v", cfg.Accounts)
	}
}

func TestLoadRejectsInvalidAccounts(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid_account.yaml"))
	if !errors.Is(err, signer.ErrConflictingCredentials) {
		t.Fatalf("expected conflicting credentials error, got %v", err)
	}
	if !errors.Is(err, signer.ErrNoCredentialSupplied) {
		t.Fatalf("expected missing credential error, got %v", err)
	}
	if !strings.Contains(err.Error(), "`both`") || !strings.Contains(err.Error(), "`neither`") {
		t.Fatalf("error should name both accounts: %v", err)
	}
}

func TestLoadRejectsInvalidDerivationPath(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid_path.yaml"))
	if !errors.Is(err, signer.ErrInvalidDerivationPath) {
		t.Fatalf("expected derivation path error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Accounts["alice"] = signer.Account{PrivateKey: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAc="}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Accounts["alice"] != cfg.Accounts["alice"] {
		t.Fatalf("account lost in round trip: %+v", loaded.Accounts)
	}
	if loaded.DerivationPath != cfg.DerivationPath {
		t.Fatalf("derivation path lost in round trip: %s", loaded.DerivationPath)
	}
	if err := Save(path, nil); err == nil {
		t.Fatalf("expected error saving nil config")
	}
}
