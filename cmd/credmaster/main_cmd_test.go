// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.
package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/credmaster/internal/clock"
	"github.com/toeirei/credmaster/internal/db"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
)

// setupApp wires the global application state against an in-memory database.
func setupApp(t *testing.T) {
	t.Helper()
	i18n.Init("en")

	s, err := db.New("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	appClock = &clock.Fixed{T: time.Unix(59, 0).UTC()}
	appDB = s
	appStore = store.New(appClock)
	appSaver = db.NewSaver(s, time.Millisecond)
}

// captureStdout runs fn and returns everything it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRootCmdLoadsConfigFile(t *testing.T) {
	i18n.Init("en")
	tmp := t.TempDir()
	file := tmp + "/cfg.yaml"
	content := "database:\n  type: sqlite\n  dsn: ':memory:'\nlanguage: de\ndebug: true\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	oldCfg := cfgFile
	cfgFile = file
	defer func() { cfgFile = oldCfg }()

	if err := cmd.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE failed: %v", err)
	}
	t.Cleanup(func() { _ = appDB.Close() })

	if appConfig.Database.Type != "sqlite" || appConfig.Database.DSN != ":memory:" {
		t.Fatalf("config file not applied to database settings: %+v", appConfig.Database)
	}
	if appConfig.Language != "de" || !appConfig.Debug {
		t.Fatalf("config file not applied: %+v", appConfig)
	}
	if i18n.GetLang() != "de" {
		t.Fatalf("expected language from config file, got %q", i18n.GetLang())
	}
}

func TestRootCmdFlagOverridesConfigFile(t *testing.T) {
	i18n.Init("en")
	tmp := t.TempDir()
	file := tmp + "/cfg.yaml"
	content := "database:\n  type: postgres\n  dsn: 'postgresql://user@/db'\nlanguage: de\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	oldCfg := cfgFile
	cfgFile = file
	defer func() { cfgFile = oldCfg }()

	cmd.PersistentFlags().Set("db-type", "sqlite")
	cmd.PersistentFlags().Set("db-dsn", ":memory:")
	cmd.PersistentFlags().Set("lang", "en")

	if err := cmd.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE failed: %v", err)
	}
	t.Cleanup(func() { _ = appDB.Close() })

	if appConfig.Database.Type != "sqlite" || appConfig.Database.DSN != ":memory:" {
		t.Fatalf("flags must win over the config file: %+v", appConfig.Database)
	}
	if appConfig.Language != "en" {
		t.Fatalf("expected flag language en, got %q", appConfig.Language)
	}
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	if cmd == nil {
		t.Fatalf("newRootCmd returned nil")
	}

	names := []string{"accounts", "tags", "otp", "import", "export", "backup", "move"}
	for _, n := range names {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == n {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected subcommand %s to be registered", n)
		}
	}
}

func TestAccountsAddAndList(t *testing.T) {
	setupApp(t)

	accountsAddCmd.Flags().Set("password", "pw")
	defer accountsAddCmd.Flags().Set("password", "")
	out, err := captureStdout(t, func() error {
		return accountsAddCmd.RunE(accountsAddCmd, []string{"a@x.com"})
	})
	if err != nil {
		t.Fatalf("accounts add failed: %v", err)
	}
	if !strings.Contains(out, "a@x.com") {
		t.Fatalf("expected confirmation for a@x.com, got %q", out)
	}

	out, err = captureStdout(t, func() error {
		return accountsListCmd.RunE(accountsListCmd, nil)
	})
	if err != nil {
		t.Fatalf("accounts list failed: %v", err)
	}
	if !strings.Contains(out, "a@x.com") {
		t.Fatalf("expected listing to show the account, got %q", out)
	}

	// The scheduled snapshot reaches the database.
	if err := appSaver.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	snap, err := appDB.Load(t.Context())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Accounts) != 1 || snap.Accounts[0].Email != "a@x.com" {
		t.Fatalf("persisted state mismatch: %+v", snap.Accounts)
	}
}

func TestOtpShowPrintsCode(t *testing.T) {
	setupApp(t)

	acc, err := appStore.AddAccount(model.Account{
		Email:      "a@x.com",
		Password:   "pw",
		TOTPSecret: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
	})
	if err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return otpShowCmd.RunE(otpShowCmd, []string{acc.ID})
	})
	if err != nil {
		t.Fatalf("otp show failed: %v", err)
	}
	if !strings.Contains(out, "287082") {
		t.Fatalf("expected code 287082 at t=59, got %q", out)
	}

	got, _ := appStore.AccountByID(acc.ID)
	if got.LastUsed.IsZero() {
		t.Fatal("otp show must record last use")
	}
}

func TestOtpShowRejectsSecretlessAccount(t *testing.T) {
	setupApp(t)

	acc, err := appStore.AddAccount(model.Account{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	_, err = captureStdout(t, func() error {
		return otpShowCmd.RunE(otpShowCmd, []string{acc.ID})
	})
	if err == nil {
		t.Fatal("expected error for account without a secret")
	}
}

func TestImportCommandMergesFile(t *testing.T) {
	setupApp(t)

	file := t.TempDir() + "/accounts.txt"
	content := "# exported accounts\n" +
		"a@x.com|pw|GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ|alias\n" +
		"b@x.com|pw2\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	importCmd.Flags().Set("delimiter", "auto")
	defer importCmd.Flags().Set("delimiter", "")
	out, err := captureStdout(t, func() error {
		return importCmd.RunE(importCmd, []string{file})
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "2 added") {
		t.Fatalf("expected 2 added, got %q", out)
	}
	if appStore.Count() != 2 {
		t.Fatalf("expected 2 accounts after import, got %d", appStore.Count())
	}
}

func TestMoveCommandReorders(t *testing.T) {
	setupApp(t)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if _, err := appStore.AddAccount(model.Account{Email: email, Password: "pw"}); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
	}

	out, err := captureStdout(t, func() error {
		return moveCmd.RunE(moveCmd, []string{"c@x.com", "0"})
	})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if !strings.Contains(out, "position 0") {
		t.Fatalf("unexpected move output: %q", out)
	}
	if appStore.Accounts()[0].Email != "c@x.com" {
		t.Fatalf("expected c@x.com first, got %q", appStore.Accounts()[0].Email)
	}
}
