// Package testutil provides shared test helpers for setting up vaults and settings stores.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/settings"
	"github.com/starford/wunjo/internal/storage"
)

// TestSettings creates a temporary settings store that is automatically cleaned up.
func TestSettings(t *testing.T) *settings.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "wunjo-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	st, err := settings.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// ConfigureDaily stores daily-note settings and fails the test on error.
func ConfigureDaily(t *testing.T, st *settings.Store, d models.DailySettings) {
	t.Helper()
	if err := st.SetDaily(d); err != nil {
		t.Fatal(err)
	}
}

// ConfigureWeekly stores weekly-note settings and fails the test on error.
func ConfigureWeekly(t *testing.T, st *settings.Store, w models.WeeklySettings) {
	t.Helper()
	if err := st.SetWeekly(w); err != nil {
		t.Fatal(err)
	}
}
