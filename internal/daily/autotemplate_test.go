package daily

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/wunjo/internal/editor"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/settings"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/template"
	"github.com/starford/wunjo/internal/testutil"
)

const testDelay = 10 * time.Millisecond

func newAutoTemplater(t *testing.T, cfg models.DailySettings) (*AutoTemplater, storage.Provider, *settings.Store, *[]string) {
	t.Helper()
	_, store := testutil.TestVault(t)
	st := testutil.TestSettings(t)
	testutil.ConfigureDaily(t, st, cfg)

	var notices []string
	notifier := editor.NotifierFunc(func(msg string) { notices = append(notices, msg) })

	tp := template.New(store, true)
	at := NewAutoTemplater(NewNotes(st), store, tp, notifier, slog.Default(), testDelay)
	return at, store, st, &notices
}

// waitForInsert polls until the note is non-empty or the deadline passes.
func waitForInsert(t *testing.T, store storage.Provider, path string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, err := store.Read(path)
		if err == nil && len(data) > 0 {
			return string(data)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("template was never inserted into %s", path)
	return ""
}

func TestHandleCreate_MatchingEmptyNoteGetsTemplate(t *testing.T) {
	cfg := models.DailySettings{
		Enabled:  true,
		Format:   "YYYY-MM-DD",
		Folder:   "Daily",
		Template: "templates/daily",
	}
	at, store, _, _ := newAutoTemplater(t, cfg)
	_ = store.Write("templates/daily.md", []byte("# {{title}}\n{{date}}\n"))
	_ = store.EnsureDir("Daily")
	_ = store.Create("Daily/2024-03-08.md")

	at.HandleCreate("Daily/2024-03-08.md")

	got := waitForInsert(t, store, "Daily/2024-03-08.md")
	want := "# 2024-03-08\n2024-03-08\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestHandleCreate_NonMatchingNameIgnored(t *testing.T) {
	cfg := models.DailySettings{
		Enabled:  true,
		Format:   "YYYY-MM-DD",
		Folder:   "Daily",
		Template: "templates/daily",
	}
	at, store, _, _ := newAutoTemplater(t, cfg)
	_ = store.Write("templates/daily.md", []byte("tpl"))
	_ = store.EnsureDir("Daily")
	_ = store.Create("Daily/meeting-notes.md")

	at.HandleCreate("Daily/meeting-notes.md")

	time.Sleep(5 * testDelay)
	data, _ := store.Read("Daily/meeting-notes.md")
	if len(data) != 0 {
		t.Errorf("unrelated file was templated: %q", data)
	}
}

func TestHandleCreate_OutsideConfiguredFolderIgnored(t *testing.T) {
	cfg := models.DailySettings{
		Enabled:  true,
		Format:   "YYYY-MM-DD",
		Folder:   "Daily",
		Template: "templates/daily",
	}
	at, store, _, _ := newAutoTemplater(t, cfg)
	_ = store.Write("templates/daily.md", []byte("tpl"))
	_ = store.EnsureDir("elsewhere")
	_ = store.Create("elsewhere/2024-03-08.md")

	at.HandleCreate("elsewhere/2024-03-08.md")

	time.Sleep(5 * testDelay)
	data, _ := store.Read("elsewhere/2024-03-08.md")
	if len(data) != 0 {
		t.Errorf("note outside folder was templated: %q", data)
	}
}

func TestHandleCreate_NonEmptyNoteIgnored(t *testing.T) {
	cfg := models.DailySettings{
		Enabled:  true,
		Format:   "YYYY-MM-DD",
		Folder:   "Daily",
		Template: "templates/daily",
	}
	at, store, _, _ := newAutoTemplater(t, cfg)
	_ = store.Write("templates/daily.md", []byte("tpl"))
	_ = store.Write("Daily/2024-03-08.md", []byte("already has content"))

	at.HandleCreate("Daily/2024-03-08.md")

	time.Sleep(5 * testDelay)
	data, _ := store.Read("Daily/2024-03-08.md")
	if string(data) != "already has content" {
		t.Errorf("content was replaced: %q", data)
	}
}

func TestHandleCreate_NoTemplateConfiguredDoesNothing(t *testing.T) {
	cfg := models.DailySettings{
		Enabled: true,
		Format:  "YYYY-MM-DD",
		Folder:  "Daily",
	}
	at, store, _, notices := newAutoTemplater(t, cfg)
	_ = store.EnsureDir("Daily")
	_ = store.Create("Daily/2024-03-08.md")

	at.HandleCreate("Daily/2024-03-08.md")

	time.Sleep(5 * testDelay)
	if len(*notices) != 0 {
		t.Errorf("unexpected notices: %v", *notices)
	}
}

func TestHandleCreate_MissingTemplateNotifies(t *testing.T) {
	cfg := models.DailySettings{
		Enabled:  true,
		Format:   "YYYY-MM-DD",
		Folder:   "Daily",
		Template: "templates/absent",
	}
	at, store, _, notices := newAutoTemplater(t, cfg)
	_ = store.EnsureDir("Daily")
	_ = store.Create("Daily/2024-03-08.md")

	at.HandleCreate("Daily/2024-03-08.md")

	if len(*notices) != 1 || !strings.Contains((*notices)[0], "template not found") {
		t.Errorf("notices = %v", *notices)
	}
	data, _ := store.Read("Daily/2024-03-08.md")
	if len(data) != 0 {
		t.Errorf("note was modified: %q", data)
	}
}

func TestHandleCreate_UserTypedBeforeDelayNotOverwritten(t *testing.T) {
	cfg := models.DailySettings{
		Enabled:  true,
		Format:   "YYYY-MM-DD",
		Template: "templates/daily",
	}
	at, store, _, _ := newAutoTemplater(t, cfg)
	_ = store.Write("templates/daily.md", []byte("tpl"))
	_ = store.Create("2024-03-08.md")

	at.HandleCreate("2024-03-08.md")
	// Simulate the user typing before the insert delay fires.
	_ = store.Write("2024-03-08.md", []byte("my own words"))

	time.Sleep(5 * testDelay)
	data, _ := store.Read("2024-03-08.md")
	if string(data) != "my own words" {
		t.Errorf("user content was overwritten: %q", data)
	}
}
