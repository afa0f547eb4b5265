package weekly

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/wunjo/internal/daily"
	"github.com/starford/wunjo/internal/editor"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/settings"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/template"
	"github.com/starford/wunjo/internal/testutil"
)

// countingStore records Write calls so tests can assert that no
// needless edit was emitted.
type countingStore struct {
	storage.Provider
	writes int
}

func (c *countingStore) Write(path string, content []byte) error {
	c.writes++
	return c.Provider.Write(path, content)
}

type fixture struct {
	svc     *Service
	store   *countingStore
	st      *settings.Store
	ed      *editor.Manager
	notices []string
}

func newFixture(t *testing.T, w models.WeeklySettings, d models.DailySettings) *fixture {
	t.Helper()
	_, base := testutil.TestVault(t)
	store := &countingStore{Provider: base}
	st := testutil.TestSettings(t)
	testutil.ConfigureWeekly(t, st, w)
	testutil.ConfigureDaily(t, st, d)

	f := &fixture{store: store, st: st}
	notifier := editor.NotifierFunc(func(msg string) { f.notices = append(f.notices, msg) })

	f.ed = editor.NewManager(store)
	tp := template.New(store, true)
	f.svc = NewService(store, st, tp, f.ed, daily.NewNotes(st), notifier, slog.Default())
	return f
}

func anchorDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNotePath_Deterministic(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		Folder:     "weekly",
		DateFormat: "gggg-[W]ww",
	}, models.DefaultDailySettings())

	anchor := anchorDate(2024, time.March, 6)
	if got := f.svc.NotePath(anchor); got != "weekly/2024-W10.md" {
		t.Errorf("path = %q", got)
	}
	// No folder: note lands at the vault root.
	testutil.ConfigureWeekly(t, f.st, models.WeeklySettings{DateFormat: "gggg-[W]ww"})
	if got := f.svc.NotePath(anchor); got != "2024-W10.md" {
		t.Errorf("path = %q", got)
	}
}

func TestOpen_CreatesThenReuses(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		Folder:     "weekly",
		DateFormat: "gggg-[W]ww",
	}, models.DefaultDailySettings())
	anchor := anchorDate(2024, time.March, 6)

	first, err := f.svc.Open(context.Background(), anchor)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if !first.Created {
		t.Error("first open should create the note")
	}

	second, err := f.svc.Open(context.Background(), anchor)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if second.Created {
		t.Error("second open must reuse the existing note")
	}
	if second.Path != first.Path {
		t.Errorf("paths differ: %q vs %q", first.Path, second.Path)
	}

	items, _ := f.store.List("weekly")
	if len(items) != 1 {
		t.Errorf("note count = %d, want 1", len(items))
	}
}

func TestOpen_SameWeekDifferentAnchorsSharePath(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		DateFormat: "gggg-[W]ww",
	}, models.DefaultDailySettings())

	// Monday and Sunday of ISO week 2024-W10.
	a, err := f.svc.Open(context.Background(), anchorDate(2024, time.March, 4))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, err := f.svc.Open(context.Background(), anchorDate(2024, time.March, 10))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.Path != b.Path || !a.Created || b.Created {
		t.Errorf("a = %+v, b = %+v", a, b)
	}
}

func TestOpen_AppliesTemplateOnCreationOnly(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		Folder:     "weekly",
		Template:   "templates/week",
		DateFormat: "gggg-[W]ww",
	}, models.DefaultDailySettings())
	_ = f.store.Write("templates/week.md", []byte("# {{title}}\n"))
	anchor := anchorDate(2024, time.March, 6)

	res, err := f.svc.Open(context.Background(), anchor)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := f.store.Read(res.Path)
	if string(data) != "# 2024-W10\n" {
		t.Errorf("content = %q", data)
	}

	// Re-opening must not re-apply the template.
	_ = f.ed.SetContent(res.Path, "# 2024-W10\nuser edits\n")
	if _, err := f.svc.Open(context.Background(), anchor); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	data, _ = f.store.Read(res.Path)
	if string(data) != "# 2024-W10\nuser edits\n" {
		t.Errorf("template re-applied: %q", data)
	}
}

func TestOpen_TemplateNotFoundNotifiesOnceAndLeavesNoteEmpty(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		Template:   "templates/absent",
		DateFormat: "gggg-[W]ww",
	}, models.DefaultDailySettings())
	anchor := anchorDate(2024, time.March, 6)

	res, err := f.svc.Open(context.Background(), anchor)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	found := 0
	for _, n := range f.notices {
		if strings.Contains(n, "Template not found") {
			found++
		}
	}
	if found != 1 {
		t.Errorf("'not found' notices = %d, want 1 (%v)", found, f.notices)
	}
	data, _ := f.store.Read(res.Path)
	if len(data) != 0 {
		t.Errorf("note should stay empty, got %q", data)
	}
}

func TestOpen_RewritesTemplatePlaceholders(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		Template:   "templates/week",
		DateFormat: "gggg-[W]ww",
	}, models.DailySettings{
		Enabled: true,
		Format:  "YYYY-MM-DD",
		Folder:  "Daily",
	})
	_ = f.store.Write("templates/week.md",
		[]byte("Mon: !{{monday:YYYY-MM-DD}}\nFri: !{{friday:daily-note}}\n"))
	anchor := anchorDate(2024, time.March, 6)

	res, err := f.svc.Open(context.Background(), anchor)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := f.store.Read(res.Path)
	want := "Mon: 2024-03-04\nFri: Daily/2024-03-08\n"
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestOpen_RawCopyWhenTemplaterDisabled(t *testing.T) {
	f := newFixture(t, models.WeeklySettings{
		Template:   "templates/week",
		DateFormat: "gggg-[W]ww",
	}, models.DefaultDailySettings())
	// Swap in a disabled templater: raw text is copied, its own
	// placeholders untouched, but weekday tokens still rewritten.
	f.svc.templater = template.New(f.store, false)
	_ = f.store.Write("templates/week.md", []byte("{{title}} !{{monday:DD}}\n"))

	res, err := f.svc.Open(context.Background(), anchorDate(2024, time.March, 6))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := f.store.Read(res.Path)
	if string(data) != "{{title}} 04\n" {
		t.Errorf("content = %q", data)
	}
}
