package weekly

import (
	"testing"
	"time"

	"github.com/starford/wunjo/internal/models"
)

func TestRewrite_MondayTokenForEveryAnchorInWeek(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())

	// ISO week 2024-W10: Monday 2024-03-04 … Sunday 2024-03-10.
	monday := anchorDate(2024, time.March, 4)
	for d := 0; d < 7; d++ {
		anchor := monday.AddDate(0, 0, d)
		got, n := f.svc.rewrite("start !{{monday:YYYY-MM-DD}} end", anchor)
		if n != 1 {
			t.Fatalf("anchor %v: n = %d", anchor, n)
		}
		if got != "start 2024-03-04 end" {
			t.Errorf("anchor %v: got %q", anchor, got)
		}
	}
}

func TestRewrite_CaseInsensitiveWeekday(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())
	anchor := anchorDate(2024, time.March, 6)

	got, n := f.svc.rewrite("!{{FRIDAY:YYYY-MM-DD}} and !{{Tuesday:DD.MM.}}", anchor)
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
	if got != "2024-03-08 and 05.03." {
		t.Errorf("got %q", got)
	}
}

func TestRewrite_DailyNoteKeyword(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DailySettings{
		Enabled: true,
		Format:  "YYYY-MM-DD",
		Folder:  "Daily",
	})
	anchor := anchorDate(2024, time.March, 6)

	got, _ := f.svc.rewrite("!{{friday:daily-note}}", anchor)
	if got != "Daily/2024-03-08" {
		t.Errorf("got %q", got)
	}

	// Surrounding whitespace around the keyword is tolerated.
	got, _ = f.svc.rewrite("!{{friday: daily-note }}", anchor)
	if got != "Daily/2024-03-08" {
		t.Errorf("trimmed keyword: got %q", got)
	}
}

func TestRewrite_DailyNoteFallbackWhenDisabled(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())
	anchor := anchorDate(2024, time.March, 6)

	got, _ := f.svc.rewrite("!{{friday:daily-note}}", anchor)
	if got != "2024-03-08" {
		t.Errorf("got %q", got)
	}
}

func TestRewrite_NoTokensLeavesContentUntouched(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())
	anchor := anchorDate(2024, time.March, 6)

	content := "plain text with {{date}} and [[links]] but no weekday tokens\n"
	got, n := f.svc.rewrite(content, anchor)
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if got != content {
		t.Errorf("content changed: %q", got)
	}
}

func TestRewrite_UnknownWeekdayNotMatched(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())

	content := "!{{someday:YYYY-MM-DD}}"
	got, n := f.svc.rewrite(content, anchorDate(2024, time.March, 6))
	if n != 0 || got != content {
		t.Errorf("got %q, n = %d", got, n)
	}
}

func TestRewritePlaceholders_NoEditWhenNothingMatches(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())
	_ = f.store.Write("note.md", []byte("nothing to rewrite"))
	_ = f.ed.Open("note.md")

	before := f.store.writes
	if err := f.svc.RewritePlaceholders("note.md", anchorDate(2024, time.March, 6)); err != nil {
		t.Fatalf("RewritePlaceholders: %v", err)
	}
	if f.store.writes != before {
		t.Errorf("an edit was emitted for unchanged content")
	}
}

func TestRewritePlaceholders_SingleEditForManyTokens(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())
	_ = f.store.Write("note.md",
		[]byte("!{{monday:DD}} !{{tuesday:DD}} !{{wednesday:DD}}"))
	_ = f.ed.Open("note.md")

	before := f.store.writes
	if err := f.svc.RewritePlaceholders("note.md", anchorDate(2024, time.March, 6)); err != nil {
		t.Fatalf("RewritePlaceholders: %v", err)
	}
	if f.store.writes != before+1 {
		t.Errorf("writes = %d, want exactly one edit", f.store.writes-before)
	}
	data, _ := f.store.Read("note.md")
	if string(data) != "04 05 06" {
		t.Errorf("content = %q", data)
	}
}

func TestRewritePlaceholders_SkippedWhenViewChanged(t *testing.T) {
	f := newFixture(t, models.DefaultWeeklySettings(), models.DefaultDailySettings())
	_ = f.store.Write("a.md", []byte("!{{monday:DD}}"))
	_ = f.store.Write("b.md", []byte("other"))
	_ = f.ed.Open("a.md")
	_ = f.ed.Open("b.md")

	// The scheduled rewrite for a.md fires after navigation: no-op.
	if err := f.svc.RewritePlaceholders("a.md", anchorDate(2024, time.March, 6)); err != nil {
		t.Fatalf("RewritePlaceholders: %v", err)
	}
	data, _ := f.store.Read("a.md")
	if string(data) != "!{{monday:DD}}" {
		t.Errorf("a.md was rewritten despite navigation: %q", data)
	}
}
