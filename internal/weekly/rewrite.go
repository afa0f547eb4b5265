package weekly

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/dateformat"
	"github.com/starford/wunjo/internal/week"
)

// tokenRe matches weekday placeholder tokens of the shape
// !{{<weekday>:<format>}}, case-insensitively. The format part is one
// or more characters without a closing brace.
var tokenRe = regexp.MustCompile(`(?i)!\{\{(sunday|monday|tuesday|wednesday|thursday|friday|saturday):([^}]+)\}\}`)

// dailyNoteKeyword requests a link to the weekday's daily note instead
// of a formatted date.
const dailyNoteKeyword = "daily-note"

// fallbackFormat is used when daily notes are disabled or unconfigured.
const fallbackFormat = "YYYY-MM-DD"

// RewritePlaceholders rewrites weekday tokens in the active view's
// buffer, anchored to the week being opened. When the note is no longer
// the active view the rewrite is silently skipped. The document is
// replaced in a single edit, and only when at least one substitution
// occurred.
func (s *Service) RewritePlaceholders(notePath string, anchor time.Time) error {
	content, err := s.editor.Content(notePath)
	if err != nil {
		if errors.Is(err, apperr.ErrNoActiveView) {
			return nil
		}
		return err
	}

	rewritten, n := s.rewrite(content, anchor)
	if n == 0 {
		return nil
	}
	return s.editor.SetContent(notePath, rewritten)
}

// rewrite performs the substitution pass and returns the new content
// together with the number of tokens replaced.
func (s *Service) rewrite(content string, anchor time.Time) (string, int) {
	count := 0
	out := tokenRe.ReplaceAllStringFunc(content, func(match string) string {
		m := tokenRe.FindStringSubmatch(match)
		wd, err := week.Weekday(m[1])
		if err != nil {
			return match
		}
		target := week.DayIn(anchor, wd)
		count++

		spec := m[2]
		if strings.TrimSpace(spec) == dailyNoteKeyword {
			link, err := s.daily.Link(target)
			if err != nil {
				return dateformat.Format(target, fallbackFormat)
			}
			return link
		}
		return dateformat.Format(target, spec)
	})
	return out, count
}
