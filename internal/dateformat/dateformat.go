// Package dateformat implements moment.js-style date format strings:
// tokens like YYYY, MM, DD, gggg and ww are expanded from a time.Time,
// and bracketed sequences ([W]) pass through as literals. The same
// layouts drive strict parsing of note file names.
//
// Week-based tokens use ISO 8601 weeks (Monday start), so the locale
// pair gggg/ww is equivalent to GGGG/WW here.
package dateformat

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// tokens is ordered longest-first so the scanner is greedy.
var tokens = []string{
	"GGGG", "gggg", "YYYY", "MMMM", "dddd",
	"MMM", "ddd",
	"YY", "MM", "DD", "WW", "ww", "dd", "HH", "mm", "ss",
	"M", "D", "W", "w", "d",
}

type segment struct {
	text    string
	literal bool
}

// scan splits a layout into token and literal segments. Bracketed
// sequences become literals with the brackets stripped.
func scan(layout string) []segment {
	var segs []segment
	i := 0
	for i < len(layout) {
		if layout[i] == '[' {
			end := strings.IndexByte(layout[i:], ']')
			if end < 0 {
				segs = append(segs, segment{text: layout[i+1:], literal: true})
				break
			}
			segs = append(segs, segment{text: layout[i+1 : i+end], literal: true})
			i += end + 1
			continue
		}
		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(layout[i:], tok) {
				segs = append(segs, segment{text: tok})
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			segs = append(segs, segment{text: layout[i : i+1], literal: true})
			i++
		}
	}
	return segs
}

// Format renders t according to the moment-style layout.
func Format(t time.Time, layout string) string {
	var b strings.Builder
	for _, seg := range scan(layout) {
		if seg.literal {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(renderToken(t, seg.text))
	}
	return b.String()
}

func renderToken(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return fmt.Sprintf("%d", int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return fmt.Sprintf("%d", t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "dd":
		return t.Weekday().String()[:2]
	case "d":
		return fmt.Sprintf("%d", int(t.Weekday()))
	case "GGGG", "gggg":
		y, _ := t.ISOWeek()
		return fmt.Sprintf("%04d", y)
	case "WW", "ww":
		_, w := t.ISOWeek()
		return fmt.Sprintf("%02d", w)
	case "W", "w":
		_, w := t.ISOWeek()
		return fmt.Sprintf("%d", w)
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	}
	return tok
}

// parsePatterns maps the tokens usable in strict parsing to regexp
// fragments. Week and weekday tokens do not identify a calendar date on
// their own, so layouts containing them are rejected by Parse.
var parsePatterns = map[string]string{
	"YYYY": `(\d{4})`,
	"YY":   `(\d{2})`,
	"MM":   `(\d{2})`,
	"M":    `(\d{1,2})`,
	"DD":   `(\d{2})`,
	"D":    `(\d{1,2})`,
	"MMMM": monthNamesAlt(false),
	"MMM":  monthNamesAlt(true),
}

func monthNamesAlt(short bool) string {
	names := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		n := m.String()
		if short {
			n = n[:3]
		}
		names[m-1] = n
	}
	return "(" + strings.Join(names, "|") + ")"
}

// Parse interprets value against the moment-style layout, strictly: the
// value must match the layout exactly, and the extracted date must render
// back to the identical string (rejecting out-of-range components that
// time.Date would otherwise normalize).
func Parse(value, layout string) (time.Time, error) {
	segs := scan(layout)

	var pattern strings.Builder
	pattern.WriteString(`^`)
	var order []string
	for _, seg := range segs {
		if seg.literal {
			pattern.WriteString(regexp.QuoteMeta(seg.text))
			continue
		}
		frag, ok := parsePatterns[seg.text]
		if !ok {
			return time.Time{}, fmt.Errorf("dateformat: token %q not usable in strict parse", seg.text)
		}
		pattern.WriteString(frag)
		order = append(order, seg.text)
	}
	pattern.WriteString(`$`)

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("dateformat: compile layout %q: %w", layout, err)
	}
	m := re.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, fmt.Errorf("dateformat: %q does not match layout %q", value, layout)
	}

	year, month, day := 0, 1, 1
	haveYear := false
	for i, tok := range order {
		v := m[i+1]
		switch tok {
		case "YYYY":
			year = atoi(v)
			haveYear = true
		case "YY":
			year = 2000 + atoi(v)
			haveYear = true
		case "MM", "M":
			month = atoi(v)
		case "DD", "D":
			day = atoi(v)
		case "MMMM", "MMM":
			month = monthByName(v)
		}
	}
	if !haveYear {
		return time.Time{}, fmt.Errorf("dateformat: layout %q has no year token", layout)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("dateformat: %q is out of range for layout %q", value, layout)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// Round-trip check catches normalized dates like Feb 31.
	if Format(t, layout) != value {
		return time.Time{}, fmt.Errorf("dateformat: %q is not a valid date for layout %q", value, layout)
	}
	return t, nil
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func monthByName(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name || m.String()[:3] == name {
			return int(m)
		}
	}
	return 0
}
