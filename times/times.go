// Package times parses human-entered time tokens into absolute unix
// timestamps or signed displacements in seconds.
//
// A token goes through a strict grammar first (explicit dates, clock
// times, weekday names, quantity expressions like "2 hours") and only
// falls back to natural-language parsing when the grammar fails.
package times

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrInvalidTime reports a token that no parsing stage understood.
var ErrInvalidTime = errors.New("invalid time")

// Layouts tried for explicit date/datetime tokens, most specific first.
var exactLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

const (
	clockLayout        = "15:04"
	clockSecondsLayout = "15:04:05"

	// A weekday token with no clock resolves to this hour.
	defaultWeekdayHour = 9
)

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

var quantityRe = regexp.MustCompile(
	`(?i)(\d+)\s*(seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w)\b`)

var unitSeconds = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
}

var digitsOnlyRe = regexp.MustCompile(`^\d+$`)

var naturalParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// Extractor parses one token in a reference timezone.
//
// Pool is optional; when set, the natural-language fallback (the only
// expensive stage) runs on it instead of the calling goroutine.
type Extractor struct {
	Token string
	Loc   *time.Location
	Pool  *Pool

	// Now is a test hook.
	Now func() time.Time
}

// New returns an extractor for token interpreted in loc.
func New(token string, loc *time.Location) *Extractor {
	if loc == nil {
		loc = time.UTC
	}
	return &Extractor{
		Token: strings.TrimSpace(token),
		Loc:   loc,
		Now:   time.Now,
	}
}

// ExtractExact resolves the token to an absolute unix timestamp.
//
// Stages, in order: explicit layouts, clock time (today, or tomorrow if
// already past), weekday names (next occurrence), displacement tokens
// (relative to now), bare unix timestamps, then the natural-language
// fallback with prefer-future resolution.
func (e *Extractor) ExtractExact(ctx context.Context) (int64, error) {
	if e.Token == "" {
		return 0, ErrInvalidTime
	}
	now := e.Now().In(e.Loc)

	for _, layout := range exactLayouts {
		if t, err := time.ParseInLocation(layout, e.Token, e.Loc); err == nil {
			return t.Unix(), nil
		}
	}

	if t, ok := e.clockTime(now); ok {
		return t.Unix(), nil
	}

	if t, ok := e.weekdayTime(now); ok {
		return t.Unix(), nil
	}

	// Bare runs of digits long enough to be a unix timestamp are taken
	// verbatim; shorter runs fall through to the displacement stage.
	if digitsOnlyRe.MatchString(e.Token) && len(e.Token) >= 9 {
		v, err := strconv.ParseInt(e.Token, 10, 64)
		if err != nil {
			return 0, ErrInvalidTime
		}
		return v, nil
	}

	if d, err := parseQuantity(e.Token); err == nil {
		return now.Unix() + d, nil
	}

	t, err := e.natural(ctx, now)
	if err != nil {
		return 0, err
	}
	if t.Before(now) {
		// Dateless tokens like "at 5pm" resolve into the past once the
		// clock has gone by; roll them to the next occurrence.
		t = t.Add(24 * time.Hour)
	}
	return t.Unix(), nil
}

// ExtractDisplacement resolves the token to a signed duration in
// seconds. A leading '-' negates the result.
func (e *Extractor) ExtractDisplacement(ctx context.Context) (int64, error) {
	if e.Token == "" {
		return 0, ErrInvalidTime
	}

	token := e.Token
	neg := strings.HasPrefix(token, "-")
	token = strings.TrimPrefix(token, "-")

	d, err := parseQuantity(token)
	if err != nil {
		// Fall back to natural parsing against a fixed reference
		// instant, taking the absolute difference.
		ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, e.Loc)
		ex := &Extractor{Token: token, Loc: e.Loc, Pool: e.Pool, Now: e.Now}
		t, nerr := ex.natural(ctx, ref)
		if nerr != nil {
			return 0, nerr
		}
		d = int64(t.Sub(ref) / time.Second)
		if d < 0 {
			d = -d
		}
	}

	if neg {
		d = -d
	}
	return d, nil
}

func (e *Extractor) clockTime(now time.Time) (time.Time, bool) {
	for _, layout := range []string{clockSecondsLayout, clockLayout} {
		c, err := time.ParseInLocation(layout, e.Token, e.Loc)
		if err != nil {
			continue
		}
		t := time.Date(now.Year(), now.Month(), now.Day(),
			c.Hour(), c.Minute(), c.Second(), 0, e.Loc)
		if !t.After(now) {
			t = t.Add(24 * time.Hour)
		}
		return t, true
	}
	return time.Time{}, false
}

func (e *Extractor) weekdayTime(now time.Time) (time.Time, bool) {
	fields := strings.FieldsFunc(strings.ToLower(e.Token), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, false
	}

	day, ok := weekdays[fields[0]]
	if !ok {
		return time.Time{}, false
	}

	hour, minute, second := defaultWeekdayHour, 0, 0
	if len(fields) == 2 {
		c, err := time.ParseInLocation(clockLayout, fields[1], e.Loc)
		if err != nil {
			c, err = time.ParseInLocation(clockSecondsLayout, fields[1], e.Loc)
			if err != nil {
				return time.Time{}, false
			}
		}
		hour, minute, second = c.Hour(), c.Minute(), c.Second()
	}

	days := (int(day) - int(now.Weekday()) + 7) % 7
	t := time.Date(now.Year(), now.Month(), now.Day(),
		hour, minute, second, 0, e.Loc).AddDate(0, 0, days)
	if !t.After(now) {
		t = t.AddDate(0, 0, 7)
	}
	return t, true
}

func (e *Extractor) natural(ctx context.Context, base time.Time) (time.Time, error) {
	var (
		r   *when.Result
		err error
	)
	run := func() { r, err = naturalParser.Parse(e.Token, base) }

	if e.Pool != nil {
		if perr := e.Pool.Run(ctx, run); perr != nil {
			return time.Time{}, perr
		}
	} else {
		run()
	}

	if err != nil || r == nil {
		return time.Time{}, ErrInvalidTime
	}
	return r.Time, nil
}

// parseQuantity parses tokens like "10m", "2 hours", "600" (bare
// seconds) or "1 day 2 hours" into seconds. The whole token must be
// consumed by quantity pairs and separators.
func parseQuantity(token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrInvalidTime
	}

	if digitsOnlyRe.MatchString(token) {
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0, ErrInvalidTime
		}
		return v, nil
	}

	idxs := quantityRe.FindAllStringSubmatchIndex(token, -1)
	if len(idxs) == 0 {
		return 0, ErrInvalidTime
	}

	var total int64
	last := 0
	for _, m := range idxs {
		if !isSeparator(token[last:m[0]]) {
			return 0, ErrInvalidTime
		}
		value, err := strconv.ParseInt(token[m[2]:m[3]], 10, 64)
		if err != nil {
			return 0, ErrInvalidTime
		}
		unit := normalizeUnit(token[m[4]:m[5]])
		total += value * unitSeconds[unit]
		last = m[1]
	}
	if !isSeparator(token[last:]) {
		return 0, ErrInvalidTime
	}
	return total, nil
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(unit)[0] {
	case 's':
		return "s"
	case 'm':
		return "m"
	case 'h':
		return "h"
	case 'd':
		return "d"
	default:
		return "w"
	}
}

func isSeparator(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "," || s == "and"
}
