// Package timeparse resolves natural-language Chinese time phrases
// ("30分钟后", "明天下午3点", "周六21点", "2025-06-08 15:30") into
// absolute timestamps.
//
// Resolution runs an ordered chain of strategies, first success wins.
// The chain is tried against a preprocessed form of the phrase first
// and, if every strategy fails, retried against the raw phrase:
// preprocessing can destroy a token a later strategy needed (rewriting
// 分钟 to 分 breaks the "N分钟后" offset match, for example), so the
// raw pass is what keeps those phrases working.
package timeparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// ErrUnresolvable is returned when every strategy fails on both passes.
var ErrUnresolvable = errors.New("unresolvable time phrase")

// strategy attempts one interpretation of the phrase. A false return
// means the strategy does not apply; the driver also rejects any result
// that is not strictly after now.
type strategy func(s string, now time.Time) (time.Time, bool)

var strategies = []strategy{
	parseWeekday,
	parseRelative,
	parseSpecific,
	parseDateLibrary,
	parseMeridiem,
}

// Resolve turns phrase into an absolute timestamp strictly after now.
func Resolve(phrase string, now time.Time) (time.Time, error) {
	phrase = strings.TrimSpace(phrase)

	for _, s := range []string{preprocess(phrase, now), phrase} {
		for _, parse := range strategies {
			if t, ok := parse(s, now); ok && t.After(now) {
				return t, nil
			}
		}
	}
	return time.Time{}, ErrUnresolvable
}

// preprocess normalizes unit synonyms to their short forms and rewrites
// relative day words into absolute dates computed from now. Only the
// first matching day word family is substituted.
func preprocess(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "小时", "时")
	s = strings.ReplaceAll(s, "分钟", "分")

	switch {
	case strings.Contains(s, "今天"):
		s = strings.ReplaceAll(s, "今天", now.Format("2006-01-02"))
	case strings.Contains(s, "明天"):
		s = strings.ReplaceAll(s, "明天", now.AddDate(0, 0, 1).Format("2006-01-02"))
	case strings.Contains(s, "后天"):
		s = strings.ReplaceAll(s, "后天", now.AddDate(0, 0, 2).Format("2006-01-02"))
	}
	return s
}

// clockRe extracts an H[:MM] time of day. Both the ASCII and the
// full-width colon are accepted and the minute group is optional.
var clockRe = regexp.MustCompile(`(\d{1,2})[:：]?(\d{1,2})?`)

// extractClock pulls the first hour/minute pair out of s. A missing
// minute group defaults to zero.
func extractClock(s string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	return hour, minute, true
}

// clockOn pins hour:minute onto the calendar day of d. Out-of-range
// values reject the strategy instead of normalizing into the next day.
func clockOn(d time.Time, hour, minute int) (time.Time, bool) {
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()), true
}

// weekdayNumbers maps the three weekday synonym families (周N, 星期N,
// 礼拜N) onto Monday-based indices 0–6.
var weekdayNumbers = map[string]int{
	"周一": 0, "周二": 1, "周三": 2, "周四": 3, "周五": 4, "周六": 5, "周日": 6,
	"星期一": 0, "星期二": 1, "星期三": 2, "星期四": 3, "星期五": 4, "星期六": 5, "星期日": 6,
	"礼拜一": 0, "礼拜二": 1, "礼拜三": 2, "礼拜四": 3, "礼拜五": 4, "礼拜六": 5, "礼拜日": 6,
}

// nextWeekday returns the next calendar day with the given Monday-based
// weekday, always strictly after now: landing on that weekday today
// still moves a full week ahead.
func nextWeekday(now time.Time, weekday int) time.Time {
	current := (int(now.Weekday()) + 6) % 7
	ahead := weekday - current
	if ahead <= 0 {
		ahead += 7
	}
	return now.AddDate(0, 0, ahead)
}

// parseWeekday handles phrases naming a weekday, with an optional
// time of day ("周六21点", "下周一 9:30").
func parseWeekday(s string, now time.Time) (time.Time, bool) {
	for name, weekday := range weekdayNumbers {
		if !strings.Contains(s, name) {
			continue
		}
		hour, minute, ok := extractClock(s)
		if !ok {
			continue
		}
		return clockOn(nextWeekday(now, weekday), hour, minute)
	}
	return time.Time{}, false
}

var (
	daysLaterRe    = regexp.MustCompile(`(\d+)天后`)
	hoursLaterRe   = regexp.MustCompile(`(\d+)小时后`)
	minutesLaterRe = regexp.MustCompile(`(\d+)分钟后`)
)

// parseRelative handles "N天后" / "N小时后" / "N分钟后" offsets, checked
// in that order. Day offsets keep the current time of day.
func parseRelative(s string, now time.Time) (time.Time, bool) {
	if m := daysLaterRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return clockOn(now.AddDate(0, 0, n), now.Hour(), now.Minute())
	}
	if m := hoursLaterRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Hour), true
	}
	if m := minutesLaterRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Minute), true
	}
	return time.Time{}, false
}

// parseSpecific handles a bare time of day. A time at or before the
// current time of day rolls to the next calendar day.
func parseSpecific(s string, now time.Time) (time.Time, bool) {
	hour, minute, ok := extractClock(s)
	if !ok {
		return time.Time{}, false
	}
	day := now
	if hour < now.Hour() || (hour == now.Hour() && minute <= now.Minute()) {
		day = now.AddDate(0, 0, 1)
	}
	return clockOn(day, hour, minute)
}

// parseDateLibrary delegates to the general-purpose date-phrase parser
// for locale-rich expressions and the standard "2025-06-08 15:30" form.
func parseDateLibrary(s string, now time.Time) (time.Time, bool) {
	cfg := &dateparser.Configuration{CurrentTime: now}
	dt, err := dateparser.Parse(cfg, s)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time, true
}

// parseMeridiem handles 上午/下午/晚上 12-hour phrases. 下午 and 晚上
// both mean PM; hour 12 stays 12 in PM and becomes 0 in AM.
func parseMeridiem(s string, now time.Time) (time.Time, bool) {
	var pm, marked bool
	switch {
	case strings.Contains(s, "上午"):
		s = strings.ReplaceAll(s, "上午", "")
		marked = true
	case strings.Contains(s, "下午") || strings.Contains(s, "晚上"):
		s = strings.ReplaceAll(s, "下午", "")
		s = strings.ReplaceAll(s, "晚上", "")
		pm, marked = true, true
	}

	hour, minute, ok := extractClock(s)
	if !ok {
		return time.Time{}, false
	}
	if marked {
		if pm && hour < 12 {
			hour += 12
		} else if !pm && hour == 12 {
			hour = 0
		}
	}

	day := now
	if hour < now.Hour() || (hour == now.Hour() && minute <= now.Minute()) {
		day = now.AddDate(0, 0, 1)
	}
	return clockOn(day, hour, minute)
}
