package automation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// weekdays maps lower-case three-letter day names to cron day-of-week numbers.
var weekdays = map[string]int{
	"sun": 0,
	"mon": 1,
	"tue": 2,
	"wed": 3,
	"thu": 4,
	"fri": 5,
	"sat": 6,
}

// ParseTime parses an "HH:mm" wall-clock time.
func ParseTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time %q is not HH:mm", ErrInvalidSchedule, s)
	}
	return t.Hour(), t.Minute(), nil
}

// ParseDay maps a three-letter day name (case-insensitive) to its cron
// day-of-week number, Sunday being 0.
func ParseDay(s string) (int, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, s)
	}
	return d, nil
}

// CronSpec renders the automation's time and days as a standard
// five-field cron expression. An empty day list means every day.
func CronSpec(a *Automation) (string, error) {
	hour, minute, err := ParseTime(a.Time)
	if err != nil {
		return "", err
	}

	dow := "*"
	if len(a.Days) > 0 {
		seen := make(map[int]struct{}, len(a.Days))
		parts := make([]string, 0, len(a.Days))
		for _, day := range a.Days {
			n, err := ParseDay(day)
			if err != nil {
				return "", err
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			parts = append(parts, strconv.Itoa(n))
		}
		dow = strings.Join(parts, ",")
	}

	return fmt.Sprintf("%d %d * * %s", minute, hour, dow), nil
}

// ParseSchedule returns the cron schedule of the automation.
func ParseSchedule(a *Automation) (cron.Schedule, error) {
	spec, err := CronSpec(a)
	if err != nil {
		return nil, err
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return sched, nil
}

// NextRun returns when the automation would next fire after now, in now's
// location. It reports false for inactive automations and for schedules
// that do not parse. Nothing in the system acts on the result.
func NextRun(a *Automation, now time.Time) (time.Time, bool) {
	if a == nil || !a.Active {
		return time.Time{}, false
	}
	sched, err := ParseSchedule(a)
	if err != nil {
		return time.Time{}, false
	}
	return sched.Next(now), true
}
