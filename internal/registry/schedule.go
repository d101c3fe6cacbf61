package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thoas/go-funk"
)

// ErrInvalidSchedule means the schedule string could not be parsed.
var ErrInvalidSchedule = errors.New(`invalid schedule, expected "19:00-22:00, Mon-Fri"`)

// Window is one availability slot: a daily time range on selected weekdays
// (Monday = 1 .. Sunday = 7).
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  []int  `json:"days"`
}

// Schedule is a set of weekly availability windows.
type Schedule struct {
	Windows []Window `json:"windows"`
}

// Contains reports whether t falls inside any window.
func (s *Schedule) Contains(t time.Time) bool {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	current := t.Format("15:04")

	for _, w := range s.Windows {
		if !funk.ContainsInt(w.Days, weekday) {
			continue
		}
		if w.Start <= current && current <= w.End {
			return true
		}
	}
	return false
}

// SetSchedule parses and stores an availability schedule given in the form
// "19:00-22:00, Mon-Fri". Days accept single names, ranges, and comma lists.
func (r *Registry) SetSchedule(ctx context.Context, phone, scheduleStr string) (*Schedule, error) {
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	schedule, err := ParseSchedule(scheduleStr)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	if err := r.client.Set(ctx, phone+scheduleKeySuffix, payload, 0).Err(); err != nil {
		return nil, fmt.Errorf("store schedule: %w", err)
	}

	r.logger.Info("Schedule set", "phone", phone, "schedule", scheduleStr)
	return schedule, nil
}

// GetSchedule returns the stored schedule, or nil if none is set.
func (r *Registry) GetSchedule(ctx context.Context, phone string) (*Schedule, error) {
	payload, err := r.client.Get(ctx, phone+scheduleKeySuffix).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}

	var schedule Schedule
	if err := json.Unmarshal([]byte(payload), &schedule); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return &schedule, nil
}

// ParseSchedule parses "19:00-22:00, Mon-Fri" into a single-window schedule.
func ParseSchedule(s string) (*Schedule, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidSchedule
	}

	times := strings.SplitN(strings.TrimSpace(parts[0]), "-", 2)
	if len(times) != 2 {
		return nil, ErrInvalidSchedule
	}
	start, end := strings.TrimSpace(times[0]), strings.TrimSpace(times[1])
	for _, clock := range []string{start, end} {
		if _, err := time.Parse("15:04", clock); err != nil {
			return nil, fmt.Errorf("%w: bad time %q", ErrInvalidSchedule, clock)
		}
	}

	days, err := parseDays(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	return &Schedule{Windows: []Window{{Start: start, End: end, Days: days}}}, nil
}

var weekdays = map[string]int{
	"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
}

// parseDays accepts comma-separated day tokens, each a single day ("Sat") or
// an inclusive range ("Mon-Fri").
func parseDays(s string) ([]int, error) {
	var days []int
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if from, to, ok := strings.Cut(token, "-"); ok {
			lo, okLo := weekdays[strings.ToLower(strings.TrimSpace(from))]
			hi, okHi := weekdays[strings.ToLower(strings.TrimSpace(to))]
			if !okLo || !okHi || hi < lo {
				return nil, fmt.Errorf("%w: bad day range %q", ErrInvalidSchedule, token)
			}
			for d := lo; d <= hi; d++ {
				days = append(days, d)
			}
			continue
		}
		d, ok := weekdays[strings.ToLower(token)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, token)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, ErrInvalidSchedule
	}
	return funk.UniqInt(days), nil
}
