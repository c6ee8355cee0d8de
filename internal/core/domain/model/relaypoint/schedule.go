package relaypoint

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const minutesPerDay = 24 * 60

// ErrTimeWindowIsNotConstructed is returned when a TimeWindow was not
// created through NewTimeWindow.
var ErrTimeWindowIsNotConstructed = errors.New("TimeWindow must be created via NewTimeWindow constructor")

// TimeWindow is a same-day opening interval, inclusive of the opening
// minute and exclusive of the closing minute.
type TimeWindow struct {
	openMinute  int
	closeMinute int

	guard guard.ConstructorGuard
}

// NewTimeWindow creates a window from minutes since midnight. The window
// must not be empty and must close within the same day.
func NewTimeWindow(openMinute, closeMinute int) (TimeWindow, error) {
	w := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if openMinute < 0 || openMinute >= minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("open minute", openMinute, 0, minutesPerDay-1)
	}
	if closeMinute < 1 || closeMinute > minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("close minute", closeMinute, 1, minutesPerDay)
	}
	if closeMinute <= openMinute {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("close minute %d is not after open minute %d", closeMinute, openMinute))
	}

	w.openMinute = openMinute
	w.closeMinute = closeMinute
	return w, nil
}

// Validate ensures the TimeWindow was properly constructed.
func (w *TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// OpenMinute returns the opening minute since midnight.
func (w TimeWindow) OpenMinute() int {
	return w.openMinute
}

// CloseMinute returns the closing minute since midnight.
func (w TimeWindow) CloseMinute() int {
	return w.closeMinute
}

// Contains reports whether the minute of day falls inside the window.
func (w TimeWindow) Contains(minuteOfDay int) bool {
	return minuteOfDay >= w.openMinute && minuteOfDay < w.closeMinute
}

// Schedule maps weekdays to opening windows. A weekday with no window is
// closed all day.
type Schedule struct {
	windows map[time.Weekday]TimeWindow
}

// NewSchedule creates a weekly schedule from the given windows. Windows
// must be constructed; at least one open day is required.
func NewSchedule(windows map[time.Weekday]TimeWindow) (Schedule, error) {
	if len(windows) == 0 {
		return Schedule{}, errs.NewValueIsRequiredError("schedule windows")
	}

	copied := make(map[time.Weekday]TimeWindow, len(windows))
	for day, w := range windows {
		if err := w.Validate(); err != nil {
			return Schedule{}, err
		}
		copied[day] = w
	}

	return Schedule{windows: copied}, nil
}

// IsOpenAt reports whether the schedule is open at the given instant,
// interpreted in the instant's own location.
func (s Schedule) IsOpenAt(t time.Time) bool {
	w, ok := s.windows[t.Weekday()]
	if !ok {
		return false
	}
	return w.Contains(t.Hour()*60 + t.Minute())
}

// Windows returns a copy of the weekly windows.
func (s Schedule) Windows() map[time.Weekday]TimeWindow {
	copied := make(map[time.Weekday]TimeWindow, len(s.windows))
	for day, w := range s.windows {
		copied[day] = w
	}
	return copied
}
