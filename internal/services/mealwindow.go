package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"
)

// mealWindow is a daily half-open interval [start, end) in minutes since
// midnight local time.
type mealWindow struct {
	slot  models.MealSlot
	start int
	end   int
}

type MealWindowResolver struct {
	windows []mealWindow
}

// NewMealWindowResolver parses "HH:MM-HH:MM" specs for the three slots and
// rejects overlapping or inverted windows. Called once at startup; the
// window table is immutable afterwards.
func NewMealWindowResolver(breakfast, lunch, dinner string) (*MealWindowResolver, error) {
	specs := []struct {
		slot models.MealSlot
		raw  string
	}{
		{models.SlotBreakfast, breakfast},
		{models.SlotLunch, lunch},
		{models.SlotDinner, dinner},
	}

	var windows []mealWindow
	for _, spec := range specs {
		start, end, err := parseWindow(spec.raw)
		if err != nil {
			return nil, fmt.Errorf("%s window %q: %w", spec.slot, spec.raw, err)
		}
		windows = append(windows, mealWindow{slot: spec.slot, start: start, end: end})
	}

	sort.Slice(windows, func(a, b int) bool {
		return windows[a].start < windows[b].start
	})
	for i := 1; i < len(windows); i++ {
		if windows[i].start < windows[i-1].end {
			return nil, fmt.Errorf("%s window overlaps %s window", windows[i].slot, windows[i-1].slot)
		}
	}

	return &MealWindowResolver{windows: windows}, nil
}

// Resolve maps an instant to the active slot, if any. Pure; time comes in as
// a parameter so callers own the clock.
func (r *MealWindowResolver) Resolve(now time.Time) (models.MealSlot, bool) {
	minute := now.Hour()*60 + now.Minute()
	for _, w := range r.windows {
		if minute >= w.start && minute < w.end {
			return w.slot, true
		}
	}
	return "", false
}

func parseWindow(raw string) (start, end int, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM-HH:MM")
	}
	if start, err = parseMinutes(parts[0]); err != nil {
		return 0, 0, err
	}
	if end, err = parseMinutes(parts[1]); err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("start must precede end")
	}
	return start, end, nil
}

func parseMinutes(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour %q", parts[0])
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, fmt.Errorf("invalid minute %q", parts[1])
	}
	return hour*60 + min, nil
}
