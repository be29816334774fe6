package services

import (
	"testing"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"
)

func defaultResolver(t *testing.T) *MealWindowResolver {
	t.Helper()
	resolver, err := NewMealWindowResolver("06:00-10:00", "12:00-15:00", "19:00-22:00")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 9, 5, hour, min, sec, 0, time.UTC)
}

func TestResolveInsideWindows(t *testing.T) {
	resolver := defaultResolver(t)

	tests := []struct {
		name string
		now  time.Time
		slot models.MealSlot
	}{
		{"early breakfast", at(6, 30, 0), models.SlotBreakfast},
		{"late breakfast", at(9, 59, 59), models.SlotBreakfast},
		{"lunch", at(13, 0, 0), models.SlotLunch},
		{"dinner", at(21, 45, 0), models.SlotDinner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := resolver.Resolve(tt.now)
			if !ok {
				t.Fatalf("expected active slot at %v", tt.now)
			}
			if slot != tt.slot {
				t.Fatalf("expected %s, got %s", tt.slot, slot)
			}
		})
	}
}

func TestResolveOutsideWindows(t *testing.T) {
	resolver := defaultResolver(t)

	for _, now := range []time.Time{
		at(5, 59, 59),
		at(11, 0, 0),
		at(16, 30, 0),
		at(23, 0, 0),
		at(0, 0, 0),
	} {
		if slot, ok := resolver.Resolve(now); ok {
			t.Fatalf("expected no slot at %v, got %s", now, slot)
		}
	}
}

func TestResolveBoundaries(t *testing.T) {
	resolver := defaultResolver(t)

	// Inclusive start.
	slot, ok := resolver.Resolve(at(6, 0, 0))
	if !ok || slot != models.SlotBreakfast {
		t.Fatalf("expected breakfast at 06:00:00, got %q ok=%v", slot, ok)
	}

	// Exclusive end.
	if slot, ok := resolver.Resolve(at(10, 0, 0)); ok {
		t.Fatalf("expected no slot at 10:00:00, got %s", slot)
	}
}

func TestNewMealWindowResolverRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name, breakfast, lunch, dinner string
	}{
		{"overlap", "06:00-12:30", "12:00-15:00", "19:00-22:00"},
		{"inverted", "10:00-06:00", "12:00-15:00", "19:00-22:00"},
		{"garbage", "brunch", "12:00-15:00", "19:00-22:00"},
		{"bad hour", "25:00-26:00", "12:00-15:00", "19:00-22:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMealWindowResolver(tt.breakfast, tt.lunch, tt.dinner); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}
