package models

import "time"

type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
)

// AllMealSlots is the closed set of slots; every store query validates
// against it before any value reaches SQL.
var AllMealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}

func (s MealSlot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

// MealRedemption is one participant's entitlement for one slot. Redeemed is
// write-once: it only ever flips false->true, via a single conditional update.
type MealRedemption struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ParticipantID uint       `gorm:"not null;uniqueIndex:idx_participant_slot" json:"participant_id"`
	Slot          MealSlot   `gorm:"size:20;not null;uniqueIndex:idx_participant_slot" json:"slot"`
	Redeemed      bool       `gorm:"not null;default:false" json:"redeemed"`
	RedeemedAt    *time.Time `json:"redeemed_at,omitempty"`
}
