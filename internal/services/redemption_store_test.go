package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"
)

func provisionTestParticipant(t *testing.T, svc *ParticipantService, name string) *models.Participant {
	t.Helper()
	participant, err := svc.Provision(name, nil)
	if err != nil {
		t.Fatalf("provision %s: %v", name, err)
	}
	return participant
}

func TestCheckAndSetServeThenDuplicate(t *testing.T) {
	db := testDB(t)
	store := NewGormRedemptionStore(db, nil)
	participant := provisionTestParticipant(t, NewParticipantService(db), "P42")

	ctx := context.Background()
	now := at(7, 15, 0)

	outcome, err := store.CheckAndSet(ctx, participant.Token, models.SlotBreakfast, now)
	if err != nil {
		t.Fatalf("first check-and-set: %v", err)
	}
	if outcome != OutcomeSuccess {
		t.Fatalf("expected success, got %s", outcome)
	}

	outcome, err = store.CheckAndSet(ctx, participant.Token, models.SlotBreakfast, at(7, 16, 0))
	if err != nil {
		t.Fatalf("second check-and-set: %v", err)
	}
	if outcome != OutcomeAlreadyRedeemed {
		t.Fatalf("expected already_redeemed, got %s", outcome)
	}

	var rec models.MealRedemption
	if err := db.Where("participant_id = ? AND slot = ?", participant.ID, models.SlotBreakfast).First(&rec).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if !rec.Redeemed || rec.RedeemedAt == nil {
		t.Fatalf("expected redeemed record with timestamp, got %+v", rec)
	}
	if !rec.RedeemedAt.Equal(now) {
		t.Fatalf("redeemed_at must keep the winning attempt's instant, got %v", rec.RedeemedAt)
	}
}

func TestCheckAndSetUnknownTokenLeavesNoRecord(t *testing.T) {
	db := testDB(t)
	store := NewGormRedemptionStore(db, nil)

	outcome, err := store.CheckAndSet(context.Background(), "never-provisioned", models.SlotLunch, at(13, 0, 0))
	if err != nil {
		t.Fatalf("check-and-set: %v", err)
	}
	if outcome != OutcomeUnknownParticipant {
		t.Fatalf("expected unknown_participant, got %s", outcome)
	}

	var count int64
	if err := db.Model(&models.MealRedemption{}).Count(&count).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no redemption rows, found %d", count)
	}
}

func TestCheckAndSetRejectsInvalidSlot(t *testing.T) {
	db := testDB(t)
	store := NewGormRedemptionStore(db, nil)
	participant := provisionTestParticipant(t, NewParticipantService(db), "P42")

	if _, err := store.CheckAndSet(context.Background(), participant.Token, models.MealSlot("brunch"), at(7, 0, 0)); err == nil {
		t.Fatal("expected error for slot outside the enum")
	}
}

func TestCheckAndSetCrossSlotAndParticipantIndependence(t *testing.T) {
	db := testDB(t)
	store := NewGormRedemptionStore(db, nil)
	participants := NewParticipantService(db)
	x := provisionTestParticipant(t, participants, "X")
	y := provisionTestParticipant(t, participants, "Y")

	ctx := context.Background()
	if outcome, err := store.CheckAndSet(ctx, x.Token, models.SlotBreakfast, at(7, 0, 0)); err != nil || outcome != OutcomeSuccess {
		t.Fatalf("redeem breakfast for X: outcome=%s err=%v", outcome, err)
	}

	statusX, err := store.Status(ctx, x.Token)
	if err != nil {
		t.Fatalf("status X: %v", err)
	}
	if !statusX[models.SlotBreakfast] {
		t.Fatal("breakfast should be redeemed for X")
	}
	if statusX[models.SlotLunch] || statusX[models.SlotDinner] {
		t.Fatalf("other slots for X must stay unredeemed: %+v", statusX)
	}

	statusY, err := store.Status(ctx, y.Token)
	if err != nil {
		t.Fatalf("status Y: %v", err)
	}
	for slot, redeemed := range statusY {
		if redeemed {
			t.Fatalf("slot %s for Y affected by X's redemption", slot)
		}
	}

	// X can still redeem lunch.
	if outcome, err := store.CheckAndSet(ctx, x.Token, models.SlotLunch, at(13, 0, 0)); err != nil || outcome != OutcomeSuccess {
		t.Fatalf("redeem lunch for X: outcome=%s err=%v", outcome, err)
	}
}

func TestStatusUnknownToken(t *testing.T) {
	db := testDB(t)
	store := NewGormRedemptionStore(db, nil)

	if _, err := store.Status(context.Background(), "never-provisioned"); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
}

func TestConcurrentCheckAndSetSingleWinner(t *testing.T) {
	const attempts = 16

	db := testDB(t)
	store := NewGormRedemptionStore(db, nil)
	participant := provisionTestParticipant(t, NewParticipantService(db), "P42")

	var wg sync.WaitGroup
	outcomes := make([]RedemptionOutcome, attempts)
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = store.CheckAndSet(context.Background(), participant.Token, models.SlotDinner, at(20, 0, 0))
		}(i)
	}
	wg.Wait()

	successes, duplicates := 0, 0
	for i := 0; i < attempts; i++ {
		if errs[i] != nil {
			t.Fatalf("attempt %d: %v", i, errs[i])
		}
		switch outcomes[i] {
		case OutcomeSuccess:
			successes++
		case OutcomeAlreadyRedeemed:
			duplicates++
		default:
			t.Fatalf("attempt %d: unexpected outcome %s", i, outcomes[i])
		}
	}

	if successes != 1 {
		t.Fatalf("expected exactly one success, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Fatalf("expected %d duplicates, got %d", attempts-1, duplicates)
	}
}
