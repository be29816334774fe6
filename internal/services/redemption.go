package services

import (
	"context"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"

	"github.com/jonboulle/clockwork"
)

type RejectReason string

const (
	ReasonNoActiveMeal        RejectReason = "no_active_meal"
	ReasonDuplicateRedemption RejectReason = "duplicate_redemption"
	ReasonUnknownParticipant  RejectReason = "unknown_participant"
	ReasonStoreIndeterminate  RejectReason = "store_indeterminate"
)

type AttemptResult struct {
	Served bool            `json:"served"`
	Slot   models.MealSlot `json:"slot,omitempty"`
	Reason RejectReason    `json:"reason,omitempty"`
}

// RedemptionService runs the one use-case of the core: decide the active
// meal window and flip the matching redeemed flag exactly once.
type RedemptionService struct {
	resolver *MealWindowResolver
	store    RedemptionStore
	clock    clockwork.Clock
}

func NewRedemptionService(resolver *MealWindowResolver, store RedemptionStore, clock clockwork.Clock) *RedemptionService {
	return &RedemptionService{resolver: resolver, store: store, clock: clock}
}

// Attempt resolves the window for the given instant, then delegates to the
// store's atomic check-and-set. A rejection is final for that instant; the
// kiosk operator decides whether to re-scan. When the store fails, the
// returned result carries ReasonStoreIndeterminate alongside the error: the
// write may still have committed, and the caller should re-check via Status.
func (s *RedemptionService) Attempt(ctx context.Context, token string, now time.Time) (AttemptResult, error) {
	slot, ok := s.resolver.Resolve(now)
	if !ok {
		return AttemptResult{Reason: ReasonNoActiveMeal}, nil
	}

	outcome, err := s.store.CheckAndSet(ctx, token, slot, now)
	if err != nil {
		return AttemptResult{Reason: ReasonStoreIndeterminate}, err
	}

	switch outcome {
	case OutcomeSuccess:
		return AttemptResult{Served: true, Slot: slot}, nil
	case OutcomeUnknownParticipant:
		return AttemptResult{Reason: ReasonUnknownParticipant}, nil
	default:
		return AttemptResult{Reason: ReasonDuplicateRedemption}, nil
	}
}

// AttemptNow stamps the attempt with the injected clock so the HTTP layer
// never reads ambient time.
func (s *RedemptionService) AttemptNow(ctx context.Context, token string) (AttemptResult, error) {
	return s.Attempt(ctx, token, s.clock.Now())
}

func (s *RedemptionService) Status(ctx context.Context, token string) (map[models.MealSlot]bool, error) {
	return s.store.Status(ctx, token)
}
