package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type RedemptionOutcome string

const (
	OutcomeSuccess            RedemptionOutcome = "success"
	OutcomeAlreadyRedeemed    RedemptionOutcome = "already_redeemed"
	OutcomeUnknownParticipant RedemptionOutcome = "unknown_participant"
)

var (
	// ErrUnknownParticipant is returned by Status for tokens that were never
	// provisioned.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrStoreUnavailable wraps connectivity/timeout failures. A CheckAndSet
	// call that fails with it is indeterminate: the write may have committed,
	// so callers must re-check via Status instead of assuming either outcome.
	ErrStoreUnavailable = errors.New("redemption store unavailable")
)

// RedemptionStore is the single source of truth for redeemed flags.
type RedemptionStore interface {
	// CheckAndSet atomically flips (participant, slot) from unredeemed to
	// redeemed. For concurrent calls on the same key, at most one observes
	// OutcomeSuccess regardless of how many service instances share the
	// backing database.
	CheckAndSet(ctx context.Context, token string, slot models.MealSlot, at time.Time) (RedemptionOutcome, error)

	// Status reports the current redeemed flag per slot without mutating
	// anything, so kiosks can recover from ambiguous timeouts.
	Status(ctx context.Context, token string) (map[models.MealSlot]bool, error)
}

// GormRedemptionStore enforces atomicity with a single conditional UPDATE;
// the database serializes conflicting writes per row, so no in-process lock
// is involved and distinct keys never block each other.
//
// The optional redis client caches redeemed=true flags only. The flag is
// monotonic, so a cache hit is always correct; the cache is advisory and the
// store works identically with rdb == nil.
type GormRedemptionStore struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewGormRedemptionStore(db *gorm.DB, rdb *redis.Client) *GormRedemptionStore {
	return &GormRedemptionStore{db: db, rdb: rdb}
}

func (s *GormRedemptionStore) CheckAndSet(ctx context.Context, token string, slot models.MealSlot, at time.Time) (RedemptionOutcome, error) {
	if !slot.Valid() {
		return "", fmt.Errorf("invalid meal slot %q", slot)
	}

	if s.cachedRedeemed(ctx, token, slot) {
		return OutcomeAlreadyRedeemed, nil
	}

	var participant models.Participant
	err := s.db.WithContext(ctx).Select("id").Where("token = ?", token).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OutcomeUnknownParticipant, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	res := s.db.WithContext(ctx).Model(&models.MealRedemption{}).
		Where("participant_id = ? AND slot = ? AND redeemed = ?", participant.ID, slot, false).
		Updates(map[string]interface{}{"redeemed": true, "redeemed_at": at})
	if res.Error != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return OutcomeAlreadyRedeemed, nil
	}

	s.cacheRedeemed(ctx, token, slot)
	return OutcomeSuccess, nil
}

func (s *GormRedemptionStore) Status(ctx context.Context, token string) (map[models.MealSlot]bool, error) {
	var participant models.Participant
	err := s.db.WithContext(ctx).Select("id").Where("token = ?", token).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var records []models.MealRedemption
	if err := s.db.WithContext(ctx).Where("participant_id = ?", participant.ID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	status := make(map[models.MealSlot]bool, len(models.AllMealSlots))
	for _, slot := range models.AllMealSlots {
		status[slot] = false
	}
	for _, rec := range records {
		status[rec.Slot] = rec.Redeemed
	}
	return status, nil
}

func cacheKey(token string, slot models.MealSlot) string {
	return fmt.Sprintf("redeemed:%s:%s", token, slot)
}

func (s *GormRedemptionStore) cachedRedeemed(ctx context.Context, token string, slot models.MealSlot) bool {
	if s.rdb == nil {
		return false
	}
	val, err := s.rdb.Get(ctx, cacheKey(token, slot)).Result()
	if err != nil {
		return false
	}
	return val == "1"
}

func (s *GormRedemptionStore) cacheRedeemed(ctx context.Context, token string, slot models.MealSlot) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey(token, slot), "1", 24*time.Hour).Err(); err != nil {
		log.Printf("redis: failed to cache redemption %s/%s: %v", token, slot, err)
	}
}
