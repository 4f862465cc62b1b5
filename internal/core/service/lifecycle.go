package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/pkg/metrics"
)

// idempotency wraps an optional guard. A nil guard or an empty key disables it.
type idempotency struct {
	guard ports.IdempotencyGuard
	kind  domain.RequestKind
	log   zerolog.Logger
}

// reserve returns the id of an earlier submission for key, or reserved=true
// when the caller should go ahead and create a new request.
func (i idempotency) reserve(ctx context.Context, key string) (existingID string, reserved bool, err error) {
	if i.guard == nil || key == "" {
		return "", false, nil
	}
	existingID, reserved, err = i.guard.Reserve(ctx, scopedKey(i.kind, key))
	if err != nil {
		return "", false, err
	}
	if !reserved && existingID == "" {
		return "", false, domain.ErrSubmissionInFlight
	}
	if !reserved {
		metrics.IdempotentReplaysTotal.WithLabelValues(string(i.kind)).Inc()
		i.log.Info().Str("idempotency_key", key).Str("request_id", existingID).Msg("idempotent replay")
	}
	return existingID, reserved, nil
}

func (i idempotency) commit(ctx context.Context, key, requestID string) {
	if i.guard == nil || key == "" {
		return
	}
	if err := i.guard.Commit(ctx, scopedKey(i.kind, key), requestID); err != nil {
		i.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to commit idempotency key")
	}
}

func (i idempotency) release(ctx context.Context, key string) {
	if i.guard == nil || key == "" {
		return
	}
	if err := i.guard.Release(ctx, scopedKey(i.kind, key)); err != nil {
		i.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

func scopedKey(kind domain.RequestKind, key string) string {
	return string(kind) + ":" + key
}

// activityLog records audit entries. Failures are logged and swallowed so a
// lost audit line never undoes a status change.
type activityLog struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func (a activityLog) record(ctx context.Context, entry domain.Activity) {
	if a.repo == nil || entry.AccountID == "" {
		return
	}
	entry.CreatedAt = time.Now().UTC()
	if err := a.repo.Insert(ctx, &entry); err != nil {
		a.log.Warn().Err(err).
			Str("account_id", entry.AccountID).
			Str("request_id", entry.RequestID).
			Str("action", string(entry.Action)).
			Msg("failed to record activity")
	}
}

// decisionFor validates that action is a status-changing verb and that the
// request is currently in the status the verb requires.
func decisionFor(action domain.RequestAction, current domain.RequestStatus, kind domain.RequestKind) (domain.RequestStatus, domain.RequestStatus, error) {
	from, to, ok := action.Target()
	if !ok || !from.CanTransitionTo(kind, to) {
		return "", "", domain.NewValidationError("action", "unsupported action "+string(action))
	}
	if current != from {
		return "", "", &domain.TransitionError{Action: action, From: current, Allowed: []domain.RequestStatus{from}}
	}
	return from, to, nil
}

// lostRace builds the error returned when a conditional update matched
// nothing: either the request vanished or another admin decided first.
func lostRace(kind domain.RequestKind, action domain.RequestAction, current domain.RequestStatus, allowed []domain.RequestStatus, reread error) error {
	if reread != nil {
		if errors.Is(reread, domain.ErrNotFound) {
			return domain.ErrRequestNotFound
		}
		return reread
	}
	metrics.RequestTransitionConflictsTotal.WithLabelValues(string(kind)).Inc()
	return &domain.TransitionError{Action: action, From: current, Allowed: allowed}
}
