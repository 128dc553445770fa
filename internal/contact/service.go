package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service records submissions and relays them. Relay failures are stored
// on the message and logged; they are never returned to the visitor.
type Service struct {
	repo    Repository
	relay   Relay
	timeout time.Duration
	logger  *slog.Logger
}

func NewService(repo Repository, relay Relay, timeout time.Duration, logger *slog.Logger) *Service {
	if relay == nil {
		relay = NoopRelay{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, relay: relay, timeout: timeout, logger: logger}
}

// Submit stores s and relays it. The returned error only reports incomplete
// submissions and storage failures.
func (svc *Service) Submit(ctx context.Context, s Submission, hashedIP string) (*Message, error) {
	s = s.Normalize()
	if err := s.Check(); err != nil {
		return nil, err
	}

	m := &Message{
		ID:         uuid.NewString(),
		Submission: s,
		Relay:      svc.relay.Name(),
		Status:     StatusPending,
		HashedIP:   hashedIP,
	}
	if err := svc.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("storing submission: %w", err)
	}

	if _, ok := svc.relay.(NoopRelay); ok {
		m.Status = StatusSkipped
	} else {
		sendCtx := ctx
		if svc.timeout > 0 {
			var cancel context.CancelFunc
			sendCtx, cancel = context.WithTimeout(ctx, svc.timeout)
			defer cancel()
		}
		if err := svc.relay.Send(sendCtx, s); err != nil {
			m.Status = StatusFailed
			m.LastError = err.Error()
			svc.logger.Warn("contact relay failed", "id", m.ID, "relay", m.Relay, "error", err)
		} else {
			m.Status = StatusSent
			svc.logger.Info("contact message relayed", "id", m.ID, "relay", m.Relay)
		}
	}

	if err := svc.repo.UpdateStatus(ctx, m.ID, m.Status, m.LastError); err != nil {
		return m, fmt.Errorf("recording relay status: %w", err)
	}
	return m, nil
}

// Recent returns the newest stored messages.
func (svc *Service) Recent(ctx context.Context, limit int) ([]Message, error) {
	return svc.repo.List(ctx, limit)
}

// Delete removes a stored message.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.Delete(ctx, id)
}

// Counts returns the number of stored messages per status.
func (svc *Service) Counts(ctx context.Context) (map[Status]int64, error) {
	return svc.repo.CountByStatus(ctx)
}
