package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/comanda-pos/internal/domain/repository"
	"github.com/sangkips/comanda-pos/pkg/apperror"
)

// OrderSequencer issues comanda numbers. Every number is persisted before it
// is handed out, so a restart never repeats one.
type OrderSequencer struct {
	mu          sync.Mutex
	repo        repository.OrderCounterRepository
	startOffset int64
	last        int64
}

// NewOrderSequencer creates a sequencer whose first number is startOffset+1
// when nothing has been stored yet.
func NewOrderSequencer(repo repository.OrderCounterRepository, startOffset int64) *OrderSequencer {
	return &OrderSequencer{
		repo:        repo,
		startOffset: startOffset,
		last:        startOffset,
	}
}

// Load restores the last issued number from the repository
func (s *OrderSequencer) Load(ctx context.Context) error {
	last, ok, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.last = last
	} else {
		s.last = s.startOffset
	}

	log.Info().Int64("last_order_number", s.last).Bool("stored", ok).Msg("Order sequence loaded")
	return nil
}

// NextNumber persists and returns the next order number. If the write fails
// the counter does not move.
func (s *OrderSequencer) NextNumber(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.last + 1
	if err := s.repo.Save(ctx, next); err != nil {
		log.Error().Err(err).Int64("order_number", next).Msg("Failed to persist order number")
		return 0, apperror.NewInternalError("Failed to issue order number", err)
	}
	s.last = next
	return next, nil
}

// Reconcile moves the counter forward when the ledger already holds a higher
// number, which happens if the counter key was lost or restored from an older
// copy. It never moves the counter back.
func (s *OrderSequencer) Reconcile(highest int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if highest > s.last {
		log.Warn().Int64("stored", s.last).Int64("ledger", highest).Msg("Order counter behind ledger, advancing")
		s.last = highest
	}
}

// Current returns the last issued number, or the start offset if none was issued
func (s *OrderSequencer) Current() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
