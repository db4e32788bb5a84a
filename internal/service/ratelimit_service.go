package service

import (
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"gorm.io/gorm"
)

// rateLimitStore is the slice of the rate limit repository the service needs
type rateLimitStore interface {
	CountSince(identifier string, cutoff time.Time) (int64, error)
	RecordAttempt(identifier string) error
	PruneIdentifierBefore(identifier string, cutoff time.Time) error
}

// RateLimitService counts recent attempts per client identifier within a
// sliding window. Check is advisory: it only reports, callers record their
// own attempts and decide how to reject. The read-then-insert sequence has
// no atomicity guarantee, which is acceptable for this threat model.
type RateLimitService struct {
	repo rateLimitStore
}

// NewRateLimitService creates a new service over the rate_limits table
func NewRateLimitService(db *gorm.DB) *RateLimitService {
	return &RateLimitService{repo: repository.NewRateLimitRepository(db)}
}

// Check reports whether the identifier is still allowed to proceed,
// true iff the attempt count inside the window is below maxAttempts.
// Rows older than the window are pruned on the way.
func (s *RateLimitService) Check(identifier string, maxAttempts int, window time.Duration) (bool, error) {
	cutoff := time.Now().UTC().Add(-window)
	if err := s.repo.PruneIdentifierBefore(identifier, cutoff); err != nil {
		return false, err
	}
	count, err := s.repo.CountSince(identifier, cutoff)
	if err != nil {
		return false, err
	}
	return count < int64(maxAttempts), nil
}

// Record inserts one attempt row for the identifier
func (s *RateLimitService) Record(identifier string) error {
	return s.repo.RecordAttempt(identifier)
}
