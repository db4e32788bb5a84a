package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const redisOpTimeout = 2 * time.Second

// sessionStore is the slice of the session repository the service needs
type sessionStore interface {
	CreateSession(session *models.UserSessionModel) error
	GetActiveSession(tokenHash string, now time.Time) (*models.UserSessionModel, error)
	DeactivateByTokenHash(tokenHash string) error
	DeactivateAllForUser(userID uint) error
}

// SessionService is the registry of issued tokens. Session rows hold the
// SHA-256 hex of the token so a database read never yields usable bearer
// tokens. Redis caches valid sessions by token hash; every cache operation
// is best effort and a miss or failure falls through to Postgres.
type SessionService struct {
	repo        sessionStore
	redisClient *redis.Client
	ttl         time.Duration
}

// NewSessionService creates a new service for the session registry.
// redisClient may be nil, the registry then runs against Postgres only.
func NewSessionService(db *gorm.DB, redisClient *redis.Client, ttl time.Duration) *SessionService {
	return &SessionService{
		repo:        repository.NewSessionRepository(db),
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// TokenHash returns the SHA-256 hex of a raw token
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewRow builds an unsaved session row for a freshly issued token
func (s *SessionService) NewRow(userID uint, token string) *models.UserSessionModel {
	return &models.UserSessionModel{
		UserID:    userID,
		TokenHash: TokenHash(token),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
		IsActive:  true,
	}
}

// Create persists a session row for an issued token
func (s *SessionService) Create(userID uint, token string) error {
	if err := s.repo.CreateSession(s.NewRow(userID, token)); err != nil {
		return err
	}
	s.CacheAdd(userID, token)
	return nil
}

// Invalidate deactivates the session matching the token, used on logout
func (s *SessionService) Invalidate(token string) error {
	hash := TokenHash(token)
	if err := s.repo.DeactivateByTokenHash(hash); err != nil {
		return err
	}
	s.cacheRemove(hash)
	return nil
}

// InvalidateAll deactivates every session of the user, used on password change
func (s *SessionService) InvalidateAll(userID uint) error {
	if err := s.repo.DeactivateAllForUser(userID); err != nil {
		return err
	}
	s.cacheRemoveAll(userID)
	return nil
}

// IsValid reports whether the token has an active, unexpired session row.
// Session revocation takes precedence over pure token validity.
func (s *SessionService) IsValid(token string) (bool, error) {
	hash := TokenHash(token)
	if s.cacheHit(hash) {
		return true, nil
	}
	session, err := s.repo.GetActiveSession(hash, time.Now().UTC())
	if err != nil {
		if err == repository.ErrSessionNotFound {
			return false, nil
		}
		return false, err
	}
	s.cacheAddHash(session.UserID, hash, time.Until(session.ExpiresAt))
	return true, nil
}

// CacheAdd caches a known valid token, best effort
func (s *SessionService) CacheAdd(userID uint, token string) {
	s.cacheAddHash(userID, TokenHash(token), s.ttl)
}

func sessionKey(hash string) string {
	return "session:" + hash
}

func userSessionsKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

func (s *SessionService) cacheAddHash(userID uint, hash string, ttl time.Duration) {
	if s.redisClient == nil || ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	pipe := s.redisClient.Pipeline()
	pipe.Set(ctx, sessionKey(hash), strconv.FormatUint(uint64(userID), 10), ttl)
	pipe.SAdd(ctx, userSessionsKey(userID), hash)
	pipe.Expire(ctx, userSessionsKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		zaplogger.Warn("session cache add failed", zaplogger.Fields{"error": err.Error()})
	}
}

func (s *SessionService) cacheHit(hash string) bool {
	if s.redisClient == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_, err := s.redisClient.Get(ctx, sessionKey(hash)).Result()
	if err != nil {
		if err != redis.Nil {
			zaplogger.Warn("session cache read failed", zaplogger.Fields{"error": err.Error()})
		}
		return false
	}
	return true
}

func (s *SessionService) cacheRemove(hash string) {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	userID, err := s.redisClient.Get(ctx, sessionKey(hash)).Result()
	if err == nil {
		s.redisClient.SRem(ctx, "user_sessions:"+userID, hash)
	}
	if err := s.redisClient.Del(ctx, sessionKey(hash)).Err(); err != nil {
		zaplogger.Warn("session cache remove failed", zaplogger.Fields{"error": err.Error()})
	}
}

func (s *SessionService) cacheRemoveAll(userID uint) {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	setKey := userSessionsKey(userID)
	hashes, err := s.redisClient.SMembers(ctx, setKey).Result()
	if err != nil {
		zaplogger.Warn("session cache scan failed", zaplogger.Fields{"error": err.Error()})
		return
	}
	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, setKey)
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		zaplogger.Warn("session cache purge failed", zaplogger.Fields{"error": err.Error()})
	}
}
