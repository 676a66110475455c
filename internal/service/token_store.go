package service

import (
	"context"
	"fmt"
	"time"

	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of issued tokens. A token whose key is gone
// is revoked even if its signature and expiry still check out.
type TokenStore interface {
	Store(ctx context.Context, tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, role entity.Role, subjectID uuid.UUID) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s:%s", tokenType, role, subjectID.String(), tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(tokenType, role, subjectID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(tokenType, role, subjectID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, role entity.Role, subjectID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, tokenKey(tokenType, role, subjectID, tokenID)).Err()
}

// RevokeAll drops every access and refresh token of one account, used when
// the account is deleted.
func (s *redisTokenStore) RevokeAll(ctx context.Context, role entity.Role, subjectID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := tokenKey(tokenType, role, subjectID, "*")
		var cursor uint64
		for {
			keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return err
			}
			if len(keys) > 0 {
				if err := s.client.Del(ctx, keys...).Err(); err != nil {
					return err
				}
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
	return nil
}
