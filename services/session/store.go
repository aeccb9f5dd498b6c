package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stayhub/models"

	"github.com/go-redis/redis/v8"
)

// CredentialKey is the single key under which the active session record is
// persisted.
const CredentialKey = "session:credentials"

// RedisCredentialStore implements CredentialStore on Redis. The record is
// the JSON-encoded authenticated subset of the session.
type RedisCredentialStore struct {
	Client *redis.Client
}

// NewRedisCredentialStore constructs a credential store on the given client.
func NewRedisCredentialStore(client *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{Client: client}
}

// Save persists the credential record. No TTL: the record lives until
// logout clears it.
func (s *RedisCredentialStore) Save(ctx context.Context, creds models.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := s.Client.Set(ctx, CredentialKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Load reads the credential record. Returns (nil, nil) when absent.
func (s *RedisCredentialStore) Load(ctx context.Context) (*models.Credentials, error) {
	data, err := s.Client.Get(ctx, CredentialKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	var creds models.Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

// Clear deletes the credential record. Deleting a missing key is a no-op.
func (s *RedisCredentialStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, CredentialKey).Err()
}
