package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/scarydoors/jokerforge/internal/types"
)

// APIKey is the stored metadata of an issued key. The key itself is never
// stored, only its HMAC.
type APIKey struct {
	APIKeyID   types.APIKeyID
	Name       string
	SecretID   string
	CreatedAt  time.Time
	RevokedAt  *time.Time
	LastUsedAt *time.Time
}

type apiKeyRow struct {
	APIKeyID   string         `db:"api_key_id"`
	Name       string         `db:"name"`
	SecretID   string         `db:"secret_id"`
	CreatedAt  string         `db:"created_at"`
	RevokedAt  sql.NullString `db:"revoked_at"`
	LastUsedAt sql.NullString `db:"last_used_at"`
}

func (r apiKeyRow) apiKey() (APIKey, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return APIKey{}, err
	}
	k := APIKey{
		APIKeyID:  types.APIKeyID(r.APIKeyID),
		Name:      r.Name,
		SecretID:  r.SecretID,
		CreatedAt: created,
	}
	if k.RevokedAt, err = parseNullTime(r.RevokedAt); err != nil {
		return APIKey{}, err
	}
	if k.LastUsedAt, err = parseNullTime(r.LastUsedAt); err != nil {
		return APIKey{}, err
	}
	return k, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// APIKeyStore manages API key records. Lookup by hash lives in the auth
// package, which reads through the same named queries.
type APIKeyStore struct {
	queries *Queries
	now     func() time.Time
}

// NewAPIKeyStore creates a store over loaded queries.
func NewAPIKeyStore(queries *Queries) *APIKeyStore {
	return &APIKeyStore{queries: queries, now: time.Now}
}

// Create records a key by the hex HMAC of its value.
func (s *APIKeyStore) Create(ctx context.Context, name, secretID, keyHash string) (APIKey, error) {
	k := APIKey{
		APIKeyID:  types.NewAPIKeyID(),
		Name:      name,
		SecretID:  secretID,
		CreatedAt: s.now().UTC(),
	}
	_, err := s.queries.Exec(ctx, "insert-api-key",
		string(k.APIKeyID), name, secretID, keyHash, formatTime(k.CreatedAt),
	)
	if err != nil {
		return APIKey{}, fmt.Errorf("failed to insert api key: %w", err)
	}
	return k, nil
}

// List returns every key, revoked ones included, oldest first.
func (s *APIKeyStore) List(ctx context.Context) ([]APIKey, error) {
	var rows []apiKeyRow
	if err := s.queries.Select(ctx, "list-api-keys", &rows); err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	out := make([]APIKey, 0, len(rows))
	for _, r := range rows {
		k, err := r.apiKey()
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// Revoke marks a key revoked. Revoking an unknown or already revoked key
// returns types.ErrAPIKeyNotFound.
func (s *APIKeyStore) Revoke(ctx context.Context, id types.APIKeyID) error {
	res, err := s.queries.Exec(ctx, "revoke-api-key", formatTime(s.now()), string(id))
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", types.ErrAPIKeyNotFound, id)
	}
	return nil
}
