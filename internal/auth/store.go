package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	etlerrors "etlmap/internal/errors"
	"etlmap/internal/storage"
)

// Token is a stored API token record. The raw secret is only available
// at creation time.
type Token struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prefix    string    `json:"prefix"`
	CreatedAt time.Time `json:"createdAt"`
	Revoked   bool      `json:"revoked"`
}

// TokenStore manages API tokens in the database.
type TokenStore struct {
	db *storage.DB
}

// NewTokenStore creates a token store backed by the given database.
func NewTokenStore(db *storage.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Create generates and stores a new token. Returns the record and the
// raw token, which must be shown to the caller exactly once.
func (s *TokenStore) Create(name string) (*Token, string, error) {
	raw, prefix, err := GenerateToken()
	if err != nil {
		return nil, "", err
	}

	hash, err := HashToken(raw)
	if err != nil {
		return nil, "", err
	}

	tok := &Token{
		ID:        uuid.New().String(),
		Name:      name,
		Prefix:    prefix,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Conn().Exec(`
		INSERT INTO api_tokens (id, name, token_hash, token_prefix, created_at, revoked)
		VALUES (?, ?, ?, ?, ?, 0)
	`, tok.ID, tok.Name, hash, tok.Prefix, tok.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, "", etlerrors.Wrap(etlerrors.StorageFailed, "failed to store token", err)
	}

	return tok, raw, nil
}

// Verify checks a raw token against stored hashes. Lookup is by prefix,
// so only matching candidates pay the bcrypt comparison cost.
func (s *TokenStore) Verify(token string) (*Token, error) {
	if !IsValidTokenFormat(token) {
		return nil, etlerrors.New(etlerrors.Unauthorized, "invalid token format")
	}

	prefix := ExtractTokenPrefix(token)

	rows, err := s.db.Conn().Query(`
		SELECT id, name, token_hash, token_prefix, created_at, revoked
		FROM api_tokens
		WHERE token_prefix = ? AND revoked = 0
	`, prefix)
	if err != nil {
		return nil, etlerrors.Wrap(etlerrors.StorageFailed, "failed to query tokens", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tok Token
		var hash, createdAt string
		var revoked int
		if err := rows.Scan(&tok.ID, &tok.Name, &hash, &tok.Prefix, &createdAt, &revoked); err != nil {
			return nil, etlerrors.Wrap(etlerrors.StorageFailed, "failed to scan token", err)
		}
		if !VerifyToken(token, hash) {
			continue
		}
		tok.Revoked = revoked != 0
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			tok.CreatedAt = t
		}
		return &tok, nil
	}
	if err := rows.Err(); err != nil {
		return nil, etlerrors.Wrap(etlerrors.StorageFailed, "failed to iterate tokens", err)
	}

	return nil, etlerrors.New(etlerrors.Unauthorized, "unknown token")
}

// Revoke marks a token as revoked by ID.
func (s *TokenStore) Revoke(id string) error {
	res, err := s.db.Conn().Exec(`UPDATE api_tokens SET revoked = 1 WHERE id = ?`, id)
	if err != nil {
		return etlerrors.Wrap(etlerrors.StorageFailed, "failed to revoke token", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return etlerrors.Wrap(etlerrors.StorageFailed, "failed to revoke token", err)
	}
	if n == 0 {
		return etlerrors.New(etlerrors.Unauthorized, fmt.Sprintf("no token with id %s", id))
	}
	return nil
}

// List returns all token records, newest first.
func (s *TokenStore) List() ([]*Token, error) {
	rows, err := s.db.Conn().Query(`
		SELECT id, name, token_prefix, created_at, revoked
		FROM api_tokens
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, etlerrors.Wrap(etlerrors.StorageFailed, "failed to list tokens", err)
	}
	defer func() { _ = rows.Close() }()

	tokens := []*Token{}
	for rows.Next() {
		var tok Token
		var createdAt string
		var revoked int
		if err := rows.Scan(&tok.ID, &tok.Name, &tok.Prefix, &createdAt, &revoked); err != nil {
			return nil, etlerrors.Wrap(etlerrors.StorageFailed, "failed to scan token", err)
		}
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			tok.CreatedAt = t
		}
		tok.Revoked = revoked != 0
		tokens = append(tokens, &tok)
	}
	if err := rows.Err(); err != nil {
		return nil, etlerrors.Wrap(etlerrors.StorageFailed, "failed to iterate tokens", err)
	}
	return tokens, nil
}
