package customer

import (
	"context"
	"time"

	tokenrepo "storefront-core/internal/repository/token"
	"github.com/google/uuid"
)

type tokenMeta struct {
	CustomerID string
	ExpiresAt  time.Time
}

type tokenManager struct {
	repo tokenrepo.Repository
}

func newTokenManager(repo tokenrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) Issue(ctx context.Context, customerID, kind string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	err := m.repo.Create(ctx, tokenrepo.Token{
		Token:      token,
		CustomerID: customerID,
		Kind:       kind,
		ExpiresAt:  time.Now().Add(ttl),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (m *tokenManager) Validate(ctx context.Context, token string) (tokenMeta, bool) {
	meta, err := m.repo.Get(ctx, token)
	if err != nil {
		return tokenMeta{}, false
	}
	if meta.Kind != "access" || meta.CustomerID == "" {
		return tokenMeta{}, false
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return tokenMeta{}, false
	}
	return tokenMeta{
		CustomerID: meta.CustomerID,
		ExpiresAt:  meta.ExpiresAt,
	}, true
}

func (m *tokenManager) RevokeAll(ctx context.Context, customerID string) error {
	return m.repo.DeleteByCustomer(ctx, customerID)
}
