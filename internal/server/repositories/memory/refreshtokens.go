package memory

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type RefreshTokenRepository struct{ s *Store }

func NewRefreshTokenRepository(s *Store) *RefreshTokenRepository {
	return &RefreshTokenRepository{s: s}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, principalID string, role models.Role, token string, expires time.Time) error {
	defer r.s.write(ctx)()
	if _, ok := r.s.st.tokens.get(token); ok {
		return common.Validationf("duplicate refresh token")
	}
	seq := r.s.next()
	r.s.st.tokens.put(token, models.RefreshToken{
		ID:          strconv.FormatInt(seq, 10),
		PrincipalID: principalID,
		Role:        role,
		Token:       token,
		Expires:     expires,
		CreatedAt:   time.Now(),
	}, seq)
	return nil
}

func (r *RefreshTokenRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rt, ok := r.s.st.tokens.get(token)
	if !ok {
		return nil, common.ErrInvalidToken
	}
	return &rt, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	defer r.s.write(ctx)()
	r.s.st.tokens.del(token)
	return nil
}

func (r *RefreshTokenRepository) DeleteByPrincipal(ctx context.Context, principalID string) error {
	defer r.s.write(ctx)()
	for _, rt := range r.s.st.tokens.filter(func(t models.RefreshToken) bool { return t.PrincipalID == principalID }) {
		r.s.st.tokens.del(rt.Token)
	}
	return nil
}
