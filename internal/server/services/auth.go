package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword      = common.Validationf("new password must be at least 8 characters and include at least one uppercase letter and one number")
	ErrPasswordsRequired = common.Validationf("current password and new password are required")
	ErrWrongPassword     = fmt.Errorf("%w: current password is incorrect", common.ErrUnauthorized)
)

// StrongPassword reports whether pw has at least 8 characters, an upper-case
// letter and a digit.
func StrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the result of a successful register, login or refresh. Exactly
// one of Admin, Recruiter and JobSeeker is set.
type Session struct {
	Principal models.Principal
	Admin     *models.Admin
	Recruiter *models.Recruiter
	JobSeeker *models.JobSeeker
	Tokens    TokenPair
}

type RegisterSeekerInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

type RegisterRecruiterInput struct {
	FullName    string
	Email       string
	Password    string
	Phone       string
	CompanyName string
}

// AuthService registers principals, verifies credentials and issues JWT
// access tokens plus server-stored refresh tokens.
type AuthService struct {
	*env
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	bcryptCost    int
}

func newAuthService(e *env, cfg *config.Config) *AuthService {
	return &AuthService{
		env:           e,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		bcryptCost:    bcrypt.DefaultCost,
	}
}

func (s *AuthService) hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(h), nil
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// emailInUse reports whether any principal kind already uses email.
func (s *AuthService) emailInUse(ctx context.Context, db dbx.DBTX, email string) (bool, error) {
	lookups := []func() error{
		func() error { _, err := s.rm.Admins(db).GetByEmail(ctx, email); return err },
		func() error { _, err := s.rm.Recruiters(db).GetByEmail(ctx, email); return err },
		func() error { _, err := s.rm.JobSeekers(db).GetByEmail(ctx, email); return err },
	}
	for _, lookup := range lookups {
		err := lookup()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, common.ErrPrincipalNotFound) {
			return false, err
		}
	}
	return false, nil
}

func (s *AuthService) RegisterJobSeeker(ctx context.Context, in RegisterSeekerInput) (*Session, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.utc()
	seeker := &models.JobSeeker{
		ID:           s.newID(),
		FullName:     in.FullName,
		Email:        models.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Phone:        in.Phone,
		Skills:       []string{},
		SavedJobs:    []string{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var pair *TokenPair
	err = s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		taken, err := s.emailInUse(ctx, tx, seeker.Email)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrEmailTaken
		}
		if err := s.rm.JobSeekers(tx).Create(ctx, seeker); err != nil {
			return err
		}
		pair, err = s.generateTokenPair(ctx, tx, seeker.ID, models.RoleJobSeeker)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Session{Principal: seeker.Principal(), JobSeeker: seeker, Tokens: *pair}, nil
}

func (s *AuthService) RegisterRecruiter(ctx context.Context, in RegisterRecruiterInput) (*Session, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.utc()
	rec := &models.Recruiter{
		ID:                 s.newID(),
		FullName:           in.FullName,
		Email:              models.NormalizeEmail(in.Email),
		PasswordHash:       hash,
		Phone:              in.Phone,
		CompanyName:        in.CompanyName,
		VerificationStatus: models.RecruiterPending,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	var pair *TokenPair
	err = s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		taken, err := s.emailInUse(ctx, tx, rec.Email)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrEmailTaken
		}
		if err := s.rm.Recruiters(tx).Create(ctx, rec); err != nil {
			return err
		}
		pair, err = s.generateTokenPair(ctx, tx, rec.ID, models.RoleRecruiter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Session{Principal: rec.Principal(), Recruiter: rec, Tokens: *pair}, nil
}

// Login looks the email up among admins, then recruiters, then job seekers.
// The first kind holding the email decides the outcome.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = models.NormalizeEmail(email)
	db := s.rm.Conn()

	sess, hash, err := s.findByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if !sess.Principal.IsActive {
		return nil, common.ErrAccountInactive
	}
	if !checkPassword(hash, password) {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, db, sess.Principal.ID, sess.Principal.Role)
	if err != nil {
		return nil, err
	}
	sess.Tokens = *pair
	return sess, nil
}

func (s *AuthService) findByEmail(ctx context.Context, db dbx.DBTX, email string) (*Session, string, error) {
	a, err := s.rm.Admins(db).GetByEmail(ctx, email)
	if err == nil {
		return &Session{Principal: a.Principal(), Admin: a}, a.PasswordHash, nil
	}
	if !errors.Is(err, common.ErrPrincipalNotFound) {
		return nil, "", err
	}

	r, err := s.rm.Recruiters(db).GetByEmail(ctx, email)
	if err == nil {
		return &Session{Principal: r.Principal(), Recruiter: r}, r.PasswordHash, nil
	}
	if !errors.Is(err, common.ErrPrincipalNotFound) {
		return nil, "", err
	}

	js, err := s.rm.JobSeekers(db).GetByEmail(ctx, email)
	if err == nil {
		return &Session{Principal: js.Principal(), JobSeeker: js}, js.PasswordHash, nil
	}
	if errors.Is(err, common.ErrPrincipalNotFound) {
		return nil, "", common.ErrInvalidCredentials
	}
	return nil, "", err
}

// RefreshToken validates a refresh token against its signature and the
// server-side record, rotates it transactionally and returns a fresh pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := auth.ParseToken(refreshToken, s.refreshSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	var pair *TokenPair
	err = s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.RefreshTokens(tx)
		token, err := repo.Find(ctx, refreshToken)
		if err != nil {
			return err
		}
		if token.Expires.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}
		if token.PrincipalID != claims.PrincipalID() || token.Role != claims.Role {
			return common.ErrInvalidToken
		}

		p, err := loadPrincipal(ctx, s.rm, tx, token.PrincipalID, token.Role)
		if errors.Is(err, common.ErrPrincipalNotFound) {
			return common.ErrInvalidToken
		}
		if err != nil {
			return err
		}
		if !p.IsActive {
			return common.ErrAccountInactive
		}

		if err := repo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, tx, p.ID, p.Role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes refreshToken. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.rm.RefreshTokens(s.rm.Conn()).Delete(ctx, refreshToken)
}

// Authenticate resolves an access token to an active principal.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (models.Principal, error) {
	if accessToken == "" {
		return models.Principal{}, common.ErrMissingToken
	}
	claims, err := auth.ParseToken(accessToken, s.accessSecret)
	if err != nil {
		return models.Principal{}, err
	}
	p, err := loadPrincipal(ctx, s.rm, s.rm.Conn(), claims.PrincipalID(), claims.Role)
	if errors.Is(err, common.ErrPrincipalNotFound) {
		return models.Principal{}, common.ErrInvalidToken
	}
	if err != nil {
		return models.Principal{}, err
	}
	if !p.IsActive {
		return models.Principal{}, common.ErrAccountInactive
	}
	return p, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, p models.Principal, current, next string) error {
	if current == "" || next == "" {
		return ErrPasswordsRequired
	}
	if !StrongPassword(next) {
		return ErrWeakPassword
	}

	return s.rm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		switch p.Role {
		case models.RoleAdmin:
			a, err := s.rm.Admins(tx).GetByID(ctx, p.ID)
			if err != nil {
				return err
			}
			if a.PasswordHash, err = s.replaceHash(a.PasswordHash, current, next); err != nil {
				return err
			}
			a.UpdatedAt = s.utc()
			return s.rm.Admins(tx).Update(ctx, a)
		case models.RoleRecruiter:
			r, err := s.rm.Recruiters(tx).GetByID(ctx, p.ID)
			if err != nil {
				return err
			}
			if r.PasswordHash, err = s.replaceHash(r.PasswordHash, current, next); err != nil {
				return err
			}
			r.UpdatedAt = s.utc()
			return s.rm.Recruiters(tx).Update(ctx, r)
		case models.RoleJobSeeker:
			js, err := s.rm.JobSeekers(tx).GetByID(ctx, p.ID)
			if err != nil {
				return err
			}
			if js.PasswordHash, err = s.replaceHash(js.PasswordHash, current, next); err != nil {
				return err
			}
			js.UpdatedAt = s.utc()
			return s.rm.JobSeekers(tx).Update(ctx, js)
		}
		return common.ErrRoleNotAllowed
	})
}

func (s *AuthService) replaceHash(hash, current, next string) (string, error) {
	if !checkPassword(hash, current) {
		return hash, ErrWrongPassword
	}
	return s.hashPassword(next)
}

func (s *AuthService) generateTokenPair(ctx context.Context, db dbx.DBTX, principalID string, role models.Role) (*TokenPair, error) {
	access, err := auth.GenerateToken(principalID, role, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	refresh, err := auth.GenerateToken(principalID, role, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}
	if err := s.rm.RefreshTokens(db).Create(ctx, principalID, role, refresh, s.now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
