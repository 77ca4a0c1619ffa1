package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dukahub/dukapos-backend/internal/rbac"
	"github.com/dukahub/dukapos-backend/internal/users"
	pkgauth "github.com/dukahub/dukapos-backend/pkg/auth"
	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/security"
)

// Session is what a successful login hands back to the client.
type Session struct {
	Token      string       `json:"token"`
	User       *models.User `json:"user"`
	RedirectTo string       `json:"redirect_to"`
}

// Service authenticates operators against their stored credentials and issues
// access tokens.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type service struct {
	usersRepo *users.Repository
	jwtCfg    config.JWTConfig
	now       func() time.Time
}

// NewService constructs an auth service instance.
func NewService(usersRepo *users.Repository, jwtCfg config.JWTConfig) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{usersRepo: usersRepo, jwtCfg: jwtCfg, now: time.Now}, nil
}

// Login verifies the email/password pair and mints a session token. Unknown
// emails and wrong passwords both come back as the same unauthorized error so
// the response never reveals which half was wrong.
func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	details := map[string]string{}
	if email == "" {
		details["email"] = "is required"
	}
	if password == "" {
		details["password"] = "is required"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid login input").WithDetails(details)
	}

	user, err := s.usersRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:  user.ID,
		StoreID: user.StoreID,
		Name:    user.Name,
		Role:    user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &Session{
		Token:      token,
		User:       user,
		RedirectTo: rbac.DashboardPath(user.Role),
	}, nil
}

// Me returns the authenticated operator's account.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.usersRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
