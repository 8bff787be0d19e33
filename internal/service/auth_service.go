package service

import (
	"context"
	"net/http"
	"time"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"

	"go.uber.org/zap"
)

type AuthService struct {
	users    repository.UserRepo
	hasher   PasswordHasher
	tokens   TokenProvider
	denylist TokenDenylist // может быть nil — тогда logout работает только через cookie

	locale    config.Locale
	accessTTL time.Duration
	now       func() time.Time

	log *zap.Logger
}

func NewAuthService(
	users repository.UserRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	denylist TokenDenylist,
	locale config.Locale,
	accessTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		denylist:  denylist,
		locale:    locale,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Photo           *models.ImageContainer
}

// Signup creates a new user with the default role and responds with a signed
// access token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	if in.Password == "" {
		return nil, "", NewAppError(http.StatusBadRequest, "Please provide a password.")
	}
	if in.PasswordConfirm == "" {
		return nil, "", NewAppError(http.StatusBadRequest, "Please confirm your password.")
	}
	if in.Password != in.PasswordConfirm {
		return nil, "", NewAppError(http.StatusBadRequest, "Passwords are not the same.")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Roles:    models.Roles{s.locale.DefaultRole},
		Photo:    in.Photo,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokens.Sign(ctx, u.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user signed up", zap.String("email", u.Email))
	return u, token, nil
}

// Login validates the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", NewAppError(http.StatusBadRequest, "Please provide email and password!")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.hasher.Compare(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, _, err := s.tokens.Sign(ctx, user.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout pushes the token's jti into the denylist until its natural expiry,
// so a captured bearer token dies together with the cookie.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if s.denylist == nil || rawToken == "" {
		return nil
	}
	claims, err := s.tokens.Parse(ctx, rawToken)
	if err != nil {
		// Токен уже невалиден — отзывать нечего.
		return nil
	}
	ttl := time.Until(claims.Exp)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.JTI, ttl)
}

// Authenticate verifies the raw token and loads the acting user, rejecting
// revoked tokens, deleted users and tokens issued before a password change.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.Parse(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.JTI)
		if err != nil {
			s.log.Warn("denylist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenUserGone
	}
	if user.PasswordChangedAfter(claims.IssuedAt) {
		return nil, ErrPasswordChanged
	}
	return user, nil
}

// Authorize passes when the user holds one of the allowed roles, or when the
// special role "me" is allowed and the path subject matches the acting user's
// id or email.
func (s *AuthService) Authorize(user *models.User, allowedRoles []string, subjectUserParam string) error {
	for _, role := range allowedRoles {
		if role != "me" && user.Roles.Has(role) {
			return nil
		}
	}
	if config.Contains(allowedRoles, "me") && subjectUserParam != "" {
		if subjectUserParam == user.ID.String() || subjectUserParam == user.Email {
			return nil
		}
	}
	return ErrForbidden
}
