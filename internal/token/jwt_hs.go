package token

import (
	"context"
	"errors"
	"time"

	"github.com/kstarostin/campfire-store-api/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type HSProvider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewHSProvider(secret, issuer string) *HSProvider {
	return &HSProvider{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

type customClaims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

func (p *HSProvider) Sign(ctx context.Context, sub uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := p.now()
	exp := now.Add(ttl)

	claims := customClaims{
		Sub: sub.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   sub.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(p.secret)
	return signed, exp, err
}

func (p *HSProvider) Parse(ctx context.Context, token string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &customClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithIssuer(p.issuer))
	if err != nil {
		return nil, err
	}
	cc, ok := parsed.Claims.(*customClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	uid, err := uuid.Parse(cc.Sub)
	if err != nil {
		return nil, err
	}
	return &service.Claims{
		UserID:   uid,
		JTI:      cc.ID,
		IssuedAt: cc.IssuedAt.Time,
		Exp:      cc.ExpiresAt.Time,
	}, nil
}
