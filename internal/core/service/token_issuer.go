package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vogueline/agency-api/internal/core/domain"
)

const tokenIssuer = "agency-api"

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 session tokens with a server-held secret.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), now: time.Now}
}

// Issue returns a token binding the account id, email and role until now+ttl.
func (i *JWTIssuer) Issue(account *domain.Account, ttl time.Duration) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("issue token: empty signing secret")
	}
	now := i.now().UTC()
	exp := now.Add(ttl)

	claims := sessionClaims{
		Email: account.Email,
		Role:  string(account.Kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   account.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify fails closed: any parse, signature, algorithm or expiry problem, or a
// token without subject and known role, yields domain.ErrInvalidSession.
func (i *JWTIssuer) Verify(token string) (domain.SessionClaims, error) {
	if token == "" || len(i.secret) == 0 {
		return domain.SessionClaims{}, domain.ErrInvalidSession
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return domain.SessionClaims{}, domain.ErrInvalidSession
	}

	role := domain.AccountKind(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return domain.SessionClaims{}, domain.ErrInvalidSession
	}

	return domain.SessionClaims{
		AccountID: claims.Subject,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
