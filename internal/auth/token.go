package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrUnexpectedTokenType = errors.New("unexpected token type")
)

// Claims carries the user id next to the registered JWT claims. Subject is
// the user id rendered as a string, so accounts without a username still
// authenticate.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Type   string `json:"typ"`
}

// TokenIssuer signs access and refresh tokens with a shared HMAC secret.
// Generation has no side effects; persistence of refresh tokens is the
// caller's concern.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (t *TokenIssuer) AccessTTL() time.Duration  { return t.accessTTL }
func (t *TokenIssuer) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *TokenIssuer) GenerateAccessToken(subject, userID string) (string, error) {
	return t.sign(subject, userID, TokenTypeAccess, t.accessTTL)
}

// GenerateRefreshToken returns a token with a random jti, so two calls for
// the same user never produce the same string.
func (t *TokenIssuer) GenerateRefreshToken(subject, userID string) (string, error) {
	return t.sign(subject, userID, TokenTypeRefresh, t.refreshTTL)
}

func (t *TokenIssuer) sign(subject, userID, typ string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    t.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Type:   typ,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseAccessToken validates signature, algorithm, issuer and expiry and
// refuses refresh tokens.
func (t *TokenIssuer) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrUnexpectedTokenType
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}
