package service

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/tracker/internal/auth/domain"
	apperrors "github.com/allisson/tracker/internal/errors"
	userDomain "github.com/allisson/tracker/internal/user/domain"
)

// tokenClaims is the wire shape of the signed payload.
type tokenClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Role  string `json:"role"`
	Kind  string `json:"kind"`
}

// jwtCodec implements TokenCodec using RS256 signing.
type jwtCodec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCodec creates a TokenCodec from PEM-encoded RSA keys.
// accessTTL and refreshTTL set the lifetime per token kind.
func NewTokenCodec(
	privateKeyPEM []byte,
	publicKeyPEM []byte,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) (TokenCodec, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse RSA private key")
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse RSA public key")
	}

	return &jwtCodec{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// NewTokenCodecFromFiles creates a TokenCodec by loading PEM key files.
func NewTokenCodecFromFiles(
	privateKeyPath string,
	publicKeyPath string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) (TokenCodec, error) {
	privateKeyPEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read private key from %s", privateKeyPath)
	}

	publicKeyPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read public key from %s", publicKeyPath)
	}

	return NewTokenCodec(privateKeyPEM, publicKeyPEM, accessTTL, refreshTTL)
}

// Issue creates a signed token of the given kind with a fresh random jti.
func (c *jwtCodec) Issue(
	user *userDomain.User,
	kind authDomain.TokenKind,
	now time.Time,
) (string, authDomain.Claims, error) {
	ttl := c.accessTTL
	if kind == authDomain.RefreshTokenKind {
		ttl = c.refreshTTL
	}

	now = now.UTC()
	tokenID := uuid.NewString()

	wireClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: user.Email,
		Role:  string(user.Role),
		Kind:  string(kind),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, wireClaims).SignedString(c.privateKey)
	if err != nil {
		return "", authDomain.Claims{}, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, authDomain.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Kind:      kind,
		TokenID:   tokenID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Verify checks signature, expiry, and kind. Every failure collapses into
// ErrTokenInvalid so the cause is not distinguishable by the caller.
func (c *jwtCodec) Verify(
	rawToken string,
	kind authDomain.TokenKind,
	now time.Time,
) (authDomain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now.UTC() }),
	)

	var wireClaims tokenClaims
	if _, err := parser.ParseWithClaims(rawToken, &wireClaims, func(token *jwt.Token) (any, error) {
		return c.publicKey, nil
	}); err != nil {
		return authDomain.Claims{}, authDomain.ErrTokenInvalid
	}

	if authDomain.TokenKind(wireClaims.Kind) != kind {
		return authDomain.Claims{}, authDomain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(wireClaims.Subject)
	if err != nil {
		return authDomain.Claims{}, authDomain.ErrTokenInvalid
	}

	role := userDomain.Role(wireClaims.Role)
	if !role.Valid() {
		return authDomain.Claims{}, authDomain.ErrTokenInvalid
	}

	if wireClaims.ID == "" || wireClaims.IssuedAt == nil || wireClaims.ExpiresAt == nil {
		return authDomain.Claims{}, authDomain.ErrTokenInvalid
	}

	return authDomain.Claims{
		UserID:    userID,
		Email:     wireClaims.Email,
		Role:      role,
		Kind:      kind,
		TokenID:   wireClaims.ID,
		IssuedAt:  wireClaims.IssuedAt.Time,
		ExpiresAt: wireClaims.ExpiresAt.Time,
	}, nil
}
