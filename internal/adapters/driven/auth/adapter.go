package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven"
)

// Ensure Adapter implements AuthAdapter
var _ driven.AuthAdapter = (*Adapter)(nil)

// tokenIssuer is stamped into every token and enforced on parse, so
// tokens minted by other services sharing the secret are rejected.
const tokenIssuer = "covenant-core"

// parseLeeway absorbs clock drift between the issuing and validating
// instance when checking exp/iat.
const parseLeeway = 30 * time.Second

// Adapter handles password hashing with bcrypt and session tokens as
// HS256 JWTs. Tokens carry only the user and session identity in the
// registered claims (sub, jti); everything else about the user is read
// from the store at validation time, never trusted from the token.
type Adapter struct {
	jwtSecret  []byte
	bcryptCost int
	parser     *jwt.Parser
}

// NewAdapter creates a new auth adapter with the given JWT secret
func NewAdapter(jwtSecret string) *Adapter {
	return NewAdapterWithCost(jwtSecret, bcrypt.DefaultCost)
}

// NewAdapterWithCost creates a new auth adapter with custom bcrypt cost
func NewAdapterWithCost(jwtSecret string, bcryptCost int) *Adapter {
	return &Adapter{
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(parseLeeway),
		),
	}
}

// HashPassword generates a bcrypt hash from a plaintext password
func (a *Adapter) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches a bcrypt hash
func (a *Adapter) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken signs the session identity as an HS256 JWT. The user
// ID becomes the subject and the session ID the token ID, so the token
// is bound to exactly one revocable session.
func (a *Adapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	rc := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   claims.UserID,
		ID:        claims.SessionID,
		IssuedAt:  jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0)),
		ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, rc).SignedString(a.jwtSecret)
}

// ParseToken validates a JWT and extracts the session identity.
// Expired tokens surface as domain.ErrTokenExpired; anything else that
// fails validation surfaces as domain.ErrTokenInvalid.
func (a *Adapter) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := a.parser.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	rc, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || rc.Subject == "" || rc.ID == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &domain.TokenClaims{
		UserID:    rc.Subject,
		SessionID: rc.ID,
		ExpiresAt: rc.ExpiresAt.Unix(),
	}
	if rc.IssuedAt != nil {
		claims.IssuedAt = rc.IssuedAt.Unix()
	}
	return claims, nil
}
